package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"investment_projection/pkg/core/bootstrap"
	"investment_projection/pkg/core/config"
	"investment_projection/pkg/core/projection"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type requestFlags struct {
	amount    string
	risk      string
	interests string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.amount, "amount", "500.00", "monthly contribution amount")
	cmd.Flags().StringVar(&f.risk, "risk", string(projection.RiskAverage), "risk tolerance: High, Average or Minimal")
	cmd.Flags().StringVar(&f.interests, "interests", "technology, healthcare, renewable energy", "comma separated interests")
}

// payload mirrors what a browser client sends; the amount goes out as a JSON number.
func (f *requestFlags) payload() (map[string]interface{}, error) {
	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return nil, fmt.Errorf("--amount: %w", err)
	}
	return map[string]interface{}{
		projection.FieldAmount:    json.Number(amount.String()),
		projection.FieldRisk:      f.risk,
		projection.FieldInterests: f.interests,
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "projectionctl",
		Short:        "Exercise the investment projection service",
		SilenceUsage: true,
	}
	root.AddCommand(newRequestCmd(), newPromptCmd())
	return root
}

func newRequestCmd() *cobra.Command {
	var (
		flags   requestFlags
		url     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "request",
		Short: "POST a projection request to a running API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := flags.payload()
			if err != nil {
				return err
			}
			body, err := json.Marshal(payload)
			if err != nil {
				return err
			}

			client := &http.Client{Timeout: timeout}
			resp, err := client.Post(url, "application/json", bytes.NewReader(body))
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			raw, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Status Code:", resp.StatusCode)
			fmt.Fprintln(out, "Response:")
			return printJSON(out, raw)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&url, "url", "http://localhost:5000/api/investment-projection", "projection endpoint")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "HTTP client timeout")
	return cmd
}

func newPromptCmd() *cobra.Command {
	var (
		flags      requestFlags
		renderOnly bool
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Render the prompt and run it against the configured provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := flags.payload()
			if err != nil {
				return err
			}

			load := config.Load
			if renderOnly {
				load = config.Read
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			req, err := projection.ParseRequest(payload, cfg.MaxInterestsLength)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()

			if renderOnly {
				gen, err := bootstrap.Generator(cfg, noUpstream{})
				if err != nil {
					return err
				}
				text, err := gen.BuildPrompt(req)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}

			mgr, err := bootstrap.Manager(ctx, cfg)
			if err != nil {
				return err
			}
			gen, err := bootstrap.Generator(cfg, mgr)
			if err != nil {
				return err
			}
			result, err := gen.Generate(ctx, req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&renderOnly, "render-only", false, "print the rendered prompt without calling the provider")
	return cmd
}

func printJSON(w io.Writer, raw []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		_, werr := w.Write(raw)
		return werr
	}
	pretty.WriteByte('\n')
	_, err := pretty.WriteTo(w)
	return err
}
