package projection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"investment_projection/pkg/core/agent"
	"investment_projection/pkg/core/prompt"
)

// DefaultUpstreamTimeout bounds a single streamed completion.
const DefaultUpstreamTimeout = 120 * time.Second

// Upstream streams a completion for a prompt on behalf of an agent type.
// *agent.Manager satisfies it.
type Upstream interface {
	StreamPrompt(ctx context.Context, agentType string, prompt string) iter.Seq2[string, error]
}

// Generator holds the process-wide template and upstream handle. Both are
// read-only, so one Generator serves concurrent requests.
type Generator struct {
	template  *prompt.Template
	upstream  Upstream
	timeout   time.Duration
	agentType string
}

// NewGenerator checks that the template carries every projection placeholder.
// A zero timeout disables the deadline.
func NewGenerator(tmpl *prompt.Template, upstream Upstream, timeout time.Duration) (*Generator, error) {
	if tmpl == nil {
		return nil, errors.New("projection: template is required")
	}
	if upstream == nil {
		return nil, errors.New("projection: upstream is required")
	}
	validated, err := prompt.New(tmpl.ID, tmpl.Body, prompt.ProjectionPlaceholders)
	if err != nil {
		return nil, err
	}
	validated.Source = tmpl.Source

	return &Generator{
		template:  validated,
		upstream:  upstream,
		timeout:   timeout,
		agentType: agent.AgentProjection,
	}, nil
}

// BuildPrompt substitutes the request into the template.
func (g *Generator) BuildPrompt(req Request) (string, error) {
	return g.template.Render(map[string]string{
		prompt.PlaceholderAmount:    req.AmountText(),
		prompt.PlaceholderRisk:      string(req.RiskTolerance),
		prompt.PlaceholderInterests: req.Interests,
	})
}

// Generate runs one projection: render, stream, accumulate, parse.
func (g *Generator) Generate(ctx context.Context, req Request) (interface{}, error) {
	text, err := g.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return ParseProjection(text)
}

// Complete returns the raw accumulated completion text without parsing it.
func (g *Generator) Complete(ctx context.Context, req Request) (string, error) {
	p, err := g.BuildPrompt(req)
	if err != nil {
		return "", err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := Accumulate(g.upstream.StreamPrompt(ctx, g.agentType, p))
	if err != nil {
		return "", fmt.Errorf("upstream completion failed: %w", err)
	}
	return text, nil
}

// Accumulate concatenates fragments in arrival order, skipping empty ones.
// The first error aborts and discards the partial text.
func Accumulate(stream iter.Seq2[string, error]) (string, error) {
	var sb strings.Builder
	for fragment, err := range stream {
		if err != nil {
			return "", err
		}
		if fragment == "" {
			continue
		}
		sb.WriteString(fragment)
	}
	return sb.String(), nil
}

// ParseProjection parses text as exactly one JSON value. Numbers keep their
// original text. No repair is attempted.
func ParseProjection(text string) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var result interface{}
	if err := dec.Decode(&result); err != nil {
		return nil, &UpstreamFormatError{Raw: text, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &UpstreamFormatError{Raw: text, Err: errors.New("trailing data after JSON value")}
	}
	return result, nil
}
