// Package web serves the landing page. The page is rendered once at
// startup from embedded Markdown and an HTML shell.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	coreProjection "investment_projection/pkg/core/projection"
	"investment_projection/pkg/core/utils"
)

//go:embed assets
var assets embed.FS

type pageData struct {
	Title       string
	Intro       template.HTML
	Endpoint    string
	RiskOptions []coreProjection.RiskTolerance
}

// Handler holds the pre-rendered landing page.
type Handler struct {
	page []byte
}

// NewHandler renders the page; endpoint is the projection API path the form posts to.
func NewHandler(endpoint string) (*Handler, error) {
	md, err := assets.ReadFile("assets/landing.md")
	if err != nil {
		return nil, fmt.Errorf("read landing page: %w", err)
	}
	intro, err := utils.RenderMarkdown(md)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(assets, "assets/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse landing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, pageData{
		Title:       "Investment Projection",
		Intro:       template.HTML(intro),
		Endpoint:    endpoint,
		RiskOptions: []coreProjection.RiskTolerance{coreProjection.RiskHigh, coreProjection.RiskAverage, coreProjection.RiskMinimal},
	})
	if err != nil {
		return nil, fmt.Errorf("render landing template: %w", err)
	}
	return &Handler{page: buf.Bytes()}, nil
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.page)
}
