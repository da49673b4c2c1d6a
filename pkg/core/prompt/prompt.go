// Package prompt loads the projection prompt template and renders it by
// literal placeholder substitution. A Template is immutable once loaded and
// is safe to share between concurrent requests.
package prompt

import "fmt"

// Placeholder tokens the projection prompt must contain.
const (
	PlaceholderAmount    = "{monthly_contribution_amount}"
	PlaceholderRisk      = "{risk_tolerance}"
	PlaceholderInterests = "{interests}"
)

// ProjectionPlaceholders lists every token substituted into the projection prompt.
var ProjectionPlaceholders = []string{
	PlaceholderAmount,
	PlaceholderRisk,
	PlaceholderInterests,
}

// Template is a read-only prompt body with named placeholders.
type Template struct {
	ID           string   // Derived from the file name (e.g. "investment_projection_prompt_monthly")
	Source       string   // Path the template was loaded from, empty for in-memory templates
	Body         string   // Raw template text
	Placeholders []string // Tokens that Render substitutes
}

// MissingPlaceholderError reports a template that lacks a required token.
type MissingPlaceholderError struct {
	TemplateID string
	Missing    []string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("prompt %q is missing placeholders %v", e.TemplateID, e.Missing)
}
