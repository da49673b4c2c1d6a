package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads a template from disk and checks that every placeholder is present.
func LoadFile(path string, placeholders []string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template %s: %w", path, err)
	}

	t, err := New(generateIDFromPath(path), string(data), placeholders)
	if err != nil {
		return nil, err
	}
	t.Source = path
	return t, nil
}

// New builds a template from text, validating placeholders.
func New(id string, body string, placeholders []string) (*Template, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("prompt %q is empty", id)
	}

	var missing []string
	for _, p := range placeholders {
		if !strings.Contains(body, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingPlaceholderError{TemplateID: id, Missing: missing}
	}

	return &Template{
		ID:           id,
		Body:         body,
		Placeholders: append([]string(nil), placeholders...),
	}, nil
}

// generateIDFromPath creates a template ID from the file name
// e.g., "resources/prompts/investment_projection_prompt_monthly.txt" -> "investment_projection_prompt_monthly"
func generateIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
