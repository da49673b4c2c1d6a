package prompt

import (
	"fmt"
	"strings"
)

// Render replaces each placeholder with its value in a single pass.
// Values are inserted verbatim; no escaping is applied. Every placeholder
// of the template must have a value.
func (t *Template) Render(values map[string]string) (string, error) {
	pairs := make([]string, 0, len(t.Placeholders)*2)
	for _, p := range t.Placeholders {
		v, ok := values[p]
		if !ok {
			return "", fmt.Errorf("no value for placeholder %s in prompt %q", p, t.ID)
		}
		pairs = append(pairs, p, v)
	}
	return strings.NewReplacer(pairs...).Replace(t.Body), nil
}
