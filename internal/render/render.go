// Package render fills {{variable}} placeholders in stored templates.
package render

import (
	"fmt"

	"github.com/cbroglie/mustache"
)

// Text renders a plain-text template such as a subject or push title.
// Values are inserted verbatim.
func Text(tmpl string, vars map[string]any) (string, error) {
	out, err := mustache.RenderRaw(tmpl, true, vars)
	if err != nil {
		return "", fmt.Errorf("render text template: %w", err)
	}
	return out, nil
}

// HTML renders an HTML body; {{var}} is escaped, {{{var}}} is not.
func HTML(tmpl string, vars map[string]any) (string, error) {
	out, err := mustache.Render(tmpl, vars)
	if err != nil {
		return "", fmt.Errorf("render html template: %w", err)
	}
	return out, nil
}

// Merge layers overrides on top of defaults without mutating either
func Merge(defaults, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
