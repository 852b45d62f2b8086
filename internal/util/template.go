package util

import (
	"strings"
	"text/template"
)

// RenderTemplate renders a Go text template against the given data. Prompt
// text must pass through unescaped, so html/template is deliberately not used.
func RenderTemplate(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}

	return sb.String(), nil
}
