// Package htmlsanitize cleans the free-text descriptions admins type into
// department and event forms before they are stored and shown on the public site.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize strips scripts, event handlers and unsafe URLs, keeping basic
// formatting markup.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// ToHTML marks an already sanitized description as safe for templates.
func ToHTML(sanitized string) template.HTML {
	return template.HTML(sanitized)
}
