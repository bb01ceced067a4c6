package export

import (
	"regexp"
	"strings"
)

// DefaultFilenameBase prefixes export filenames when no base is configured.
const DefaultFilenameBase = "tantra"

var nonToken = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeToken turns a free-text label into a filename-safe token: lower
// case, each run of characters outside [a-z0-9] replaced by one underscore,
// no leading or trailing underscore. A label with nothing left becomes "value".
func SanitizeToken(s string) string {
	s = nonToken.ReplaceAllString(strings.ToLower(s), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "value"
	}
	return s
}

// Filename builds "<base>_<dept>_<event>.<ext>". An empty department or event
// name means the filter was not applied and yields all_departments or
// all_events.
func Filename(base, deptName, eventName string, f Format) string {
	if base == "" {
		base = DefaultFilenameBase
	}
	dept := "all_departments"
	if deptName != "" {
		dept = SanitizeToken(deptName)
	}
	event := "all_events"
	if eventName != "" {
		event = SanitizeToken(eventName)
	}
	return base + "_" + dept + "_" + event + "." + string(f)
}
