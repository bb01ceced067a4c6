package export

import (
	"fmt"
	"strings"

	"github.com/tantrafest/tantra/internal/app/system/apperr"
)

// Registry holds the renderers enabled in this deployment.
type Registry struct {
	enabled map[Format]Renderer
}

func rendererFor(f Format) Renderer {
	switch f {
	case FormatXLSX:
		return XLSX{}
	case FormatPDF:
		return PDF{}
	}
	return nil
}

// NewRegistry enables the named formats. Names are matched case-insensitively;
// an unknown name is an error so configuration typos surface at startup.
func NewRegistry(formats ...string) (*Registry, error) {
	r := &Registry{enabled: make(map[Format]Renderer)}
	for _, name := range formats {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		rr := rendererFor(Format(name))
		if rr == nil {
			return nil, fmt.Errorf("unknown export format %q", name)
		}
		r.enabled[rr.Format()] = rr
	}
	return r, nil
}

// ParseFormats splits a comma-separated format list as found in configuration.
func ParseFormats(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the renderer for a requested format. An unrecognised format
// is a validation error; a recognised one that is not enabled here is a
// capability error.
func (r *Registry) Lookup(format string) (Renderer, error) {
	f := Format(strings.ToLower(strings.TrimSpace(format)))
	if rendererFor(f) == nil {
		return nil, apperr.Validation("Unsupported format. Allowed: xlsx, pdf")
	}
	rr, ok := r.enabled[f]
	if !ok {
		return nil, apperr.Unavailable(fmt.Sprintf("%s export is not enabled on this server. Add %q to export_formats and restart.", f, string(f)))
	}
	return rr, nil
}

// Enabled lists the enabled formats in KnownFormats order.
func (r *Registry) Enabled() []Format {
	var out []Format
	for _, f := range KnownFormats {
		if _, ok := r.enabled[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
