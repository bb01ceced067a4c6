// internal/app/features/participants/types.go
package participants

import (
	"net/url"

	"github.com/tantrafest/tantra/internal/app/store/queries/exportrows"
	"github.com/tantrafest/tantra/internal/app/system/export"
	"github.com/tantrafest/tantra/internal/app/system/formutil"
	"github.com/tantrafest/tantra/internal/domain/models"
)

type exportLink struct {
	Label string
	URL   string
}

type listData struct {
	formutil.Base
	Departments []formutil.Option
	Events      []formutil.Option
	DeptID      string
	EventID     string
	DeptName    string
	EventName   string
	SortLabel   string
	Headers     []string
	Rows        []models.ExportRow
	Exports     []exportLink
}

func eventOptions(evs []models.Event, selected string) []formutil.Option {
	out := make([]formutil.Option, 0, len(evs))
	for _, e := range evs {
		out = append(out, formutil.Option{Value: e.ID, Label: e.Name, Selected: e.ID == selected})
	}
	return out
}

func deptOptions(depts []models.Department, selected string) []formutil.Option {
	out := make([]formutil.Option, 0, len(depts))
	for _, d := range depts {
		out = append(out, formutil.Option{Value: d.ID, Label: d.Name, Selected: d.ID == selected})
	}
	return out
}

// exportLinks builds one download link per enabled format, carrying the
// current filters.
func exportLinks(formats []export.Format, deptID, eventID string) []exportLink {
	out := make([]exportLink, 0, len(formats))
	for _, f := range formats {
		q := url.Values{"format": {string(f)}}
		if deptID != "" {
			q.Set("dept_id", deptID)
		}
		if eventID != "" {
			q.Set("event_id", eventID)
		}
		out = append(out, exportLink{Label: "Download " + string(f), URL: "/export_participants?" + q.Encode()})
	}
	return out
}

func sortLabel(m exportrows.SortMode) string {
	if m == exportrows.ByDeptName {
		return "department, name"
	}
	return "department, event, name"
}
