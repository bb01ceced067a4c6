// internal/app/features/departments/content.go
package departments

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	departmentstore "github.com/tantrafest/tantra/internal/app/store/departments"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/system/formutil"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
)

// ServeContent shows every department with its events. An event belongs to a
// department through either its department field or the legacy dept_id.
// GET /db_content
func (h *Handler) ServeContent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "db content")
	defer cancel()

	depts, err := departmentstore.New(h.Store).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list departments failed", err, "Could not load departments.", "/")
		return
	}
	evStore := eventstore.New(h.Store)

	data := contentData{Departments: make([]contentDept, 0, len(depts))}
	for _, d := range depts {
		evs, err := evStore.ListByDepartment(ctx, d.ID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "list department events failed", err, "Could not load events.", "/")
			return
		}
		data.Departments = append(data.Departments, toContentDept(d, evs))
	}
	formutil.SetBase(&data.Base, w, r, h.Flash, "Database Content", "/")
	templates.Render(w, r, "db_content", data)
}

// ServeData is the public site's feed: every department and event document
// with its ID merged in as "id".
// GET /api/data
func (h *Handler) ServeData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "api data")
	defer cancel()

	depts, err := departmentstore.New(h.Store).Documents(ctx)
	if err != nil {
		h.ErrLog.JSON(w, r, "api data departments failed", err)
		return
	}
	evs, err := eventstore.New(h.Store).Documents(ctx)
	if err != nil {
		h.ErrLog.JSON(w, r, "api data events failed", err)
		return
	}
	errorsfeature.WriteJSON(w, http.StatusOK, map[string]any{
		"departments": depts,
		"events":      evs,
	})
}
