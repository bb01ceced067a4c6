// Package formutil helps re-render admin forms after a failed submission.
//
// The form is shown again with the values the admin typed, an error message
// and whatever option lists the form needs:
//
//	data := eventFormData{Name: name, Departments: opts}
//	formutil.SetBase(&data.Base, w, r, h.Flash, "Add Event", "/")
//	data.SetError("Event name is required.")
//	templates.Render(w, r, "event_new", data)
package formutil

import (
	"net/http"

	"github.com/tantrafest/tantra/internal/app/system/flash"
	"github.com/tantrafest/tantra/internal/app/system/viewdata"
)

// Base is embedded in form view models.
type Base struct {
	viewdata.BaseVM
	Error string
}

// SetBase fills the layout fields. fs may be nil.
func SetBase(b *Base, w http.ResponseWriter, r *http.Request, fs *flash.Store, title, backDefault string) {
	b.BaseVM = viewdata.New(w, r, fs, title, backDefault)
}

func (b *Base) SetError(msg string) {
	b.Error = msg
}

// Option is one entry of a select list.
type Option struct {
	Value    string
	Label    string
	Selected bool
}
