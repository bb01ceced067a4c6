// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/tantrafest/tantra/internal/app/system/flash"
)

// SiteName is shown in the layout header and page titles.
const SiteName = "Tantra Admin"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
//	data := listData{
//	    BaseVM: viewdata.New(w, r, h.Flash, "Events", "/"),
//	}
type BaseVM struct {
	SiteName    string
	Title       string
	BackURL     string
	CurrentPath string
	Flashes     []flash.Message
}

// New fills a BaseVM for the request, draining any queued flash messages.
// fs may be nil.
func New(w http.ResponseWriter, r *http.Request, fs *flash.Store, title, backDefault string) BaseVM {
	return BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Flashes:     fs.Pop(w, r),
	}
}
