// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/tantrafest/tantra/internal/app/system/viewdata"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
}

func newPageData(r *http.Request, status int, title, msg, backURL string) pageData {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	return pageData{
		BaseVM: viewdata.BaseVM{
			SiteName:    viewdata.SiteName,
			Title:       title,
			BackURL:     backURL,
			CurrentPath: httpnav.CurrentPath(r),
		},
		Status:  status,
		Message: msg,
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", newPageData(r, status, title, msg, backURL))
}

// RenderBadRequest shows a 400 page with msg.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusBadRequest, "Bad request", msg, backURL)
}

// RenderNotFound shows a 404 page with msg.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusNotFound, "Not found", msg, backURL)
}

// RenderServerError shows a 500 page with msg.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	render(w, r, http.StatusInternalServerError, "Something went wrong", msg, backURL)
}
