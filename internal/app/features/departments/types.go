// internal/app/features/departments/types.go
package departments

import (
	"html/template"

	"github.com/tantrafest/tantra/internal/app/system/formutil"
	"github.com/tantrafest/tantra/internal/app/system/htmlsanitize"
	"github.com/tantrafest/tantra/internal/domain/models"
)

type createDeptInput struct {
	Name    string `validate:"required,max=120" label:"Department name"`
	LogoURL string `validate:"max=500" label:"Logo URL"`
	QRURL   string `validate:"max=500" label:"Payment QR URL"`
}

type deptRow struct {
	ID          string
	Name        string
	Description template.HTML
}

type newData struct {
	formutil.Base
	Name        string
	Description string
	LogoURL     string
	QRURL       string
	Existing    []deptRow
}

type contentEvent struct {
	ID     string
	Name   string
	Date   string
	Venue  string
	Status models.EventStatus
}

type contentDept struct {
	ID          string
	Name        string
	Description template.HTML
	LogoURL     string
	QRURL       string
	Events      []contentEvent
}

type contentData struct {
	formutil.Base
	Departments []contentDept
}

func toRows(depts []models.Department) []deptRow {
	out := make([]deptRow, 0, len(depts))
	for _, d := range depts {
		out = append(out, deptRow{ID: d.ID, Name: d.Name, Description: htmlsanitize.ToHTML(d.Description)})
	}
	return out
}

func toContentDept(d models.Department, evs []models.Event) contentDept {
	cd := contentDept{
		ID:          d.ID,
		Name:        d.Name,
		Description: htmlsanitize.ToHTML(d.Description),
		LogoURL:     d.LogoURL,
		QRURL:       d.QRURL,
		Events:      make([]contentEvent, 0, len(evs)),
	}
	for _, e := range evs {
		cd.Events = append(cd.Events, contentEvent{ID: e.ID, Name: e.Name, Date: e.Date, Venue: e.Venue, Status: e.Status})
	}
	return cd
}
