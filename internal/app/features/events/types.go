// internal/app/features/events/types.go
package events

import (
	"github.com/tantrafest/tantra/internal/app/system/formutil"
	"github.com/tantrafest/tantra/internal/domain/models"
)

// deptEventJSON is one entry of GET /dept_events/{deptID}.
type deptEventJSON struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Date       string             `json:"date"`
	Status     models.EventStatus `json:"status"`
	ImageURL   string             `json:"image_url"`
	Venue      string             `json:"venue"`
	Department string             `json:"department"`
}

// eventJSON is the body of GET /event/{eventID}.
type eventJSON struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Date        string             `json:"date"`
	Time        string             `json:"time"`
	Venue       string             `json:"venue"`
	ImageURL    string             `json:"image_url"`
	Status      models.EventStatus `json:"status"`
	Department  string             `json:"department"`
	Price       string             `json:"price"`
	Prize       string             `json:"prize"`
}

func toDeptEventJSON(e models.Event) deptEventJSON {
	return deptEventJSON{
		ID:         e.ID,
		Name:       e.Name,
		Date:       e.Date,
		Status:     e.Status,
		ImageURL:   e.ImageURL,
		Venue:      e.Venue,
		Department: e.DepartmentRef(),
	}
}

func toEventJSON(e models.Event) eventJSON {
	return eventJSON{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Venue:       e.Venue,
		ImageURL:    e.ImageURL,
		Status:      e.Status,
		Department:  e.DepartmentRef(),
		Price:       e.Price,
		Prize:       e.Prize,
	}
}

// createEventInput defines validation rules for the add-event form.
type createEventInput struct {
	DeptID   string `validate:"required" label:"Department"`
	Name     string `validate:"required,max=200" label:"Event name"`
	Date     string `validate:"max=40" label:"Date"`
	Time     string `validate:"max=40" label:"Time"`
	Venue    string `validate:"max=200" label:"Venue"`
	ImageURL string `validate:"max=500" label:"Image URL"`
	Price    string `validate:"max=40" label:"Price"`
	Prize    string `validate:"max=200" label:"Prize"`
}

type eventFormData struct {
	formutil.Base
	Departments []formutil.Option

	DeptID      string
	Name        string
	Description string
	Date        string
	Time        string
	Venue       string
	ImageURL    string
	Price       string
	Prize       string
	Open        bool
}

type fixRow struct {
	ID     string
	Name   string
	Date   string
	DeptID string
}

type fixData struct {
	formutil.Base
	Events      []fixRow
	Departments []formutil.Option
}

// deptOptions lists departments for a select, marking selected.
func deptOptions(depts []models.Department, selected string) []formutil.Option {
	out := make([]formutil.Option, 0, len(depts))
	for _, d := range depts {
		out = append(out, formutil.Option{Value: d.ID, Label: d.Name, Selected: d.ID == selected})
	}
	return out
}

// misassigned returns events whose legacy dept_id is empty or names no
// known department.
func misassigned(events []models.Event, depts []models.Department) []fixRow {
	known := make(map[string]bool, len(depts))
	for _, d := range depts {
		known[d.ID] = true
	}
	var out []fixRow
	for _, e := range events {
		if e.DeptID != "" && known[e.DeptID] {
			continue
		}
		out = append(out, fixRow{ID: e.ID, Name: e.Name, Date: e.Date, DeptID: e.DeptID})
	}
	return out
}
