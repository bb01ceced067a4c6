// Package overview computes the dashboard totals.
package overview

import (
	"context"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	departmentstore "github.com/tantrafest/tantra/internal/app/store/departments"
	"github.com/tantrafest/tantra/internal/app/store/docstore"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/store/queries/participants"
	registrationstore "github.com/tantrafest/tantra/internal/app/store/registrations"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/domain/models"
)

// EventRow is an event with its department reference resolved for display.
type EventRow struct {
	models.Event
	DeptName string
}

// Summary is everything the dashboard shows.
type Summary struct {
	Departments []models.Department
	Events      []EventRow

	TotalDepartments   int
	TotalEvents        int
	TotalRegistrations int
	UniqueParticipants int
}

// Load reads departments, events, legacy participant documents and
// registrations. Registrations count every document in both collections;
// unique participants are keyed by email, else phone, else document ID,
// trimmed and case-folded.
func Load(ctx context.Context, ds docstore.Store) (Summary, error) {
	depts, err := departmentstore.New(ds).List(ctx)
	if err != nil {
		return Summary{}, err
	}
	events, err := eventstore.New(ds).List(ctx)
	if err != nil {
		return Summary{}, err
	}
	legacy, err := ds.Stream(ctx, participants.ParticipantsCollection)
	if err != nil {
		return Summary{}, apperr.Store("stream", participants.ParticipantsCollection, err)
	}
	regs, err := ds.Stream(ctx, registrationstore.Collection)
	if err != nil {
		return Summary{}, apperr.Store("stream", registrationstore.Collection, err)
	}

	lookup := models.NewDepartmentLookup(depts)
	rows := make([]EventRow, 0, len(events))
	for _, e := range events {
		rows = append(rows, EventRow{Event: e, DeptName: lookup.Name(e.DepartmentRef())})
	}

	unique := make(map[string]struct{}, len(legacy)+len(regs))
	for _, d := range legacy {
		unique[identity(d.Fields, d.ID)] = struct{}{}
	}
	for _, d := range regs {
		p, ok := d.Map("participant")
		if !ok {
			p = d.Fields
		}
		unique[identity(p, d.ID)] = struct{}{}
	}

	return Summary{
		Departments:        depts,
		Events:             rows,
		TotalDepartments:   len(depts),
		TotalEvents:        len(events),
		TotalRegistrations: len(legacy) + len(regs),
		UniqueParticipants: len(unique),
	}, nil
}

func identity(fields map[string]any, id string) string {
	ident := docstore.FirstString(fields, "email", "participant_email", "user_email")
	if ident == "" {
		ident = docstore.FirstString(fields, "phone", "mobile")
	}
	if ident == "" {
		ident = id
	}
	return text.Fold(strings.TrimSpace(ident))
}
