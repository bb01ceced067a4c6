// Package exportrows collects registrations from every collection they may live
// in and turns them into sorted export rows.
//
// A listing recomputes everything from the store: nothing is cached between
// calls and registrations are never deduplicated.
package exportrows

import (
	"context"
	"errors"

	departmentstore "github.com/tantrafest/tantra/internal/app/store/departments"
	"github.com/tantrafest/tantra/internal/app/store/docstore"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/store/queries/batch"
	"github.com/tantrafest/tantra/internal/app/store/queries/participants"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/app/system/tracing"
	"github.com/tantrafest/tantra/internal/domain/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	registrationsCollection = "registrations"
	legacyCollection        = participants.ParticipantsCollection
)

// Filter narrows a listing. Empty fields mean "all".
type Filter struct {
	DeptID  string
	EventID string
}

// Result is a sorted listing plus the resolved filter names, which callers use
// for headings and export filenames. A name is empty when its filter was not
// applied.
type Result struct {
	Rows      []models.ExportRow
	DeptName  string
	EventName string
	SortMode  SortMode
}

// Service runs the aggregation against one store.
type Service struct {
	store    docstore.Store
	depts    *departmentstore.Store
	events   *eventstore.Store
	batcher  *batch.Batcher
	resolver *participants.Resolver
	tracer   trace.Tracer
	log      *zap.Logger
}

// NewService wires the pipeline over store. A nil tracer disables spans.
func NewService(store docstore.Store, log *zap.Logger, tracer trace.Tracer) *Service {
	tracer = tracing.OrNoop(tracer)
	return &Service{
		store:    store,
		depts:    departmentstore.New(store),
		events:   eventstore.New(store),
		batcher:  batch.New(store, tracer),
		resolver: participants.NewResolver(store, tracer),
		tracer:   tracer,
		log:      log,
	}
}

// Gather returns the sorted rows matching f.
//
// An unknown department ID is ignored (the listing covers all departments).
// An unknown event ID is kept and used as the event name, so registrations
// that still reference a deleted event remain reachable.
func (s *Service) Gather(ctx context.Context, f Filter) (Result, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanGather, trace.WithAttributes(
		attribute.String("filter.dept_id", f.DeptID),
		attribute.String("filter.event_id", f.EventID),
	))
	defer span.End()

	res, err := s.gather(ctx, f)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrRowCount, len(res.Rows)))
	return res, nil
}

func (s *Service) gather(ctx context.Context, f Filter) (Result, error) {
	lookup, err := s.depts.Lookup(ctx)
	if err != nil {
		return Result{}, err
	}

	var res Result
	if f.DeptID != "" {
		if name, ok := lookup[f.DeptID]; ok {
			res.DeptName = name
		} else {
			s.log.Info("department filter not found, listing all departments",
				zap.String("dept_id", f.DeptID))
			f.DeptID = ""
		}
	}

	candidates, err := s.candidateEvents(ctx, f, &res)
	if err != nil {
		return Result{}, err
	}

	rows, err := s.registrationRows(ctx, candidates, lookup)
	if err != nil {
		return Result{}, err
	}
	legacy, err := s.legacyRows(ctx, f, res, lookup)
	if err != nil {
		return Result{}, err
	}
	rows = append(rows, legacy...)

	res.SortMode = ModeFor(f.EventID != "")
	SortRows(rows, res.SortMode)
	res.Rows = rows
	return res, nil
}

// candidateEvents returns the events whose registrations belong in the listing
// and records the selected event's name on res.
func (s *Service) candidateEvents(ctx context.Context, f Filter, res *Result) ([]models.Event, error) {
	if f.EventID != "" {
		ev, err := s.events.Get(ctx, f.EventID)
		if errors.Is(err, apperr.ErrNotFound) {
			s.log.Info("event filter not found, using id as name", zap.String("event_id", f.EventID))
			ev = models.Event{ID: f.EventID, Name: f.EventID}
		} else if err != nil {
			return nil, err
		}
		res.EventName = ev.Name
		return []models.Event{ev}, nil
	}
	if f.DeptID != "" {
		return s.events.ListByDepartment(ctx, f.DeptID, res.DeptName)
	}
	return s.events.List(ctx)
}

func (s *Service) registrationRows(ctx context.Context, events []models.Event, lookup models.DepartmentLookup) ([]models.ExportRow, error) {
	byID := make(map[string]models.Event, len(events))
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
		ids = append(ids, ev.ID)
	}

	regs, err := s.batcher.FindIn(ctx, registrationsCollection, "event_id", ids)
	if err != nil {
		return nil, err
	}

	rows := make([]models.ExportRow, 0, len(regs))
	skipped := 0
	for _, reg := range regs {
		p, ok, err := s.resolver.Resolve(ctx, reg.Fields)
		if err != nil {
			return nil, err
		}
		if !ok {
			skipped++
			continue
		}
		ev := byID[reg.String("event_id")]
		rows = append(rows, NormalizeRegistration(reg.Fields, p, ev, lookup))
	}
	if skipped > 0 {
		s.log.Debug("registrations without a resolvable participant skipped", zap.Int("count", skipped))
	}
	return rows, nil
}

// legacyRows reads flat registrations from the participants collection. Only
// documents carrying an event name under one of the legacy aliases are
// registrations; the rest are profiles.
func (s *Service) legacyRows(ctx context.Context, f Filter, res Result, lookup models.DepartmentLookup) ([]models.ExportRow, error) {
	docs, err := s.legacyDocs(ctx, f, res)
	if err != nil {
		return nil, err
	}

	var rows []models.ExportRow
	for _, d := range docs {
		event := d.String(legacyEventKeys...)
		if event == "" {
			continue
		}
		if res.EventName != "" && event != res.EventName {
			continue
		}
		if res.DeptName != "" {
			if dept := d.String(legacyDeptKeys...); dept != res.DeptName && dept != f.DeptID {
				continue
			}
		}
		rows = append(rows, NormalizeLegacy(d.Fields, lookup))
	}
	return rows, nil
}

// legacyDocs runs one query per combination of filtered alias keys, since a
// filter only names one field, and merges the results by document ID. Callers
// re-check each document against the alias that actually wins.
func (s *Service) legacyDocs(ctx context.Context, f Filter, res Result) ([]docstore.Doc, error) {
	deptKeys, eventKeys := []string{""}, []string{""}
	if res.DeptName != "" {
		deptKeys = legacyDeptKeys
	}
	if res.EventName != "" {
		eventKeys = legacyEventKeys
	}

	var out []docstore.Doc
	seen := make(map[string]bool)
	for _, dk := range deptKeys {
		for _, ek := range eventKeys {
			q := docstore.Query{Collection: legacyCollection}
			if dk != "" {
				q.Filters = append(q.Filters, docstore.In(dk, []string{res.DeptName, f.DeptID}))
			}
			if ek != "" {
				q.Filters = append(q.Filters, docstore.Eq(ek, res.EventName))
			}
			docs, err := s.store.Find(ctx, q)
			if err != nil {
				return nil, apperr.Store("find", legacyCollection, err)
			}
			for _, d := range docs {
				if seen[d.ID] {
					continue
				}
				seen[d.ID] = true
				out = append(out, d)
			}
		}
	}
	return out, nil
}
