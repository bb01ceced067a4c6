// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/domain/models"
)

// Collection holds event documents, keyed by decimal-string IDs.
const Collection = "events"

type Store struct {
	ds docstore.Store
}

func New(ds docstore.Store) *Store {
	return &Store{ds: ds}
}

// NextEventID returns 1 + the highest numeric event ID. Non-numeric IDs are
// ignored; an empty collection yields "1". IDs of removed events are never
// handed out again as long as a higher one still exists.
func (s *Store) NextEventID(ctx context.Context) (string, error) {
	docs, err := s.ds.Stream(ctx, Collection)
	if err != nil {
		return "", apperr.Store("stream", Collection, err)
	}
	highest := 0
	for _, d := range docs {
		n, err := strconv.Atoi(strings.TrimSpace(d.ID))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1), nil
}

// Create assigns the next event ID and stores the event. The status is written
// in its own encoding; the zero EventStatus is closed with the integer encoding,
// so callers normally pass models.StatusOpen or a parsed form value.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return models.Event{}, apperr.Validation("Event name is required.")
	}
	id, err := s.NextEventID(ctx)
	if err != nil {
		return models.Event{}, err
	}
	n, _ := strconv.Atoi(id)
	e.ID = id
	e.CreatedAt = time.Now().UTC()

	_, err = s.ds.Create(ctx, Collection, id, map[string]any{
		"id":             n,
		"department":     e.Department,
		"name":           e.Name,
		"description":    e.Description,
		"date":           e.Date,
		"time":           e.Time,
		"venue":          e.Venue,
		"image_url":      e.ImageURL,
		"payment_qr_url": e.PaymentQRURL,
		"price":          e.Price,
		"prize":          e.Prize,
		"status":         e.Status.Value(),
		"created_at":     e.CreatedAt,
	})
	if err != nil {
		return models.Event{}, apperr.Store("create", Collection, err)
	}
	return e, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Event, error) {
	doc, err := s.ds.Get(ctx, Collection, id)
	if err != nil {
		return models.Event{}, apperr.Store("get", Collection, err)
	}
	return FromDoc(doc), nil
}

func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	docs, err := s.ds.Stream(ctx, Collection)
	if err != nil {
		return nil, apperr.Store("stream", Collection, err)
	}
	return fromDocs(docs), nil
}

// ListByDepartment returns events whose "department" or legacy "dept_id" field
// equals any of refs (typically a department's ID and its display name).
// Each event appears once, in the order first seen.
func (s *Store) ListByDepartment(ctx context.Context, refs ...string) ([]models.Event, error) {
	var keys []string
	for _, r := range refs {
		if r = strings.TrimSpace(r); r != "" {
			keys = append(keys, r)
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var out []models.Event
	for _, field := range []string{"department", "dept_id"} {
		docs, err := s.ds.Find(ctx, docstore.Query{
			Collection: Collection,
			Filters:    []docstore.Filter{docstore.In(field, keys)},
		})
		if err != nil {
			return nil, apperr.Store("find", Collection, err)
		}
		for _, d := range docs {
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
			out = append(out, FromDoc(d))
		}
	}
	return out, nil
}

// ToggleStatus flips an event between open and closed and returns the new
// status. The stored encoding (1/0, "open"/"close", true/false) is preserved.
func (s *Store) ToggleStatus(ctx context.Context, id string) (models.EventStatus, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return models.EventStatus{}, err
	}
	next := ev.Status.Toggled()
	if err := s.ds.Update(ctx, Collection, id, map[string]any{"status": next.Value()}); err != nil {
		return models.EventStatus{}, apperr.Store("update", Collection, err)
	}
	return next, nil
}

// SetDeptID reassigns an event's legacy dept_id join key.
func (s *Store) SetDeptID(ctx context.Context, id, deptID string) error {
	if err := s.ds.Update(ctx, Collection, id, map[string]any{"dept_id": deptID}); err != nil {
		return apperr.Store("update", Collection, err)
	}
	return nil
}

// Documents returns every event as its raw fields with "id" set to the document ID.
func (s *Store) Documents(ctx context.Context) ([]map[string]any, error) {
	docs, err := s.ds.Stream(ctx, Collection)
	if err != nil {
		return nil, apperr.Store("stream", Collection, err)
	}
	return docstore.WithIDs(docs), nil
}

// FromDoc decodes an event document.
func FromDoc(d docstore.Doc) models.Event {
	ev := models.Event{
		ID:           d.ID,
		Department:   d.String("department"),
		DeptID:       d.String("dept_id"),
		Name:         d.String("name"),
		Description:  d.String("description"),
		Date:         d.String("date"),
		Time:         d.String("time"),
		Venue:        d.String("venue"),
		ImageURL:     d.String("image_url"),
		PaymentQRURL: d.String("payment_qr_url"),
		Price:        d.String("price"),
		Prize:        d.String("prize"),
		Status:       models.ParseEventStatus(d.Fields["status"]),
	}
	if t, ok := d.Fields["created_at"].(time.Time); ok {
		ev.CreatedAt = t
	}
	return ev
}

func fromDocs(docs []docstore.Doc) []models.Event {
	out := make([]models.Event, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDoc(d))
	}
	return out
}
