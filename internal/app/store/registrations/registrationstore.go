// internal/app/store/registrations/registrationstore.go
package registrationstore

import (
	"context"
	"time"

	"github.com/tantrafest/tantra/internal/app/store/docstore"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/domain/models"
)

// Collection holds registrations written by the current registration form.
const Collection = "registrations"

type Store struct {
	ds docstore.Store
}

func New(ds docstore.Store) *Store {
	return &Store{ds: ds}
}

// Create writes a new registration under a generated ID. Registrations are
// never deduplicated: submitting the same participant for the same event twice
// stores two documents.
func (s *Store) Create(ctx context.Context, r models.Registration) (models.Registration, error) {
	if r.RegisteredAt.IsZero() {
		r.RegisteredAt = time.Now().UTC()
	}
	if r.Status == "" {
		r.Status = models.RegistrationStatusRegistered
	}
	id, err := s.ds.Create(ctx, Collection, "", map[string]any{
		"event_id":       r.EventID,
		"event_name":     r.EventName,
		"dept_id":        r.DeptID,
		"dept_name":      r.DeptName,
		"participant":    r.Participant.Fields(),
		"transaction_id": r.TransactionID,
		"registered_at":  r.RegisteredAt,
		"status":         r.Status,
	})
	if err != nil {
		return models.Registration{}, apperr.Store("create", Collection, err)
	}
	r.ID = id
	return r, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.ds.Count(ctx, Collection)
	if err != nil {
		return 0, apperr.Store("count", Collection, err)
	}
	return n, nil
}
