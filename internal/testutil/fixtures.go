package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tantrafest/tantra/internal/app/store/docstore"
)

// TestContext returns a context with a short timeout for store calls in tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures seeds an in-memory document store with techfest data.
type Fixtures struct {
	store *docstore.Memory
	t     *testing.T
}

// NewFixtures creates a Fixtures backed by a fresh in-memory store.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	return &Fixtures{store: docstore.NewMemory(), t: t}
}

// Store returns the underlying store for direct access in tests.
func (f *Fixtures) Store() *docstore.Memory {
	return f.store
}

func (f *Fixtures) put(collection, id string, fields map[string]any) string {
	f.t.Helper()
	ctx, cancel := TestContext()
	defer cancel()
	id, err := f.store.Create(ctx, collection, id, fields)
	if err != nil {
		f.t.Fatalf("seed %s: %v", collection, err)
	}
	return id
}

// CreateDepartment stores a department and returns its ID.
func (f *Fixtures) CreateDepartment(name string) string {
	f.t.Helper()
	return f.put("departments", "", map[string]any{
		"name":       name,
		"created_at": time.Now().UTC(),
	})
}

// CreateDepartmentWithQR stores a department carrying a payment QR reference.
func (f *Fixtures) CreateDepartmentWithQR(name, qrURL string) string {
	f.t.Helper()
	return f.put("departments", "", map[string]any{
		"name":   name,
		"qr_url": qrURL,
	})
}

// CreateEvent stores an event under the given numeric-string ID. dept is stored
// in the "department" field as given (an ID or a display name). A nil status
// leaves the field unset.
func (f *Fixtures) CreateEvent(id, dept, name string, status any) string {
	f.t.Helper()
	fields := map[string]any{
		"department": dept,
		"name":       name,
	}
	if status != nil {
		fields["status"] = status
	}
	return f.put("events", id, fields)
}

// CreateLegacyEvent stores an event that only carries the old dept_id join key.
func (f *Fixtures) CreateLegacyEvent(id, deptID, name string) string {
	f.t.Helper()
	return f.put("events", id, map[string]any{
		"dept_id": deptID,
		"name":    name,
	})
}

// CreateRegistration stores a registration with an inline participant.
func (f *Fixtures) CreateRegistration(eventID, name, email string) string {
	f.t.Helper()
	return f.put("registrations", "", map[string]any{
		"event_id": eventID,
		"participant": map[string]any{
			"name":  name,
			"email": email,
		},
		"status":        "registered",
		"registered_at": time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
	})
}

// CreateRawRegistration stores a registration document exactly as given.
func (f *Fixtures) CreateRawRegistration(fields map[string]any) string {
	f.t.Helper()
	return f.put("registrations", "", fields)
}

// CreateRawParticipant stores a participants document exactly as given.
func (f *Fixtures) CreateRawParticipant(fields map[string]any) string {
	f.t.Helper()
	return f.put("participants", "", fields)
}

// CreateProfile stores a participant profile in "participants" or "users".
func (f *Fixtures) CreateProfile(collection, id, name, email string) string {
	f.t.Helper()
	return f.put(collection, id, map[string]any{
		"name":  name,
		"email": email,
	})
}

// CreateLegacyParticipant stores a flat registration in the participants
// collection, the shape the first version of the registration site wrote.
func (f *Fixtures) CreateLegacyParticipant(name, email, event, department, txn string) string {
	f.t.Helper()
	return f.put("participants", "", map[string]any{
		"name":          name,
		"email":         email,
		"event":         event,
		"department":    department,
		"transactionId": txn,
	})
}
