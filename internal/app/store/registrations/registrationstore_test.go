package registrationstore_test

import (
	"testing"

	registrationstore "github.com/tantrafest/tantra/internal/app/store/registrations"
	"github.com/tantrafest/tantra/internal/domain/models"
	"github.com/tantrafest/tantra/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	fx := testutil.NewFixtures(t)
	store := registrationstore.New(fx.Store())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	reg, err := store.Create(ctx, models.Registration{
		EventID:       "3",
		EventName:     "Robo Race",
		Participant:   models.Participant{Name: "Amy", Email: "amy@example.com"},
		TransactionID: "ABCDEF123456",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if reg.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if reg.RegisteredAt.IsZero() {
		t.Error("expected RegisteredAt to be set")
	}
	if reg.Status != models.RegistrationStatusRegistered {
		t.Errorf("Status: got %q", reg.Status)
	}

	doc, err := fx.Store().Get(ctx, registrationstore.Collection, reg.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.String("event_id") != "3" || doc.String("transaction_id") != "ABCDEF123456" {
		t.Errorf("stored fields: %v", doc.Fields)
	}
	p, ok := doc.Map("participant")
	if !ok || p["name"] != "Amy" || p["email"] != "amy@example.com" {
		t.Errorf("participant: %#v", doc.Fields["participant"])
	}
}

func TestStore_Create_DuplicatesAreKept(t *testing.T) {
	fx := testutil.NewFixtures(t)
	store := registrationstore.New(fx.Store())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := models.Registration{EventID: "1", Participant: models.Participant{Name: "Amy", Email: "amy@example.com"}}
	first, err := store.Create(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Create(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("expected distinct IDs for repeated submissions")
	}
	n, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count: got %d, want 2", n)
	}
}
