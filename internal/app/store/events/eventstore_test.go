package eventstore_test

import (
	"errors"
	"testing"

	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/domain/models"
	"github.com/tantrafest/tantra/internal/testutil"
)

func TestStore_NextEventID(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"empty collection", nil, "1"},
		{"max plus one", []string{"1", "7", "3"}, "8"},
		{"non-numeric ignored", []string{"1", "7", "abc"}, "8"},
		{"only non-numeric", []string{"xyz"}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := testutil.NewFixtures(t)
			for _, id := range tt.ids {
				fx.CreateEvent(id, "CSE", "Event "+id, 1)
			}
			ctx, cancel := testutil.TestContext()
			defer cancel()

			got, err := eventstore.New(fx.Store()).NextEventID(ctx)
			if err != nil {
				t.Fatalf("NextEventID failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStore_Create(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateEvent("4", "CSE", "Hackathon", 1)
	store := eventstore.New(fx.Store())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ev, err := store.Create(ctx, models.Event{Department: "d1", Name: "Robo Race", Status: models.StatusOpen})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if ev.ID != "5" {
		t.Errorf("ID: got %q, want 5", ev.ID)
	}
	doc, err := fx.Store().Get(ctx, eventstore.Collection, "5")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Fields["id"] != 5 {
		t.Errorf("numeric id field: got %#v", doc.Fields["id"])
	}
	if doc.Fields["status"] != 1 {
		t.Errorf("status: got %#v, want 1", doc.Fields["status"])
	}
}

func TestStore_Create_RequiresName(t *testing.T) {
	fx := testutil.NewFixtures(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	_, err := eventstore.New(fx.Store()).Create(ctx, models.Event{Name: "  "})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestStore_ToggleStatus_PreservesEncoding(t *testing.T) {
	tests := []struct {
		name    string
		initial any
		want    any
	}{
		{"int open", 1, 0},
		{"int closed", 0, 1},
		{"string open", "open", "close"},
		{"string close", "close", "open"},
		{"bool", true, false},
		{"missing is open", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := testutil.NewFixtures(t)
			fx.CreateEvent("1", "CSE", "Quiz", tt.initial)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			if _, err := eventstore.New(fx.Store()).ToggleStatus(ctx, "1"); err != nil {
				t.Fatalf("ToggleStatus failed: %v", err)
			}
			doc, _ := fx.Store().Get(ctx, eventstore.Collection, "1")
			if doc.Fields["status"] != tt.want {
				t.Errorf("status: got %#v, want %#v", doc.Fields["status"], tt.want)
			}
		})
	}
}

func TestStore_ToggleStatus_NotFound(t *testing.T) {
	fx := testutil.NewFixtures(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	_, err := eventstore.New(fx.Store()).ToggleStatus(ctx, "99")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_ListByDepartment(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateEvent("1", "d1", "By ID", 1)
	fx.CreateEvent("2", "Computer Science", "By Name", 1)
	fx.CreateLegacyEvent("3", "d1", "Legacy")
	fx.CreateEvent("4", "d2", "Other Dept", 1)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	evs, err := eventstore.New(fx.Store()).ListByDepartment(ctx, "d1", "Computer Science")
	if err != nil {
		t.Fatalf("ListByDepartment failed: %v", err)
	}
	var ids []string
	for _, e := range evs {
		ids = append(ids, e.ID)
	}
	want := []string{"1", "2", "3"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("got %v, want %v", ids, want)
			break
		}
	}

	none, err := eventstore.New(fx.Store()).ListByDepartment(ctx, "", " ")
	if err != nil || len(none) != 0 {
		t.Errorf("blank refs: got %v, %v", none, err)
	}
}

func TestStore_SetDeptID(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateLegacyEvent("1", "gone", "Quiz")
	store := eventstore.New(fx.Store())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.SetDeptID(ctx, "1", "d9"); err != nil {
		t.Fatalf("SetDeptID failed: %v", err)
	}
	ev, err := store.Get(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if ev.DeptID != "d9" {
		t.Errorf("DeptID: got %q", ev.DeptID)
	}
	if err := store.SetDeptID(ctx, "404", "d9"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing event: err = %v", err)
	}
}
