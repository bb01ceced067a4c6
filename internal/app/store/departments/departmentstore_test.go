package departmentstore_test

import (
	"errors"
	"testing"

	departmentstore "github.com/tantrafest/tantra/internal/app/store/departments"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/domain/models"
	"github.com/tantrafest/tantra/internal/testutil"
)

func TestStore_CreateAndGet(t *testing.T) {
	fx := testutil.NewFixtures(t)
	store := departmentstore.New(fx.Store())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Department{Name: " Computer Science ", QRURL: "/static/qr/cse.png"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Computer Science" {
		t.Errorf("Name: got %q", got.Name)
	}
	if got.QRURL != "/static/qr/cse.png" {
		t.Errorf("QRURL: got %q", got.QRURL)
	}
}

func TestStore_Create_RequiresName(t *testing.T) {
	fx := testutil.NewFixtures(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := departmentstore.New(fx.Store()).Create(ctx, models.Department{}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	fx := testutil.NewFixtures(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := departmentstore.New(fx.Store()).Get(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_Lookup(t *testing.T) {
	fx := testutil.NewFixtures(t)
	cse := fx.CreateDepartment("Computer Science")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lk, err := departmentstore.New(fx.Store()).Lookup(ctx)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got := lk.Name(cse); got != "Computer Science" {
		t.Errorf("by id: got %q", got)
	}
	if got := lk.Name("Mechanical"); got != "Mechanical" {
		t.Errorf("unknown ref should pass through, got %q", got)
	}
}

func TestStore_Documents(t *testing.T) {
	fx := testutil.NewFixtures(t)
	id := fx.CreateDepartment("ECE")
	ctx, cancel := testutil.TestContext()
	defer cancel()

	docs, err := departmentstore.New(fx.Store()).Documents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0]["id"] != id || docs[0]["name"] != "ECE" {
		t.Errorf("got %v", docs)
	}
}
