package events_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	"github.com/tantrafest/tantra/internal/app/features/events"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T, fx *testutil.Fixtures) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	h := events.NewHandler(fx.Store(), nil, errorsfeature.NewErrorLogger(logger), logger)
	r := chi.NewRouter()
	r.Group(events.Routes(h))
	return r
}

func getEvent(t *testing.T, fx *testutil.Fixtures, id string) map[string]any {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	doc, err := fx.Store().Get(ctx, eventstore.Collection, id)
	if err != nil {
		t.Fatalf("get event %s: %v", id, err)
	}
	return doc.Fields
}

func TestServeDeptEvents(t *testing.T) {
	fx := testutil.NewFixtures(t)
	cse := fx.CreateDepartment("CSE")
	fx.CreateEvent("1", cse, "Hackathon", 1)
	fx.CreateLegacyEvent("2", cse, "Quiz")
	fx.CreateEvent("3", "other", "Robo Race", 1)

	rec := testutil.Serve(newRouter(t, fx), httptest.NewRequest("GET", "/dept_events/"+cse, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := testutil.DecodeJSON(t, rec)
	if body["dept_id"] != cse {
		t.Errorf("dept_id = %v", body["dept_id"])
	}
	evs, _ := body["events"].([]any)
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2: %v", len(evs), evs)
	}
	first := evs[0].(map[string]any)
	if first["id"] != "1" || first["name"] != "Hackathon" || first["status"] != float64(1) {
		t.Errorf("unexpected first event: %v", first)
	}
}

func TestServeDeptEvents_NoMatches(t *testing.T) {
	fx := testutil.NewFixtures(t)
	rec := testutil.Serve(newRouter(t, fx), httptest.NewRequest("GET", "/dept_events/nope", nil))
	body := testutil.DecodeJSON(t, rec)
	evs, ok := body["events"].([]any)
	if !ok || len(evs) != 0 {
		t.Errorf("events = %#v, want empty list", body["events"])
	}
}

func TestServeEvent(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateEvent("4", "d1", "Hackathon", "close")
	router := newRouter(t, fx)

	rec := testutil.Serve(router, httptest.NewRequest("GET", "/event/4", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	ev := testutil.DecodeJSON(t, rec)["event"].(map[string]any)
	if ev["id"] != "4" || ev["department"] != "d1" || ev["status"] != float64(0) {
		t.Errorf("unexpected event: %v", ev)
	}
	if _, ok := ev["price"]; !ok {
		t.Error("price should always be present")
	}

	rec = testutil.Serve(router, httptest.NewRequest("GET", "/event/99", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if testutil.DecodeJSON(t, rec)["error"] != "not found" {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleCreate(t *testing.T) {
	fx := testutil.NewFixtures(t)
	cse := fx.CreateDepartmentWithQR("CSE", "/static/qr/cse.png")
	fx.CreateEvent("7", cse, "Quiz", 1)
	fx.CreateEvent("abc", cse, "Draft", 1)

	form := url.Values{
		"dept_id":     {cse},
		"name":        {"  Hackathon "},
		"description": {`<b>24h</b><script>alert(1)</script>`},
		"price":       {"100"},
		"status":      {"0"},
	}
	rec := testutil.Serve(newRouter(t, fx), testutil.NewFormRequest("/add_event", form))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("status = %d, location = %q", rec.Code, rec.Header().Get("Location"))
	}

	got := getEvent(t, fx, "8")
	if got["name"] != "Hackathon" {
		t.Errorf("name = %v", got["name"])
	}
	if got["id"] != 8 {
		t.Errorf("id = %#v, want 8", got["id"])
	}
	if got["payment_qr_url"] != "/static/qr/cse.png" {
		t.Errorf("payment_qr_url = %v", got["payment_qr_url"])
	}
	if got["status"] != 0 {
		t.Errorf("status = %#v, want 0", got["status"])
	}
	if got["description"] != "<b>24h</b>" {
		t.Errorf("description = %q", got["description"])
	}
}

func TestHandleCreate_UnknownDepartmentStillCreates(t *testing.T) {
	fx := testutil.NewFixtures(t)
	form := url.Values{"dept_id": {"gone"}, "name": {"Quiz"}}
	rec := testutil.Serve(newRouter(t, fx), testutil.NewFormRequest("/add_event", form))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	got := getEvent(t, fx, "1")
	if got["payment_qr_url"] != "" || got["status"] != 1 {
		t.Errorf("unexpected event: %v", got)
	}
}

func TestHandleCreate_MissingNameDoesNotStore(t *testing.T) {
	fx := testutil.NewFixtures(t)
	cse := fx.CreateDepartment("CSE")
	router := newRouter(t, fx)

	func() {
		defer func() {
			if r := recover(); r != nil {
				// Template rendering may panic in tests - that's expected
			}
		}()
		testutil.Serve(router, testutil.NewFormRequest("/add_event", url.Values{"dept_id": {cse}}))
	}()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, err := fx.Store().Count(ctx, eventstore.Collection)
	if err != nil || n != 0 {
		t.Errorf("count = %d, err = %v; want no events", n, err)
	}
}

func TestHandleToggle(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateEvent("1", "d1", "Hackathon", "open")
	fx.CreateEvent("2", "d1", "Quiz", 1)
	router := newRouter(t, fx)

	for _, id := range []string{"1", "2", "missing", ""} {
		rec := testutil.Serve(router, testutil.NewFormRequest("/toggle_event_status", url.Values{"event_id": {id}}))
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
			t.Errorf("event %q: status = %d, location = %q", id, rec.Code, rec.Header().Get("Location"))
		}
	}

	if got := getEvent(t, fx, "1")["status"]; got != "close" {
		t.Errorf("event 1 status = %#v, want \"close\"", got)
	}
	if got := getEvent(t, fx, "2")["status"]; got != 0 {
		t.Errorf("event 2 status = %#v, want 0", got)
	}
}

func TestHandleFix(t *testing.T) {
	fx := testutil.NewFixtures(t)
	cse := fx.CreateDepartment("CSE")
	fx.CreateLegacyEvent("1", "stale", "Quiz")
	router := newRouter(t, fx)

	rec := testutil.Serve(router, testutil.NewFormRequest("/fix_events", url.Values{"event_id": {"1"}, "dept_id": {cse}}))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/fix_events" {
		t.Fatalf("status = %d, location = %q", rec.Code, rec.Header().Get("Location"))
	}
	if got := getEvent(t, fx, "1")["dept_id"]; got != cse {
		t.Errorf("dept_id = %v, want %s", got, cse)
	}

	rec = testutil.Serve(router, testutil.NewFormRequest("/fix_events", url.Values{"event_id": {"404"}, "dept_id": {cse}}))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("unknown event: status = %d", rec.Code)
	}
}
