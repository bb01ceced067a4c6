package registrations_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errorsfeature "github.com/tantrafest/tantra/internal/app/features/errors"
	"github.com/tantrafest/tantra/internal/app/features/registrations"
	registrationstore "github.com/tantrafest/tantra/internal/app/store/registrations"
	"github.com/tantrafest/tantra/internal/app/system/ratelimit"
	"github.com/tantrafest/tantra/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(fx *testutil.Fixtures, limiter *ratelimit.Limiter) http.Handler {
	logger := zap.NewNop()
	h := registrations.NewHandler(fx.Store(), errorsfeature.NewErrorLogger(logger), logger)
	r := chi.NewRouter()
	r.Group(registrations.Routes(h, limiter))
	return r
}

func storedRegistrations(t *testing.T, fx *testutil.Fixtures) []map[string]any {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	docs, err := fx.Store().Stream(ctx, registrationstore.Collection)
	require.NoError(t, err)
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Fields)
	}
	return out
}

func register(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.Serve(h, testutil.NewJSONRequest(t, "/api/register", body))
}

func TestRegister_CanonicalKeys(t *testing.T) {
	fx := testutil.NewFixtures(t)
	cse := fx.CreateDepartment("CSE")
	fx.CreateEvent("4", cse, "Hackathon", 1)

	rec := register(t, newRouter(fx, nil), map[string]any{
		"event_id":       "4",
		"name":           "  Asha   Rao ",
		"email":          "Asha@Example.COM",
		"phone":          "98450 12345",
		"college":        "RVCE",
		"branch":         "CSE",
		"year":           3,
		"transaction_id": "ABCDEF123456",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := testutil.DecodeJSON(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["saved"])
	assert.NotEmpty(t, body["id"])

	regs := storedRegistrations(t, fx)
	require.Len(t, regs, 1)
	reg := regs[0]
	assert.Equal(t, "4", reg["event_id"])
	assert.Equal(t, "Hackathon", reg["event_name"])
	assert.Equal(t, cse, reg["dept_id"])
	assert.Equal(t, "CSE", reg["dept_name"])
	assert.Equal(t, "ABCDEF123456", reg["transaction_id"])
	assert.Equal(t, "registered", reg["status"])

	p, ok := reg["participant"].(map[string]any)
	require.True(t, ok, "participant is %T", reg["participant"])
	assert.Equal(t, "Asha Rao", p["name"])
	assert.Equal(t, "asha@example.com", p["email"])
	assert.Equal(t, "3", p["year"])
}

func TestRegister_HyphenatedKeysMatchCanonical(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateEvent("2", "Mechanical", "Robo Race", 1)
	h := newRouter(fx, nil)

	canonical := map[string]any{
		"event_id": "2",
		"name":     "Ravi",
		"email":    "ravi@example.com",
		"phone":    "9000000000",
		"college":  "BMS",
		"branch":   "ME",
		"year":     "2",
	}
	hyphenated := map[string]any{
		"event-id":            "2",
		"participant-name":    "Ravi",
		"participant-email":   "ravi@example.com",
		"participant-phone":   "9000000000",
		"participant-college": "BMS",
		"participant-branch":  "ME",
		"participant-year":    "2",
	}
	require.Equal(t, http.StatusCreated, register(t, h, canonical).Code)
	require.Equal(t, http.StatusCreated, register(t, h, hyphenated).Code)

	regs := storedRegistrations(t, fx)
	require.Len(t, regs, 2)
	for _, reg := range regs {
		delete(reg, "registered_at")
	}
	assert.Equal(t, regs[0], regs[1])
	// Events that reference their department by display name keep it.
	assert.Equal(t, "Mechanical", regs[0]["dept_name"])
	assert.Equal(t, "", regs[0]["dept_id"])
}

func TestRegister_TransactionID(t *testing.T) {
	tests := []struct {
		txn  any
		want int
	}{
		{"ABCDEF123456", http.StatusCreated},
		{"abcDEF1234567890", http.StatusCreated},
		{"", http.StatusCreated},
		{"abc", http.StatusBadRequest},
		{"ABCDEF12345", http.StatusBadRequest},
		{"ABCDEF1234567890X", http.StatusBadRequest},
		{"ABCDEF-123456", http.StatusBadRequest},
		{123456789012, http.StatusCreated},
		{map[string]any{"a": "abc"}, http.StatusBadRequest},
		{[]any{"abc"}, http.StatusBadRequest},
		{[]any{"ABCDEF123456"}, http.StatusBadRequest},
		{true, http.StatusBadRequest},
	}
	for _, tt := range tests {
		fx := testutil.NewFixtures(t)
		rec := register(t, newRouter(fx, nil), map[string]any{
			"event_id":       "1",
			"name":           "Asha",
			"transaction_id": tt.txn,
		})
		assert.Equal(t, tt.want, rec.Code, "txn %v: %s", tt.txn, rec.Body.String())
		if tt.want == http.StatusBadRequest {
			assert.Contains(t, testutil.DecodeJSON(t, rec)["error"], "transaction_id")
			assert.Empty(t, storedRegistrations(t, fx))
		}
	}
}

func TestRegister_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing event", map[string]any{"name": "Asha"}, "event_id is required."},
		{"missing name", map[string]any{"event_id": "1"}, "name is required."},
		{"blank name", map[string]any{"event_id": "1", "name": "   "}, "name is required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := testutil.NewFixtures(t)
			rec := register(t, newRouter(fx, nil), tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, testutil.DecodeJSON(t, rec)["error"])
		})
	}
}

func TestRegister_InvalidJSON(t *testing.T) {
	fx := testutil.NewFixtures(t)
	for _, raw := range []string{"{not json", "[1,2]", "null"} {
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		rec := testutil.Serve(newRouter(fx, nil), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
	}
	assert.Empty(t, storedRegistrations(t, fx))
}

func TestRegister_DuplicatesAreStored(t *testing.T) {
	fx := testutil.NewFixtures(t)
	fx.CreateEvent("1", "CSE", "Quiz", 1)
	h := newRouter(fx, nil)
	body := map[string]any{"event_id": "1", "name": "Asha", "email": "asha@example.com"}

	require.Equal(t, http.StatusCreated, register(t, h, body).Code)
	require.Equal(t, http.StatusCreated, register(t, h, body).Code)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, err := registrationstore.New(fx.Store()).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestRegister_UnknownEventKeepsClientName(t *testing.T) {
	fx := testutil.NewFixtures(t)
	rec := register(t, newRouter(fx, nil), map[string]any{
		"event_id":   "99",
		"event_name": "Treasure Hunt",
		"name":       "Asha",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	regs := storedRegistrations(t, fx)
	require.Len(t, regs, 1)
	assert.Equal(t, "99", regs[0]["event_id"])
	assert.Equal(t, "Treasure Hunt", regs[0]["event_name"])
	assert.Equal(t, "", regs[0]["dept_name"])
}

func TestRegister_RateLimited(t *testing.T) {
	fx := testutil.NewFixtures(t)
	h := newRouter(fx, ratelimit.New(2, time.Minute))
	body := map[string]any{"event_id": "1", "name": "Asha"}

	assert.Equal(t, http.StatusCreated, register(t, h, body).Code)
	assert.Equal(t, http.StatusCreated, register(t, h, body).Code)
	rec := register(t, h, body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Len(t, storedRegistrations(t, fx), 2)
}

func TestRegister_OversizedBody(t *testing.T) {
	fx := testutil.NewFixtures(t)
	rec := register(t, newRouter(fx, nil), map[string]any{
		"event_id": "1",
		"name":     strings.Repeat("a", 70<<10),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, storedRegistrations(t, fx))
}
