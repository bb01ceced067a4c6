package exportrows_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tantrafest/tantra/internal/app/store/queries/exportrows"
	"github.com/tantrafest/tantra/internal/domain/models"
)

func TestNormalizeRegistration_MissingFieldsAreEmpty(t *testing.T) {
	row := exportrows.NormalizeRegistration(map[string]any{}, map[string]any{"name": "Amy"}, models.Event{}, nil)
	assert.Equal(t, models.ExportRow{Name: "Amy"}, row)
}

func TestNormalizeRegistration_Aliases(t *testing.T) {
	reg := map[string]any{
		"transactionId": "ABCDEF123456",
		"created_at":    time.Date(2025, 1, 30, 8, 0, 0, 0, time.UTC),
	}
	p := map[string]any{
		"participant-name": "Bob",
		"email":            "bob@example.com",
		"mobile":           int64(9876543210),
		"college":          "NIT",
		"branch/Class":     "CSE-A",
		"year":             2,
	}
	ev := models.Event{ID: "3", Name: "Robo Race", Department: "d1"}
	lookup := models.DepartmentLookup{"d1": "Mechanical"}

	row := exportrows.NormalizeRegistration(reg, p, ev, lookup)
	assert.Equal(t, models.ExportRow{
		Name:             "Bob",
		Email:            "bob@example.com",
		Phone:            "9876543210",
		College:          "NIT",
		Branch:           "CSE-A",
		Year:             "2",
		EventName:        "Robo Race",
		DeptName:         "Mechanical",
		TransactionID:    "ABCDEF123456",
		RegistrationDate: "2025-01-30T08:00:00Z",
	}, row)
}

func TestNormalizeRegistration_DepartmentName(t *testing.T) {
	lookup := models.DepartmentLookup{"d1": "Computer Science"}
	tests := []struct {
		name string
		reg  map[string]any
		ev   models.Event
		want string
	}{
		{"denormalized name wins", map[string]any{"dept_name": "CSE (old)"}, models.Event{Department: "d1"}, "CSE (old)"},
		{"event department as id", map[string]any{}, models.Event{Department: "d1"}, "Computer Science"},
		{"event department as name", map[string]any{}, models.Event{Department: "Civil"}, "Civil"},
		{"legacy dept_id on event", map[string]any{}, models.Event{DeptID: "d1"}, "Computer Science"},
		{"nothing known", map[string]any{}, models.Event{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := exportrows.NormalizeRegistration(tt.reg, map[string]any{}, tt.ev, lookup)
			assert.Equal(t, tt.want, row.DeptName)
		})
	}
}

func TestNormalizeRegistration_EventNameFallsBackToDenormalized(t *testing.T) {
	row := exportrows.NormalizeRegistration(map[string]any{"event_name": "Quiz"}, nil, models.Event{}, nil)
	assert.Equal(t, "Quiz", row.EventName)
}

func TestNormalizeLegacy(t *testing.T) {
	doc := map[string]any{
		"name":          "Zoe",
		"event":         "Hackathon",
		"department":    "d2",
		"transactionId": "XYZ987654321",
	}
	row := exportrows.NormalizeLegacy(doc, models.DepartmentLookup{"d2": "ECE"})
	assert.Equal(t, models.ExportRow{
		Name:          "Zoe",
		EventName:     "Hackathon",
		DeptName:      "ECE",
		TransactionID: "XYZ987654321",
	}, row)
}

func TestParticipantFields_HyphenatedKeys(t *testing.T) {
	body := map[string]any{
		"participant-name":    "Amy",
		"participant-email":   "amy@example.com",
		"participant-phone":   "98765",
		"participant-college": "NIT",
		"branch/Class":        "ECE",
		"participant-year":    float64(3),
		"transaction-id":      "ABCDEF123456",
	}
	assert.Equal(t, models.Participant{
		Name: "Amy", Email: "amy@example.com", Phone: "98765",
		College: "NIT", Branch: "ECE", Year: "3",
	}, exportrows.ParticipantFields(body))
	assert.Equal(t, "ABCDEF123456", exportrows.TransactionID(body))
}
