package export

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tantrafest/tantra/internal/app/system/apperr"
	"github.com/tantrafest/tantra/internal/domain/models"
	"github.com/xuri/excelize/v2"
	"pgregory.net/rapid"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Computer Science!!", "computer_science"},
		{"", "value"},
		{"  __ ", "value"},
		{"Robo-Race 2025", "robo_race_2025"},
		{"__ECE__", "ece"},
		{"Électronique", "lectronique"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.in); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeToken_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.String().Draw(rt, "in")
		got := SanitizeToken(in)
		if got == "" {
			rt.Fatal("empty token")
		}
		if strings.HasPrefix(got, "_") || strings.HasSuffix(got, "_") || strings.Contains(got, "__") {
			rt.Fatalf("bad underscores in %q", got)
		}
		for _, c := range got {
			if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_') {
				rt.Fatalf("unexpected %q in %q", c, got)
			}
		}
		if SanitizeToken(got) != got {
			rt.Fatalf("not idempotent on %q", got)
		}
	})
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "tantra_all_departments_all_events.xlsx", Filename("", "", "", FormatXLSX))
	assert.Equal(t, "tantra_computer_science_all_events.pdf", Filename("tantra", "Computer Science", "", FormatPDF))
	assert.Equal(t, "fest_cse_robo_race.xlsx", Filename("fest", "CSE", "Robo Race!", FormatXLSX))
	assert.Equal(t, "tantra_value_value.xlsx", Filename("tantra", "!!", "--", FormatXLSX))
}

func TestTableFromRows_Rectangular(t *testing.T) {
	table := TableFromRows([]models.ExportRow{
		{Name: "Amy", DeptName: "A"},
		{},
	})
	require.Equal(t, Headers, table.Headers)
	require.Len(t, table.Rows, 2)
	for _, row := range table.Rows {
		assert.Len(t, row, len(Headers))
	}
	assert.Equal(t, "Amy", table.Rows[0][0])
	assert.Equal(t, "A", table.Rows[0][7])
	assert.Equal(t, "", table.Rows[1][9])
}

func TestXLSX_Render(t *testing.T) {
	table := TableFromRows([]models.ExportRow{
		{Name: "Amy", DeptName: "A", TransactionID: "ABCDEF123456"},
		{Name: "Zoe", DeptName: "B"},
	})
	var buf bytes.Buffer
	require.NoError(t, XLSX{}.Render(&buf, table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, "Amy", rows[1][0])
	assert.Equal(t, "ABCDEF123456", rows[1][8])
	// GetRows may drop trailing empty cells.
	require.GreaterOrEqual(t, len(rows[2]), 8)
	assert.Equal(t, "Zoe", rows[2][0])
	assert.Equal(t, "B", rows[2][7])
	for _, v := range rows[2][8:] {
		assert.Empty(t, v)
	}
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}

func TestPDF_Render(t *testing.T) {
	rows := make([]models.ExportRow, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, models.ExportRow{Name: "Participant With A Fairly Long Name", College: "Institute", DeptName: "CSE"})
	}
	var buf bytes.Buffer
	require.NoError(t, PDF{}.Render(&buf, TableFromRows(rows)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "application/pdf", http.DetectContentType(buf.Bytes()))
}

func TestRegistry_Lookup(t *testing.T) {
	all, err := NewRegistry("xlsx", " PDF ")
	require.NoError(t, err)

	r, err := all.Lookup("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, r.Format())

	_, err = all.Lookup("csv")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))

	xlsxOnly, err := NewRegistry("xlsx")
	require.NoError(t, err)
	_, err = xlsxOnly.Lookup("pdf")
	assert.True(t, errors.Is(err, apperr.ErrCapabilityUnavailable))
	assert.Equal(t, http.StatusInternalServerError, apperr.HTTPStatus(err))
	assert.Contains(t, apperr.Message(err), "export_formats")
	assert.Equal(t, []Format{FormatXLSX}, xlsxOnly.Enabled())
}

func TestNewRegistry_UnknownFormat(t *testing.T) {
	_, err := NewRegistry(ParseFormats("xlsx, docx")...)
	assert.Error(t, err)
}

func TestParseFormats(t *testing.T) {
	assert.Equal(t, []string{"xlsx", "pdf"}, ParseFormats(" xlsx, ,pdf "))
	assert.Nil(t, ParseFormats(""))
}
