// Package export renders export rows as downloadable files.
//
// Every format shares one header list and one table shape; a Renderer only
// decides how the table is encoded.
package export

import (
	"io"

	"github.com/tantrafest/tantra/internal/domain/models"
)

// Format names an output encoding, as given in the "format" query parameter.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// KnownFormats lists every format this build can render, in preference order.
var KnownFormats = []Format{FormatXLSX, FormatPDF}

// Headers is the column order of every export.
var Headers = []string{
	"name",
	"email",
	"phone",
	"college",
	"branch",
	"year",
	"event_name",
	"dept_name",
	"transaction_id",
	"registration_date",
}

// Table is a rectangular header plus rows grid.
type Table struct {
	Headers []string
	Rows    [][]string
}

// TableFromRows lays rows out under Headers. Every cell exists; values the
// row does not carry are "".
func TableFromRows(rows []models.ExportRow) Table {
	t := Table{Headers: append([]string(nil), Headers...), Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		cells := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			cells[i] = r.Column(h)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// Renderer encodes a table in one format.
type Renderer interface {
	Format() Format
	ContentType() string
	Render(w io.Writer, t Table) error
}
