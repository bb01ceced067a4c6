package exportrows

import (
	"sort"

	"github.com/tantrafest/tantra/internal/domain/models"
)

// SortMode selects the row ordering.
type SortMode int

const (
	// ByDeptEventName orders by department, event, then name. Used when no
	// single event is selected.
	ByDeptEventName SortMode = iota
	// ByDeptName orders by department then name; the event column is constant.
	ByDeptName
)

func (m SortMode) String() string {
	if m == ByDeptName {
		return "dept,name"
	}
	return "dept,event,name"
}

// ModeFor returns the ordering for a listing with or without a selected event.
func ModeFor(eventSelected bool) SortMode {
	if eventSelected {
		return ByDeptName
	}
	return ByDeptEventName
}

// SortRows sorts rows in place. Comparison is byte-wise, so "" sorts first and
// upper case before lower case. Rows with equal keys keep their input order.
func SortRows(rows []models.ExportRow, mode SortMode) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.DeptName != b.DeptName {
			return a.DeptName < b.DeptName
		}
		if mode == ByDeptEventName && a.EventName != b.EventName {
			return a.EventName < b.EventName
		}
		return a.Name < b.Name
	})
}
