package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Canonical column names every input table is mapped onto.
const (
	ColCollaborator  = "Collaborator"
	ColDepartment    = "Department"
	ColID            = "ID"
	ColResidenceCity = "ResidenceCity"
	ColDate          = "Date"
	ColActivity      = "Activity"
)

// RequiredColumns lists the six canonical columns, in schema order.
var RequiredColumns = []string{
	ColCollaborator, ColDepartment, ColID, ColResidenceCity, ColDate, ColActivity,
}

// Record is one normalized roster row. ID is either empty (unparseable) or
// canonical `digits-checkdigit` form; Date is always a valid calendar day.
type Record struct {
	Collaborator  string
	Department    string
	ID            string
	ResidenceCity string
	Date          time.Time
	Activity      string
}

// Table is a raw parsed table before schema normalization.
type Table struct {
	Headers []string
	Rows    [][]string
}

// MissingColumnsError is returned when required canonical columns are absent
// after header mapping. It enumerates what is missing and what was detected
// so the operator can fix the source file.
type MissingColumnsError struct {
	Missing  []string
	Detected []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s (detected: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Detected, ", "))
}
