package dataset

import (
	"strings"
	"time"

	"github.com/arielreyes/crewsight/pkg/core/identity"
	"github.com/arielreyes/crewsight/pkg/utils/textnorm"
)

// headerMappings maps folded header names onto canonical columns. Source
// exports name these columns in Spanish, English, or creative variations.
var headerMappings = map[string]string{
	// Collaborator
	"colaborador":  ColCollaborator,
	"collaborator": ColCollaborator,
	"nombre":       ColCollaborator,
	"name":         ColCollaborator,
	"full name":    ColCollaborator,

	// Department
	"departamento": ColDepartment,
	"department":   ColDepartment,
	"gerencia":     ColDepartment,
	"depto":        ColDepartment,
	"dept":         ColDepartment,

	// ID
	"rut":             ColID,
	"id":              ColID,
	"national id":     ColID,
	"identificacion":  ColID,
	"rut colaborador": ColID,

	// ResidenceCity (a contains-rule also applies, see mapHeader)
	"residence city": ColResidenceCity,
	"city":           ColResidenceCity,
	"ciudad":         ColResidenceCity,

	// Date
	"fecha": ColDate,
	"date":  ColDate,
	"dia":   ColDate,
	"day":   ColDate,

	// Activity
	"actividad":        ColActivity,
	"actividad diaria": ColActivity,
	"activity":         ColActivity,
	"carga":            ColActivity,
	"carga diaria":     ColActivity,
}

// mapHeader maps one raw header to a canonical column name, or returns the
// header unchanged when nothing matches.
func mapHeader(raw string) string {
	folded := textnorm.Fold(textnorm.StripBOM(raw))
	if canonical, ok := headerMappings[folded]; ok {
		return canonical
	}
	// "Ciudad Residencia", "ciudad de residencia", etc.
	if strings.Contains(folded, "ciudad") && strings.Contains(folded, "residenc") {
		return ColResidenceCity
	}
	return raw
}

// Date layouts accepted for the Date column: ISO first, then the
// day-first forms the source systems emit.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	// Single-digit day/month forms, e.g. "5/6/2024".
	"2/1/2006",
	"2-1-2006",
}

// ParseDate coerces a raw date string to a calendar day, or returns false.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Normalize maps a raw table onto the canonical schema and coerces each row
// into a Record. Rows whose date cannot be parsed are dropped silently;
// unparseable IDs become the empty string, and collaborator names are
// re-cased for display. Returns MissingColumnsError when any of the six
// canonical columns is absent after mapping.
func Normalize(table *Table) ([]Record, error) {
	headers := make([]string, len(table.Headers))
	for i, h := range table.Headers {
		headers[i] = mapHeader(h)
	}

	rows := collapseDuplicateIDColumns(headers, table.Rows)

	// After collapsing, the first occurrence of each canonical name wins.
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, seen := colIndex[h]; !seen {
			colIndex[h] = i
		}
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := colIndex[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing, Detected: headers}
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		date, ok := ParseDate(row[colIndex[ColDate]])
		if !ok {
			continue
		}
		records = append(records, Record{
			Collaborator:  identity.NormalizeName(row[colIndex[ColCollaborator]]),
			Department:    strings.TrimSpace(row[colIndex[ColDepartment]]),
			ID:            identity.Normalize(row[colIndex[ColID]]),
			ResidenceCity: strings.TrimSpace(row[colIndex[ColResidenceCity]]),
			Date:          date,
			Activity:      strings.TrimSpace(row[colIndex[ColActivity]]),
		})
	}

	return records, nil
}

// collapseDuplicateIDColumns merges multiple columns mapped to ID into the
// first one: blanks in the base column are filled row by row from the next
// duplicate, preserving left-to-right precedence. The merged values are
// re-normalized later in Normalize.
func collapseDuplicateIDColumns(headers []string, rows [][]string) [][]string {
	var idIdxs []int
	for i, h := range headers {
		if h == ColID {
			idIdxs = append(idIdxs, i)
		}
	}
	if len(idIdxs) <= 1 {
		return rows
	}

	base := idIdxs[0]
	for _, row := range rows {
		for _, idx := range idIdxs[1:] {
			if strings.TrimSpace(row[base]) == "" {
				row[base] = row[idx]
			}
		}
	}

	// Rename the duplicates so only the base column maps to ID.
	for _, idx := range idIdxs[1:] {
		headers[idx] = headers[idx] + " (duplicate)"
	}
	return rows
}

// Parse is the full ingestion path: decode, read, and normalize.
func Parse(data []byte) ([]Record, error) {
	table, err := ReadTable(data)
	if err != nil {
		return nil, err
	}
	return Normalize(table)
}
