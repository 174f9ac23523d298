package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arielreyes/crewsight/pkg/utils/textnorm"
)

// Separators tried when sniffing, in preference order.
var candidateSeparators = []rune{',', ';', '\t', '|'}

// SniffSeparator picks the candidate separator that appears most often in
// the first line. Comma wins ties and empty input.
func SniffSeparator(data []byte) rune {
	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}

	best := ','
	bestCount := 0
	for _, sep := range candidateSeparators {
		count := bytes.Count(firstLine, []byte(string(sep)))
		if count > bestCount {
			best = sep
			bestCount = count
		}
	}
	return best
}

// ReadTable decodes and parses delimited bytes into a raw table. The first
// row is taken as the header; BOM remnants and surrounding whitespace are
// stripped from header cells. Short rows are padded, long rows truncated.
func ReadTable(data []byte) (*Table, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = SniffSeparator(decoded)
	// Mismatched column counts are handled below, not rejected.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(textnorm.StripBOM(h))
	}

	headerCount := len(headers)
	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Unparsable line: skip it rather than failing the whole file
			continue
		}

		if len(row) < headerCount {
			padded := make([]string, headerCount)
			copy(padded, row)
			row = padded
		} else if len(row) > headerCount {
			row = row[:headerCount]
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}
