// Package ingest turns raw utility meter exports into a clean,
// chronologically sorted reading series. The exports are
// semi-structured: a free-form preamble (customer and meter metadata),
// then a Hebrew header row, then the tabular data with separate date
// and time columns. The engine never sees any of this; it receives a
// model.ReadingSeries with one timestamp per row and malformed rows
// already dropped.
package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"power-switch/internal/model"
)

// Header markers of the tabular section in the export.
const (
	headerDate        = "תאריך"
	headerConsumption = "צריכה"
)

// ErrNoDataSection means no tabular data section could be located in
// the export.
var ErrNoDataSection = errors.New("could not find the data section in the meter export")

// Result is a parsed meter export.
type Result struct {
	Series model.ReadingSeries
	Meta   Metadata
}

// ParseFile dispatches on the file extension. Only .csv and .xlsx
// exports are supported.
func ParseFile(filename string, r io.Reader) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported meter export %q: expected .csv or .xlsx", filename)
	}
}

// ParseCSV parses a raw CSV meter export.
func ParseCSV(r io.Reader) (*Result, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read meter export: %w", err)
	}

	headerIdx := -1
	for i, line := range lines {
		if strings.Contains(line, headerDate) && strings.Contains(line, headerConsumption) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoDataSection
	}

	preamble := parsePreambleLines(lines[:headerIdx])

	cr := csv.NewReader(strings.NewReader(strings.Join(lines[headerIdx+1:], "\n")))
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A mangled row is the exporter's problem, not ours.
			continue
		}
		rows = append(rows, record)
	}

	series, err := rowsToSeries(rows)
	if err != nil {
		return nil, err
	}
	return &Result{Series: series, Meta: ExtractMetadata(preamble)}, nil
}

// rowsToSeries converts raw (date, time, consumption) rows into a
// sorted series. Rows with a missing or unparsable date/time are
// dropped; an empty or unparsable consumption cell counts as 0.
func rowsToSeries(rows [][]string) (model.ReadingSeries, error) {
	readings := make([]model.Reading, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		dateStr := strings.TrimSpace(row[0])
		timeStr := strings.TrimSpace(row[1])
		if dateStr == "" || timeStr == "" {
			continue
		}
		ts, err := time.Parse("02/01/2006 15:04", dateStr+" "+timeStr)
		if err != nil {
			continue
		}
		kwh, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || kwh < 0 {
			kwh = 0
		}
		readings = append(readings, model.Reading{Timestamp: ts, KWh: kwh})
	}
	return model.NewSeries(readings), nil
}

// parsePreambleLines splits the free-form lines above the header into
// CSV cells for metadata extraction.
func parsePreambleLines(lines []string) [][]string {
	var out [][]string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cr := csv.NewReader(strings.NewReader(line))
		cr.FieldsPerRecord = -1
		record, err := cr.Read()
		if err != nil {
			record = strings.Split(line, ",")
			for i := range record {
				record[i] = strings.Trim(record[i], `" `)
			}
		}
		out = append(out, record)
	}
	return out
}
