package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX parses an Excel meter export. The sheet has the same shape
// as the CSV variant: preamble rows, a Hebrew header row, then
// (date, time, consumption) data rows.
func ParseXLSX(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx export: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoDataSection
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %q: %w", sheets[0], err)
	}

	headerIdx := -1
	for i, row := range rows {
		joined := strings.Join(row, ",")
		if strings.Contains(joined, headerDate) && strings.Contains(joined, headerConsumption) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrNoDataSection
	}

	series, err := rowsToSeries(rows[headerIdx+1:])
	if err != nil {
		return nil, err
	}
	return &Result{Series: series, Meta: ExtractMetadata(rows[:headerIdx])}, nil
}
