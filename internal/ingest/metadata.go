package ingest

import (
	"regexp"
	"strings"
)

// Metadata is best-effort customer identity pulled from the export
// preamble. The fields are optional and carry no correctness contract;
// they exist only to label the analysis audit log and never influence
// the recommendation itself.
type Metadata struct {
	CustomerName string
	MeterNumber  string
}

var (
	customerLabels = []string{"שם לקוח", "שם הלקוח"}
	meterLabels    = []string{"מספר מונה", "מס' מונה", "מונה"}

	meterNumberRe = regexp.MustCompile(`^\d{5,12}$`)
)

// ExtractMetadata scans preamble cells for labeled customer-name and
// meter-number values. A value is taken from the cell following its
// label, or from a "label: value" cell. Unlabeled digit runs that look
// like a meter number are a last-resort fallback.
func ExtractMetadata(preamble [][]string) Metadata {
	var meta Metadata
	for _, row := range preamble {
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if meta.CustomerName == "" {
				if v := labeledValue(cell, row, i, customerLabels); v != "" {
					meta.CustomerName = v
				}
			}
			if meta.MeterNumber == "" {
				if v := labeledValue(cell, row, i, meterLabels); meterNumberRe.MatchString(v) {
					meta.MeterNumber = v
				}
			}
		}
	}
	if meta.MeterNumber == "" {
		for _, row := range preamble {
			for _, cell := range row {
				if meterNumberRe.MatchString(strings.TrimSpace(cell)) {
					meta.MeterNumber = strings.TrimSpace(cell)
					return meta
				}
			}
		}
	}
	return meta
}

// labeledValue returns the value associated with cell if cell carries
// one of the labels, either inline ("label: value") or in the next
// cell of the row.
func labeledValue(cell string, row []string, idx int, labels []string) string {
	for _, label := range labels {
		if !strings.Contains(cell, label) {
			continue
		}
		if rest := strings.TrimSpace(strings.TrimPrefix(cell, label)); rest != cell {
			if rest = strings.TrimSpace(strings.TrimLeft(rest, ":-")); rest != "" {
				return rest
			}
		}
		if idx+1 < len(row) {
			return strings.TrimSpace(row[idx+1])
		}
	}
	return ""
}
