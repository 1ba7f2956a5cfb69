// Package catalog loads the provider plan catalog. Two on-disk shapes
// are supported: a YAML document (the native config format) and the
// legacy CSV sheet the catalog was originally maintained in.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"power-switch/internal/model"
)

type yamlCatalog struct {
	Plans []model.PlanDefinition `yaml:"plans"`
}

// Load reads a plan catalog, dispatching on the file extension
// (.yaml/.yml or .csv).
func Load(path string) ([]model.PlanDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".csv":
		return LoadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q: expected .yaml or .csv", path)
	}
}

// LoadYAML parses a catalog document of the form:
//
//	plans:
//	  - provider: pazgas
//	    plan_name: night owl
//	    week_days_applicable: Sunday-Thursday
//	    hours_applicable: "23:00-07:00"
//	    price_percentage_off: 20
func LoadYAML(r io.Reader) ([]model.PlanDefinition, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc yamlCatalog
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse plan catalog: %w", err)
	}
	if err := validate(doc.Plans); err != nil {
		return nil, err
	}
	return doc.Plans, nil
}

// LoadCSV parses the legacy catalog sheet. The header row names the
// columns; order does not matter, and the logo/url columns are
// optional.
func LoadCSV(r io.Reader) ([]model.PlanDefinition, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"provider", "plan_name", "week_days_applicable", "hours_applicable", "price_percentage_off"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog is missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var plans []model.PlanDefinition
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		pct, err := strconv.ParseFloat(field(record, "price_percentage_off"), 64)
		if err != nil {
			return nil, fmt.Errorf("plan %q: bad price_percentage_off: %w", field(record, "plan_name"), err)
		}
		plans = append(plans, model.PlanDefinition{
			Provider:           field(record, "provider"),
			PlanName:           field(record, "plan_name"),
			WeekDaysApplicable: field(record, "week_days_applicable"),
			HoursApplicable:    field(record, "hours_applicable"),
			PricePercentageOff: pct,
			LogoFilename:       field(record, "logo_filename"),
			ProviderURL:        field(record, "provider_url"),
		})
	}
	if err := validate(plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// validate rejects catalogs that cannot be evaluated at all. Malformed
// schedules are deliberately NOT rejected here: per-plan isolation at
// evaluation time keeps one bad entry from blocking the batch.
func validate(plans []model.PlanDefinition) error {
	if len(plans) == 0 {
		return errors.New("plan catalog is empty")
	}
	for _, p := range plans {
		if p.Provider == "" || p.PlanName == "" {
			return fmt.Errorf("catalog entry missing provider or plan_name: %+v", p)
		}
		if p.PricePercentageOff < 0 || p.PricePercentageOff > 100 {
			return fmt.Errorf("plan %s/%s: price_percentage_off %.2f outside [0,100]",
				p.Provider, p.PlanName, p.PricePercentageOff)
		}
	}
	return nil
}
