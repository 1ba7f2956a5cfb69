package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Every field has a
// sensible default, so a missing config file is not an error; the
// server runs on Default() alone.
type Config struct {
	Tariff   TariffConfig   `yaml:"tariff"`
	Analysis AnalysisConfig `yaml:"analysis"`

	// CatalogFile points at the plan catalog (.yaml or .csv).
	CatalogFile string `yaml:"catalog_file"`
	// SampleFile is the bundled meter export served by the demo flow.
	SampleFile string `yaml:"sample_file"`
	// DatabaseURL enables the analysis audit log when set. Empty means
	// auditing is disabled, never an error.
	DatabaseURL string `yaml:"database_url"`
	// StaticDir is the SPA bundle served for non-API routes.
	StaticDir string `yaml:"static_dir"`
}

// TariffConfig converts kWh savings to NIS at the reporting step.
// The defaults mirror the household tariff the original analysis was
// calibrated against: 0.5425 NIS/kWh, VAT-inclusive at 18%.
type TariffConfig struct {
	RatePerKWh float64 `yaml:"rate_per_kwh"`
	VATFactor  float64 `yaml:"vat_factor"`
}

// AnalysisConfig tunes the recommendation engine.
type AnalysisConfig struct {
	// ActivityThreshold is the fraction of the maximum monthly
	// consumption a month must reach to count as active.
	ActivityThreshold float64 `yaml:"activity_threshold"`
	// ProfileMonths is how many recent active months feed the hourly
	// consumption chart.
	ProfileMonths int `yaml:"profile_months"`
}

// Default returns the standalone configuration.
func Default() *Config {
	return &Config{
		Tariff:   TariffConfig{RatePerKWh: 0.5425, VATFactor: 1.18},
		Analysis: AnalysisConfig{ActivityThreshold: 0.20, ProfileMonths: 6},

		CatalogFile: "electrical_plans.yaml",
		SampleFile:  "testdata/sample_export.csv",
		StaticDir:   "./web/dist",
	}
}

// Load reads and validates a YAML config file, overlaying it on
// Default() so partial files stay concise.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads without validating. Useful for debugging and for
// printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Tariff.RatePerKWh <= 0 {
		return errors.New("tariff.rate_per_kwh must be > 0")
	}
	if c.Tariff.VATFactor < 1 {
		return errors.New("tariff.vat_factor must be >= 1")
	}
	if c.Analysis.ActivityThreshold <= 0 || c.Analysis.ActivityThreshold > 1 {
		return fmt.Errorf("analysis.activity_threshold %.2f outside (0,1]", c.Analysis.ActivityThreshold)
	}
	if c.Analysis.ProfileMonths < 1 {
		return errors.New("analysis.profile_months must be >= 1")
	}
	if c.CatalogFile == "" {
		return errors.New("catalog_file is required")
	}
	return nil
}
