package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
tariff:
  rate_per_kwh: 0.60
catalog_file: plans.csv
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.60, c.Tariff.RatePerKWh)
	assert.Equal(t, 1.18, c.Tariff.VATFactor, "unset fields keep defaults")
	assert.Equal(t, 0.20, c.Analysis.ActivityThreshold)
	assert.Equal(t, "plans.csv", c.CatalogFile)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := writeConfig(t, `
analysis:
  activity_threshold: 1.5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activity_threshold")
}

func TestLoadRejectsZeroRate(t *testing.T) {
	path := writeConfig(t, `
tariff:
  rate_per_kwh: -1
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
