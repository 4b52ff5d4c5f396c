package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"broadcastdash/api/presenter"
)

var configKeys = []string{
	"PORT", "GIN_MODE", "FE_ORIGIN", "DATASET_SOURCE", "DATASET_PATH", "SESSIONS_TABLE",
	"CLICKHOUSE_HOST", "CLICKHOUSE_NATIVE_PORT", "CLICKHOUSE_DB_NAME", "CLICKHOUSE_USERNAME",
	"CLICKHOUSE_PASSWORD", "DATABASE_URL", "FETCH_URL", "FETCH_TIMEOUT",
	"DASHBOARD_SETTINGS_FILE", "DASHBOARD_DENSE_BUCKETS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceCSV, cfg.DatasetSource)
	assert.Equal(t, "streaming_data.csv", cfg.DatasetPath)
	assert.Equal(t, "http://127.0.0.1:5000/api/data", cfg.FetchURL)
	assert.Equal(t, time.Duration(0), cfg.FetchTimeout)
	assert.Equal(t, 9000, cfg.ClickHouse.Port)
	assert.Equal(t, presenter.DefaultSettings(), cfg.Dashboard)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATASET_SOURCE", "ClickHouse")
	t.Setenv("CLICKHOUSE_HOST", "ch")
	t.Setenv("CLICKHOUSE_DB_NAME", "broadcast")
	t.Setenv("CLICKHOUSE_NATIVE_PORT", "not-a-port")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("DASHBOARD_DENSE_BUCKETS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SourceClickHouse, cfg.DatasetSource)
	assert.Equal(t, 9000, cfg.ClickHouse.Port)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.Dashboard.DenseBuckets)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown source":        {"DATASET_SOURCE": "excel"},
		"clickhouse no host":    {"DATASET_SOURCE": "clickhouse"},
		"postgres no url":       {"DATASET_SOURCE": "postgres"},
		"bad timeout":           {"FETCH_TIMEOUT": "soon"},
		"bad gin mode":          {"GIN_MODE": "verbose"},
		"missing settings file": {"DASHBOARD_SETTINGS_FILE": filepath.Join(t.TempDir(), "nope.yaml")},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("event_views_capacity: 500\npalette: [black, white]\ndense_buckets: true\n"), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 500, s.EventViewsCapacity)
	assert.Equal(t, []string{"black", "white"}, s.Palette)
	assert.True(t, s.DenseBuckets)
	assert.Equal(t, 200, s.VisitsDeltaThreshold)
	assert.Equal(t, 2.0, s.BufferingThreshold)
}

func TestLoadSettings_ExplicitZeroIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("buffering_threshold: 0\nvisits_delta_threshold: 0\n"), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.BufferingThreshold)
	assert.Equal(t, 0, s.VisitsDeltaThreshold)
	assert.Equal(t, 100.0, s.DurationReference)
	assert.Equal(t, 1000, s.EventViewsCapacity)
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dense_buckets: true\n"), 0o600))
	t.Setenv("DASHBOARD_SETTINGS_FILE", path)
	t.Setenv("DASHBOARD_DENSE_BUCKETS", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Dashboard.DenseBuckets)
}

func TestLoadSettings_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_countries: [\n"), 0o600))

	_, err := LoadSettings(path)
	assert.ErrorContains(t, err, "parsing settings file")
}
