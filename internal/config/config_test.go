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

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "data/song_data", cfg.Data.SongData)
	assert.Equal(t, "*.json", cfg.Data.Pattern)
}

func TestLoadConfig_OverlaysFile(t *testing.T) {
	path := writeConfig(t, `
destination: sqlite
databases:
  sqlite: /tmp/warehouse.db
data:
  song_data: songs
setup:
  reset: true
logging:
  environment: production
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Destination)
	assert.Equal(t, "/tmp/warehouse.db", cfg.Databases.SQLite)
	assert.Equal(t, "songs", cfg.Data.SongData)
	assert.Equal(t, "data/log_data", cfg.Data.LogData)
	assert.True(t, cfg.Setup.Reset)
	assert.True(t, cfg.Setup.CreateTables)
	assert.Equal(t, "production", cfg.Logging.Environment)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "destination: [unterminated")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_UnknownDestination(t *testing.T) {
	path := writeConfig(t, "destination: oracle\n")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "unsupported destination")
}

func TestDSN(t *testing.T) {
	cfg := Default()

	tests := []struct {
		destination string
		want        string
	}{
		{"postgres", cfg.Databases.Postgres},
		{"mysql", cfg.Databases.MySQL},
		{"mongo", cfg.Databases.Mongo},
		{"sqlite", cfg.Databases.SQLite},
	}
	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			got, err := cfg.DSN(tt.destination)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	cfg.Databases.MySQL = ""
	_, err := cfg.DSN("mysql")
	assert.Error(t, err)
}
