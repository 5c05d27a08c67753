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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "HTTP_PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
user = "salon"
dbname = "salon"

[booking]
slot_step_minutes = 15
min_notice_minutes = 60
max_advance_days = 30
timezone = "Europe/Moscow"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15, cfg.Booking.Policy().SlotStepMinutes)
	assert.Equal(t, 30, cfg.Booking.Policy().MaxAdvanceDays)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "host=db port=5432 user=salon password= dbname=salon sslmode=disable", cfg.Database.DSN())

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "6543")
	path := writeConfig(t, "[database]\nhost = \"db\"\ndbname = \"salon\"\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)

	tests := map[string]string{
		"zero step":    "[database]\nhost=\"db\"\ndbname=\"s\"\n[booking]\nslot_step_minutes = 0\n",
		"bad timezone": "[database]\nhost=\"db\"\ndbname=\"s\"\n[booking]\ntimezone = \"Mars/Olympus\"\n",
		"no dbname":    "[database]\nhost=\"db\"\n",
		"bad port":     "[server]\nhttp_port = 70000\n[database]\nhost=\"db\"\ndbname=\"s\"\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
