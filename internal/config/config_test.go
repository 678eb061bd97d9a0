package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse(`
[storage]
mode = "memory"

[user_service]
url = "http://users:8080"
`)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.Storage.Mode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Booking.SkipOwnTransit)

	start, end := cfg.WorkHours()
	assert.Equal(t, types.TimeString("09:00"), start)
	assert.Equal(t, types.TimeString("18:00"), end)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown storage", data: "[storage]\nmode = \"sqlite\"\n[user_service]\nurl = \"http://u\""},
		{name: "missing user service", data: "[storage]\nmode = \"memory\""},
		{name: "empty hours", data: "[storage]\nmode = \"memory\"\n[user_service]\nurl = \"http://u\"\n[booking]\nwork_hour_start = \"18:00\"\nwork_hour_end = \"09:00\""},
		{name: "bad port", data: "[server]\nhttp_port = 0\n[storage]\nmode = \"memory\"\n[user_service]\nurl = \"http://u\""},
		{name: "redis without addr", data: "[storage]\nmode = \"memory\"\n[user_service]\nurl = \"http://u\"\n[redis]\nenabled = true\naddr = \"\""},
		{name: "broken toml", data: "[storage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SALON_DB_PASSWORD", "s3cret")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
host = "db"
dbname = "salon"
user = "salon"
password = "${SALON_DB_PASSWORD}"

[user_service]
url = "http://users:8080"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}
