package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
addr = ":9000"
request_timeout = "3s"

[storage]
driver = "memory"

[league]
workers = 2
roster = ["Alice", "Bob"]

[tg_bot]
enabled = false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	cfg, err := New(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 2, cfg.League.Workers)
	assert.Equal(t, []string{"Alice", "Bob"}, cfg.League.Roster)
	assert.Equal(t, 5, cfg.League.RecentGames, "defaults survive a partial file")
	assert.Equal(t, 20, cfg.League.LeaderboardLimit)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CEEPS_ADDR", ":7000")
	t.Setenv("CEEPS_WORKERS", "8")
	t.Setenv("TELEGRAM_APITOKEN", "token")

	cfg, err := New(writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.League.Workers)
	assert.Equal(t, "token", cfg.TgBot.TelegramApiToken)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, wantErr: true},
		{name: "no workers", mutate: func(c *Config) { c.League.Workers = 0 }, wantErr: true},
		{name: "bot without token", mutate: func(c *Config) { c.TgBot.Enabled = true }, wantErr: true},
		{name: "sqlite without file", mutate: func(c *Config) { c.Storage.SqliteFile = "" }, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
