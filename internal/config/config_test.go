package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE", "REDIS_ADDR", "REDIS_PASSWORD", "DATABASE_URL", "HTTP_ADDR",
		"DISCORD_TOKEN", "APPLICATION_ID", "GUILD_ID", "LOG_LEVEL", "LOG_FORMAT",
		"SUBMIT_RATE", "SUBMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
store: postgres
postgres:
  dsn: postgres://closest@db/closest
http:
  addr: ":9000"
log:
  level: debug
  format: json
rate_limit:
  submit_rate: 2.5
  submit_burst: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://closest@db/closest", cfg.Postgres.DSN)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2.5, cfg.RateLimit.SubmitRate)
	assert.Equal(t, 4, cfg.RateLimit.SubmitBurst)
	// Untouched sections keep their defaults
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "store: redis\nredis:\n  addr: file:6379\n")

	t.Setenv("REDIS_ADDR", "env:6379")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("APPLICATION_ID", "app")
	t.Setenv("GUILD_ID", "guild")
	t.Setenv("SUBMIT_RATE", "0")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env:6379", cfg.Redis.Addr)
	assert.Equal(t, DiscordConfig{Token: "token", ApplicationID: "app", GuildID: "guild"}, cfg.Discord)
	assert.Zero(t, cfg.RateLimit.SubmitRate)
}

func TestLoadRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "unknown store", env: map[string]string{"STORE": "memory"}},
		{name: "postgres without dsn", env: map[string]string{"STORE": "postgres"}},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "bad format", env: map[string]string{"LOG_FORMAT": "xml"}},
		{name: "bad rate", env: map[string]string{"SUBMIT_RATE": "fast"}},
		{name: "bad burst", env: map[string]string{"SUBMIT_BURST": "1.5"}},
		{name: "zero burst", env: map[string]string{"SUBMIT_BURST": "0"}},
		{name: "malformed yaml", file: "store: [redis"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			path := ""
			if tc.file != "" {
				path = writeFile(t, tc.file)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidateNeedsSomethingToServe(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Addr = ""

	assert.Error(t, cfg.Validate())

	cfg.Discord.Token = "token"
	assert.NoError(t, cfg.Validate())
}
