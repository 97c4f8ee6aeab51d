package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/essence-sheet/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STORAGE_BACKEND", "SQLITE_PATH", "REDIS_URL", "WRITE_TIMEOUT", "AUTOSAVE_QUIET_WINDOW", "EXPORT_DIR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "essence-sheet.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Storage.RedisURL)
	assert.Equal(t, 5*time.Second, cfg.Storage.WriteTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Autosave.QuietWindow)
	assert.Equal(t, ".", cfg.Export.Dir)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6380/2")
	t.Setenv("WRITE_TIMEOUT", "250ms")
	t.Setenv("AUTOSAVE_QUIET_WINDOW", "30s")
	t.Setenv("EXPORT_DIR", "/tmp/sheets")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "redis://cache:6380/2", cfg.Storage.RedisURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.Autosave.QuietWindow)
	assert.Equal(t, "/tmp/sheets", cfg.Export.Dir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown backend",
			env:     map[string]string{"STORAGE_BACKEND": "postgres"},
			wantErr: "unknown STORAGE_BACKEND",
		},
		{
			name:    "unparseable timeout",
			env:     map[string]string{"WRITE_TIMEOUT": "soon"},
			wantErr: "parse env:",
		},
		{
			name:    "negative quiet window",
			env:     map[string]string{"AUTOSAVE_QUIET_WINDOW": "-1s"},
			wantErr: "AUTOSAVE_QUIET_WINDOW must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
