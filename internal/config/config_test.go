package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT", "STORAGE_DRIVER", "DB_DSN", "DATA_DIR",
		"ADMIN_USER", "ADMIN_PASSWORD", "GUEST_USER", "GUEST_PASSWORD",
		"SUGGESTIONS_PROVIDER", "GEMINI_API_KEY", "SUGGESTIONS_URL", "AUDIT_EVERY", "CORS_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, SuggestionsNone, cfg.SuggestionsProvider)
	assert.Equal(t, 15*time.Minute, cfg.AuditEvery)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "FILE")
	t.Setenv("DATA_DIR", "/tmp/medistock")
	t.Setenv("AUDIT_EVERY", "0")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StorageFile, cfg.StorageDriver)
	assert.Equal(t, time.Duration(0), cfg.AuditEvery)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"port", map[string]string{"PORT": "abc"}, "PORT"},
		{"env", map[string]string{"ENV": "qa"}, "ENV"},
		{"driver", map[string]string{"STORAGE_DRIVER": "mongo"}, "STORAGE_DRIVER"},
		{"postgres without dsn", map[string]string{"STORAGE_DRIVER": "postgres"}, "DB_DSN"},
		{"gemini without key", map[string]string{"SUGGESTIONS_PROVIDER": "gemini"}, "GEMINI_API_KEY"},
		{"remote without url", map[string]string{"SUGGESTIONS_PROVIDER": "remote"}, "SUGGESTIONS_URL"},
		{"bad duration", map[string]string{"AUDIT_EVERY": "often"}, "AUDIT_EVERY"},
		{"same users", map[string]string{"GUEST_USER": "ARANZA"}, "GUEST_USER"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
