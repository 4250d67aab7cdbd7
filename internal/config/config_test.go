package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "ADMIN_PANEL", "SUCCESS_RESET_DELAY", "RELAY_URL", "PORT", "CORS_ORIGINS", "TRUSTED_PROXIES"} {
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.Admin.Panel)
	assert.Equal(t, 2*time.Second, cfg.Form.SuccessResetDelay)
	assert.Equal(t, time.Duration(0), cfg.Form.SubmitDelay)
	assert.Empty(t, cfg.Relay.URL)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetAddr())
	assert.Nil(t, cfg.Server.CORSOrigins)
	assert.Nil(t, cfg.Server.TrustedProxies)
}

func TestLoad_ProductionHidesAdmin(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Admin.Panel)

	t.Setenv("ADMIN_PANEL", "true")
	cfg = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.True(t, cfg.Admin.Panel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SUBMIT_DELAY", "1000")
	t.Setenv("SUCCESS_RESET_DELAY", "3s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not a number")
	t.Setenv("CORS_ORIGINS", "https://medai.nl, https://www.medai.nl ,")
	t.Setenv("RELAY_TIMEZONE", "Nowhere/Atlantis")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,192.168.0.0/16")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, time.Second, cfg.Form.SubmitDelay)
	assert.Equal(t, 3*time.Second, cfg.Form.SuccessResetDelay)
	assert.Equal(t, 10, cfg.Server.RateLimitPerMinute)
	assert.Equal(t, []string{"https://medai.nl", "https://www.medai.nl"}, cfg.Server.CORSOrigins)
	assert.Equal(t, time.UTC, cfg.RelayLocation())
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.Server.TrustedProxies)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RELAY_URL=https://formspree.io/f/test\nDB_PATH=/tmp/from-dotenv.db\n"), 0644))

	// explicit environment wins over the file
	t.Setenv("DB_PATH", "/tmp/from-env.db")
	t.Setenv("RELAY_URL", "")
	os.Unsetenv("RELAY_URL")

	cfg := Load(path)
	assert.Equal(t, "https://formspree.io/f/test", cfg.Relay.URL)
	assert.Equal(t, "/tmp/from-env.db", cfg.Storage.DBPath)
}
