package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 100, cfg.MaxRequestsPerMin)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "INR", cfg.Currency)
	assert.Equal(t, 3*time.Second, cfg.ConfirmationDelay)
	assert.Equal(t, 2*time.Second, cfg.RedirectDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.RedisReminderQueueDB)
	assert.False(t, cfg.RemindersEnabled)
	assert.Equal(t, 24*time.Hour, cfg.ReminderLead)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	inTempDir(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_BACKEND", "bolt")
	t.Setenv("CONFIRMATION_DELAY", "500ms")
	t.Setenv("REMINDERS_ENABLED", "true")
	t.Setenv("MAX_REQUESTS_PER_MIN", "5")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "bolt", cfg.StoreBackend)
	assert.Equal(t, 500*time.Millisecond, cfg.ConfirmationDelay)
	assert.True(t, cfg.RemindersEnabled)
	assert.Equal(t, 5, cfg.MaxRequestsPerMin)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.4"}, cfg.TrustedProxies)
}

func TestLoadConfigFile(t *testing.T) {
	dir := inTempDir(t)
	yaml := "CURRENCY: USD\nSESSION_TTL: 5m\nENV: production\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)

	AppConfig = cfg
	t.Cleanup(func() { AppConfig = Config{} })
	assert.True(t, IsProduction())
}
