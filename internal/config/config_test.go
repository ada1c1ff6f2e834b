package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelsphere/internal/domain"
)

const testYAML = `
server:
  port: "9090"
storage:
  driver: memory
jwt:
  secret: test-secret
admin:
  username: warden
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
engine:
  maintenance_policy: manual
seed:
  enabled: false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "warden", cfg.Admin.Username)
	assert.Equal(t, domain.MaintenanceManual, cfg.MaintenancePolicy())
	assert.False(t, cfg.Seed.Enabled)
	// defaults survive
	assert.Equal(t, int64(50000), cfg.Fees.AnnualAmount)
	assert.Equal(t, "local", cfg.Photos.Driver)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("FEES_ANNUAL_AMOUNT", "42000")
	t.Setenv("SEED_ENABLED", "true")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := LoadConfig(writeConfig(t, testYAML))
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, int64(42000), cfg.Fees.AnnualAmount)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Setenv("ENGINE_MAINTENANCE_POLICY", "loose")
	_, err := LoadConfig(writeConfig(t, testYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maintenance policy")
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestInvalidEnvValue(t *testing.T) {
	t.Setenv("SEED_ROOMS", "many")
	_, err := LoadConfig(writeConfig(t, testYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEED_ROOMS")
}
