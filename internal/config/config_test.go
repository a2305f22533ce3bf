package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{Port: "8080"},
		Auth: AuthConfig{
			SessionTTL:           24 * time.Hour,
			SessionPruneInterval: 24 * time.Hour,
			AdminUsername:        "admin",
			AdminPassword:        "admin123",
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("rejects unknown environment", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "qa"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logger.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-positive session TTL", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.SessionTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects empty admin username", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.AdminUsername = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("ANIMES2U_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "ANIMES2U_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "ANIMES2U_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "ANIMES2U_TEST_MISSING", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	assert.True(t, getBoolConfigValue("yes", "UNUSED", false))
	assert.True(t, getBoolConfigValue("1", "UNUSED", false))
	assert.False(t, getBoolConfigValue("nope", "UNUSED", true))
	assert.True(t, getBoolConfigValue("", "UNSET_BOOL_KEY", true))
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://animes2u.example"},
		splitOrigins("http://localhost:3000, https://animes2u.example"),
	)
	assert.Empty(t, splitOrigins(" , "))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nANIMES2U_ENVFILE_KEY=\"quoted value\"\n\nANIMES2U_ENVFILE_OTHER=plain\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("ANIMES2U_ENVFILE_KEY", "")
	t.Setenv("ANIMES2U_ENVFILE_OTHER", "already-set")
	require.NoError(t, os.Unsetenv("ANIMES2U_ENVFILE_KEY"))

	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "quoted value", os.Getenv("ANIMES2U_ENVFILE_KEY"))
	// Existing env vars win over .env entries.
	assert.Equal(t, "already-set", os.Getenv("ANIMES2U_ENVFILE_OTHER"))
}
