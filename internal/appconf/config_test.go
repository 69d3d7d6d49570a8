package appconf

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "faregrid.yml", `
port: 8080
env: production
api_keys: [alpha, beta]
rate_limit: 5
db_path: /var/lib/faregrid/fares.db
log_level: warn
log_format: text
`)
	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, Production, cfg.Env)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.APIKeys)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, "/var/lib/faregrid/fares.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	path := writeFile(t, "faregrid.yml", "port: 9999\n")
	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, Default().APIKeys, cfg.APIKeys)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	noEnv := filepath.Join(t.TempDir(), "missing.env")

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"), noEnv)
		assert.Error(t, err)
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, err := Load(writeFile(t, "c.yml", "env: staging\n"), noEnv)
		assert.ErrorContains(t, err, "unknown environment")
	})

	t.Run("fails validation", func(t *testing.T) {
		_, err := Load(writeFile(t, "c.yml", "log_level: verbose\n"), noEnv)
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("empty api keys", func(t *testing.T) {
		_, err := Load(writeFile(t, "c.yml", "api_keys: []\n"), noEnv)
		assert.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	const key = EnvPrefix + "LOG_FORMAT"
	if _, set := os.LookupEnv(key); set {
		t.Skipf("%s is set in the test environment", key)
	}
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	envFile := writeFile(t, ".env", key+"=text\n")
	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"FAREGRID_PORT":       "7000",
		"FAREGRID_ENV":        "test",
		"FAREGRID_API_KEYS":   " one, ,two ",
		"FAREGRID_RATE_LIMIT": "0",
		"FAREGRID_DB_PATH":    ":memory:",
		"FAREGRID_LOG_LEVEL":  "DEBUG",
		"FAREGRID_LOG_FORMAT": "  ",
		"PORT":                "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, []string{"one", "two"}, cfg.APIKeys)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat, "blank values are ignored")
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.ApplyEnv(mapLookup(map[string]string{"FAREGRID_PORT": "eighty"})))
	assert.Error(t, cfg.ApplyEnv(mapLookup(map[string]string{"FAREGRID_RATE_LIMIT": "lots"})))
}

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-port", "9000", "-api-keys", "a, b", "-env", "test"}))

	cfg := Default()
	cfg.LogLevel = "debug"
	flags.Apply(&cfg)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"a", "b"}, cfg.APIKeys)
	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, flags.ConfigPath)
}

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Production, EnvFlagToEnvironment("Production"))
	assert.Equal(t, Development, EnvFlagToEnvironment("development"))
	assert.Equal(t, Development, EnvFlagToEnvironment("anything"))
	assert.Equal(t, "production", Production.String())
}
