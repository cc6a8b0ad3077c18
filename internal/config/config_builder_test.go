package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWithoutFlags assembles a config the way GetStructuredConfig does but
// skips the flag layer, which cannot be re-parsed inside tests.
func buildWithoutFlags(t *testing.T) *StructuredConfig {
	t.Helper()
	cfg, err := newConfigBuilder().
		withEnv().
		withJSON().
		withDefaults().
		build()
	require.NoError(t, err)
	return cfg
}

// ---- Defaults ----

func TestBuild_Defaults(t *testing.T) {
	cfg := buildWithoutFlags(t)
	st := cfg.LoggingSettings()

	assert.False(t, st.Enabled, "capture must be opt-in")
	assert.Equal(t, "DEBUG", st.Level)
	assert.True(t, st.IncludeRequestBody)
	assert.True(t, st.IncludeResponseBody)
	assert.True(t, st.IncludeRequestHeaders)
	assert.True(t, st.IncludeResponseHeaders)
	assert.True(t, st.IncludeQueryParams)
	assert.True(t, st.IncludeClientIP)
	assert.Equal(t, 10000, st.MaxBodySize)
	assert.Empty(t, st.IncludePatterns)
	assert.Empty(t, st.ExcludePatterns)
	assert.Len(t, st.SensitiveHeaders, 7)
	assert.Contains(t, st.SensitiveHeaders, "Authorization")
	assert.Contains(t, st.SensitiveHeaders, "Set-Cookie")
	assert.Contains(t, st.SensitiveHeaders, "Proxy-Authorization")
	assert.False(t, st.LogErrorsOnly)
	assert.True(t, st.SkipHealthCheckAgents)
	assert.GreaterOrEqual(t, len(st.HealthCheckUserAgentPrefixes), 3)
	assert.Contains(t, st.HealthCheckUserAgentPrefixes, "kube-probe")

	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

// ---- Env layer ----

func TestBuild_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("LOGGING_ENABLED", "true")
	t.Setenv("LOGGING_LEVEL", "INFO")
	t.Setenv("LOGGING_INCLUDE_REQUEST_BODY", "false")
	t.Setenv("LOGGING_MAX_BODY_SIZE", "512")
	t.Setenv("LOGGING_EXCLUDE_PATTERNS", "/health,/metrics")
	t.Setenv("LOGGING_LOG_ERRORS_ONLY", "true")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9999")

	cfg := buildWithoutFlags(t)
	st := cfg.LoggingSettings()

	assert.True(t, st.Enabled)
	assert.Equal(t, "INFO", st.Level)
	assert.False(t, st.IncludeRequestBody, "explicit false must survive the defaults merge")
	assert.True(t, st.IncludeResponseBody, "untouched options keep their defaults")
	assert.Equal(t, 512, st.MaxBodySize)
	assert.Equal(t, []string{"/health", "/metrics"}, st.ExcludePatterns)
	assert.True(t, st.LogErrorsOnly)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.HTTPAddress)
}

func TestBuild_EnvSensitiveHeadersReplaceDefaults(t *testing.T) {
	t.Setenv("LOGGING_SENSITIVE_HEADERS", "Authorization,X-Internal-Secret")

	st := buildWithoutFlags(t).LoggingSettings()

	assert.Equal(t, []string{"Authorization", "X-Internal-Secret"}, st.SensitiveHeaders)
}

// ---- JSON layer ----

func TestBuild_JSONLayer(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"logging": {
			"enabled": true,
			"level": "WARN",
			"include_patterns": ["/api/**"],
			"base_path": "/budget-service"
		},
		"server": {
			"http_address": "0.0.0.0:8081",
			"request_timeout": "45s"
		}
	}`
	require.NoError(t, os.WriteFile(jsonPath, []byte(content), 0o600))
	t.Setenv("CONFIG", jsonPath)

	cfg := buildWithoutFlags(t)
	st := cfg.LoggingSettings()

	assert.True(t, st.Enabled)
	assert.Equal(t, "WARN", st.Level)
	assert.Equal(t, []string{"/api/**"}, st.IncludePatterns)
	assert.Equal(t, "/budget-service", st.BasePath)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
}

func TestBuild_EnvWinsOverJSON(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"logging":{"level":"ERROR","enabled":false}}`), 0o600))

	t.Setenv("CONFIG", jsonPath)
	t.Setenv("LOGGING_LEVEL", "TRACE")
	t.Setenv("LOGGING_ENABLED", "true")

	st := buildWithoutFlags(t).LoggingSettings()

	assert.Equal(t, "TRACE", st.Level)
	assert.True(t, st.Enabled)
}

func TestBuild_MissingJSONFileFails(t *testing.T) {
	t.Setenv("CONFIG", filepath.Join(t.TempDir(), "absent.json"))

	_, err := newConfigBuilder().
		withEnv().
		withJSON().
		withDefaults().
		build()

	require.Error(t, err)
}

// ---- Unrecognized level is kept verbatim (resolution happens at emit time) ----

func TestBuild_UnknownLevelIsNotValidated(t *testing.T) {
	t.Setenv("LOGGING_LEVEL", "SHOUTING")

	st := buildWithoutFlags(t).LoggingSettings()

	assert.Equal(t, "SHOUTING", st.Level)
}

// ---- DefaultSettings ----

func TestDefaultSettings_MatchesBuiltDefaults(t *testing.T) {
	assert.Equal(t, buildWithoutFlags(t).LoggingSettings(), DefaultSettings())
}
