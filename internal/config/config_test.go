package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ModeStub, cfg.Mode)
	assert.Equal(t, DefaultMCPPort, cfg.MCPPort)
	assert.Equal(t, "8000", cfg.APIPort)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "templates", cfg.TemplatesDir)
	assert.Equal(t, "presenton.db", cfg.DBPath)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.Reload)
	assert.False(t, cfg.ReviewRequired)
	assert.False(t, cfg.OTelEnabled)
	assert.False(t, cfg.OIDCEnabled())
}

func TestLoadFromEnv_ProductionValid(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRESENTON_MODE", "production")
	t.Setenv("PRESENTON_LLM_API_KEY", "sk-test")
	t.Setenv("PRESENTON_LLM_MODEL", "gpt-4o")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ModeProduction, cfg.Mode)
	assert.Equal(t, "gpt-4o", cfg.LLMModel)
}

func TestLoadFromEnv_ProductionMissingKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRESENTON_MODE", "production")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRESENTON_LLM_API_KEY")
}

func TestLoadFromEnv_InvalidMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRESENTON_MODE", "invalid")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PRESENTON_MODE")
}

func TestLoadFromEnv_BadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRESENTON_MCP_PORT", "not-a-port")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRESENTON_MCP_PORT")
}

func TestLoadFromEnv_CORSAndToggles(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRESENTON_CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("PRESENTON_RELOAD", "false")
	t.Setenv("PRESENTON_REVIEW_REQUIRED", "true")
	t.Setenv("PRESENTON_OIDC_ISSUER", "https://issuer.example")
	t.Setenv("PRESENTON_OIDC_AUDIENCE", "presenton")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.Reload)
	assert.True(t, cfg.ReviewRequired)
	assert.True(t, cfg.OIDCEnabled())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PRESENTON_MODE", "FIXTURES_DIR", "PRESENTON_DATA_DIR",
		"PRESENTON_TEMPLATES_DIR", "PRESENTON_DB_PATH",
		"PRESENTON_LLM_BASE_URL", "PRESENTON_LLM_MODEL", "PRESENTON_LLM_API_KEY",
		"PRESENTON_MCP_PORT", "PRESENTON_API_PORT", "PRESENTON_CORS_ORIGINS",
		"PRESENTON_REVIEW_REQUIRED", "PRESENTON_RELOAD", "PRESENTON_LOG_LEVEL",
		"PRESENTON_OTEL_ENABLED", "PRESENTON_OIDC_ISSUER", "PRESENTON_OIDC_AUDIENCE",
	} {
		t.Setenv(key, "")
	}
}
