// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Mode determines whether the worker uses stub fixtures or real LLM connectors.
type Mode string

const (
	ModeStub       Mode = "stub"
	ModeProduction Mode = "production"
)

// DefaultMCPPort is the port the MCP server binds when --port is not given.
const DefaultMCPPort = 8001

// Config holds all application configuration.
type Config struct {
	Mode        Mode
	FixturesDir string

	// Generation I/O.
	DataDir      string
	TemplatesDir string
	DBPath       string

	// Upstream LLM provider.
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Server settings.
	MCPPort     int
	APIPort     string
	CORSOrigins []string

	// Outline review gate.
	ReviewRequired bool

	// Template catalog hot reload.
	Reload bool

	// Observability.
	LogLevel    string
	OTelEnabled bool

	// API auth.
	OIDCIssuer   string
	OIDCAudience string
}

// OIDCEnabled reports whether bearer-token auth should be enforced on the API.
func (c Config) OIDCEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCAudience != ""
}

// LoadFromEnv reads configuration from environment variables with sensible defaults.
func LoadFromEnv() (Config, error) {
	mcpPort, err := envInt("PRESENTON_MCP_PORT", DefaultMCPPort)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Mode:           Mode(envOr("PRESENTON_MODE", "stub")),
		FixturesDir:    os.Getenv("FIXTURES_DIR"),
		DataDir:        envOr("PRESENTON_DATA_DIR", "data"),
		TemplatesDir:   envOr("PRESENTON_TEMPLATES_DIR", "templates"),
		DBPath:         envOr("PRESENTON_DB_PATH", "presenton.db"),
		LLMBaseURL:     os.Getenv("PRESENTON_LLM_BASE_URL"),
		LLMModel:       envOr("PRESENTON_LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:      os.Getenv("PRESENTON_LLM_API_KEY"),
		MCPPort:        mcpPort,
		APIPort:        envOr("PRESENTON_API_PORT", "8000"),
		CORSOrigins:    parseCORSOrigins(os.Getenv("PRESENTON_CORS_ORIGINS")),
		ReviewRequired: envBool("PRESENTON_REVIEW_REQUIRED", false),
		Reload:         envBool("PRESENTON_RELOAD", true),
		LogLevel:       envOr("PRESENTON_LOG_LEVEL", "info"),
		OTelEnabled:    envBool("PRESENTON_OTEL_ENABLED", false),
		OIDCIssuer:     os.Getenv("PRESENTON_OIDC_ISSUER"),
		OIDCAudience:   os.Getenv("PRESENTON_OIDC_AUDIENCE"),
	}

	if cfg.Mode != ModeStub && cfg.Mode != ModeProduction {
		return Config{}, fmt.Errorf("config: invalid PRESENTON_MODE %q (must be stub or production)", cfg.Mode)
	}

	if cfg.Mode == ModeProduction {
		if cfg.LLMAPIKey == "" {
			return Config{}, fmt.Errorf("config: PRESENTON_LLM_API_KEY required in production mode")
		}
		if cfg.LLMModel == "" {
			return Config{}, fmt.Errorf("config: PRESENTON_LLM_MODEL required in production mode")
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func parseCORSOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(o); t != "" {
			origins = append(origins, t)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
