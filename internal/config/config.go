package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWKSURL     string
	CORSOrigins string
	TablePrefix string
	// Planner configuration
	AnthropicAPIKey string
	PlannerProvider string
	PlannerModel    string
	PlannerPrompt   string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWKSURL:         getEnv("JWKS_URL", ""),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:     getTablePrefix(env),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		PlannerProvider: getEnv("PLANNER_PROVIDER", defaultPlannerProvider(env)),
		PlannerModel:    getEnv("PLANNER_MODEL", "claude-sonnet-4-20250514"),
		PlannerPrompt:   defaultPlannerPrompt,
		Debug:           getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}

	// Optional YAML override for planner settings
	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		applyPlannerFile(cfg, path)
	}

	return cfg
}

// defaultPlannerProvider keeps local runs offline unless told otherwise
func defaultPlannerProvider(env string) string {
	if env == "prod" {
		return "anthropic"
	}
	return "stub"
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
