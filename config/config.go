package config

import (
	"os"

	"github.com/joho/godotenv"
)

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type GeminiConfig struct {
	APIKey string
	Host   string
	Model  string
}

type CatalogConfig struct {
	Driver string
	Path   string
}

type TracingConfig struct {
	CollectorHost string
}

type Config struct {
	ServicePort       string
	MetricsPort       string
	Environment       string
	TaxRatePercent    string
	SessionTTLMinutes string
	CatalogConfig     CatalogConfig
	PostgreSQLConfig  PostgreSQLConfig
	GeminiConfig      GeminiConfig
	TracingConfig     TracingConfig
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort:       getEnv("SERVICE_PORT", "8080"),
		MetricsPort:       getEnv("METRICS_PORT", "9090"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		TaxRatePercent:    getEnv("TAX_RATE_PERCENT", "15"),
		SessionTTLMinutes: getEnv("SESSION_TTL_MINUTES", "60"),
		CatalogConfig: CatalogConfig{
			Driver: getEnv("CATALOG_DRIVER", "memory"),
			Path:   os.Getenv("CATALOG_PATH"),
		},
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		GeminiConfig: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Host:   getEnv("GEMINI_HOST", "https://generativelanguage.googleapis.com"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	return &conf
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
