package server

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the dashboard server settings. Flags override the
// environment, the environment overrides the defaults.
type Config struct {
	Addr           string // listen address, e.g. ":8383"
	DataFile       string // CSV order book loaded at startup
	AllowedOrigins string // comma-separated CORS origins, empty allows all
	Verbose        bool   // log at debug level
}

// LoadConfig reads the configuration from the environment, honoring a
// .env file when present.
func LoadConfig() Config {
	godotenv.Load()

	return Config{
		Addr:           getEnv("SHOPSIGHT_ADDR", ":8383"),
		DataFile:       getEnv("SHOPSIGHT_DATA", "generated_data/orders.csv"),
		AllowedOrigins: getEnv("SHOPSIGHT_CORS_ORIGINS", ""),
		Verbose:        getEnvAsBool("SHOPSIGHT_VERBOSE", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
