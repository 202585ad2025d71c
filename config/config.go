// Package config loads the runtime settings of the estimator.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"handymanquotes/logger"
)

// Config holds the process settings. The store location is the only domain
// setting; the rest configure the local listener and logging.
type Config struct {
	Env      string
	DataDir  string
	HTTPAddr string
	LogLevel string
}

// Load reads .env when present, then the environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logger.Log.WithError(err).Warn("config: could not read .env, using environment only")
	}

	return &Config{
		Env:      getEnv("APP_ENV", "production"),
		DataDir:  getEnv("QUOTES_DATA_DIR", "./pb_data"),
		HTTPAddr: getEnv("QUOTES_HTTP_ADDR", "127.0.0.1:8090"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// IsDevelopment reports whether logs should be human readable.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
