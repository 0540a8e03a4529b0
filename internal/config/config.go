// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps incoming request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64

	// GoogleProjectID, GoogleClientEmail and GooglePrivateKey are the
	// service-account fields for the document store backend. All required.
	GoogleProjectID   string
	GoogleClientEmail string
	GooglePrivateKey  string

	// AuthAudience is the expected audience claim of incoming ID tokens.
	// Defaults to GoogleProjectID when unset.
	AuthAudience string
}

// Load reads configuration from the environment and returns a Config.
// A .env file in the working directory is read first when present, without
// overriding variables already set in the environment.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	_ = godotenv.Load() // best effort; a missing .env file is not an error

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	var missing []string

	cfg.GoogleProjectID = os.Getenv("GOOGLE_PROJECT_ID")
	if cfg.GoogleProjectID == "" {
		missing = append(missing, "GOOGLE_PROJECT_ID")
	}
	cfg.GoogleClientEmail = os.Getenv("GOOGLE_CLIENT_EMAIL")
	if cfg.GoogleClientEmail == "" {
		missing = append(missing, "GOOGLE_CLIENT_EMAIL")
	}
	cfg.GooglePrivateKey = normalizePrivateKey(os.Getenv("GOOGLE_PRIVATE_KEY"))
	if cfg.GooglePrivateKey == "" {
		missing = append(missing, "GOOGLE_PRIVATE_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	cfg.AuthAudience = getEnv("AUTH_AUDIENCE", cfg.GoogleProjectID)

	return cfg, nil
}

// ServiceAccountJSON assembles the credentials document expected by the
// Google client libraries from the individual service-account fields.
func (c Config) ServiceAccountJSON() ([]byte, error) {
	doc := map[string]string{
		"type":         "service_account",
		"project_id":   c.GoogleProjectID,
		"client_email": c.GoogleClientEmail,
		"private_key":  c.GooglePrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("config: marshal service account: %w", err)
	}
	return b, nil
}

// normalizePrivateKey repairs a PEM key that went through a .env file:
// literal \n sequences become real newlines and surrounding quotes are
// stripped.
func normalizePrivateKey(key string) string {
	key = strings.ReplaceAll(key, `\n`, "\n")
	key = strings.Trim(key, `"`)
	return key
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
