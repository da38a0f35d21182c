package config

import "os"

// Storage kinds selectable through USER_SVC_STORAGE.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	Storage     string
	FilePath    string
	DatabaseURL string
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() Config {
	cfg := Config{
		Addr:        getenv("USER_SVC_ADDR", ":8080"),
		Storage:     getenv("USER_SVC_STORAGE", StorageMemory),
		FilePath:    getenv("USER_SVC_FILE", "users.json"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
