package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	GroqAPIKey        string
	GroqBaseURL       string
	GroqModel         string
	ReplicateAPIToken string
	TikaURL           string
	SnapshotKeep      int
	CORSOrigins       []string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:studyflash.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:       envOr("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:         envOr("GROQ_MODEL", "llama-3.3-70b-versatile"),
		ReplicateAPIToken: os.Getenv("REPLICATE_API_TOKEN"),
		TikaURL:           envOr("TIKA_URL", "http://localhost:9998"),
		SnapshotKeep:      envIntOr("SNAPSHOT_KEEP", 20),
		CORSOrigins:       envListOr("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

// Validate checks that the configuration is internally consistent. Missing AI
// credentials are not an error: the related endpoints degrade with a
// user-facing message instead of keeping the whole server from starting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.SnapshotKeep < 0 {
		return fmt.Errorf("SNAPSHOT_KEEP cannot be negative")
	}
	if c.GroqBaseURL == "" {
		return fmt.Errorf("GROQ_BASE_URL cannot be empty")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
