package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadarb/studyflash/internal/config"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := config.Config{
		Addr:         ":8080",
		DBPath:       "test.db",
		LogLevel:     "INFO",
		GroqBaseURL:  "https://api.groq.com/openai/v1",
		SnapshotKeep: 20,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := config.Config{
		Addr:        "",
		DBPath:      "test.db",
		GroqBaseURL: "https://api.groq.com/openai/v1",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := config.Config{
		Addr:        ":8080",
		DBPath:      "",
		GroqBaseURL: "https://api.groq.com/openai/v1",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_NegativeSnapshotKeep(t *testing.T) {
	cfg := config.Config{
		Addr:         ":8080",
		DBPath:       "test.db",
		GroqBaseURL:  "https://api.groq.com/openai/v1",
		SnapshotKeep: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SNAPSHOT_KEEP")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "GROQ_BASE_URL", "GROQ_MODEL", "SNAPSHOT_KEEP", "CORS_ORIGINS"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:studyflash.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.GroqBaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.GroqModel)
	assert.Equal(t, 20, cfg.SnapshotKeep)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("SNAPSHOT_KEEP", "5")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5, cfg.SnapshotKeep)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORSOrigins)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SNAPSHOT_KEEP", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, 20, cfg.SnapshotKeep)
}
