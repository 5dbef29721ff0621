package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// APIKey may be empty; the relay reports that on every request.
	APIKey  string
	Model   string
	BaseURL string
	Engine  string

	UpstreamTimeout time.Duration
	MaxBodyBytes    int64
	PromptFile      string
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("config: bad %s=%q, using %s", k, v, def)
		return def
	}
	return d
}

func getInt64(k string, def int64) int64 {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("config: bad %s=%q, using %d", k, v, def)
		return def
	}
	return n
}

// Load reads .env (when present) and then the process environment.
// Variables already set in the environment win over .env.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("config: loaded .env")
	}

	return &Config{
		Port: getEnv("PORT", "8000"),

		APIKey:  getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", "")),
		Model:   getEnv("GEMINI_MODEL", "gemini-flash-latest"),
		BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		Engine:  getEnv("VERIFY_ENGINE", "rest"),

		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 0),
		MaxBodyBytes:    getInt64("MAX_BODY_BYTES", 20<<20),
		PromptFile:      getEnv("PROMPT_FILE", ""),
	}
}
