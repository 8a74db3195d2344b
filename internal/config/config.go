package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DBPath        string
	LogLevel      string
	DailyGoal     int
	QuizMinWords  int
	SpeechTimeout int // seconds before an in-flight recognition is abandoned
	TTSLang       string
	TTSRate       float64
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:          envOr("ADDR", ":8080"),
		DBPath:        envOr("DB_PATH", "file:vocabmaster.db"),
		LogLevel:      envOr("LOG_LEVEL", "INFO"),
		DailyGoal:     envIntOr("DAILY_GOAL", 10),
		QuizMinWords:  envIntOr("QUIZ_MIN_WORDS", 5),
		SpeechTimeout: envIntOr("SPEECH_TIMEOUT", 10),
		TTSLang:       envOr("TTS_LANG", "en-US"),
		TTSRate:       envFloatOr("TTS_RATE", 0.8),
	}
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

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
