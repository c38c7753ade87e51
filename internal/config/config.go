package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"auditpath-quiz-be/pkg/srs"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Ai       AIConfig
	Quiz     QuizConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

type AIConfig struct {
	LLMProvider string // "ollama", "huggingface"
	LLMModel    string // e.g. "llama3", "qwen2.5"
	BaseURL     string
	APIKey      string
}

// QuizConfig holds the spaced-repetition policy knobs. The streak and
// interval values are deployment policy, not engine behavior, so they load
// from the environment with production defaults.
type QuizConfig struct {
	MasteryStreak           float64
	FailureStreak           int
	RefreshIntervalSessions int
	DefaultQueueLimit       int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "AuditPath"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLHours: getEnvAsInt("JWT_TTL_HOURS", 72),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:    getEnv("LLM_MODEL", "llama3"),
			BaseURL:     getEnv("LLM_BASE_URL", ""),
			APIKey:      getEnv("LLM_API_KEY", ""),
		},
		Quiz: QuizConfig{
			MasteryStreak:           getEnvAsFloat("QUIZ_MASTERY_STREAK", 3),
			FailureStreak:           getEnvAsInt("QUIZ_FAILURE_STREAK", 3),
			RefreshIntervalSessions: getEnvAsInt("QUIZ_REFRESH_INTERVAL_SESSIONS", 30),
			DefaultQueueLimit:       getEnvAsInt("QUIZ_DEFAULT_QUEUE_LIMIT", 10),
		},
	}
}

// Policy materializes the configured scheduling policy.
func (c *Config) Policy() srs.Policy {
	p := srs.DefaultPolicy()
	p.MasteryStreak = c.Quiz.MasteryStreak
	p.FailureStreak = c.Quiz.FailureStreak
	p.RefreshIntervalSessions = c.Quiz.RefreshIntervalSessions
	return p
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
