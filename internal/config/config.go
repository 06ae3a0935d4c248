package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Media    MediaConfig
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
	UploadLimitMB      int
	SessionTTL         time.Duration
	TranslationTTL     time.Duration
	UsageTopic         string // watermill topic for usage counters
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
	Synthesia    string
}

type AIConfig struct {
	LLMProvider    string // "gemini", "openai", "ollama"
	LLMModel       string
	LLMBaseURL     string // OpenAI compatible router, optional
	OllamaBaseURL  string
	PromptMaxChars int
}

type MediaConfig struct {
	ImageModel        string
	SynthesiaBaseURL  string
	SynthesiaTestMode bool
	PollInterval      time.Duration
	MaxPolls          int
	ScriptMaxWords    int
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			UploadLimitMB:      getEnvAsInt("UPLOAD_LIMIT_MB", 25),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", 2*time.Hour),
			TranslationTTL:     getEnvAsDuration("TRANSLATION_CACHE_TTL", 24*time.Hour),
			UsageTopic:         getEnv("USAGE_TOPIC_NAME", "UI_INTERACTION_USAGE"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "change-me"),
			TokenTTL:  getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Student Document Analyzer"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			Synthesia:    getEnv("SYNTHESIA_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:       getEnv("LLM_MODEL", "gemini-2.0-flash"),
			LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			PromptMaxChars: getEnvAsInt("PROMPT_MAX_CHARS", 120000),
		},
		Media: MediaConfig{
			ImageModel:        getEnv("IMAGE_MODEL", "dall-e-3"),
			SynthesiaBaseURL:  getEnv("SYNTHESIA_BASE_URL", "https://api.synthesia.io/v2"),
			SynthesiaTestMode: getEnvAsBool("SYNTHESIA_TEST_MODE", true),
			PollInterval:      getEnvAsDuration("VIDEO_POLL_INTERVAL", 10*time.Second),
			MaxPolls:          getEnvAsInt("VIDEO_MAX_POLLS", 30),
			ScriptMaxWords:    getEnvAsInt("VIDEO_SCRIPT_MAX_WORDS", 180),
		},
	}
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings such as "90s" or "2h"
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
