package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
	Chat     ChatConfig
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

type AuthConfig struct {
	JwtSecret     string
	TokenTTLHours int
}

type AIConfig struct {
	LLMProvider    string // "ollama" or "openai"
	LLMModel       string // e.g. "llama3", "gpt-4o-mini"
	OllamaBaseURL  string
	OpenAIAPIKey   string
	TimeoutSeconds int
}

type ChatConfig struct {
	RateLimit        int    // requests per window
	RateWindowMs     int    // window size in milliseconds
	RateLimitDriver  string // "memory" or "redis"
	HistoryWindow    int    // messages sent to the model per turn
	MaxMessageLength int
	TitleTopicName   string
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
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:     getEnv("JWT_SECRET", ""),
			TokenTTLHours: getEnvAsInt("JWT_TTL_HOURS", 72),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			TimeoutSeconds: getEnvAsInt("LLM_TIMEOUT_SECONDS", 20),
		},
		Chat: ChatConfig{
			RateLimit:        getEnvAsInt("CHAT_RATE_LIMIT", 20),
			RateWindowMs:     getEnvAsInt("CHAT_RATE_WINDOW_MS", 60000),
			RateLimitDriver:  getEnv("CHAT_RATE_LIMIT_DRIVER", "memory"),
			HistoryWindow:    getEnvAsInt("CHAT_HISTORY_WINDOW", 10),
			MaxMessageLength: getEnvAsInt("CHAT_MAX_MESSAGE_LENGTH", 8000),
			TitleTopicName:   getEnv("CHAT_TITLE_TOPIC_NAME", "GENERATE_SESSION_TITLE"),
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
