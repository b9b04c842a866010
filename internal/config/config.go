package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Chat ChatConfig
	Ai   AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	DataDir            string
	StaticDir          string
}

type ChatConfig struct {
	MaxHistoryLength       int
	SessionTimeoutMinutes  int
	MaxKnowledgeChars      int
	ChatRateLimitPerMinute int
}

type AIConfig struct {
	LLMProvider     string // "gemini" or "ollama"
	GeminiAPIKey    string
	GeminiModel     string
	OllamaBaseURL   string
	OllamaModel     string
	Temperature     float64
	MaxOutputTokens int
	TopP            float64
	TopK            int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			DataDir:            getEnv("DATA_DIR", "./data"),
			StaticDir:          getEnv("STATIC_DIR", "./static"),
		},
		Chat: ChatConfig{
			MaxHistoryLength:       getEnvAsInt("MAX_HISTORY_LENGTH", 20),
			SessionTimeoutMinutes:  getEnvAsInt("SESSION_TIMEOUT_MINUTES", 60),
			MaxKnowledgeChars:      getEnvAsInt("MAX_KNOWLEDGE_CHARS", 400000),
			ChatRateLimitPerMinute: getEnvAsInt("CHAT_RATE_LIMIT_PER_MINUTE", 30),
		},
		Ai: AIConfig{
			LLMProvider:     getEnv("LLM_PROVIDER", "gemini"),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:     getEnv("OLLAMA_MODEL", "llama3"),
			Temperature:     getEnvAsFloat("TEMPERATURE", 0.7),
			MaxOutputTokens: getEnvAsInt("MAX_OUTPUT_TOKENS", 1024),
			TopP:            getEnvAsFloat("TOP_P", 0.9),
			TopK:            getEnvAsInt("TOP_K", 40),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
