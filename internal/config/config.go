package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	Search     SearchConfig
	Completion CompletionConfig
	Retrieval  RetrievalConfig
	SMTP       SMTPConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	TranscriptLogPath  string
	CorsAllowedOrigins string
	StaticDir          string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	EventTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	SessionsDir string
	DataDir     string
}

type SearchConfig struct {
	Endpoint    string
	APIKey      string
	ProductIdx  string
	PolicyIdx   string
	APIVersion  string
	Timeout     time.Duration
	CacheTTL    time.Duration
	CachePrefix string
}

type CompletionConfig struct {
	Provider        string // "azure", "openai" or "ollama"
	AzureAPIKey     string
	AzureEndpoint   string
	AzureAPIVersion string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OllamaBaseURL   string
	Model           string
	MaxTokens       int
	Temperature     float64
}

type RetrievalConfig struct {
	LexiconPath string
}

type SMTPConfig struct {
	Host        string
	Port        int
	Email       string
	Password    string
	SenderName  string
	AlertTarget string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			TranscriptLogPath:  getEnv("TRANSCRIPT_LOG_PATH", "logs/transcripts.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			StaticDir:          getEnv("STATIC_DIR", "./static"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			EventTopic:         getEnv("EVENT_TOPIC", "chatbot.events"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DATABASE_URL", "sqlite:chatbot.db"),
		},
		Storage: StorageConfig{
			SessionsDir: getEnv("SESSIONS_DIR", "sessions"),
			DataDir:     getEnv("DATA_DIR", "data"),
		},
		Search: SearchConfig{
			Endpoint:    getEnv("AZURE_SEARCH_ENDPOINT", ""),
			APIKey:      getEnv("AZURE_SEARCH_API_KEY", ""),
			ProductIdx:  getEnv("AZURE_SEARCH_INDEX", "mftleather"),
			PolicyIdx:   getEnv("AZURE_SEARCH_POLICY_INDEX", "policy"),
			APIVersion:  getEnv("AZURE_SEARCH_API_VERSION", "2023-11-01"),
			Timeout:     getEnvAsDuration("SEARCH_TIMEOUT", 10*time.Second),
			CacheTTL:    getEnvAsDuration("SEARCH_CACHE_TTL", 5*time.Minute),
			CachePrefix: getEnv("SEARCH_CACHE_PREFIX", "chatbot:search:"),
		},
		Completion: CompletionConfig{
			Provider:        getEnv("LLM_PROVIDER", "azure"),
			AzureAPIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
			AzureEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
			AzureAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2025-01-01-preview"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:           getEnv("LLM_MODEL", "gpt-4"),
			MaxTokens:       getEnvAsInt("LLM_MAX_TOKENS", 800),
			Temperature:     getEnvAsFloat("LLM_TEMPERATURE", 0.7),
		},
		Retrieval: RetrievalConfig{
			LexiconPath: getEnv("LEXICON_PATH", ""),
		},
		SMTP: SMTPConfig{
			Host:        getEnv("SMTP_HOST", ""),
			Port:        getEnvAsInt("SMTP_PORT", 587),
			Email:       getEnv("SMTP_EMAIL", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			SenderName:  getEnv("SMTP_SENDER_NAME", "MFT Leather Chatbot"),
			AlertTarget: getEnv("FEEDBACK_ALERT_EMAIL", ""),
		},
	}
}

// IsProduction reports whether GO_ENV selects production logging.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
