package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Client ClientConfig
	Auth   AuthConfig
	SMTP   SMTPConfig
	Ai     AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtelEnabled        bool
	OtelEndpoint       string
	WorkspaceTTL       time.Duration
}

// ClientConfig drives the terminal client (cmd/codebenders).
type ClientConfig struct {
	APIBaseURL  string
	Timeout     time.Duration
	StatePath   string
	LogFilePath string
	DemoMode    bool
}

type AuthConfig struct {
	JWTSecret        string
	AccessTokenTTL   time.Duration
	ResetTokenTTL    time.Duration
	VerifyTokenTTL   time.Duration
	SeedUserEmail    string
	SeedUserPassword string
	SeedUserName     string
	SeedUserIsAdmin  bool
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	LLMProvider   string // "ollama", "huggingface" or "template"
	LLMModel      string
	OllamaBaseURL string
	LLMBaseURL    string // OpenAI-compatible endpoint for "huggingface"
	LLMAPIKey     string
	Temperature   float64
	MaxTokens     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/devserver.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://localhost:3000"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			WorkspaceTTL:       getEnvAsDuration("WORKSPACE_TTL", 24*time.Hour),
		},
		Client: ClientConfig{
			APIBaseURL:  getEnv("CODEBENDERS_API_URL", "http://localhost:8000"),
			Timeout:     getEnvAsDuration("CODEBENDERS_API_TIMEOUT", 10*time.Second),
			StatePath:   getEnv("CODEBENDERS_STATE_FILE", defaultStatePath()),
			LogFilePath: getEnv("CODEBENDERS_LOG_FILE", filepath.Join(defaultStateDir(), "client.log")),
			DemoMode:    getEnvAsBool("CODEBENDERS_DEMO_MODE", false),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", "default_secret"),
			AccessTokenTTL:   getEnvAsDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
			ResetTokenTTL:    getEnvAsDuration("RESET_TOKEN_TTL", time.Hour),
			VerifyTokenTTL:   getEnvAsDuration("VERIFY_TOKEN_TTL", 15*time.Minute),
			SeedUserEmail:    getEnv("SEED_USER_EMAIL", "admin@codebenders.dev"),
			SeedUserPassword: getEnv("SEED_USER_PASSWORD", "Password1"),
			SeedUserName:     getEnv("SEED_USER_NAME", "Codebenders Admin"),
			SeedUserIsAdmin:  getEnvAsBool("SEED_USER_IS_ADMIN", true),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Codebenders"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMBaseURL:    getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:     getEnv("LLM_API_KEY", ""),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 4000),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codebenders"
	}
	return filepath.Join(home, ".codebenders")
}

func defaultStatePath() string {
	return filepath.Join(defaultStateDir(), "state.json")
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("10s") or plain seconds ("10").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
