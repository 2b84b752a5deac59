package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config carries every environment-driven setting. Secrets left empty
// disable the corresponding collaborator rather than failing startup.
type Config struct {
	Port      string
	DBPath    string
	BaseURL   string
	LogLevel  string
	LogFormat string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	UnsplashAccessKey string

	StripeSecretKey     string
	StripeWebhookSecret string

	PostmarkToken string
	FromEmail     string
}

// Load reads configuration from the environment, with .env file support for
// local development.
func Load() Config {
	_ = godotenv.Load(".env", ".env.local")

	port := getenv("WANDERGUIDE_PORT", "8080")
	return Config{
		Port:      port,
		DBPath:    getenv("WANDERGUIDE_DB_PATH", "wanderguide.db"),
		BaseURL:   getenv("WANDERGUIDE_BASE_URL", "http://localhost:"+port),
		LogLevel:  getenv("WANDERGUIDE_LOG_LEVEL", "info"),
		LogFormat: getenv("WANDERGUIDE_LOG_FORMAT", "text"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		UnsplashAccessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		PostmarkToken: os.Getenv("WANDERGUIDE_POSTMARK_TOKEN"),
		FromEmail:     os.Getenv("WANDERGUIDE_FROM_EMAIL"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
