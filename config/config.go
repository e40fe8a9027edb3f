package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the Adyen credentials and endpoints. It is built once at
// startup and never mutated afterwards.
type Config struct {
	APIKey          string
	MerchantAccount string
	BaseURL         string
	WSUser          string
	WSPassword      string
	Environment     string
	Port            string
}

// Load reads the configuration from the environment, honoring a .env file
// when present. All missing required variables are reported in one error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:          os.Getenv("ADYEN_API_KEY"),
		MerchantAccount: os.Getenv("ADYEN_MERCHANT_ACCOUNT"),
		BaseURL:         os.Getenv("ADYEN_PAYMENTS_ENDPOINT"),
		WSUser:          os.Getenv("ADYEN_WS_USER"),
		WSPassword:      os.Getenv("ADYEN_WS_PASSWORD"),
		Environment:     getEnv("ADYEN_ENVIRONMENT", "test"),
		Port:            getEnv("PORT", "8000"),
	}

	var missing []string
	if cfg.APIKey == "" {
		missing = append(missing, "ADYEN_API_KEY")
	}
	if cfg.MerchantAccount == "" {
		missing = append(missing, "ADYEN_MERCHANT_ACCOUNT")
	}
	if cfg.BaseURL == "" {
		missing = append(missing, "ADYEN_PAYMENTS_ENDPOINT")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
