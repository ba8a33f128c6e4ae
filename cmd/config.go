package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret      string
	AllowedOrigins []string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string
	RazorpayBaseURL       string

	CheckoutSessionTTL time.Duration
	LogLevel           slog.Level
}

// LoadConfig reads the environment, after loading .env when one exists.
// Every missing required variable is reported at once.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", file, err)
		}
	}

	var missing []string
	required := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		HTTPPort:              optional("HTTP_PORT", "8080"),
		DBHost:                required("DB_HOST"),
		DBPort:                optional("DB_PORT", "5432"),
		DBUser:                required("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                required("DB_NAME"),
		DBSslMode:             optional("DB_SSLMODE", "disable"),
		JWTSecret:             required("JWT_SECRET"),
		RazorpayKeyID:         required("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     required("RAZORPAY_KEY_SECRET"),
		RazorpayWebhookSecret: required("RAZORPAY_WEBHOOK_SECRET"),
		RazorpayBaseURL:       optional("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
	}
	if origins := optional("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	ttl, err := time.ParseDuration(optional("CHECKOUT_SESSION_TTL", "30m"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("CHECKOUT_SESSION_TTL must be a positive duration, got %q", os.Getenv("CHECKOUT_SESSION_TTL"))
	}
	cfg.CheckoutSessionTTL = ttl

	if err = cfg.LogLevel.UnmarshalText([]byte(optional("LOG_LEVEL", "INFO"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func optional(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
