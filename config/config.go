package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs from the environment.
// It is loaded once in main and passed down explicitly; nothing else
// in the codebase reads os.Getenv.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Comma-separated list of allowed browser origins. Empty means
	// allow all (local development).
	FrontendURL string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	SendgridAPIKey string
	ReceiptFrom    string

	// When both are set, a bootstrap admin account is upserted at startup.
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:                  os.Getenv("PORT"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		FrontendURL:           os.Getenv("FRONTEND_URL"),
		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		SendgridAPIKey:        os.Getenv("SENDGRID_API_KEY"),
		ReceiptFrom:           os.Getenv("RECEIPT_EMAIL"),
		AdminEmail:            os.Getenv("ADMIN_EMAIL"),
		AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg
}
