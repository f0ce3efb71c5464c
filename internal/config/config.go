// Package config loads runtime configuration from the environment. Each
// function loads only the sections it needs; required variables fail fast at
// cold start rather than on first use.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Base is the configuration every function shares.
type Base struct {
	ProjectID string
	// Product selects the app variant ("mangosense" or "oinkcheck").
	Product string
	// CredentialsFile optionally points at a service account key for local
	// runs; in GCP the ambient credentials are used.
	CredentialsFile string
}

// SMTP holds the transactional email relay credentials.
type SMTP struct {
	Host     string
	Port     int
	Email    string
	Password string
}

// Twilio holds the SMS provider credentials.
type Twilio struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func init() {
	// Local development convenience; on GCP no .env exists and this is a
	// silent no-op.
	_ = godotenv.Load()
}

// LoadBase reads the shared configuration. GCP_PROJECT and PRODUCT are
// required.
func LoadBase() (Base, error) {
	projectID := os.Getenv("GCP_PROJECT")
	if projectID == "" {
		return Base{}, fmt.Errorf("GCP_PROJECT environment variable must be set")
	}
	product := GetEnv("PRODUCT", "")
	if product == "" {
		return Base{}, fmt.Errorf("PRODUCT environment variable must be set")
	}
	return Base{
		ProjectID:       projectID,
		Product:         product,
		CredentialsFile: GetEnv("GOOGLE_APPLICATION_CREDENTIALS_FILE", ""),
	}, nil
}

// LoadSMTP reads the email relay settings.
func LoadSMTP() (SMTP, error) {
	cfg := SMTP{
		Host:     GetEnv("SMTP_HOST", ""),
		Email:    GetEnv("SMTP_EMAIL", ""),
		Password: GetEnv("SMTP_PASSWORD", ""),
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Email == "" || cfg.Password == "" {
		return SMTP{}, fmt.Errorf("SMTP_EMAIL and SMTP_PASSWORD must be set")
	}
	port := 587
	if s := GetEnv("SMTP_PORT", ""); s != "" {
		if _, err := fmt.Sscanf(s, "%d", &port); err != nil {
			return SMTP{}, fmt.Errorf("invalid SMTP_PORT %q: %w", s, err)
		}
	}
	cfg.Port = port
	return cfg, nil
}

// LoadTwilio reads the SMS provider settings.
func LoadTwilio() (Twilio, error) {
	cfg := Twilio{
		AccountSID: GetEnv("TWILIO_ACCOUNT_SID", ""),
		AuthToken:  GetEnv("TWILIO_AUTH_TOKEN", ""),
		FromNumber: GetEnv("TWILIO_PHONE_NUMBER", ""),
	}
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return Twilio{}, fmt.Errorf("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_PHONE_NUMBER must be set")
	}
	return cfg, nil
}

// GetEnv returns the variable's value, or fallback when unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
