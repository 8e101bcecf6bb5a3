package app

import (
	"fmt"
	"os"
	"time"
)

// Config carries everything the service reads from the environment.
type Config struct {
	Port            string
	BaseURL         string
	RedisAddr       string
	PostgresDSN     string
	APIKey          string
	QRSigningSecret string
	ReceiptsDir     string
	TicketTTL       time.Duration
}

const defaultTicketTTL = 72 * time.Hour

// LoadConfig reads the environment. Only the Postgres DSN is mandatory;
// everything else has a development default.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            envOr("PORT", "8080"),
		RedisAddr:       envOr("REDIS_ADDR", "localhost:6379"),
		PostgresDSN:     os.Getenv("POSTGRES_URL"),
		APIKey:          os.Getenv("API_KEY"),
		QRSigningSecret: envOr("QR_SIGNING_SECRET", "dev-signing-secret"),
		ReceiptsDir:     envOr("RECEIPTS_DIR", "receipts"),
		TicketTTL:       defaultTicketTTL,
	}
	cfg.BaseURL = envOr("BASE_URL", "http://localhost:"+cfg.Port)

	if cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("POSTGRES_URL is required")
	}

	if raw := os.Getenv("TICKET_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parsing TICKET_TTL: %w", err)
		}
		cfg.TicketTTL = ttl
	}

	return cfg, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
