package confs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and injected where needed. The signing
// secret must never be logged.
type Config struct {
	Port      string
	JWTSecret string
	TokenTTL  time.Duration
}

// LoadConfig loads environment variables from a .env file if present and
// validates the settings this process cannot run without.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("missing required configuration: JWT_SECRET")
	}

	ttlMinutes := 60
	if raw := os.Getenv("TOKEN_TTL_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %q", raw)
		}
		ttlMinutes = parsed
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3536"
	}

	return &Config{
		Port:      port,
		JWTSecret: secret,
		TokenTTL:  time.Duration(ttlMinutes) * time.Minute,
	}, nil
}
