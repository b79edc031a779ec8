package config

import (
	"fmt"
	"os"
	"time"
)

// AdminConfig holds the back-office admin account and session settings
type AdminConfig struct {
	Username   string
	Password   string
	SessionTTL time.Duration
}

// LoadAdminConfig loads admin account configuration from environment
// variables. Defaults exist so a fresh checkout can serve immediately;
// deployments override them.
func LoadAdminConfig() (*AdminConfig, error) {
	config := AdminConfig{
		Username: os.Getenv("ADMIN_USERNAME"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}

	if config.Username == "" {
		config.Username = "admin"
	}
	if config.Password == "" {
		config.Password = "admin123"
	}

	config.SessionTTL = 12 * time.Hour
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL is not a valid duration: %w", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be positive")
		}
		config.SessionTTL = parsed
	}

	return &config, nil
}
