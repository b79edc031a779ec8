package config

import "os"

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host string
	Port string
}

// LoadServerConfig loads server configuration from environment variables.
// An empty HOST binds all interfaces.
func LoadServerConfig() ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	return ServerConfig{
		Host: os.Getenv("HOST"),
		Port: port,
	}
}
