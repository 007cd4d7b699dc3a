package config

import (
	"fmt"
	"strconv"
)

// ServerConfig holds settings for the local stand-in storefront
type ServerConfig struct {
	Port string
	// PublicURL is the address browsers use to reach the stand-in
	PublicURL string
}

// LoadServerConfig loads stand-in server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}
	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("PORT must be numeric: %w", err)
	}

	publicURL := getenv("FAKESTORE_PUBLIC_URL")
	if publicURL == "" {
		publicURL = "http://localhost:" + port
	}

	return ServerConfig{
		Port:      port,
		PublicURL: publicURL,
	}, nil
}
