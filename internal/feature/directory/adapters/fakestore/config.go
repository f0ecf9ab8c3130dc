// Package fakestore provides a client for the Fake Store API user endpoints.
package fakestore

import (
	"os"
	"time"
)

// DefaultBaseURL is the public Fake Store API endpoint.
const DefaultBaseURL = "https://fakestoreapi.com"

// Config holds configuration for the Fake Store API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://fakestoreapi.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Fake Store configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("FAKESTORE_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
