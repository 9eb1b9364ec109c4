package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidateTimeout validates a timeout; zero disables it
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout < 0 {
		return fmt.Errorf("%s timeout cannot be negative", name)
	}
	if timeout > 2*time.Hour {
		return fmt.Errorf("%s timeout too large (max 2 hours)", name)
	}
	return nil
}

// ValidateAPIKey validates OpenAI API key format
func ValidateAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is required")
	}
	if !strings.HasPrefix(apiKey, "sk-") {
		return fmt.Errorf("invalid OpenAI API key format: must start with 'sk-'")
	}
	if len(apiKey) < 20 {
		return fmt.Errorf("invalid OpenAI API key format: too short")
	}
	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}
	return nil
}

// ValidatePort validates port number
func ValidatePort(port string, name string) error {
	if port == "" {
		return fmt.Errorf("%s port is required", name)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%s port invalid: %q", name, port)
	}
	return nil
}
