// Package auth provides Monday.com API token management.
// It implements a simple interface with multiple providers following the
// "deep modules" principle - simple interface, complex implementation hidden.
package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// TokenProvider defines the interface for obtaining a Monday API token.
// Implementations may use different sources (environment, config file).
type TokenProvider interface {
	GetToken() (string, error)
}

// EnvProvider obtains tokens from the MONDAY_API_TOKEN environment variable.
// This is the preferred method and matches how the board scripts are usually
// credentialed in CI.
type EnvProvider struct{}

// GetToken reads the MONDAY_API_TOKEN environment variable.
// Returns an error if the variable is not set or is empty.
func (e *EnvProvider) GetToken() (string, error) {
	token := os.Getenv("MONDAY_API_TOKEN")
	if token == "" {
		return "", errors.New("MONDAY_API_TOKEN environment variable not set or empty")
	}
	return token, nil
}

// ConfigProvider obtains tokens from the loaded viper configuration
// (api_token key in sprintpulse.yaml or SPRINTPULSE_API_TOKEN).
type ConfigProvider struct{}

// GetToken reads the api_token configuration key.
// Returns an error if the key is absent or empty.
func (c *ConfigProvider) GetToken() (string, error) {
	token := viper.GetString("api_token")
	if token == "" {
		return "", errors.New("api_token not present in configuration")
	}
	return token, nil
}

// GetToken attempts to obtain a Monday API token using the following strategy:
// 1. MONDAY_API_TOKEN environment variable (preferred)
// 2. api_token key from the config file
// 3. Return a clear, actionable error if both fail
//
// This is the main entry point for token retrieval in the application.
func GetToken() (string, error) {
	env := &EnvProvider{}
	token, envErr := env.GetToken()
	if envErr == nil {
		return token, nil
	}

	cfg := &ConfigProvider{}
	token, err := cfg.GetToken()
	if err == nil {
		return token, nil
	}

	return "", fmt.Errorf(
		"failed to obtain Monday API token: %v.\n"+
			"Please either:\n"+
			"  1. Set the MONDAY_API_TOKEN environment variable, or\n"+
			"  2. Add api_token to your sprintpulse.yaml config file",
		envErr,
	)
}
