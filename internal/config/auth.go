package config

import (
	"fmt"
	"time"
)

// AuthConfig holds administrator authentication configuration.
type AuthConfig struct {
	// JWTSecret signs administrator session tokens.
	JWTSecret string
	// TokenTTL is the administrator session token lifetime.
	TokenTTL time.Duration
	// AdminUsername is the seeded administrator account name.
	AdminUsername string
	// AdminPassword is the seeded administrator password (hashed before storage).
	AdminPassword string
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret:     GetEnv("JWT_SECRET", ""),
		TokenTTL:      GetEnvDuration("JWT_TOKEN_TTL", 12*time.Hour),
		AdminUsername: GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: GetEnv("ADMIN_PASSWORD", ""),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TokenTTL must be greater than 0")
	}
	if c.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME must not be empty")
	}
	return nil
}
