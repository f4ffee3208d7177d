package config

import (
	"fmt"
	"strings"
)

// RegistrationConfig holds registration pipeline configuration.
type RegistrationConfig struct {
	// CodePrefix is the team code prefix (codes look like PREFIX-001).
	CodePrefix string
	// EntryFee is the fixed registration fee recorded on each team.
	EntryFee int
	// AssetDir is the directory payment proof uploads are stored in.
	AssetDir string
	// MailerAPIURL is the transactional email provider endpoint.
	// Empty disables outbound email.
	MailerAPIURL string
	// MailerAPIKey authenticates against the email provider.
	MailerAPIKey string
	// MailerSender is the From address on outbound email.
	MailerSender string
}

// LoadRegistrationConfigFromEnv loads registration configuration from
// environment variables.
func LoadRegistrationConfigFromEnv() RegistrationConfig {
	return RegistrationConfig{
		CodePrefix:   GetEnv("TEAM_CODE_PREFIX", "CREATOR"),
		EntryFee:     GetEnvInt("ENTRY_FEE", 1750),
		AssetDir:     GetEnv("ASSET_DIR", "uploads"),
		MailerAPIURL: GetEnv("MAILER_API_URL", ""),
		MailerAPIKey: GetEnv("MAILER_API_KEY", ""),
		MailerSender: GetEnv("MAILER_SENDER", "noreply@createx.dev"),
	}
}

// Validate validates registration configuration.
func (c RegistrationConfig) Validate() error {
	if strings.TrimSpace(c.CodePrefix) == "" {
		return fmt.Errorf("TEAM_CODE_PREFIX must not be empty")
	}
	if strings.Contains(c.CodePrefix, "-") {
		return fmt.Errorf("TEAM_CODE_PREFIX must not contain '-'")
	}
	if c.EntryFee <= 0 {
		return fmt.Errorf("ENTRY_FEE must be greater than 0")
	}
	if c.AssetDir == "" {
		return fmt.Errorf("ASSET_DIR must not be empty")
	}
	return nil
}
