package sso

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// ProfileSettings are the SSO keys of a shared config profile.
type ProfileSettings struct {
	StartURL string
	Region   string
}

// SharedConfigPath returns $AWS_CONFIG_FILE, or ~/.aws/config.
func SharedConfigPath() (string, error) {
	if path := os.Getenv("AWS_CONFIG_FILE"); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to find home directory: %w", err)
	}
	return filepath.Join(homeDir, ".aws", "config"), nil
}

// LoadProfileSettings reads sso_start_url and sso_region for profile, either
// directly from the profile or from the sso-session section it refers to.
func LoadProfileSettings(fs afero.Fs, path, profile string) (*ProfileSettings, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config file: %w", err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse AWS config file: %w", err)
	}

	sectionName := "profile " + profile
	if profile == "default" {
		sectionName = "default"
	}
	section, err := cfg.GetSection(sectionName)
	if err != nil {
		return nil, fmt.Errorf("profile '%s' not found in the config file", profile)
	}

	if sessionName := section.Key("sso_session").String(); sessionName != "" {
		sessionSection, err := cfg.GetSection("sso-session " + sessionName)
		if err != nil {
			return nil, fmt.Errorf("sso-session section '%s' not found in the config file", sessionName)
		}
		section = sessionSection
	}

	settings := &ProfileSettings{
		StartURL: section.Key("sso_start_url").String(),
		Region:   section.Key("sso_region").String(),
	}
	if settings.StartURL == "" {
		return nil, fmt.Errorf("no sso_session or sso_start_url found for profile '%s'", profile)
	}
	return settings, nil
}
