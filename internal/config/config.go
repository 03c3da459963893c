package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BerryBytes/rolectl/internal/cache"
	"github.com/BerryBytes/rolectl/internal/sso"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type SSOConfig struct {
	StartURL string `yaml:"start_url,omitempty" json:"start_url,omitempty"`
	Region   string `yaml:"region,omitempty" json:"region,omitempty"`
	// NoBrowser prints the device login URL instead of opening it.
	NoBrowser bool `yaml:"no_browser,omitempty" json:"no_browser,omitempty"`
}

type Config struct {
	Profile       string    `yaml:"profile,omitempty" json:"profile,omitempty"`
	DefaultRegion string    `yaml:"default_region,omitempty" json:"default_region,omitempty"`
	CacheBackend  string    `yaml:"cache_backend,omitempty" json:"cache_backend,omitempty"`
	CacheDir      string    `yaml:"cache_dir,omitempty" json:"cache_dir,omitempty"`
	MFASerial     string    `yaml:"mfa_serial,omitempty" json:"mfa_serial,omitempty"`
	SessionName   string    `yaml:"session_name,omitempty" json:"session_name,omitempty"`
	SSO           SSOConfig `yaml:"sso,omitempty" json:"sso,omitempty"`

	fs        afero.Fs
	configDir string
}

var ErrNoConfigFile = errors.New("no config file found")

// NewConfig loads ~/.config/rolectl/config.{yml,yaml,json} and applies the
// environment overrides. A missing file yields the defaults.
func NewConfig(fs afero.Fs) (*Config, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return LoadConfig(fs, filepath.Join(userHome, ".config", "rolectl"))
}

func LoadConfig(fs afero.Fs, configDir string) (*Config, error) {
	cfg := &Config{fs: fs, configDir: configDir}

	if err := cfg.loadConfigFile(); err != nil && !errors.Is(err, ErrNoConfigFile) {
		return nil, err
	}

	cfg.Profile = getEnv("AWS_PROFILE", cfg.Profile)
	cfg.DefaultRegion = getEnv("ROLECTL_DEFAULT_REGION", cfg.DefaultRegion)
	cfg.CacheBackend = getEnv("ROLECTL_CACHE_BACKEND", cfg.CacheBackend)
	cfg.CacheDir = getEnv("ROLECTL_CACHE_DIR", cfg.CacheDir)

	if cfg.CacheBackend == "" {
		cfg.CacheBackend = cache.BackendFile
	}
	return cfg, nil
}

func (c *Config) loadConfigFile() error {
	configFilePath, err := c.FindConfigFile()
	if err != nil {
		return err
	}

	fileData, err := afero.ReadFile(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(fileData, c); err != nil {
		log.Debugf("YAML parsing failed, trying JSON: %v", err)
		if err := json.Unmarshal(fileData, c); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	return nil
}

func (c *Config) FindConfigFile() (string, error) {
	extensions := []string{"config.yml", "config.yaml", "config.json"}

	if _, err := c.fs.Stat(c.configDir); os.IsNotExist(err) {
		return "", ErrNoConfigFile
	} else if err != nil {
		return "", fmt.Errorf("failed to stat directory %s: %w", c.configDir, err)
	}

	for _, ext := range extensions {
		possiblePath := filepath.Join(c.configDir, ext)
		if _, err := c.fs.Stat(possiblePath); err == nil {
			return possiblePath, nil
		}
	}

	return "", ErrNoConfigFile
}

// Validate checks the values that would otherwise only fail deep inside a command.
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case cache.BackendFile, cache.BackendKeyring, cache.BackendMemory:
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	if c.SSO.StartURL != "" {
		if err := sso.ValidateStartURL(c.SSO.StartURL); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the current values, environment overrides included, as YAML.
// An existing .yml or .yaml file is overwritten in place; otherwise
// config.yaml is created. The written path is returned.
func (c *Config) Save() (string, error) {
	configFilePath := filepath.Join(c.configDir, "config.yaml")
	if existing, err := c.FindConfigFile(); err == nil && filepath.Ext(existing) != ".json" {
		configFilePath = existing
	}
	if err := c.fs.MkdirAll(c.configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := afero.WriteFile(c.fs, configFilePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFilePath, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
