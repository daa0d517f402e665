package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/thecatthatbarks/buzzbot/pkg/core/heuristics"
)

// TravelConfig configures the travel-time oracle.
type TravelConfig struct {
	// APIKey authenticates against the distance matrix service
	APIKey string `yaml:"apiKey" validate:"required"`

	// Endpoint overrides the default distance matrix endpoint (mainly for tests)
	Endpoint string `yaml:"endpoint,omitempty"`

	// CacheFile is the persistent travel-time cache location
	CacheFile string `yaml:"cacheFile,omitempty"`
}

// SheetsConfig configures the optional Google Sheets integration.
type SheetsConfig struct {
	// CredentialsFile is a Google service account credentials JSON file
	CredentialsFile string `yaml:"credentialsFile" validate:"required"`

	SpreadsheetID  string `yaml:"spreadsheetID" validate:"required"`
	FixturesTab    string `yaml:"fixturesTab,omitempty"`
	LocationsTab   string `yaml:"locationsTab,omitempty"`
	AssignmentsTab string `yaml:"assignmentsTab,omitempty"`
}

// Config represents the application configuration. It is constructed once
// at startup and passed explicitly into the engine and its collaborators.
type Config struct {
	// Teams is the umpiring roster
	Teams []string `yaml:"teams" validate:"required,min=2"`

	// VenuesFile is the venue reference data CSV
	VenuesFile string `yaml:"venuesFile" validate:"required"`

	// Heuristic names the selection heuristic (defaults to greedyfair)
	Heuristic string `yaml:"heuristic,omitempty"`

	Travel TravelConfig `yaml:"travel" validate:"required"`

	// Sheets enables reading fixtures from and publishing assignments to
	// a Google Sheet when present
	Sheets *SheetsConfig `yaml:"sheets,omitempty"`

	// PostgresURL enables the assignment history store when present
	PostgresURL string `yaml:"postgresURL,omitempty"`
}

const configFileName = "buzzbot_config.yaml"

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from buzzbot_config.yaml,
// looking in the current directory first and then the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks that the
// configured heuristic name resolves.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := heuristics.ForName(cfg.Heuristic); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Travel.CacheFile == "" {
		cfg.Travel.CacheFile = "travel_cache.yaml"
	}
	if cfg.Sheets != nil {
		if cfg.Sheets.FixturesTab == "" {
			cfg.Sheets.FixturesTab = "Fixtures List"
		}
		if cfg.Sheets.LocationsTab == "" {
			cfg.Sheets.LocationsTab = "Locations"
		}
		if cfg.Sheets.AssignmentsTab == "" {
			cfg.Sheets.AssignmentsTab = "Assignments"
		}
	}
}

// findConfigFile searches for buzzbot_config.yaml in the current directory
// and then the home directory.
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
