package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// AvailabilityRules configures the rule-based activity classifier.
// All entries are matched against a lowercased, trimmed, diacritic-folded
// copy of the activity text.
type AvailabilityRules struct {
	WhitelistKeywords []string `yaml:"whitelist_keywords"`
	BlacklistPrefixes []string `yaml:"blacklist_prefixes"`
	BlacklistExact    []string `yaml:"blacklist_exact"`
	NeutralKeywords   []string `yaml:"neutral_keywords"`
}

// CriticalityRules holds the base thresholds for a 30-day window.
// Shorter windows scale these proportionally at aggregation time.
type CriticalityRules struct {
	HighDays   int `yaml:"high_days" validate:"min=1"`
	HighStreak int `yaml:"high_streak" validate:"min=1"`
	LowDays    int `yaml:"low_days" validate:"min=0"`
}

// Filters holds operational row filters applied before analysis.
type Filters struct {
	AllowedDepartments []string `yaml:"allowed_departments"`
}

// Config represents the application configuration
type Config struct {
	Availability AvailabilityRules `yaml:"availability"`
	Rules        CriticalityRules  `yaml:"rules"`
	Filters      Filters           `yaml:"filters"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the built-in configuration used when no config file is
// present. The keyword lists match the source roster's activity vocabulary.
func Default() *Config {
	return &Config{
		Availability: AvailabilityRules{
			WhitelistKeywords: []string{"disponible"},
			BlacklistPrefixes: []string{"ser-", "con-", "lab-"},
			BlacklistExact: []string{
				"descanso", "vacaciones", "licencia medica", "licencia médica",
				"descanso en zona",
			},
			NeutralKeywords: []string{
				"oficina", "actividad interna", "teletrabajo", "capacitacion",
				"capacitación", "academia", "capacitaciones presenciales",
				"oficina central", "oficina central sucre",
			},
		},
		Rules: CriticalityRules{
			HighDays:   7,
			HighStreak: 3,
			LowDays:    4,
		},
		Filters: Filters{
			AllowedDepartments: []string{"OPER", "OPER_OF"},
		},
	}
}

// Load loads and validates the configuration from crewsight.yaml.
// It looks in the current directory first, then in the user's home directory.
// A missing file is not an error: the built-in defaults are returned.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return Default(), nil
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Keys absent from the file keep their built-in defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over a default-initialized config: keys absent from the
	// file keep their built-in values, key by key, so a file setting only
	// availability.whitelist_keywords inherits every other list.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// findConfigFile searches for crewsight.yaml in the current directory and the home directory
func findConfigFile() (string, error) {
	configFileName := "crewsight.yaml"

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
