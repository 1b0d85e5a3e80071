package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config represents the application configuration
type Config struct {
	DefaultSet    string   `toml:"default_set"`
	Pairs         int      `toml:"pairs" validate:"gte=1,lte=36"`
	MatchDelay    Duration `toml:"match_delay" validate:"gte=0"`
	MismatchDelay Duration `toml:"mismatch_delay" validate:"gte=0"`
	Language      string   `toml:"language" validate:"omitempty,oneof=pt-BR en"`
	LogLevel      string   `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFile       string   `toml:"log_file"`
}

// Duration is a time.Duration stored as a string like "500ms"
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Pairs:         18,
		MatchDelay:    Duration(500 * time.Millisecond),
		MismatchDelay: Duration(time.Second),
		Language:      "pt-BR",
		LogLevel:      "info",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config value for %s: %v (rule %s)", fe.Field(), fe.Value(), fe.Tag())
		}
		return err
	}
	return nil
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetCacheDir returns the cache directory for generated ANSI art
func GetCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "concentration")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache", "concentration")
}

// GetSetLibraryPath returns the path to the image set library
func GetSetLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "concentration", "sets")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "concentration", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if missing
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the config file
func SaveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// GetSetPath returns the path to an image set, either in the library or a relative path
func GetSetPath(setName string) (string, error) {
	setPath := filepath.Join(GetSetLibraryPath(), setName)
	if _, err := os.Stat(setPath); err == nil {
		return setPath, nil
	}

	if _, err := os.Stat(setName); err == nil {
		return setName, nil
	}

	return "", fmt.Errorf("image set not found: %s", setName)
}

// GetDefaultSet returns the default image set name from config
func GetDefaultSet() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultSet, nil
}

// SetDefaultSet sets the default image set in the config
func SetDefaultSet(setName string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultSet = setName
	return SaveConfig(config)
}
