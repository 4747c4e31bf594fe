package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ConfigVersion  = "1.0"
	ConfigDirName  = ".promptline"
	ConfigFileName = "config.json"
)

// Input modes accepted in the config file
const (
	ModeLine = "line"
	ModeChar = "char"
)

const (
	DefaultPrefix         = "> "
	DefaultPollIntervalMs = 10
	MaxPollIntervalMs     = 1000
)

// Config represents the console configuration
type Config struct {
	Version string `json:"version"`

	// Prompt
	Prefix string `json:"prefix"`
	Mode   string `json:"mode"`

	// Input capture
	PollIntervalMs int  `json:"poll_interval_ms,omitempty"`
	BlockingInput  bool `json:"blocking_input,omitempty"`
	ScanCodes      bool `json:"scan_codes,omitempty"`

	// Output routing
	RedirectStdStreams bool `json:"redirect_std_streams,omitempty"`

	// Logging
	LogFile string `json:"log_file,omitempty"`
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		Version:        ConfigVersion,
		Prefix:         DefaultPrefix,
		Mode:           ModeLine,
		PollIntervalMs: DefaultPollIntervalMs,
	}
}

// GetConfigDir returns the configuration directory, creating it if needed.
// PROMPTLINE_CONFIG_DIR overrides the default under the home directory.
func GetConfigDir() (string, error) {
	configDir := os.Getenv("PROMPTLINE_CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ConfigDirName)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path of the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads the config file, falling back to defaults when it is missing
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads a config file at path. Fields missing from the file keep
// their defaults.
func LoadFrom(configPath string) (*Config, error) {
	config := NewConfig()

	// If config doesn't exist, return new default config
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set version if not present
	if config.Version == "" {
		config.Version = ConfigVersion
	}
	if config.Mode == "" {
		config.Mode = ModeLine
	}
	if config.PollIntervalMs == 0 {
		config.PollIntervalMs = DefaultPollIntervalMs
	}

	return config, nil
}

// Save writes the configuration to the default path
func (c *Config) Save() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the configuration to path
func (c *Config) SaveTo(configPath string) error {
	c.Version = ConfigVersion

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0600)
}

// ApplyEnv overrides fields from PROMPTLINE_PREFIX and PROMPTLINE_MODE
func (c *Config) ApplyEnv() {
	if prefix, ok := os.LookupEnv("PROMPTLINE_PREFIX"); ok {
		c.Prefix = prefix
	}
	if mode := os.Getenv("PROMPTLINE_MODE"); mode != "" {
		c.Mode = strings.ToLower(strings.TrimSpace(mode))
	}
}

// Validate checks the configuration for values the console cannot use
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeLine, ModeChar:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeLine, ModeChar, c.Mode)
	}

	if strings.ContainsAny(c.Prefix, "\r\n") {
		return fmt.Errorf("prefix cannot contain line breaks")
	}

	if c.PollIntervalMs < 1 || c.PollIntervalMs > MaxPollIntervalMs {
		return fmt.Errorf("poll interval must be between 1 and %d ms, got %d", MaxPollIntervalMs, c.PollIntervalMs)
	}

	return nil
}

// PollInterval returns the key poll interval as a duration
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}
