package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Codec   CodecConfig   `json:"codec"`
	Scanner ScannerConfig `json:"scanner"`
	Naming  NamingConfig  `json:"naming"`
}

// CodecConfig holds encoding settings
type CodecConfig struct {
	JPEGQuality  int  `json:"jpeg_quality"`
	WebPQuality  int  `json:"webp_quality"`
	WebPLossless bool `json:"webp_lossless"`
}

// ScannerConfig holds input enumeration settings
type ScannerConfig struct {
	Extensions []string `json:"extensions"`
}

// NamingConfig holds output naming defaults
type NamingConfig struct {
	AddSizeSuffix bool `json:"add_size_suffix"`
	Overwrite     bool `json:"overwrite"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Codec: CodecConfig{
			JPEGQuality:  95,
			WebPQuality:  90,
			WebPLossless: false,
		},
		Scanner: ScannerConfig{
			Extensions: []string{"jpg", "jpeg", "png"},
		},
		Naming: NamingConfig{
			AddSizeSuffix: true,
			Overwrite:     false,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Codec.JPEGQuality < 1 || c.Codec.JPEGQuality > 100 {
		return fmt.Errorf("codec.jpeg_quality must be between 1 and 100")
	}

	if c.Codec.WebPQuality < 1 || c.Codec.WebPQuality > 100 {
		return fmt.Errorf("codec.webp_quality must be between 1 and 100")
	}

	if len(c.Scanner.Extensions) == 0 {
		return fmt.Errorf("scanner.extensions cannot be empty")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "bulk-cropper", "config.json")
}
