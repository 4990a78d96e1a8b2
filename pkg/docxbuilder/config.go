package docxbuilder

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Suffix styles for renamed relationship ids and part names.
const (
	SuffixUUID    = "uuid"
	SuffixCounter = "counter"
)

// Config contains all configuration options for document generation
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"log_level"`
	// TemplatePath is a .docx file used as host template instead of the built-in one.
	TemplatePath string `yaml:"template"`
	// SuffixStyle selects how renamed relationships are made unique: "uuid" or "counter".
	SuffixStyle string `yaml:"suffix"`
	// StrictMerge fails a save on parts that cannot be merged instead of skipping them.
	StrictMerge bool `yaml:"strict_merge"`
	// TemplateCacheSize is the number of template files kept in memory. 0 disables caching.
	TemplateCacheSize int `yaml:"template_cache_size"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          "info",
		SuffixStyle:       SuffixUUID,
		StrictMerge:       false,
		TemplateCacheSize: 8,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("DOCXBUILDER_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	if val := os.Getenv("DOCXBUILDER_TEMPLATE"); val != "" {
		config.TemplatePath = val
	}

	if val := os.Getenv("DOCXBUILDER_SUFFIX"); val != "" {
		config.SuffixStyle = strings.ToLower(val)
	}

	if val := os.Getenv("DOCXBUILDER_STRICT_MERGE"); val != "" {
		config.StrictMerge = parseBool(val)
	}

	if val := os.Getenv("DOCXBUILDER_TEMPLATE_CACHE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.TemplateCacheSize = size
		}
	}

	return config
}

// LoadConfigFile reads a YAML configuration file on top of the defaults.
// Environment variables in the file are expanded and unknown keys are rejected.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	config := DefaultConfig()
	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("YAML syntax error in '%s': %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}
	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.SuffixStyle != SuffixUUID && c.SuffixStyle != SuffixCounter {
		return errors.New("invalid suffix style: " + c.SuffixStyle)
	}

	if c.TemplateCacheSize < 0 {
		return errors.New("template cache size cannot be negative")
	}

	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// outside the lock, the logger reads the config back
	UpdateLoggerFromConfig()
}

func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
