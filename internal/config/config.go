// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Data     DataConfig
	Corpus   CorpusConfig
	Server   ServerConfig
	Approval ApprovalConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds storage configuration.
type DataConfig struct {
	// BasePath is the directory for the approval database (default: ./data).
	BasePath string
}

// CorpusConfig holds raw review corpus configuration.
type CorpusConfig struct {
	// Path to the raw review payload file.
	Path string
	// Watch enables reloading the corpus when the file changes (default: true).
	Watch bool
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed dashboard origins (default: *)
}

// ApprovalConfig holds approval mutation configuration.
type ApprovalConfig struct {
	// MutationRPS limits approval writes per client IP (default: 5).
	MutationRPS float64
	// MutationBurst is the token bucket burst size (default: 10).
	MutationBurst int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Directory for the approval database")
	corpusPath := flag.String("corpus-path", "", "Path to the raw review payload file")
	corpusWatch := flag.String("corpus-watch", "", "Reload corpus on file change (default: true)")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed origins (default: *)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", "./data"),
		},
		Corpus: CorpusConfig{
			Path:  getConfigValue(*corpusPath, "CORPUS_PATH", "./data/reviews.json"),
			Watch: getBoolConfigValue(*corpusWatch, "CORPUS_WATCH", true),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitOrigins(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Approval: ApprovalConfig{
			MutationRPS:   getFloatConfigValue("", "APPROVAL_MUTATION_RPS", 5),
			MutationBurst: getIntConfigValue("", "APPROVAL_MUTATION_BURST", 10),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDuration(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDuration(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDuration(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data path cannot be empty after expansion")
	}
	if c.Corpus.Path == "" {
		return errors.New("corpus path is required")
	}
	if c.Approval.MutationRPS <= 0 {
		return errors.New("approval mutation rate must be positive")
	}

	return nil
}

// expandDataPath expands ~ in the data path and makes it absolute.
func (c *Config) expandDataPath() error {
	path := c.Data.BasePath
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	c.Data.BasePath = abs
	return nil
}

// parseDuration resolves a duration with flag > env > default precedence.
func parseDuration(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), raw, err)
	}
	return d, nil
}

// splitOrigins splits a comma-separated origin list, dropping empties.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// getConfigValue returns the first non-empty value: flag, env var, default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a boolean with flag > env > default precedence.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return b
}

// getIntConfigValue returns an integer with flag > env > default precedence.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}

// getFloatConfigValue returns a float with flag > env > default precedence.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	raw := getConfigValue(flagValue, envKey, "")
	if raw == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// loadEnvFile loads environment variables from a file in KEY=VALUE format.
// Lines starting with # are treated as comments. Existing environment
// variables are not overwritten.
func loadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
