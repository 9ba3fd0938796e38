package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates all service configuration.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Storage  StorageConfig
	Log      LogConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	upstream, err := loadUpstreamConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Upstream: upstream,
		Storage:  loadStorageConfig(),
		Log:      logCfg,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// UpstreamConfig describes the remote chat-completion endpoint.
type UpstreamConfig struct {
	URL     string
	Timeout time.Duration
}

func loadUpstreamConfig() (UpstreamConfig, error) {
	url := strings.TrimSpace(os.Getenv("UPSTREAM_URL"))
	if url == "" {
		return UpstreamConfig{}, fmt.Errorf("UPSTREAM_URL is required")
	}

	seconds, err := parseOptionalIntEnv("UPSTREAM_TIMEOUT_SECONDS")
	if err != nil {
		return UpstreamConfig{}, err
	}
	timeout := 30 * time.Second
	if seconds != nil {
		if *seconds < 1 {
			return UpstreamConfig{}, fmt.Errorf("UPSTREAM_TIMEOUT_SECONDS must be positive")
		}
		timeout = time.Duration(*seconds) * time.Second
	}

	return UpstreamConfig{URL: url, Timeout: timeout}, nil
}

// StorageConfig locates the conversation database.
type StorageConfig struct {
	Path string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{Path: getEnvOrDefault("DATA_DIR", "./data/conversations")}
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string
	Pretty bool
}

func loadLogConfig() (LogConfig, error) {
	pretty, err := parseBoolEnv("LOG_PRETTY", false)
	if err != nil {
		return LogConfig{}, err
	}
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Pretty: pretty,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
