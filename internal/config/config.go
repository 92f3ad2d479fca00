// Package config loads service configuration from an optional
// agentbay.yaml and AGENTBAY_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes every environment variable, e.g. AGENTBAY_HTTP_PORT.
const EnvPrefix = "AGENTBAY"

// Config holds the service configuration.
type Config struct {
	HTTPPort              int           `mapstructure:"HTTP_PORT"`
	LogLevel              string        `mapstructure:"LOG_LEVEL"`
	StorageDriver         string        `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL           string        `mapstructure:"DATABASE_URL"`
	HistoryKey            string        `mapstructure:"HISTORY_KEY"`
	MaxSessions           int           `mapstructure:"MAX_SESSIONS"`
	BackendMode           string        `mapstructure:"BACKEND_MODE"`
	BackendURL            string        `mapstructure:"BACKEND_URL"`
	BackendToken          string        `mapstructure:"BACKEND_TOKEN"`
	BackendTimeout        time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	GeneralAgentID        string        `mapstructure:"GENERAL_AGENT_ID"`
	ConversationCacheSize int           `mapstructure:"CONVERSATION_CACHE_SIZE"`
	DisabledAgents        []string      `mapstructure:"DISABLED_AGENTS"`
	PolicyFile            string        `mapstructure:"POLICY_FILE"`
	APIKey                string        `mapstructure:"API_KEY"`
	WSPingInterval        time.Duration `mapstructure:"WS_PING_INTERVAL"`
	WSWriteTimeout        time.Duration `mapstructure:"WS_WRITE_TIMEOUT"`
	WSReadTimeout         time.Duration `mapstructure:"WS_READ_TIMEOUT"`
	WSMaxMessageSize      int64         `mapstructure:"WS_MAX_MESSAGE_SIZE"`
}

// Load reads configuration into a fresh viper instance. A missing config
// file is not an error.
func Load(logger *zap.Logger) (*Config, error) {
	return load(viper.New(), logger)
}

func load(v *viper.Viper, logger *zap.Logger) (*Config, error) {
	v.SetConfigName("agentbay")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "file:agentbay.db?cache=shared&mode=rwc")
	v.SetDefault("HISTORY_KEY", "agentbay_chat_history")
	v.SetDefault("MAX_SESSIONS", 50)
	v.SetDefault("BACKEND_MODE", "MOCK")
	v.SetDefault("BACKEND_URL", "")
	v.SetDefault("BACKEND_TOKEN", "")
	v.SetDefault("BACKEND_TIMEOUT", "60s")
	v.SetDefault("GENERAL_AGENT_ID", "travel-agent")
	v.SetDefault("CONVERSATION_CACHE_SIZE", 1024)
	v.SetDefault("DISABLED_AGENTS", []string{})
	v.SetDefault("POLICY_FILE", "")
	v.SetDefault("API_KEY", "")
	v.SetDefault("WS_PING_INTERVAL", "30s")
	v.SetDefault("WS_WRITE_TIMEOUT", "10s")
	v.SetDefault("WS_READ_TIMEOUT", "60s")
	v.SetDefault("WS_MAX_MESSAGE_SIZE", 65536)

	if err := v.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Debug("No config file read, using defaults/env vars", zap.Error(err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.DisabledAgents = cleanList(cfg.DisabledAgents)

	return &cfg, nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cleaned = append(cleaned, part)
			}
		}
	}
	return cleaned
}
