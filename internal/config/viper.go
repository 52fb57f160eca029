package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. KOTOBA_LOG_LEVEL.
const EnvPrefix = "KOTOBA"

// New builds the application configuration. Values resolve in order:
// defaults, the YAML file at path (or kotoba.yaml in the working directory
// or $XDG_CONFIG_HOME/kotoba), then KOTOBA_* environment variables.
// A missing config file is not an error; a malformed one is.
func New(path string) (*viper.Viper, error) {
	config := viper.New()
	setDefaults(config)

	config.SetEnvPrefix(EnvPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	if path != "" {
		config.SetConfigFile(path)
	} else {
		config.SetConfigName("kotoba")
		config.SetConfigType("yaml")
		config.AddConfigPath(".")
		if dir := configHome(); dir != "" {
			config.AddConfigPath(filepath.Join(dir, "kotoba"))
		}
	}

	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	bindDiscoveryEnv(config)
	return config, nil
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("log.level", "info")
	config.SetDefault("log.format", "text")

	config.SetDefault("practice.count", 10)
	config.SetDefault("tryout.count", 25)
	config.SetDefault("tryout.seconds", 600)
	config.SetDefault("toast.seconds", 3)

	config.SetDefault("generation.source", "local")
	config.SetDefault("generation.timeout", 5*time.Second)
	config.SetDefault("generation.rate_limit.count", 10)
	config.SetDefault("generation.rate_limit.window", 5*time.Minute)

	config.SetDefault("llm.provider", "gemini")
	config.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	config.SetDefault("llm.openai.model", "gpt-4o-mini")
	config.SetDefault("llm.anthropic.model", "claude-haiku-4-5")
	config.SetDefault("llm.openrouter.model", "google/gemini-2.5-flash")

	config.SetDefault("api.listen", ":8080")
	config.SetDefault("api.cors.origins", "*")
}

// bindDiscoveryEnv lets the conventional provider variables (GEMINI_API_KEY
// and friends) supply api keys when the config leaves them empty.
func bindDiscoveryEnv(config *viper.Viper) {
	keys := map[string]string{
		"llm.gemini.api_key":     "GEMINI_API_KEY",
		"llm.openai.api_key":     "OPENAI_API_KEY",
		"llm.anthropic.api_key":  "ANTHROPIC_API_KEY",
		"llm.openrouter.api_key": "OPENROUTER_API_KEY",
	}
	for key, env := range keys {
		if config.GetString(key) != "" {
			continue
		}
		if v := os.Getenv(env); v != "" {
			config.Set(key, v)
		}
	}
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}
