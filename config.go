package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	RedisAddr            string
	RedisPassword        string
	RedisReactionChannel string
	RedisMentionChannel  string
	SlackBotToken        string
	GeminiAPIKey         string
	LinearAPIKey         string
	LinearAPIURL         string
	LinearWorkspace      string
	SettingsFile         string
	DryRun               bool
	LogLevel             string
}

func loadConfig() Config {
	debug := getEnvAsBool("DEBUG", "false")

	logLevel := getEnv("LOG_LEVEL", "INFO")
	if debug {
		logLevel = "DEBUG"
	}

	return Config{
		RedisAddr:            getEnv("REDIS_ADDR", "host.docker.internal:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisReactionChannel: getEnv("REDIS_REACTION_CHANNEL", "slack-relay-reaction-added"),
		RedisMentionChannel:  getEnv("REDIS_MENTION_CHANNEL", "slack-relay-app-mention"),
		SlackBotToken:        getEnv("SLACK_BOT_TOKEN", ""),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		LinearAPIKey:         getEnv("LINEAR_API_KEY", ""),
		LinearAPIURL:         getEnv("LINEAR_API_URL", "https://api.linear.app/graphql"),
		LinearWorkspace:      getEnv("LINEAR_WORKSPACE", "ivry"),
		SettingsFile:         getEnv("SETTINGS_FILE", "config.yaml"),
		DryRun:               debug || getEnvAsBool("DRY_RUN", "false"),
		LogLevel:             logLevel,
	}
}

// Settings is the YAML settings file: LLM tuning, the optional default
// workflow state for created issues, and the reaction routing rules.
type Settings struct {
	System struct {
		LLM LLMSettings `yaml:"llm"`
	} `yaml:"system"`
	Linear struct {
		DefaultState string `yaml:"default_state"`
	} `yaml:"linear"`
	ReactionMentions []RoutingRule `yaml:"reaction_mentions"`
}

type LLMSettings struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

func loadSettings(path string) (Settings, error) {
	var settings Settings

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return settings, nil
}

func getEnvAsBool(key, defaultValue string) bool {
	val := os.Getenv(key)
	if val == "" {
		val = defaultValue
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
