// Package config loads and validates the runtime configuration for an
// import run. Values come from an optional YAML file with environment
// variables taking precedence; a .env file in the working directory is
// honored when present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Capabilities describes what the destination platform supports. It is
// resolved once at startup and threaded to the components that need it,
// instead of sniffing library versions at call sites.
type Capabilities struct {
	SupportsNativeThreads bool `yaml:"supports_native_threads"`
	MaxEmbedsPerMessage   int  `yaml:"max_embeds_per_message"`
}

// Config holds configuration for the importer.
type Config struct {
	Token      string `yaml:"-"`           // Discord bot token (env only)
	GuildID    string `yaml:"guild_id"`    // destination guild ID
	FileToken  string `yaml:"-"`           // bearer token for private attachment URLs (env only, optional)
	LogLevel   string `yaml:"log_level"`   // "debug", "info", "warn", "error"
	LogDir     string `yaml:"log_dir"`     // log output directory ("" logs to stderr only)
	ReceiptDir string `yaml:"receipt_dir"` // receipt output directory ("" discards receipts)
	ThrottleMS int    `yaml:"throttle_ms"` // pause after each delivered message

	Capabilities Capabilities `yaml:"capabilities"`
}

func defaults() *Config {
	return &Config{
		LogLevel:   "info",
		ThrottleMS: 100,
		Capabilities: Capabilities{
			SupportsNativeThreads: true,
			MaxEmbedsPerMessage:   10,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file at
// path, and environment variables, then validates the result. Overrides run
// last, after file and environment values; the command line uses them to
// apply flags.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(cfg)
	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("DISCORD_GUILD_ID"); v != "" {
		cfg.GuildID = v
	}
	if v := os.Getenv("SLACK_FILE_TOKEN"); v != "" {
		cfg.FileToken = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("discord token is required: set DISCORD_TOKEN")
	}
	if c.GuildID == "" {
		return fmt.Errorf("guild id is required: set DISCORD_GUILD_ID or guild_id in the config file")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.ThrottleMS < 0 {
		return fmt.Errorf("throttle_ms must not be negative, got %d", c.ThrottleMS)
	}
	if c.Capabilities.MaxEmbedsPerMessage < 1 || c.Capabilities.MaxEmbedsPerMessage > 10 {
		return fmt.Errorf("max_embeds_per_message must be between 1 and 10, got %d", c.Capabilities.MaxEmbedsPerMessage)
	}
	return nil
}

// Throttle returns the pause inserted after each delivered message.
func (c *Config) Throttle() time.Duration {
	return time.Duration(c.ThrottleMS) * time.Millisecond
}
