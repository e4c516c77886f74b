package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/closest/internal/common/logging"
)

// Store names the backing store for rounds and answers
type Store string

const (
	StoreRedis    Store = "redis"
	StorePostgres Store = "postgres"
)

// Config holds everything the process needs to start
type Config struct {
	Store     Store           `yaml:"store"`
	Redis     RedisConfig     `yaml:"redis"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	HTTP      HTTPConfig      `yaml:"http"`
	Discord   DiscordConfig   `yaml:"discord"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// HTTPConfig holds the JSON API listener configuration. An empty address
// disables the API.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// DiscordConfig holds Discord configuration. An empty token disables the bot.
type DiscordConfig struct {
	Token         string `yaml:"token"`
	ApplicationID string `yaml:"application_id"`
	GuildID       string `yaml:"guild_id"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RateLimitConfig bounds answer submissions per client address
type RateLimitConfig struct {
	// SubmitRate is submissions per second; zero disables limiting
	SubmitRate  float64 `yaml:"submit_rate"`
	SubmitBurst int     `yaml:"submit_burst"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Store: StoreRedis,
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
		RateLimit: RateLimitConfig{
			SubmitRate:  5,
			SubmitBurst: 10,
		},
	}
}

// Load builds the configuration from the YAML file at filename (skipped when
// empty or missing), then a .env file in the working directory, then
// environment variables. The result is validated.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("config file not found, using environment", "file", filename)
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("STORE"); v != "" {
		c.Store = Store(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		c.Discord.Token = v
	}
	if v := os.Getenv("APPLICATION_ID"); v != "" {
		c.Discord.ApplicationID = v
	}
	if v := os.Getenv("GUILD_ID"); v != "" {
		c.Discord.GuildID = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("SUBMIT_RATE"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SUBMIT_RATE %q: %w", v, err)
		}
		c.RateLimit.SubmitRate = rate
	}
	if v := os.Getenv("SUBMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SUBMIT_BURST %q: %w", v, err)
		}
		c.RateLimit.SubmitBurst = burst
	}
	return nil
}

// Validate reports the first setting that would stop the process from starting
func (c *Config) Validate() error {
	switch c.Store {
	case StoreRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis address is required for the redis store")
		}
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres dsn is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store %q, expected %q or %q", c.Store, StoreRedis, StorePostgres)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}

	if c.Log.Format != logging.FormatText && c.Log.Format != logging.FormatJSON {
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.RateLimit.SubmitRate < 0 {
		return fmt.Errorf("submit rate must not be negative, got %v", c.RateLimit.SubmitRate)
	}

	if c.RateLimit.SubmitRate > 0 && c.RateLimit.SubmitBurst < 1 {
		return fmt.Errorf("submit burst must be at least 1 when limiting, got %d", c.RateLimit.SubmitBurst)
	}

	if c.HTTP.Addr == "" && c.Discord.Token == "" {
		return errors.New("nothing to serve: set an http address or a discord token")
	}

	return nil
}
