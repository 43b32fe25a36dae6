package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	leaderboardclient "github.com/mcdev12/reaction/go/clients/leaderboard_client"
	"github.com/mcdev12/reaction/go/internal/reaction"
	"github.com/mcdev12/reaction/go/internal/syncer"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the optional yaml config looked up in the working directory
const DefaultFile = "reaction.yaml"

// Config holds every tunable of the game. The zero file yields Default().
type Config struct {
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Remote      RemoteConfig      `yaml:"remote"`
	Stimulus    StimulusConfig    `yaml:"stimulus"`
	Feedback    FeedbackConfig    `yaml:"feedback"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
}

// LeaderboardConfig locates the local leaderboard file
type LeaderboardConfig struct {
	Path string `yaml:"path"`
}

// RemoteConfig describes the shared leaderboard download
type RemoteConfig struct {
	URL           string        `yaml:"url"`
	Timeout       time.Duration `yaml:"timeout"`
	RefreshPolicy string        `yaml:"refresh_policy"` // overwrite|merge
}

// StimulusConfig bounds the random wait before the signal
type StimulusConfig struct {
	MinDelay time.Duration `yaml:"min_delay"`
	MaxDelay time.Duration `yaml:"max_delay"`
}

// FeedbackConfig tunes reaction classification
type FeedbackConfig struct {
	NearBandMs float64 `yaml:"near_band_ms"`
}

// ServerConfig configures the leaderboard publisher
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	RateLimit      float64  `yaml:"rate_limit"` // requests per second per client
	Burst          int      `yaml:"burst"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig sets the zerolog level
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Leaderboard: LeaderboardConfig{Path: "leaderboard.json"},
		Remote: RemoteConfig{
			URL:           leaderboardclient.DefaultURL,
			Timeout:       5 * time.Second,
			RefreshPolicy: string(syncer.PolicyOverwrite),
		},
		Stimulus: StimulusConfig{
			MinDelay: reaction.DefaultMinDelay,
			MaxDelay: reaction.DefaultMaxDelay,
		},
		Feedback: FeedbackConfig{NearBandMs: reaction.DefaultNearBand},
		Server: ServerConfig{
			Addr:           ":8090",
			RateLimit:      5,
			Burst:          10,
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load builds the config from defaults, the yaml file at path (a missing file
// is ignored) and REACTION_* environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Leaderboard.Path = getEnv("REACTION_LEADERBOARD_PATH", cfg.Leaderboard.Path)
	cfg.Remote.URL = getEnv("REACTION_REMOTE_URL", cfg.Remote.URL)
	cfg.Remote.Timeout = getEnvAsDuration("REACTION_REMOTE_TIMEOUT", cfg.Remote.Timeout)
	cfg.Remote.RefreshPolicy = getEnv("REACTION_REFRESH_POLICY", cfg.Remote.RefreshPolicy)
	cfg.Stimulus.MinDelay = getEnvAsDuration("REACTION_MIN_DELAY", cfg.Stimulus.MinDelay)
	cfg.Stimulus.MaxDelay = getEnvAsDuration("REACTION_MAX_DELAY", cfg.Stimulus.MaxDelay)
	cfg.Feedback.NearBandMs = getEnvAsFloat("REACTION_NEAR_BAND_MS", cfg.Feedback.NearBandMs)
	cfg.Server.Addr = getEnv("REACTION_SERVER_ADDR", cfg.Server.Addr)
	cfg.Server.RateLimit = getEnvAsFloat("REACTION_SERVER_RATE_LIMIT", cfg.Server.RateLimit)
	cfg.Server.Burst = getEnvAsInt("REACTION_SERVER_BURST", cfg.Server.Burst)
	if origins := getEnv("REACTION_SERVER_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	cfg.Log.Level = getEnv("REACTION_LOG_LEVEL", cfg.Log.Level)
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.Leaderboard.Path == "" {
		errs = append(errs, errors.New("leaderboard.path is required"))
	}
	if c.Remote.URL == "" {
		errs = append(errs, errors.New("remote.url is required"))
	}
	if c.Remote.Timeout <= 0 {
		errs = append(errs, errors.New("remote.timeout must be positive"))
	}
	if _, err := syncer.ParsePolicy(c.Remote.RefreshPolicy); err != nil {
		errs = append(errs, fmt.Errorf("remote.refresh_policy: %w", err))
	}
	if c.Stimulus.MinDelay < 0 || c.Stimulus.MinDelay >= c.Stimulus.MaxDelay {
		errs = append(errs, fmt.Errorf("stimulus delay range [%s, %s) is empty", c.Stimulus.MinDelay, c.Stimulus.MaxDelay))
	}
	if c.Feedback.NearBandMs < 0 {
		errs = append(errs, errors.New("feedback.near_band_ms must not be negative"))
	}
	if c.Server.RateLimit <= 0 || c.Server.Burst <= 0 {
		errs = append(errs, errors.New("server.rate_limit and server.burst must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
