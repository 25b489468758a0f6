package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-sonify/dsp/dither"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "SONIFY_CONFIG"

type Config struct {
	LogLevel    string `yaml:"log_level"`
	Presets     string `yaml:"presets"`
	Concurrency int    `yaml:"concurrency"`
	Seed        uint64 `yaml:"seed"`
	FreshSeed   bool   `yaml:"fresh_seed"`
	Dither      string `yaml:"dither"`
	Analyze     bool   `yaml:"analyze"`
	Server      Server `yaml:"server"`
}

// Server holds the settings of the HTTP mode.
type Server struct {
	Addr     string `yaml:"addr"`
	AudioDir string `yaml:"audio_dir"`
	// Limit caps the fetched text to a centered slice of this many
	// characters. Zero keeps the whole page.
	Limit int `yaml:"limit"`
	// StampNames appends a millisecond timestamp to output file names.
	StampNames bool `yaml:"stamp_names"`
	// MaxFileAge is how long rendered files are kept. Zero disables cleanup.
	MaxFileAge   time.Duration `yaml:"max_file_age"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

func Default() Config {
	return Config{
		LogLevel:    "info",
		Concurrency: runtime.GOMAXPROCS(0),
		Dither:      "none",
		Server: Server{
			Addr:         ":3000",
			AudioDir:     "audios",
			Limit:        300,
			MaxFileAge:   24 * time.Hour,
			FetchTimeout: 30 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to expand config path: %w", err)
		}

		data, err := os.ReadFile(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}

			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Presets != "" {
		expanded, err := homedir.Expand(cfg.Presets)
		if err != nil {
			return cfg, fmt.Errorf("failed to expand presets path: %w", err)
		}

		cfg.Presets = expanded
	}

	if cfg.Server.AudioDir != "" {
		expanded, err := homedir.Expand(cfg.Server.AudioDir)
		if err != nil {
			return cfg, fmt.Errorf("failed to expand audio dir: %w", err)
		}

		cfg.Server.AudioDir = expanded
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// FromEnv loads the file named by SONIFY_CONFIG, if set.
func FromEnv() (Config, error) {
	return Load(os.Getenv(EnvConfigPath))
}

// DitherType returns the parsed dither setting.
func (c Config) DitherType() dither.DitherType {
	dt, err := dither.ParseDitherType(c.Dither)
	if err != nil {
		return dither.DitherNone
	}

	return dt
}

// ResolveLogLevel maps debug, info, warn and error to slog levels.
func ResolveLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.LogLevel, "SONIFY_LOG_LEVEL")
	overrideString(&cfg.Presets, "SONIFY_PRESETS")
	overrideInt(&cfg.Concurrency, "SONIFY_CONCURRENCY")
	overrideUint64(&cfg.Seed, "SONIFY_SEED")
	overrideBool(&cfg.FreshSeed, "SONIFY_FRESH_SEED")
	overrideString(&cfg.Dither, "SONIFY_DITHER")
	overrideBool(&cfg.Analyze, "SONIFY_ANALYZE")
	overrideString(&cfg.Server.Addr, "SONIFY_ADDR")
	overrideString(&cfg.Server.AudioDir, "SONIFY_AUDIO_DIR")
	overrideInt(&cfg.Server.Limit, "SONIFY_LIMIT")
	overrideBool(&cfg.Server.StampNames, "SONIFY_STAMP_NAMES")
	overrideDuration(&cfg.Server.MaxFileAge, "SONIFY_MAX_FILE_AGE")
	overrideDuration(&cfg.Server.FetchTimeout, "SONIFY_FETCH_TIMEOUT")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideUint64(target *uint64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideDuration(target *time.Duration, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	if _, err := ResolveLogLevel(cfg.LogLevel); err != nil {
		return errors.New("log_level must be one of debug, info, warn, error")
	}

	if cfg.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}

	if _, err := dither.ParseDitherType(cfg.Dither); err != nil {
		return errors.New("dither must be one of none, rectangular, triangular")
	}

	if cfg.Server.Limit < 0 {
		return errors.New("server.limit must not be negative")
	}

	if cfg.Server.MaxFileAge < 0 || cfg.Server.FetchTimeout < 0 {
		return errors.New("server durations must not be negative")
	}

	return nil
}
