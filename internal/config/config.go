package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppName is the display name and the name of the data directory.
const AppName = "Hourglass"

// Config defines application configuration.
type Config struct {
	DataDir string        `yaml:"data_dir"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Tick    time.Duration `yaml:"tick"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Load reads configuration from an optional YAML file and environment variables.
// baseDir is the OS configuration directory the data directory lives under.
func Load(baseDir string) (Config, error) {
	cfg := Config{
		DataDir: filepath.Join(baseDir, AppName),
		Log: LogConfig{
			Level: "info",
		},
		Tick: time.Second,
	}

	if path := os.Getenv("HOURGLASS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dataDir := os.Getenv("HOURGLASS_DATA_DIR"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if dbPath := os.Getenv("HOURGLASS_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("HOURGLASS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if tickStr := os.Getenv("HOURGLASS_TICK"); tickStr != "" {
		tick, err := time.ParseDuration(tickStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HOURGLASS_TICK: %w", err)
		}
		cfg.Tick = tick
	}

	if cfg.Tick <= 0 {
		return Config{}, fmt.Errorf("tick must be positive, got %s", cfg.Tick)
	}
	if _, ok := levels[strings.ToLower(cfg.Log.Level)]; !ok {
		return Config{}, fmt.Errorf("unknown log level %q", cfg.Log.Level)
	}

	return cfg, nil
}

// SettingsPath returns the location of settings.yaml.
func (cfg Config) SettingsPath() string {
	return filepath.Join(cfg.DataDir, "settings.yaml")
}

// LedgerPath returns the location of the session history database.
func (cfg Config) LedgerPath() string {
	if cfg.DB.Path != "" {
		return cfg.DB.Path
	}
	return filepath.Join(cfg.DataDir, "history.db")
}

// LogPath returns the log file used when the terminal owns stderr.
func (cfg Config) LogPath() string {
	if cfg.Log.Path != "" {
		return cfg.Log.Path
	}
	return filepath.Join(cfg.DataDir, "hourglass.log")
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLogLevel maps a level name to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	if parsed, ok := levels[strings.ToLower(level)]; ok {
		return parsed
	}
	return slog.LevelInfo
}

// NewLogger builds the text logger used across the application.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLogLevel(level),
	}))
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
