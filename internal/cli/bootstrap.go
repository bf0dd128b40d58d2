package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"hourglass/internal/config"
	"hourglass/internal/core/clock"
	"hourglass/internal/core/timekeeper"
	"hourglass/internal/platform"
	"hourglass/internal/storage"
)

// session bundles what every command that touches saved data needs.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *storage.Store
	closers []io.Closer
}

// loadConfig resolves configuration and applies the global flags on top.
func loadConfig() (config.Config, error) {
	baseDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// openSession loads config, builds the logger and opens the store. With
// logToFile the log goes to the data directory instead of stderr, for
// commands that own the terminal.
func openSession(logToFile bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}
	var logOutput io.Writer = os.Stderr
	if logToFile {
		logFile, err := openLogFile(cfg.LogPath())
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, logFile)
		logOutput = logFile
	}
	s.logger = config.NewLogger(logOutput, cfg.Log.Level)

	store, err := storage.Open(cfg.SettingsPath(), cfg.LedgerPath())
	if err != nil {
		s.Close()
		return nil, err
	}
	s.store = store
	s.logger.Debug("session opened", "data_dir", cfg.DataDir, "ledger", cfg.LedgerPath())
	return s, nil
}

// newKeeper restores the timer from the store, ticking at the configured interval.
func (s *session) newKeeper() *timekeeper.TimeKeeper {
	return timekeeper.Load(s.store, timekeeper.Config{
		Source: clock.NewTicker(s.cfg.Tick),
		Logger: s.logger,
	})
}

// Close releases the store and any log file.
func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close store", "error", err)
		}
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
