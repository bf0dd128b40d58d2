package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hourglass/internal/core/model"
	"hourglass/internal/core/timekeeper"
)

const queryTimeout = 5 * time.Second

var _ timekeeper.Store = (*Store)(nil)

// Store keeps durations and preferences in settings.yaml and the session
// history in SQLite.
type Store struct {
	mu           sync.Mutex
	settingsPath string
	db           *LedgerDB
}

// Open opens or creates the settings file location and history database.
func Open(settingsPath, ledgerPath string) (*Store, error) {
	for _, path := range []string{settingsPath, ledgerPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := OpenLedger(ledgerPath)
	if err != nil {
		return nil, err
	}
	return NewStore(settingsPath, db), nil
}

// NewStore creates a Store over an already opened history database.
func NewStore(settingsPath string, db *LedgerDB) *Store {
	return &Store{settingsPath: settingsPath, db: db}
}

// SettingsPath returns the location of settings.yaml.
func (store *Store) SettingsPath() string {
	return store.settingsPath
}

// Close closes the history database.
func (store *Store) Close() error {
	return store.db.Close()
}

// Settings returns the saved preferences, falling back to defaults.
func (store *Store) Settings() (model.Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return LoadSettings(store.settingsPath)
}

// UpdateSettings applies update to the saved preferences and writes them back.
func (store *Store) UpdateSettings(update func(settings *model.Settings)) (model.Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	// An unreadable file is replaced by defaults plus the update.
	settings, _ := LoadSettings(store.settingsPath)
	update(&settings)
	if err := SaveSettings(store.settingsPath, settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// LoadConfig returns the saved durations.
func (store *Store) LoadConfig() (model.DurationConfig, error) {
	settings, err := store.Settings()
	return settings.Durations, err
}

// SaveConfig persists durations, leaving the other preferences untouched.
func (store *Store) SaveConfig(config model.DurationConfig) error {
	_, err := store.UpdateSettings(func(settings *model.Settings) {
		settings.Durations = config
	})
	return err
}

// ClearConfig restores default durations on disk.
func (store *Store) ClearConfig() error {
	return store.SaveConfig(model.DefaultDurations())
}

// LoadLedger returns the saved session history.
func (store *Store) LoadLedger() ([]model.SessionRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return store.db.LoadRecords(ctx)
}

// SaveLedger persists records not yet stored.
func (store *Store) SaveLedger(records []model.SessionRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return store.db.SaveRecords(ctx, records)
}

// ClearLedger deletes the saved session history.
func (store *Store) ClearLedger() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return store.db.ClearRecords(ctx)
}
