// Package desktop runs Hourglass as a fyne application: the timer window,
// the system tray entry, the preferences window and completion notifications,
// all driven by one TimeKeeper.
package desktop

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	fynedesktop "fyne.io/fyne/v2/driver/desktop"

	"hourglass/internal/config"
	"hourglass/internal/core/model"
	"hourglass/internal/core/timekeeper"
	"hourglass/internal/platform"
	"hourglass/internal/storage"
	"hourglass/internal/ui/preferences"
	"hourglass/internal/ui/timer"
	"hourglass/internal/ui/tray"
	"hourglass/resources"
)

// AppID identifies the application to the operating system.
const AppID = "app.hourglass"

const eventBuffer = 16

// Options wires the desktop app to its collaborators.
type Options struct {
	Keeper *timekeeper.TimeKeeper
	Store  *storage.Store
	Logger *slog.Logger
	// Idle is consulted when pause-when-idle is enabled. Nil disables the feature.
	Idle platform.IdleProvider
}

type controller struct {
	ctx    context.Context
	app    fyne.App
	keeper *timekeeper.TimeKeeper
	store  *storage.Store
	logger *slog.Logger
	idle   platform.IdleProvider

	window *timer.Window
	tray   *tray.Manager
	prefs  *preferences.Window

	mu         sync.Mutex
	settings   model.Settings
	idleCancel context.CancelFunc
}

// Run shows the timer window and blocks until the user quits. It returns
// platform.ErrAlreadyRunning when another instance owns the desktop.
func Run(ctx context.Context, options Options) error {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	guard, err := platform.AcquireSingleInstance(config.AppName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := options.Store.Settings()
	if err != nil {
		logger.Warn("load settings, using defaults", "error", err)
	}
	settings.Durations = options.Keeper.Durations()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fyneApp := app.NewWithID(AppID)
	fyneApp.SetIcon(resources.AppIcon())
	fyneApp.Settings().SetTheme(timer.NewTheme(settings.Theme))

	c := &controller{
		ctx:      ctx,
		app:      fyneApp,
		keeper:   options.Keeper,
		store:    options.Store,
		logger:   logger,
		idle:     options.Idle,
		settings: settings,
	}
	c.build()

	events := c.keeper.Subscribe(eventBuffer)
	go c.watchEvents(events)
	go c.watchSettings(ctx)
	c.applyIdle(settings.PauseWhenIdle)

	fyneApp.Lifecycle().SetOnStarted(func() {
		c.render(c.keeper.Snapshot())
	})

	c.window.Show()
	logger.Info("desktop started", "tray", c.tray != nil, "theme", string(settings.Theme))
	fyneApp.Run()

	c.keeper.Close()
	logger.Info("desktop stopped")
	return nil
}

func (c *controller) build() {
	c.prefs = preferences.New(c.app, c.settings, c.saveSettings)

	c.window = timer.New(c.app, c.settings.Theme, timer.Callbacks{
		OnToggle:      func() { c.keeper.Toggle() },
		OnRestart:     c.keeper.Restart,
		OnReset:       c.confirmReset,
		OnPreferences: c.prefs.Show,
	})

	desktopApp, ok := c.app.(fynedesktop.App)
	if !ok {
		c.logger.Info("system tray unsupported on this platform")
		return
	}

	c.tray = tray.New(desktopApp, tray.Callbacks{
		OnShow:        c.window.Show,
		OnToggle:      func() { c.keeper.Toggle() },
		OnRestart:     c.keeper.Restart,
		OnReset:       c.confirmReset,
		OnPreferences: c.prefs.Show,
		OnQuit:        c.quit,
	})
	desktopApp.SetSystemTrayWindow(c.window.Window())

	// With a tray entry, closing the window keeps the timer running.
	c.window.Window().SetCloseIntercept(func() {
		c.window.Hide()
	})
}

func (c *controller) confirmReset() {
	c.window.Show()
	dialog.ShowConfirm(
		"Reset everything?",
		"This clears the session history and restores the default durations.",
		func(confirmed bool) {
			if confirmed {
				c.keeper.Reset()
			}
		},
		c.window.Window(),
	)
}

func (c *controller) quit() {
	c.keeper.Close()
	c.app.Quit()
}

func (c *controller) watchEvents(events <-chan timekeeper.Event) {
	pending := false
	var finished model.Mode

	for event := range events {
		snapshot := event.Snapshot
		switch event.Type {
		case timekeeper.EventCompleted:
			// The following tick carries the next interval.
			pending = true
			finished = event.Finished
			continue
		case timekeeper.EventTick:
			if pending {
				pending = false
				c.window.PlayCompletion(snapshot)
				c.notify(finished, snapshot)
			}
		case timekeeper.EventReset, timekeeper.EventDurationChanged:
			c.syncDurations(snapshot.Durations)
		}
		c.render(snapshot)
	}
}

func (c *controller) render(snapshot timekeeper.Snapshot) {
	c.window.Update(snapshot)
	if c.tray != nil {
		fyne.Do(func() {
			c.tray.Update(snapshot)
		})
	}
}

func (c *controller) notify(finished model.Mode, next timekeeper.Snapshot) {
	c.mu.Lock()
	muted := c.settings.Muted
	c.mu.Unlock()

	c.logger.Info("interval completed", "finished", finished.String(), "next", next.Label(), "muted", muted)
	if muted {
		return
	}
	c.app.SendNotification(CompletionNotification(finished, next))
}

func (c *controller) syncDurations(durations model.DurationConfig) {
	c.mu.Lock()
	c.settings.Durations = durations
	settings := c.settings
	c.mu.Unlock()

	fyne.Do(func() {
		c.prefs.UpdateSettings(settings)
	})
}

func (c *controller) saveSettings(updated model.Settings) {
	saved, err := c.store.UpdateSettings(func(settings *model.Settings) {
		*settings = updated
	})
	if err != nil {
		c.logger.Warn("save settings", "error", err)
		saved = updated
	}
	c.applySettings(saved)
}

func (c *controller) watchSettings(ctx context.Context) {
	err := storage.WatchSettings(ctx, c.store.SettingsPath(), c.logger, c.applySettings)
	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Warn("settings hot reload disabled", "error", err)
	}
}

// applySettings brings the running app in line with settings, whether they
// came from the preferences window or from an external edit of the file.
func (c *controller) applySettings(settings model.Settings) {
	changed := ApplyDurations(c.keeper, settings.Durations)
	settings.Durations = c.keeper.Durations()

	c.mu.Lock()
	previous := c.settings
	c.settings = settings
	c.mu.Unlock()

	if settings.Theme != previous.Theme {
		fyne.Do(func() {
			c.app.Settings().SetTheme(timer.NewTheme(settings.Theme))
		})
		c.window.SetTheme(settings.Theme)
	}
	if settings.PauseWhenIdle != previous.PauseWhenIdle {
		c.applyIdle(settings.PauseWhenIdle)
	}
	fyne.Do(func() {
		c.prefs.UpdateSettings(settings)
	})

	if len(changed) > 0 || settings != previous {
		c.logger.Debug("settings applied",
			"changed_durations", len(changed),
			"theme", string(settings.Theme),
			"muted", settings.Muted,
			"pause_when_idle", settings.PauseWhenIdle,
		)
	}
}

func (c *controller) applyIdle(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.idleCancel != nil {
		c.idleCancel()
		c.idleCancel = nil
	}
	if !enabled || c.idle == nil {
		return
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.idleCancel = cancel
	go func() {
		err := c.keeper.WatchIdle(ctx, c.idle, platform.DefaultIdleAfter, platform.IdlePollInterval)
		if errors.Is(err, timekeeper.ErrIdleUnsupported) {
			c.logger.Warn("pause when idle unavailable", "error", err)
		}
	}()
}
