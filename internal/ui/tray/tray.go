package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"hourglass/internal/core/timekeeper"
	"hourglass/resources"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnRestart     func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Manager handles system tray state.
type Manager struct {
	app        App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	status     string
	iconName   string
}

// New creates a tray manager with the provided callbacks.
func New(app App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Hourglass", invoke(manager.callbacks.OnShow))
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(manager.callbacks.OnToggle))

	manager.refreshMenu()
	return manager
}

// Update reflects snapshot in the status line, toggle label and icon.
func (manager *Manager) Update(snapshot timekeeper.Snapshot) {
	status := StatusLine(snapshot)
	toggle := "Start"
	if snapshot.Running {
		toggle = "Pause"
	}
	if status != manager.status || toggle != manager.toggleItem.Label {
		manager.status = status
		manager.statusItem.Label = status
		manager.toggleItem.Label = toggle
		manager.refreshMenu()
	}

	icon, err := resources.Hourglass(resources.IconState{
		Mode:      snapshot.Mode,
		LongBreak: snapshot.LongBreak,
		Fraction:  snapshot.Fraction,
		Urgency:   snapshot.Urgency,
	})
	if err != nil || icon.Name() == manager.iconName {
		return
	}
	manager.iconName = icon.Name()
	manager.app.SetSystemTrayIcon(icon)
}

// StatusLine summarizes snapshot at minute resolution, e.g. "Focus · 24 min left".
func StatusLine(snapshot timekeeper.Snapshot) string {
	minutes := (snapshot.Remaining + 59) / 60
	status := fmt.Sprintf("%s · %d min left", snapshot.Label(), minutes)
	if !snapshot.Running {
		status += " (paused)"
	}
	return status
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Hourglass",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Restart interval", invoke(manager.callbacks.OnRestart)),
		fyne.NewMenuItem("Reset everything", invoke(manager.callbacks.OnReset)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(manager.callbacks.OnQuit)),
	))
}

func invoke(action func()) func() {
	return func() {
		if action != nil {
			action()
		}
	}
}
