package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hourglass/internal/core/easing"
	"hourglass/internal/core/model"
	"hourglass/internal/core/timekeeper"
)

type fakeTray struct {
	menus []*fyne.Menu
	icons []fyne.Resource
}

func (tray *fakeTray) SetSystemTrayMenu(menu *fyne.Menu) {
	tray.menus = append(tray.menus, menu)
}

func (tray *fakeTray) SetSystemTrayIcon(icon fyne.Resource) {
	tray.icons = append(tray.icons, icon)
}

func (tray *fakeTray) lastMenu() *fyne.Menu {
	return tray.menus[len(tray.menus)-1]
}

func snapshot(remaining int, running bool) timekeeper.Snapshot {
	return timekeeper.Snapshot{
		Mode:      model.ModeWork,
		Remaining: remaining,
		Total:     1500,
		Running:   running,
		Fraction:  easing.Fraction(remaining, 1500),
		Urgency:   easing.Urgency(remaining, 1500),
	}
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "Focus · 25 min left (paused)", StatusLine(snapshot(1500, false)))
	assert.Equal(t, "Focus · 25 min left", StatusLine(snapshot(1441, true)))
	assert.Equal(t, "Focus · 24 min left", StatusLine(snapshot(1440, true)))
	assert.Equal(t, "Focus · 1 min left", StatusLine(snapshot(1, true)))

	longBreak := timekeeper.Snapshot{Mode: model.ModeBreak, LongBreak: true, Remaining: 900, Running: true}
	assert.Equal(t, "Long Break · 15 min left", StatusLine(longBreak))
}

func TestManager_UpdateRefreshesOnlyOnChange(t *testing.T) {
	app := &fakeTray{}
	manager := New(app, Callbacks{})
	require.Len(t, app.menus, 1)

	manager.Update(snapshot(1500, false))
	require.Len(t, app.menus, 2)
	require.Len(t, app.icons, 1)
	assert.Equal(t, "Focus · 25 min left (paused)", app.lastMenu().Items[0].Label)
	assert.Equal(t, "Start", app.lastMenu().Items[2].Label)

	manager.Update(snapshot(1500, true))
	require.Len(t, app.menus, 3)
	assert.Equal(t, "Pause", app.lastMenu().Items[2].Label)

	// Same minute and icon step: nothing to redraw.
	manager.Update(snapshot(1499, true))
	assert.Len(t, app.menus, 3)
	assert.Len(t, app.icons, 1)

	manager.Update(snapshot(10, true))
	assert.Len(t, app.menus, 4)
	assert.Len(t, app.icons, 2)
}

func TestManager_MenuActions(t *testing.T) {
	app := &fakeTray{}
	var calls []string
	New(app, Callbacks{
		OnShow:    func() { calls = append(calls, "show") },
		OnToggle:  func() { calls = append(calls, "toggle") },
		OnRestart: func() { calls = append(calls, "restart") },
		OnReset:   func() { calls = append(calls, "reset") },
		OnQuit:    func() { calls = append(calls, "quit") },
	})

	for _, item := range app.lastMenu().Items {
		if item.Action != nil {
			item.Action()
		}
	}

	assert.Equal(t, []string{"show", "toggle", "restart", "reset", "quit"}, calls)
}
