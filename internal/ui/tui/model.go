package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"hourglass/internal/core/model"
	"hourglass/internal/core/timekeeper"
)

const eventBuffer = 64

// Keeper is the timer the terminal UI drives.
type Keeper interface {
	Subscribe(buffer int) <-chan timekeeper.Event
	Snapshot() timekeeper.Snapshot
	Toggle() bool
	Restart()
	Reset()
	ChangeDuration(kind model.DurationKind, minutes int) (accepted, reset bool)
}

// Model represents the terminal UI state.
type Model struct {
	keeper   Keeper
	events   <-chan timekeeper.Event
	logger   *slog.Logger
	theme    model.Theme
	snapshot timekeeper.Snapshot

	// Non-nil while a duration is being typed in.
	editing *durationEdit
	// Set after the first R, cleared by any other key.
	confirmReset bool
	showHelp     bool

	message   string
	lastError string

	width  int
	height int
}

type durationEdit struct {
	kind  model.DurationKind
	input string
}

type (
	keeperEventMsg  struct{ event timekeeper.Event }
	keeperClosedMsg struct{}
)

// NewModel creates a Model subscribed to keeper.
func NewModel(keeper Keeper, themeName model.Theme, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Model{
		keeper:   keeper,
		events:   keeper.Subscribe(eventBuffer),
		logger:   logger,
		theme:    themeName,
		snapshot: keeper.Snapshot(),
	}
}

// Init starts listening for timer events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles all TUI events and state changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case keeperEventMsg:
		m.snapshot = msg.event.Snapshot
		if msg.event.Type == timekeeper.EventCompleted {
			m.message = completionMessage(msg.event)
			m.logger.Info("interval completed", "finished", msg.event.Finished.String())
		}
		return m, waitForEvent(m.events)

	case keeperClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.logger.Debug("key pressed", "key", key)

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.editing != nil {
		return m.handleEditKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.confirmReset {
		m.confirmReset = false
		if key == "y" || key == "R" {
			m.keeper.Reset()
			m.message = "Everything reset"
		} else {
			m.message = ""
		}
		m.snapshot = m.keeper.Snapshot()
		return m, nil
	}

	m.lastError = ""
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case " ", "s":
		if m.keeper.Toggle() {
			m.message = "Running"
		} else {
			m.message = "Paused"
		}
	case "r":
		m.keeper.Restart()
		m.message = "Interval restarted"
	case "R":
		m.confirmReset = true
		m.message = "Reset history and durations? (y/n)"
	case "w":
		m.editing = &durationEdit{kind: model.DurationWork}
	case "b":
		m.editing = &durationEdit{kind: model.DurationBreak}
	case "l":
		m.editing = &durationEdit{kind: model.DurationLongBreak}
	case "?":
		m.showHelp = true
	}

	m.snapshot = m.keeper.Snapshot()
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	edit := *m.editing
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = nil
		return m, nil
	case tea.KeyEnter:
		m.editing = nil
		minutes, ok := model.ParseMinutes(edit.input)
		if !ok {
			m.lastError = fmt.Sprintf("%q is not a whole number of minutes from 1 to %d", edit.input, model.MaxMinutes)
			return m, nil
		}
		_, reset := m.keeper.ChangeDuration(edit.kind, minutes)
		m.message = fmt.Sprintf("%s set to %d min", kindLabel(edit.kind), minutes)
		if reset {
			m.message += ", timer paused"
		}
		m.snapshot = m.keeper.Snapshot()
		return m, nil
	case tea.KeyBackspace:
		if len(edit.input) > 0 {
			edit.input = edit.input[:len(edit.input)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' && len(edit.input) < 4 {
				edit.input += string(r)
			}
		}
	}
	m.editing = &edit
	return m, nil
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return keeperClosedMsg{}
		}
		return keeperEventMsg{event: event}
	}
}

func completionMessage(event timekeeper.Event) string {
	if event.Finished == model.ModeWork {
		return "Focus complete, time for a break"
	}
	return "Break over, back to focus"
}

func kindLabel(kind model.DurationKind) string {
	switch kind {
	case model.DurationBreak:
		return "Break"
	case model.DurationLongBreak:
		return "Long break"
	default:
		return "Focus"
	}
}
