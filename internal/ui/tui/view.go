package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hourglass/internal/core/model"
	"hourglass/internal/ui/palette"
)

const sandWidth = 32

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Margin(0, 0, 1, 0)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2)

	actionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Margin(1, 0, 0, 0)

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			Margin(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderClock(),
		m.renderSand(),
		m.renderCadence(),
		m.renderDurations(),
		m.renderStatus(),
		m.renderActions(),
	)
	return content
}

func (m Model) renderHeader() string {
	colors := palette.For(m.theme)
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(colors.Foreground))).Render("⏳ Hourglass")
	return headerStyle.Render(title)
}

func (m Model) renderClock() string {
	snapshot := m.snapshot
	accent := palette.Accent(snapshot.Mode, snapshot.LongBreak, snapshot.Urgency)
	clock := clockStyle.Foreground(lipgloss.Color(palette.Hex(accent))).Render(model.FormatClock(snapshot.Remaining))

	state := "running"
	if !snapshot.Running {
		state = "paused"
	}
	colors := palette.For(m.theme)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(colors.Subtle))).
		Render(fmt.Sprintf("%s · %s", snapshot.Label(), state))

	return lipgloss.JoinHorizontal(lipgloss.Center, clock, label)
}

// renderSand draws the remaining fraction as a bar that empties left to right.
func (m Model) renderSand() string {
	snapshot := m.snapshot
	filled := int(math.Round(snapshot.Fraction * sandWidth))
	accent := palette.Accent(snapshot.Mode, snapshot.LongBreak, snapshot.Urgency)
	colors := palette.For(m.theme)

	sand := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(accent))).Render(strings.Repeat("█", filled))
	glass := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(colors.Surface))).Render(strings.Repeat("░", sandWidth-filled))
	return "  " + glass + sand
}

func (m Model) renderCadence() string {
	filled := m.snapshot.WorkCount % model.LongBreakEvery
	if m.snapshot.LongBreak {
		filled = model.LongBreakEvery
	}
	dots := strings.Repeat("●", filled) + strings.Repeat("○", model.LongBreakEvery-filled)
	return fmt.Sprintf("\n  %s  %d focus sessions done", dots, m.snapshot.WorkCount)
}

func (m Model) renderDurations() string {
	durations := m.snapshot.Durations
	line := fmt.Sprintf("  focus %d min · break %d min · long break %d min",
		durations.WorkMinutes, durations.BreakMinutes, durations.LongBreakMinutes)

	if m.editing != nil {
		prompt := fmt.Sprintf("%s minutes: %s▏ (enter to save, esc to cancel)", kindLabel(m.editing.kind), m.editing.input)
		return line + "\n" + promptStyle.Render(prompt)
	}
	return line
}

func (m Model) renderStatus() string {
	if m.lastError != "" {
		return "\n" + errorStyle.Render("  "+m.lastError)
	}
	if m.message != "" {
		return "\n  " + m.message
	}
	return ""
}

func (m Model) renderActions() string {
	return actionsStyle.Render("space: start/pause • r: restart • R: reset • w/b/l: set minutes • ?: help • q: quit")
}

func (m Model) renderHelp() string {
	help := strings.Join([]string{
		"Keys",
		"",
		"space, s   start or pause the countdown",
		"r          restart the current interval",
		"R          clear history and restore default durations",
		"w          set focus minutes",
		"b          set break minutes",
		"l          set long break minutes",
		"q, esc     quit",
		"",
		fmt.Sprintf("Every %d focus sessions earn a long break.", model.LongBreakEvery),
		"",
		"Press any key to close.",
	}, "\n")
	return helpStyle.Render(help)
}
