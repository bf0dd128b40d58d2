package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"hourglass/internal/core/model"
)

// Run starts the terminal UI and blocks until the user quits.
func Run(keeper Keeper, themeName model.Theme, logger *slog.Logger) error {
	program := tea.NewProgram(
		NewModel(keeper, themeName, logger),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
