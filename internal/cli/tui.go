package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hourglass/internal/ui/tui"
)

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Long: `Run the timer in the terminal.

Keys:
- space starts or pauses the countdown
- r restarts the current interval, R resets history and durations
- w, b and l set the focus, break and long break minutes
- q quits

Logs are written to hourglass.log in the data directory.`,
		Aliases: []string{"ui", "term"},
		Args:    cobra.NoArgs,
		RunE:    runTuiCmd,
	}

	return cmd
}

func runTuiCmd(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui needs an interactive terminal")
	}

	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	settings, err := s.store.Settings()
	if err != nil {
		s.logger.Warn("load settings, using defaults", "error", err)
	}

	keeper := s.newKeeper()
	defer keeper.Close()

	return tui.Run(keeper, settings.Theme, s.logger)
}
