package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hourglass/internal/core/model"
)

func newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear session history and restore default durations",
		Long: `Clear the saved session history and restore the default durations
(focus 25 min, break 5 min, long break 15 min). Theme and notification
preferences are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return fmt.Errorf("refusing to reset without --yes outside a terminal")
				}
				confirmed := false
				err := huh.NewConfirm().
					Title("Reset history and durations?").
					Affirmative("Reset").
					Negative("Cancel").
					Value(&confirmed).
					Run()
				if err != nil || !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing was reset.")
					return nil
				}
			}

			s, err := openSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.store.ClearLedger(); err != nil {
				return err
			}
			if err := s.store.ClearConfig(); err != nil {
				return err
			}
			s.logger.Info("history and durations reset", "data_dir", s.cfg.DataDir)

			defaults := model.DefaultDurations()
			fmt.Fprintf(cmd.OutOrStdout(), "History cleared. Durations restored to %d/%d/%d min.\n",
				defaults.WorkMinutes, defaults.BreakMinutes, defaults.LongBreakMinutes)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
