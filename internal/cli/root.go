package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
)

// NewRootCmd creates the root command for the Hourglass CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hourglass",
		Short: "Hourglass - a focus and break timer",
		Long: `Hourglass counts down focus intervals and breaks, and grants a long break
after every fourth completed focus interval.

Run without a command to open the desktop window and tray entry.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// When no subcommand is provided, launch the desktop app
			return runGuiCmd(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for settings and session history")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newGuiCmd(),
		newTuiCmd(),
		newHistoryCmd(),
		newSettingsCmd(),
		newResetCmd(),
		newAutostartCmd(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
