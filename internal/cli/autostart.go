package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hourglass/internal/config"
	"hourglass/internal/platform"
)

func newAutostartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Start the desktop app when you log in",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Launch Hourglass at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				execPath, err := os.Executable()
				if err != nil {
					return fmt.Errorf("find executable: %w", err)
				}
				if err := platform.NewService().EnableAutostart(config.AppName, execPath); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Hourglass will start at login.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Stop launching Hourglass at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := platform.NewService().DisableAutostart(config.AppName); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Hourglass will no longer start at login.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether Hourglass starts at login",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled, err := platform.NewService().AutostartEnabled(config.AppName)
				if err != nil {
					return err
				}
				if enabled {
					fmt.Fprintln(cmd.OutOrStdout(), "autostart: enabled")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "autostart: disabled")
				}
				return nil
			},
		},
	)

	return cmd
}
