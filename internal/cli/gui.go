package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hourglass/internal/desktop"
	"hourglass/internal/platform"
)

func newGuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "gui",
		Short:   "Open the desktop timer window and tray entry",
		Aliases: []string{"desktop"},
		Args:    cobra.NoArgs,
		RunE:    runGuiCmd,
	}
}

func runGuiCmd(cmd *cobra.Command, args []string) error {
	s, err := openSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	err = desktop.Run(cmd.Context(), desktop.Options{
		Keeper: s.newKeeper(),
		Store:  s.store,
		Logger: s.logger,
		Idle:   platform.NewIdleProvider(),
	})
	if errors.Is(err, platform.ErrAlreadyRunning) {
		return fmt.Errorf("hourglass is already running")
	}
	return err
}
