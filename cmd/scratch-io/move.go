package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/install"
)

func moveMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 2 {
		return errors.New("expected an upload identifier and a destination folder argument")
	}
	uploadID, err := parseID(arguments[0])
	if err != nil {
		return err
	}
	destination := arguments[1]

	// Load the registry.
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	// Perform the move. Moves across devices fall back to a copy followed by
	// a removal of the source.
	newFolder, err := install.Move(reg, uploadID, destination)
	if err != nil {
		return err
	}

	// Success.
	fmt.Printf("Moved upload %d to %q\n", uploadID, newFolder)
	return nil
}

var moveCommand = &cobra.Command{
	Use:          "move <upload-id> <destination-game-folder>",
	Short:        "Move an installed upload to a new game folder",
	RunE:         moveMain,
	SilenceUsage: true,
}

var moveConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := moveCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&moveConfiguration.help, "help", "h", false, "Show help information")
}
