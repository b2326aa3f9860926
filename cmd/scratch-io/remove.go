package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/install"
)

func removeMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("expected an upload identifier argument")
	}
	uploadID, err := parseID(arguments[0])
	if err != nil {
		return err
	}

	// Load the registry.
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	// Perform the removal.
	if err := install.Remove(reg, uploadID); err != nil {
		return err
	}

	// Success.
	fmt.Printf("Removed upload %d\n", uploadID)
	return nil
}

var removeCommand = &cobra.Command{
	Use:          "remove <upload-id>",
	Short:        "Remove an installed upload and its files",
	RunE:         removeMain,
	SilenceUsage: true,
}

var removeConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := removeCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&removeConfiguration.help, "help", "h", false, "Show help information")
}
