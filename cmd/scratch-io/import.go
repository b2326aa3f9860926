package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/install"
)

func importMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 2 {
		return errors.New("expected an upload identifier and a game folder argument")
	}
	uploadID, err := parseID(arguments[0])
	if err != nil {
		return err
	}
	gameFolder := arguments[1]

	// Load the registry and create the client.
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	client := apiClient(reg)

	// Create the termination context.
	ctx, cancel := signalContext()
	defer cancel()

	// Perform the import.
	record, err := install.Import(ctx, client, reg, uploadID, gameFolder)
	if err != nil {
		return err
	}

	// Success.
	fmt.Printf("Imported upload %d from %q\n", record.UploadID, record.GameFolder)
	return nil
}

var importCommand = &cobra.Command{
	Use:          "import <upload-id> <game-folder>",
	Short:        "Import an already installed game given its upload ID and game folder",
	RunE:         importMain,
	SilenceUsage: true,
}

var importConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := importCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&importConfiguration.help, "help", "h", false, "Show help information")
}
