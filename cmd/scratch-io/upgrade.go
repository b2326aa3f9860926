package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/install"
)

func upgradeMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("expected an upload identifier argument")
	}
	uploadID, err := parseID(arguments[0])
	if err != nil {
		return err
	}

	// Load the registry and create the client.
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	client := apiClient(reg)

	// Create the termination context.
	ctx, cancel := signalContext()
	defer cancel()

	// Perform the upgrade.
	printer := &progressPrinter{}
	upgraded, err := install.Upgrade(ctx, client, reg, uploadID, printer.wharfCallbacks())
	if err != nil {
		return err
	}

	// Success.
	if upgraded {
		fmt.Printf("\nUpload %d upgraded to the latest build\n", uploadID)
	} else {
		fmt.Printf("Upload %d is already up to date\n", uploadID)
	}
	return nil
}

var upgradeCommand = &cobra.Command{
	Use:          "upgrade <upload-id>",
	Short:        "Upgrade an installed upload to its latest build",
	RunE:         upgradeMain,
	SilenceUsage: true,
}

var upgradeConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := upgradeCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&upgradeConfiguration.help, "help", "h", false, "Show help information")
}
