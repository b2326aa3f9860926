package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func collectionsMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 0 {
		return errors.New("unexpected arguments")
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

	// Fetch and print the collections.
	collections, err := client.Collections(ctx)
	if err != nil {
		return err
	}
	for _, collection := range collections {
		fmt.Printf("%d\t%s (%d games)\n", collection.ID, collection.Title, collection.GamesCount)
	}

	// Success.
	return nil
}

var collectionsCommand = &cobra.Command{
	Use:          "collections",
	Short:        "List the profile's collections",
	RunE:         collectionsMain,
	SilenceUsage: true,
}

var collectionsConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := collectionsCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&collectionsConfiguration.help, "help", "h", false, "Show help information")
}
