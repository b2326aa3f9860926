package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func ownedKeysMain(command *cobra.Command, arguments []string) error {
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

	// Fetch and print the owned keys.
	keys, err := client.OwnedKeys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		title := "<unknown game>"
		if key.Game != nil {
			title = key.Game.Title
		}
		fmt.Printf("%d\t%s (game %d)\n", key.ID, title, key.GameID)
	}
	fmt.Printf("%d owned keys\n", len(keys))

	// Success.
	return nil
}

var ownedKeysCommand = &cobra.Command{
	Use:          "owned-keys",
	Short:        "List the game keys owned by the user",
	RunE:         ownedKeysMain,
	SilenceUsage: true,
}

var ownedKeysConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := ownedKeysCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&ownedKeysConfiguration.help, "help", "h", false, "Show help information")
}
