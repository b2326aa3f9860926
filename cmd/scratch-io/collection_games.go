package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func collectionGamesMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("expected a collection identifier argument")
	}
	collectionID, err := parseID(arguments[0])
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

	// Fetch and print the collection's games.
	games, err := client.CollectionGames(ctx, collectionID)
	if err != nil {
		return err
	}
	for _, item := range games {
		if item.Game != nil {
			fmt.Printf("%d\t%s\n", item.Game.ID, item.Game.Title)
		}
	}

	// Success.
	return nil
}

var collectionGamesCommand = &cobra.Command{
	Use:          "collection-games <collection-id>",
	Short:        "List the games in the given collection",
	RunE:         collectionGamesMain,
	SilenceUsage: true,
}

var collectionGamesConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := collectionGamesCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&collectionGamesConfiguration.help, "help", "h", false, "Show help information")
}
