package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func gameInfoMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("expected a game identifier argument")
	}
	gameID, err := parseID(arguments[0])
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

	// Fetch and print the game.
	game, err := client.GameInfo(ctx, gameID)
	if err != nil {
		return err
	}
	fmt.Printf("%s (game %d)\n", game.Title, game.ID)
	if game.ShortText != "" {
		fmt.Println(game.ShortText)
	}
	fmt.Println("URL:", game.URL)
	fmt.Println("Classification:", game.Classification)
	if game.User != nil {
		fmt.Printf("By %s (user %d)\n", game.User.Name(), game.User.ID)
	}

	// Success.
	return nil
}

var gameInfoCommand = &cobra.Command{
	Use:          "game-info <game-id>",
	Short:        "Retrieve information about a game given its ID",
	RunE:         gameInfoMain,
	SilenceUsage: true,
}

var gameInfoConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := gameInfoCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&gameInfoConfiguration.help, "help", "h", false, "Show help information")
}
