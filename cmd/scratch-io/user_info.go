package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func userInfoMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("expected a user identifier argument")
	}
	userID, err := parseID(arguments[0])
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

	// Fetch and print the user.
	user, err := client.UserInfo(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Printf("%s (user %d)\n", user.Name(), user.ID)
	fmt.Println("URL:", user.URL)

	// Success.
	return nil
}

var userInfoCommand = &cobra.Command{
	Use:          "user-info <user-id>",
	Short:        "Retrieve information about a user",
	RunE:         userInfoMain,
	SilenceUsage: true,
}

var userInfoConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := userInfoCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&userInfoConfiguration.help, "help", "h", false, "Show help information")
}
