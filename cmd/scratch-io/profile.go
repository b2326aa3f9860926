package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func profileMain(command *cobra.Command, arguments []string) error {
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

	// Fetch and print the profile.
	profile, err := client.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (user %d)\n", profile.Name(), profile.ID)
	fmt.Println("URL:", profile.URL)
	if profile.Developer {
		fmt.Println("The account is a developer account.")
	}
	if profile.PressUser {
		fmt.Println("The account is part of the press system.")
	}

	// Success.
	return nil
}

var profileCommand = &cobra.Command{
	Use:          "profile",
	Short:        "Retrieve information about the profile of the current user",
	RunE:         profileMain,
	SilenceUsage: true,
}

var profileConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := profileCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&profileConfiguration.help, "help", "h", false, "Show help information")
}
