package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func logoutMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 0 {
		return errors.New("unexpected arguments")
	}

	// Load the registry and clear the saved key.
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	if reg.APIKey() == "" {
		fmt.Println("No API key is saved.")
		return nil
	}
	reg.SetAPIKey("")
	if err := reg.Save(); err != nil {
		return err
	}

	// Success.
	fmt.Println("The saved API key has been removed.")
	return nil
}

var logoutCommand = &cobra.Command{
	Use:          "logout",
	Short:        "Remove the saved API key",
	RunE:         logoutMain,
	SilenceUsage: true,
}

var logoutConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := logoutCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&logoutConfiguration.help, "help", "h", false, "Show help information")
}
