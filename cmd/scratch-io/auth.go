package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/api"
	"github.com/Vidi0/scratch-io/pkg/logging"
)

func authMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("expected an API key argument")
	}
	key := arguments[0]

	// Load the registry.
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	// Create the termination context.
	ctx, cancel := signalContext()
	defer cancel()

	// Validate the key by fetching the profile behind it.
	client := api.NewClient(key, logging.RootLogger.Sublogger("api"))
	profile, err := client.Profile(ctx)
	if err != nil {
		return fmt.Errorf("unable to validate API key: %w", err)
	}

	// Save the key.
	reg.SetAPIKey(key)
	if err := reg.Save(); err != nil {
		return err
	}

	// Success.
	fmt.Printf("Authenticated as %s, the API key has been saved.\n", profile.Name())
	return nil
}

var authCommand = &cobra.Command{
	Use:          "auth <api-key>",
	Short:        "Log in with an API key to use in the other commands",
	RunE:         authMain,
	SilenceUsage: true,
}

var authConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := authCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&authConfiguration.help, "help", "h", false, "Show help information")
}
