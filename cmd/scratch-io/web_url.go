package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/api"
)

func webURLMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("expected an upload identifier argument")
	}
	uploadID, err := parseID(arguments[0])
	if err != nil {
		return err
	}

	// Print the web game address.
	fmt.Println(api.WebGameURL(uploadID))

	// Success.
	return nil
}

var webURLCommand = &cobra.Command{
	Use:          "web-url <upload-id>",
	Short:        "Print the URL to play an HTML upload in a browser",
	RunE:         webURLMain,
	SilenceUsage: true,
}

var webURLConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := webURLCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&webURLConfiguration.help, "help", "h", false, "Show help information")
}
