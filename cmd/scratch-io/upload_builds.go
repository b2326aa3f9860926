package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func uploadBuildsMain(command *cobra.Command, arguments []string) error {
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

	// Fetch and print the builds.
	builds, err := client.UploadBuilds(ctx, uploadID)
	if err != nil {
		return err
	}
	for _, build := range builds {
		version := build.UserVersion
		if version == "" {
			fmt.Printf("%d\tversion %d\n", build.ID, build.Version)
		} else {
			fmt.Printf("%d\tversion %d (%s)\n", build.ID, build.Version, version)
		}
	}

	// Success.
	return nil
}

var uploadBuildsCommand = &cobra.Command{
	Use:          "upload-builds <upload-id>",
	Short:        "List the builds available for the given upload",
	RunE:         uploadBuildsMain,
	SilenceUsage: true,
}

var uploadBuildsConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := uploadBuildsCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&uploadBuildsConfiguration.help, "help", "h", false, "Show help information")
}
