package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dustin/go-humanize"
)

func buildInfoMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("expected a build identifier argument")
	}
	buildID, err := parseID(arguments[0])
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

	// Fetch and print the build.
	build, err := client.BuildInfo(ctx, buildID)
	if err != nil {
		return err
	}
	fmt.Printf("Build %d (version %d) of upload %d\n", build.ID, build.Version, build.UploadID)
	if build.ParentBuildID != 0 {
		fmt.Println("Parent build:", uint64(build.ParentBuildID))
	}
	fmt.Println("State:", build.State)
	for _, file := range build.Files {
		fmt.Printf("\t%s/%s\t%s\n", file.Type, file.SubType, humanize.IBytes(file.Size))
	}

	// Success.
	return nil
}

var buildInfoCommand = &cobra.Command{
	Use:          "build-info <build-id>",
	Short:        "Retrieve information about a build given its ID",
	RunE:         buildInfoMain,
	SilenceUsage: true,
}

var buildInfoConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := buildInfoCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&buildInfoConfiguration.help, "help", "h", false, "Show help information")
}
