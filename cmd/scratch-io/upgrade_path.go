package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func upgradePathMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 2 {
		return errors.New("expected current and target build identifier arguments")
	}
	currentBuildID, err := parseID(arguments[0])
	if err != nil {
		return err
	}
	targetBuildID, err := parseID(arguments[1])
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

	// Fetch and print the upgrade path.
	builds, err := client.UpgradePath(ctx, currentBuildID, targetBuildID)
	if err != nil {
		return err
	}
	for _, build := range builds {
		fmt.Printf("%d\tversion %d\n", build.ID, build.Version)
	}
	fmt.Printf("%d patches to apply\n", len(builds))

	// Success.
	return nil
}

var upgradePathCommand = &cobra.Command{
	Use:          "upgrade-path <current-build-id> <target-build-id>",
	Short:        "Search for an upgrade path between two builds",
	RunE:         upgradePathMain,
	SilenceUsage: true,
}

var upgradePathConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := upgradePathCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&upgradePathConfiguration.help, "help", "h", false, "Show help information")
}
