package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dustin/go-humanize"
)

func gameUploadsMain(command *cobra.Command, arguments []string) error {
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

	// Fetch and print the uploads.
	uploads, err := client.GameUploads(ctx, gameID)
	if err != nil {
		return err
	}
	for _, upload := range uploads {
		name := upload.DisplayName
		if name == "" {
			name = upload.Filename
		}

		// Render the platform list.
		var platforms []string
		for _, platform := range upload.Platforms() {
			platforms = append(platforms, string(platform))
		}
		platformList := strings.Join(platforms, ", ")
		if platformList == "" {
			platformList = "unknown"
		}

		fmt.Printf("%d\t%s\t%s\t%s\n",
			upload.ID, name, humanize.IBytes(upload.Size), platformList,
		)
	}

	// Success.
	return nil
}

var gameUploadsCommand = &cobra.Command{
	Use:          "game-uploads <game-id>",
	Short:        "List the uploads available for download for the given game",
	RunE:         gameUploadsMain,
	SilenceUsage: true,
}

var gameUploadsConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := gameUploadsCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&gameUploadsConfiguration.help, "help", "h", false, "Show help information")
}
