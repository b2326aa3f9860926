package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/install"
)

func downloadCoverMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 1 {
		return errors.New("expected a game identifier argument")
	}
	gameID, err := parseID(arguments[0])
	if err != nil {
		return err
	}
	if downloadCoverConfiguration.folder == "" {
		return errors.New("a destination folder is required")
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

	// Download the cover.
	path, err := install.DownloadCover(
		ctx, client, gameID,
		downloadCoverConfiguration.folder,
		downloadCoverConfiguration.filename,
		downloadCoverConfiguration.force,
	)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println("The game doesn't have a cover image.")
		return nil
	}

	// Success.
	fmt.Printf("Cover saved to %q\n", path)
	return nil
}

var downloadCoverCommand = &cobra.Command{
	Use:          "download-cover <game-id>",
	Short:        "Download a game cover given its game ID",
	RunE:         downloadCoverMain,
	SilenceUsage: true,
}

var downloadCoverConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// folder is the folder where the cover will be placed.
	folder string
	// filename is the cover's file name.
	filename string
	// force replaces an existing cover image.
	force bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := downloadCoverCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&downloadCoverConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&downloadCoverConfiguration.folder, "folder", "",
		"The folder where the cover image will be placed",
	)
	flags.StringVar(&downloadCoverConfiguration.filename, "filename", "",
		"The file name of the downloaded cover image (defaults to cover.png)",
	)
	flags.BoolVar(&downloadCoverConfiguration.force, "force", false,
		"Replace the cover image if one already exists",
	)
}
