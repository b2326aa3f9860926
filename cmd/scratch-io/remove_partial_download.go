package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/install"
)

func removePartialDownloadMain(command *cobra.Command, arguments []string) error {
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

	// Perform the cleanup.
	removed, err := install.RemovePartialDownload(
		ctx, client, reg, uploadID,
		removePartialDownloadConfiguration.gameFolder,
	)
	if err != nil {
		return err
	}

	// Success.
	if removed {
		fmt.Println("Partial download files removed.")
	} else {
		fmt.Println("No partial download files found.")
	}
	return nil
}

var removePartialDownloadCommand = &cobra.Command{
	Use:          "remove-partial-download <upload-id>",
	Short:        "Remove partially downloaded upload files",
	RunE:         removePartialDownloadMain,
	SilenceUsage: true,
}

var removePartialDownloadConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// gameFolder is the folder where the download was placed. It defaults to
	// the game's default folder.
	gameFolder string
}

func init() {
	// Grab a handle for the command line flags.
	flags := removePartialDownloadCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&removePartialDownloadConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&removePartialDownloadConfiguration.gameFolder, "game-folder", "",
		"The folder where the download folder has been placed (defaults to ~/Games/<title>)",
	)
}
