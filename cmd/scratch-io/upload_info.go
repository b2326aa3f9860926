package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dustin/go-humanize"

	"github.com/Vidi0/scratch-io/pkg/api"
)

func uploadInfoMain(command *cobra.Command, arguments []string) error {
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

	// Fetch and print the upload.
	upload, err := client.UploadInfo(ctx, uploadID)
	if err != nil {
		return err
	}
	fmt.Printf("%s (upload %d of game %d)\n", upload.Filename, upload.ID, upload.GameID)
	fmt.Println("Size:", humanize.IBytes(upload.Size))
	fmt.Println("Storage:", upload.Storage)
	switch upload.Storage {
	case api.UploadStorageHosted:
		if upload.MD5Hash != "" {
			fmt.Println("MD5:", upload.MD5Hash)
		}
	case api.UploadStorageBuild:
		fmt.Println("Channel:", upload.ChannelName)
		fmt.Println("Current build:", upload.BuildID)
	case api.UploadStorageExternal:
		fmt.Println("Host:", upload.Host)
	}

	// Success.
	return nil
}

var uploadInfoCommand = &cobra.Command{
	Use:          "upload-info <upload-id>",
	Short:        "Retrieve information about an upload given its ID",
	RunE:         uploadInfoMain,
	SilenceUsage: true,
}

var uploadInfoConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := uploadInfoCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&uploadInfoConfiguration.help, "help", "h", false, "Show help information")
}
