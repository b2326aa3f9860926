package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/install"
)

func downloadMain(command *cobra.Command, arguments []string) error {
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

	// Create the termination context. An interrupted download leaves its
	// ".part" sidecar behind and resumes on the next invocation.
	ctx, cancel := signalContext()
	defer cancel()

	// Perform the installation.
	printer := &progressPrinter{}
	record, err := install.Install(
		ctx, client, reg, uploadID,
		downloadConfiguration.gameFolder,
		downloadConfiguration.skipHashVerification,
		printer.callbacks(),
	)
	if err != nil {
		return err
	}

	// Success.
	fmt.Printf("Installed into %q\n", record.UploadFolder())
	return nil
}

var downloadCommand = &cobra.Command{
	Use:          "download <upload-id>",
	Short:        "Download and install the upload with the given ID",
	RunE:         downloadMain,
	SilenceUsage: true,
}

var downloadConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// gameFolder is the folder where the game files will be placed. It
	// defaults to a folder named after the game under the user's games
	// directory.
	gameFolder string
	// skipHashVerification skips the archive digest verification.
	skipHashVerification bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := downloadCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&downloadConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&downloadConfiguration.gameFolder, "game-folder", "",
		"The folder where the game files will be placed (defaults to ~/Games/<title>)",
	)
	flags.BoolVar(&downloadConfiguration.skipHashVerification, "skip-hash-verification", false,
		"Skip the hash verification and allow installing modified files (unsafe)",
	)
}
