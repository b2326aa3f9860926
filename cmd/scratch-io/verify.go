package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/install"
)

func verifyMain(command *cobra.Command, arguments []string) error {
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

	// Perform the verification.
	printer := &progressPrinter{}
	issues, err := install.Verify(
		ctx, client, reg, uploadID, verifyConfiguration.repair, printer.wharfCallbacks(),
	)
	if err != nil {
		return err
	}

	// Report the results.
	fmt.Println()
	if issues.Intact() {
		fmt.Println("All files verified successfully.")
		return nil
	}
	fmt.Printf("%d files failed verification:\n", len(issues.Files))
	for _, file := range issues.Files {
		fmt.Println("\t" + file.Path)
	}
	if verifyConfiguration.repair {
		fmt.Println("The files have been repaired from the build archive.")
		return nil
	}
	return errors.New("verification found broken files (re-run with --repair to fix them)")
}

var verifyCommand = &cobra.Command{
	Use:          "verify <upload-id>",
	Short:        "Verify an installed upload against its build signature",
	RunE:         verifyMain,
	SilenceUsage: true,
}

var verifyConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// repair reconstructs broken files from the build archive.
	repair bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := verifyCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&verifyConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVar(&verifyConfiguration.repair, "repair", false,
		"Repair broken files from the build archive",
	)
}
