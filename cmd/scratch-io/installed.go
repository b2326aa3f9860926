package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func installedMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 0 {
		return errors.New("unexpected arguments")
	}

	// Load the registry.
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	// Print the install records in a stable order.
	records := reg.AllInstalled()
	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadID < records[j].UploadID
	})
	for _, record := range records {
		title := "<unknown game>"
		if record.Game != nil {
			title = record.Game.Title
		}
		fmt.Printf("%d\t%s\t%s\n", record.UploadID, title, record.GameFolder)
	}
	fmt.Printf("%d installed uploads\n", len(records))

	// Success.
	return nil
}

var installedCommand = &cobra.Command{
	Use:          "installed",
	Short:        "List the installed games",
	RunE:         installedMain,
	SilenceUsage: true,
}

var installedConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := installedCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&installedConfiguration.help, "help", "h", false, "Show help information")
}
