package main

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/Vidi0/scratch-io/pkg/api"
	"github.com/Vidi0/scratch-io/pkg/launch"
	"github.com/Vidi0/scratch-io/pkg/registry"
)

func launchMain(command *cobra.Command, arguments []string) error {
	// Validate arguments. Anything after the upload identifier is passed to
	// the game.
	if len(arguments) < 1 {
		return errors.New("expected an upload identifier argument")
	}
	uploadID, err := parseID(arguments[0])
	if err != nil {
		return err
	}
	gameArguments := arguments[1:]

	// Load the registry and look up the record.
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	record, installed := reg.Installed(uploadID)
	if !installed {
		return &registry.NotInstalledError{UploadID: uploadID}
	}

	// Select the launch method. An explicit executable wins, then an
	// explicit manifest action, then platform heuristics.
	var method launch.Method
	if launchConfiguration.executable != "" {
		method = launch.ExecutableMethod{Path: launchConfiguration.executable}
	} else if launchConfiguration.action != "" {
		method = launch.ActionMethod{Name: launchConfiguration.action}
	} else {
		platform, ok := api.ParsePlatform(launchConfiguration.platform)
		if !ok {
			return fmt.Errorf("unknown platform: %q", launchConfiguration.platform)
		}
		method = launch.HeuristicsMethod{Platform: platform, Game: record.Game}
	}

	// Launch the game and wait for it to exit.
	return launch.Launch(
		record.UploadFolder(), method,
		launchConfiguration.wrapper, gameArguments,
		func(executable string, command *exec.Cmd) {
			fmt.Printf("Launching %q\n", executable)
		},
	)
}

var launchCommand = &cobra.Command{
	Use:          "launch <upload-id> [-- <game-arguments>...]",
	Short:        "Launch an installed upload",
	RunE:         launchMain,
	SilenceUsage: true,
}

var launchConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// executable is an explicit executable path to launch.
	executable string
	// action is an explicit manifest action name to launch.
	action string
	// platform is the platform used by the heuristics.
	platform string
	// wrapper is a wrapper command (and its options) to run the game with.
	wrapper []string
}

func init() {
	// Grab a handle for the command line flags.
	flags := launchCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&launchConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&launchConfiguration.executable, "executable", "",
		"Launch this executable instead of locating one",
	)
	flags.StringVar(&launchConfiguration.action, "action", "",
		"Launch this manifest action",
	)
	flags.StringVar(&launchConfiguration.platform, "platform", "linux",
		"The platform used to locate the executable",
	)
	flags.StringArrayVar(&launchConfiguration.wrapper, "wrapper", nil,
		"A wrapper (and its options) to run the game with",
	)
}
