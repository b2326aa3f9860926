package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"

	"github.com/Vidi0/scratch-io/pkg/scratchio"
)

func rootMain(command *cobra.Command, arguments []string) error {
	// Print version information, if requested.
	if rootConfiguration.version {
		fmt.Println(scratchio.Version)
		return nil
	}

	// If no flags were set, then print help information and bail. We don't
	// have to worry about warning about arguments being present here (which
	// would be incorrect usage) because arguments can't even reach this point
	// (they will be mistaken for subcommands and an error will be displayed).
	command.Help()

	// Success.
	return nil
}

var rootCommand = &cobra.Command{
	Use:   "scratch-io",
	Short: "scratch-io downloads, installs, patches, and launches itch.io games.",
	RunE:  rootMain,
	// Errors are rendered once, by main, rather than by each command.
	SilenceErrors: true,
	SilenceUsage:  true,
}

var rootConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// version indicates whether or not version information should be shown.
	version bool
	// configFolder is an alternative configuration folder path.
	configFolder string
}

func init() {
	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")

	// The configuration folder override applies to every command.
	rootCommand.PersistentFlags().StringVar(
		&rootConfiguration.configFolder, "config-folder", "",
		"Use an alternative configuration folder",
	)

	// Disable Cobra's command sorting behavior. By default, it sorts commands
	// alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		loginCommand,
		totpVerifyCommand,
		authCommand,
		logoutCommand,
		profileCommand,
		userInfoCommand,
		ownedKeysCommand,
		collectionsCommand,
		collectionGamesCommand,
		gameInfoCommand,
		gameUploadsCommand,
		uploadInfoCommand,
		uploadBuildsCommand,
		buildInfoCommand,
		upgradePathCommand,
		downloadCommand,
		downloadCoverCommand,
		importCommand,
		installedCommand,
		removeCommand,
		removePartialDownloadCommand,
		moveCommand,
		upgradeCommand,
		verifyCommand,
		launchCommand,
		webURLCommand,
	)
}

func main() {
	// Load environment overrides from a ".env" file, if one exists. This
	// allows the API key to be provided without storing it in the
	// configuration.
	godotenv.Load()

	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		fatal(err)
	}
}
