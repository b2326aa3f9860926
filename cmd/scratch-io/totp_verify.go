package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func totpVerifyMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 2 {
		return errors.New("expected a token and a verification code")
	}
	token := arguments[0]
	code, err := parseID(arguments[1])
	if err != nil {
		return errors.New("invalid verification code")
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

	// Finish the login.
	key, err := client.TOTPVerify(ctx, token, code)
	if err != nil {
		return err
	}

	// Save the key unless asked not to.
	if totpVerifyConfiguration.noSave {
		fmt.Println("API key:", key.Key)
		return nil
	}
	reg.SetAPIKey(key.Key)
	if err := reg.Save(); err != nil {
		return err
	}

	// Success.
	fmt.Println("Logged in, the API key has been saved.")
	return nil
}

var totpVerifyCommand = &cobra.Command{
	Use:          "totp-verify <token> <code>",
	Short:        "Finish logging in with a two-factor verification code",
	RunE:         totpVerifyMain,
	SilenceUsage: true,
}

var totpVerifyConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// noSave disables saving the resulting key to the configuration.
	noSave bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := totpVerifyCommand.Flags()

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&totpVerifyConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVar(&totpVerifyConfiguration.noSave, "no-save", false, "Print the API key instead of saving it")
}
