package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func loginMain(command *cobra.Command, arguments []string) error {
	// Validate arguments.
	if len(arguments) != 0 {
		return errors.New("unexpected arguments")
	}
	if loginConfiguration.username == "" || loginConfiguration.password == "" {
		return errors.New("both --username and --password are required")
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

	// Perform the login. The server may demand a reCAPTCHA verification or a
	// two-factor code before producing a key; both cases carry instructions
	// for how to continue.
	key, err := client.Login(
		ctx,
		loginConfiguration.username,
		loginConfiguration.password,
		loginConfiguration.recaptchaResponse,
	)
	if err != nil {
		return err
	}

	// Save the key unless asked not to.
	if loginConfiguration.noSave {
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

var loginCommand = &cobra.Command{
	Use:          "login",
	Short:        "Log in with a username and password",
	RunE:         loginMain,
	SilenceUsage: true,
}

var loginConfiguration struct {
	// help indicates whether or not help information should be shown for the
	// command.
	help bool
	// username is the username or email to log in with.
	username string
	// password is the password to log in with.
	password string
	// recaptchaResponse is the reCAPTCHA token, when the server demands one.
	recaptchaResponse string
	// noSave disables saving the resulting key to the configuration.
	noSave bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := loginCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&loginConfiguration.help, "help", "h", false, "Show help information")
	flags.StringVar(&loginConfiguration.username, "username", "", "The username or email to log in with")
	flags.StringVar(&loginConfiguration.password, "password", "", "The password to log in with")
	flags.StringVar(&loginConfiguration.recaptchaResponse, "recaptcha-response", "", "The reCAPTCHA token, if required")
	flags.BoolVar(&loginConfiguration.noSave, "no-save", false, "Print the API key instead of saving it")
}
