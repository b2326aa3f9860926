package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"

	"github.com/dustin/go-humanize"

	"github.com/fatih/color"

	"github.com/Vidi0/scratch-io/pkg/api"
	"github.com/Vidi0/scratch-io/pkg/install"
	"github.com/Vidi0/scratch-io/pkg/logging"
	"github.com/Vidi0/scratch-io/pkg/registry"
)

// apiKeyEnvironmentVariable is the environment variable from which the API
// key is read, taking precedence over the saved key.
const apiKeyEnvironmentVariable = "SCRATCH_IO_API_KEY"

// terminationSignals are the signals treated as a request to stop the current
// command. Interrupted downloads keep their ".part" sidecars and resume on
// the next invocation, so termination is always safe to request. Both SIGINT
// and SIGTERM are emulated on Windows (SIGINT on Ctrl-C and Ctrl-Break and
// SIGTERM on console close events).
var terminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

// warning prints a warning message to standard error.
func warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// fatal prints an error message to standard error and then terminates the
// process with an error exit code.
func fatal(err error) {
	fmt.Fprintln(color.Error, color.RedString("Error:"), err)
	os.Exit(1)
}

// parseID parses a decimal identifier argument.
func parseID(argument string) (uint64, error) {
	id, err := strconv.ParseUint(argument, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid identifier: %q", argument)
	}
	return id, nil
}

// loadRegistry loads the registry from the configured folder.
func loadRegistry() (*registry.Registry, error) {
	return registry.Load(rootConfiguration.configFolder)
}

// apiClient creates an API client using the environment's API key or,
// failing that, the registry's saved key. The key may be empty; endpoints
// that require authentication will simply fail.
func apiClient(reg *registry.Registry) *api.Client {
	key := os.Getenv(apiKeyEnvironmentVariable)
	if key == "" {
		key = reg.APIKey()
	}
	return api.NewClient(key, logging.RootLogger.Sublogger("api"))
}

// signalContext creates a context that cancels on termination signals,
// making downloads safely resumable on interruption.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), terminationSignals...)
}

// progressPrinter renders install lifecycle progress on standard output.
type progressPrinter struct {
	// total is the total download size, once known.
	total uint64
}

// callbacks creates install callbacks backed by the printer.
func (p *progressPrinter) callbacks() install.Callbacks {
	return install.Callbacks{
		Info: func(upload *api.Upload, game *api.Game) {
			name := upload.DisplayName
			if name == "" {
				name = upload.Filename
			}
			fmt.Printf("Installing %q (upload %d of %q)\n", name, upload.ID, game.Title)
		},
		StartingDownload: func(total uint64) {
			p.total = total
			fmt.Printf("Downloading %s\n", humanize.IBytes(total))
		},
		DownloadProgress: func(downloaded uint64) {
			if p.total > 0 {
				fmt.Printf("\rDownloaded %s / %s",
					humanize.IBytes(downloaded), humanize.IBytes(p.total),
				)
			}
		},
		Warning: warning,
		Extracting: func() {
			fmt.Println("\nExtracting...")
		},
	}
}

// wharfCallbacks creates verification and upgrade callbacks backed by the
// printer.
func (p *progressPrinter) wharfCallbacks() install.WharfCallbacks {
	var totalBlocks, processedBlocks uint64
	return install.WharfCallbacks{
		Callbacks: p.callbacks(),
		VerifyTotal: func(blocks uint64) {
			totalBlocks = blocks
			fmt.Printf("Verifying %d blocks\n", blocks)
		},
		VerifyProgress: func(blocks uint64) {
			processedBlocks += blocks
			if totalBlocks > 0 {
				fmt.Printf("\rVerified %d / %d blocks", processedBlocks, totalBlocks)
			}
		},
		PatchStarting: func(buildID uint64) {
			fmt.Printf("Applying patch for build %d\n", buildID)
		},
	}
}
