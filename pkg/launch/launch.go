// Package launch implements starting installed uploads: executable
// resolution through manifest actions or platform heuristics, wrapper
// handling, and child process management.
package launch

import (
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"

	"github.com/Vidi0/scratch-io/pkg/api"
	"github.com/Vidi0/scratch-io/pkg/filesystem"
	"github.com/Vidi0/scratch-io/pkg/manifest"
)

// Method selects how the executable of an upload is located.
type Method interface {
	isMethod()
}

// ExecutableMethod launches a caller-specified executable path.
type ExecutableMethod struct {
	// Path is the executable's path.
	Path string
}

func (ExecutableMethod) isMethod() {}

// ActionMethod launches the named action from the upload's manifest.
type ActionMethod struct {
	// Name is the manifest action's name.
	Name string
}

func (ActionMethod) isMethod() {}

// HeuristicsMethod locates the executable with platform heuristics, after
// first consulting the manifest's play action if one exists.
type HeuristicsMethod struct {
	// Platform is the platform to locate an executable for.
	Platform api.Platform
	// Game is the game's metadata, used to rate candidates by name. It may
	// be nil.
	Game *api.Game
}

func (HeuristicsMethod) isMethod() {}

// MissingActionError indicates that a requested manifest action doesn't
// exist.
type MissingActionError struct {
	// Name is the requested action's name.
	Name string
}

// Error implements error.Error.
func (e *MissingActionError) Error() string {
	return "the manifest doesn't declare a launch action named " + e.Name
}

// resolve determines the executable path and arguments for a launch. The
// returned arguments are the method's own (from a manifest action), used only
// when the caller didn't provide any.
func resolve(uploadFolder string, method Method) (string, []string, error) {
	switch method := method.(type) {
	case ExecutableMethod:
		return method.Path, nil, nil
	case ActionMethod:
		action, err := manifest.LaunchAction(uploadFolder, method.Name)
		if err != nil {
			return "", nil, err
		} else if action == nil {
			return "", nil, &MissingActionError{Name: method.Name}
		}
		return filepath.Join(uploadFolder, action.Path), action.Args, nil
	case HeuristicsMethod:
		// Prefer the manifest's play action when the game ships one.
		action, err := manifest.LaunchAction(uploadFolder, "")
		if err != nil {
			return "", nil, err
		} else if action != nil {
			return filepath.Join(uploadFolder, action.Path), action.Args, nil
		}

		// Fall back to the heuristics.
		executable, err := FindExecutable(uploadFolder, method.Platform, method.Game)
		if err != nil {
			return "", nil, err
		}
		return executable, nil, nil
	default:
		return "", nil, errors.New("unknown launch method")
	}
}

// Launch starts an installed upload and waits for it to exit. The executable
// is located per the method, made executable, and run with the upload folder
// as its working directory. A non-empty wrapper argument list is used as the
// actual command line, with the executable appended. Arguments fall back to
// the manifest action's own when none are provided. The started callback (if
// non-nil) is invoked with the resolved executable and the command just
// before it is started.
func Launch(
	uploadFolder string,
	method Method,
	wrapper []string,
	arguments []string,
	started func(executable string, command *exec.Cmd),
) error {
	// Resolve the executable and default arguments.
	executable, defaultArguments, err := resolve(uploadFolder, method)
	if err != nil {
		return err
	}
	if len(arguments) == 0 {
		arguments = defaultArguments
	}

	// Canonicalize the executable path. This also ensures that it exists.
	executable, err = filesystem.Canonicalize(executable)
	if err != nil {
		return err
	}

	// Make the file executable.
	if err := filesystem.MakeExecutable(executable); err != nil {
		return err
	}

	// Build the command. A wrapper runs with its own options first and the
	// game executable as its final argument.
	var command *exec.Cmd
	if len(wrapper) > 0 {
		wrapperArguments := append(append([]string(nil), wrapper[1:]...), executable)
		command = exec.Command(wrapper[0], append(wrapperArguments, arguments...)...)
	} else {
		command = exec.Command(executable, arguments...)
	}
	command.Dir = uploadFolder
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr

	// Notify the caller.
	if started != nil {
		started(executable, command)
	}

	// Spawn the child process.
	if err := command.Start(); err != nil {
		if errors.Is(err, syscall.ENOEXEC) {
			return errors.New(
				"the selected file isn't an executable format for this system " +
					"(a wrapper may be missing, or the wrong executable was selected)",
			)
		}
		return errors.Wrap(err, "unable to spawn child process")
	}

	// Wait for the child process to exit.
	return errors.Wrap(command.Wait(), "error while waiting for child process")
}
