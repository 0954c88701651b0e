package exitcodes

import "errors"

// Exit codes returned by creators-guide
const (
	// Success indicates successful command completion
	Success = 0

	// GeneralError indicates a general/unknown error
	GeneralError = 1

	// InvalidArgs indicates invalid command-line arguments or flags
	InvalidArgs = 2

	// ConfigError indicates the configuration could not be loaded or is invalid
	// (e.g., malformed config.yaml, missing --config file, bad owner/repo)
	ConfigError = 3

	// OpenError indicates the download link could not be handed to the system
	// (no browser, clipboard unavailable)
	OpenError = 5

	// UpdateAvailable is returned by `check --strict` when a newer release exists
	UpdateAvailable = 10
)

// CodeForError returns the appropriate exit code for an error.
// The outermost ErrorWithCode in the chain wins, otherwise GeneralError.
func CodeForError(err error) int {
	if err == nil {
		return Success
	}

	var ec *ErrorWithCode
	if errors.As(err, &ec) {
		return ec.Code
	}

	return GeneralError
}
