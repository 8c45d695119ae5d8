// pattern: Functional Core

// Package fail maps errors to process exit codes and decides which errors are
// safe to show to users verbatim.
package fail

import "errors"

// ExitCode is the process exit status reported for a failed command.
type ExitCode int

const (
	Success            ExitCode = 0
	UnknownError       ExitCode = 1
	InvalidArguments   ExitCode = 2
	FileSystemError    ExitCode = 6
	ConfigurationError ExitCode = 7
)

// String returns the exit code's name.
func (c ExitCode) String() string {
	switch c {
	case Success:
		return "Success"
	case UnknownError:
		return "UnknownError"
	case InvalidArguments:
		return "InvalidArguments"
	case FileSystemError:
		return "FileSystemError"
	case ConfigurationError:
		return "ConfigurationError"
	default:
		return "ExitCode(?)"
	}
}

// Coded is implemented by errors that were raised deliberately with a message
// written for the user.
type Coded interface {
	error
	ExitCode() ExitCode
}

// CodeOf returns the exit code for err. A nil error is Success and an error
// with no Coded error in its chain is UnknownError.
func CodeOf(err error) ExitCode {
	if err == nil {
		return Success
	}
	var coded Coded
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return UnknownError
}

// Opaque is implemented by Coded errors that only wrap a lower-level failure,
// so their text is not meant for users even though they carry an exit code.
type Opaque interface {
	Opaque() bool
}

// IsUserFriendly reports whether the first Coded error in err's chain has a
// message written for users.
func IsUserFriendly(err error) bool {
	var coded Coded
	if !errors.As(err, &coded) {
		return false
	}
	if o, ok := coded.(Opaque); ok && o.Opaque() {
		return false
	}
	return true
}
