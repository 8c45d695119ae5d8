// pattern: Functional Core

package shim

import (
	"fmt"

	"shimctl/internal/fail"
)

// AlreadyExistsError is returned when creating a shim that is already registered.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("shim `%s` already exists", e.Name)
}

func (e *AlreadyExistsError) ExitCode() fail.ExitCode { return fail.FileSystemError }

// DoesNotExistError is returned when deleting a shim that is not registered.
type DoesNotExistError struct {
	Name string
}

func (e *DoesNotExistError) Error() string {
	return fmt.Sprintf("shim `%s` does not exist", e.Name)
}

func (e *DoesNotExistError) ExitCode() fail.ExitCode { return fail.FileSystemError }

// NotAPackageError is returned when autoshim is pointed at a directory that
// belongs to no package.
type NotAPackageError struct {
	Path string
}

func (e *NotAPackageError) Error() string {
	return fmt.Sprintf("%s is not a node package", e.Path)
}

func (e *NotAPackageError) ExitCode() fail.ExitCode { return fail.ConfigurationError }

// InvalidNameError is returned for names that cannot be a shim directory entry.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid shim name %q: %s", e.Name, e.Reason)
}

func (e *InvalidNameError) ExitCode() fail.ExitCode { return fail.InvalidArguments }

// FileSystemError wraps an I/O failure on the shim directory.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

func (e *FileSystemError) ExitCode() fail.ExitCode { return fail.FileSystemError }

// Opaque marks the message as system text rather than user guidance.
func (e *FileSystemError) Opaque() bool { return true }

// ResolveError reports an infrastructure failure while resolving a name. It is
// distinct from the NotInstalled and Unimplemented results, which are not errors.
type ResolveError struct {
	Name string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("could not resolve shim `%s`: %v", e.Name, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Failure is one shim that autoshim could not create.
type Failure struct {
	Name string
	Err  error
}

// UserFriendly reports whether the failure's message was written for users.
func (f Failure) UserFriendly() bool {
	return fail.IsUserFriendly(f.Err)
}

// AutoshimError is returned when at least one shim failed during autoshim.
// Every other shim of the project was still attempted.
type AutoshimError struct {
	Failures []Failure
}

func (e *AutoshimError) Error() string {
	return "autoshim did not complete without failures"
}

func (e *AutoshimError) ExitCode() fail.ExitCode { return fail.UnknownError }

// Unwrap exposes the per-shim errors to errors.Is and errors.As.
func (e *AutoshimError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}
