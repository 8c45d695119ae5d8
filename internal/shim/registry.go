// pattern: Imperative Shell

package shim

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"shimctl/internal/logging"
)

// Registry is the shim directory. An entry's existence is the only record
// that a shim is installed; entries carry no metadata.
type Registry struct {
	dir      string
	launcher string
	logger   *logging.ScopedLogger
}

// NewRegistry manages shims in dir, each one a symlink to launcher.
func NewRegistry(dir, launcher string, logger *logging.ScopedLogger) *Registry {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Registry{dir: dir, launcher: launcher, logger: logger}
}

// Dir returns the shim directory.
func (r *Registry) Dir() string {
	return r.dir
}

// List returns the names of all shims, sorted. A missing shim directory is
// an empty listing.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, &FileSystemError{Op: "read", Path: r.dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// exists reports whether a shim named name is registered. Dangling symlinks
// count as registered.
func (r *Registry) exists(name string) (bool, error) {
	path := filepath.Join(r.dir, name)
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &FileSystemError{Op: "inspect", Path: path, Err: err}
	}
	return true, nil
}

// Create registers a new shim. It fails with *AlreadyExistsError when a shim
// of the same name is already registered.
func (r *Registry) Create(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	exists, err := r.exists(name)
	if err != nil {
		return err
	}
	if exists {
		return &AlreadyExistsError{Name: name}
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return &FileSystemError{Op: "create", Path: r.dir, Err: err}
	}

	path := filepath.Join(r.dir, name)
	if err := os.Symlink(r.launcher, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &AlreadyExistsError{Name: name}
		}
		return &FileSystemError{Op: "create shim", Path: path, Err: err}
	}

	r.logger.Info("shim created", "name", name, "path", path)
	return nil
}

// Delete removes a registered shim. It fails with *DoesNotExistError when no
// shim of that name is registered.
func (r *Registry) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	exists, err := r.exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return &DoesNotExistError{Name: name}
	}

	path := filepath.Join(r.dir, name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &DoesNotExistError{Name: name}
		}
		return &FileSystemError{Op: "delete shim", Path: path, Err: err}
	}

	r.logger.Info("shim deleted", "name", name, "path", path)
	return nil
}

// ValidateName checks that name can be a single entry in the shim directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return &InvalidNameError{Name: name, Reason: "name is empty"}
	case !utf8.ValidString(name):
		return &InvalidNameError{Name: name, Reason: "not valid UTF-8"}
	case name == "." || name == "..":
		return &InvalidNameError{Name: name, Reason: "reserved name"}
	case strings.ContainsAny(name, `/\`):
		return &InvalidNameError{Name: name, Reason: "contains a path separator"}
	case strings.ContainsRune(name, 0):
		return &InvalidNameError{Name: name, Reason: "contains a NUL byte"}
	}
	return nil
}
