// pattern: Imperative Shell

package shim

import (
	"fmt"

	"shimctl/internal/logging"
)

// BinarySource lists the executables a project declares directly.
type BinarySource interface {
	DirectBinaryNames() ([]string, error)
}

// Locator finds the project containing dir. It returns a nil BinarySource when
// dir belongs to no project.
type Locator func(dir string) (BinarySource, error)

// Creator registers a single shim.
type Creator interface {
	Create(name string) error
}

// Scanner creates a shim for every executable a project declares.
type Scanner struct {
	creator Creator
	locate  Locator
	logger  *logging.ScopedLogger
}

// NewScanner creates a Scanner that registers shims through creator and finds
// projects for explicit paths through locate.
func NewScanner(creator Creator, locate Locator, logger *logging.ScopedLogger) *Scanner {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Scanner{creator: creator, locate: locate, logger: logger}
}

// Autoshim creates shims for the project at path, or for ambient when path is
// empty, and returns the names it created. Shims that fail are collected and
// the scan continues; the failures come back together in an *AutoshimError
// once every binary was attempted. A path outside any package fails with
// *NotAPackageError before anything is created.
func (s *Scanner) Autoshim(path string, ambient BinarySource) ([]string, error) {
	source, err := s.source(path, ambient)
	if err != nil {
		return nil, err
	}

	names, err := source.DirectBinaryNames()
	if err != nil {
		return nil, fmt.Errorf("list project binaries: %w", err)
	}

	var (
		created  []string
		failures []Failure
	)
	for _, name := range names {
		if err := s.creator.Create(name); err != nil {
			s.logger.Warn("autoshim failed for binary", "name", name, "error", err)
			failures = append(failures, Failure{Name: name, Err: err})
			continue
		}
		created = append(created, name)
	}

	s.logger.Info("autoshim finished", "binaries", len(names), "failures", len(failures))
	if len(failures) > 0 {
		return created, &AutoshimError{Failures: failures}
	}
	return created, nil
}

func (s *Scanner) source(path string, ambient BinarySource) (BinarySource, error) {
	if path == "" {
		if ambient == nil {
			return nil, &NotAPackageError{Path: "."}
		}
		return ambient, nil
	}

	found, err := s.locate(path)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, &NotAPackageError{Path: path}
	}
	return found, nil
}
