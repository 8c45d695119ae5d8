// pattern: Functional Core

// Package toolchain names the toolchains shimctl manages and the version pins a
// project can declare for them.
package toolchain

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Toolchain identifies a managed toolchain.
type Toolchain int

const (
	Node Toolchain = iota
	Yarn
)

// All lists every managed toolchain in a stable order.
var All = []Toolchain{Node, Yarn}

func (t Toolchain) String() string {
	switch t {
	case Node:
		return "node"
	case Yarn:
		return "yarn"
	default:
		return fmt.Sprintf("toolchain(%d)", int(t))
	}
}

// Parse returns the toolchain with the given name.
func Parse(name string) (Toolchain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "node":
		return Node, nil
	case "yarn":
		return Yarn, nil
	default:
		return 0, fmt.Errorf("unknown toolchain %q", name)
	}
}

// Platform is the set of toolchain versions a project pins. Node is always set
// on a valid platform; Yarn is optional.
type Platform struct {
	Node *semver.Version
	Yarn *semver.Version
}

// ParseVersion parses a version string such as "10.2.1" or "v8.11.3".
func ParseVersion(raw string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return v, nil
}

// NewPlatform builds a Platform from raw version strings. node is required and
// yarn may be empty.
func NewPlatform(node, yarn string) (*Platform, error) {
	if strings.TrimSpace(node) == "" {
		return nil, fmt.Errorf("platform requires a node version")
	}
	nodeVersion, err := ParseVersion(node)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}

	platform := &Platform{Node: nodeVersion}
	if strings.TrimSpace(yarn) != "" {
		yarnVersion, err := ParseVersion(yarn)
		if err != nil {
			return nil, fmt.Errorf("yarn: %w", err)
		}
		platform.Yarn = yarnVersion
	}
	return platform, nil
}
