// pattern: Functional Core

package shim

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"

	"shimctl/internal/toolchain"
)

// Catalog answers which toolchain versions are installed and which are defaults.
type Catalog interface {
	ContainsVersion(t toolchain.Toolchain, v *semver.Version) bool
	DefaultVersion(t toolchain.Toolchain) *semver.Version
}

// BinaryDirs computes where an installed toolchain version keeps its executables.
type BinaryDirs interface {
	BinaryDirectory(t toolchain.Toolchain, v *semver.Version) (string, error)
}

// ProjectContext is what resolution needs to know about the current project.
type ProjectContext interface {
	PinnedPlatform() *toolchain.Platform
	HasDirectBinary(name string) (bool, error)
	LocalBinaryDirectory() string
}

// Resolver maps shim names to dispatch targets. It holds no state between
// calls: every Resolve reads the catalog and project it is given.
type Resolver struct {
	catalog Catalog
	dirs    BinaryDirs
}

// NewResolver creates a Resolver over a catalog snapshot and a directory layout.
func NewResolver(catalog Catalog, dirs BinaryDirs) *Resolver {
	return &Resolver{catalog: catalog, dirs: dirs}
}

// Resolve returns the dispatch target for name. proj is nil outside a project.
// Errors are reserved for infrastructure failures; "nothing to run" is the
// NotInstalled target.
func (r *Resolver) Resolve(name string, proj ProjectContext) (DispatchTarget, error) {
	if !utf8.ValidString(name) {
		return DispatchTarget{}, &InvalidNameError{Name: name, Reason: "not valid UTF-8"}
	}

	var (
		target DispatchTarget
		err    error
	)
	switch Classify(name) {
	case ClassNode:
		target, err = r.resolveNode(name, proj)
	case ClassYarn:
		target, err = r.resolveYarn(name, proj)
	case ClassNpx:
		target = unimplemented
	default:
		target, err = r.resolveThirdParty(name, proj)
	}
	if err != nil {
		return DispatchTarget{}, &ResolveError{Name: name, Err: err}
	}
	return target, nil
}

func (r *Resolver) resolveNode(name string, proj ProjectContext) (DispatchTarget, error) {
	if platform := pinnedPlatform(proj); platform != nil {
		if !r.catalog.ContainsVersion(toolchain.Node, platform.Node) {
			return pendingInstall(platform.Node), nil
		}
		path, err := r.binaryPath(toolchain.Node, platform.Node, name)
		if err != nil {
			return DispatchTarget{}, err
		}
		return pinned(path), nil
	}

	if v := r.catalog.DefaultVersion(toolchain.Node); v != nil {
		path, err := r.binaryPath(toolchain.Node, v, name)
		if err != nil {
			return DispatchTarget{}, err
		}
		return userDefault(path), nil
	}
	return systemFallback, nil
}

// resolveYarn treats a project that pins a platform without yarn as one that
// has no yarn at all; the catalog default is only used outside pinned projects.
func (r *Resolver) resolveYarn(name string, proj ProjectContext) (DispatchTarget, error) {
	if platform := pinnedPlatform(proj); platform != nil {
		if platform.Yarn == nil {
			return notInstalled, nil
		}
		if !r.catalog.ContainsVersion(toolchain.Yarn, platform.Yarn) {
			return pendingInstall(platform.Yarn), nil
		}
		path, err := r.binaryPath(toolchain.Yarn, platform.Yarn, name)
		if err != nil {
			return DispatchTarget{}, err
		}
		return pinned(path), nil
	}

	if v := r.catalog.DefaultVersion(toolchain.Yarn); v != nil {
		path, err := r.binaryPath(toolchain.Yarn, v, name)
		if err != nil {
			return DispatchTarget{}, err
		}
		return userDefault(path), nil
	}
	return systemFallback, nil
}

// resolveThirdParty only honours binaries the project declares directly; the
// catalog is never consulted.
func (r *Resolver) resolveThirdParty(name string, proj ProjectContext) (DispatchTarget, error) {
	if proj == nil {
		return notInstalled, nil
	}
	ok, err := proj.HasDirectBinary(name)
	if err != nil {
		return DispatchTarget{}, err
	}
	if !ok {
		return notInstalled, nil
	}
	return projectLocal(filepath.Join(proj.LocalBinaryDirectory(), name)), nil
}

func (r *Resolver) binaryPath(t toolchain.Toolchain, v *semver.Version, name string) (string, error) {
	dir, err := r.dirs.BinaryDirectory(t, v)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func pinnedPlatform(proj ProjectContext) *toolchain.Platform {
	if proj == nil {
		return nil
	}
	return proj.PinnedPlatform()
}
