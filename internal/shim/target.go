// pattern: Functional Core

package shim

import "github.com/Masterminds/semver/v3"

// TargetKind is the outcome class of a resolution.
type TargetKind int

const (
	// NotInstalled means nothing can run under this name.
	NotInstalled TargetKind = iota
	// ProjectLocalBinary is an executable linked into the project's node_modules.
	ProjectLocalBinary
	// PinnedToolchainBinary is an installed toolchain version the project pins.
	PinnedToolchainBinary
	// UserDefaultBinary is the catalog's default toolchain version.
	UserDefaultBinary
	// SystemFallback defers to whatever is on PATH outside shimctl.
	SystemFallback
	// PendingInstall is a pinned version that has not been installed yet.
	PendingInstall
	// Unimplemented means no resolution rule exists for the name.
	Unimplemented
)

func (k TargetKind) String() string {
	switch k {
	case ProjectLocalBinary:
		return "project"
	case PinnedToolchainBinary:
		return "pinned"
	case UserDefaultBinary:
		return "user-default"
	case SystemFallback:
		return "system"
	case PendingInstall:
		return "pending-install"
	case Unimplemented:
		return "unimplemented"
	default:
		return "not-installed"
	}
}

// DispatchTarget is the result of resolving a shim name. Path is set only for
// the three binary kinds and Version only for PendingInstall.
type DispatchTarget struct {
	Kind    TargetKind
	Path    string
	Version *semver.Version
}

func projectLocal(path string) DispatchTarget {
	return DispatchTarget{Kind: ProjectLocalBinary, Path: path}
}

func pinned(path string) DispatchTarget {
	return DispatchTarget{Kind: PinnedToolchainBinary, Path: path}
}

func userDefault(path string) DispatchTarget {
	return DispatchTarget{Kind: UserDefaultBinary, Path: path}
}

func pendingInstall(v *semver.Version) DispatchTarget {
	return DispatchTarget{Kind: PendingInstall, Version: v}
}

var (
	systemFallback = DispatchTarget{Kind: SystemFallback}
	notInstalled   = DispatchTarget{Kind: NotInstalled}
	unimplemented  = DispatchTarget{Kind: Unimplemented}
)

// HasPath reports whether the target names a concrete executable.
func (t DispatchTarget) HasPath() bool {
	switch t.Kind {
	case ProjectLocalBinary, PinnedToolchainBinary, UserDefaultBinary:
		return true
	default:
		return false
	}
}
