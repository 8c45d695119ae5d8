// pattern: Imperative Shell

// Package layout computes where shimctl keeps its files under the home directory.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"shimctl/internal/toolchain"
)

// HomeEnv overrides the home directory when set.
const HomeEnv = "SHIMCTL_HOME"

const (
	shimDirName      = "bin"
	versionsDirName  = "versions"
	launcherFileName = "launcher"
	catalogFileName  = "catalog.toml"
	logDirName       = "log"
	logFileName      = "shimctl.log"
)

// Home is the root of everything shimctl stores on disk.
type Home struct {
	Root string
}

// ResolveHome picks the home directory: $SHIMCTL_HOME, then the configured
// value, then ~/.shimctl. A leading "~/" in the configured value is expanded.
func ResolveHome(configured string) (Home, error) {
	if env := strings.TrimSpace(os.Getenv(HomeEnv)); env != "" {
		return newHome(env)
	}
	if configured = strings.TrimSpace(configured); configured != "" {
		expanded, err := expandHome(configured)
		if err != nil {
			return Home{}, err
		}
		return newHome(expanded)
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return Home{}, fmt.Errorf("detect user home: %w", err)
	}
	return newHome(filepath.Join(userHome, ".shimctl"))
}

// HomeAt uses path as the home directory, for an explicit --home flag.
func HomeAt(path string) (Home, error) {
	expanded, err := expandHome(strings.TrimSpace(path))
	if err != nil {
		return Home{}, err
	}
	return newHome(expanded)
}

func newHome(root string) (Home, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Home{}, fmt.Errorf("resolve home %s: %w", root, err)
	}
	return Home{Root: abs}, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	return filepath.Join(userHome, strings.TrimPrefix(path, "~")), nil
}

// ShimDir is the directory holding one entry per shim.
func (h Home) ShimDir() string {
	return filepath.Join(h.Root, shimDirName)
}

// LauncherFile is the file every shim links to.
func (h Home) LauncherFile() string {
	return filepath.Join(h.Root, launcherFileName)
}

// CatalogFile is the TOML record of installed toolchain versions.
func (h Home) CatalogFile() string {
	return filepath.Join(h.Root, catalogFileName)
}

// CatalogLockFile guards reads of the catalog against concurrent writers.
func (h Home) CatalogLockFile() string {
	return h.CatalogFile() + ".lock"
}

// LogFile is the rotated shimctl log.
func (h Home) LogFile() string {
	return filepath.Join(h.Root, logDirName, logFileName)
}

// VersionDir is the install directory of one toolchain version.
func (h Home) VersionDir(t toolchain.Toolchain, v *semver.Version) (string, error) {
	if h.Root == "" {
		return "", errors.New("home directory is not set")
	}
	if v == nil {
		return "", fmt.Errorf("no %s version given", t)
	}
	return filepath.Join(h.Root, versionsDirName, t.String(), v.String()), nil
}

// BinaryDirectory is the directory holding the executables of one toolchain version.
func (h Home) BinaryDirectory(t toolchain.Toolchain, v *semver.Version) (string, error) {
	dir, err := h.VersionDir(t, v)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bin"), nil
}
