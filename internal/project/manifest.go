// pattern: Functional Core

package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"shimctl/internal/fail"
	"shimctl/internal/toolchain"
)

// ManifestFile is the file that marks a directory as a package root.
const ManifestFile = "package.json"

// ManifestError reports a package.json that cannot be used.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("could not read package manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// ExitCode marks manifest problems as configuration errors.
func (e *ManifestError) ExitCode() fail.ExitCode { return fail.ConfigurationError }

// Manifest is the subset of package.json that shim resolution needs.
type Manifest struct {
	Name            string
	Bin             map[string]string
	Dependencies    map[string]string
	DevDependencies map[string]string
	Platform        *toolchain.Platform
}

type rawManifest struct {
	Name            string            `json:"name"`
	Bin             json.RawMessage   `json:"bin"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Toolchain       *rawToolchain     `json:"toolchain"`
}

type rawToolchain struct {
	Node string `json:"node"`
	Yarn string `json:"yarn"`
}

// ParseManifest decodes package.json contents.
func ParseManifest(data []byte) (Manifest, error) {
	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	bin, err := parseBin(raw.Name, raw.Bin)
	if err != nil {
		return Manifest{}, err
	}

	m := Manifest{
		Name:            raw.Name,
		Bin:             bin,
		Dependencies:    raw.Dependencies,
		DevDependencies: raw.DevDependencies,
	}

	if raw.Toolchain != nil {
		platform, err := toolchain.NewPlatform(raw.Toolchain.Node, raw.Toolchain.Yarn)
		if err != nil {
			return Manifest{}, fmt.Errorf("toolchain: %w", err)
		}
		m.Platform = platform
	}
	return m, nil
}

// ParseBinNames decodes only the name and bin fields of package.json and
// returns the executable names, sorted. Dependency manifests are read this way
// so their own toolchain pins never matter.
func ParseBinNames(data []byte) ([]string, error) {
	var raw struct {
		Name string          `json:"name"`
		Bin  json.RawMessage `json:"bin"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	bin, err := parseBin(raw.Name, raw.Bin)
	if err != nil {
		return nil, err
	}
	return Manifest{Bin: bin}.BinNames(), nil
}

// parseBin handles both forms of the bin field: a single path, which is
// published under the package's own name, or an object of name to path.
func parseBin(pkgName string, raw json.RawMessage) (map[string]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var path string
		if err := json.Unmarshal(raw, &path); err != nil {
			return nil, fmt.Errorf("decode bin: %w", err)
		}
		name := unscopedName(pkgName)
		if name == "" {
			return nil, fmt.Errorf("bin path %q given without a package name", path)
		}
		return map[string]string{name: path}, nil
	}

	var bins map[string]string
	if err := json.Unmarshal(raw, &bins); err != nil {
		return nil, fmt.Errorf("decode bin: %w", err)
	}
	return bins, nil
}

// unscopedName strips an npm scope, so "@org/tool" becomes "tool".
func unscopedName(name string) string {
	if strings.HasPrefix(name, "@") {
		if idx := strings.IndexByte(name, '/'); idx >= 0 {
			return name[idx+1:]
		}
	}
	return name
}

// BinNames returns the manifest's own executable names, sorted.
func (m Manifest) BinNames() []string {
	names := make([]string, 0, len(m.Bin))
	for name := range m.Bin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DirectDependencies returns the names of dependencies and devDependencies,
// sorted and without duplicates.
func (m Manifest) DirectDependencies() []string {
	seen := make(map[string]bool, len(m.Dependencies)+len(m.DevDependencies))
	var names []string
	for _, deps := range []map[string]string{m.Dependencies, m.DevDependencies} {
		for name := range deps {
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
