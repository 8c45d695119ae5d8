// pattern: Imperative Shell

// Package project reads the package a directory belongs to and answers which
// executables that package directly declares.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"shimctl/internal/toolchain"
)

// Project is a package root with its parsed manifest.
type Project struct {
	root     string
	manifest Manifest
}

// New builds a Project from an already parsed manifest.
func New(root string, manifest Manifest) *Project {
	return &Project{root: root, manifest: manifest}
}

// ForDir returns the project containing dir: the nearest ancestor of dir,
// dir included, that holds a package.json. It returns nil when there is none
// or when dir is missing or not a directory.
func ForDir(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	for current := abs; ; {
		manifestPath := filepath.Join(current, ManifestFile)
		info, err := os.Stat(manifestPath)
		switch {
		case err == nil && info.Mode().IsRegular():
			return Load(current)
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return nil, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, nil
		}
		current = parent
	}
}

// Load reads the project rooted exactly at root.
func Load(root string) (*Project, error) {
	manifestPath := filepath.Join(root, ManifestFile)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, &ManifestError{Path: manifestPath, Err: err}
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, &ManifestError{Path: manifestPath, Err: err}
	}
	return New(root, manifest), nil
}

// Root is the directory holding package.json.
func (p *Project) Root() string {
	return p.root
}

// Manifest returns the parsed package.json.
func (p *Project) Manifest() Manifest {
	return p.manifest
}

// PinnedPlatform returns the toolchain versions the project pins, or nil.
func (p *Project) PinnedPlatform() *toolchain.Platform {
	return p.manifest.Platform
}

// LocalBinaryDirectory is where the package manager links project executables.
func (p *Project) LocalBinaryDirectory() string {
	return filepath.Join(p.root, "node_modules", ".bin")
}

// DirectBinaryNames lists the executables the project declares itself plus
// those published by its installed direct dependencies, sorted and unique.
func (p *Project) DirectBinaryNames() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	add := func(list []string) {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	add(p.manifest.BinNames())
	for _, dep := range p.manifest.DirectDependencies() {
		bins, err := p.dependencyBins(dep)
		if err != nil {
			return nil, err
		}
		add(bins)
	}

	sort.Strings(names)
	return names, nil
}

// HasDirectBinary reports whether name is one of DirectBinaryNames.
func (p *Project) HasDirectBinary(name string) (bool, error) {
	if _, ok := p.manifest.Bin[name]; ok {
		return true, nil
	}
	for _, dep := range p.manifest.DirectDependencies() {
		bins, err := p.dependencyBins(dep)
		if err != nil {
			return false, err
		}
		for _, bin := range bins {
			if bin == name {
				return true, nil
			}
		}
	}
	return false, nil
}

// dependencyBins reads the bin names of an installed dependency. Dependencies
// that are not installed publish nothing.
func (p *Project) dependencyBins(dep string) ([]string, error) {
	manifestPath := filepath.Join(p.root, "node_modules", filepath.FromSlash(dep), ManifestFile)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dependency %s: %w", dep, err)
	}

	bins, err := ParseBinNames(data)
	if err != nil {
		return nil, &ManifestError{Path: manifestPath, Err: err}
	}
	return bins, nil
}
