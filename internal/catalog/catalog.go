// pattern: Imperative Shell

// Package catalog reads the record of installed toolchain versions and the
// configured default version for each toolchain.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/gofrs/flock"

	"shimctl/internal/toolchain"
)

// Collection is the set of installed versions of one toolchain.
type Collection struct {
	Default  *semver.Version
	Versions []*semver.Version
}

// Contains reports whether v is installed.
func (c *Collection) Contains(v *semver.Version) bool {
	if c == nil || v == nil {
		return false
	}
	for _, installed := range c.Versions {
		if installed.Equal(v) {
			return true
		}
	}
	return false
}

// Catalog is a snapshot of installed versions for every managed toolchain.
type Catalog struct {
	collections map[toolchain.Toolchain]*Collection
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{collections: make(map[toolchain.Toolchain]*Collection)}
}

// Collection returns the collection for t, creating it when absent.
func (c *Catalog) Collection(t toolchain.Toolchain) *Collection {
	coll, ok := c.collections[t]
	if !ok {
		coll = &Collection{}
		c.collections[t] = coll
	}
	return coll
}

// ContainsVersion reports whether version v of t is installed.
func (c *Catalog) ContainsVersion(t toolchain.Toolchain, v *semver.Version) bool {
	return c.collections[t].Contains(v)
}

// DefaultVersion returns the default version of t, or nil when none is set.
func (c *Catalog) DefaultVersion(t toolchain.Toolchain) *semver.Version {
	coll, ok := c.collections[t]
	if !ok {
		return nil
	}
	return coll.Default
}

// fileCollection is the TOML shape of one toolchain table.
type fileCollection struct {
	Default  string   `toml:"default"`
	Versions []string `toml:"versions"`
}

// Parse decodes catalog TOML. Every top-level table names a toolchain.
func Parse(data string) (*Catalog, error) {
	var raw map[string]fileCollection
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown catalog keys: %s", strings.Join(keys, ", "))
	}

	cat := New()
	for name, table := range raw {
		t, err := toolchain.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("catalog [%s]: %w", name, err)
		}
		if err := fillCollection(cat.Collection(t), table); err != nil {
			return nil, fmt.Errorf("catalog [%s]: %w", t, err)
		}
	}
	return cat, nil
}

func fillCollection(coll *Collection, raw fileCollection) error {
	for _, s := range raw.Versions {
		v, err := toolchain.ParseVersion(s)
		if err != nil {
			return err
		}
		coll.Versions = append(coll.Versions, v)
	}
	if strings.TrimSpace(raw.Default) != "" {
		v, err := toolchain.ParseVersion(raw.Default)
		if err != nil {
			return fmt.Errorf("default: %w", err)
		}
		coll.Default = v
	}
	return nil
}

// Load reads the catalog at path while holding a shared lock on lockPath. A
// missing catalog file is an empty catalog.
func Load(path, lockPath string) (*Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("stat catalog: %w", err)
	}

	fl := flock.New(lockPath)
	if err := fl.RLock(); err != nil {
		return nil, fmt.Errorf("lock catalog: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(string(data))
}
