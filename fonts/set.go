package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/textfx/internal/cache"
	"github.com/gogpu/textfx/text"
)

const (
	// sourceCacheSize bounds parsed font files kept in memory.
	sourceCacheSize = 32

	// faceCacheSize bounds (font, size) faces kept in memory.
	faceCacheSize = 256
)

// Set is an immutable collection of font files from one directory.
// Set is safe for concurrent use.
type Set struct {
	dir   string
	names []string

	sources *cache.Cache[string, *text.FontSource]
	faces   *cache.Cache[faceKey, *text.Face]
}

type faceKey struct {
	name string
	size float64
}

// Open lists the .ttf and .otf files in dir. The listing is taken once;
// files added later are not seen.
func Open(dir string) (*Set, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fonts: open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fonts: open %s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fonts: read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && isFontFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	s := newSet(dir, names)
	slogger().Debug("fonts: opened set", "dir", dir, "count", len(names))
	return s, nil
}

// Builtin returns a Set with no files. Every Resolve yields Go Regular.
func Builtin() *Set {
	return newSet("", nil)
}

func newSet(dir string, names []string) *Set {
	return &Set{
		dir:     dir,
		names:   names,
		sources: cache.New[string, *text.FontSource](sourceCacheSize),
		faces:   cache.New[faceKey, *text.Face](faceCacheSize),
	}
}

// Dir returns the directory the set was opened from.
func (s *Set) Dir() string {
	return s.dir
}

// List returns the font file names in sorted order.
func (s *Set) List() []string {
	return slices.Clone(s.names)
}

// Has reports whether name is a file of the set.
func (s *Set) Has(name string) bool {
	if !validName(name) {
		return false
	}
	_, found := slices.BinarySearch(s.names, name)
	return found
}

// source loads and caches the parsed font file name.
func (s *Set) source(name string) (*text.FontSource, error) {
	return s.sources.GetOrCreate(name, func() (*text.FontSource, error) {
		return text.NewFontSourceFromFile(filepath.Join(s.dir, name))
	})
}

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
		return true
	default:
		return false
	}
}

// validName rejects anything that is not a plain file name.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
