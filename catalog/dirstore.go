package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/naderabdullah/cardforge/orm"
	"github.com/naderabdullah/cardforge/zones"

	"github.com/BurntSushi/toml"
)

const (
	MarkupSuffix = ".html"
	DesignSuffix = ".toml"
)

// designFile is the on-disk TOML shape. A file either inlines zone
// faces or points at a markup file relative to the design dir.
type designFile struct {
	ID         string   `toml:"id"`
	Theme      string   `toml:"theme"`
	MarkupFile string   `toml:"markup_file"`
	Width      float64  `toml:"width"`
	Height     float64  `toml:"height"`
	Palette    []string `toml:"palette"`
	Fonts      []string `toml:"fonts"`
	Features   []string `toml:"features"`

	Front *zones.CardFace `toml:"front"`
	Back  *zones.CardFace `toml:"back"`
}

// DirStore loads designs from a directory and serves them from an
// atomically swappable snapshot, so a reload never blocks readers.
type DirStore struct {
	Dir string

	snapshot atomic.Pointer[orm.Collection[*Design, string]]
}

// Ensure DirStore implements Store interface
var _ Store = (*DirStore)(nil)

func NewDirStore(dir string) *DirStore {
	s := &DirStore{Dir: filepath.Clean(dir)}
	s.snapshot.Store(orm.NewEmptyOrderedCollection[*Design, string]())
	return s
}

// Load reads every design file in Dir and swaps the snapshot in one
// step. Designs that fail to parse are skipped with a warning; schema
// problems are logged but keep the design loadable.
func (s *DirStore) Load() error {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return fmt.Errorf("reading design dir %q: %w", s.Dir, err)
	}

	coll := orm.NewEmptyOrderedCollection[*Design, string]()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		var (
			d       *Design
			loadErr error
		)
		switch {
		case strings.HasSuffix(name, DesignSuffix):
			d, loadErr = s.loadDesignFile(name)
		case strings.HasSuffix(name, MarkupSuffix):
			d, loadErr = s.loadBareMarkup(name)
		default:
			continue
		}
		if loadErr != nil {
			log.Printf("[WARN][catalog] skipping %s: %v", name, loadErr)
			continue
		}
		if coll.Has(d.ID) {
			log.Printf("[WARN][catalog] duplicate design id %q in %s, keeping first", d.ID, name)
			continue
		}
		for _, p := range d.CheckSchema() {
			log.Printf("[WARN][catalog] design %q: %s", d.ID, p)
		}
		coll.Add(d)
	}

	s.snapshot.Store(coll)
	log.Printf("[INFO][catalog] loaded %d designs from %s", coll.Len(), s.Dir)
	return nil
}

func (s *DirStore) loadDesignFile(name string) (*Design, error) {
	var df designFile
	if _, err := toml.DecodeFile(filepath.Join(s.Dir, name), &df); err != nil {
		return nil, err
	}
	d := &Design{
		ID:       df.ID,
		Theme:    df.Theme,
		Width:    df.Width,
		Height:   df.Height,
		Palette:  df.Palette,
		Fonts:    df.Fonts,
		Features: df.Features,
		Front:    df.Front,
		Back:     df.Back,
	}
	if d.ID == "" {
		d.ID = strings.TrimSuffix(name, DesignSuffix)
	}
	if df.MarkupFile != "" {
		data, err := os.ReadFile(filepath.Join(s.Dir, filepath.Base(df.MarkupFile)))
		if err != nil {
			return nil, fmt.Errorf("markup file: %w", err)
		}
		d.Markup = string(data)
	}
	return d, nil
}

// loadBareMarkup handles .html files without a TOML sidecar. A sidecar
// with markup_file set takes precedence, so skip files any TOML in the
// dir claims.
func (s *DirStore) loadBareMarkup(name string) (*Design, error) {
	if s.claimedByDesignFile(name) {
		return nil, fmt.Errorf("owned by a design file")
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, err
	}
	return &Design{
		ID:     strings.TrimSuffix(name, MarkupSuffix),
		Markup: string(data),
	}, nil
}

func (s *DirStore) claimedByDesignFile(markupName string) bool {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), DesignSuffix) {
			continue
		}
		var df designFile
		if _, err := toml.DecodeFile(filepath.Join(s.Dir, entry.Name()), &df); err != nil {
			continue
		}
		if filepath.Base(df.MarkupFile) == markupName {
			return true
		}
	}
	return false
}

//---- Store ----

func (s *DirStore) Find(id string) (*Design, error) {
	d, ok := s.snapshot.Load().Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDesignNotFound, id)
	}
	return d, nil
}

func (s *DirStore) All() []*Design {
	return s.snapshot.Load().Items()
}

func (s *DirStore) Len() int {
	return s.snapshot.Load().Len()
}
