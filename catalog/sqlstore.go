package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/naderabdullah/cardforge/db/sqldb"
	"github.com/naderabdullah/cardforge/nullable"
	"github.com/naderabdullah/cardforge/orm"
	"github.com/naderabdullah/cardforge/zones"

	"github.com/BurntSushi/toml"
)

// designRow mirrors the designs table. Zone faces are stored as a TOML
// document in the faces column; list columns are comma-separated.
type designRow struct {
	ID          string
	Theme       nullable.String
	Markup      nullable.String
	Faces       nullable.String
	Width       float64
	Height      float64
	Palette     nullable.String
	Fonts       nullable.String
	Features    nullable.String
	Description nullable.String
	Revision    nullable.Int
	UpdatedAt   nullable.Time
}

func (r *designRow) GetID() string { return r.ID }

func (r *designRow) TargetFields() []any {
	return []any{
		&r.ID,
		&r.Theme,
		&r.Markup,
		&r.Faces,
		&r.Width,
		&r.Height,
		&r.Palette,
		&r.Fonts,
		&r.Features,
		&r.Description,
		&r.Revision,
		&r.UpdatedAt,
	}
}

const selectDesigns = `SELECT id, theme, markup, faces, width, height, palette, fonts, features, description, revision, updated_at FROM "designs" ORDER BY id`

// SQLStore serves designs loaded from a db/sqldb backend. Like
// DirStore it snapshots, so Reload never blocks readers.
type SQLStore struct {
	DB sqldb.Handle

	snapshot atomic.Pointer[orm.Collection[*Design, string]]
}

// Ensure SQLStore implements Store interface
var _ Store = (*SQLStore)(nil)

func NewSQLStore(db sqldb.Handle) *SQLStore {
	s := &SQLStore{DB: db}
	s.snapshot.Store(orm.NewEmptyOrderedCollection[*Design, string]())
	return s
}

func (s *SQLStore) Load(ctx context.Context) error {
	rowColl, err := sqldb.QueryCollection[designRow, *designRow, string](ctx, s.DB, selectDesigns)
	if err != nil {
		return fmt.Errorf("querying designs: %w", err)
	}

	coll := orm.NewEmptyOrderedCollection[*Design, string]()
	rowColl.ForEach(func(row *designRow) {
		d, err := row.toDesign()
		if err != nil {
			log.Printf("[WARN][catalog] skipping design %q: %v", row.ID, err)
			return
		}
		for _, p := range d.CheckSchema() {
			log.Printf("[WARN][catalog] design %q: %s", d.ID, p)
		}
		coll.Add(d)
	})

	s.snapshot.Store(coll)
	log.Printf("[INFO][catalog] loaded %d designs from db", coll.Len())
	return nil
}

func (r *designRow) toDesign() (*Design, error) {
	d := &Design{
		ID:          r.ID,
		Theme:       r.Theme.ForceValue(),
		Markup:      r.Markup.ForceValue(),
		Width:       r.Width,
		Height:      r.Height,
		Palette:     splitList(r.Palette),
		Fonts:       splitList(r.Fonts),
		Features:    splitList(r.Features),
		Description: r.Description,
		Revision:    r.Revision,
		UpdatedAt:   r.UpdatedAt,
	}
	if !r.Faces.IsNil() {
		var faces struct {
			Front *zones.CardFace `toml:"front"`
			Back  *zones.CardFace `toml:"back"`
		}
		if _, err := toml.Decode(r.Faces.ForceValue(), &faces); err != nil {
			return nil, fmt.Errorf("faces column: %w", err)
		}
		d.Front = faces.Front
		d.Back = faces.Back
	}
	return d, nil
}

func splitList(n nullable.String) []string {
	if n.IsNil() {
		return nil
	}
	var out []string
	for _, part := range strings.Split(n.ForceValue(), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

//---- Store ----

func (s *SQLStore) Find(id string) (*Design, error) {
	d, ok := s.snapshot.Load().Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDesignNotFound, id)
	}
	return d, nil
}

func (s *SQLStore) All() []*Design {
	return s.snapshot.Load().Items()
}

func (s *SQLStore) Len() int {
	return s.snapshot.Load().Len()
}
