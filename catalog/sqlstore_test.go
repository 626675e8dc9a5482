package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/naderabdullah/cardforge/db/sqldb"
)

// fakeRows feeds canned column values through the sqldb.Rows surface.
type fakeRows struct {
	rows [][]any
	idx  int
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.rows[f.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d targets for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		switch t := d.(type) {
		case *string:
			*t = row[i].(string)
		case *float64:
			*t = row[i].(float64)
		case sql.Scanner:
			if err := t.Scan(row[i]); err != nil {
				return err
			}
		default:
			return fmt.Errorf("scan: unsupported target %T", d)
		}
	}
	return nil
}

func (f *fakeRows) Close() error { return nil }
func (f *fakeRows) Err() error   { return nil }

type fakeHandle struct {
	rows [][]any
	err  error
}

func (h *fakeHandle) Exec(context.Context, string, ...any) (sqldb.Result, error) {
	return nil, fmt.Errorf("exec not supported")
}

func (h *fakeHandle) QueryRows(context.Context, string, ...any) (sqldb.Rows, error) {
	if h.err != nil {
		return nil, h.err
	}
	return &fakeRows{rows: h.rows}, nil
}

func (h *fakeHandle) QueryRow(context.Context, string, ...any) sqldb.Row { return nil }

// columns: id, theme, markup, faces, width, height, palette, fonts,
// features, description, revision, updated_at
func designColumns(id, theme, markup, faces string) []any {
	var markupCol, facesCol any
	if markup != "" {
		markupCol = markup
	}
	if faces != "" {
		facesCol = faces
	}
	return []any{
		id, theme, markupCol, facesCol, 88.9, 50.8,
		"#000000,#FFFFFF", "Helvetica", nil, nil, int64(3), nil,
	}
}

const facesTOML = `
[front]
width = 88.9
height = 50.8

[[front.zone]]
id = "company"
type = "company-name"
x = 5.0
y = 5.0
width = 78.0
height = 10.0
`

func TestSQLStoreLoad(t *testing.T) {
	h := &fakeHandle{rows: [][]any{
		designColumns("classic-01", "classic", "", facesTOML),
		designColumns("fancy-02", "fancy", markupHTML, ""),
	}}
	store := NewSQLStore(h)
	require.NoError(t, store.Load(context.Background()))
	require.Equal(t, 2, store.Len())

	// row order survives into the snapshot
	all := store.All()
	require.Equal(t, "classic-01", all[0].ID)
	require.Equal(t, "fancy-02", all[1].ID)

	zone, err := store.Find("classic-01")
	require.NoError(t, err)
	require.NotNil(t, zone.Front)
	require.Len(t, zone.Front.Zones, 1)
	require.Equal(t, []string{"#000000", "#FFFFFF"}, zone.Palette)
	require.True(t, zone.Revision.Valid)
	require.EqualValues(t, 3, zone.Revision.Int64)

	markup, err := store.Find("fancy-02")
	require.NoError(t, err)
	require.True(t, markup.HasMarkup())
}

func TestSQLStoreLoadSkipsBrokenFaces(t *testing.T) {
	h := &fakeHandle{rows: [][]any{
		designColumns("broken", "x", "", "front = [unclosed"),
		designColumns("fancy-02", "fancy", markupHTML, ""),
	}}
	store := NewSQLStore(h)
	require.NoError(t, store.Load(context.Background()))
	require.Equal(t, 1, store.Len())

	_, err := store.Find("broken")
	require.Error(t, err)
}

func TestSQLStoreLoadQueryError(t *testing.T) {
	h := &fakeHandle{err: fmt.Errorf("connection refused")}
	store := NewSQLStore(h)
	require.Error(t, store.Load(context.Background()))
	// the empty snapshot still serves
	require.Equal(t, 0, store.Len())
}
