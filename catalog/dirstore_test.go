package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const zoneDesignTOML = `
id = "classic-01"
theme = "classic"
width = 88.9
height = 50.8
palette = ["#000000", "#FFFFFF"]
fonts = ["Helvetica"]

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

const markupDesignTOML = `
id = "fancy-02"
theme = "fancy"
markup_file = "fancy-02.html"
width = 88.9
height = 50.8
palette = ["#112233"]
fonts = ["Georgia"]
`

const markupHTML = `<div class="name">Your Name</div>`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDirStoreLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "classic-01.toml", zoneDesignTOML)
	writeFile(t, dir, "fancy-02.toml", markupDesignTOML)
	writeFile(t, dir, "fancy-02.html", markupHTML)

	store := NewDirStore(dir)
	require.NoError(t, store.Load())
	require.Equal(t, 2, store.Len())

	zone, err := store.Find("classic-01")
	require.NoError(t, err)
	require.NotNil(t, zone.Front)
	require.False(t, zone.HasMarkup())
	require.Len(t, zone.Front.Zones, 1)

	markup, err := store.Find("fancy-02")
	require.NoError(t, err)
	require.True(t, markup.HasMarkup())
	require.Equal(t, markupHTML, markup.Markup)
}

func TestDirStoreBareMarkup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "standalone.html", markupHTML)

	store := NewDirStore(dir)
	require.NoError(t, store.Load())

	d, err := store.Find("standalone")
	require.NoError(t, err)
	require.True(t, d.HasMarkup())
}

func TestDirStoreMarkupClaimedBySidecar(t *testing.T) {
	// An .html file referenced by a TOML sidecar must not load twice
	// under its file name.
	dir := t.TempDir()
	writeFile(t, dir, "fancy-02.toml", markupDesignTOML)
	writeFile(t, dir, "fancy-02.html", markupHTML)

	store := NewDirStore(dir)
	require.NoError(t, store.Load())
	require.Equal(t, 1, store.Len())
}

func TestDirStoreSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "classic-01.toml", zoneDesignTOML)
	writeFile(t, dir, "broken.toml", "id = [unclosed")

	store := NewDirStore(dir)
	require.NoError(t, store.Load())
	require.Equal(t, 1, store.Len())
}

func TestDirStoreDuplicateIDKeepsFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.toml", zoneDesignTOML)
	writeFile(t, dir, "b.toml", zoneDesignTOML)

	store := NewDirStore(dir)
	require.NoError(t, store.Load())
	require.Equal(t, 1, store.Len())
}

func TestDirStoreFindUnknown(t *testing.T) {
	store := NewDirStore(t.TempDir())
	require.NoError(t, store.Load())

	_, err := store.Find("nope")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDesignNotFound))
}

func TestDirStoreMissingDir(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, store.Load())
	// the empty snapshot still serves
	require.Equal(t, 0, store.Len())
}

func TestValidateCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "classic-01.toml", zoneDesignTOML)
	writeFile(t, dir, "bare.html", markupHTML) // loads, but misses theme/dims/palette

	store := NewDirStore(dir)
	require.NoError(t, store.Load())

	results := ValidateCatalog(store)
	require.Len(t, results, 2)

	byID := map[string]ValidationResult{}
	for _, r := range results {
		byID[r.DesignID] = r
	}
	require.True(t, byID["classic-01"].OK())
	require.False(t, byID["bare"].OK())
}
