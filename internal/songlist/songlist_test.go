package songlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestYAMLImporter(t *testing.T) {
	path := writeFile(t, "songs.yaml", `
songs:
  - title: Blue Monday
    artist: New Order
    album: Power, Corruption & Lies
    filepath: music/blue-monday.mp3
    duration: "7:29"
    ref_id: nw-01
  - title: Heroes
    artist: David Bowie
`)

	songs, err := NewYAMLImporter().Import(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, songs, 2)

	assert.Equal(t, "nw-01", songs[0].RefID)
	assert.Equal(t, "Blue Monday", songs[0].Title)
	assert.Equal(t, "Power, Corruption & Lies", songs[0].Album)
	assert.Equal(t, 7*time.Minute+29*time.Second, songs[0].Duration)

	assert.Zero(t, songs[1].Duration)
	_, err = uuid.Parse(songs[1].RefID)
	assert.NoError(t, err, "missing references are generated")
}

func TestYAMLImporterErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"empty list", "songs: []\n", "no songs found"},
		{"missing title", "songs:\n  - artist: Nobody\n", "song 1 has no title"},
		{"bad duration", "songs:\n  - title: A\n    duration: soon\n", "invalid duration"},
		{"duplicate reference", "songs:\n  - {title: A, ref_id: x}\n  - {title: B, ref_id: x}\n", "share reference"},
		{"invalid yaml", "songs: [\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLImporter().Import(context.Background(), writeFile(t, "songs.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCSVImporter(t *testing.T) {
	path := writeFile(t, "songs.csv", `artist,title,duration,album
New Order,Blue Monday,7:29,"Power, Corruption & Lies"
David Bowie,Heroes,,
`)

	songs, err := NewCSVImporter().Import(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, songs, 2)

	assert.Equal(t, "New Order", songs[0].Artist)
	assert.Equal(t, "Power, Corruption & Lies", songs[0].Album)
	assert.Equal(t, 449*time.Second, songs[0].Duration)
	assert.Equal(t, "Heroes", songs[1].Title)
	assert.NotEqual(t, songs[0].RefID, songs[1].RefID)
}

func TestCSVImporterErrors(t *testing.T) {
	_, err := NewCSVImporter().Import(context.Background(), writeFile(t, "a.csv", "artist,name\nA,B\n"))
	assert.ErrorContains(t, err, "no title column")

	_, err = NewCSVImporter().Import(context.Background(), writeFile(t, "b.csv", "title\n"))
	assert.ErrorIs(t, err, errNoSongs)

	_, err = NewCSVImporter().Import(context.Background(), writeFile(t, "c.csv", "title,artist\n,Someone\n"))
	assert.ErrorContains(t, err, "row 2 has no title")

	_, err = NewCSVImporter().Import(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "failed to open CSV file")
}

func TestImportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVImporter().Import(ctx, "unused.csv")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewYAMLImporter().Import(ctx, "unused.yaml")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompositeImporter(t *testing.T) {
	importer := NewCompositeImporter()
	assert.Equal(t, "composite", importer.Name())
	assert.Len(t, importer.importers, 2)

	tests := []struct {
		name     string
		file     string
		content  string
		expected string
	}{
		{"yaml extension", "songs.yaml", "songs:\n  - title: From YAML\n", "From YAML"},
		{"yml extension", "songs.YML", "songs:\n  - title: From YML\n", "From YML"},
		{"csv extension", "songs.csv", "title\nFrom CSV\n", "From CSV"},
		{"unknown extension falls back", "songs.txt", "title\nFrom TXT\n", "From TXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			songs, err := NewImporter().Import(context.Background(), writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			require.Len(t, songs, 1)
			assert.Equal(t, tt.expected, songs[0].Title)
		})
	}
}

func TestCompositeImporterAllFail(t *testing.T) {
	_, err := NewCompositeImporter().Import(context.Background(), writeFile(t, "songs.txt", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all importers failed")
	assert.ErrorIs(t, err, errNoSongs)
}
