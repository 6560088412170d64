// Package songlist reads song pools from prepared list files.
package songlist

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jaki95/music-bingo/internal/domain"
)

// Importer imports a song pool from a given source.
type Importer interface {
	Import(ctx context.Context, source string) ([]*domain.Song, error)
	Name() string
}

const (
	YAMLSongList = "yaml"
	CSVSongList  = "csv"
)

var errNoSongs = errors.New("no songs found")

// CompositeImporter picks an importer by file extension and falls back to
// trying each importer in sequence when the extension is not recognised.
type CompositeImporter struct {
	importers []Importer
}

func (c *CompositeImporter) Name() string {
	return "composite"
}

func NewCompositeImporter() *CompositeImporter {
	return &CompositeImporter{
		importers: []Importer{
			NewYAMLImporter(),
			NewCSVImporter(),
		},
	}
}

func (c *CompositeImporter) Import(ctx context.Context, source string) ([]*domain.Song, error) {
	if importer := c.byExtension(source); importer != nil {
		return importer.Import(ctx, source)
	}

	var errs []error
	for _, importer := range c.importers {
		songs, err := importer.Import(ctx, source)
		if err == nil {
			return songs, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", importer.Name(), err))
	}
	return nil, fmt.Errorf("all importers failed: %w", errors.Join(errs...))
}

func (c *CompositeImporter) byExtension(source string) Importer {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(source)), ".")
	if ext == "yml" {
		ext = YAMLSongList
	}
	for _, importer := range c.importers {
		if importer.Name() == ext {
			return importer
		}
	}
	return nil
}

// NewImporter returns the importer used by the CLI.
func NewImporter() Importer {
	return NewCompositeImporter()
}

// ensureRefIDs gives every song without a reference a random one and rejects
// duplicate references.
func ensureRefIDs(songs []*domain.Song) error {
	seen := make(map[string]int, len(songs))
	for i, song := range songs {
		if song.RefID == "" {
			song.RefID = uuid.NewString()
		}
		if prev, ok := seen[song.RefID]; ok {
			return fmt.Errorf("songs %d and %d share reference %q", prev+1, i+1, song.RefID)
		}
		seen[song.RefID] = i
	}
	return nil
}

func parseDuration(value string) (time.Duration, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return domain.ParseTimestamp(value)
}
