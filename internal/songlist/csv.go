package songlist

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jaki95/music-bingo/internal/domain"
)

// CSVImporter reads a song list with a header row. Recognised columns are
// title, artist, album, filepath, duration and ref_id, in any order.
type CSVImporter struct {
}

func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

func (c *CSVImporter) Name() string {
	return CSVSongList
}

func (c *CSVImporter) Import(ctx context.Context, filePath string) ([]*domain.Song, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	songs, err := c.parseSongs(reader)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, errNoSongs
	}
	if err := ensureRefIDs(songs); err != nil {
		return nil, err
	}

	slog.Debug("song list imported", "source", filePath, "songs", len(songs))
	return songs, nil
}

func (c *CSVImporter) parseSongs(reader *csv.Reader) ([]*domain.Song, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["title"]; !ok {
		return nil, fmt.Errorf("CSV header has no title column")
	}
	slog.Debug("Header row", "header", header)

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var songs []*domain.Song
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		title := field(record, "title")
		if title == "" {
			return nil, fmt.Errorf("row %d has no title", row)
		}
		duration, err := parseDuration(field(record, "duration"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid duration: %w", row, err)
		}
		songs = append(songs, &domain.Song{
			RefID:    field(record, "ref_id"),
			Title:    title,
			Artist:   field(record, "artist"),
			Album:    field(record, "album"),
			Filepath: field(record, "filepath"),
			Duration: duration,
		})
	}
	return songs, nil
}
