package songlist

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jaki95/music-bingo/internal/domain"
)

type yamlSong struct {
	RefID    string `yaml:"ref_id"`
	Title    string `yaml:"title"`
	Artist   string `yaml:"artist"`
	Album    string `yaml:"album"`
	Filepath string `yaml:"filepath"`
	Duration string `yaml:"duration"`
}

type yamlSongList struct {
	Songs []yamlSong `yaml:"songs"`
}

// YAMLImporter reads a document with a top-level "songs" list.
type YAMLImporter struct {
}

func NewYAMLImporter() *YAMLImporter {
	return &YAMLImporter{}
}

func (y *YAMLImporter) Name() string {
	return YAMLSongList
}

func (y *YAMLImporter) Import(ctx context.Context, filePath string) ([]*domain.Song, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read song list: %w", err)
	}

	var list yamlSongList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse song list: %w", err)
	}
	if len(list.Songs) == 0 {
		return nil, errNoSongs
	}

	songs := make([]*domain.Song, 0, len(list.Songs))
	for i, entry := range list.Songs {
		if entry.Title == "" {
			return nil, fmt.Errorf("song %d has no title", i+1)
		}
		duration, err := parseDuration(entry.Duration)
		if err != nil {
			return nil, fmt.Errorf("song %d: invalid duration: %w", i+1, err)
		}
		songs = append(songs, &domain.Song{
			RefID:    entry.RefID,
			Title:    entry.Title,
			Artist:   entry.Artist,
			Album:    entry.Album,
			Filepath: entry.Filepath,
			Duration: duration,
		})
	}
	if err := ensureRefIDs(songs); err != nil {
		return nil, err
	}

	slog.Debug("song list imported", "source", filePath, "songs", len(songs))
	return songs, nil
}
