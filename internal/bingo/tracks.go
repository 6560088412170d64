package bingo

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jaki95/music-bingo/internal/domain"
)

// TracksFileName is the name of the play order listing in a game's output.
const TracksFileName = "gameTracks.json"

type trackRecord struct {
	Position  int    `json:"position"`
	SongID    uint64 `json:"song_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album,omitempty"`
	Filepath  string `json:"filepath,omitempty"`
	Duration  int64  `json:"duration"`
	StartTime string `json:"start_time"`
}

// WriteGameTracks writes the annotated play order as a JSON array. Durations
// are in milliseconds and start times are formatted as MM:SS.
func WriteGameTracks(w io.Writer, order []*domain.Song) error {
	records := make([]trackRecord, 0, len(order))
	for _, song := range order {
		records = append(records, trackRecord{
			Position:  song.Position,
			SongID:    song.ID,
			Title:     song.Title,
			Artist:    song.Artist,
			Album:     song.Album,
			Filepath:  song.Filepath,
			Duration:  song.Duration.Milliseconds(),
			StartTime: domain.FormatTimestamp(song.StartTime),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// ReadGameTracks reads a play order written by WriteGameTracks. Each song's
// reference is derived from its song ID, which is unique within a game.
func ReadGameTracks(r io.Reader) ([]*domain.Song, error) {
	var records []trackRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode game tracks: %w", err)
	}

	order := make([]*domain.Song, 0, len(records))
	for i, rec := range records {
		start, err := domain.ParseTimestamp(rec.StartTime)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i+1, err)
		}
		position := rec.Position
		if position == 0 {
			position = i + 1
		}
		order = append(order, &domain.Song{
			RefID:     strconv.FormatUint(rec.SongID, 10),
			ID:        rec.SongID,
			Title:     rec.Title,
			Artist:    rec.Artist,
			Album:     rec.Album,
			Filepath:  rec.Filepath,
			Duration:  time.Duration(rec.Duration) * time.Millisecond,
			Position:  position,
			StartTime: start,
		})
	}
	return order, nil
}
