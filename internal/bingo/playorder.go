package bingo

import (
	"slices"
	"time"

	"github.com/jaki95/music-bingo/internal/domain"
)

// PlayOrder returns the order in which the songs are played. Bingo games are
// shuffled; quiz games keep the pool order. The input slice is not modified.
func PlayOrder(src RandomSource, songs []*domain.Song, mode domain.GameMode) []*domain.Song {
	order := slices.Clone(songs)
	if mode != domain.ModeQuiz {
		shuffle(src, order)
	}
	return order
}

// AnnotateStartTimes sets the 1-based position and start time of every song
// in the play order. A leadIn precedes the first song and a transition sits
// between consecutive songs.
func AnnotateStartTimes(order []*domain.Song, leadIn, transition time.Duration) {
	at := leadIn
	for i, song := range order {
		if i > 0 {
			at += transition
		}
		song.Position = i + 1
		song.StartTime = at
		at += song.Duration
	}
}
