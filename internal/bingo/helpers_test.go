package bingo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jaki95/music-bingo/internal/domain"
)

// seededSource is a deterministic RandomSource that counts its draws.
type seededSource struct {
	rng   *rand.Rand
	calls int
}

func newSeededSource(seed uint64) *seededSource {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed*31+7))}
}

func (s *seededSource) Intn(n int) int {
	s.calls++
	return s.rng.IntN(n)
}

func makeSongs(n int) []*domain.Song {
	songs := make([]*domain.Song, n)
	for i := range songs {
		songs[i] = &domain.Song{
			RefID:    fmt.Sprintf("song-%03d", i+1),
			Title:    fmt.Sprintf("Title %d", i+1),
			Artist:   fmt.Sprintf("Artist %d", i+1),
			Duration: 30 * time.Second,
		}
	}
	return songs
}

func bingoOptions(rows, columns, tickets int) Options {
	return Options{
		GameID:          "BBC-01",
		Title:           "Test Game",
		Mode:            domain.ModeBingo,
		Rows:            rows,
		Columns:         columns,
		NumberOfTickets: tickets,
	}
}

func ticketNumbers(tickets []*domain.Ticket) []int {
	out := make([]int, len(tickets))
	for i, t := range tickets {
		out[i] = t.Number
	}
	return out
}
