package bingo

import (
	"fmt"

	"github.com/jaki95/music-bingo/internal/domain"
	"github.com/jaki95/music-bingo/internal/primes"
)

// AssignSongIDs gives every song a distinct prime, taken in order from the
// prime table. Because the IDs are distinct primes, the product of the IDs on
// a ticket identifies its set of songs exactly.
func AssignSongIDs(songs []*domain.Song) error {
	if len(songs) > primes.Len() {
		return fmt.Errorf("%w: exceeded the %d song limit", ErrInvalidConfig, primes.Len())
	}
	for i, song := range songs {
		song.ID = primes.At(i)
	}
	return nil
}
