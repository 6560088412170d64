package domain

import (
	"math/big"
	"time"
)

// Song represents one clip in a game's song pool.
type Song struct {
	// RefID is the stable reference identity of the song within its pool.
	RefID string
	// ID is the prime number assigned to the song for the current game.
	// Zero means no identity has been assigned yet.
	ID       uint64
	Title    string
	Artist   string
	Album    string
	Filepath string
	Duration time.Duration

	// Position and StartTime are filled in once the play order is fixed.
	Position  int
	StartTime time.Duration
}

// Ticket is a bingo card holding a fixed number of distinct songs.
type Ticket struct {
	Songs []*Song
	// Key is the product of the song IDs on the ticket. Two tickets share a
	// key only when they hold the same set of songs.
	Key *big.Int
	// Number is the printed ticket number, 0 until the tickets are numbered.
	Number int
}
