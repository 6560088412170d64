package bingo

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/jaki95/music-bingo/internal/domain"
	"github.com/jaki95/music-bingo/internal/primes"
)

const (
	// MinTickets is the smallest number of tickets that makes a game.
	MinTickets = 15
	// QuizMaxSongs is the number of countdown positions available in quiz mode.
	QuizMaxSongs = 50
)

// Options describes the game to generate.
type Options struct {
	GameID          string
	Title           string
	Mode            domain.GameMode
	Rows            int
	Columns         int
	NumberOfTickets int
	// PageOrder interleaves the numbered tickets so consecutive numbers are
	// printed on different pages.
	PageOrder bool

	// LeadIn and Transition are used to annotate start times on the play order.
	LeadIn     time.Duration
	Transition time.Duration
}

// SongsPerTicket returns the number of songs on each ticket.
func (o Options) SongsPerTicket() int {
	return o.Rows * o.Columns
}

// Combinations returns the number of ways of choosing selection items from
// total items, or 0 if selection > total.
func Combinations(total, selection int) *big.Int {
	if selection < 0 || selection > total {
		return big.NewInt(0)
	}
	return new(big.Int).Binomial(int64(total), int64(selection))
}

// MinSongs returns the smallest pool size allowed for the given ticket size.
func MinSongs(songsPerTicket int) int {
	return int(math.Ceil(1.5*float64(songsPerTicket) + 0.5))
}

// MaxSongs returns the largest pool size, bounded by the identity table.
func MaxSongs() int {
	return primes.Len()
}

// CheckOptions reports whether a game can be generated from opts and songs.
// It is deterministic and consumes no randomness.
func CheckOptions(opts Options, songs []*domain.Song) error {
	numSongs := len(songs)
	if numSongs == 0 {
		return fmt.Errorf("%w: song list cannot be empty", ErrInvalidConfig)
	}
	if opts.Mode == domain.ModeQuiz {
		if numSongs > QuizMaxSongs {
			return fmt.Errorf("%w: maximum number of songs for a quiz is %d", ErrInvalidConfig, QuizMaxSongs)
		}
		return nil
	}
	if opts.Mode != domain.ModeBingo {
		return fmt.Errorf("%w: invalid mode %q", ErrInvalidConfig, opts.Mode)
	}
	if strings.TrimSpace(opts.GameID) == "" {
		return fmt.Errorf("%w: game ID cannot be empty", ErrInvalidConfig)
	}
	if opts.Rows < 1 || opts.Columns < 1 {
		return fmt.Errorf("%w: ticket shape %dx%d is not valid", ErrInvalidConfig, opts.Rows, opts.Columns)
	}
	spt := opts.SongsPerTicket()
	if minSongs := MinSongs(spt); numSongs < minSongs {
		return fmt.Errorf("%w: at least %d songs are required", ErrInvalidConfig, minSongs)
	}
	if numSongs > MaxSongs() {
		return fmt.Errorf("%w: maximum number of songs is %d", ErrInvalidConfig, MaxSongs())
	}
	if opts.NumberOfTickets < MinTickets {
		return fmt.Errorf("%w: at least %d tickets are required", ErrInvalidConfig, MinTickets)
	}
	maxTickets := Combinations(numSongs, spt)
	if maxTickets.Cmp(big.NewInt(int64(opts.NumberOfTickets))) < 0 {
		return fmt.Errorf("%w: %d songs only allows %s tickets to be generated",
			ErrInvalidConfig, numSongs, maxTickets)
	}
	return checkTierCapacity(numSongs, spt, opts.NumberOfTickets)
}

// checkTierCapacity makes sure every win position the scheduler targets can
// hold the number of distinct tickets it needs. Only C(w-1, spt-1) distinct
// tickets complete exactly at track w.
func checkTierCapacity(numSongs, spt, total int) error {
	plan := planTiers(total)
	for _, d := range plan.demand() {
		winAt := numSongs - d.fromEnd
		capacity := Combinations(winAt-1, spt-1)
		if capacity.Cmp(big.NewInt(int64(d.count))) < 0 {
			return fmt.Errorf("%w: %d songs cannot produce %d tickets winning at track %d",
				ErrInvalidConfig, numSongs, d.count, winAt)
		}
	}
	return nil
}
