package bingo

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/jaki95/music-bingo/internal/domain"
)

// CheckerFileName is the name of the ticket checker file in a game's output.
const CheckerFileName = "ticketTracks"

// CheckerEntry is one line of the ticket checker file.
type CheckerEntry struct {
	Number int
	Key    *big.Int
}

// WriteChecker writes one "ticketNumber/ticketKey" line per ticket, in the
// order given.
func WriteChecker(w io.Writer, tickets []*domain.Ticket) error {
	bw := bufio.NewWriter(w)
	for _, ticket := range tickets {
		if _, err := fmt.Fprintf(bw, "%d/%s\n", ticket.Number, ticket.Key.String()); err != nil {
			return fmt.Errorf("failed to write ticket %d: %w", ticket.Number, err)
		}
	}
	return bw.Flush()
}

// ParseChecker reads a ticket checker file. Blank lines are ignored.
func ParseChecker(r io.Reader) ([]CheckerEntry, error) {
	var entries []CheckerEntry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		number, key, ok := strings.Cut(text, "/")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing separator", ErrMalformedChecker, line)
		}
		n, err := strconv.Atoi(number)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: line %d: invalid ticket number %q", ErrMalformedChecker, line, number)
		}
		k, ok := new(big.Int).SetString(key, 10)
		if !ok || k.Sign() <= 0 {
			return nil, fmt.Errorf("%w: line %d: invalid ticket key %q", ErrMalformedChecker, line, key)
		}
		entries = append(entries, CheckerEntry{Number: n, Key: k})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checker file: %w", err)
	}
	return entries, nil
}

// FactorKey recovers the songs of a ticket from its key by dividing out the
// song IDs. A factor left over means the key does not belong to these songs.
func FactorKey(key *big.Int, songs []*domain.Song) ([]*domain.Song, error) {
	rest := new(big.Int).Set(key)
	var found []*domain.Song
	var quo, rem big.Int
	for _, song := range songs {
		if song.ID < 2 {
			continue
		}
		id := new(big.Int).SetUint64(song.ID)
		quo.QuoRem(rest, id, &rem)
		if rem.Sign() == 0 {
			found = append(found, song)
			rest.Set(&quo)
		}
	}
	if rest.Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("%w: key %s has unknown factor %s", ErrConsistency, key, rest)
	}
	return found, nil
}

// Check describes a single ticket looked up in a finished game.
type Check struct {
	Result
	Songs []*domain.Song
	// Won reports whether the ticket is complete after the given track.
	Won bool
}

// CheckTicket finds ticket number in entries, recovers its songs from order
// and reports when it wins. afterTrack is the number of tracks played so far;
// zero means the whole game.
func CheckTicket(entries []CheckerEntry, order []*domain.Song, number, afterTrack int) (*Check, error) {
	idx := -1
	for i, entry := range entries {
		if entry.Number == number {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTicket, number)
	}
	entry := entries[idx]

	songs, err := FactorKey(entry.Key, order)
	if err != nil {
		return nil, err
	}
	ticket := &domain.Ticket{Songs: songs, Key: entry.Key, Number: entry.Number}
	winPoint, err := WinPoint(order, ticket)
	if err != nil {
		return nil, err
	}
	if afterTrack <= 0 {
		afterTrack = len(order)
	}
	return &Check{
		Result: Result{
			TicketNumber: entry.Number,
			Key:          entry.Key.String(),
			WinPoint:     winPoint,
			Song:         order[winPoint-1],
		},
		Songs: songs,
		Won:   winPoint <= afterTrack,
	}, nil
}
