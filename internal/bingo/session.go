package bingo

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/jaki95/music-bingo/internal/domain"
	"github.com/jaki95/music-bingo/internal/progress"
)

// Session holds the ticket generation state of a single game. The used-key
// set lives here, so keys never leak between games. A Session is not safe for
// concurrent use.
type Session struct {
	src            RandomSource
	order          []*domain.Song
	songsPerTicket int
	usedKeys       map[string]struct{}

	tracker  *progress.ProgressTracker
	accepted int
	total    int
}

// NewSession starts ticket generation for a game played in the given order.
func NewSession(src RandomSource, order []*domain.Song, songsPerTicket int) *Session {
	if src == nil {
		src = SecureSource()
	}
	return &Session{
		src:            src,
		order:          order,
		songsPerTicket: songsPerTicket,
		usedKeys:       make(map[string]struct{}),
	}
}

// SetProgress registers a tracker that is told about every accepted ticket.
func (s *Session) SetProgress(tracker *progress.ProgressTracker) {
	s.tracker = tracker
}

// UsedKeys returns the number of ticket keys currently registered.
func (s *Session) UsedKeys() int {
	return len(s.usedKeys)
}

// Compose draws a new ticket whose key has not been used in this game.
//
// Songs are drawn uniformly without replacement. If the finished ticket
// duplicates an existing one, the whole draw is discarded and repeated.
func (s *Session) Compose(ctx context.Context) (*domain.Ticket, error) {
	if s.songsPerTicket < 1 || s.songsPerTicket > len(s.order) {
		return nil, fmt.Errorf("%w: cannot put %d songs on a ticket from %d",
			ErrInvalidConfig, s.songsPerTicket, len(s.order))
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ticket := s.draw()
		k := keyString(ticket.Key)
		if _, used := s.usedKeys[k]; used {
			slog.Debug("ticket key collision, redrawing", "key", ticket.Key.String())
			continue
		}
		s.usedKeys[k] = struct{}{}
		return ticket, nil
	}
}

func (s *Session) draw() *domain.Ticket {
	picked := make(map[int]struct{}, s.songsPerTicket)
	songs := make([]*domain.Song, 0, s.songsPerTicket)
	key := big.NewInt(1)
	for len(songs) < s.songsPerTicket {
		idx := s.src.Intn(len(s.order))
		if _, dup := picked[idx]; dup {
			continue
		}
		picked[idx] = struct{}{}
		song := s.order[idx]
		songs = append(songs, song)
		key.Mul(key, new(big.Int).SetUint64(song.ID))
	}
	return &domain.Ticket{Songs: songs, Key: key}
}

// Release forgets a ticket's key so the same set of songs may be drawn again.
func (s *Session) Release(ticket *domain.Ticket) {
	delete(s.usedKeys, keyString(ticket.Key))
}

// GenerateAt composes count tickets that each win exactly fromEnd tracks
// before the end of the play order. Tickets that win elsewhere are released
// and redrawn.
//
// Termination is probabilistic. CheckOptions rejects configurations where a
// win position cannot hold enough distinct tickets.
func (s *Session) GenerateAt(ctx context.Context, count, fromEnd int) ([]*domain.Ticket, error) {
	target := len(s.order) - fromEnd
	tickets := make([]*domain.Ticket, 0, count)
	rejected := 0
	for len(tickets) < count {
		ticket, err := s.Compose(ctx)
		if err != nil {
			return nil, err
		}
		winPoint, err := WinPoint(s.order, ticket)
		if err != nil {
			return nil, err
		}
		if winPoint != target {
			s.Release(ticket)
			rejected++
			continue
		}
		tickets = append(tickets, ticket)
		s.accepted++
		if s.tracker != nil && s.total > 0 {
			s.tracker.UpdateTicketProgress(s.accepted, s.total)
		}
	}
	slog.Debug("generated tickets at point",
		"count", count,
		"fromEnd", fromEnd,
		"winPoint", target,
		"rejected", rejected)
	return tickets, nil
}

// WinPoint returns the 1-based position in order at which every song on the
// ticket has been played.
func WinPoint(order []*domain.Song, ticket *domain.Ticket) (int, error) {
	if len(ticket.Songs) == 0 {
		return 0, fmt.Errorf("%w: ticket has no songs", ErrConsistency)
	}
	pending := make(map[string]struct{}, len(ticket.Songs))
	for _, song := range ticket.Songs {
		pending[song.RefID] = struct{}{}
	}

	last := 0
	for i, song := range order {
		if _, ok := pending[song.RefID]; ok {
			delete(pending, song.RefID)
			last = i + 1
		}
		if len(pending) == 0 {
			break
		}
	}
	if len(pending) > 0 {
		return 0, fmt.Errorf("%w: ticket never wins, %d songs missing from play order",
			ErrConsistency, len(pending))
	}
	return last, nil
}

func keyString(key *big.Int) string {
	return string(key.Bytes())
}
