package bingo

import (
	"slices"

	"github.com/jaki95/music-bingo/internal/domain"
)

// Result records when a ticket wins.
type Result struct {
	TicketNumber int
	Key          string
	// WinPoint is the 1-based track number that completes the ticket.
	WinPoint int
	Song     *domain.Song
}

// Results computes the win point of every ticket, sorted by ticket number.
func Results(order []*domain.Song, tickets []*domain.Ticket) ([]Result, error) {
	results := make([]Result, 0, len(tickets))
	for _, ticket := range tickets {
		winPoint, err := WinPoint(order, ticket)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			TicketNumber: ticket.Number,
			Key:          ticket.Key.String(),
			WinPoint:     winPoint,
			Song:         order[winPoint-1],
		})
	}
	slices.SortFunc(results, func(a, b Result) int {
		return a.TicketNumber - b.TicketNumber
	})
	return results, nil
}
