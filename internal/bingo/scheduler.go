package bingo

import (
	"context"
	"log/slog"
	"slices"

	"github.com/jaki95/music-bingo/internal/domain"
	"github.com/jaki95/music-bingo/internal/progress"
)

const (
	decayRate = 0.65
	// spreadTickets win shortly before the near-end tiers and are scattered
	// across the whole ticket list.
	spreadTickets = 4
)

// tierPlan is how many tickets win at each of the last few tracks.
type tierPlan struct {
	onLast     int
	secondLast int
	thirdLast  int
	fourthLast int
	// spreadFrom is the distance from the end of the first spread ticket.
	spreadFrom int
}

type tierDemand struct {
	fromEnd int
	count   int
}

// planTiers splits total tickets into tiers that decay by decayRate away
// from the last track. When the fourth tier would hold a single ticket it is
// folded into the last tier and the spread tickets move one track closer.
func planTiers(total int) tierPlan {
	t := float64(total)
	onLast := t * decayRate
	secondLast := (t - onLast) * decayRate
	thirdLast := (t - onLast - secondLast) * decayRate
	fourthLast := (t - onLast - secondLast - thirdLast) * decayRate

	plan := tierPlan{
		onLast:     int(onLast),
		secondLast: int(secondLast),
		thirdLast:  int(thirdLast),
		fourthLast: max(int(fourthLast), 1),
		spreadFrom: 4,
	}
	left := total - plan.onLast - plan.secondLast - plan.thirdLast - plan.fourthLast
	if plan.fourthLast <= 1 {
		plan.spreadFrom = 3
		plan.fourthLast = 0
		plan.onLast++
	}
	if left != spreadTickets {
		plan.onLast -= spreadTickets - left
	}
	return plan
}

// demand lists the number of tickets needed at each distance from the end.
func (p tierPlan) demand() []tierDemand {
	var out []tierDemand
	for fromEnd, count := range []int{p.onLast, p.secondLast, p.thirdLast, p.fourthLast} {
		if count > 0 {
			out = append(out, tierDemand{fromEnd: fromEnd, count: count})
		}
	}
	for i := 0; i < spreadTickets; i++ {
		out = append(out, tierDemand{fromEnd: p.spreadFrom + i, count: 1})
	}
	return out
}

// GenerateAll produces total tickets, numbers them 1..total and returns them
// in print order.
//
// Most tickets win on the last track, with decaying numbers winning on each
// of the three tracks before it. Each tier is inserted at random offsets so
// ticket numbers do not reveal when a ticket wins. If ctx is cancelled the
// partial ticket list is discarded and ctx.Err() is returned.
func (s *Session) GenerateAll(ctx context.Context, total int, pageOrder bool) ([]*domain.Ticket, error) {
	clear(s.usedKeys)
	s.accepted = 0
	s.total = total

	plan := planTiers(total)
	slog.Debug("ticket tiers",
		"total", total,
		"onLast", plan.onLast,
		"secondLast", plan.secondLast,
		"thirdLast", plan.thirdLast,
		"fourthLast", plan.fourthLast,
		"spreadFrom", plan.spreadFrom)

	s.report(0, "Calculating tickets")
	tickets, err := s.GenerateAt(ctx, plan.onLast, 0)
	if err != nil {
		return nil, err
	}

	for fromEnd, count := range []int{1: plan.secondLast, 2: plan.thirdLast, 3: plan.fourthLast} {
		if count == 0 {
			continue
		}
		tickets, err = s.insertRandom(ctx, tickets, fromEnd, count, plan.onLast)
		if err != nil {
			return nil, err
		}
	}

	spread := make([]*domain.Ticket, 0, spreadTickets)
	for i := 0; i < spreadTickets; i++ {
		generated, err := s.GenerateAt(ctx, 1, plan.spreadFrom+i)
		if err != nil {
			return nil, err
		}
		spread = append(spread, generated...)
	}
	shuffle(s.src, spread)
	tickets = insertAll(tickets, spreadInsertPoints(s.src, len(tickets), total), spread)

	for i, ticket := range tickets {
		ticket.Number = i + 1
	}
	s.report(100, "Tickets numbered")
	slog.Info("generated tickets", "count", len(tickets), "usedKeys", len(s.usedKeys))

	if pageOrder {
		return SortByPage(tickets), nil
	}
	return tickets, nil
}

// insertRandom generates count tickets winning fromEnd tracks before the end
// and inserts them at tierInsertPoints.
func (s *Session) insertRandom(ctx context.Context, tickets []*domain.Ticket, fromEnd, count, onLast int) ([]*domain.Ticket, error) {
	points := tierInsertPoints(s.src, len(tickets), count, onLast)
	generated, err := s.GenerateAt(ctx, count, fromEnd)
	if err != nil {
		return nil, err
	}
	return insertAll(tickets, points, generated), nil
}

// tierInsertPoints picks where each of count tickets is inserted, one at a
// time, into a list of size tickets. The grown list is split into count
// equal-width windows and each ticket lands in its own window, but never past
// onLast+count-1 or the current end of the list.
func tierInsertPoints(src RandomSource, size, count, onLast int) []int {
	increment := float64(size+count) / float64(count)
	start := 0.0
	points := make([]int, 0, count)
	for i := 0; i < count; i++ {
		lo, hi := window(start, increment)
		point := randRange(src, lo, hi)
		if point >= onLast+count {
			point = onLast + count - 1
		}
		points = append(points, min(point, size+i))
		start += increment
	}
	return points
}

// spreadInsertPoints picks where each spread ticket is inserted into a list
// of size tickets. Windows are total/spreadTickets wide and no point passes
// total-1 or the current end of the list.
func spreadInsertPoints(src RandomSource, size, total int) []int {
	increment := float64(total) / float64(spreadTickets)
	start := 0.0
	points := make([]int, 0, spreadTickets)
	for i := 0; i < spreadTickets; i++ {
		lo, hi := window(start, increment)
		points = append(points, min(randRange(src, lo, hi), total-1, size+i))
		start += increment
	}
	return points
}

// insertAll inserts items[i] at points[i], in order, so each point refers to
// the list as grown by the previous insertions.
func insertAll(tickets []*domain.Ticket, points []int, items []*domain.Ticket) []*domain.Ticket {
	for i, item := range items {
		tickets = slices.Insert(tickets, points[i], item)
	}
	return tickets
}

func (s *Session) report(pct float64, message string) {
	if s.tracker != nil {
		s.tracker.UpdateProgress(progress.StageGenerating, pct, message, nil)
	}
}

// SortByPage interleaves numbered tickets so that tickets with neighbouring
// numbers land on different printed pages. The list is split into three bands
// of ceil(n/3), floor(n/3) and the remainder, which are then taken in turn.
func SortByPage(tickets []*domain.Ticket) []*domain.Ticket {
	n := len(tickets)
	first := (n + 2) / 3
	second := n / 3
	bands := [][]*domain.Ticket{
		tickets[:first],
		tickets[first : first+second],
		tickets[first+second:],
	}

	out := make([]*domain.Ticket, 0, n)
	for i := 0; i < first; i++ {
		for _, band := range bands {
			if i < len(band) {
				out = append(out, band[i])
			}
		}
	}
	return out
}
