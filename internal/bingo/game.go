// Package bingo generates music bingo games: a randomised play order and a
// set of distinct tickets whose winning moments are spread over the last few
// songs of the game.
package bingo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jaki95/music-bingo/internal/domain"
	"github.com/jaki95/music-bingo/internal/progress"
)

// Game is the result of one generation run.
type Game struct {
	ID    string
	Title string
	Mode  domain.GameMode
	// Order is the play order, annotated with positions and start times.
	Order []*domain.Song
	// Tickets are numbered 1..n and listed in print order. Quiz games have none.
	Tickets []*domain.Ticket
}

// Generator builds games from a song pool.
type Generator struct {
	opts    Options
	src     RandomSource
	tracker *progress.ProgressTracker
}

// NewGenerator creates a Generator. A nil src uses SecureSource and a nil
// tracker disables progress reporting.
func NewGenerator(opts Options, src RandomSource, tracker *progress.ProgressTracker) *Generator {
	if src == nil {
		src = SecureSource()
	}
	return &Generator{
		opts:    opts,
		src:     src,
		tracker: tracker,
	}
}

// Generate validates the options, assigns song identities, fixes the play
// order and, for bingo games, generates the tickets. The songs are updated in
// place with their identity, position and start time.
//
// Configuration problems are reported as ErrInvalidConfig before any random
// draw. If ctx is cancelled, Generate returns ctx.Err() and no game.
func (g *Generator) Generate(ctx context.Context, songs []*domain.Song) (*Game, error) {
	g.update(progress.StageValidating, 0, "Checking game options")
	if err := CheckOptions(g.opts, songs); err != nil {
		g.fail(err)
		return nil, err
	}

	pool := slices.Clone(songs)
	if err := AssignSongIDs(pool); err != nil {
		g.fail(err)
		return nil, fmt.Errorf("failed to assign song IDs: %w", err)
	}

	g.update(progress.StageOrdering, 0, "Generating play order")
	order := PlayOrder(g.src, pool, g.opts.Mode)
	AnnotateStartTimes(order, g.opts.LeadIn, g.opts.Transition)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slog.Debug("play order fixed", "songs", len(order), "mode", g.opts.Mode)

	game := &Game{
		ID:    g.opts.GameID,
		Title: g.opts.Title,
		Mode:  g.opts.Mode,
		Order: order,
	}
	if g.opts.Mode != domain.ModeBingo {
		g.complete(game)
		return game, nil
	}

	g.update(progress.StageGenerating, 0, "Calculating tickets")
	session := NewSession(g.src, order, g.opts.SongsPerTicket())
	session.SetProgress(g.tracker)
	tickets, err := session.GenerateAll(ctx, g.opts.NumberOfTickets, g.opts.PageOrder)
	if err != nil {
		if ctx.Err() == nil {
			g.fail(err)
		}
		return nil, err
	}
	game.Tickets = tickets

	g.complete(game)
	slog.Info("game generated",
		"gameID", game.ID,
		"songs", len(order),
		"tickets", len(tickets))
	return game, nil
}

func (g *Generator) update(stage progress.Stage, pct float64, message string) {
	if g.tracker != nil {
		g.tracker.UpdateProgress(stage, pct, message, nil)
	}
}

// gameSummary is attached to the completion event.
type gameSummary struct {
	GameID  string          `json:"gameID"`
	Mode    domain.GameMode `json:"mode"`
	Songs   int             `json:"songs"`
	Tickets int             `json:"tickets"`
}

func (g *Generator) complete(game *Game) {
	if g.tracker == nil {
		return
	}
	data, err := json.Marshal(gameSummary{
		GameID:  game.ID,
		Mode:    game.Mode,
		Songs:   len(game.Order),
		Tickets: len(game.Tickets),
	})
	if err != nil {
		slog.Warn("failed to encode game summary", "error", err)
	}
	g.tracker.UpdateProgress(progress.StageComplete, 100, "Game generated", data)
}

func (g *Generator) fail(err error) {
	if g.tracker != nil {
		g.tracker.SetError(err)
	}
}
