package bingo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/music-bingo/internal/domain"
	"github.com/jaki95/music-bingo/internal/progress"
)

func TestGenerateEndToEnd(t *testing.T) {
	songs := makeSongs(17)
	opts := bingoOptions(2, 3, 15)
	opts.PageOrder = true
	tracker := progress.NewProgressTracker()
	var last progress.Event
	tracker.AddListener(func(event progress.Event) {
		last = event
	})

	game, err := NewGenerator(opts, newSeededSource(11), tracker).Generate(context.Background(), songs)
	require.NoError(t, err)

	assert.Equal(t, "BBC-01", game.ID)
	assert.Len(t, game.Order, 17)
	assert.Len(t, game.Tickets, 15)
	assert.ElementsMatch(t, songs, game.Order)

	numbers := make(map[int]bool)
	keys := make(map[string]bool)
	for _, ticket := range game.Tickets {
		assert.False(t, numbers[ticket.Number])
		numbers[ticket.Number] = true
		assert.False(t, keys[ticket.Key.String()])
		keys[ticket.Key.String()] = true
	}
	for n := 1; n <= 15; n++ {
		assert.True(t, numbers[n], "ticket %d missing", n)
	}

	results, err := Results(game.Order, game.Tickets)
	require.NoError(t, err)
	require.Len(t, results, 15)
	lastTrack := 0
	for i, r := range results {
		assert.Equal(t, i+1, r.TicketNumber)
		assert.Equal(t, game.Order[r.WinPoint-1], r.Song)
		if r.WinPoint == len(game.Order) {
			lastTrack++
		}
	}
	assert.Equal(t, 7, lastTrack)

	assert.Equal(t, progress.StageComplete, tracker.GetCurrentState().Stage)
	assert.Equal(t, progress.StageComplete, last.Stage)
	assert.JSONEq(t, `{"gameID":"BBC-01","mode":"bingo","songs":17,"tickets":15}`, string(last.Data))
}

func TestGenerateEmptyPoolDrawsNothing(t *testing.T) {
	src := newSeededSource(12)
	tracker := progress.NewProgressTracker()

	game, err := NewGenerator(bingoOptions(3, 5, 15), src, tracker).Generate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, game)
	assert.Zero(t, src.calls)
	assert.Equal(t, progress.StageError, tracker.GetCurrentState().Stage)
}

func TestGenerateInvalidConfigDrawsNothing(t *testing.T) {
	src := newSeededSource(13)
	_, err := NewGenerator(bingoOptions(3, 5, 15), src, nil).Generate(context.Background(), makeSongs(20))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Zero(t, src.calls)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tracker := progress.NewProgressTracker()
	game, err := NewGenerator(bingoOptions(2, 3, 15), newSeededSource(14), tracker).Generate(ctx, makeSongs(17))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, game)
	assert.NotEqual(t, progress.StageError, tracker.GetCurrentState().Stage)
}

func TestGenerateQuiz(t *testing.T) {
	songs := makeSongs(10)
	opts := Options{
		Mode:       domain.ModeQuiz,
		LeadIn:     5 * time.Second,
		Transition: time.Second,
	}

	game, err := NewGenerator(opts, newSeededSource(15), nil).Generate(context.Background(), songs)
	require.NoError(t, err)
	assert.Empty(t, game.Tickets)
	assert.Equal(t, songs, game.Order)
	assert.Equal(t, 10, game.Order[9].Position)
	// 5s lead-in, then nine 30s songs each followed by a 1s transition.
	assert.Equal(t, 5*time.Second+9*31*time.Second, game.Order[9].StartTime)
}

func TestPlayOrder(t *testing.T) {
	songs := makeSongs(20)
	original := append([]*domain.Song(nil), songs...)

	order := PlayOrder(newSeededSource(16), songs, domain.ModeBingo)
	assert.Equal(t, original, songs, "input must not be reordered")
	assert.ElementsMatch(t, songs, order)
	assert.NotEqual(t, songs, order)

	assert.Equal(t, songs, PlayOrder(newSeededSource(16), songs, domain.ModeQuiz))
}

func TestAnnotateStartTimes(t *testing.T) {
	order := makeSongs(3)
	AnnotateStartTimes(order, 10*time.Second, time.Second)

	assert.Equal(t, []int{1, 2, 3}, []int{order[0].Position, order[1].Position, order[2].Position})
	assert.Equal(t, 10*time.Second, order[0].StartTime)
	assert.Equal(t, 41*time.Second, order[1].StartTime)
	assert.Equal(t, 72*time.Second, order[2].StartTime)
}
