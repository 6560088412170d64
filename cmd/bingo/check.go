package main

import (
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaki95/music-bingo/internal/bingo"
	"github.com/jaki95/music-bingo/internal/domain"
	"github.com/jaki95/music-bingo/internal/storage"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var afterTrack int

	cmd := &cobra.Command{
		Use:   "check <game-id> <ticket-number>",
		Short: "Show the songs on a ticket and when it wins",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil || number < 1 {
				return fmt.Errorf("invalid ticket number %q", args[1])
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := storage.New(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			check, err := checkTicket(cmd.Context(), store, args[0], number, afterTrack)
			if err != nil {
				return err
			}
			printCheck(cmd.OutOrStdout(), check, afterTrack)
			return nil
		},
	}

	cmd.Flags().IntVar(&afterTrack, "after", 0, "Report whether the ticket has won after this many tracks")

	return cmd
}

func checkTicket(ctx context.Context, store storage.Storage, gameID string, number, afterTrack int) (*bingo.Check, error) {
	if err := requireGameFiles(ctx, store, gameID); err != nil {
		return nil, err
	}

	var entries []bingo.CheckerEntry
	if err := readFile(ctx, store, path.Join(gameID, bingo.CheckerFileName), func(r io.Reader) error {
		var err error
		entries, err = bingo.ParseChecker(r)
		return err
	}); err != nil {
		return nil, err
	}

	var order []*domain.Song
	if err := readFile(ctx, store, path.Join(gameID, bingo.TracksFileName), func(r io.Reader) error {
		var err error
		order, err = bingo.ReadGameTracks(r)
		return err
	}); err != nil {
		return nil, err
	}

	return bingo.CheckTicket(entries, order, number, afterTrack)
}

// requireGameFiles reports which files are missing when gameID is not a
// complete bingo game.
func requireGameFiles(ctx context.Context, store storage.Storage, gameID string) error {
	files, err := store.ListFiles(ctx, gameID)
	if err != nil || len(files) == 0 {
		return fmt.Errorf("game %s not found at %s", gameID, store.Location(gameID))
	}
	for _, name := range []string{bingo.CheckerFileName, bingo.TracksFileName} {
		if !slices.Contains(files, path.Join(gameID, name)) {
			return fmt.Errorf("game %s has no %s file (found: %s)",
				gameID, name, strings.Join(files, ", "))
		}
	}
	return nil
}

func readFile(ctx context.Context, store storage.Storage, name string, read func(io.Reader) error) error {
	r, err := store.GetReader(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer r.Close()
	if err := read(r); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

func printCheck(out io.Writer, check *bingo.Check, afterTrack int) {
	rows := make([][]string, 0, len(check.Songs))
	for _, song := range check.Songs {
		marker := ""
		if song.Position == check.WinPoint {
			marker = "*"
		}
		rows = append(rows, []string{
			fmt.Sprint(song.Position),
			domain.FormatTimestamp(song.StartTime),
			song.Title,
			song.Artist,
			marker,
		})
	}
	fmt.Fprintln(out, renderTable(fmt.Sprintf("Ticket %d", check.TicketNumber),
		[]column{colTrack, colStart, colTitle, colArtist, {header: "Wins"}}, rows))

	fmt.Fprintf(out, "Ticket %d wins on track %d: %s - %s (%s)\n",
		check.TicketNumber, check.WinPoint, check.Song.Title, check.Song.Artist,
		domain.FormatTimestamp(check.Song.StartTime))
	if afterTrack > 0 {
		if check.Won {
			fmt.Fprintf(out, "Ticket %d has won after track %d\n", check.TicketNumber, afterTrack)
		} else {
			fmt.Fprintf(out, "Ticket %d has not won after track %d\n", check.TicketNumber, afterTrack)
		}
	}
}
