package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaki95/music-bingo/internal/bingo"
	"github.com/jaki95/music-bingo/internal/domain"
	"github.com/jaki95/music-bingo/internal/progress"
	"github.com/jaki95/music-bingo/internal/songlist"
	"github.com/jaki95/music-bingo/internal/storage"
)

// gameIDLayout is used for the default game ID, today's date as YY-MM-DD.
const gameIDLayout = "06-01-02"

type generateFlags struct {
	songs     string
	gameID    string
	title     string
	mode      string
	rows      int
	columns   int
	tickets   int
	pageOrder bool
	force     bool
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a game from a song list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, ctx, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.songs, "songs", "s", "", "Song list file (.yaml or .csv)")
	cmd.Flags().StringVar(&flags.gameID, "game-id", "", "Game ID (defaults to today's date)")
	cmd.Flags().StringVar(&flags.title, "title", "", "Game title")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "Game mode: bingo or quiz")
	cmd.Flags().IntVar(&flags.rows, "rows", 0, "Rows per ticket")
	cmd.Flags().IntVar(&flags.columns, "columns", 0, "Columns per ticket")
	cmd.Flags().IntVarP(&flags.tickets, "tickets", "n", 0, "Number of tickets")
	cmd.Flags().BoolVar(&flags.pageOrder, "page-order", true, "Interleave ticket numbers across pages")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing game")

	return cmd
}

func runGenerate(cmd *cobra.Command, ctx *commandContext, flags *generateFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("songs") {
		cfg.Songs = flags.songs
	}
	if f.Changed("game-id") {
		cfg.Game.ID = flags.gameID
	}
	if f.Changed("title") {
		cfg.Game.Title = flags.title
	}
	if f.Changed("mode") {
		cfg.Game.Mode = flags.mode
	}
	if f.Changed("rows") {
		cfg.Game.Rows = flags.rows
	}
	if f.Changed("columns") {
		cfg.Game.Columns = flags.columns
	}
	if f.Changed("tickets") {
		cfg.Game.NumberOfTickets = flags.tickets
	}
	if f.Changed("page-order") {
		cfg.Game.PageOrder = &flags.pageOrder
	}
	if cfg.Songs == "" {
		return errors.New("no song list given, use --songs or set songs in the config file")
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if opts.Mode == domain.ModeClip {
		return fmt.Errorf("%w: clip extraction is not a game mode", bingo.ErrInvalidConfig)
	}
	if opts.GameID == "" {
		opts.GameID = time.Now().Format(gameIDLayout)
	}

	runCtx := cmd.Context()
	songs, err := songlist.NewImporter().Import(runCtx, cfg.Songs)
	if err != nil {
		return fmt.Errorf("failed to import songs: %w", err)
	}

	store, err := storage.New(runCtx, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	if !flags.force && store.FileExists(runCtx, path.Join(opts.GameID, bingo.TracksFileName)) {
		return fmt.Errorf("game %s already exists at %s, use --force to replace it",
			opts.GameID, store.Location(opts.GameID))
	}

	tracker := progress.NewProgressTracker()
	errOut := cmd.ErrOrStderr()
	listener := newProgressListener(errOut == io.Writer(os.Stderr) && stderrIsTerminal(), errOut)
	tracker.AddListener(listener)
	defer tracker.RemoveListener(listener)

	game, err := bingo.NewGenerator(opts, nil, tracker).Generate(runCtx, songs)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("generation cancelled", "gameID", opts.GameID)
		}
		return err
	}

	tracker.UpdateProgress(progress.StageWriting, 0, "Writing game files", nil)
	written, err := writeGame(runCtx, store, game)
	if err != nil {
		tracker.SetError(err)
		return err
	}
	locations := make([]string, 0, len(written))
	for _, name := range written {
		locations = append(locations, store.Location(name))
	}
	data, err := json.Marshal(map[string][]string{"files": locations})
	if err != nil {
		return err
	}
	tracker.UpdateProgress(progress.StageWriting, 100, "Game files written", data)

	return printGame(cmd.OutOrStdout(), game)
}

// writeGame stores the ticket checker file (bingo games only) and then the
// play order under the game's ID. The play order marks a complete game, so it
// is written last and the checker file is removed again if it cannot be saved.
func writeGame(ctx context.Context, store storage.Storage, game *bingo.Game) ([]string, error) {
	var written []string

	if game.Mode == domain.ModeBingo {
		checkerName := path.Join(game.ID, bingo.CheckerFileName)
		if err := writeFile(ctx, store, checkerName, func(w io.Writer) error {
			return bingo.WriteChecker(w, game.Tickets)
		}); err != nil {
			return nil, err
		}
		written = append(written, checkerName)
	}

	tracksName := path.Join(game.ID, bingo.TracksFileName)
	if err := writeFile(ctx, store, tracksName, func(w io.Writer) error {
		return bingo.WriteGameTracks(w, game.Order)
	}); err != nil {
		for _, name := range written {
			// The caller's context may already be cancelled.
			if rmErr := store.Remove(context.WithoutCancel(ctx), name); rmErr != nil {
				slog.Warn("failed to remove partial game file", "name", name, "error", rmErr)
			}
		}
		return nil, err
	}
	return append(written, tracksName), nil
}

func writeFile(ctx context.Context, store storage.Storage, name string, write func(io.Writer) error) error {
	w, err := store.GetWriter(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	if err := write(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

func printGame(out io.Writer, game *bingo.Game) error {
	if game.Mode != domain.ModeBingo {
		rows := make([][]string, 0, len(game.Order))
		for _, song := range game.Order {
			rows = append(rows, []string{
				fmt.Sprint(song.Position),
				domain.FormatTimestamp(song.StartTime),
				song.Title,
				song.Artist,
			})
		}
		fmt.Fprintln(out, renderTable("", []column{colTrack, colStart, colTitle, colArtist}, rows))
		return nil
	}

	results, err := bingo.Results(game.Order, game.Tickets)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			fmt.Sprint(r.TicketNumber),
			fmt.Sprint(r.WinPoint),
			domain.FormatTimestamp(r.Song.StartTime),
			r.Song.Title,
			r.Song.Artist,
		})
	}
	fmt.Fprintf(out, "Game %s: %d songs, %d tickets\n", game.ID, len(game.Order), len(game.Tickets))
	fmt.Fprintln(out, renderTable("", []column{
		{header: "Ticket", numeric: true},
		{header: "Wins at", numeric: true},
		colStart,
		colTitle,
		colArtist,
	}, rows))
	return nil
}
