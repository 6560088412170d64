package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jaki95/music-bingo/internal/bingo"
)

func newCombinationsCommand(ctx *commandContext) *cobra.Command {
	var rows, columns int

	cmd := &cobra.Command{
		Use:   "combinations <songs>",
		Short: "Show how many distinct tickets a song pool allows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songs, err := strconv.Atoi(args[0])
			if err != nil || songs < 1 {
				return fmt.Errorf("invalid number of songs %q", args[0])
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("rows") {
				rows = cfg.Game.Rows
			}
			if !cmd.Flags().Changed("columns") {
				columns = cfg.Game.Columns
			}
			if rows < 1 || columns < 1 {
				return fmt.Errorf("%w: ticket shape %dx%d is not valid", bingo.ErrInvalidConfig, rows, columns)
			}

			spt := rows * columns
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%dx%d tickets (%d songs each)\n", rows, columns, spt)
			fmt.Fprintf(out, "Minimum songs: %d\n", bingo.MinSongs(spt))
			fmt.Fprintf(out, "Maximum tickets from %d songs: %s\n", songs, bingo.Combinations(songs, spt))
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 0, "Rows per ticket")
	cmd.Flags().IntVar(&columns, "columns", 0, "Columns per ticket")

	return cmd
}
