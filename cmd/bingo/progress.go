package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/k0kubun/go-ansi"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/jaki95/music-bingo/internal/progress"
)

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newProgressListener draws a progress bar for ticket generation when stderr
// is a terminal and writes one JSON event per line to out otherwise.
func newProgressListener(interactive bool, out io.Writer) func(progress.Event) {
	if !interactive {
		return (&eventWriter{out: out}).handle
	}
	return (&barRenderer{out: ansi.NewAnsiStderr()}).handle
}

type eventWriter struct {
	out io.Writer
}

func (w *eventWriter) handle(event progress.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to encode progress event", "stage", event.Stage, "error", err)
		return
	}
	fmt.Fprintf(w.out, "%s\n", data)
}

type barRenderer struct {
	out   io.Writer
	bar   *progressbar.ProgressBar
	stage progress.Stage
}

func (r *barRenderer) handle(event progress.Event) {
	if event.TicketDetails != nil {
		if r.bar == nil {
			r.bar = progressbar.NewOptions(
				event.TicketDetails.Total,
				progressbar.OptionSetWriter(r.out),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetTheme(progressbar.ThemeASCII),
				progressbar.OptionFullWidth(),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan][2/2][reset] Generating tickets..."),
			)
		}
		_ = r.bar.Set(event.TicketDetails.Generated)
		return
	}

	if event.Stage == r.stage {
		return
	}
	r.stage = event.Stage
	switch event.Stage {
	case progress.StageOrdering:
		fmt.Fprintln(r.out, "[1/2] "+event.Message+"...")
	case progress.StageComplete, progress.StageError:
		if r.bar != nil {
			_ = r.bar.Finish()
			fmt.Fprintln(r.out)
		}
	}
}
