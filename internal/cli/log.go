package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/gridastar/astar"
)

// newLogger creates a logger that prints "HH:MM:SS.ms" timestamps. Commands
// tag their records with the lattice they search, see latticeLogger.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the microsecond.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", p.elapsed())
	p.logger.Info(msg, keyvals...)
}

// searched logs the outcome of e. A halted search is a warning carrying the
// engine error; otherwise the path cost is reported when one was found.
func (p *progress) searched(e *astar.Engine) {
	keyvals := []any{"state", e.State(), "steps", e.Steps()}
	switch e.State() {
	case astar.Halted:
		p.logger.Warn("search halted", append(keyvals, "err", e.Err(), "elapsed", p.elapsed())...)
		return
	case astar.Found:
		keyvals = append(keyvals, "cost", e.Target().G, "nodes", len(e.PathIDs()))
	}
	p.done("search finished", keyvals...)
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Microsecond)
}

// latticeLogger returns l tagged with the lattice shape and endpoints of e.
func latticeLogger(l *log.Logger, e *astar.Engine) *log.Logger {
	rows, cols := e.Graph().Dims()
	return l.With("lattice", fmt.Sprintf("%dx%d", rows, cols), "start", e.Start().ID, "target", e.Target().ID)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
