package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/peterh/liner"

	"github.com/ardnew/pcalc/log"
)

// RunPlain runs the REPL with a liner line editor until :quit, Ctrl-C, or
// end of input. Lines are added to hist, whose entries seed the editor's
// own history.
func RunPlain(ctx context.Context, s *Session, hist *History, logger log.Logger) error {
	if hist == nil {
		hist = new(History)
	}

	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)
	ln.SetCompleter(lineCompleter(s.Candidates))

	for _, line := range hist.Entries() {
		ln.AppendHistory(line)
	}

	logger.TraceContext(ctx, "plain repl start", slog.Int("history", hist.Len()))

	for ctx.Err() == nil {
		line, err := ln.Prompt(s.Prompt())

		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return nil

		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)

			return nil

		case err != nil:
			return ErrRead.Wrap(err)
		}

		ln.AppendHistory(line)

		if err := hist.Add(line); err != nil {
			logger.WarnContext(ctx, "history not saved", slog.Any("error", err))
		}

		if err := s.Input(line); IsQuit(err) {
			return nil
		}
	}

	return context.Cause(ctx)
}

// Pipe feeds each line of r to the session without prompting, as if typed.
// Failing lines are reported and skipped; the first failure is returned once
// the input ends or :quit is read.
func Pipe(ctx context.Context, s *Session, r io.Reader) error {
	var first error

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return context.Cause(ctx)
		}

		err := s.Input(sc.Text())
		if IsQuit(err) {
			break
		}

		if err != nil && first == nil {
			first = err
		}
	}

	if err := sc.Err(); err != nil {
		return ErrRead.Wrap(err)
	}

	return first
}
