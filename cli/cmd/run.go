package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/pcalc/cli/cmd/repl"
	"github.com/ardnew/pcalc/log"
)

// Run evaluates expressions and scripts, then starts the REPL if nothing
// was given or --interactive is set.
type Run struct {
	Expr        []string `help:"Evaluate expression; separate several with ';'" placeholder:"EXPR" short:"e"`
	File        []string `help:"Evaluate script file, searched in the script path; '-' reads stdin" placeholder:"FILE" short:"f"`
	Interactive bool     `help:"Start the REPL after evaluating -e and -f"                                          short:"i"`
	Batch       bool     `help:"Do not print results (xprint output is still shown)"                                short:"b"`
	Quiet       bool     `help:"Do not print the startup banner"                                                    short:"q"`
	Plain       bool     `help:"Use a plain line editor instead of the full-screen REPL"`

	stdin  io.Reader   `kong:"-"`
	stdout io.Writer   `kong:"-"`
	stderr io.Writer   `kong:"-"`
	tty    func() bool `kong:"-"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	r.defaults()

	logger := log.Default()

	s := repl.NewSession(
		repl.WithContext(ctx),
		repl.WithLogger(logger),
		repl.WithOutput(r.stdout),
		repl.WithErrorOutput(r.stderr),
		repl.WithBatch(r.Batch),
	)

	evalErr := r.evaluate(ctx, s)
	if evalErr != nil && !IsEvaluation(evalErr) {
		return evalErr
	}

	if (len(r.Expr) > 0 || len(r.File) > 0) && !r.Interactive {
		return evalErr
	}

	if !r.tty() {
		if err := repl.Pipe(ctx, s, r.stdin); err != nil {
			return ErrEvaluation.Wrap(err)
		}

		return evalErr
	}

	if !r.Quiet {
		s.Banner()
	}

	hist := r.openHistory(ctx, logger)
	defer hist.Close()

	if r.Plain {
		return repl.RunPlain(ctx, s, hist, logger)
	}

	return repl.Run(ctx, s, hist, logger)
}

// evaluate runs every -f script and then every -e expression. Failures are
// reported by the session; the first one is returned as an evaluation
// error once all have run.
func (r *Run) evaluate(ctx context.Context, s *repl.Session) error {
	scripts, err := openScripts(r.File, searchPathFrom(ctx))
	if err != nil {
		return err
	}
	defer closeScripts(scripts)

	var first error

	fail := func(err error, attrs ...slog.Attr) {
		log.DebugContext(ctx, "evaluation failed", append(attrs, slog.Any("error", err))...)

		if first == nil {
			first = ErrEvaluation.Wrap(err).With(attrs...)
		}
	}

	for _, sc := range scripts {
		log.DebugContext(ctx, "load script", slog.String("file", sc.name))

		if err := s.Load(sc); err != nil {
			fail(err, slog.String("file", sc.name))
		}
	}

	for _, expr := range r.Expr {
		if err := s.Exec(expr); err != nil {
			fail(err, slog.String("expr", expr))
		}
	}

	return first
}

func (r *Run) openHistory(ctx context.Context, logger log.Logger) *repl.History {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return new(repl.History)
	}

	dir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		return new(repl.History)
	}

	hist, err := repl.OpenHistory(filepath.Join(dir, repl.HistoryFile))
	if err != nil {
		logger.WarnContext(ctx, "history disabled", slog.Any("error", err))

		return new(repl.History)
	}

	return hist
}

func (r *Run) defaults() {
	if r.stdin == nil {
		r.stdin = os.Stdin
	}

	if r.stdout == nil {
		r.stdout = os.Stdout
	}

	if r.stderr == nil {
		r.stderr = os.Stderr
	}

	if r.tty == nil {
		r.tty = func() bool {
			f, ok := r.stdin.(*os.File)

			return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
		}
	}
}

// IsEvaluation reports whether err is an evaluation failure already reported
// by the session.
func IsEvaluation(err error) bool { return errors.Is(err, ErrEvaluation) }
