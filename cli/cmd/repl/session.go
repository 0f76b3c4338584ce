package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/ardnew/pcalc/lang"
	"github.com/ardnew/pcalc/log"
)

// LastVar names the variable holding the most recent result.
const LastVar = "last"

const (
	prompt     = "> "
	contPrompt = ">>> "
)

// Session commands.
const (
	cmdEnv      = ":env"
	cmdReset    = ":reset"
	cmdQuit     = ":quit"
	cmdBatch    = ":batch"
	cmdLast     = ":last"
	cmdHelp     = ":help"
	cmdExamples = ":examples"
)

// Commands returns the session commands in the order they are listed by
// :help.
func Commands() []string {
	return []string{cmdEnv, cmdReset, cmdQuit, cmdBatch, cmdLast, cmdHelp, cmdExamples}
}

// Session evaluates input against one parser and one environment.
//
// Results go to the output writer unless batch mode is on; xprint output
// always does. Errors are reported on the error writer with a ParseError or
// EvalError prefix. A Session is not safe for concurrent use.
type Session struct {
	ctx    context.Context
	logger log.Logger
	out    io.Writer
	errOut io.Writer
	batch  bool

	parser *lang.Parser
	env    *lang.Environment
}

// Option configures a [Session].
type Option func(*Session)

// WithContext sets the context used for encoding environment dumps.
func WithContext(ctx context.Context) Option {
	return func(s *Session) { s.ctx = ctx }
}

// WithLogger sets the logger shared with the parser and environment.
func WithLogger(logger log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithOutput sets the writer receiving results and xprint output.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithErrorOutput sets the writer receiving error reports.
func WithErrorOutput(w io.Writer) Option {
	return func(s *Session) { s.errOut = w }
}

// WithBatch sets the initial batch mode.
func WithBatch(batch bool) Option {
	return func(s *Session) { s.batch = batch }
}

// NewSession returns a Session with [LastVar] defined as 0.
func NewSession(opts ...Option) *Session {
	s := &Session{
		ctx:    context.Background(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.out == nil {
		s.out = io.Discard
	}

	if s.errOut == nil {
		s.errOut = io.Discard
	}

	s.parser = lang.NewParser(lang.WithLogger(s.logger))
	s.env = lang.NewEnvironment(lang.WithLogger(s.logger), lang.WithOutput(sessionOutput{s}))
	s.reset()

	return s
}

// sessionOutput forwards xprint output to the session's current output
// writer.
type sessionOutput struct{ s *Session }

func (w sessionOutput) Write(p []byte) (int, error) { return w.s.out.Write(p) }

// redirect replaces both output writers.
func (s *Session) redirect(out, errOut io.Writer) {
	s.out, s.errOut = out, errOut
}

// Env returns the session's environment.
func (s *Session) Env() *lang.Environment { return s.env }

// Batch reports whether results are suppressed.
func (s *Session) Batch() bool { return s.batch }

// Prompt returns the prompt for the next line, which differs while a
// function definition is incomplete.
func (s *Session) Prompt() string {
	if s.parser.Pending() {
		return contPrompt
	}

	return prompt
}

// Input handles one line of interactive input: a session command, or
// expressions passed to [Session.Exec]. It returns [ErrQuit] for :quit.
func (s *Session) Input(line string) error {
	line = strings.TrimSpace(line)

	if !s.parser.Pending() {
		if handled, err := s.command(line); handled {
			return err
		}
	}

	return s.Exec(line)
}

// Exec evaluates the ';'-separated expressions in line, stopping at the
// first one that fails.
func (s *Session) Exec(line string) error {
	for expr := range strings.SplitSeq(line, ";") {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}

		if err := s.eval(expr); err != nil {
			return err
		}
	}

	return nil
}

// Load evaluates every non-empty line read from r and returns the first
// failure, after which the remaining lines are skipped.
func (s *Session) Load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		if err := s.Exec(sc.Text()); err != nil {
			s.logger.DebugContext(s.ctx, "load stopped", slog.Int("line", n))

			return err
		}
	}

	if err := sc.Err(); err != nil {
		return ErrRead.Wrap(err)
	}

	return nil
}

func (s *Session) eval(expr string) error {
	code, err := s.parser.Parse(expr)
	if err != nil {
		fmt.Fprintf(s.errOut, "ParseError: %v\n", err)

		return err
	}

	if !code.Evaluable() {
		return nil
	}

	v, err := s.env.Eval(code)
	if err != nil {
		fmt.Fprintf(s.errOut, "EvalError: %v\n", err)

		return err
	}

	if !s.batch {
		fmt.Fprintln(s.out, v)
	}

	_, err = s.env.SetVariable(LastVar, v)

	return err
}

// command runs line if it is a session command.
func (s *Session) command(line string) (handled bool, err error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case cmdEnv:
		return true, s.dump(arg)

	case cmdReset:
		s.reset()

	case cmdQuit:
		return true, ErrQuit

	case cmdBatch:
		s.batch = !s.batch
		s.printBatch()

	case cmdLast:
		v, err := s.env.Variable(LastVar)
		if err != nil {
			fmt.Fprintf(s.errOut, "EvalError: %v\n", err)

			return true, err
		}

		fmt.Fprintln(s.out, v)

	case cmdHelp:
		s.printHelp()

	case cmdExamples:
		fmt.Fprint(s.out, examples)

	default:
		return false, nil
	}

	return true, nil
}

// dump writes the environment in the named format.
func (s *Session) dump(format string) error {
	switch strings.ToLower(format) {
	case "":
		return s.env.Dump(s.out)
	case "yaml":
		return lang.EncodeYAML(s.ctx, s.out, s.env.Snapshot(), 2)
	case "json":
		return lang.EncodeJSON(s.out, s.env.Snapshot(), 2)
	default:
		err := ErrFormat.Errorf("unknown environment format '%s'", format)
		fmt.Fprintf(s.errOut, "Error: %v\n", err)

		return err
	}
}

func (s *Session) reset() {
	s.parser.Reset()
	s.env.Reset()

	if _, err := s.env.DefineVariable(LastVar, lang.Number(0)); err != nil {
		panic(err)
	}
}

// Banner writes the startup message.
func (s *Session) Banner() {
	rule := strings.Repeat("*", 65)

	fmt.Fprintln(s.out, rule)
	fmt.Fprintf(s.out, "*%s*\n", center("Prefix Calculator", 63))
	fmt.Fprintln(s.out, rule)
	s.printHelp()
	fmt.Fprintln(s.out, rule)
	s.printBatch()
	fmt.Fprintln(s.out, rule)
}

func (s *Session) printBatch() {
	state := "off"
	if s.batch {
		state = "on"
	}

	fmt.Fprintf(s.out, "batch mode %s\n", state)
}

func (s *Session) printHelp() {
	for _, sec := range []struct {
		title string
		names []string
	}{
		{"Binary Ops", slices.Collect(lang.BinaryOps())},
		{"Unary Ops", slices.Collect(lang.UnaryOps())},
		{"Vars Mgmt", slices.Collect(lang.VariableKeywords())},
		{"Ftns Mgmt", slices.Collect(lang.FunctionKeywords())},
		{"Ctrl Flow", slices.Collect(lang.ControlKeywords())},
		{"Constants", slices.Collect(lang.Constants())},
		{"Special Ftns", slices.Collect(lang.SpecialFunctions())},
		{"Special Vars", []string{LastVar}},
		{"REPL Cmds", Commands()},
	} {
		fmt.Fprintf(s.out, "%13s:", sec.title)

		for i, name := range sec.names {
			if i > 0 && i%helpColumns == 0 {
				fmt.Fprintf(s.out, "\n%14s", "")
			}

			fmt.Fprintf(s.out, " %s", name)
		}

		fmt.Fprintln(s.out)
	}
}

const helpColumns = 8

// Candidates returns the words offered for completion: reserved words,
// commands, and the names currently defined.
func (s *Session) Candidates() []string {
	names := slices.Collect(lang.Keywords())
	names = append(names, Commands()...)

	for name := range s.env.Variables() {
		names = append(names, name)
	}

	for name := range s.env.Functions() {
		names = append(names, name)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

func center(text string, width int) string {
	pad := max(width-len(text), 0)

	return strings.Repeat(" ", pad/2) + text + strings.Repeat(" ", pad-pad/2)
}

// IsQuit reports whether err ends the session.
func IsQuit(err error) bool { return errors.Is(err, ErrQuit) }

const examples = `
----------
Example 1 - Basic
> var x 5
5
> * 2 + x 20
50
> sqrt + ^ 3 2 ^ 4 2
5
> / * 3.5 pi 2
5.497787143782138
> max x last
5.497787143782138
> and asbool 5 true
true
> + 5 asnum true
6

----------
Example 2 - Functions
> def dist x1 y1 x2 y2
>>> begin
>>> var dx2 ^ - x2 x1 2
>>> var dy2 ^ - y2 y1 2
>>> sqrt + dx2 dy2
>>> end
true
>
> call dist 3 4 6 8 cend
5
>
> def near x1 y1 x2 y2 begin < call dist x1 y1 x2 y2 cend 1.0 end
true
>
> call near 3 4 3.5 4.5 cend
true

----------
Example 3 - Conditionals
> var x 5
5
> var y 10
10
> if <= x 5 ? = x + x 1 : = y + y 1 fi
6
> if > x 10 ? = x + x 1 : = y + y 1 fi
11
> if < x 10 ? x fi
6
> if > x 10 ? x fi
false
`
