package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/pcalc/lang"
	"github.com/ardnew/pcalc/log"
)

// Fmt parses scripts without evaluating them and prints each expression in
// canonical prefix form, or the syntax trees as YAML or JSON.
type Fmt struct {
	YAML   bool     `help:"Print syntax trees as YAML"                                  xor:"format"`
	JSON   bool     `help:"Print syntax trees as JSON"                                  xor:"format"`
	Indent int      `help:"Indent width for YAML and JSON output (0 for compact)"       default:"2" short:"n"`
	Files  []string `help:"Script files, searched in the script path, or '-' for stdin" default:"-" arg:"" name:"file" optional:""`

	stdout io.Writer `kong:"-"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out := f.stdout
	if out == nil {
		out = os.Stdout
	}

	scripts, err := openScripts(f.Files, searchPathFrom(ctx))
	if err != nil {
		return err
	}
	defer closeScripts(scripts)

	var trees []any

	for _, sc := range scripts {
		err := parseScript(ctx, sc, func(code lang.Code) error {
			if f.YAML || f.JSON {
				trees = append(trees, lang.Tree(code))

				return nil
			}

			_, err := fmt.Fprintln(out, lang.Format(code))

			return err
		})
		if err != nil {
			return lang.WrapError(err).With(slog.String("file", sc.name))
		}
	}

	if trees == nil {
		trees = []any{}
	}

	switch {
	case f.YAML:
		if err := lang.EncodeYAML(ctx, out, trees, f.Indent); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}
	case f.JSON:
		if err := lang.EncodeJSON(out, trees, f.Indent); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}
	}

	return nil
}

// parseScript parses r line by line, splitting lines on ';', and passes
// each complete expression to fn. Definitions spanning lines are joined.
func parseScript(ctx context.Context, r io.Reader, fn func(lang.Code) error) error {
	p := lang.NewParser(lang.WithLogger(log.Default()))

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		for expr := range strings.SplitSeq(sc.Text(), ";") {
			if expr = strings.TrimSpace(expr); expr == "" {
				continue
			}

			code, err := p.Parse(expr)
			if err != nil {
				return lang.WrapError(err).With(slog.Int("line", n))
			}

			if !code.Evaluable() {
				continue
			}

			if err := fn(code); err != nil {
				return err
			}
		}
	}

	if err := sc.Err(); err != nil {
		return ErrReadScript.Wrap(err)
	}

	if p.Pending() {
		log.DebugContext(ctx, "unterminated definition")

		return lang.ErrIncomplete.Errorf("Incomplete function definition - missing 'end'")
	}

	return nil
}
