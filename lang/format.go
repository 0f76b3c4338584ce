package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format renders code as single-line prefix source that parses back to an
// equivalent tree.
func Format(code Code) string {
	var b strings.Builder

	format(&b, code)

	return b.String()
}

func format(b *strings.Builder, code Code) {
	word := func(s string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(s)
	}

	switch c := code.(type) {
	case *Literal:
		if c.Source != "" {
			word(c.Source)
		} else {
			word(c.Value.String())
		}

	case *GetVariable:
		word(c.Ident)

	case *DefineVariable:
		word(kwDefVar)
		word(c.Ident)
		format(b, c.Expr)

	case *SetVariable:
		word(kwSetVar)
		word(c.Ident)
		format(b, c.Expr)

	case *BinaryOp:
		word(c.Op)
		format(b, c.Left)
		format(b, c.Right)

	case *UnaryOp:
		word(c.Op)
		format(b, c.Operand)

	case *Conditional:
		word(kwIf)
		format(b, c.Cond)
		word(kwThen)
		format(b, c.Then)

		if c.Else != nil {
			word(kwElse)
			format(b, c.Else)
		}

		word(kwFi)

	case *FunctionDefinition:
		word(kwDefun)
		word(c.Ident)

		for _, p := range c.Params {
			word(p)
		}

		word(kwBegin)

		for _, e := range c.Body {
			format(b, e)
		}

		word(kwEnd)

	case *FunctionCall:
		word(kwFuncall)
		word(c.Ident)

		for _, a := range c.Args {
			format(b, a)
		}

		word(kwCallEnd)

	case *PrintAndReturn:
		word(kwXPrint)
		format(b, c.Expr)
	}
}

// Tree returns a nested map description of code suitable for YAML or JSON
// encoding.
func Tree(code Code) map[string]any {
	switch c := code.(type) {
	case *Literal:
		return map[string]any{"literal": c.Value.Native()}

	case *GetVariable:
		return map[string]any{"get": c.Ident}

	case *DefineVariable:
		return map[string]any{"define": map[string]any{"name": c.Ident, "value": Tree(c.Expr)}}

	case *SetVariable:
		return map[string]any{"set": map[string]any{"name": c.Ident, "value": Tree(c.Expr)}}

	case *BinaryOp:
		return map[string]any{c.Op: []any{Tree(c.Left), Tree(c.Right)}}

	case *UnaryOp:
		return map[string]any{c.Op: Tree(c.Operand)}

	case *Conditional:
		m := map[string]any{"cond": Tree(c.Cond), "then": Tree(c.Then)}
		if c.Else != nil {
			m["else"] = Tree(c.Else)
		}

		return map[string]any{"if": m}

	case *FunctionDefinition:
		body := make([]any, len(c.Body))
		for i, e := range c.Body {
			body[i] = Tree(e)
		}

		params := c.Params
		if params == nil {
			params = []string{}
		}

		return map[string]any{"def": map[string]any{
			"name": c.Ident, "params": params, "body": body,
		}}

	case *FunctionCall:
		args := make([]any, len(c.Args))
		for i, a := range c.Args {
			args[i] = Tree(a)
		}

		return map[string]any{"call": map[string]any{"name": c.Ident, "args": args}}

	case *PrintAndReturn:
		return map[string]any{kwXPrint: Tree(c.Expr)}

	default:
		return map[string]any{"noop": nil}
	}
}

// EncodeJSON writes v as JSON to w. A positive indent pretty-prints.
func EncodeJSON(w io.Writer, v any, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// EncodeYAML writes v as YAML to w. A zero indent selects flow style.
func EncodeYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
