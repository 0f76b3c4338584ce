package lang

import (
	"fmt"
	"log/slog"
)

// Eval evaluates code in this frame.
func (e *Environment) Eval(code Code) (Value, error) {
	switch c := code.(type) {
	case *Literal:
		return c.Value, nil

	case *GetVariable:
		return e.Variable(c.Ident)

	case *DefineVariable:
		v, err := e.Eval(c.Expr)
		if err != nil {
			return Value{}, err
		}

		return e.DefineVariable(c.Ident, v)

	case *SetVariable:
		v, err := e.Eval(c.Expr)
		if err != nil {
			return Value{}, err
		}

		return e.SetVariable(c.Ident, v)

	case *BinaryOp:
		a, err := e.Eval(c.Left)
		if err != nil {
			return Value{}, err
		}

		b, err := e.Eval(c.Right)
		if err != nil {
			return Value{}, err
		}

		return c.fn(a, b)

	case *UnaryOp:
		a, err := e.Eval(c.Operand)
		if err != nil {
			return Value{}, err
		}

		return c.fn(a)

	case *Conditional:
		return e.evalConditional(c)

	case *FunctionDefinition:
		f := &Function{Params: c.Params, Body: c.Body}
		if err := e.Install(c.Ident, f); err != nil {
			return Value{}, err
		}

		return Boolean(true), nil

	case *FunctionCall:
		f, err := e.Function(c.Ident)
		if err != nil {
			return Value{}, err
		}

		e.logger.Trace("call",
			slog.String("function", c.Ident),
			slog.Int("args", len(c.Args)),
		)

		return f.call(c.Ident, e, c.Args)

	case *PrintAndReturn:
		v, err := e.Eval(c.Expr)
		if err != nil {
			return Value{}, err
		}

		if _, err := fmt.Fprintln(e.output, v); err != nil {
			return Value{}, ErrEval.Errorf("xprint").Wrap(err)
		}

		return v, nil

	case NoOp, *NoOp:
		return Value{}, ErrNotEvaluable.Errorf("Eval called on noop")

	default:
		return Value{}, ErrNotEvaluable.Errorf("Eval called on %T", code)
	}
}

func (e *Environment) evalConditional(c *Conditional) (Value, error) {
	v, err := e.Eval(c.Cond)
	if err != nil {
		return Value{}, err
	}

	cond, err := v.AsBoolean()
	if err != nil {
		return Value{}, err
	}

	switch {
	case cond:
		return e.Eval(c.Then)
	case c.Else != nil:
		return e.Eval(c.Else)
	default:
		return Boolean(false), nil
	}
}
