package lang

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Function is a user-defined function.
type Function struct {
	Params []string
	Body   []Code
}

// Signature formats the parameter list as "(a, b)".
func (f *Function) Signature() string {
	return "(" + strings.Join(f.Params, ", ") + ")"
}

// call evaluates args in the caller frame, binds them in a fresh frame, and
// evaluates the body there. An empty body yields 0.
func (f *Function) call(name string, caller *Environment, args []Code) (Value, error) {
	if len(args) != len(f.Params) {
		return Value{}, ErrArgumentCount.Errorf("Invalid arguments length").
			With(
				slog.String("function", name),
				slog.Int("want", len(f.Params)),
				slog.Int("got", len(args)),
			)
	}

	vals := make([]Value, len(args))
	for i, arg := range args {
		v, err := caller.Eval(arg)
		if err != nil {
			return Value{}, err
		}

		vals[i] = v
	}

	callee := caller.frame()
	for i, param := range f.Params {
		if _, err := callee.DefineVariable(param, vals[i]); err != nil {
			return Value{}, err
		}
	}

	result := Number(0)
	for _, expr := range f.Body {
		v, err := callee.Eval(expr)
		if err != nil {
			return Value{}, err
		}

		result = v
	}

	return result, nil
}

// FunctionTable maps names to functions. A single table is shared by every
// frame of an [Environment].
type FunctionTable struct {
	funcs map[string]*Function
}

// NewFunctionTable returns an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{funcs: make(map[string]*Function)}
}

// Get returns the function bound to name.
func (t *FunctionTable) Get(name string) (*Function, bool) {
	f, ok := t.funcs[name]

	return f, ok
}

// Define binds f to name, replacing any prior definition.
func (t *FunctionTable) Define(name string, f *Function) { t.funcs[name] = f }

// Reset removes every function.
func (t *FunctionTable) Reset() { clear(t.funcs) }

// Len returns the number of functions.
func (t *FunctionTable) Len() int { return len(t.funcs) }

// All returns an iterator over the table in name order.
func (t *FunctionTable) All() iter.Seq2[string, *Function] {
	return func(yield func(string, *Function) bool) {
		for _, name := range slices.Sorted(maps.Keys(t.funcs)) {
			if !yield(name, t.funcs[name]) {
				return
			}
		}
	}
}
