package lang

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// VariableTable maps names to values within one call frame.
type VariableTable struct {
	vars map[string]Value
}

// NewVariableTable returns an empty table.
func NewVariableTable() *VariableTable {
	return &VariableTable{vars: make(map[string]Value)}
}

// Get returns the value bound to name.
func (t *VariableTable) Get(name string) (Value, bool) {
	v, ok := t.vars[name]

	return v, ok
}

// Define binds a new name. It fails if name is already bound.
func (t *VariableTable) Define(name string, v Value) (Value, error) {
	if _, ok := t.vars[name]; ok {
		return Value{}, ErrDuplicateVariable.
			Errorf("Duplicate variable definition '%s'", name).
			With(slog.String("variable", name))
	}

	t.vars[name] = v

	return v, nil
}

// Set rebinds an existing name. It fails if name is not bound.
func (t *VariableTable) Set(name string, v Value) (Value, error) {
	if _, ok := t.vars[name]; !ok {
		return Value{}, unknownVariable(name)
	}

	t.vars[name] = v

	return v, nil
}

// Reset removes every variable.
func (t *VariableTable) Reset() { clear(t.vars) }

// Len returns the number of variables.
func (t *VariableTable) Len() int { return len(t.vars) }

// All returns an iterator over the table in name order.
func (t *VariableTable) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range slices.Sorted(maps.Keys(t.vars)) {
			if !yield(name, t.vars[name]) {
				return
			}
		}
	}
}

func unknownVariable(name string) error {
	return ErrUnknownVariable.
		Errorf("Unknown variable '%s'", name).
		With(slog.String("variable", name))
}

// Environment is one evaluation frame: its own variables plus the function
// table shared with every other frame created from it.
type Environment struct {
	settings

	vars  *VariableTable
	funcs *FunctionTable
}

// NewEnvironment returns an empty top-level environment.
func NewEnvironment(opts ...Option) *Environment {
	return &Environment{
		settings: makeSettings(opts...),
		vars:     NewVariableTable(),
		funcs:    NewFunctionTable(),
	}
}

// frame returns a callee environment with fresh variables that shares the
// function table of e.
func (e *Environment) frame() *Environment {
	return &Environment{
		settings: e.settings,
		vars:     NewVariableTable(),
		funcs:    e.funcs,
	}
}

// Variable returns the value of a variable in this frame.
func (e *Environment) Variable(name string) (Value, error) {
	v, ok := e.vars.Get(name)
	if !ok {
		return Value{}, unknownVariable(name)
	}

	return v, nil
}

// DefineVariable binds a new variable in this frame.
func (e *Environment) DefineVariable(name string, v Value) (Value, error) {
	return e.vars.Define(name, v)
}

// SetVariable rebinds an existing variable in this frame.
func (e *Environment) SetVariable(name string, v Value) (Value, error) {
	return e.vars.Set(name, v)
}

// Function returns a function from the shared table.
func (e *Environment) Function(name string) (*Function, error) {
	f, ok := e.funcs.Get(name)
	if !ok {
		return nil, ErrUnknownFunction.
			Errorf("Unknown function '%s'", name).
			With(slog.String("function", name))
	}

	return f, nil
}

// DefineFunction binds f in the shared table without any recursion check.
// Use [Environment.Install] for checked definitions.
func (e *Environment) DefineFunction(name string, f *Function) {
	e.funcs.Define(name, f)
}

// Install checks f for recursion against the current table and installs it
// under name only if the check passes.
func (e *Environment) Install(name string, f *Function) error {
	if err := checkRecursion(name, f, e.funcs); err != nil {
		e.logger.Trace("function rejected",
			slog.String("function", name),
			slog.Any("error", err),
		)

		return err
	}

	e.funcs.Define(name, f)
	e.logger.Trace("function installed",
		slog.String("function", name),
		slog.Int("params", len(f.Params)),
		slog.Int("body", len(f.Body)),
	)

	return nil
}

// Variables returns an iterator over this frame's variables in name order.
func (e *Environment) Variables() iter.Seq2[string, Value] { return e.vars.All() }

// Functions returns an iterator over the shared functions in name order.
func (e *Environment) Functions() iter.Seq2[string, *Function] { return e.funcs.All() }

// Reset clears both the variables and the shared function table.
func (e *Environment) Reset() {
	e.vars.Reset()
	e.funcs.Reset()
}

// Len returns the number of variables plus the number of functions.
func (e *Environment) Len() int { return e.vars.Len() + e.funcs.Len() }

// Empty reports whether there are no variables and no functions.
func (e *Environment) Empty() bool { return e.Len() == 0 }

// Dump writes a two-column listing of the variables and then the functions.
func (e *Environment) Dump(w io.Writer) error {
	var sections [][][2]string

	if e.vars.Len() > 0 {
		rows := [][2]string{{"var", "value"}, {"---", "-----"}}
		for name, v := range e.vars.All() {
			rows = append(rows, [2]string{name, v.String()})
		}

		sections = append(sections, rows)
	}

	if e.funcs.Len() > 0 {
		rows := [][2]string{{"Func", "Params"}, {"----", "------"}}
		for name, f := range e.funcs.All() {
			rows = append(rows, [2]string{name, f.Signature()})
		}

		sections = append(sections, rows)
	}

	var b strings.Builder

	for i, rows := range sections {
		if i > 0 {
			b.WriteString("\n")
		}

		width := 0
		for _, r := range rows {
			width = max(width, len(r[0]))
		}

		for _, r := range rows {
			fmt.Fprintf(&b, "%-*s   %s\n", width, r[0], r[1])
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// Snapshot is a serializable view of an environment.
type Snapshot struct {
	Variables map[string]any              `json:"variables" yaml:"variables"`
	Functions map[string]FunctionSnapshot `json:"functions" yaml:"functions"`
}

// FunctionSnapshot is a serializable view of a [Function] with each body
// expression rendered as source.
type FunctionSnapshot struct {
	Params []string `json:"params" yaml:"params"`
	Body   []string `json:"body"   yaml:"body"`
}

// Snapshot returns the current variables and functions.
func (e *Environment) Snapshot() Snapshot {
	s := Snapshot{
		Variables: make(map[string]any, e.vars.Len()),
		Functions: make(map[string]FunctionSnapshot, e.funcs.Len()),
	}

	for name, v := range e.vars.All() {
		s.Variables[name] = v.Native()
	}

	for name, f := range e.funcs.All() {
		body := make([]string, len(f.Body))
		for i, c := range f.Body {
			body[i] = Format(c)
		}

		s.Functions[name] = FunctionSnapshot{Params: f.Params, Body: body}
	}

	return s
}
