package lang

import (
	"errors"
	"testing"
)

func TestParse_Nodes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, c Code)
	}{
		{
			name:  "literal",
			input: "42",
			check: func(t *testing.T, c Code) {
				lit, ok := c.(*Literal)
				if !ok || !lit.Value.Equal(Number(42)) {
					t.Errorf("got %#v, want Literal 42", c)
				}
			},
		},
		{
			name:  "constant",
			input: "true",
			check: func(t *testing.T, c Code) {
				lit, ok := c.(*Literal)
				if !ok || !lit.Value.Equal(Boolean(true)) {
					t.Errorf("got %#v, want Literal true", c)
				}
			},
		},
		{
			name:  "variable",
			input: "x",
			check: func(t *testing.T, c Code) {
				if g, ok := c.(*GetVariable); !ok || g.Name() != "x" {
					t.Errorf("got %#v, want GetVariable x", c)
				}
			},
		},
		{
			name:  "nested_binary",
			input: "+ 1 * 2 3",
			check: func(t *testing.T, c Code) {
				b, ok := c.(*BinaryOp)
				if !ok || b.Op != "+" {
					t.Fatalf("got %#v, want BinaryOp +", c)
				}

				if r, ok := b.Right.(*BinaryOp); !ok || r.Op != "*" {
					t.Errorf("right = %#v, want BinaryOp *", b.Right)
				}
			},
		},
		{
			name:  "define",
			input: "var x sqrt 4",
			check: func(t *testing.T, c Code) {
				d, ok := c.(*DefineVariable)
				if !ok || d.Ident != "x" {
					t.Fatalf("got %#v, want DefineVariable x", c)
				}

				if _, ok := d.Expr.(*UnaryOp); !ok {
					t.Errorf("expr = %#v, want UnaryOp", d.Expr)
				}
			},
		},
		{
			name:  "two_armed",
			input: "if < 1 2 ? 10 : 20 fi",
			check: func(t *testing.T, c Code) {
				if k, ok := c.(*Conditional); !ok || k.Else == nil {
					t.Errorf("got %#v, want two-armed Conditional", c)
				}
			},
		},
		{
			name:  "one_armed",
			input: "if false ? 1 fi",
			check: func(t *testing.T, c Code) {
				if k, ok := c.(*Conditional); !ok || k.Else != nil {
					t.Errorf("got %#v, want one-armed Conditional", c)
				}
			},
		},
		{
			name:  "function",
			input: "def hyp a b begin sqrt + ^ a 2 ^ b 2 end",
			check: func(t *testing.T, c Code) {
				f, ok := c.(*FunctionDefinition)
				if !ok {
					t.Fatalf("got %#v, want FunctionDefinition", c)
				}

				if f.Ident != "hyp" || len(f.Params) != 2 || len(f.Body) != 1 {
					t.Errorf("got %s %v body=%d", f.Ident, f.Params, len(f.Body))
				}
			},
		},
		{
			name:  "empty_function",
			input: "def nothing begin end",
			check: func(t *testing.T, c Code) {
				f, ok := c.(*FunctionDefinition)
				if !ok || len(f.Params) != 0 || len(f.Body) != 0 {
					t.Errorf("got %#v, want empty FunctionDefinition", c)
				}
			},
		},
		{
			name:  "call",
			input: "call hyp 3 4 cend",
			check: func(t *testing.T, c Code) {
				f, ok := c.(*FunctionCall)
				if !ok || !f.IsCall() || f.Name() != "hyp" || len(f.Args) != 2 {
					t.Errorf("got %#v, want FunctionCall hyp with 2 args", c)
				}
			},
		},
		{
			name:  "xprint",
			input: "xprint 1",
			check: func(t *testing.T, c Code) {
				if _, ok := c.(*PrintAndReturn); !ok {
					t.Errorf("got %#v, want PrintAndReturn", c)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, err := NewParser().Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if !code.Evaluable() {
				t.Fatalf("parsed code not evaluable")
			}

			tt.check(t, code)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"empty", "", "Expecting token", ErrIncomplete},
		{"missing_operand", "+ 1", "Expecting token", ErrIncomplete},
		{"trailing", "+ 1 2 3", "Invalid expression - '+ 1 2 3'", ErrSyntax},
		{"two_values", "1 2", "Invalid expression - '1 2'", ErrSyntax},
		{"lexer", "+ 1 2x", "Invalid identifier - '2x'", ErrLexer},
		{"leading_begin", "begin", "Invalid expression containing begin", ErrSyntax},
		{"leading_end", "end", "Invalid expression containing end", ErrSyntax},
		{"leading_cend", "cend", "Invalid expression containing end", ErrSyntax},
		{"leading_then", "?", "Invalid expression containing then", ErrSyntax},
		{"leading_else", ":", "Invalid expression containing else", ErrSyntax},
		{"leading_fi", "fi", "Invalid expression containing fi", ErrSyntax},
		{"var_incomplete", "var", "Incomplete variable definition", ErrIncomplete},
		{"var_reserved", "var pi 3", "Invalid variable definition name - 'pi'", ErrSyntax},
		{"var_number", "var 3 3", "Invalid variable definition name - '3'", ErrSyntax},
		{"set_incomplete", "=", "Incomplete set variable", ErrIncomplete},
		{"set_reserved", "= sqrt 3", "Invalid set variable name - 'sqrt'", ErrSyntax},
		{"def_reserved_name", "def sqrt x begin x end", "Invalid reserved function name definition - 'sqrt'", ErrReservedName},
		{"def_reserved_param", "def f tau begin tau end", "Invalid reserved function parameter definition - 'tau'", ErrReservedName},
		{"def_number_param", "def f 1 begin 1 end", "Invalid function parameter definition - '1'", ErrSyntax},
		{"def_body_end_in_expr", "def f x begin + x end", "Invalid expression containing end", ErrSyntax},
		{"call_incomplete", "call", "Invalid function call", ErrIncomplete},
		{"call_args_incomplete", "call f 1 2", "Invalid function call/arguments", ErrIncomplete},
		{"call_reserved", "call max 1 2 cend", "Invalid reserved function call name - 'max'", ErrReservedName},
		{"if_missing_then", "if true", "Incomplete if expression - missing 'Then'", ErrIncomplete},
		{"if_missing_else", "if true ? 1", "Incomplete if expression - missing 'Else'", ErrIncomplete},
		{"if_missing_fi", "if true ? 1 : 2", "Incomplete if expression - missing 'Fi'", ErrIncomplete},
		{"if_expect_then", "if true 1 ? 2 fi", "Invalid if expression - expecting 'Then'", ErrSyntax},
		{"if_expect_else", "if true ? 1 2 fi", "Invalid if expression - expecting 'Else'", ErrSyntax},
		{"if_expect_fi", "if true ? 1 : 2 3", "Invalid if expression - expecting 'Fi'", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewParser()

			code, err := p.Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %#v, want error", tt.input, code)
			}

			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v is not %v", err, tt.wantErr)
			}

			if p.Pending() {
				t.Errorf("buffer not cleared after error")
			}
		})
	}
}

func TestParse_MultiLineDefinition(t *testing.T) {
	p := NewParser()

	lines := []string{"def hyp a b", "begin", "sqrt + ^ a 2 ^ b 2"}
	for _, line := range lines {
		code, err := p.Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", line, err)
		}

		if _, ok := code.(NoOp); !ok {
			t.Fatalf("Parse(%q) = %#v, want NoOp", line, code)
		}

		if code.Evaluable() {
			t.Errorf("NoOp reports evaluable")
		}

		if !p.Pending() {
			t.Errorf("Pending() = false after %q", line)
		}
	}

	code, err := p.Parse("end")
	if err != nil {
		t.Fatalf("Parse(end) error: %v", err)
	}

	f, ok := code.(*FunctionDefinition)
	if !ok {
		t.Fatalf("got %#v, want FunctionDefinition", code)
	}

	if f.Ident != "hyp" || len(f.Params) != 2 || len(f.Body) != 1 {
		t.Errorf("got %s %v body=%d", f.Ident, f.Params, len(f.Body))
	}

	if p.Pending() {
		t.Errorf("Pending() = true after definition completed")
	}
}

func TestParse_MultiLineDefinitionError(t *testing.T) {
	p := NewParser()

	if _, err := p.Parse("def f x"); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Parse("begin + x end"); err == nil {
		t.Fatal("expected error for malformed body")
	}

	if p.Pending() {
		t.Fatal("buffer kept after error")
	}

	code, err := p.Parse("+ 1 2")
	if err != nil {
		t.Fatalf("parser unusable after error: %v", err)
	}

	if _, ok := code.(*BinaryOp); !ok {
		t.Errorf("got %#v, want BinaryOp", code)
	}
}

func TestParse_Reset(t *testing.T) {
	p := NewParser()

	if _, err := p.Parse("def f x begin"); err != nil {
		t.Fatal(err)
	}

	p.Reset()

	if p.Pending() {
		t.Error("Pending() = true after Reset")
	}
}
