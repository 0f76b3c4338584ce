package lang

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

// run parses and evaluates each line in env, failing the test on any error
// except from the last line, whose result is returned.
func run(t *testing.T, env *Environment, lines ...string) (Value, error) {
	t.Helper()

	p := NewParser()

	var (
		v   Value
		err error
	)

	for i, line := range lines {
		var code Code

		code, err = p.Parse(line)
		if err == nil {
			if !code.Evaluable() {
				continue
			}

			v, err = env.Eval(code)
		}

		if err != nil && i < len(lines)-1 {
			t.Fatalf("line %d %q: %v", i, line, err)
		}
	}

	return v, err
}

func TestEval_Values(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Value
	}{
		{"literal", []string{"5"}, Number(5)},
		{"add", []string{"+ 1 2"}, Number(3)},
		{"nested", []string{"- * 2 5 / 9 3"}, Number(7)},
		{"power", []string{"^ 2 10"}, Number(1024)},
		{"modulo", []string{"% 7 3"}, Number(1)},
		{"max", []string{"max 3 9"}, Number(9)},
		{"min", []string{"min 3 9"}, Number(3)},
		{"sqrt", []string{"sqrt 16"}, Number(4)},
		{"neg", []string{"neg 2"}, Number(-2)},
		{"abs", []string{"abs -2.5"}, Number(2.5)},
		{"sign_zero", []string{"sign 0"}, Number(1)},
		{"sign_negative", []string{"sign -7"}, Number(-1)},
		{"fract", []string{"fract 2.75"}, Number(0.75)},
		{"round", []string{"round 2.5"}, Number(3)},
		{"recip", []string{"recip 4"}, Number(0.25)},
		{"asnum", []string{"asnum true"}, Number(1)},
		{"asbool", []string{"asbool 0"}, Boolean(false)},
		{"eq", []string{"== 1 1"}, Boolean(true)},
		{"ne", []string{"!= 1 2"}, Boolean(true)},
		{"lt", []string{"< 1 2"}, Boolean(true)},
		{"ge", []string{">= 1 2"}, Boolean(false)},
		{"bool_order", []string{"< false true"}, Boolean(true)},
		{"and", []string{"and true false"}, Boolean(false)},
		{"or", []string{"or true false"}, Boolean(true)},
		{"not", []string{"not false"}, Boolean(true)},
		{"div_zero", []string{"/ 1 0"}, Number(math.Inf(1))},
		{"neg_div_zero", []string{"/ -1 0"}, Number(math.Inf(-1))},
		{"define_then_read", []string{"var x 5", "x"}, Number(5)},
		{"define_returns_value", []string{"var x 5"}, Number(5)},
		{"set_then_read", []string{"var x 5", "= x 10", "x"}, Number(10)},
		{"set_uses_old", []string{"var x 5", "= x * 2 x"}, Number(10)},
		{"if_true", []string{"if true ? 1 : 2 fi"}, Number(1)},
		{"if_false", []string{"if false ? 1 : 2 fi"}, Number(2)},
		{"one_armed_taken", []string{"if true ? 1 fi"}, Number(1)},
		{"one_armed_untaken", []string{"if false ? 1 fi"}, Boolean(false)},
		{"def_returns_true", []string{"def f begin 1 end"}, Boolean(true)},
		{
			"hypotenuse",
			[]string{"var x 3", "var y 4", "var z sqrt + ^ x 2 ^ y 2", "z"},
			Number(5),
		},
		{"add_call", []string{"def add x y begin + x y end", "call add 4 6 cend"}, Number(10)},
		{"empty_body", []string{"def nothing begin end", "call nothing cend"}, Number(0)},
		{"last_body_value", []string{"def f a begin 1 2 * a 3 end", "call f 5 cend"}, Number(15)},
		{
			"nested_calls",
			[]string{
				"def sq a begin * a a end",
				"def hyp a b begin sqrt + call sq a cend call sq b cend end",
				"call hyp 6 8 cend",
			},
			Number(10),
		},
		{
			"body_local_var",
			[]string{"def f a begin var b * a 2 + a b end", "call f 3 cend"},
			Number(9),
		},
		{
			"conditional_body",
			[]string{"def absval a begin if < a 0 ? neg a : a fi end", "call absval -4 cend"},
			Number(4),
		},
		{
			"redefine_function",
			[]string{"def f begin 1 end", "def f begin 2 end", "call f cend"},
			Number(2),
		},
		{
			"multiline_definition",
			[]string{"def f a", "begin", "+ a 1", "end", "call f 1 cend"},
			Number(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := run(t, NewEnvironment(WithOutput(nil)), tt.lines...)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if !got.Equal(tt.want) {
				t.Errorf("got %v (%v), want %v (%v)", got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestEval_NaN(t *testing.T) {
	got, err := run(t, NewEnvironment(), "/ 0 0")
	if err != nil {
		t.Fatal(err)
	}

	if n, _ := got.AsNumber(); !math.IsNaN(n) {
		t.Errorf("got %v, want NaN", got)
	}

	got, err = run(t, NewEnvironment(), "< / 0 0 1")
	if err != nil {
		t.Fatal(err)
	}

	if !got.Equal(Boolean(false)) {
		t.Errorf("NaN ordering = %v, want false", got)
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    string
		wantErr error
	}{
		{"add_bool", []string{"+ 5 true"}, "true not a number", ErrTypeMismatch},
		{"and_numbers", []string{"and 1 0"}, "1 not a boolean", ErrTypeMismatch},
		{"not_number", []string{"not 1"}, "1 not a boolean", ErrTypeMismatch},
		{"sqrt_bool", []string{"sqrt false"}, "false not a number", ErrTypeMismatch},
		{"mixed_eq", []string{"== 1 true"}, "Mismatched comparison - '1' and 'true'", ErrTypeMismatch},
		{"mixed_lt", []string{"< true 2"}, "Mismatched comparison - 'true' and '2'", ErrTypeMismatch},
		{"if_number", []string{"if 1 ? 2 : 3 fi"}, "1 not a boolean", ErrTypeMismatch},
		{"unknown_var", []string{"y"}, "Unknown variable 'y'", ErrUnknownVariable},
		{"set_unknown", []string{"= y 1"}, "Unknown variable 'y'", ErrUnknownVariable},
		{"duplicate_var", []string{"var x 5", "var x 6"}, "Duplicate variable definition 'x'", ErrDuplicateVariable},
		{"unknown_function", []string{"call nope cend"}, "Unknown function 'nope'", ErrUnknownFunction},
		{"too_few_args", []string{"def add x y begin + x y end", "call add 1 cend"}, "Invalid arguments length", ErrArgumentCount},
		{"too_many_args", []string{"def add x y begin + x y end", "call add 1 2 3 cend"}, "Invalid arguments length", ErrArgumentCount},
		{"duplicate_param", []string{"def f a a begin a end", "call f 1 2 cend"}, "Duplicate variable definition 'a'", ErrDuplicateVariable},
		{"caller_vars_invisible", []string{"var q 1", "def f begin q end", "call f cend"}, "Unknown variable 'q'", ErrUnknownVariable},
		{"self_recursive", []string{"def foo begin call foo cend end"}, "Self recursive function 'foo'", ErrSelfRecursive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, NewEnvironment(), tt.lines...)
			if err == nil {
				t.Fatal("expected error")
			}

			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}

			if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrEval) {
				t.Errorf("error %v is not %v in the eval domain", err, tt.wantErr)
			}
		})
	}
}

func TestEval_ArgumentCountBeforeEvaluation(t *testing.T) {
	var out bytes.Buffer

	env := NewEnvironment(WithOutput(&out))

	_, err := run(t, env, "def add x y begin + x y end", "call add xprint 1 cend")
	if !errors.Is(err, ErrArgumentCount) {
		t.Fatalf("got %v, want ErrArgumentCount", err)
	}

	if out.Len() != 0 {
		t.Errorf("argument evaluated before count check: %q", out.String())
	}
}

func TestEval_ShortCircuit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"then_taken", "if true ? xprint 1 : xprint 2 fi", "1\n"},
		{"else_taken", "if false ? xprint 1 : xprint 2 fi", "2\n"},
		{"one_armed_untaken", "if false ? xprint 1 fi", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			if _, err := run(t, NewEnvironment(WithOutput(&out)), tt.input); err != nil {
				t.Fatal(err)
			}

			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestEval_UntakenBranchNoMutation(t *testing.T) {
	env := NewEnvironment()

	if _, err := run(t, env, "var x 1", "if false ? = x 99 : x fi"); err != nil {
		t.Fatal(err)
	}

	if v, _ := env.Variable("x"); !v.Equal(Number(1)) {
		t.Errorf("x = %v, want 1", v)
	}
}

func TestEval_PrintAndReturn(t *testing.T) {
	var out bytes.Buffer

	got, err := run(t, NewEnvironment(WithOutput(&out)), "+ 1 xprint * 2 3")
	if err != nil {
		t.Fatal(err)
	}

	if !got.Equal(Number(7)) {
		t.Errorf("got %v, want 7", got)
	}

	if out.String() != "6\n" {
		t.Errorf("output = %q, want %q", out.String(), "6\n")
	}
}

func TestEval_CallFrameIsolation(t *testing.T) {
	env := NewEnvironment()

	if _, err := run(t, env, "def add x y begin + x y end", "call add 4 6 cend"); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"x", "y"} {
		if _, err := env.Variable(name); !errors.Is(err, ErrUnknownVariable) {
			t.Errorf("parameter %q visible after call: %v", name, err)
		}
	}
}

func TestEval_ArgumentsUseCallerFrame(t *testing.T) {
	env := NewEnvironment()

	got, err := run(t, env, "var a 10", "def f a begin * a 2 end", "call f + a 1 cend")
	if err != nil {
		t.Fatal(err)
	}

	if !got.Equal(Number(22)) {
		t.Errorf("got %v, want 22", got)
	}
}

func TestEval_FunctionDefinedInsideCallIsShared(t *testing.T) {
	env := NewEnvironment()

	_, err := run(t, env,
		"def maker begin def made begin 7 end end",
		"call maker cend",
	)
	if err != nil {
		t.Fatal(err)
	}

	got, err := run(t, env, "call made cend")
	if err != nil {
		t.Fatalf("function defined in callee frame not visible: %v", err)
	}

	if !got.Equal(Number(7)) {
		t.Errorf("got %v, want 7", got)
	}
}

func TestEval_NoOp(t *testing.T) {
	_, err := NewEnvironment().Eval(NoOp{})
	if !errors.Is(err, ErrNotEvaluable) {
		t.Fatalf("got %v, want ErrNotEvaluable", err)
	}

	if err.Error() != "Eval called on noop" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestEval_ErrorPropagatesUnchanged(t *testing.T) {
	_, err := run(t, NewEnvironment(), "+ 1 * 2 sqrt true")
	if err == nil || err.Error() != "true not a number" {
		t.Fatalf("got %v, want inner type mismatch", err)
	}
}
