package lang

import (
	"strconv"
	"testing"
)

// BenchmarkParse benchmarks parsing of representative expressions.
func BenchmarkParse(b *testing.B) {
	tests := []struct {
		name string
		src  string
	}{
		{"literal", "42"},
		{"arithmetic", "+ * 2 3 - 10 / 8 4"},
		{"conditional", "if < x 0 ? neg x : x fi"},
		{"definition", "def hyp a b begin sqrt + ^ a 2 ^ b 2 end"},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			p := NewParser()

			b.ReportAllocs()

			for b.Loop() {
				if _, err := p.Parse(tt.src); err != nil {
					b.Fatalf("parse error: %v", err)
				}
			}
		})
	}
}

// BenchmarkEval benchmarks evaluation of a parsed tree in a prepared
// environment.
func BenchmarkEval(b *testing.B) {
	tests := []struct {
		name  string
		setup []string
		src   string
	}{
		{"arithmetic", nil, "+ * 2 3 - 10 / 8 4"},
		{"variables", []string{"var x 3", "var y 4"}, "sqrt + ^ x 2 ^ y 2"},
		{
			"call",
			[]string{"def hyp a b begin sqrt + ^ a 2 ^ b 2 end"},
			"call hyp 3 4 cend",
		},
		{
			"nested_calls",
			[]string{
				"def sq a begin * a a end",
				"def hyp a b begin sqrt + call sq a cend call sq b cend end",
			},
			"call hyp 3 4 cend",
		},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			p := NewParser()
			env := NewEnvironment()

			for _, line := range tt.setup {
				code, err := p.Parse(line)
				if err != nil {
					b.Fatalf("setup parse error: %v", err)
				}

				if _, err := env.Eval(code); err != nil {
					b.Fatalf("setup eval error: %v", err)
				}
			}

			code, err := p.Parse(tt.src)
			if err != nil {
				b.Fatalf("parse error: %v", err)
			}

			b.ReportAllocs()

			for b.Loop() {
				if _, err := env.Eval(code); err != nil {
					b.Fatalf("eval error: %v", err)
				}
			}
		})
	}
}

// BenchmarkCheckRecursion benchmarks the definition-time check against a
// long chain of installed functions.
func BenchmarkCheckRecursion(b *testing.B) {
	p := NewParser()
	env := NewEnvironment()

	prev := ""

	for i := range 64 {
		name := "f" + strconv.Itoa(i)

		src := "def " + name + " begin 1 end"
		if prev != "" {
			src = "def " + name + " begin call " + prev + " cend end"
		}

		code, err := p.Parse(src)
		if err != nil {
			b.Fatal(err)
		}

		if _, err := env.Eval(code); err != nil {
			b.Fatal(err)
		}

		prev = name
	}

	code, err := p.Parse("def top begin call " + prev + " cend end")
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()

	for b.Loop() {
		if _, err := env.Eval(code); err != nil {
			b.Fatal(err)
		}
	}
}
