package lang

import (
	"iter"
	"math"
	"slices"
)

// Reserved words.
const (
	kwDefVar  = "var"
	kwSetVar  = "="
	kwTrue    = "true"
	kwFalse   = "false"
	kwPi      = "pi"
	kwTau     = "tau"
	kwE       = "e"
	kwPhi     = "phi"
	kwDefun   = "def"
	kwFuncall = "call"
	kwBegin   = "begin"
	kwEnd     = "end"
	kwCallEnd = "cend"
	kwIf      = "if"
	kwThen    = "?"
	kwElse    = ":"
	kwFi      = "fi"
	kwXPrint  = "xprint"
)

var binaryOps = []string{
	"+", "-", "*", "/", "%", "^",
	"max", "min",
	"==", "!=", "<", "<=", ">", ">=",
	"and", "or",
}

var unaryOps = []string{
	"sqrt", "exp", "exp2", "ln", "log2", "log10",
	"sin", "cos", "tan", "sinh", "cosh", "tanh",
	"asin", "acos", "atan", "asinh", "acosh", "atanh",
	"sign", "abs", "recip", "fract", "trunc",
	"ceil", "floor", "round",
	"neg", "not", "asnum", "asbool",
}

var constants = map[string]Value{
	kwTrue:  Boolean(true),
	kwFalse: Boolean(false),
	kwPi:    Number(math.Pi),
	kwTau:   Number(2 * math.Pi),
	kwE:     Number(math.E),
	kwPhi:   Number(math.Phi),
}

var constantNames = []string{kwTrue, kwFalse, kwPi, kwTau, kwE, kwPhi}

var specialFunctions = []string{kwXPrint}

// reserved maps every reserved lexeme to the kind of token it produces.
var reserved = func() map[string]TokenKind {
	m := map[string]TokenKind{
		kwDefVar:  TokenDefVar,
		kwSetVar:  TokenSetVar,
		kwDefun:   TokenDefun,
		kwFuncall: TokenFuncall,
		kwBegin:   TokenBegin,
		kwEnd:     TokenEnd,
		kwCallEnd: TokenCallEnd,
		kwIf:      TokenIf,
		kwThen:    TokenThen,
		kwElse:    TokenElse,
		kwFi:      TokenFi,
	}

	for _, s := range binaryOps {
		m[s] = TokenBinaryOp
	}

	for _, s := range unaryOps {
		m[s] = TokenUnaryOp
	}

	for _, s := range constantNames {
		m[s] = TokenConstant
	}

	for _, s := range specialFunctions {
		m[s] = TokenSpecial
	}

	return m
}()

// BinaryOps returns an iterator over the binary operator keywords.
func BinaryOps() iter.Seq[string] { return slices.Values(binaryOps) }

// UnaryOps returns an iterator over the unary operator keywords.
func UnaryOps() iter.Seq[string] { return slices.Values(unaryOps) }

// Constants returns an iterator over the named constants.
func Constants() iter.Seq[string] { return slices.Values(constantNames) }

// SpecialFunctions returns an iterator over the special function keywords.
func SpecialFunctions() iter.Seq[string] { return slices.Values(specialFunctions) }

// VariableKeywords returns an iterator over the define and assign keywords.
func VariableKeywords() iter.Seq[string] {
	return slices.Values([]string{kwDefVar, kwSetVar})
}

// FunctionKeywords returns an iterator over the function definition and call
// keywords.
func FunctionKeywords() iter.Seq[string] {
	return slices.Values([]string{kwDefun, kwFuncall})
}

// ControlKeywords returns an iterator over the conditional keywords.
func ControlKeywords() iter.Seq[string] { return slices.Values([]string{kwIf}) }

// Keywords returns an iterator over every reserved word in sorted order.
func Keywords() iter.Seq[string] {
	keys := make([]string, 0, len(reserved))
	for k := range reserved {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return slices.Values(keys)
}

// IsReserved reports whether s is a reserved word.
func IsReserved(s string) bool {
	_, ok := reserved[s]

	return ok
}
