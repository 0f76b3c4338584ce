// Package lang implements the pcalc prefix-notation expression language.
//
// Every operator and keyword precedes its operands, so expressions need no
// parentheses or precedence rules:
//
//	+ 1 2                      # 3
//	sqrt + ^ 3 2 ^ 4 2         # 5
//	if <= x 5 ? x : 0 fi       # conditional
//
// # Pipeline
//
// Text flows through three stages:
//
//   - [Lexer] splits text on whitespace and classifies each lexeme as a
//     reserved word, a numeric literal, or an identifier.
//   - [Parser] consumes tokens by recursive descent and builds one [Code]
//     tree per call to [Parser.Parse].
//   - [Environment.Eval] walks the tree and produces a [Value].
//
// # Values
//
// A [Value] is either a number (float64) or a boolean. Arithmetic requires
// numbers, logical operators require booleans, and comparisons require both
// operands to share a kind. The casts asnum and asbool convert explicitly.
//
// # Variables and Functions
//
//	var x 5                               # define
//	= x * 2 x                             # assign
//	def add a b begin + a b end           # define function
//	call add 4 6 cend                     # call function
//
// Each call evaluates its body in a fresh variable table. The function table
// is shared by every frame, so a definition is visible everywhere as soon as
// it is installed.
//
// A function definition may span several lines. Until the closing end
// keyword arrives, [Parser.Parse] returns [NoOp] and buffers the tokens.
//
// # Recursion
//
// The language has no depth limit, so recursive functions are rejected when
// defined. A definition fails if its body calls itself, if a function it
// calls calls it back, or if any chain of calls through the current function
// table leads back to it.
//
// # Errors
//
// Every failure is an [*Error] classed under [ErrLexer], [ErrParser], or
// [ErrEval], and may be matched with [errors.Is] against those or the finer
// sentinels declared in this package.
package lang
