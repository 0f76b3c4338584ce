// Package repl provides the interactive front ends of pcalc.
//
// A [Session] owns a parser and an environment and turns lines of input
// into printed results. [Run] drives a session from a full-screen Bubble Tea
// program with fuzzy completion, [RunPlain] from a liner line editor, and
// [Pipe] from non-interactive input. Both interactive front ends share a
// [History] persisted with bbolt.
package repl
