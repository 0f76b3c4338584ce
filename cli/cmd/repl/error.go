package repl

import (
	"errors"

	"github.com/ardnew/pcalc/lang"
)

// Sentinel errors.
var (
	ErrQuit        = errors.New("quit")
	ErrOutOfBounds = errors.New("index out of range")
)

// Error classes for failures outside the calculator language.
var (
	ErrRepl    = lang.NewError("repl")
	ErrRead    = ErrRepl.Class("read input")
	ErrFormat  = ErrRepl.Class("unknown format")
	ErrHistory = ErrRepl.Class("history")
)
