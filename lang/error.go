package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Error domains.
var (
	ErrLexer  = NewError("lexer error")
	ErrParser = NewError("parser error")
	ErrEval   = NewError("eval error")
)

// Lexer errors.
var ErrInvalidIdentifier = ErrLexer.Class("invalid identifier")

// Parser errors.
var (
	ErrSyntax       = ErrParser.Class("syntax error")
	ErrIncomplete   = ErrParser.Class("incomplete expression")
	ErrReservedName = ErrParser.Class("reserved name")
)

// Eval errors.
var (
	ErrTypeMismatch      = ErrEval.Class("type mismatch")
	ErrUnknownVariable   = ErrEval.Class("unknown variable")
	ErrDuplicateVariable = ErrEval.Class("duplicate variable")
	ErrUnknownFunction   = ErrEval.Class("unknown function")
	ErrArgumentCount     = ErrEval.Class("argument count mismatch")
	ErrNotEvaluable      = ErrEval.Class("not evaluable")
	ErrRecursive         = ErrEval.Class("recursive function")
	ErrSelfRecursive     = ErrRecursive.Class("self recursive function")
	ErrDualRecursive     = ErrRecursive.Class("dual recursive functions")
	ErrCrossRecursive    = ErrRecursive.Class("cross recursive functions")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors created with [Error.Errorf] remember the sentinel they came from, so
// [errors.Is] matches a concrete error against its sentinel and every
// sentinel above it.
type Error struct {
	msg   string
	class *Error      // Sentinel this error derives from
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new root Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Class returns a new sentinel derived from e.
func (e *Error) Class(msg string) *Error {
	return &Error{msg: msg, class: e}
}

// Errorf returns a concrete error of class e with a formatted message.
func (e *Error) Errorf(format string, args ...any) *Error {
	return &Error{
		msg:   fmt.Sprintf(format, args...),
		class: e,
		attrs: e.attrs,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Is reports whether target is a sentinel that e derives from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	for c := e; c != nil; c = c.class {
		if c == t {
			return true
		}
	}

	return false
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.class != nil {
		attrs = append(attrs, slog.String("class", e.class.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error. The result derives from
// e, so it matches e and every sentinel e matches.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		class: e,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		class: e.class,
		err:   e.err,
		attrs: newAttrs,
	}
}
