package lang

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Lexer turns text into a queue of tokens.
//
// Tokens accumulate across calls to [Lexer.Tokenize] until they are consumed
// or cleared, which lets a function definition arrive one line at a time.
type Lexer struct {
	tokens []Token
	head   int
}

// Tokenize appends the tokens of text to the queue.
// If any lexeme is invalid, none of the tokens from this call are kept.
func (l *Lexer) Tokenize(text string) error {
	fields := strings.Fields(text)
	toks := make([]Token, 0, len(fields))

	for _, lexeme := range fields {
		tok, err := classify(lexeme)
		if err != nil {
			return err
		}

		toks = append(toks, tok)
	}

	l.compact()
	l.tokens = append(l.tokens, toks...)

	return nil
}

func classify(lexeme string) (Token, error) {
	if kind, ok := reserved[lexeme]; ok {
		return Token{Kind: kind, Lexeme: lexeme}, nil
	}

	if _, err := parseNumber(lexeme); err == nil {
		return Token{Kind: TokenLiteral, Lexeme: lexeme}, nil
	}

	if isIdentifier(lexeme) {
		return Token{Kind: TokenIdentifier, Lexeme: lexeme}, nil
	}

	return Token{}, ErrInvalidIdentifier.
		Errorf("Invalid identifier - '%s'", lexeme).
		With(slog.String("lexeme", lexeme))
}

// parseNumber parses a numeric literal. Magnitudes beyond float64 range
// saturate to infinity.
func parseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}

	return n, nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return false
			}

			continue
		}

		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}

	return s != ""
}

// compact drops consumed tokens from the front of the queue.
func (l *Lexer) compact() {
	if l.head == 0 {
		return
	}

	l.tokens = slices.Delete(l.tokens, 0, l.head)
	l.head = 0
}

// Next removes and returns the first pending token.
func (l *Lexer) Next() (Token, bool) {
	if l.head >= len(l.tokens) {
		return Token{}, false
	}

	tok := l.tokens[l.head]
	l.head++

	return tok, true
}

// Peek returns the first pending token without removing it.
func (l *Lexer) Peek() (Token, bool) {
	if l.head >= len(l.tokens) {
		return Token{}, false
	}

	return l.tokens[l.head], true
}

// Clear discards every pending token.
func (l *Lexer) Clear() {
	l.tokens = l.tokens[:0]
	l.head = 0
}

// Len returns the number of pending tokens.
func (l *Lexer) Len() int { return len(l.tokens) - l.head }

// Empty reports whether no tokens are pending.
func (l *Lexer) Empty() bool { return l.Len() == 0 }

// Pending returns a copy of the pending tokens.
func (l *Lexer) Pending() []Token {
	return slices.Clone(l.tokens[l.head:])
}

// StartsWith reports whether the first pending token has the given kind.
func (l *Lexer) StartsWith(kind TokenKind) bool {
	tok, ok := l.Peek()

	return ok && tok.Kind == kind
}

// EndsWith reports whether the last pending token has the given kind.
func (l *Lexer) EndsWith(kind TokenKind) bool {
	return !l.Empty() && l.tokens[len(l.tokens)-1].Kind == kind
}

// Contains reports whether any pending token has the given kind.
func (l *Lexer) Contains(kind TokenKind) bool {
	return slices.ContainsFunc(l.tokens[l.head:], func(t Token) bool {
		return t.Kind == kind
	})
}

// CheckIdentifier fails unless tok is a plain identifier. The what argument
// names the construct being defined for the error message.
func (l *Lexer) CheckIdentifier(tok Token, what string) error {
	switch {
	case tok.Kind == TokenIdentifier:
		return nil

	case IsReserved(tok.Lexeme):
		return ErrReservedName.
			Errorf("Invalid reserved %s - '%s'", what, tok.Lexeme).
			With(slog.String("token", tok.Kind.String()))

	default:
		return ErrSyntax.
			Errorf("Invalid %s - '%s'", what, tok.Lexeme).
			With(slog.String("token", tok.Kind.String()))
	}
}

// remainder joins the pending lexemes with single spaces.
func (l *Lexer) remainder() string {
	parts := make([]string, 0, l.Len())
	for _, t := range l.tokens[l.head:] {
		parts = append(parts, t.Lexeme)
	}

	return strings.Join(parts, " ")
}
