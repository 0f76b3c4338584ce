package lang

import (
	"log/slog"
	"strings"
)

// Parser builds [Code] trees from text, one top-level expression per call.
//
// A Parser is stateful only while a function definition spans several
// calls: tokens are buffered until the closing end keyword arrives.
type Parser struct {
	settings

	lexer Lexer
}

// NewParser returns a Parser with an empty token buffer.
func NewParser(opts ...Option) *Parser {
	return &Parser{settings: makeSettings(opts...)}
}

// Parse tokenizes text and returns the expression it completes.
//
// If the buffer holds a function definition without its end keyword, Parse
// returns [NoOp] and keeps the tokens for the next call. Any error clears
// the buffer.
func (p *Parser) Parse(text string) (Code, error) {
	if err := p.lexer.Tokenize(text); err != nil {
		p.lexer.Clear()
		p.logger.Trace("tokenize failed", slog.Any("error", err))

		return nil, err
	}

	if p.lexer.StartsWith(TokenDefun) && !p.lexer.EndsWith(TokenEnd) {
		p.logger.Trace("definition pending", slog.Int("tokens", p.lexer.Len()))

		return NoOp{}, nil
	}

	code, err := p.parseCode()
	if err != nil {
		p.lexer.Clear()
		p.logger.Trace("parse failed", slog.Any("error", err))

		return nil, err
	}

	if !p.lexer.Empty() {
		rest := p.lexer.remainder()
		p.lexer.Clear()

		return nil, ErrSyntax.
			Errorf("Invalid expression - '%s'", strings.TrimSpace(text)).
			With(slog.String("remainder", rest))
	}

	p.logger.Trace("parsed", slog.String("code", Format(code)))

	return code, nil
}

// Pending reports whether a partial function definition is buffered.
func (p *Parser) Pending() bool { return !p.lexer.Empty() }

// Reset discards any buffered tokens.
func (p *Parser) Reset() { p.lexer.Clear() }

func (p *Parser) parseCode() (Code, error) {
	tok, ok := p.lexer.Next()
	if !ok {
		return nil, ErrIncomplete.Errorf("Expecting token")
	}

	switch tok.Kind {
	case TokenLiteral:
		n, err := parseNumber(tok.Lexeme)
		if err != nil {
			return nil, ErrSyntax.Errorf("Invalid number - '%s'", tok.Lexeme).Wrap(err)
		}

		return &Literal{Value: Number(n), Source: tok.Lexeme}, nil

	case TokenConstant:
		v, ok := constants[tok.Lexeme]
		if !ok {
			return nil, ErrSyntax.Errorf("Unknown constant - '%s'", tok.Lexeme)
		}

		return &Literal{Value: v, Source: tok.Lexeme}, nil

	case TokenIdentifier:
		return &GetVariable{Ident: tok.Lexeme}, nil

	case TokenDefVar:
		name, expr, err := p.parseBinding("Incomplete variable definition", "Invalid variable definition name")
		if err != nil {
			return nil, err
		}

		return &DefineVariable{Ident: name, Expr: expr}, nil

	case TokenSetVar:
		name, expr, err := p.parseBinding("Incomplete set variable", "Invalid set variable name")
		if err != nil {
			return nil, err
		}

		return &SetVariable{Ident: name, Expr: expr}, nil

	case TokenBinaryOp:
		return p.parseBinaryOp(tok.Lexeme)

	case TokenUnaryOp:
		operand, err := p.parseCode()
		if err != nil {
			return nil, err
		}

		return NewUnaryOp(tok.Lexeme, operand)

	case TokenSpecial:
		if tok.Lexeme != kwXPrint {
			return nil, ErrSyntax.Errorf("Unknown special ftn - %s", tok.Lexeme)
		}

		expr, err := p.parseCode()
		if err != nil {
			return nil, err
		}

		return &PrintAndReturn{Expr: expr}, nil

	case TokenDefun:
		return p.parseFunction()

	case TokenFuncall:
		return p.parseCall()

	case TokenIf:
		return p.parseConditional()

	case TokenBegin:
		return nil, ErrSyntax.Errorf("Invalid expression containing begin")

	case TokenEnd, TokenCallEnd:
		return nil, ErrSyntax.Errorf("Invalid expression containing end")

	case TokenThen:
		return nil, ErrSyntax.Errorf("Invalid expression containing then")

	case TokenElse:
		return nil, ErrSyntax.Errorf("Invalid expression containing else")

	case TokenFi:
		return nil, ErrSyntax.Errorf("Invalid expression containing fi")

	default:
		return nil, ErrSyntax.Errorf("Unexpected token - '%s'", tok.Lexeme)
	}
}

// parseBinding reads the name and value of var and = expressions.
func (p *Parser) parseBinding(incomplete, invalid string) (string, Code, error) {
	tok, ok := p.lexer.Next()
	if !ok {
		return "", nil, ErrIncomplete.Errorf("%s", incomplete)
	}

	if tok.Kind != TokenIdentifier {
		return "", nil, ErrSyntax.Errorf("%s - '%s'", invalid, tok.Lexeme).
			With(slog.String("token", tok.Kind.String()))
	}

	expr, err := p.parseCode()
	if err != nil {
		return "", nil, err
	}

	return tok.Lexeme, expr, nil
}

func (p *Parser) parseBinaryOp(op string) (Code, error) {
	left, err := p.parseCode()
	if err != nil {
		return nil, err
	}

	right, err := p.parseCode()
	if err != nil {
		return nil, err
	}

	return NewBinaryOp(op, left, right)
}

// parseFunction reads: name param* begin expr* end.
func (p *Parser) parseFunction() (Code, error) {
	name, ok := p.lexer.Next()
	if !ok {
		return nil, ErrIncomplete.Errorf("Invalid function definition")
	}

	if err := p.lexer.CheckIdentifier(name, "function name definition"); err != nil {
		return nil, err
	}

	var params []string

	for {
		tok, ok := p.lexer.Next()
		if !ok {
			return nil, ErrIncomplete.Errorf("Invalid function definition/parameters")
		}

		if tok.Kind == TokenBegin {
			break
		}

		if err := p.lexer.CheckIdentifier(tok, "function parameter definition"); err != nil {
			return nil, err
		}

		params = append(params, tok.Lexeme)
	}

	var body []Code

	for {
		tok, ok := p.lexer.Peek()
		if !ok {
			return nil, ErrIncomplete.Errorf("Invalid function definition/body")
		}

		if tok.Kind == TokenEnd {
			p.lexer.Next()

			break
		}

		expr, err := p.parseCode()
		if err != nil {
			return nil, err
		}

		body = append(body, expr)
	}

	return &FunctionDefinition{Ident: name.Lexeme, Params: params, Body: body}, nil
}

// parseCall reads: name arg* cend.
func (p *Parser) parseCall() (Code, error) {
	name, ok := p.lexer.Next()
	if !ok {
		return nil, ErrIncomplete.Errorf("Invalid function call")
	}

	if err := p.lexer.CheckIdentifier(name, "function call name"); err != nil {
		return nil, err
	}

	var args []Code

	for {
		tok, ok := p.lexer.Peek()
		if !ok {
			return nil, ErrIncomplete.Errorf("Invalid function call/arguments")
		}

		if tok.Kind == TokenCallEnd {
			p.lexer.Next()

			break
		}

		arg, err := p.parseCode()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	return &FunctionCall{Ident: name.Lexeme, Args: args}, nil
}

// parseConditional reads: cond ? then : else fi, or cond ? then fi.
func (p *Parser) parseConditional() (Code, error) {
	cond, _, err := p.parseBranch(TokenThen, false)
	if err != nil {
		return nil, err
	}

	then, oneArmed, err := p.parseBranch(TokenElse, true)
	if err != nil {
		return nil, err
	}

	if oneArmed {
		return &Conditional{Cond: cond, Then: then}, nil
	}

	otherwise, _, err := p.parseBranch(TokenFi, false)
	if err != nil {
		return nil, err
	}

	return &Conditional{Cond: cond, Then: then, Else: otherwise}, nil
}

// parseBranch reads one expression followed by the delimiter want. When
// orFi is set, fi is accepted in place of want and reported by fi.
func (p *Parser) parseBranch(want TokenKind, orFi bool) (code Code, fi bool, err error) {
	code, err = p.parseCode()
	if err != nil {
		return nil, false, err
	}

	tok, ok := p.lexer.Peek()
	if !ok {
		return nil, false, ErrIncomplete.
			Errorf("Incomplete if expression - missing '%s'", want)
	}

	switch {
	case tok.Kind == want:
		p.lexer.Next()

		return code, false, nil

	case orFi && tok.Kind == TokenFi:
		p.lexer.Next()

		return code, true, nil

	default:
		return nil, false, ErrSyntax.
			Errorf("Invalid if expression - expecting '%s'", want).
			With(slog.String("found", tok.Lexeme))
	}
}
