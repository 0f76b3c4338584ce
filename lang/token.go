package lang

import "strconv"

// TokenKind classifies a lexeme.
type TokenKind uint8

const (
	TokenIdentifier TokenKind = iota
	TokenLiteral
	TokenConstant
	TokenBinaryOp
	TokenUnaryOp
	TokenSpecial
	TokenDefVar
	TokenSetVar
	TokenDefun
	TokenFuncall
	TokenBegin
	TokenEnd
	TokenCallEnd
	TokenIf
	TokenThen
	TokenElse
	TokenFi
)

var tokenKindName = [...]string{
	TokenIdentifier: "Identifier",
	TokenLiteral:    "Literal",
	TokenConstant:   "Constant",
	TokenBinaryOp:   "BinaryOp",
	TokenUnaryOp:    "UnaryOp",
	TokenSpecial:    "SpecialFtn",
	TokenDefVar:     "DefVar",
	TokenSetVar:     "SetVar",
	TokenDefun:      "Defun",
	TokenFuncall:    "Funcall",
	TokenBegin:      "Begin",
	TokenEnd:        "End",
	TokenCallEnd:    "CEnd",
	TokenIf:         "If",
	TokenThen:       "Then",
	TokenElse:       "Else",
	TokenFi:         "Fi",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindName) {
		return tokenKindName[k]
	}

	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a classified lexeme.
type Token struct {
	Kind   TokenKind
	Lexeme string
}

func (t Token) String() string { return t.Lexeme }
