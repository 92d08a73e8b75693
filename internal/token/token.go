package token

import (
	"skc/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Lambda, Assign, Semicolon, Comma, Dot, Arrow, LParen, RParen:
		return true
	default:
		return false
	}
}

// ClosesParams reports whether the token ends an abstraction's parameter list.
func (t Token) ClosesParams() bool {
	return t.Kind == Dot || t.Kind == Arrow
}
