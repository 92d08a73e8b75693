package ast

import (
	"skc/internal/arena"
	"skc/internal/source"
)

// Token is a decoded token record. Row and Col are 1-based; ECol is the
// exclusive end column on the same row.
type Token struct {
	Lexeme string
	Row    uint32
	Col    uint32
	ECol   uint32
	Span   source.Span
}

// NewToken copies lexeme into the arena and records its position.
func (t *Tree) NewToken(lexeme string, row, col, ecol uint32, sp source.Span) TokenID {
	lp := t.strdup(lexeme)
	p, b := t.alloc(tokenSize)
	if b == nil {
		return NoTokenID
	}
	arena.PutPtr(b, tokLexeme, lp)
	arena.PutU32(b, tokRow, row)
	arena.PutU32(b, tokCol, col)
	arena.PutU32(b, tokECol, ecol)
	arena.PutU32(b, tokStart, sp.Start)
	arena.PutU32(b, tokEnd, sp.End)
	return TokenID(p)
}

func (t *Tree) Token(id TokenID) Token {
	b := t.record(arena.Ptr(id), tokenSize)
	return Token{
		Lexeme: t.str(arena.ReadPtr(b, tokLexeme)),
		Row:    arena.ReadU32(b, tokRow),
		Col:    arena.ReadU32(b, tokCol),
		ECol:   arena.ReadU32(b, tokECol),
		Span:   t.span(arena.ReadU32(b, tokStart), arena.ReadU32(b, tokEnd)),
	}
}

// Lexeme returns only the token text.
func (t *Tree) Lexeme(id TokenID) string {
	b := t.record(arena.Ptr(id), tokenSize)
	return t.str(arena.ReadPtr(b, tokLexeme))
}
