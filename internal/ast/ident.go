package ast

import (
	"iter"

	"skc/internal/arena"
	"skc/internal/source"
)

// Ident is one identifier of a chain. A chain is the parameter list of an
// abstraction; a lone identifier has no Next. Span covers the identifier and
// every identifier after it in the chain.
type Ident struct {
	Token TokenID
	Next  IdentID
	Span  source.Span
}

// NewIdent prepends tok to the chain starting at next.
func (t *Tree) NewIdent(tok TokenID, next IdentID) IdentID {
	if t.err != nil {
		return NoIdentID
	}
	if !tok.IsValid() {
		panic("ast: identifier without token")
	}
	sp := t.Token(tok).Span
	if next.IsValid() {
		sp = sp.Cover(t.Ident(next).Span)
	}
	p, b := t.alloc(identSize)
	if b == nil {
		return NoIdentID
	}
	arena.PutPtr(b, identToken, arena.Ptr(tok))
	arena.PutPtr(b, identNext, arena.Ptr(next))
	arena.PutU32(b, identStart, sp.Start)
	arena.PutU32(b, identEnd, sp.End)
	return IdentID(p)
}

func (t *Tree) Ident(id IdentID) Ident {
	b := t.record(arena.Ptr(id), identSize)
	return Ident{
		Token: TokenID(arena.ReadPtr(b, identToken)),
		Next:  IdentID(arena.ReadPtr(b, identNext)),
		Span:  t.span(arena.ReadU32(b, identStart), arena.ReadU32(b, identEnd)),
	}
}

// Name returns the lexeme of the identifier's token.
func (t *Tree) Name(id IdentID) string {
	b := t.record(arena.Ptr(id), identSize)
	return t.Lexeme(TokenID(arena.ReadPtr(b, identToken)))
}

// Detach cuts the chain after id and shrinks its span to its own token.
// It returns the identifier that followed.
func (t *Tree) Detach(id IdentID) IdentID {
	b := t.record(arena.Ptr(id), identSize)
	next := IdentID(arena.ReadPtr(b, identNext))
	if !next.IsValid() {
		return NoIdentID
	}
	sp := t.Token(TokenID(arena.ReadPtr(b, identToken))).Span
	arena.PutPtr(b, identNext, arena.Ptr(NoIdentID))
	arena.PutU32(b, identStart, sp.Start)
	arena.PutU32(b, identEnd, sp.End)
	return next
}

// Chain yields id and every identifier linked after it.
func (t *Tree) Chain(id IdentID) iter.Seq[IdentID] {
	return func(yield func(IdentID) bool) {
		for cur := id; cur.IsValid(); cur = t.Ident(cur).Next {
			if !yield(cur) {
				return
			}
		}
	}
}

// ChainLen counts the identifiers of a chain.
func (t *Tree) ChainLen(id IdentID) int {
	n := 0
	for range t.Chain(id) {
		n++
	}
	return n
}
