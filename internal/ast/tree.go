package ast

import (
	"fmt"

	"skc/internal/arena"
	"skc/internal/source"
)

// Tree reads and writes syntax records of one source file inside an arena.
//
// Allocation failures are sticky: the first one is kept in Err and every
// later constructor returns the zero handle. Constructors panic when a
// required child is missing, since the parser never produces such a tree.
type Tree struct {
	arena *arena.Arena
	file  source.FileID
	err   error
}

// NewTree binds a tree to an arena and the file its spans refer to.
func NewTree(a *arena.Arena, file source.FileID) *Tree {
	return &Tree{arena: a, file: file}
}

func (t *Tree) Arena() *arena.Arena { return t.arena }

func (t *Tree) File() source.FileID { return t.file }

// Err returns the first allocation error, if any.
func (t *Tree) Err() error { return t.err }

func (t *Tree) span(start, end uint32) source.Span {
	return source.Span{File: t.file, Start: start, End: end}
}

func (t *Tree) alloc(size uint64) (arena.Ptr, []byte) {
	if t.err != nil {
		return arena.Nil, nil
	}
	p, err := t.arena.Alloc(size)
	if err != nil {
		t.err = fmt.Errorf("ast: %w", err)
		return arena.Nil, nil
	}
	return p, t.record(p, size)
}

func (t *Tree) strdup(s string) arena.Ptr {
	if t.err != nil {
		return arena.Nil
	}
	p, err := t.arena.Strdup(s)
	if err != nil {
		t.err = fmt.Errorf("ast: %w", err)
		return arena.Nil
	}
	return p
}

func (t *Tree) str(p arena.Ptr) string {
	s, err := t.arena.String(p)
	if err != nil {
		panic(fmt.Errorf("ast: bad string handle %s: %w", p, err))
	}
	return s
}

// record returns the payload of a node. A handle that does not address a
// live record of at least size bytes is a programming error.
func (t *Tree) record(p arena.Ptr, size uint64) []byte {
	b, err := t.arena.Bytes(p)
	if err != nil {
		panic(fmt.Errorf("ast: bad handle %s: %w", p, err))
	}
	if uint64(len(b)) < size {
		panic(fmt.Errorf("ast: handle %s addresses %d bytes, want %d", p, len(b), size))
	}
	return b
}
