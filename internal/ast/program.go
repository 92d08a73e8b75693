package ast

import (
	"iter"

	"skc/internal/arena"
)

// Program is the decoded root record.
type Program struct {
	Stmts    StmtID
	Filename string
}

// NewProgram links stmts in order into a chain and wraps it with the file
// name.
func (t *Tree) NewProgram(filename string, stmts []StmtID) ProgramID {
	if t.err != nil {
		return NoProgramID
	}
	for i, s := range stmts {
		if !s.IsValid() {
			panic("ast: program with a missing statement")
		}
		if i > 0 {
			t.setNext(stmts[i-1], s)
		}
	}
	fp := t.strdup(filename)
	p, b := t.alloc(programSize)
	if b == nil {
		return NoProgramID
	}
	head := NoStmtID
	if len(stmts) > 0 {
		head = stmts[0]
	}
	arena.PutPtr(b, progStmts, arena.Ptr(head))
	arena.PutPtr(b, progFilename, fp)
	return ProgramID(p)
}

func (t *Tree) Program(id ProgramID) Program {
	b := t.record(arena.Ptr(id), programSize)
	return Program{
		Stmts:    StmtID(arena.ReadPtr(b, progStmts)),
		Filename: t.str(arena.ReadPtr(b, progFilename)),
	}
}

// Stmts yields the statements of the program with their index.
func (t *Tree) Stmts(id ProgramID) iter.Seq2[int, StmtID] {
	return func(yield func(int, StmtID) bool) {
		head := StmtID(arena.ReadPtr(t.record(arena.Ptr(id), programSize), progStmts))
		i := 0
		for s := head; s.IsValid(); s = t.Stmt(s).Next {
			if !yield(i, s) {
				return
			}
			i++
		}
	}
}

// Count walks the statement chain.
func (t *Tree) Count(id ProgramID) int {
	n := 0
	for range t.Stmts(id) {
		n++
	}
	return n
}
