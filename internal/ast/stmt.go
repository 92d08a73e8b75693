package ast

import (
	"skc/internal/arena"
	"skc/internal/source"
)

// Stmt binds Var to Expr. Next links the program's statement chain.
type Stmt struct {
	Var  IdentID
	Expr ExprID
	Next StmtID
	Span source.Span
}

func (t *Tree) NewStmt(v IdentID, e ExprID, sp source.Span) StmtID {
	if t.err != nil {
		return NoStmtID
	}
	if !v.IsValid() || !e.IsValid() {
		panic("ast: statement without variable or expression")
	}
	p, b := t.alloc(stmtSize)
	if b == nil {
		return NoStmtID
	}
	arena.PutPtr(b, stmtVar, arena.Ptr(v))
	arena.PutPtr(b, stmtExpr, arena.Ptr(e))
	arena.PutU32(b, stmtStart, sp.Start)
	arena.PutU32(b, stmtEnd, sp.End)
	return StmtID(p)
}

func (t *Tree) Stmt(id StmtID) Stmt {
	b := t.record(arena.Ptr(id), stmtSize)
	return Stmt{
		Var:  IdentID(arena.ReadPtr(b, stmtVar)),
		Expr: ExprID(arena.ReadPtr(b, stmtExpr)),
		Next: StmtID(arena.ReadPtr(b, stmtNext)),
		Span: t.span(arena.ReadU32(b, stmtStart), arena.ReadU32(b, stmtEnd)),
	}
}

// StmtName returns the lexeme of the bound variable.
func (t *Tree) StmtName(id StmtID) string {
	return t.Name(IdentID(arena.ReadPtr(t.record(arena.Ptr(id), stmtSize), stmtVar)))
}

// Compiled returns the combinator tree cached for the statement, or
// arena.Nil before the converter reached it.
func (t *Tree) Compiled(id StmtID) arena.Ptr {
	return arena.ReadPtr(t.record(arena.Ptr(id), stmtSize), stmtCompiled)
}

// SetCompiled fills the compiled slot. The slot is written at most once.
func (t *Tree) SetCompiled(id StmtID, root arena.Ptr) {
	b := t.record(arena.Ptr(id), stmtSize)
	if !arena.ReadPtr(b, stmtCompiled).IsNil() {
		panic("ast: compiled slot written twice")
	}
	if root.IsNil() {
		panic("ast: empty compiled tree")
	}
	arena.PutPtr(b, stmtCompiled, root)
}

func (t *Tree) setNext(id, next StmtID) {
	arena.PutPtr(t.record(arena.Ptr(id), stmtSize), stmtNext, arena.Ptr(next))
}
