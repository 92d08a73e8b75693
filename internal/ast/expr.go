package ast

import (
	"skc/internal/arena"
	"skc/internal/source"
)

// ExprKind is the stored discriminant of an expression record.
type ExprKind uint32

const (
	ExprInvalid ExprKind = iota
	ExprApplication
	ExprAbstraction
	ExprIdent
)

func (k ExprKind) String() string {
	switch k {
	case ExprApplication:
		return "Application"
	case ExprAbstraction:
		return "Abstraction"
	case ExprIdent:
		return "IdentRef"
	}
	return "Invalid"
}

// Expr is a decoded expression: Application, Abstraction or IdentRef.
type Expr interface {
	isExpr()
}

type Application struct {
	Left  ExprID
	Right ExprID
	Span  source.Span
}

type Abstraction struct {
	Params IdentID
	Body   ExprID
	Span   source.Span
}

type IdentRef struct {
	Var  IdentID
	Span source.Span
}

func (Application) isExpr() {}
func (Abstraction) isExpr() {}
func (IdentRef) isExpr()    {}

func (t *Tree) newExpr(kind ExprKind, sp source.Span, a, b arena.Ptr) ExprID {
	p, rec := t.alloc(exprSize)
	if rec == nil {
		return NoExprID
	}
	writeExpr(rec, kind, sp, a, b)
	return ExprID(p)
}

func writeExpr(rec []byte, kind ExprKind, sp source.Span, a, b arena.Ptr) {
	arena.PutU32(rec, exprKind, uint32(kind))
	arena.PutU32(rec, exprStart, sp.Start)
	arena.PutU32(rec, exprEnd, sp.End)
	arena.PutPtr(rec, exprA, a)
	arena.PutPtr(rec, exprB, b)
}

// NewApplication builds left applied to right; the span covers both.
func (t *Tree) NewApplication(left, right ExprID) ExprID {
	if t.err != nil {
		return NoExprID
	}
	if !left.IsValid() || !right.IsValid() {
		panic("ast: application with a missing operand")
	}
	sp := t.ExprSpan(left).Cover(t.ExprSpan(right))
	return t.newExpr(ExprApplication, sp, arena.Ptr(left), arena.Ptr(right))
}

// NewAbstraction builds a lambda over the params chain.
func (t *Tree) NewAbstraction(sp source.Span, params IdentID, body ExprID) ExprID {
	if t.err != nil {
		return NoExprID
	}
	if !params.IsValid() || !body.IsValid() {
		panic("ast: abstraction without parameters or body")
	}
	return t.newExpr(ExprAbstraction, sp, arena.Ptr(params), arena.Ptr(body))
}

// NewIdentRef builds a reference to a single identifier.
func (t *Tree) NewIdentRef(v IdentID) ExprID {
	if t.err != nil {
		return NoExprID
	}
	if !v.IsValid() {
		panic("ast: identifier reference without identifier")
	}
	return t.newExpr(ExprIdent, t.Ident(v).Span, arena.Ptr(v), arena.Nil)
}

// SetAbstraction rewrites an abstraction record in place.
func (t *Tree) SetAbstraction(id ExprID, params IdentID, body ExprID) {
	rec := t.record(arena.Ptr(id), exprSize)
	if ExprKind(arena.ReadU32(rec, exprKind)) != ExprAbstraction {
		panic("ast: SetAbstraction on a non-abstraction")
	}
	if !params.IsValid() || !body.IsValid() {
		panic("ast: abstraction without parameters or body")
	}
	arena.PutPtr(rec, exprA, arena.Ptr(params))
	arena.PutPtr(rec, exprB, arena.Ptr(body))
}

// ExprKindOf returns the stored discriminant without decoding.
func (t *Tree) ExprKindOf(id ExprID) ExprKind {
	return ExprKind(arena.ReadU32(t.record(arena.Ptr(id), exprSize), exprKind))
}

func (t *Tree) ExprSpan(id ExprID) source.Span {
	rec := t.record(arena.Ptr(id), exprSize)
	return t.span(arena.ReadU32(rec, exprStart), arena.ReadU32(rec, exprEnd))
}

// Expr decodes an expression record. A record with an unknown kind decodes
// to nil.
func (t *Tree) Expr(id ExprID) Expr {
	rec := t.record(arena.Ptr(id), exprSize)
	sp := t.span(arena.ReadU32(rec, exprStart), arena.ReadU32(rec, exprEnd))
	a, b := arena.ReadPtr(rec, exprA), arena.ReadPtr(rec, exprB)
	switch ExprKind(arena.ReadU32(rec, exprKind)) {
	case ExprApplication:
		return Application{Left: ExprID(a), Right: ExprID(b), Span: sp}
	case ExprAbstraction:
		return Abstraction{Params: IdentID(a), Body: ExprID(b), Span: sp}
	case ExprIdent:
		return IdentRef{Var: IdentID(a), Span: sp}
	}
	return nil
}
