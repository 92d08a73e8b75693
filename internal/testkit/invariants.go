// Package testkit holds structural checks shared by the pipeline tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"skc/internal/ast"
	"skc/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed program:
// statements are non-empty, ordered and inside the file; every expression
// lies inside its statement; an application covers both operands; an
// abstraction covers its body.
func CheckSpanInvariants(tree *ast.Tree, prog ast.ProgramID, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, id := range tree.Stmts(prog) {
		st := tree.Stmt(id)
		sp := st.Span
		if sp.Empty() {
			return fmt.Errorf("stmt %d: empty span %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("stmt %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > size {
			return fmt.Errorf("stmt %d: span end beyond content: %d > %d", i, sp.End, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("stmt %d: span %v overlaps the previous statement", i, sp)
		}
		prevEnd = sp.End

		if v := tree.Ident(st.Var).Span; !sp.Contains(v) {
			return fmt.Errorf("stmt %d: name span %v outside %v", i, v, sp)
		}
		if err := checkExpr(tree, st.Expr, sp); err != nil {
			return fmt.Errorf("stmt %d (%s): %w", i, tree.StmtName(id), err)
		}
	}
	return nil
}

func checkExpr(tree *ast.Tree, root ast.ExprID, outer source.Span) error {
	var err error
	tree.Inspect(root, func(id ast.ExprID, e ast.Expr) bool {
		sp := tree.ExprSpan(id)
		if !outer.Contains(sp) {
			err = fmt.Errorf("%s span %v outside %v", tree.ExprKindOf(id), sp, outer)
			return false
		}
		switch e := e.(type) {
		case ast.Application:
			l, r := tree.ExprSpan(e.Left), tree.ExprSpan(e.Right)
			if !sp.Contains(l) || !sp.Contains(r) {
				err = fmt.Errorf("application %v does not cover %v and %v", sp, l, r)
				return false
			}
		case ast.Abstraction:
			if b := tree.ExprSpan(e.Body); !sp.Contains(b) {
				err = fmt.Errorf("abstraction %v does not cover body %v", sp, b)
				return false
			}
		}
		return true
	})
	return err
}

// CheckCurried reports the first abstraction that still binds more than
// one parameter.
func CheckCurried(tree *ast.Tree, prog ast.ProgramID) error {
	var err error
	for _, id := range tree.Stmts(prog) {
		tree.Inspect(tree.Stmt(id).Expr, func(eid ast.ExprID, e ast.Expr) bool {
			abs, ok := e.(ast.Abstraction)
			if !ok {
				return true
			}
			if n := tree.ChainLen(abs.Params); n != 1 {
				err = fmt.Errorf("%s: abstraction at %v binds %d parameters", tree.StmtName(id), tree.ExprSpan(eid), n)
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}
