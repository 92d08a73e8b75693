package sema

import "skc/internal/ast"

// Curry rewrites every abstraction of the program into nested
// single-parameter abstractions, in place:
//
//	λx,y,z.E  =>  λx.λy.λz.E
//
// Each new abstraction spans the parameter it binds. Abstractions that
// already have one parameter are left unchanged.
func Curry(tree *ast.Tree, prog ast.ProgramID) error {
	for _, stmt := range tree.Stmts(prog) {
		curryExpr(tree, tree.Stmt(stmt).Expr)
		if err := tree.Err(); err != nil {
			return err
		}
	}
	return nil
}

func curryExpr(tree *ast.Tree, id ast.ExprID) {
	switch e := tree.Expr(id).(type) {
	case ast.Application:
		curryExpr(tree, e.Left)
		curryExpr(tree, e.Right)
	case ast.Abstraction:
		rest := tree.Detach(e.Params)
		if rest.IsValid() {
			body := curryChain(tree, rest, e.Body)
			if !body.IsValid() {
				return
			}
			tree.SetAbstraction(id, e.Params, body)
			e.Body = body
		}
		curryExpr(tree, e.Body)
	}
}

// curryChain wraps body in one abstraction per identifier of the chain,
// the first identifier outermost.
func curryChain(tree *ast.Tree, param ast.IdentID, body ast.ExprID) ast.ExprID {
	next := tree.Detach(param)
	if next.IsValid() {
		body = curryChain(tree, next, body)
		if !body.IsValid() {
			return ast.NoExprID
		}
	}
	return tree.NewAbstraction(tree.Ident(param).Span, param, body)
}
