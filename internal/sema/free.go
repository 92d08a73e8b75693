package sema

import "skc/internal/ast"

// FreeIn reports whether name occurs in expression id. Abstractions that
// bind the same name are not treated specially.
func FreeIn(tree *ast.Tree, id ast.ExprID, name string) bool {
	switch e := tree.Expr(id).(type) {
	case ast.IdentRef:
		return tree.Name(e.Var) == name
	case ast.Application:
		return FreeIn(tree, e.Left, name) || FreeIn(tree, e.Right, name)
	case ast.Abstraction:
		return FreeIn(tree, e.Body, name)
	}
	return false
}
