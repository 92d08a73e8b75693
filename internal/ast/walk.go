package ast

// Inspect visits id and its subexpressions in depth-first order. When fn
// returns false the children of that node are skipped.
func (t *Tree) Inspect(id ExprID, fn func(ExprID, Expr) bool) {
	if !id.IsValid() {
		return
	}
	e := t.Expr(id)
	if !fn(id, e) {
		return
	}
	switch e := e.(type) {
	case Application:
		t.Inspect(e.Left, fn)
		t.Inspect(e.Right, fn)
	case Abstraction:
		t.Inspect(e.Body, fn)
	}
}
