package sk

import (
	"strings"
)

// Format renders a term inline. Application is left associative, so
// App(App(S,K),K) prints as "S K K" and only right operands that are
// applications get parentheses. Ref prints the referenced statement's name
// and FreeLeaf its identifier.
func (st *Store) Format(id NodeID) string {
	var b strings.Builder
	st.format(&b, id, false)
	return b.String()
}

func (st *Store) format(b *strings.Builder, id NodeID, paren bool) {
	switch n := st.Node(id).(type) {
	case S:
		b.WriteString("S")
	case K:
		b.WriteString("K")
	case Ref:
		b.WriteString(st.tree.StmtName(n.Stmt))
	case FreeLeaf:
		b.WriteString(st.tree.Name(n.Ident))
	case App:
		if paren {
			b.WriteByte('(')
		}
		st.format(b, n.Left, false)
		b.WriteByte(' ')
		st.format(b, n.Right, true)
		if paren {
			b.WriteByte(')')
		}
	default:
		b.WriteString("?")
	}
}
