package sk

// Reduce is the reduction entry point of the combinator graph. Evaluation is
// not part of this compiler; the term is returned unchanged.
func (st *Store) Reduce(id NodeID) NodeID {
	return id
}

// Equal compares two terms structurally. Ref nodes are equal when they name
// the same statement.
func (st *Store) Equal(a, b NodeID) bool {
	if a == b {
		return true
	}
	switch x := st.Node(a).(type) {
	case S:
		_, ok := st.Node(b).(S)
		return ok
	case K:
		_, ok := st.Node(b).(K)
		return ok
	case App:
		y, ok := st.Node(b).(App)
		return ok && st.Equal(x.Left, y.Left) && st.Equal(x.Right, y.Right)
	case Ref:
		y, ok := st.Node(b).(Ref)
		return ok && x.Stmt == y.Stmt
	case FreeLeaf:
		y, ok := st.Node(b).(FreeLeaf)
		return ok && st.tree.Name(x.Ident) == st.tree.Name(y.Ident)
	}
	return false
}

// ContainsFree reports whether a FreeLeaf named name occurs in the term.
// References are opaque: the tree they point to is already closed.
func (st *Store) ContainsFree(id NodeID, name string) bool {
	switch n := st.Node(id).(type) {
	case FreeLeaf:
		return st.tree.Name(n.Ident) == name
	case App:
		return st.ContainsFree(n.Left, name) || st.ContainsFree(n.Right, name)
	}
	return false
}

// Size counts the nodes of a term without following references.
func (st *Store) Size(id NodeID) int {
	if n, ok := st.Node(id).(App); ok {
		return 1 + st.Size(n.Left) + st.Size(n.Right)
	}
	return 1
}
