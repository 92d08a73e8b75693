package bracket

import (
	"slices"
	"strings"

	"skc/internal/sk"
)

// term is a plain heap copy of a combinator term used to check what the
// compiled trees compute. References are expanded.
type term struct {
	op   byte // 'S', 'K', '@' or 'v'
	l, r *term
	name string
}

func expand(st *sk.Store, id sk.NodeID) *term {
	switch n := st.Node(id).(type) {
	case sk.S:
		return &term{op: 'S'}
	case sk.K:
		return &term{op: 'K'}
	case sk.App:
		return &term{op: '@', l: expand(st, n.Left), r: expand(st, n.Right)}
	case sk.Ref:
		return expand(st, n.Target)
	case sk.FreeLeaf:
		return &term{op: 'v', name: st.Tree().Name(n.Ident)}
	}
	panic("unknown node")
}

func v(name string) *term { return &term{op: 'v', name: name} }
func ap(l, r *term) *term { return &term{op: '@', l: l, r: r} }
func apply(t *term, args ...*term) *term {
	for _, a := range args {
		t = ap(t, a)
	}
	return t
}

// normalize reduces t in normal order, giving up after limit steps.
func normalize(t *term, limit int) (*term, bool) {
	for range limit {
		next, ok := step(t)
		if !ok {
			return t, true
		}
		t = next
	}
	return t, false
}

// step performs one leftmost outermost contraction.
func step(t *term) (*term, bool) {
	head, args := t, []*term(nil)
	for head.op == '@' {
		args = append([]*term{head.r}, args...)
		head = head.l
	}
	switch {
	case head.op == 'K' && len(args) >= 2:
		return apply(args[0], args[2:]...), true
	case head.op == 'S' && len(args) >= 3:
		f, g, x := args[0], args[1], args[2]
		return apply(ap(ap(f, x), ap(g, x)), args[3:]...), true
	}
	for i, a := range args {
		if r, ok := step(a); ok {
			out := slices.Clone(args)
			out[i] = r
			return apply(head, out...), true
		}
	}
	return t, false
}

func (t *term) String() string {
	var b strings.Builder
	t.write(&b, false)
	return b.String()
}

func (t *term) write(b *strings.Builder, paren bool) {
	switch t.op {
	case 'S', 'K':
		b.WriteByte(t.op)
	case 'v':
		b.WriteString(t.name)
	case '@':
		if paren {
			b.WriteByte('(')
		}
		t.l.write(b, false)
		b.WriteByte(' ')
		t.r.write(b, true)
		if paren {
			b.WriteByte(')')
		}
	}
}
