package symbols

import "skc/internal/ast"

const (
	bindersInitialCap = 20
	bindersSlack      = 10
)

type binder struct {
	name     string
	tok      ast.TokenID
	boundary bool
}

// Binders is the stack of lambda-bound variables in lexical scope. A
// boundary entry separates the binders of an abstraction on the left of an
// application from the ones pushed while checking its right side.
//
// Capacity doubles when the stack is full and halves when fewer than a fifth
// of the slots (minus a slack of ten) are in use, never going below the
// initial capacity.
type Binders struct {
	items []binder
	top   int
}

func NewBinders() *Binders {
	return &Binders{items: make([]binder, bindersInitialCap)}
}

func (b *Binders) push(e binder) {
	if b.top == len(b.items) {
		grown := make([]binder, len(b.items)*2)
		copy(grown, b.items[:b.top])
		b.items = grown
	}
	b.items[b.top] = e
	b.top++
}

// Push binds name, introduced by tok.
func (b *Binders) Push(name string, tok ast.TokenID) {
	b.push(binder{name: name, tok: tok})
}

// PushBoundary opens a new frame.
func (b *Binders) PushBoundary() {
	b.push(binder{boundary: true})
}

// Pop removes the top entry, binder or boundary. It reports false on an
// empty stack.
func (b *Binders) Pop() bool {
	if b.top == 0 {
		return false
	}
	b.top--
	b.items[b.top] = binder{}
	if c := len(b.items); c > bindersInitialCap && b.top+bindersSlack < c/5 {
		shrunk := make([]binder, max(c/2, bindersInitialCap))
		copy(shrunk, b.items[:b.top])
		b.items = shrunk
	}
	return true
}

// Lookup finds the innermost binder named name, looking through frame
// boundaries.
func (b *Binders) Lookup(name string) (ast.TokenID, bool) {
	for i := b.top - 1; i >= 0; i-- {
		if e := b.items[i]; !e.boundary && e.name == name {
			return e.tok, true
		}
	}
	return ast.NoTokenID, false
}

// Exists reports whether name is bound anywhere on the stack.
func (b *Binders) Exists(name string) bool {
	_, ok := b.Lookup(name)
	return ok
}

// FrameLen counts the binders above the nearest boundary.
func (b *Binders) FrameLen() int {
	n := 0
	for i := b.top - 1; i >= 0 && !b.items[i].boundary; i-- {
		n++
	}
	return n
}

// Len counts every entry, boundaries included.
func (b *Binders) Len() int { return b.top }

// Cap returns the current capacity.
func (b *Binders) Cap() int { return len(b.items) }

// Clear empties the stack and restores the initial capacity.
func (b *Binders) Clear() {
	if len(b.items) != bindersInitialCap {
		b.items = make([]binder, bindersInitialCap)
	} else {
		clear(b.items[:b.top])
	}
	b.top = 0
}
