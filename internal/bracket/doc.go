// Package bracket translates curried lambda terms into S/K combinator
// terms by bracket abstraction.
//
// A body is compiled inside out. The innermost abstraction is compiled
// first into a term in which its variable, and every variable of the
// enclosing abstractions, is a FreeLeaf. Abstracting x out of such a term
// follows the usual rules:
//
//	[x] x           = S K K
//	[x] t           = K t            x not free in t
//	[x] (t x)       = t              x not free in t
//	[x] (t u)       = S ([x] t) ([x] u)
//
// A reference to an earlier statement becomes a Ref node that points at
// that statement's compiled tree; the tree itself is never copied.
package bracket
