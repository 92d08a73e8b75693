// Package symbols holds the two name-resolution structures of a program:
// Table, the top-level definitions keyed by name, and Binders, the stack of
// lambda-bound variables currently in scope.
package symbols
