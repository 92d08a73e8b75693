// Package sk holds combinator trees built from S, K and application nodes.
//
// Nodes live in the same arena as the syntax tree they were compiled from.
// A Ref node links to the compiled tree of another statement instead of
// copying it, so a forest is a DAG. FreeLeaf stands for a bound variable
// that an enclosing abstraction has not yet eliminated; it only appears in
// intermediate terms.
//
// Node record (24 bytes): kind:0 a:8 b:16.
//
//	App       a=left    b=right
//	Ref       a=target  b=statement
//	FreeLeaf  a=ident
package sk
