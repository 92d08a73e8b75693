// Package ast stores the syntax tree of a lambda program inside an arena.
//
// Every node is a fixed-layout little-endian record written into one arena
// allocation; handles are typed wrappers around arena.Ptr and the zero
// handle means "none". Lexemes and the file name are NUL-terminated strings
// in the same arena. Nodes are never freed individually.
//
// Record layouts (byte offsets inside the payload):
//
//	Token    lexeme:0 row:8 col:12 ecol:16 start:20 end:24        (32)
//	Ident    token:0 next:8 start:16 end:20                       (24)
//	Expr     kind:0 start:4 end:8 a:16 b:24                       (32)
//	         Application a=left b=right, Abstraction a=params b=body,
//	         IdentRef a=ident
//	Stmt     var:0 expr:8 next:16 compiled:24 start:32 end:36     (40)
//	Program  stmts:0 filename:8                                   (16)
//
// Reads decode records into plain structs; expressions decode into one of
// Application, Abstraction or IdentRef.
package ast
