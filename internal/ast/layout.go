package ast

const (
	tokenSize   = 32
	identSize   = 24
	exprSize    = 32
	stmtSize    = 40
	programSize = 16

	// NodeBlockSize is the aligned block that fits the largest record plus
	// its arena header.
	NodeBlockSize = 64
)

const (
	tokLexeme = 0
	tokRow    = 8
	tokCol    = 12
	tokECol   = 16
	tokStart  = 20
	tokEnd    = 24

	identToken = 0
	identNext  = 8
	identStart = 16
	identEnd   = 20

	exprKind  = 0
	exprStart = 4
	exprEnd   = 8
	exprA     = 16
	exprB     = 24

	stmtVar      = 0
	stmtExpr     = 8
	stmtNext     = 16
	stmtCompiled = 24
	stmtStart    = 32
	stmtEnd      = 36

	progStmts    = 0
	progFilename = 8
)
