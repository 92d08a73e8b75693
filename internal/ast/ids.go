package ast

import "skc/internal/arena"

type (
	TokenID   arena.Ptr
	IdentID   arena.Ptr
	ExprID    arena.Ptr
	StmtID    arena.Ptr
	ProgramID arena.Ptr
)

const (
	NoTokenID   TokenID   = 0
	NoIdentID   IdentID   = 0
	NoExprID    ExprID    = 0
	NoStmtID    StmtID    = 0
	NoProgramID ProgramID = 0
)

func (id TokenID) IsValid() bool   { return id != NoTokenID }
func (id IdentID) IsValid() bool   { return id != NoIdentID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ProgramID) IsValid() bool { return id != NoProgramID }
