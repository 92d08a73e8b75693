package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexer
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001

	// parser
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectAssign      Code = 2003
	SynExpectSemicolon   Code = 2004
	SynExpectExpression  Code = 2005
	SynUnclosedParen     Code = 2006
	SynExpectParamsClose Code = 2007

	// scope checker
	CheckInfo           Code = 3000
	CheckRebinding      Code = 3001
	CheckUndeclared     Code = 3002
	CheckShadowedBinder Code = 3003

	// bracket converter
	ConvInfo              Code = 4000
	ConvUsedBeforeDefined Code = 4001
	ConvUnreachable       Code = 4002

	IOLoadFileError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectAssign:       "Expected '='",
	SynExpectSemicolon:    "Expected ';'",
	SynExpectExpression:   "Expected expression",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynExpectParamsClose:  "Expected '.' or '->' after parameters",
	CheckInfo:             "Scope information",
	CheckRebinding:        "top level name bound more than once",
	CheckUndeclared:       "non declared identifier used",
	CheckShadowedBinder:   "binder shadows a name already in scope",
	ConvInfo:              "Conversion information",
	ConvUsedBeforeDefined: "identifier used before being defined",
	ConvUnreachable:       "unreachable converter state",
	IOLoadFileError:       "I/O load file error",
}

// Phase names the pipeline stage a code belongs to.
type Phase uint8

const (
	PhaseUnknown Phase = iota
	PhaseLexer
	PhaseParser
	PhaseChecker
	PhaseConverter
	PhaseIO
)

func (c Code) Phase() Phase {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return PhaseLexer
	case ic >= 2000 && ic < 3000:
		return PhaseParser
	case ic >= 3000 && ic < 4000:
		return PhaseChecker
	case ic >= 4000 && ic < 5000:
		return PhaseConverter
	case ic >= 5000 && ic < 6000:
		return PhaseIO
	}
	return PhaseUnknown
}

// Tag is the bracketed phase label printed in front of a diagnostic.
func (c Code) Tag() string {
	switch c.Phase() {
	case PhaseLexer:
		return "[LEXER]"
	case PhaseParser:
		return "[PARSER]"
	case PhaseChecker:
		return "[CHECKER]"
	case PhaseConverter:
		return "[SK CONVERTER]"
	case PhaseIO:
		return "[IO]"
	}
	return "[UNKNOWN]"
}

func (c Code) ID() string {
	switch c.Phase() {
	case PhaseLexer:
		return fmt.Sprintf("LEX%04d", int(c))
	case PhaseParser:
		return fmt.Sprintf("SYN%04d", int(c))
	case PhaseChecker:
		return fmt.Sprintf("CHK%04d", int(c))
	case PhaseConverter:
		return fmt.Sprintf("CNV%04d", int(c))
	case PhaseIO:
		return fmt.Sprintf("IO%04d", int(c))
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
