package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwLet represents the optional 'let' keyword.
	KwLet // let

	Lambda    // λ or \
	Assign    // =
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Arrow     // ->
	LParen    // (
	RParen    // )
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwLet:     "KwLet",
	Lambda:    "Lambda",
	Assign:    "Assign",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Dot:       "Dot",
	Arrow:     "Arrow",
	LParen:    "LParen",
	RParen:    "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindSpelling = [...]string{
	EOF:       "end of file",
	Ident:     "identifier",
	KwLet:     "'let'",
	Lambda:    "'λ'",
	Assign:    "'='",
	Semicolon: "';'",
	Comma:     "','",
	Dot:       "'.'",
	Arrow:     "'->'",
	LParen:    "'('",
	RParen:    "')'",
}

// Describe returns the user facing spelling used in parser messages.
func (k Kind) Describe() string {
	if int(k) < len(kindSpelling) && kindSpelling[k] != "" {
		return kindSpelling[k]
	}
	return "invalid token"
}
