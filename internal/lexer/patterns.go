package lexer

// The scanner searches the remaining input with each pattern and advances
// by the match length, so every pattern must start with '^' to match at the
// cursor only.
const (
	// identifiers are letters, '_' and digits (not first) plus trailing primes;
	// U+03BB is excluded so "λx" lexes as Lambda Ident
	identPattern   = `^(?:_|[^\PL\x{03BB}])(?:[_']|[^\PL\x{03BB}]|\pN)*`
	spacePattern   = `^[ \t\r\f\v]+`
	newlinePattern = `^\n`
	commentPattern = `^(?:#|--)[^\n]*`
	punctPattern   = `^(?:->|[λ\\=;,.()])`
	anyPattern     = `(?s)^.`
)
