package token

var keywords = map[string]Kind{
	"let": KwLet,
}

// LookupKeyword reports whether ident is a keyword. Keywords are case
// sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
