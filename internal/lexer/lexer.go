// Package lexer turns a source file into tokens. Scanning is driven by a
// goparsec scanner matching anchored regular expressions at the cursor.
package lexer

import (
	"fmt"

	parsec "github.com/prataprc/goparsec"

	"skc/internal/diag"
	"skc/internal/source"
	"skc/internal/token"
)

type Lexer struct {
	file *source.File
	scan parsec.Scanner
	opts Options
	look *token.Token   // one token lookahead
	hold []token.Trivia // leading trivia of the next token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		scan: parsec.NewScanner(file.Content),
		opts: opts,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.scan.Endof() {
		off := lx.offset()
		return token.Token{
			Kind: token.EOF,
			Span: source.Span{File: lx.file.ID, Start: off, End: off},
		}
	}

	var tok token.Token
	switch {
	case lx.match(identPattern, &tok):
		if k, ok := token.LookupKeyword(tok.Text); ok {
			tok.Kind = k
		} else {
			tok.Kind = token.Ident
		}
	case lx.match(punctPattern, &tok):
		tok.Kind = punctKind(tok.Text)
	default:
		// anyPattern also matches a lone invalid UTF-8 byte
		lx.match(anyPattern, &tok)
		tok.Kind = token.Invalid
		lx.report(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", tok.Text), tok.Text)
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the rest of the file, EOF included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) collectLeadingTrivia() {
	for !lx.scan.Endof() {
		var tr token.Token
		switch {
		case lx.match(spacePattern, &tr):
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: tr.Span, Text: tr.Text})
		case lx.match(newlinePattern, &tr):
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: tr.Span, Text: tr.Text})
		case lx.match(commentPattern, &tr):
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: tr.Span, Text: tr.Text})
		default:
			return
		}
	}
}

// match consumes pattern at the cursor and fills tok's span and text.
func (lx *Lexer) match(pattern string, tok *token.Token) bool {
	start := lx.offset()
	b, next := lx.scan.Match(pattern)
	if len(b) == 0 {
		return false
	}
	lx.scan = next
	*tok = lx.tokenFrom(start)
	return true
}

func (lx *Lexer) tokenFrom(start uint32) token.Token {
	end := lx.offset()
	return token.Token{
		Span: source.Span{File: lx.file.ID, Start: start, End: end},
		Text: string(lx.file.Content[start:end]),
	}
}

func (lx *Lexer) offset() uint32 {
	// file sizes are bounded to uint32 by source.FileSet.Load
	return uint32(lx.scan.GetCursor()) // #nosec G115
}

func punctKind(text string) token.Kind {
	switch text {
	case "λ", `\`:
		return token.Lambda
	case "=":
		return token.Assign
	case ";":
		return token.Semicolon
	case ",":
		return token.Comma
	case ".":
		return token.Dot
	case "->":
		return token.Arrow
	case "(":
		return token.LParen
	case ")":
		return token.RParen
	}
	return token.Invalid
}
