package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"skc/internal/source"
	"skc/internal/token"
)

// TokenRow is one token of a dump. Line and Col are 1-based, EndCol is
// exclusive, like the positions the parser records.
type TokenRow struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Line    uint32   `json:"line"`
	Col     uint32   `json:"col"`
	EndLine uint32   `json:"end_line"`
	EndCol  uint32   `json:"end_col"`
	Leading []string `json:"leading,omitempty"`
}

// tokenRows resolves positions up to and including EOF.
func tokenRows(tokens []token.Token, fs *source.FileSet) []TokenRow {
	rows := make([]TokenRow, 0, len(tokens))
	for _, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		row := TokenRow{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Line:    start.Line,
			Col:     start.Col,
			EndLine: end.Line,
			EndCol:  end.Col,
		}
		for _, tr := range tok.Leading {
			row.Leading = append(row.Leading, tr.Kind.String())
		}
		rows = append(rows, row)
		if tok.Kind == token.EOF {
			break
		}
	}
	return rows
}

// FormatTokensPretty prints one token per line:
//
//	  2: Assign     "=" at 1:3-1:4 (leading: Space)
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var sb strings.Builder
	for i, row := range tokenRows(tokens, fs) {
		sb.Reset()
		fmt.Fprintf(&sb, "%3d: %-10s", i+1, row.Kind)
		if row.Text != "" {
			fmt.Fprintf(&sb, " %q", row.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", row.Line, row.Col, row.EndLine, row.EndCol)
		if len(row.Leading) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(row.Leading, ", "))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the rows as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenRows(tokens, fs))
}
