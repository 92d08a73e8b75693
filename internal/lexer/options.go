package lexer

import (
	"skc/internal/diag"
	"skc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil: errors are dropped, lexing continues
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg, subject string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).WithSubject(subject).Emit()
	}
}
