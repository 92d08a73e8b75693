// Package diag defines the diagnostic model shared by the lexer, parser,
// scope checker and bracket converter.
//
// Diagnostic is the central record: a Severity, a numeric Code, a short
// Message, the offending identifier text (Subject) and the Primary span.
// Codes are grouped by phase (lexer 1xxx, parser 2xxx, checker 3xxx,
// converter 4xxx); the phase tag printed in front of a rendered diagnostic is
// derived from that range.
//
// Phases emit through a Reporter so they never depend on storage. BagReporter
// collects into a Bag, which supports limits, sorting and deduplication.
// Rendering lives in internal/diagfmt.
package diag
