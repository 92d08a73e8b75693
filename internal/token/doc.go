// Package token defines lexical token kinds and trivia of the lambda source
// language.
// Invariants:
//   - Token.Text equals the source bytes covered by Span.
//   - Comments and whitespace are Trivia attached to the next token and never
//     appear in the main token stream.
//   - Both 'λ' and '\' lex as Lambda; both '.' and '->' close a parameter list
//     but keep distinct kinds so the token dump shows what was written.
package token
