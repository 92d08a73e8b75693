// Package sema holds the passes that run between parsing and conversion:
// the scope checker, the curry-normalizer and the free-variable test.
//
// Identifiers are compared by lexeme. There is no alpha-renaming, so a
// parameter that reuses an outer name is the same variable as far as
// FreeIn is concerned; the checker warns about such parameters.
package sema
