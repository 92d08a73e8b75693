package driver

import (
	"fmt"

	"skc/internal/diag"
	"skc/internal/lexer"
	"skc/internal/source"
	"skc/internal/token"
)

// TokenizeResult holds the token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path. Lexer diagnostics land in the bag.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("could not open input file %s: %w", path, err)
	}
	return tokenize(fs, fs.Get(id), maxDiagnostics), nil
}

// TokenizeSource lexes an in-memory file.
func TokenizeSource(name string, content []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenize(fs, fs.Get(fs.AddVirtual(name, content)), maxDiagnostics)
}

func tokenize(fs *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.All(),
		Bag:     bag,
	}
}
