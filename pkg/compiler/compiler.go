// Package compiler chains the GamerScript front end: lexer, trivia filter
// and parser. Failures come back as *CompileError with the surrounding
// source lines attached.
package compiler

import (
	"fmt"

	"github.com/zurustar/gamerscript/pkg/compiler/ast"
	"github.com/zurustar/gamerscript/pkg/compiler/lexer"
	"github.com/zurustar/gamerscript/pkg/compiler/parser"
	"github.com/zurustar/gamerscript/pkg/compiler/token"
	"github.com/zurustar/gamerscript/pkg/script"
)

// Tokenize runs the lexer alone. Trivia tokens are kept.
func Tokenize(source string) ([]token.Token, error) {
	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		return nil, wrapError(err, source)
	}
	return tokens, nil
}

// Compile parses source into top-level statements, the last of which is
// always an *ast.EndOfFileStatement.
func Compile(source string) ([]ast.Statement, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	stmts, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, wrapError(err, source)
	}
	return stmts, nil
}

// CompileFile loads, decodes and compiles the file at path.
func CompileFile(path, encoding string) ([]ast.Statement, error) {
	s, err := script.Load(path, encoding)
	if err != nil {
		return nil, err
	}
	stmts, err := Compile(s.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.FileName, err)
	}
	return stmts, nil
}

// CompileResult is the outcome of compiling one script.
type CompileResult struct {
	FileName   string
	Statements []ast.Statement // nil if compilation failed
	Err        error
}

// CompileScripts compiles each script independently; a failure in one
// script does not stop the others.
func CompileScripts(scripts []script.Script) []CompileResult {
	results := make([]CompileResult, 0, len(scripts))
	for _, s := range scripts {
		stmts, err := Compile(s.Content)
		if err != nil {
			err = fmt.Errorf("%s: %w", s.FileName, err)
		}
		results = append(results, CompileResult{FileName: s.FileName, Statements: stmts, Err: err})
	}
	return results
}

// CompileDirectory loads every script below dir and compiles each one.
func CompileDirectory(dir, encoding string) ([]CompileResult, error) {
	scripts, err := script.NewLoader(dir, encoding).LoadAllScripts()
	if err != nil {
		return nil, fmt.Errorf("failed to load scripts from %s: %w", dir, err)
	}
	return CompileScripts(scripts), nil
}
