// Package compiler bundles one compilation run's state — lexer, parser,
// analyzer, and resulting IR module — into a single value, per the design
// note on replacing scattered process globals with a context threaded
// through the three stages. Running the pipeline twice in the same
// process starts from a fresh Context every time; nothing here is
// package-level mutable state.
package compiler

import (
	"fmt"

	"github.com/cwbudde/minicc/internal/errors"
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/parser"
	"github.com/cwbudde/minicc/internal/semantic"
	"github.com/cwbudde/minicc/pkg/token"
)

// Context carries one source file through scanning, parsing, and semantic
// analysis/IR emission. Create one with New for each file compiled.
type Context struct {
	Filename string
	Source   string

	parser   *parser.Parser
	analyzer *semantic.Analyzer
}

// New creates a Context over src, named filename for diagnostics.
func New(filename, src string) *Context {
	return &Context{Filename: filename, Source: src}
}

// Result is the outcome of a full Run: either a materialized IR module, or
// a non-empty set of diagnostics describing why it does not exist.
type Result struct {
	IR          string
	Diagnostics []errors.Diagnostic
}

// Run drives the scanner, parser, and analyzer over c.Source in sequence
// and returns the resulting IR module's textual form, or the diagnostics
// that prevented it. Only the first syntax error is reported and a syntax
// error prevents analysis entirely; semantic errors are collected and
// also prevent the IR from being returned.
func (c *Context) Run() Result {
	l := lexer.New(lexer.StripBOM(c.Source))
	c.parser = parser.New(l)
	prog := c.parser.ParseProgram()

	if errs := c.parser.Errors(); len(errs) > 0 {
		diags := make([]errors.Diagnostic, 0, len(errs))
		for _, e := range errs {
			diags = append(diags, errors.Diagnostic{Kind: errors.Syntax, Message: e.Message, Pos: e.Pos})
		}
		return Result{Diagnostics: diags}
	}

	c.analyzer = semantic.NewAnalyzer(moduleName(c.Filename))
	defer c.analyzer.Module().Dispose()
	semErrs := c.analyzer.Analyze(prog)
	if len(semErrs) > 0 {
		diags := make([]errors.Diagnostic, 0, len(semErrs))
		for _, e := range semErrs {
			diags = append(diags, errors.Diagnostic{Kind: errors.Semantic, Message: e.Message, Pos: e.Pos})
		}
		return Result{Diagnostics: diags}
	}

	return Result{IR: c.analyzer.Module().String()}
}

// Tokens re-scans c.Source and returns every token in order, plus a
// lexical diagnostic for each ILLEGAL token. It does not affect Run's
// internal state.
func (c *Context) Tokens() ([]token.Token, []errors.Diagnostic) {
	l := lexer.New(lexer.StripBOM(c.Source))
	toks := l.AllTokens()
	var diags []errors.Diagnostic
	for _, t := range toks {
		if t.Type == token.ILLEGAL {
			diags = append(diags, errors.Diagnostic{Kind: errors.Lexical, Message: fmt.Sprintf("unrecognized byte %q", t.Literal), Pos: t.Pos})
		}
	}
	return toks, diags
}

func moduleName(filename string) string {
	base := filename
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '/' || base[i] == '\\' {
			base = base[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}
