// Package parser implements the hand-rolled recursive-descent parser:
// one method per grammar production, interleaving semantic actions
// (type/constant/procedure registration, unit loading) with the descent
// itself. Those semantic actions must run *during* parsing, something a
// static combinator grammar never needs to do; see DESIGN.md for why
// format.go's expression suffix is the one spot a combinator still fits.
package parser

import (
	"fmt"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/constfold"
	"github.com/pscal-toolchain/core/pkg/diag"
	"github.com/pscal-toolchain/core/pkg/symbol"
	"github.com/pscal-toolchain/core/pkg/token"
)

// MaxRecursionDepth bounds unit-loading recursion.
const MaxRecursionDepth = 10

// Loader is the small interface pkg/parser depends on instead of importing
// pkg/unit directly. pkg/unit imports pkg/parser to spawn child parsers for
// each nested unit; pkg/parser only needs to ask its Loader to resolve a
// `uses` reference, so this one-method interface (satisfied by
// *unit.Loader) breaks what would otherwise be an import cycle.
type Loader interface {
	LoadUnit(name string, depth int) (*ast.Node, error)
}

// nopLoader treats every `uses` clause as satisfied already (used by tests
// and by a parser that only needs to parse a single self-contained file).
type nopLoader struct{}

func (nopLoader) LoadUnit(name string, depth int) (*ast.Node, error) { return nil, nil }

// DefaultDocumentedUnits returns the set of unit names the toolchain ships
// documentation for out of the box — the RTL-style units every Pascal
// dialect program may reference without shipping its own source file
// (console I/O, OS/file-system shims, string/math helpers). A `uses`
// reference to one of these that isn't found on the search path is a
// missing-but-expected-to-sometimes-be-absent unit (spec.md §7.1's
// "warning unless undocumented"); anything else is assumed to be a typo or
// a genuinely missing project file and aborts instead.
func DefaultDocumentedUnits() map[string]bool {
	return map[string]bool{
		"system": true, "crt": true, "sysutils": true, "dos": true,
		"math": true, "strings": true,
	}
}

// Parser threads the per-translation-unit state that must be visible to
// every production: the token stream, a one-token lookahead buffer, the
// symbol/type context, the compile-time constant table, and the unit
// loader. Builtins is the registered set of built-in routine names used to
// decide whether a declaration requires {$OVERRIDE-BUILTIN}. DocumentedUnits
// is the set of `uses` names whose absence from the search path is merely
// a warning rather than an abort (spec.md §7.1/§7.2).
type Parser struct {
	lex    *token.Lexer
	cur    token.Token
	peeked *token.Token

	Ctx             *symbol.Context
	Consts          *constfold.Table
	Loader          Loader
	Builtins        map[string]bool
	DocumentedUnits map[string]bool

	Depth int

	// inRoutineBody is true while parsing a routine's parameter list and
	// body, so varBlock knows to declare into Ctx.Local instead of Global.
	inRoutineBody bool

	Diagnostics *diag.Sink
	errorCount  int
}

// New returns a Parser over src, with a fresh Context/constant table unless
// overridden via the With* options.
func New(src []byte, opts ...Option) *Parser {
	p := &Parser{
		lex:             token.New(src),
		Ctx:             symbol.NewContext(),
		Consts:          constfold.NewTable(),
		Loader:          nopLoader{},
		Builtins:        map[string]bool{},
		DocumentedUnits: DefaultDocumentedUnits(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.advance()
	return p
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithContext threads an existing symbol.Context (e.g. a unit's caller
// context so registered types/symbols flow into the right tables).
func WithContext(ctx *symbol.Context) Option { return func(p *Parser) { p.Ctx = ctx } }

// WithConsts threads an existing constant-folding table.
func WithConsts(t *constfold.Table) Option { return func(p *Parser) { p.Consts = t } }

// WithLoader installs the unit loader a `uses` clause recurses through.
func WithLoader(l Loader) Option { return func(p *Parser) { p.Loader = l } }

// WithDepth sets the unit-recursion depth this Parser was spawned at.
func WithDepth(depth int) Option { return func(p *Parser) { p.Depth = depth } }

// WithBuiltins seeds the registered built-in name set.
func WithBuiltins(names map[string]bool) Option { return func(p *Parser) { p.Builtins = names } }

// WithDocumentedUnits overrides the default documented-unit allowlist (see
// DefaultDocumentedUnits).
func WithDocumentedUnits(names map[string]bool) Option {
	return func(p *Parser) { p.DocumentedUnits = names }
}

// WithDiagnostics installs a diag.Sink for error/warning reporting.
func WithDiagnostics(s *diag.Sink) Option { return func(p *Parser) { p.Diagnostics = s } }

func (p *Parser) advance() {
	if p.peeked != nil {
		p.cur = *p.peeked
		p.peeked = nil
		return
	}
	tok, err := p.lex.Next()
	if err != nil {
		p.errorf(tok.Line, tok.Column, "%s", err)
	}
	p.cur = tok
}

// peek returns the next token without consuming the current one, buffering
// it in the Parser's one-token lookahead slot.
func (p *Parser) peek() token.Token {
	if p.peeked == nil {
		tok, err := p.lex.Next()
		if err != nil {
			p.errorf(tok.Line, tok.Column, "%s", err)
		}
		p.peeked = &tok
	}
	return *p.peeked
}

func (p *Parser) at(kind token.Kind) bool { return p.cur.Kind == kind }

// eat consumes the current token if it matches kind, reporting a parse
// error and incrementing the error count otherwise. Returns the consumed
// token.
func (p *Parser) eat(kind token.Kind) token.Token {
	tok := p.cur
	if tok.Kind != kind {
		p.errorf(tok.Line, tok.Column, "unexpected token %v, expected %v", tok.Kind, kind)
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) errorf(line, col int, format string, args ...any) {
	p.errorCount++
	d := diag.Diagnostic{Stage: diag.StageParse, Severity: diag.SeverityError, Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
	if p.Diagnostics != nil {
		p.Diagnostics.Report(d)
	}
}

func (p *Parser) warnf(line, col int, format string, args ...any) {
	d := diag.Diagnostic{Stage: diag.StageParse, Severity: diag.SeverityWarning, Line: line, Column: col, Message: fmt.Sprintf(format, args...)}
	if p.Diagnostics != nil {
		p.Diagnostics.Report(d)
	}
}

// ErrorCount reports how many syntax errors this Parser has recorded.
func (p *Parser) ErrorCount() int { return p.errorCount }

// newNode builds an ast.Node of kind anchored at the Parser's current
// token, deep-copying it per ast.New's contract.
func (p *Parser) newNode(kind ast.Kind) *ast.Node {
	tok := p.cur
	return ast.New(kind, &tok)
}
