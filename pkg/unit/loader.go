// Package unit implements the unit loader/linker: for each
// named unit reached through a `uses` clause, it resolves the source file,
// parses it with a child parser, annotates it, compiles its implementation
// section through the emitter interface, and links its exported symbols
// into the caller's tables.
package unit

import (
	"fmt"
	"os"
	"strings"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/config"
	"github.com/pscal-toolchain/core/pkg/constfold"
	"github.com/pscal-toolchain/core/pkg/diag"
	"github.com/pscal-toolchain/core/pkg/emitter"
	"github.com/pscal-toolchain/core/pkg/parser"
	"github.com/pscal-toolchain/core/pkg/sema"
	"github.com/pscal-toolchain/core/pkg/symbol"
)

// Loader satisfies parser.Loader. It is constructed once per root parse and
// bound to that root's symbol Context: every unit it loads, however deeply
// nested, links its exported symbols into that one Context — a flattened
// namespace rather than one scope per unit, a deliberate simplification
// (see DESIGN.md).
type Loader struct {
	Into            *symbol.Context
	SearchPath      []string
	Emitter         emitter.Emitter
	Diagnostics     *diag.Sink
	Builtins        map[string]bool
	DocumentedUnits map[string]bool

	loaded  map[string]*ast.Node // canonical path -> parsed+linked unit AST
	loading map[string]bool      // canonical path -> currently being loaded (cycle guard)
}

// NewLoader returns a Loader that links every unit it resolves into into.
// em may be nil (linking still happens; compilation is simply skipped). The
// documented-unit allowlist defaults to parser.DefaultDocumentedUnits; use
// NewLoaderWithDocumentedUnits to override it (e.g. a host program that
// ships additional first-party units).
func NewLoader(into *symbol.Context, searchPath []string, em emitter.Emitter, diagnostics *diag.Sink, builtins map[string]bool) *Loader {
	return NewLoaderWithDocumentedUnits(into, searchPath, em, diagnostics, builtins, parser.DefaultDocumentedUnits())
}

// NewLoaderWithDocumentedUnits is NewLoader with an explicit documented-unit
// allowlist instead of the default.
func NewLoaderWithDocumentedUnits(into *symbol.Context, searchPath []string, em emitter.Emitter, diagnostics *diag.Sink, builtins, documentedUnits map[string]bool) *Loader {
	return &Loader{
		Into:            into,
		SearchPath:      searchPath,
		Emitter:         em,
		Diagnostics:     diagnostics,
		Builtins:        builtins,
		DocumentedUnits: documentedUnits,
		loaded:          map[string]*ast.Node{},
		loading:         map[string]bool{},
	}
}

// LoadUnit resolves name to a source file, parses and annotates it with a
// fresh child Context, compiles its implementation section, then links its
// interface symbols into l.Into. Loading the same unit twice
// (diamond dependency) is idempotent: the second call returns the cached
// AST without re-linking.
func (l *Loader) LoadUnit(name string, depth int) (*ast.Node, error) {
	if depth > parser.MaxRecursionDepth {
		return nil, fmt.Errorf("unit %q: recursion too deep (depth %d)", name, depth)
	}

	path, ok := config.ResolveUnitFile(name, l.SearchPath)
	if !ok {
		return nil, &parser.UnitNotFoundError{Name: name}
	}
	canon := config.Canonicalize(path)

	if cached, ok := l.loaded[canon]; ok {
		return cached, nil
	}
	if l.loading[canon] {
		return nil, fmt.Errorf("unit %q: circular dependency", name)
	}
	l.loading[canon] = true
	defer delete(l.loading, canon)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unit %q: %w", name, err)
	}

	childCtx := symbol.NewContext()
	child := parser.New(src,
		parser.WithContext(childCtx),
		parser.WithConsts(constfold.NewTable()),
		parser.WithLoader(l),
		parser.WithDepth(depth),
		parser.WithBuiltins(l.Builtins),
		parser.WithDocumentedUnits(l.DocumentedUnits),
		parser.WithDiagnostics(l.Diagnostics),
	)
	unitAST := child.Unit()
	if child.ErrorCount() > 0 {
		return unitAST, fmt.Errorf("unit %q: %d parse error(s)", name, child.ErrorCount())
	}

	annotator := sema.New(childCtx, l.Diagnostics)
	annotator.Annotate(unitAST)

	if l.Emitter != nil {
		l.Emitter.CompileUnitImplementation(unitAST, childCtx.Procedure, &emitter.Chunk{})
	}

	l.Link(unitAST, childCtx)
	l.loaded[canon] = unitAST
	return unitAST, nil
}

// Link publishes from's exported symbols (every type, constant, global
// variable, and procedure/function it declared while parsing) into l.Into,
// registering unqualified aliases for routines so a caller's unqualified
// call resolves regardless of how the unit's implementation qualified them
// internally.
func (l *Loader) Link(unitAST *ast.Node, from *symbol.Context) {
	for _, typeName := range from.Types.Names() {
		if def := from.Types.Lookup(typeName); def != nil {
			l.Into.Types.Insert(typeName, def)
		}
	}

	from.ConstGlobal.Each(func(s *symbol.Symbol) {
		l.Into.ConstGlobal.Insert(aliasOf(s))
	})
	from.Global.Each(func(s *symbol.Symbol) {
		l.Into.Global.Insert(aliasOf(s))
	})
	from.Procedure.Each(func(s *symbol.Symbol) {
		l.Into.Procedure.Insert(aliasOf(s))
		if unqualified := unqualifiedName(s.Name); unqualified != s.Name {
			unqualifiedSym := aliasOf(s)
			unqualifiedSym.Name = unqualified
			l.Into.Procedure.Insert(unqualifiedSym)
		}
	})
}

// aliasOf returns a new Symbol borrowing s's Value and TypeDef: an
// aliased value pointer is shared, never cloned, so Dispose-driven
// nullification on the original symbol is visible through the alias too.
func aliasOf(s *symbol.Symbol) *symbol.Symbol {
	return &symbol.Symbol{
		Name:    s.Name,
		Kind:    s.Kind,
		VarType: s.VarType,
		Value:   s.Value,
		TypeDef: s.TypeDef,
		Arity:   s.Arity,
		Flags:   symbol.Flags{IsConst: s.Flags.IsConst, IsDefined: s.Flags.IsDefined, IsAlias: true},
	}
}

// unqualifiedName strips a "unit.routine"-style qualification, if present.
func unqualifiedName(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
