// Package sema implements the post-parse semantic annotator: a tree walk
// that resolves identifier references, infers expression types, and
// checks procedure-pointer/field/dereference/ternary compatibility.
package sema

import (
	"fmt"
	"strings"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/diag"
	"github.com/pscal-toolchain/core/pkg/symbol"
)

// Annotator walks an AST in place, setting VarType/TypeDef on every node it
// can resolve and counting semantic errors; every mismatch it reports
// increments ErrorCount.
type Annotator struct {
	Ctx         *symbol.Context
	Diagnostics *diag.Sink
	ErrorCount  int
}

// New returns an Annotator threading ctx (the same Context the parser used,
// so symbol/type lookups see every declaration already registered).
func New(ctx *symbol.Context, sink *diag.Sink) *Annotator {
	return &Annotator{Ctx: ctx, Diagnostics: sink}
}

// Annotate walks root, dispatching by Kind to one annotate<Kind> method
// per node family. It returns root's inferred VarType for convenience
// when called recursively on subexpressions.
func (a *Annotator) Annotate(n *ast.Node) ast.VarType {
	if n == nil {
		return ast.TypeVoid
	}
	switch n.Kind {
	case ast.KindProgram:
		a.annotateProgram(n)
	case ast.KindUnit:
		a.annotateUnit(n)
	case ast.KindBlock:
		a.annotateBlock(n)
	case ast.KindCompound:
		for _, c := range n.Children {
			a.Annotate(c)
		}
	case ast.KindVarDecl, ast.KindConstDecl:
		a.annotateDecl(n)
	case ast.KindProcedureDecl, ast.KindFunctionDecl:
		a.annotateRoutine(n)
	case ast.KindVariable:
		return a.annotateVariable(n)
	case ast.KindFieldAccess:
		return a.annotateFieldAccess(n)
	case ast.KindArrayAccess:
		return a.annotateArrayAccess(n)
	case ast.KindDereference:
		return a.annotateDereference(n)
	case ast.KindBinaryOp:
		return a.annotateBinaryOp(n)
	case ast.KindUnaryOp:
		n.VarType = a.Annotate(n.Left)
	case ast.KindTernary:
		return a.annotateTernary(n)
	case ast.KindCall:
		return a.annotateCall(n)
	case ast.KindAssign:
		a.annotateAssign(n)
	case ast.KindIf:
		a.Annotate(n.Left)
		a.Annotate(n.Extra)
		a.Annotate(n.Right)
	case ast.KindWhile:
		a.Annotate(n.Left)
		a.Annotate(n.Extra)
	case ast.KindForTo, ast.KindForDownto:
		a.Annotate(n.Right)
		for _, c := range n.Children {
			a.Annotate(c)
		}
		a.Annotate(n.Extra)
	case ast.KindRepeat:
		for _, c := range n.Children {
			a.Annotate(c)
		}
		a.Annotate(n.Left)
	case ast.KindCase:
		a.Annotate(n.Left)
		for _, branch := range n.Children {
			for _, label := range ast.CaseBranchLabels(branch) {
				a.Annotate(label)
			}
			a.Annotate(ast.CaseBranchBody(branch))
		}
		a.Annotate(n.Extra)
	case ast.KindAddressOf:
		n.VarType = ast.TypePointer
		a.Annotate(n.Left)
		n.TypeDef = n.Left.TypeDef
	case ast.KindWrite, ast.KindWriteln, ast.KindRead, ast.KindReadln:
		for _, c := range n.Children {
			a.Annotate(c)
		}
	default:
		a.Annotate(n.Left)
		a.Annotate(n.Right)
		a.Annotate(n.Extra)
		for _, c := range n.Children {
			a.Annotate(c)
		}
	}
	return n.VarType
}

func (a *Annotator) annotateProgram(n *ast.Node) {
	a.Annotate(n.Left)
	a.Annotate(n.Right)
}

func (a *Annotator) annotateUnit(n *ast.Node) {
	for _, c := range n.Children {
		a.Annotate(c)
	}
}

func (a *Annotator) annotateBlock(n *ast.Node) {
	if len(n.Children) > 0 {
		a.Annotate(n.Children[0])
	}
	if len(n.Children) > 1 {
		a.Annotate(n.Children[1])
	}
}

func (a *Annotator) annotateDecl(n *ast.Node) {
	a.Annotate(n.Right)
	a.Annotate(n.Extra)
}

// annotateRoutine walks a routine's parameter list and body with that
// routine's own local table installed (params and in-body VAR
// declarations, stashed on n.Symbols by routineDecl), so a name lookup
// inside the body resolves against the routine's own scope rather than
// whatever happened to be active on the way in. A Class.Method-qualified
// routine additionally gets an implicit "myself" receiver installed on
// Ctx.CurrentFunction for the duration of the walk (spec.md §4.7).
func (a *Annotator) annotateRoutine(n *ast.Node) {
	outerLocal := a.Ctx.Local
	outerReceiver := a.Ctx.CurrentFunction
	if table, ok := n.Symbols.(*symbol.Table); ok && table != nil {
		a.Ctx.Local = table
	}
	a.Ctx.CurrentFunction = a.receiverSymbol(n)
	a.Annotate(n.Left)
	a.Annotate(n.Extra)
	a.Ctx.Local = outerLocal
	a.Ctx.CurrentFunction = outerReceiver
}

// receiverSymbol returns the implicit "myself" receiver for a routine
// declared with a Class.Method-qualified name — the record type named
// before the dot — or nil for an ordinary, unqualified routine.
func (a *Annotator) receiverSymbol(n *ast.Node) *symbol.Symbol {
	name := lexeme(n)
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return nil
	}
	recordDef := a.Ctx.Types.Lookup(name[:dot])
	if recordDef == nil {
		return nil
	}
	return &symbol.Symbol{
		Name:    "myself",
		Kind:    symbol.KindVariable,
		VarType: ast.TypeRecord,
		TypeDef: recordDef,
		Flags:   symbol.Flags{IsDefined: true, IsLocalVar: true},
	}
}

func (a *Annotator) errorf(n *ast.Node, format string, args ...any) {
	a.ErrorCount++
	line, col := 0, 0
	if n != nil && n.Token != nil {
		line, col = n.Token.Line, n.Token.Column
	}
	if a.Diagnostics != nil {
		a.Diagnostics.Report(diag.Diagnostic{Stage: diag.StageSema, Severity: diag.SeverityError, Line: line, Column: col, Message: fmt.Sprintf(format, args...)})
	}
}

func (a *Annotator) warnf(n *ast.Node, format string, args ...any) {
	line, col := 0, 0
	if n != nil && n.Token != nil {
		line, col = n.Token.Line, n.Token.Column
	}
	if a.Diagnostics != nil {
		a.Diagnostics.Report(diag.Diagnostic{Stage: diag.StageSema, Severity: diag.SeverityWarning, Line: line, Column: col, Message: fmt.Sprintf(format, args...)})
	}
}
