package sema

import "github.com/pscal-toolchain/core/pkg/ast"

// builtinOrdinalFirstArg and builtinReturnTypes list the handful of
// built-in routines the annotator needs to type without a procedure-table
// lookup, as part of the always-available runtime surface; the full
// built-in dispatch table itself is out of scope here.
var builtinOrdinalFirstArg = map[string]bool{
	"succ": true, "pred": true, "low": true, "high": true, "abs": true,
}

var builtinReturnTypes = map[string]ast.VarType{
	"chr": ast.TypeChar, "ord": ast.TypeInt64, "length": ast.TypeInt64,
	"sizeof": ast.TypeInt64, "upcase": ast.TypeChar, "random": ast.TypeReal64,
	"str": ast.TypeString, "copy": ast.TypeString, "paramstr": ast.TypeString,
	"paramcount": ast.TypeInt64, "ioresult": ast.TypeInt64,
}

// annotateCall resolves the callee's return type: a user procedure/function
// looked up through the procedure table, or one of the always-available
// built-ins, with succ/pred/low/high/abs special-cased to echo their first
// argument's type.
func (a *Annotator) annotateCall(n *ast.Node) ast.VarType {
	a.Annotate(n.Left)
	for _, c := range n.Children {
		a.Annotate(c)
	}

	name := lexeme(n.Left)
	key := canonical(name)

	if sym := a.Ctx.Procedure.Lookup(name); sym != nil {
		n.VarType = sym.VarType
		n.TypeDef = sym.TypeDef
		return n.VarType
	}

	if builtinOrdinalFirstArg[key] && len(n.Children) > 0 {
		n.VarType = n.Children[0].VarType
		n.TypeDef = n.Children[0].TypeDef
		return n.VarType
	}

	if t, ok := builtinReturnTypes[key]; ok {
		n.VarType = t
		return n.VarType
	}

	n.VarType = ast.TypeVoid
	return ast.TypeVoid
}

// annotateAssign checks LHS/RHS assignment compatibility: the LHS's
// declared type governs coercion, a procedure
// pointer assignment additionally requires arity/return-type/by-ref
// agreement between the two routines, and any mismatch increments the
// annotator's error count rather than aborting the walk.
func (a *Annotator) annotateAssign(n *ast.Node) {
	lhsType := a.Annotate(n.Left)
	rhsType := a.Annotate(n.Right)
	n.VarType = lhsType

	if lhsType == ast.TypeVoid || rhsType == ast.TypeVoid {
		return // one side already failed to resolve; don't compound the error
	}
	// Pointer-to-pointer must run the procedure-pointer compatibility check
	// even when both sides already carry the same VarType (Pointer tells us
	// nothing about arity/params/return type on its own) — this has to come
	// before the blanket lhsType == rhsType shortcut below.
	if lhsType == ast.TypePointer && rhsType == ast.TypePointer {
		a.checkProcPointerCompatibility(n)
		return
	}
	if lhsType == rhsType {
		return
	}
	if isRealType(lhsType) && (isRealType(rhsType) || isIntType(rhsType)) {
		return
	}
	if lhsType == ast.TypeString && rhsType == ast.TypeChar {
		return
	}
	if isOrdinalType(lhsType) && isOrdinalType(rhsType) {
		return
	}
	if lhsType == ast.TypePointer && rhsType == ast.TypeNil {
		return
	}

	a.errorf(n, "cannot assign %s to %s", rhsType, lhsType)
}

// isRoutineLike reports whether def is something checkProcPointerCompatibility
// can read a parameter list from: a procedure-pointer type, or the
// declaration a bare routine name resolves to (the `@Q` case).
func isRoutineLike(def *ast.Node) bool {
	return def != nil && (def.Kind == ast.KindProcPtrType || def.Kind == ast.KindProcedureDecl || def.Kind == ast.KindFunctionDecl)
}

// routineParams returns def's parameter VAR_DECL nodes, regardless of
// whether def is a proc-pointer type or a routine declaration: both store
// their parameter list under Left.
func routineParams(def *ast.Node) []*ast.Node {
	if def == nil || def.Left == nil {
		return nil
	}
	return def.Left.Children
}

// paramVarType returns a parameter VAR_DECL's declared type. The VarType
// lives on the declaration's Right type node, not on the VAR_DECL itself;
// ast.VarTypeForDecl normalizes a procedure-pointer-typed parameter to
// Pointer the same way a plain variable declaration does.
func paramVarType(param *ast.Node) ast.VarType {
	if param == nil || param.Right == nil {
		return ast.TypeVoid
	}
	return ast.VarTypeForDecl(param.Right)
}

// pascalTypeNames renders a VarType the way the source-level type keyword
// that produced it reads (the inverse of pkg/parser/types_expr.go's
// builtinVarTypes), not ast.VarType.String()'s internal tag spelling
// (INT64/REAL64/...). Diagnostics quote what the programmer wrote.
var pascalTypeNames = map[ast.VarType]string{
	ast.TypeInt8: "INT8", ast.TypeInt16: "INT16", ast.TypeInt32: "INT32",
	ast.TypeInt64: "INTEGER", ast.TypeReal32: "SINGLE", ast.TypeReal64: "REAL",
	ast.TypeChar: "CHAR", ast.TypeString: "STRING", ast.TypeBoolean: "BOOLEAN",
	ast.TypeByte: "BYTE", ast.TypeWord: "WORD", ast.TypePointer: "POINTER",
	ast.TypeThread: "THREAD",
}

// pascalTypeName renders t for a diagnostic message, falling back to
// VarType.String() for tags with no source-level keyword (e.g. ENUM, ARRAY).
func pascalTypeName(t ast.VarType) string {
	if name, ok := pascalTypeNames[t]; ok {
		return name
	}
	return t.String()
}

// checkProcPointerCompatibility verifies that an assignment between a
// procedure-pointer-typed lvalue and either another procedure pointer or a
// bare routine reference (`@Q`) agrees on arity, return type, each
// parameter's by-ref-ness, and each parameter's declared type.
func (a *Annotator) checkProcPointerCompatibility(n *ast.Node) {
	lhsDef := ast.ResolveTypeRef(n.Left.TypeDef)
	rhsDef := ast.ResolveTypeRef(n.Right.TypeDef)
	if !isRoutineLike(lhsDef) || !isRoutineLike(rhsDef) {
		return
	}

	lhsParams, rhsParams := routineParams(lhsDef), routineParams(rhsDef)
	if len(lhsParams) != len(rhsParams) {
		a.errorf(n, "procedure pointer assignment: arity mismatch (%d vs %d)", len(lhsParams), len(rhsParams))
		return
	}

	rhsName := lexeme(rhsDef)
	if rhsName == "" {
		rhsName = lexeme(n.Right)
	}
	for i := range lhsParams {
		lp, rp := lhsParams[i], rhsParams[i]
		if lp.Flags.ByRef != rp.Flags.ByRef {
			a.errorf(n, "procedure pointer assignment: parameter %d by-ref mismatch", i+1)
			return
		}
		lpType, rpType := paramVarType(lp), paramVarType(rp)
		if lpType != rpType {
			a.errorf(n, "proc pointer param %d type mismatch for '%s' (expected %s, got %s)", i+1, rhsName, pascalTypeName(lpType), pascalTypeName(rpType))
			return
		}
	}
	if lhsDef.VarType != rhsDef.VarType {
		a.errorf(n, "procedure pointer assignment: return type mismatch")
	}
}
