package sema

import (
	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/token"
)

// annotateVariable resolves an identifier by nearest-scope lookup: local
// table first, then global, then the procedure table, then the enclosing
// routine's record receiver ("myself" for a Class.Method-qualified name),
// finally the type registry (a bare type name used as a value is a warning
// rather than an error).
func (a *Annotator) annotateVariable(n *ast.Node) ast.VarType {
	name := lexeme(n)
	if name == "" {
		return ast.TypeVoid
	}

	if sym := a.Ctx.Lookup(name); sym != nil {
		n.VarType = sym.VarType
		n.TypeDef = sym.TypeDef
		return n.VarType
	}

	// A bare name that resolves to nothing in Local/Global may still name a
	// routine, as in `@Q`: the addressed declaration, not a variable.
	if sym := a.Ctx.Procedure.Lookup(name); sym != nil {
		n.VarType = sym.VarType
		n.TypeDef = sym.TypeDef
		return n.VarType
	}

	if canonical(name) == "myself" && a.Ctx.CurrentFunction != nil {
		n.VarType = a.Ctx.CurrentFunction.VarType
		n.TypeDef = a.Ctx.CurrentFunction.TypeDef
		return n.VarType
	}

	if def := a.Ctx.Types.Lookup(name); def != nil {
		a.warnf(n, "identifier %q used as a value names a type", name)
		n.VarType = ast.TypeVoid
		n.TypeDef = def
		return n.VarType
	}

	a.errorf(n, "undeclared identifier %q", name)
	n.VarType = ast.TypeVoid
	return ast.TypeVoid
}

// annotateFieldAccess resolves `record.field` by walking the record's type
// definition, including the inherited base record reached through its
// Extra edge.
func (a *Annotator) annotateFieldAccess(n *ast.Node) ast.VarType {
	recvType := a.Annotate(n.Left)
	_ = recvType

	recordDef := n.Left.TypeDef
	fieldName := lexeme(n)
	for recordDef != nil {
		if field := findRecordField(recordDef, fieldName); field != nil {
			n.VarType = a.typeExprVarType(field.Right)
			n.TypeDef = field.Right.TypeDef
			return n.VarType
		}
		recordDef = recordDef.Extra // base record, if any
	}

	a.errorf(n, "unknown field %q", fieldName)
	n.VarType = ast.TypeVoid
	return ast.TypeVoid
}

// findRecordField scans a RECORD_TYPE node's Children for a VAR_DECL whose
// token names field. A record's Children may also hold method prototypes
// (spec.md §4.6); those are skipped here since a field access can never
// resolve to one.
func findRecordField(recordDef *ast.Node, field string) *ast.Node {
	if recordDef == nil || recordDef.Kind != ast.KindRecordType {
		return nil
	}
	for _, c := range recordDef.Children {
		if c != nil && c.Kind == ast.KindVarDecl && canonical(lexeme(c)) == canonical(field) {
			return c
		}
	}
	return nil
}

// annotateArrayAccess yields the element type of an array, or Char for
// string indexing.
func (a *Annotator) annotateArrayAccess(n *ast.Node) ast.VarType {
	baseType := a.Annotate(n.Left)
	for _, c := range n.Children {
		a.Annotate(c)
	}

	if baseType == ast.TypeString {
		n.VarType = ast.TypeChar
		return n.VarType
	}

	arrayDef := n.Left.TypeDef
	if arrayDef != nil && arrayDef.Kind == ast.KindArrayType && arrayDef.Right != nil {
		n.VarType = a.typeExprVarType(arrayDef.Right)
		n.TypeDef = arrayDef.Right.TypeDef
		return n.VarType
	}

	n.VarType = ast.TypeVoid
	return ast.TypeVoid
}

// annotateDereference looks up the declared base type of a pointer lvalue;
// if the lvalue itself resolved to Void, it falls back to looking the
// lvalue's own identifier up in the type registry. Built-in type names are
// not consulted.
func (a *Annotator) annotateDereference(n *ast.Node) ast.VarType {
	a.Annotate(n.Left)

	ptrDef := n.Left.TypeDef
	if ptrDef != nil && ptrDef.Kind == ast.KindPointerType && ptrDef.Right != nil {
		n.VarType = a.typeExprVarType(ptrDef.Right)
		n.TypeDef = ptrDef.Right.TypeDef
		return n.VarType
	}

	if n.Left.VarType == ast.TypeVoid && n.Left.Token != nil {
		if def := a.Ctx.Types.Lookup(n.Left.Token.Lexeme); def != nil {
			n.VarType = a.typeExprVarType(def)
			n.TypeDef = def
			return n.VarType
		}
	}

	n.VarType = ast.TypeVoid
	return ast.TypeVoid
}

// typeExprVarType reduces a type-expression AST node (as produced by
// pkg/parser's TypeExpr) to its VarType tag, looking through
// TYPE_REFERENCE's shared Right edge.
func (a *Annotator) typeExprVarType(typeExpr *ast.Node) ast.VarType {
	if typeExpr == nil {
		return ast.TypeVoid
	}
	if typeExpr.VarType != ast.TypeVoid {
		return typeExpr.VarType
	}
	switch typeExpr.Kind {
	case ast.KindTypeReference:
		if typeExpr.Right != nil {
			return a.typeExprVarType(typeExpr.Right)
		}
	case ast.KindRecordType:
		return ast.TypeRecord
	case ast.KindArrayType:
		return ast.TypeArray
	case ast.KindSetType:
		return ast.TypeSet
	case ast.KindEnumType:
		return ast.TypeEnum
	case ast.KindPointerType:
		return ast.TypePointer
	case ast.KindInterfaceType:
		return ast.TypeInterface
	}
	return ast.TypeVoid
}

func isRealType(t ast.VarType) bool { return t == ast.TypeReal32 || t == ast.TypeReal64 }

func isIntType(t ast.VarType) bool {
	switch t {
	case ast.TypeInt8, ast.TypeInt16, ast.TypeInt32, ast.TypeInt64, ast.TypeByte, ast.TypeWord:
		return true
	default:
		return false
	}
}

func isOrdinalType(t ast.VarType) bool {
	return isIntType(t) || t == ast.TypeChar || t == ast.TypeEnum || t == ast.TypeBoolean
}

// annotateBinaryOp infers a binary expression's type: real
// division always widens to real; `+` with a string/char operand yields
// String; comparisons and `IN` yield Boolean; everything else follows the
// wider of the two operand types.
func (a *Annotator) annotateBinaryOp(n *ast.Node) ast.VarType {
	left := a.Annotate(n.Left)
	right := a.Annotate(n.Right)

	op := token.EOF
	if n.Token != nil {
		op = n.Token.Kind
	}

	switch op {
	case token.Slash:
		n.VarType = ast.TypeReal64
		return n.VarType
	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq, token.KwIn:
		n.VarType = ast.TypeBoolean
		return n.VarType
	case token.KwAnd, token.KwOr, token.KwXor:
		if left == ast.TypeBoolean || right == ast.TypeBoolean {
			n.VarType = ast.TypeBoolean
		} else {
			n.VarType = widerIntType(left, right)
		}
		return n.VarType
	case token.KwDiv, token.KwMod, token.KwShl, token.KwShr:
		n.VarType = widerIntType(left, right)
		return n.VarType
	case token.Plus:
		if left == ast.TypeString || right == ast.TypeString || left == ast.TypeChar || right == ast.TypeChar {
			n.VarType = ast.TypeString
			return n.VarType
		}
		fallthrough
	default:
		if isRealType(left) || isRealType(right) {
			n.VarType = ast.TypeReal64
		} else {
			n.VarType = widerIntType(left, right)
		}
		return n.VarType
	}
}

// widerIntType picks the operand with the larger rank, defaulting to
// TypeInt64 when neither side is a recognised integer type (matches an
// untyped constant operand).
func widerIntType(left, right ast.VarType) ast.VarType {
	rank := map[ast.VarType]int{
		ast.TypeInt8: 1, ast.TypeByte: 1, ast.TypeInt16: 2, ast.TypeWord: 2,
		ast.TypeInt32: 3, ast.TypeInt64: 4,
	}
	lr, lok := rank[left]
	rr, rok := rank[right]
	switch {
	case lok && rok:
		if lr >= rr {
			return left
		}
		return right
	case lok:
		return left
	case rok:
		return right
	default:
		return ast.TypeInt64
	}
}

// annotateTernary unifies the two branch types: if both
// branches are real-compatible, the result widens to real; otherwise the
// first defined non-Void branch wins. Two pointer branches yield Pointer
// with the then-branch's TypeDef (the else-branch's when the then-branch
// has none); their base types are not compared.
func (a *Annotator) annotateTernary(n *ast.Node) ast.VarType {
	a.Annotate(n.Left)
	thenType := a.Annotate(n.Extra)
	elseType := a.Annotate(n.Right)

	switch {
	case isRealType(thenType) && (isRealType(elseType) || isIntType(elseType)):
		n.VarType = ast.TypeReal64
	case isRealType(elseType) && isIntType(thenType):
		n.VarType = ast.TypeReal64
	case thenType == ast.TypePointer && elseType == ast.TypePointer:
		n.VarType = ast.TypePointer
		if n.Extra.TypeDef != nil {
			n.TypeDef = n.Extra.TypeDef
		} else {
			n.TypeDef = n.Right.TypeDef
		}
	case thenType != ast.TypeVoid:
		n.VarType = thenType
		n.TypeDef = n.Extra.TypeDef
	default:
		n.VarType = elseType
		n.TypeDef = n.Right.TypeDef
	}
	return n.VarType
}

func lexeme(n *ast.Node) string {
	if n == nil || n.Token == nil {
		return ""
	}
	return n.Token.Lexeme
}

func canonical(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
