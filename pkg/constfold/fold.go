package constfold

import (
	"strings"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/symbol"
	"github.com/pscal-toolchain/core/pkg/token"
)

// void is the sentinel returned for any non-foldable input.
func void() *symbol.Value { return &symbol.Value{Kind: symbol.ValueInvalid} }

func isVoid(v *symbol.Value) bool { return v == nil || v.Kind == symbol.ValueInvalid }

// Fold evaluates node to a Value, consulting consts for identifier
// references and ctx's global/const-global tables for enum and constant
// symbols the parser has already registered. Returns the Void sentinel if
// node (or any subexpression it depends on) is not a supported foldable
// shape.
func Fold(node *ast.Node, consts *Table, ctx *symbol.Context) *symbol.Value {
	if node == nil {
		return void()
	}

	switch node.Kind {
	case ast.KindNumber:
		return foldNumberLiteral(node)
	case ast.KindStringLit:
		return symbol.NewString(node.Token.Lexeme, 0)
	case ast.KindBooleanLit:
		return symbol.NewBoolean(strings.EqualFold(tokenLexeme(node), "true"))
	case ast.KindNilLit:
		return symbol.NewNil()
	case ast.KindEnumValue:
		return symbol.NewEnum(tokenLexeme(node), int(node.IVal))
	case ast.KindVariable:
		return foldIdentifier(node, consts, ctx)
	case ast.KindUnaryOp:
		return foldUnary(node, consts, ctx)
	case ast.KindBinaryOp:
		return foldBinary(node, consts, ctx)
	case ast.KindCall:
		return foldCall(node, consts, ctx)
	default:
		return void()
	}
}

func tokenLexeme(n *ast.Node) string {
	if n == nil || n.Token == nil {
		return ""
	}
	return n.Token.Lexeme
}

func foldNumberLiteral(n *ast.Node) *symbol.Value {
	lex := tokenLexeme(n)
	if n.Token == nil {
		return void()
	}
	switch n.Token.Kind {
	case token.IntLiteral:
		v, ok := parseInt(lex)
		if !ok {
			return void()
		}
		return symbol.NewInt(v, 64, true)
	case token.HexLiteral:
		v, ok := parseHex(lex)
		if !ok {
			return void()
		}
		return symbol.NewInt(v, 64, true)
	case token.RealLiteral:
		v, ok := parseReal(lex)
		if !ok {
			return void()
		}
		return symbol.NewReal(v, 64)
	case token.CharLiteral:
		if len(lex) == 0 {
			return void()
		}
		return &symbol.Value{Kind: symbol.ValueChar, CharVal: lex[0]}
	default:
		return void()
	}
}

func foldIdentifier(n *ast.Node, consts *Table, ctx *symbol.Context) *symbol.Value {
	name := tokenLexeme(n)
	if name == "" {
		return void()
	}
	if v, ok := consts.Get(name); ok {
		return v.Clone()
	}
	if ctx != nil {
		if sym := ctx.ConstGlobal.Lookup(name); sym != nil && sym.Value != nil {
			return sym.Value.Clone()
		}
		if sym := ctx.Global.Lookup(name); sym != nil && sym.Flags.IsConst && sym.Value != nil {
			return sym.Value.Clone()
		}
	}
	return void()
}

func foldUnary(n *ast.Node, consts *Table, ctx *symbol.Context) *symbol.Value {
	operand := Fold(n.Left, consts, ctx)
	if isVoid(operand) || n.Token == nil {
		return void()
	}
	switch n.Token.Kind {
	case token.Minus:
		return negate(operand)
	case token.Plus:
		return operand
	case token.KwNot:
		if operand.Kind == symbol.ValueBoolean {
			return symbol.NewBoolean(!operand.BoolVal)
		}
		if isIntLike(operand) {
			return symbol.NewInt(^asInt(operand), operand.IntWidth, operand.IntSigned)
		}
		return void()
	default:
		return void()
	}
}

func negate(v *symbol.Value) *symbol.Value {
	switch v.Kind {
	case symbol.ValueInt:
		return symbol.NewInt(-v.IntVal, v.IntWidth, v.IntSigned)
	case symbol.ValueReal:
		return symbol.NewReal(-v.RealVal, v.RealWidth)
	default:
		return void()
	}
}

func foldBinary(n *ast.Node, consts *Table, ctx *symbol.Context) *symbol.Value {
	left := Fold(n.Left, consts, ctx)
	right := Fold(n.Right, consts, ctx)
	if isVoid(left) || isVoid(right) || n.Token == nil {
		return void()
	}
	return applyBinaryOp(n.Token.Kind, left, right)
}

func isIntLike(v *symbol.Value) bool {
	switch v.Kind {
	case symbol.ValueInt, symbol.ValueByte, symbol.ValueWord, symbol.ValueChar:
		return true
	default:
		return false
	}
}

func isRealLike(v *symbol.Value) bool { return v.Kind == symbol.ValueReal }

func asInt(v *symbol.Value) int64 {
	switch v.Kind {
	case symbol.ValueInt:
		return v.IntVal
	case symbol.ValueByte:
		return int64(v.ByteVal)
	case symbol.ValueWord:
		return int64(v.WordVal)
	case symbol.ValueChar:
		return int64(v.CharVal)
	default:
		return 0
	}
}

func asReal(v *symbol.Value) float64 {
	if v.Kind == symbol.ValueReal {
		return v.RealVal
	}
	return float64(asInt(v))
}

// applyBinaryOp implements the arithmetic/logical/shift/bitwise/relational
// operators (set operators and IN are not folded), under the same int-vs-real promotion rule the
// annotator's coercion matrix uses (real if either operand is real,
// integer otherwise).
func applyBinaryOp(op token.Kind, left, right *symbol.Value) *symbol.Value {
	switch op {
	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return foldComparison(op, left, right)
	case token.KwAnd:
		if left.Kind == symbol.ValueBoolean && right.Kind == symbol.ValueBoolean {
			return symbol.NewBoolean(left.BoolVal && right.BoolVal)
		}
		return foldIntOnly(op, left, right)
	case token.KwOr:
		if left.Kind == symbol.ValueBoolean && right.Kind == symbol.ValueBoolean {
			return symbol.NewBoolean(left.BoolVal || right.BoolVal)
		}
		return foldIntOnly(op, left, right)
	case token.KwXor:
		if left.Kind == symbol.ValueBoolean && right.Kind == symbol.ValueBoolean {
			return symbol.NewBoolean(left.BoolVal != right.BoolVal)
		}
		return foldIntOnly(op, left, right)
	case token.KwDiv, token.KwMod, token.KwShl, token.KwShr:
		return foldIntOnly(op, left, right)
	case token.Plus, token.Minus, token.Star, token.Slash:
		return foldArithmetic(op, left, right)
	default:
		return void()
	}
}

func foldComparison(op token.Kind, left, right *symbol.Value) *symbol.Value {
	if left.Kind == symbol.ValueString && right.Kind == symbol.ValueString {
		return symbol.NewBoolean(compareOrdered(op, strings.Compare(left.StringVal, right.StringVal)))
	}
	if isRealLike(left) || isRealLike(right) {
		a, b := asReal(left), asReal(right)
		switch {
		case a < b:
			return symbol.NewBoolean(compareOrdered(op, -1))
		case a > b:
			return symbol.NewBoolean(compareOrdered(op, 1))
		default:
			return symbol.NewBoolean(compareOrdered(op, 0))
		}
	}
	if isIntLike(left) && isIntLike(right) {
		a, b := asInt(left), asInt(right)
		switch {
		case a < b:
			return symbol.NewBoolean(compareOrdered(op, -1))
		case a > b:
			return symbol.NewBoolean(compareOrdered(op, 1))
		default:
			return symbol.NewBoolean(compareOrdered(op, 0))
		}
	}
	return void()
}

func compareOrdered(op token.Kind, cmp int) bool {
	switch op {
	case token.Eq:
		return cmp == 0
	case token.NotEq:
		return cmp != 0
	case token.Lt:
		return cmp < 0
	case token.LtEq:
		return cmp <= 0
	case token.Gt:
		return cmp > 0
	case token.GtEq:
		return cmp >= 0
	default:
		return false
	}
}

func foldIntOnly(op token.Kind, left, right *symbol.Value) *symbol.Value {
	if !isIntLike(left) || !isIntLike(right) {
		return void()
	}
	a, b := asInt(left), asInt(right)
	switch op {
	case token.KwAnd:
		return symbol.NewInt(a&b, 64, true)
	case token.KwOr:
		return symbol.NewInt(a|b, 64, true)
	case token.KwXor:
		return symbol.NewInt(a^b, 64, true)
	case token.KwDiv:
		if b == 0 {
			return void()
		}
		return symbol.NewInt(a/b, 64, true)
	case token.KwMod:
		if b == 0 {
			return void()
		}
		return symbol.NewInt(a%b, 64, true)
	case token.KwShl:
		return symbol.NewInt(a<<uint(b), 64, true)
	case token.KwShr:
		return symbol.NewInt(a>>uint(b), 64, true)
	default:
		return void()
	}
}

func foldArithmetic(op token.Kind, left, right *symbol.Value) *symbol.Value {
	if left.Kind == symbol.ValueString && right.Kind == symbol.ValueString && op == token.Plus {
		return symbol.NewString(left.StringVal+right.StringVal, 0)
	}
	if isRealLike(left) || isRealLike(right) {
		a, b := asReal(left), asReal(right)
		switch op {
		case token.Plus:
			return symbol.NewReal(a+b, 64)
		case token.Minus:
			return symbol.NewReal(a-b, 64)
		case token.Star:
			return symbol.NewReal(a*b, 64)
		case token.Slash:
			if b == 0 {
				return void()
			}
			return symbol.NewReal(a/b, 64)
		}
		return void()
	}
	if isIntLike(left) && isIntLike(right) {
		a, b := asInt(left), asInt(right)
		switch op {
		case token.Plus:
			return symbol.NewInt(a+b, 64, true)
		case token.Minus:
			return symbol.NewInt(a-b, 64, true)
		case token.Star:
			return symbol.NewInt(a*b, 64, true)
		case token.Slash:
			if b == 0 {
				return void()
			}
			return symbol.NewReal(float64(a)/float64(b), 64)
		}
	}
	return void()
}
