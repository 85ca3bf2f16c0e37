package constfold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/constfold"
	"github.com/pscal-toolchain/core/pkg/symbol"
	"github.com/pscal-toolchain/core/pkg/token"
)

func number(kind token.Kind, lexeme string) *ast.Node {
	return ast.New(ast.KindNumber, &token.Token{Kind: kind, Lexeme: lexeme})
}

func binary(op token.Kind, left, right *ast.Node) *ast.Node {
	n := ast.New(ast.KindBinaryOp, &token.Token{Kind: op})
	ast.SetLeft(n, left)
	ast.SetRight(n, right)
	return n
}

func TestFoldArithmeticIntegers(t *testing.T) {
	t.Parallel()

	expr := binary(token.Plus, number(token.IntLiteral, "2"), binary(token.Star, number(token.IntLiteral, "3"), number(token.IntLiteral, "4")))
	v := constfold.Fold(expr, constfold.NewTable(), nil)
	require.Equal(t, symbol.ValueInt, v.Kind)
	assert.EqualValues(t, 14, v.IntVal)
}

func TestFoldDivisionByZeroIsVoid(t *testing.T) {
	t.Parallel()

	expr := binary(token.KwDiv, number(token.IntLiteral, "1"), number(token.IntLiteral, "0"))
	v := constfold.Fold(expr, constfold.NewTable(), nil)
	assert.Equal(t, symbol.ValueInvalid, v.Kind)
}

func TestFoldIdentifierFromConstTable(t *testing.T) {
	t.Parallel()

	table := constfold.NewTable()
	table.Set("MaxSize", symbol.NewInt(100, 64, true))

	ref := ast.New(ast.KindVariable, &token.Token{Lexeme: "maxsize"})
	v := constfold.Fold(ref, table, nil)
	require.Equal(t, symbol.ValueInt, v.Kind)
	assert.EqualValues(t, 100, v.IntVal)
}

func TestFoldUnaryNot(t *testing.T) {
	t.Parallel()

	lit := ast.New(ast.KindBooleanLit, &token.Token{Lexeme: "true"})
	n := ast.New(ast.KindUnaryOp, &token.Token{Kind: token.KwNot})
	ast.SetLeft(n, lit)

	v := constfold.Fold(n, constfold.NewTable(), nil)
	require.Equal(t, symbol.ValueBoolean, v.Kind)
	assert.False(t, v.BoolVal)
}

func TestFoldChrAndOrd(t *testing.T) {
	t.Parallel()

	chrCall := ast.New(ast.KindCall, nil)
	ast.SetLeft(chrCall, ast.New(ast.KindVariable, &token.Token{Lexeme: "chr"}))
	ast.AddChild(chrCall, number(token.IntLiteral, "65"))

	v := constfold.Fold(chrCall, constfold.NewTable(), nil)
	require.Equal(t, symbol.ValueChar, v.Kind)
	assert.Equal(t, byte('A'), v.CharVal)

	ordCall := ast.New(ast.KindCall, nil)
	ast.SetLeft(ordCall, ast.New(ast.KindVariable, &token.Token{Lexeme: "ord"}))
	ast.AddChild(ordCall, ast.New(ast.KindStringLit, &token.Token{Lexeme: "A"}))
	// ord() over a non-char/enum/bool/int value is not foldable.
	assert.Equal(t, symbol.ValueInvalid, constfold.Fold(ordCall, constfold.NewTable(), nil).Kind)
}
