package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/parser"
)

func TestProgramParsesConstVarAndAssignment(t *testing.T) {
	t.Parallel()

	src := `
program Demo;
const
  MaxSize = 10;
var
  count: Integer;
begin
  count := MaxSize + 1;
end.
`
	p := parser.New([]byte(src))
	prog := p.Program()

	require.Equal(t, 0, p.ErrorCount())
	assert.Equal(t, ast.KindProgram, prog.Kind)

	folded, ok := p.Consts.Get("MaxSize")
	require.True(t, ok)
	assert.EqualValues(t, 10, folded.IntVal)

	sym := p.Ctx.Global.Lookup("count")
	require.NotNil(t, sym)
	assert.Equal(t, ast.TypeInt64, sym.VarType)
}

func TestIfWhileAndCaseStatements(t *testing.T) {
	t.Parallel()

	src := `
program Control;
var
  x: Integer;
begin
  if x > 0 then
    x := x - 1
  else
    x := 0;
  while x > 0 do
    x := x - 1;
  case x of
    0: x := 1;
    1, 2: x := 2;
  else
    x := 3
  end
end.
`
	p := parser.New([]byte(src))
	p.Program()
	assert.Equal(t, 0, p.ErrorCount())
}

func TestForwardRoutineThenImplementationReplacesSymbol(t *testing.T) {
	t.Parallel()

	src := `
program Routines;

function Square(n: Integer): Integer; forward;

function Square(n: Integer): Integer;
begin
end;

begin
end.
`
	p := parser.New([]byte(src))
	p.Program()
	assert.Equal(t, 0, p.ErrorCount())

	sym := p.Ctx.Procedure.Lookup("square")
	require.NotNil(t, sym)
	assert.True(t, sym.Flags.IsDefined)
}

func TestArrayTypeDeclarationFoldsBounds(t *testing.T) {
	t.Parallel()

	src := `
program Arrays;
type
  Row = array[1..10] of Integer;
var
  data: Row;
begin
end.
`
	p := parser.New([]byte(src))
	p.Program()
	assert.Equal(t, 0, p.ErrorCount())

	def := p.Ctx.Types.Lookup("Row")
	require.NotNil(t, def)
	assert.Equal(t, ast.KindArrayType, def.Kind)
}

func TestArrayBoundExpressionFoldsToNumberNodes(t *testing.T) {
	t.Parallel()

	src := `
program Arrays;
const
  N = 10;
type
  Row = array[1 .. N*2] of Integer;
begin
end.
`
	p := parser.New([]byte(src))
	p.Program()
	assert.Equal(t, 0, p.ErrorCount())

	def := p.Ctx.Types.Lookup("Row")
	require.NotNil(t, def)
	require.Len(t, def.Children, 1)

	bound := def.Children[0]
	require.Equal(t, ast.KindSubrange, bound.Kind)
	require.Equal(t, ast.KindNumber, bound.Left.Kind)
	assert.EqualValues(t, 1, bound.Left.IVal)
	require.Equal(t, ast.KindNumber, bound.Right.Kind)
	assert.EqualValues(t, 20, bound.Right.IVal)
}

func TestUnfoldableArrayBoundIsParseError(t *testing.T) {
	t.Parallel()

	src := `
program Arrays;
var
  n: Integer;
type
  Row = array[1 .. n] of Integer;
begin
end.
`
	p := parser.New([]byte(src))
	p.Program()
	assert.Greater(t, p.ErrorCount(), 0)
}

// alwaysMissingLoader reports every unit as not found, so UsesClause's
// documented-vs-undocumented branch can be exercised without a real
// *unit.Loader (which would need a filesystem).
type alwaysMissingLoader struct{}

func (alwaysMissingLoader) LoadUnit(name string, depth int) (*ast.Node, error) {
	return nil, &parser.UnitNotFoundError{Name: name}
}

func TestUsesClauseDocumentedUnitMissingIsWarningNotError(t *testing.T) {
	t.Parallel()

	src := `
program Demo;
uses Crt;
begin
end.
`
	p := parser.New([]byte(src), parser.WithLoader(alwaysMissingLoader{}))
	p.Program()
	assert.Equal(t, 0, p.ErrorCount())
}

func TestUsesClauseUndocumentedUnitMissingAborts(t *testing.T) {
	t.Parallel()

	src := `
program Demo;
uses TotallyMadeUpUnit;
begin
end.
`
	p := parser.New([]byte(src), parser.WithLoader(alwaysMissingLoader{}))
	p.Program()
	assert.Equal(t, 1, p.ErrorCount())
}
