package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/symbol"
)

func TestTableInsertLookupCaseInsensitive(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	table.Insert(&symbol.Symbol{Name: "counter", Kind: symbol.KindVariable})

	found := table.Lookup("CoUnTeR")
	require.NotNil(t, found)
	assert.Equal(t, "counter", found.Name)
	assert.Equal(t, 1, table.Count())

	assert.Nil(t, table.Lookup("missing"))
}

func TestTableInsertHeadOfChainOnCollision(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	table.Insert(&symbol.Symbol{Name: "alpha", Kind: symbol.KindVariable})
	table.Insert(&symbol.Symbol{Name: "beta", Kind: symbol.KindVariable})

	var names []string
	table.Each(func(s *symbol.Symbol) { names = append(names, s.Name) })
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)
	assert.Equal(t, 2, table.Count())
}

func TestNullifyPointerAliases(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	aliased := &symbol.Symbol{
		Name: "p",
		Kind: symbol.KindVariable,
		Value: &symbol.Value{Kind: symbol.ValuePointer, PtrAddr: 0xABCD},
	}
	unrelated := &symbol.Symbol{
		Name: "q",
		Kind: symbol.KindVariable,
		Value: &symbol.Value{Kind: symbol.ValuePointer, PtrAddr: 0x1111},
	}
	table.Insert(aliased)
	table.Insert(unrelated)

	table.NullifyPointerAliases(0xABCD)

	assert.EqualValues(t, 0, aliased.Value.PtrAddr)
	assert.EqualValues(t, 0x1111, unrelated.Value.PtrAddr)
}

func TestTableDumpListsEverySymbolWithKind(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	table.Insert(&symbol.Symbol{Name: "z", Kind: symbol.KindConstant})
	table.Insert(&symbol.Symbol{Name: "a", Kind: symbol.KindVariable})

	dump := table.Dump()
	assert.Contains(t, dump, "z(CONSTANT)")
	assert.Contains(t, dump, "a(VARIABLE)")
}

func TestTableUpdateOverwritesValueInPlace(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	sym := &symbol.Symbol{Name: "n", Kind: symbol.KindVariable, VarType: ast.TypeInt64, Value: symbol.NewInt(1, 64, true)}
	table.Insert(sym)

	err := table.Update("n", symbol.NewInt(2, 64, true))
	require.NoError(t, err)
	assert.EqualValues(t, 2, sym.Value.IntVal)
}

func TestTableUpdateSymbolNotFound(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	err := table.Update("missing", symbol.NewInt(1, 64, true))

	var updateErr *symbol.UpdateError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, symbol.SymbolNotFound, updateErr.Kind)
}

func TestTableUpdateAssignToConstantFails(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	table.Insert(&symbol.Symbol{Name: "pi", Kind: symbol.KindConstant, VarType: ast.TypeReal64, Flags: symbol.Flags{IsConst: true}})

	err := table.Update("pi", symbol.NewReal(3.0, 64))

	var updateErr *symbol.UpdateError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, symbol.AssignToConstant, updateErr.Kind)
}

func TestTableUpdateFileAssignmentUnsupported(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	table.Insert(&symbol.Symbol{Name: "f", Kind: symbol.KindVariable, VarType: ast.TypeFile})

	err := table.Update("f", &symbol.Value{Kind: symbol.ValueFile, FileHandle: 1})

	var updateErr *symbol.UpdateError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, symbol.FileAssignmentUnsupported, updateErr.Kind)
}

func TestTableUpdateOrdinalOutOfRange(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	table.Insert(&symbol.Symbol{Name: "b", Kind: symbol.KindVariable, VarType: ast.TypeByte})

	err := table.Update("b", symbol.NewInt(300, 8, false))

	var updateErr *symbol.UpdateError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, symbol.OrdinalOutOfRange, updateErr.Kind)
}

func TestTableUpdateTypeMismatch(t *testing.T) {
	t.Parallel()

	table := symbol.NewTable()
	table.Insert(&symbol.Symbol{Name: "s", Kind: symbol.KindVariable, VarType: ast.TypeString})

	err := table.Update("s", symbol.NewBoolean(true))

	var updateErr *symbol.UpdateError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, symbol.TypeMismatchOnAssign, updateErr.Kind)
}
