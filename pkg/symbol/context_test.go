package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/symbol"
)

func TestContextLookupLocalBeforeGlobal(t *testing.T) {
	t.Parallel()

	ctx := symbol.NewContext()
	ctx.Global.Insert(&symbol.Symbol{Name: "x", Kind: symbol.KindVariable, VarType: -1})
	ctx.Local.Insert(&symbol.Symbol{Name: "x", Kind: symbol.KindVariable, VarType: -2})

	found := ctx.Lookup("x")
	require.NotNil(t, found)
	assert.EqualValues(t, -2, found.VarType)
}

func TestSaveAndRestoreLocalEnv(t *testing.T) {
	t.Parallel()

	ctx := symbol.NewContext()
	ctx.Local.Insert(&symbol.Symbol{Name: "outer", Kind: symbol.KindVariable})

	ctx.SaveLocalEnv()
	assert.Equal(t, 0, ctx.Local.Count())
	ctx.Local.Insert(&symbol.Symbol{Name: "inner", Kind: symbol.KindVariable})

	ctx.RestoreLocalEnv()
	assert.NotNil(t, ctx.Local.Lookup("outer"))
	assert.Nil(t, ctx.Local.Lookup("inner"))
}

func TestPushPopGlobalStateRoundTrips(t *testing.T) {
	t.Parallel()

	ctx := symbol.NewContext()
	ctx.Global.Insert(&symbol.Symbol{Name: "original", Kind: symbol.KindVariable})
	ctx.ErrorCount = 3

	snap := ctx.PushGlobalState()
	assert.Equal(t, 0, ctx.Global.Count())
	assert.Equal(t, 0, ctx.ErrorCount)

	ctx.Global.Insert(&symbol.Symbol{Name: "scratch", Kind: symbol.KindVariable})

	ctx.PopGlobalState(snap)
	assert.NotNil(t, ctx.Global.Lookup("original"))
	assert.Nil(t, ctx.Global.Lookup("scratch"))
	assert.Equal(t, 3, ctx.ErrorCount)
}

func TestUpdateSymbolPrefersLocalOverGlobal(t *testing.T) {
	t.Parallel()

	ctx := symbol.NewContext()
	ctx.Global.Insert(&symbol.Symbol{Name: "x", Kind: symbol.KindVariable, VarType: ast.TypeInt64, Value: symbol.NewInt(0, 64, true)})
	local := &symbol.Symbol{Name: "x", Kind: symbol.KindVariable, VarType: ast.TypeInt64, Value: symbol.NewInt(0, 64, true)}
	ctx.Local.Insert(local)

	require.NoError(t, ctx.UpdateSymbol("x", symbol.NewInt(7, 64, true)))

	assert.EqualValues(t, 7, local.Value.IntVal)
	assert.EqualValues(t, 0, ctx.Global.Lookup("x").Value.IntVal)
}

func TestUpdateSymbolNotFoundAcrossBothTables(t *testing.T) {
	t.Parallel()

	ctx := symbol.NewContext()
	err := ctx.UpdateSymbol("nope", symbol.NewInt(1, 64, true))

	var updateErr *symbol.UpdateError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, symbol.SymbolNotFound, updateErr.Kind)
}

func TestBreakRequested(t *testing.T) {
	t.Parallel()

	ctx := symbol.NewContext()
	assert.False(t, ctx.BreakRequested())
	ctx.RequestBreak()
	assert.True(t, ctx.BreakRequested())
}
