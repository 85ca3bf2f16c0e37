package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/token"
	"github.com/pscal-toolchain/core/pkg/types"
)

func TestInsertDeepCopiesAndLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	r := types.New()
	def := ast.New(ast.KindRecordType, &token.Token{Kind: token.Ident, Lexeme: "Point"})
	r.Insert("Point", def)

	got := r.Lookup("point")
	require.NotNil(t, got)
	assert.NotSame(t, def, got)
	assert.Equal(t, ast.KindRecordType, got.Kind)
}

func TestReservePlaceholderThenInsertFillsSameSlotInOrder(t *testing.T) {
	t.Parallel()

	r := types.New()
	r.ReservePlaceholder("Node")
	r.Insert("Other", ast.New(ast.KindEnumType, nil))
	r.Insert("Node", ast.New(ast.KindRecordType, nil))

	assert.Equal(t, []string{"Node", "Other"}, r.Names())
}

func TestContainsReportsRegistryOwnership(t *testing.T) {
	t.Parallel()

	r := types.New()
	r.Insert("Color", ast.New(ast.KindEnumType, nil))
	owned := r.Lookup("Color")

	assert.True(t, r.Contains(owned))
	assert.False(t, r.Contains(ast.New(ast.KindEnumType, nil)))
}
