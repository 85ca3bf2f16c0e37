package astjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/astjson"
	"github.com/pscal-toolchain/core/pkg/parser"
	"github.com/pscal-toolchain/core/pkg/token"
)

func TestDumpLoadRoundTripsProgramStructure(t *testing.T) {
	t.Parallel()

	src := `
program Demo;
const
  Max = 3;
var
  count: Integer;
begin
  count := Max + 1;
  if count > 0 then
    count := count - 1;
end.
`
	p := parser.New([]byte(src))
	prog := p.Program()
	require.Equal(t, 0, p.ErrorCount())

	text := astjson.Dump(prog)
	require.NotEmpty(t, text)

	loaded, err := astjson.Load([]byte(text))
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, prog.Kind, loaded.Kind)
	require.NotNil(t, loaded.Right)
	assert.Equal(t, prog.Right.Kind, loaded.Right.Kind)
}

func TestDumpEscapesControlCharacters(t *testing.T) {
	t.Parallel()

	n := ast.New(ast.KindStringLit, &token.Token{Kind: token.StringLiteral, Lexeme: "a\x01b"})

	text := astjson.Dump(n)
	assert.Contains(t, text, `\u0001`)
	assert.NotContains(t, text, "\x01")
}

func TestLoadRejectsUnknownNodeType(t *testing.T) {
	t.Parallel()

	_, err := astjson.Load([]byte(`{"node_type":"NOT_A_REAL_KIND"}`))
	assert.Error(t, err)
}
