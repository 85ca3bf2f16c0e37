package unit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscal-toolchain/core/pkg/emitter"
	"github.com/pscal-toolchain/core/pkg/parser"
	"github.com/pscal-toolchain/core/pkg/symbol"
	"github.com/pscal-toolchain/core/pkg/unit"
)

func writeUnit(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".pp"), []byte(body), 0o644))
}

func TestLoadUnitLinksExportedRoutineIntoCallerProcedureTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeUnit(t, dir, "mathutil", `
unit MathUtil;

interface

function Double(n: Integer): Integer;

implementation

function Double(n: Integer): Integer;
begin
end;

end.
`)

	ctx := symbol.NewContext()
	em := &emitter.NopEmitter{}
	loader := unit.NewLoader(ctx, []string{dir}, em, nil, map[string]bool{})

	src := `
program Uses1;
uses MathUtil;
var
  result: Integer;
begin
  result := Double(21);
end.
`
	p := parser.New([]byte(src), parser.WithContext(ctx), parser.WithLoader(loader))
	p.Program()
	require.Equal(t, 0, p.ErrorCount())

	sym := ctx.Procedure.Lookup("double")
	require.NotNil(t, sym)
	assert.Equal(t, symbol.KindFunction, sym.Kind)
	assert.Contains(t, em.UnitsCompiled, "MathUtil")
}

func TestLoadUnitMissingDocumentedUnitWarnsButDoesNotAbort(t *testing.T) {
	t.Parallel()

	ctx := symbol.NewContext()
	loader := unit.NewLoader(ctx, []string{t.TempDir()}, nil, nil, map[string]bool{})

	src := `
program Uses2;
uses Crt;
begin
end.
`
	p := parser.New([]byte(src), parser.WithContext(ctx), parser.WithLoader(loader))
	p.Program()
	assert.Equal(t, 0, p.ErrorCount())
}

func TestLoadUnitMissingUndocumentedUnitAborts(t *testing.T) {
	t.Parallel()

	ctx := symbol.NewContext()
	loader := unit.NewLoader(ctx, []string{t.TempDir()}, nil, nil, map[string]bool{})

	src := `
program Uses3;
uses NoSuchUnit;
begin
end.
`
	p := parser.New([]byte(src), parser.WithContext(ctx), parser.WithLoader(loader))
	p.Program()
	assert.Equal(t, 1, p.ErrorCount())
}
