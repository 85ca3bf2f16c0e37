package sema_test

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/diag"
	"github.com/pscal-toolchain/core/pkg/parser"
	"github.com/pscal-toolchain/core/pkg/sema"
)

func parseAndAnnotate(t *testing.T, src string) (*ast.Node, *sema.Annotator) {
	t.Helper()
	p := parser.New([]byte(src))
	prog := p.Program()
	require.Equal(t, 0, p.ErrorCount())

	a := sema.New(p.Ctx, nil)
	a.Annotate(prog)
	return prog, a
}

func TestAnnotateResolvesVariableType(t *testing.T) {
	t.Parallel()

	src := `
program Demo;
var
  count: Integer;
begin
  count := count + 1;
end.
`
	_, a := parseAndAnnotate(t, src)
	assert.Equal(t, 0, a.ErrorCount)
}

func TestAnnotateDivisionWidensToReal(t *testing.T) {
	t.Parallel()

	src := `
program Demo;
var
  a, b: Integer;
  r: Real;
begin
  r := a / b;
end.
`
	_, a := parseAndAnnotate(t, src)
	assert.Equal(t, 0, a.ErrorCount)
}

// TestAnnotateProcPointerParamTypeMismatch is testable scenario (d)
// (spec.md §8): assigning @Q to a procedure-pointer-typed variable whose
// declared parameter type disagrees with Q's own must report the exact
// diagnostic text the scenario names, with Pascal type keywords rather than
// ast.VarType's internal tag spelling (INT64/REAL64).
func TestAnnotateProcPointerParamTypeMismatch(t *testing.T) {
	t.Parallel()

	src := `
program Demo;
type
  P = procedure(x: Integer);
procedure Q(x: Real);
begin
end;
var
  f: P;
begin
  f := @Q;
end.
`
	p := parser.New([]byte(src))
	prog := p.Program()
	require.Equal(t, 0, p.ErrorCount())

	logger, hook := test.NewNullLogger()
	sink := diag.NewSink(logger)

	a := sema.New(p.Ctx, sink)
	a.Annotate(prog)

	assert.Equal(t, 1, a.ErrorCount)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "proc pointer param 1 type mismatch for 'Q' (expected INTEGER, got REAL)", hook.Entries[0].Message)
}

func TestAnnotateUndeclaredIdentifierIsError(t *testing.T) {
	t.Parallel()

	src := `
program Demo;
begin
  mystery := 1;
end.
`
	_, a := parseAndAnnotate(t, src)
	assert.Greater(t, a.ErrorCount, 0)
}

func TestAnnotateComparisonYieldsBoolean(t *testing.T) {
	t.Parallel()

	src := `
program Demo;
var
  x: Integer;
  flag: Boolean;
begin
  flag := x > 0;
end.
`
	_, a := parseAndAnnotate(t, src)
	assert.Equal(t, 0, a.ErrorCount)
}
