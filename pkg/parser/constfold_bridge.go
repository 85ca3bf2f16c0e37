package parser

import (
	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/constfold"
	"github.com/pscal-toolchain/core/pkg/symbol"
)

// foldWithParser evaluates expr against this Parser's constant table and
// symbol context, the glue between pkg/parser's declaration handling and
// pkg/constfold's standalone Fold function.
func foldWithParser(p *Parser, expr *ast.Node) *symbol.Value {
	return constfold.Fold(expr, p.Consts, p.Ctx)
}
