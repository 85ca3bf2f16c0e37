package parser

import (
	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/token"
)

// Unit parses `UNIT name ';' [uses-clause] INTERFACE declarations
// IMPLEMENTATION declarations [INITIALIZATION compound-statement] END '.'`
// into an AST_UNIT node whose Children hold, in order, the uses-clause (if
// present), the interface declarations group, the implementation
// declarations group, and the initialization block (if present).
func (p *Parser) Unit() *ast.Node {
	n := p.newNode(ast.KindUnit)
	p.eat(token.KwUnit)

	nameTok := p.eat(token.Ident)
	n.Token = &nameTok

	p.eat(token.Semicolon)

	if p.at(token.KwUses) {
		ast.AddChild(n, p.UsesClause())
	}

	p.eat(token.KwInterface)
	iface := p.Declarations()
	iface.Kind = ast.KindCompound
	ast.AddChild(n, iface)

	p.eat(token.KwImplementation)
	impl := p.Declarations()
	impl.Kind = ast.KindCompound
	ast.AddChild(n, impl)

	if p.at(token.KwInitialization) {
		p.advance()
		initBlock := ast.New(ast.KindInitializationBlock, nil)
		ast.SetLeft(initBlock, p.CompoundStatement())
		ast.AddChild(n, initBlock)
	}

	p.eat(token.KwEnd)
	p.eat(token.Dot)
	return n
}
