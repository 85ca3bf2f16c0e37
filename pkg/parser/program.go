package parser

import (
	"errors"
	"strings"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/token"
)

// Program parses `PROGRAM name [ '(' ident-list ')' ] ';' [uses-clause]
// block '.'` into an AST_PROGRAM with Left=name-variable, Right=block, and
// the uses-clause (if any) appended as a child.
func (p *Parser) Program() *ast.Node {
	prog := p.newNode(ast.KindProgram)
	p.eat(token.KwProgram)

	name := p.newNode(ast.KindVariable)
	p.eat(token.Ident)
	ast.SetLeft(prog, name)

	if p.at(token.LParen) {
		p.advance()
		for {
			p.eat(token.Ident)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.eat(token.RParen)
	}
	p.eat(token.Semicolon)

	if p.at(token.KwUses) {
		ast.AddChild(prog, p.UsesClause())
	}

	ast.SetRight(prog, p.Block())
	p.eat(token.Dot)
	return prog
}

// UsesClause parses `USES ident { ',' ident } ';'`. Every name is recorded
// case-sensitively in the node's UnitList; for each, the configured Loader
// is invoked to resolve and recursively parse the nested unit, then its
// exported symbols are linked into this Parser's Context. A unit missing
// from the search path is only a warning when its name is in
// DocumentedUnits (spec.md §7.1's "UnitFileNotFound (warning unless
// undocumented)"); any other missing unit is a hard parse error, and any
// other kind of loader failure (recursion too deep, circular dependency,
// read error, errors inside the nested unit itself) is unconditionally a
// warning, unchanged from before.
func (p *Parser) UsesClause() *ast.Node {
	n := p.newNode(ast.KindUsesClause)
	p.eat(token.KwUses)

	for {
		tok := p.eat(token.Ident)
		n.UnitList = append(n.UnitList, tok.Lexeme)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.eat(token.Semicolon)

	for _, name := range n.UnitList {
		_, err := p.Loader.LoadUnit(strings.ToLower(name), p.Depth+1)
		if err == nil {
			continue
		}
		var notFound *UnitNotFoundError
		if errors.As(err, &notFound) && !p.DocumentedUnits[strings.ToLower(name)] {
			p.errorf(n.Token.Line, n.Token.Column, "unit %q: %s (not a documented unit)", name, err)
			continue
		}
		p.warnf(n.Token.Line, n.Token.Column, "unit %q: %s", name, err)
	}
	return n
}

// Block parses `declarations compound-statement` into an AST_BLOCK with two
// positional children {declarations, body}.
func (p *Parser) Block() *ast.Node {
	n := p.newNode(ast.KindBlock)
	decls := p.Declarations()
	ast.SetChildIndex(n, 0, decls)
	ast.SetChildIndex(n, 1, p.CompoundStatement())
	return n
}

// Declarations parses `{ label-block | const-block | type-block | var-block
// | routine-decl }*`, dispatching on the leading keyword, and returns a
// COMPOUND node whose children are the individual declaration groups in
// source order.
func (p *Parser) Declarations() *ast.Node {
	group := p.newNode(ast.KindCompound)
	for {
		switch p.cur.Kind {
		case token.KwLabel:
			ast.AddChild(group, p.labelBlock())
		case token.KwConst:
			ast.AddChild(group, p.constBlock())
		case token.KwType:
			ast.AddChild(group, p.typeBlock())
		case token.KwVar:
			ast.AddChild(group, p.varBlock())
		case token.KwProcedure, token.KwFunction:
			ast.AddChild(group, p.routineDecl())
		default:
			return group
		}
	}
}

func (p *Parser) labelBlock() *ast.Node {
	n := p.newNode(ast.KindLabel)
	p.eat(token.KwLabel)
	for {
		p.eat(token.IntLiteral)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.eat(token.Semicolon)
	return n
}
