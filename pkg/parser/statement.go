package parser

import (
	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/token"
)

// CompoundStatement parses `BEGIN stmt { ';' stmt } END`.
func (p *Parser) CompoundStatement() *ast.Node {
	n := p.newNode(ast.KindCompound)
	p.eat(token.KwBegin)
	for !p.at(token.KwEnd) {
		ast.AddChild(n, p.Statement())
		if p.at(token.Semicolon) {
			p.advance()
		} else {
			break
		}
	}
	p.eat(token.KwEnd)
	return n
}

// Statement dispatches on the leading token to one of the statement
// productions (if/while/for/repeat/case/break/goto/label/read/write/
// spawn/join), falling through to the identifier-led assignment-or-call
// rule.
func (p *Parser) Statement() *ast.Node {
	switch p.cur.Kind {
	case token.KwBegin:
		return p.CompoundStatement()
	case token.KwIf:
		return p.ifStatement()
	case token.KwWhile:
		return p.whileStatement()
	case token.KwFor:
		return p.forStatement()
	case token.KwRepeat:
		return p.repeatStatement()
	case token.KwCase:
		return p.caseStatement()
	case token.KwBreak:
		n := p.newNode(ast.KindBreak)
		p.advance()
		return n
	case token.KwGoto:
		n := p.newNode(ast.KindGoto)
		p.advance()
		p.eat(token.IntLiteral)
		return n
	case token.IntLiteral:
		return p.labelledStatement()
	case token.KwRead, token.KwReadln:
		return p.readStatement()
	case token.KwWrite, token.KwWriteln:
		return p.writeStatement()
	case token.KwSpawn:
		return p.spawnStatement()
	case token.KwJoin:
		n := p.newNode(ast.KindJoin)
		p.advance()
		ast.SetLeft(n, p.Lvalue())
		return n
	case token.Ident:
		return p.identifierLedStatement()
	default:
		return p.newNode(ast.KindCompound) // empty statement
	}
}

func (p *Parser) labelledStatement() *ast.Node {
	tok := p.eat(token.IntLiteral)
	label := ast.New(ast.KindLabel, &tok)
	p.eat(token.Colon)
	ast.SetLeft(label, p.Statement())
	return label
}

func (p *Parser) ifStatement() *ast.Node {
	n := p.newNode(ast.KindIf)
	p.eat(token.KwIf)
	ast.SetLeft(n, p.Expression())
	p.eat(token.KwThen)
	ast.SetExtra(n, p.Statement())
	if p.at(token.KwElse) {
		p.advance()
		ast.SetRight(n, p.Statement())
	}
	return n
}

func (p *Parser) whileStatement() *ast.Node {
	n := p.newNode(ast.KindWhile)
	p.eat(token.KwWhile)
	ast.SetLeft(n, p.Expression())
	p.eat(token.KwDo)
	ast.SetExtra(n, p.Statement())
	return n
}

// forStatement parses `FOR ident ':=' expr (TO | DOWNTO) expr DO stmt`,
// producing FOR_TO or FOR_DOWNTO depending on the direction keyword.
func (p *Parser) forStatement() *ast.Node {
	p.eat(token.KwFor)
	loopVar := p.newNode(ast.KindVariable)
	p.eat(token.Ident)
	p.eat(token.Assign)
	start := p.Expression()

	kind := ast.KindForTo
	if p.at(token.KwDownto) {
		kind = ast.KindForDownto
	}
	p.advance() // TO | DOWNTO

	bound := p.Expression()
	p.eat(token.KwDo)

	n := ast.New(kind, loopVar.Token)
	ast.SetLeft(n, loopVar)
	ast.SetRight(n, start)
	ast.AddChild(n, bound)
	ast.SetExtra(n, p.Statement())
	return n
}

func (p *Parser) repeatStatement() *ast.Node {
	n := p.newNode(ast.KindRepeat)
	p.eat(token.KwRepeat)
	for !p.at(token.KwUntil) {
		ast.AddChild(n, p.Statement())
		if p.at(token.Semicolon) {
			p.advance()
		} else {
			break
		}
	}
	p.eat(token.KwUntil)
	ast.SetLeft(n, p.Expression())
	return n
}

// caseStatement parses `CASE expr OF { label-list ':' stmt ';' } [ELSE
// stmt] END`. Each branch stores its labels as Children and its body as
// Left (ast.CaseBranchLabels/ast.CaseBranchBody).
func (p *Parser) caseStatement() *ast.Node {
	n := p.newNode(ast.KindCase)
	p.eat(token.KwCase)
	ast.SetLeft(n, p.Expression())
	p.eat(token.KwOf)

	for !p.at(token.KwEnd) && !p.at(token.KwElse) {
		branch := p.newNode(ast.KindCaseBranch)
		for {
			ast.AddChild(branch, p.Expression())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.eat(token.Colon)
		ast.SetLeft(branch, p.Statement())
		ast.AddChild(n, branch)
		if p.at(token.Semicolon) {
			p.advance()
		}
	}
	if p.at(token.KwElse) {
		p.advance()
		elseBranch := p.newNode(ast.KindCaseBranch)
		ast.SetLeft(elseBranch, p.Statement())
		ast.SetExtra(n, elseBranch)
		if p.at(token.Semicolon) {
			p.advance()
		}
	}
	p.eat(token.KwEnd)
	return n
}

func (p *Parser) readStatement() *ast.Node {
	kind := ast.KindRead
	if p.at(token.KwReadln) {
		kind = ast.KindReadln
	}
	n := p.newNode(kind)
	p.advance()
	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) {
			ast.AddChild(n, p.Lvalue())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.eat(token.RParen)
	}
	return n
}

func (p *Parser) writeStatement() *ast.Node {
	kind := ast.KindWrite
	if p.at(token.KwWriteln) {
		kind = ast.KindWriteln
	}
	n := p.newNode(kind)
	p.advance()
	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) {
			ast.AddChild(n, p.formattedExpr())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.eat(token.RParen)
	}
	return n
}

func (p *Parser) spawnStatement() *ast.Node {
	n := p.newNode(ast.KindSpawn)
	p.eat(token.KwSpawn)
	ast.SetLeft(n, p.Statement())
	return n
}

// identifierLedStatement implements procedure-call-statement semantics:
// if the lvalue is followed by `:=`, `+=`, or `-=` it becomes an ASSIGN
// node (compound forms expand to `lhs := lhs op rhs`); otherwise the
// identifier, with or without call arguments, is rewritten in place into
// a CALL node — a bare Variable node used as the receiver of a
// parameter-less call is rewritten into a procedure-call node.
func (p *Parser) identifierLedStatement() *ast.Node {
	lv := p.Lvalue()

	switch p.cur.Kind {
	case token.Assign:
		p.advance()
		n := ast.New(ast.KindAssign, lv.Token)
		ast.SetLeft(n, lv)
		ast.SetRight(n, p.Expression())
		return n
	case token.PlusEq, token.MinusEq:
		opTok := p.cur
		compoundOp := token.Plus
		if opTok.Kind == token.MinusEq {
			compoundOp = token.Minus
		}
		p.advance()
		rhs := p.Expression()

		binary := ast.New(ast.KindBinaryOp, &token.Token{Kind: compoundOp, Line: opTok.Line, Column: opTok.Column})
		ast.SetLeft(binary, ast.Copy(lv))
		ast.SetRight(binary, rhs)

		n := ast.New(ast.KindAssign, lv.Token)
		ast.SetLeft(n, lv)
		ast.SetRight(n, binary)
		return n
	case token.LParen:
		return p.finishCall(lv)
	default:
		// Bare identifier statement: a parameter-less procedure call,
		// rewriting the Variable node in place.
		lv.Kind = ast.KindCall
		return lv
	}
}
