package parser

import (
	"fmt"
	"strings"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/symbol"
	"github.com/pscal-toolchain/core/pkg/token"
)

// Lvalue parses `ident { '.' ident | '[' expr {',' expr} ']' | '^' }`,
// building Variable/FieldAccess/ArrayAccess/Dereference nodes in
// left-leaning order.
func (p *Parser) Lvalue() *ast.Node {
	n := p.newNode(ast.KindVariable)
	p.eat(token.Ident)

	for {
		switch p.cur.Kind {
		case token.Dot:
			p.advance()
			field := p.newNode(ast.KindFieldAccess)
			p.eat(token.Ident)
			ast.SetLeft(field, n)
			n = field
		case token.LBracket:
			p.advance()
			access := ast.New(ast.KindArrayAccess, n.Token)
			ast.SetLeft(access, n)
			for {
				ast.AddChild(access, p.Expression())
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			p.eat(token.RBracket)
			n = access
		case token.Caret:
			p.advance()
			deref := ast.New(ast.KindDereference, n.Token)
			ast.SetLeft(deref, n)
			n = deref
		default:
			return n
		}
	}
}

// Expression parses a relational-expression optionally followed by the
// ternary suffix `'?' expression ':' expression`. Relational
// operators: `= <> < <= > >= in`.
func (p *Parser) Expression() *ast.Node {
	left := p.relational()
	if !p.at(token.Question) {
		return left
	}
	n := p.newNode(ast.KindTernary)
	p.advance()
	thenExpr := p.Expression()
	p.eat(token.Colon)
	elseExpr := p.Expression()
	ast.SetLeft(n, left)
	ast.SetExtra(n, thenExpr)
	ast.SetRight(n, elseExpr)
	return n
}

func isRelationalOp(k token.Kind) bool {
	switch k {
	case token.Eq, token.NotEq, token.Lt, token.LtEq, token.Gt, token.GtEq, token.KwIn:
		return true
	default:
		return false
	}
}

func (p *Parser) relational() *ast.Node {
	left := p.SimpleExpression()
	for isRelationalOp(p.cur.Kind) {
		opTok := p.cur
		p.advance()
		n := ast.New(ast.KindBinaryOp, &opTok)
		ast.SetLeft(n, left)
		ast.SetRight(n, p.SimpleExpression())
		left = n
	}
	return left
}

// SimpleExpression parses an optional leading sign, then
// `term { (+ | - | OR | XOR) term }`.
func (p *Parser) SimpleExpression() *ast.Node {
	var left *ast.Node
	if p.at(token.Plus) || p.at(token.Minus) {
		opTok := p.cur
		p.advance()
		n := ast.New(ast.KindUnaryOp, &opTok)
		ast.SetLeft(n, p.Term())
		left = n
	} else {
		left = p.Term()
	}

	for p.at(token.Plus) || p.at(token.Minus) || p.at(token.KwOr) || p.at(token.KwXor) {
		opTok := p.cur
		p.advance()
		n := ast.New(ast.KindBinaryOp, &opTok)
		ast.SetLeft(n, left)
		ast.SetRight(n, p.Term())
		left = n
	}
	return left
}

// Term parses `factor { (* | / | DIV | MOD | AND | SHL | SHR) factor }`.
func (p *Parser) Term() *ast.Node {
	left := p.Factor()
	for isTermOp(p.cur.Kind) {
		opTok := p.cur
		p.advance()
		n := ast.New(ast.KindBinaryOp, &opTok)
		ast.SetLeft(n, left)
		ast.SetRight(n, p.Factor())
		left = n
	}
	return left
}

func isTermOp(k token.Kind) bool {
	switch k {
	case token.Star, token.Slash, token.KwDiv, token.KwMod, token.KwAnd, token.KwShl, token.KwShr:
		return true
	default:
		return false
	}
}

// Factor parses a primary expression: literals, `@lvalue`,
// NIL/TRUE/FALSE, `NOT factor`, a parenthesized expression, a set
// constructor, an lvalue optionally followed by a call's argument list, and
// the `AS`/`IS` type-assertion suffix. Adjacent string literals concatenate.
func (p *Parser) Factor() *ast.Node {
	n := p.factorPrimary()
	for p.at(token.KwAs) || p.at(token.KwIs) {
		opTok := p.cur
		p.advance()
		assertion := ast.New(ast.KindTypeAssert, &opTok)
		ast.SetLeft(assertion, n)
		ast.SetRight(assertion, p.TypeExpr())
		n = assertion
	}
	return n
}

func (p *Parser) factorPrimary() *ast.Node {
	switch p.cur.Kind {
	case token.IntLiteral, token.RealLiteral, token.HexLiteral:
		n := p.newNode(ast.KindNumber)
		p.advance()
		return n
	case token.StringLiteral, token.CharLiteral:
		return p.stringLiteral()
	case token.KwNil:
		n := p.newNode(ast.KindNilLit)
		p.advance()
		return n
	case token.KwTrue, token.KwFalse:
		n := p.newNode(ast.KindBooleanLit)
		p.advance()
		return n
	case token.At:
		opTok := p.cur
		p.advance()
		n := ast.New(ast.KindAddressOf, &opTok)
		ast.SetLeft(n, p.Lvalue())
		return n
	case token.KwNot:
		opTok := p.cur
		p.advance()
		n := ast.New(ast.KindUnaryOp, &opTok)
		ast.SetLeft(n, p.Factor())
		return n
	case token.LParen:
		p.advance()
		inner := p.Expression()
		p.eat(token.RParen)
		return inner
	case token.LBracket:
		return p.setLiteral()
	default:
		return p.callOrLvalue()
	}
}

// stringLiteral consumes one or more adjacent string/char-code literals,
// concatenating them; the combined literal becomes CHAR only if the result
// is exactly one byte and every concatenated segment was itself a `#nn`
// char code.
func (p *Parser) stringLiteral() *ast.Node {
	first := p.cur
	combined := first.Lexeme
	allCharCodes := first.IsCharCode
	p.advance()

	for p.at(token.StringLiteral) || p.at(token.CharLiteral) {
		combined += p.cur.Lexeme
		allCharCodes = allCharCodes && p.cur.IsCharCode
		p.advance()
	}

	tok := first
	tok.Lexeme = combined
	n := ast.New(ast.KindStringLit, &tok)
	if allCharCodes && len(combined) == 1 {
		n.VarType = ast.TypeChar
	} else {
		n.VarType = ast.TypeString
	}
	return n
}

// setLiteral parses `'[' [ element { ',' element } ] ']'` where an element
// is an expression optionally followed by `..` for a subrange.
func (p *Parser) setLiteral() *ast.Node {
	n := p.newNode(ast.KindSetLiteral)
	p.eat(token.LBracket)
	for !p.at(token.RBracket) {
		low := p.Expression()
		if p.at(token.DotDot) {
			p.advance()
			sub := ast.New(ast.KindSubrange, low.Token)
			ast.SetLeft(sub, low)
			ast.SetRight(sub, p.Expression())
			ast.AddChild(n, sub)
		} else {
			ast.AddChild(n, low)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.eat(token.RBracket)
	n.VarType = ast.TypeSet
	return n
}

// callOrLvalue parses an lvalue, then, if followed by '(', the call's
// argument list. A bare procedure name used as a value elsewhere is left
// as a Variable node; the statement-level rewrite into a CALL node happens
// in Statement.
func (p *Parser) callOrLvalue() *ast.Node {
	lv := p.Lvalue()
	if !p.at(token.LParen) {
		return lv
	}
	return p.finishCall(lv)
}

func (p *Parser) finishCall(callee *ast.Node) *ast.Node {
	call := ast.New(ast.KindCall, callee.Token)
	ast.SetLeft(call, callee)
	p.eat(token.LParen)

	isStr := callee.Token != nil && canonicalName(callee.Token.Lexeme) == "str"
	for !p.at(token.RParen) {
		if isStr && len(call.Children) == 0 {
			ast.AddChild(call, p.formattedExpr())
		} else {
			ast.AddChild(call, p.Expression())
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.eat(token.RParen)
	return call
}

// formattedExpr parses `expr [ ':' width [ ':' precision ] ]`, wrapping a
// width/precision suffix in an AST_FORMATTED_EXPR node whose token's
// lexeme is "width,precision". The specifier grammar itself
// runs through a small goparsec sub-parser (see format.go).
func (p *Parser) formattedExpr() *ast.Node {
	value := p.Expression()
	if !p.at(token.Colon) {
		return value
	}

	var foldedInts []string
	for p.at(token.Colon) {
		p.advance()
		part := p.Expression()
		if v := foldWithParser(p, part); v.Kind == symbol.ValueInt {
			foldedInts = append(foldedInts, fmt.Sprintf("%d", v.IntVal))
		}
	}

	wrapper := ast.New(ast.KindFormattedExpr, value.Token)
	if lexeme, ok := parseFormatSpec(strings.Join(foldedInts, ":")); ok {
		if wrapper.Token == nil {
			wrapper.Token = &token.Token{}
		}
		wrapper.Token.Lexeme = lexeme
	}
	ast.SetLeft(wrapper, value)
	return wrapper
}
