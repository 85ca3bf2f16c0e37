package parser

import (
	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/symbol"
	"github.com/pscal-toolchain/core/pkg/token"
)

// builtinVarTypes maps the lowercase spelling of a built-in type name to
// its VarType tag.
var builtinVarTypes = map[string]ast.VarType{
	"integer": ast.TypeInt64, "int8": ast.TypeInt8, "int16": ast.TypeInt16,
	"int32": ast.TypeInt32, "int64": ast.TypeInt64, "real": ast.TypeReal64,
	"single": ast.TypeReal32, "double": ast.TypeReal64, "char": ast.TypeChar,
	"string": ast.TypeString, "boolean": ast.TypeBoolean, "byte": ast.TypeByte,
	"word": ast.TypeWord, "pointer": ast.TypePointer, "thread": ast.TypeThread,
}

// TypeExpr parses one type expression: a built-in or user name (TYPE_REFERENCE),
// `array [ subrange ] of T` / `array of T`, `set of T`, `record ... end`,
// an enum list `(a, b, c)`, `^T`, or a procedure/function pointer type.
func (p *Parser) TypeExpr() *ast.Node {
	switch p.cur.Kind {
	case token.KwArray:
		return p.arrayType()
	case token.KwSet:
		return p.setType()
	case token.KwRecord:
		return p.recordType()
	case token.LParen:
		return p.enumType()
	case token.Caret:
		return p.pointerType()
	case token.KwProcedure, token.KwFunction:
		return p.procPtrType()
	default:
		return p.typeReference()
	}
}

func (p *Parser) typeReference() *ast.Node {
	n := p.newNode(ast.KindTypeReference)
	nameTok := p.eat(token.Ident)
	lower := canonicalName(nameTok.Lexeme)

	if vt, ok := builtinVarTypes[lower]; ok {
		n.VarType = vt
		return n
	}
	if def := p.Ctx.Types.Lookup(nameTok.Lexeme); def != nil {
		ast.SetRightShared(n, def)
		n.VarType = ast.VarTypeForDecl(def)
		return n
	}
	// Forward reference to a type not yet declared (e.g. a mutually
	// recursive record); reserve a slot so a later type_block fills it.
	p.Ctx.Types.ReservePlaceholder(nameTok.Lexeme)
	n.VarType = ast.TypeUnknown
	return n
}

func (p *Parser) arrayType() *ast.Node {
	n := p.newNode(ast.KindArrayType)
	p.eat(token.KwArray)
	if p.at(token.LBracket) {
		p.advance()
		for {
			ast.AddChild(n, p.subrange())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.eat(token.RBracket)
	}
	p.eat(token.KwOf)
	elem := p.TypeExpr()
	ast.SetRight(n, elem)
	n.VarType = ast.TypeArray
	return n
}

func (p *Parser) subrange() *ast.Node {
	n := p.newNode(ast.KindSubrange)
	low := p.Expression()
	p.eat(token.DotDot)
	high := p.Expression()
	ast.SetLeft(n, p.foldBound(low))
	ast.SetRight(n, p.foldBound(high))
	return n
}

// foldBound folds an array-bound expression down to an integer literal
// node, mirroring constBlock's immediate-fold-on-declaration pattern. An
// unfoldable or non-integer bound is a parse error; expr is returned
// unchanged so parsing can continue.
func (p *Parser) foldBound(expr *ast.Node) *ast.Node {
	v := foldWithParser(p, expr)
	if v.Kind != symbol.ValueInt {
		line, col := 0, 0
		if expr.Token != nil {
			line, col = expr.Token.Line, expr.Token.Column
		}
		p.errorf(line, col, "array bound must fold to an integer constant")
		return expr
	}
	num := ast.New(ast.KindNumber, expr.Token)
	num.IVal = v.IntVal
	num.VarType = ast.TypeInt64
	return num
}

func (p *Parser) setType() *ast.Node {
	n := p.newNode(ast.KindSetType)
	p.eat(token.KwSet)
	p.eat(token.KwOf)
	ast.SetRight(n, p.TypeExpr())
	n.VarType = ast.TypeSet
	return n
}

// recordType parses a record's fields, followed by any method prototypes
// (spec.md §4.6: "records register their method prototypes into the
// current procedure table using Record.Method-qualified names"). Method
// prototypes are collected as Children alongside field VAR_DECLs,
// distinguished by Kind; typeBlock (which alone knows the record's own
// name at this point) is what actually registers them, via
// registerRecordMethods.
func (p *Parser) recordType() *ast.Node {
	n := p.newNode(ast.KindRecordType)
	p.eat(token.KwRecord)
	for p.at(token.Ident) {
		names := p.identList()
		p.eat(token.Colon)
		fieldType := p.TypeExpr()
		for _, nameTok := range names {
			field := ast.New(ast.KindVarDecl, &nameTok)
			ast.SetRight(field, ast.Copy(fieldType))
			ast.AddChild(n, field)
		}
		if p.at(token.Semicolon) {
			p.advance()
		}
	}
	for p.at(token.KwProcedure) || p.at(token.KwFunction) {
		ast.AddChild(n, p.methodPrototype())
	}
	p.eat(token.KwEnd)
	n.VarType = ast.TypeRecord
	return n
}

// methodPrototype parses a PROCEDURE/FUNCTION signature inside a record
// body: no FORWARD keyword, no body — just the receiver-less signature a
// later Class.Method-qualified routineDecl implements. Left mirrors
// routineDecl's own Left (the parameter list), so isRoutineLike/routineParams
// in pkg/sema treat a record method prototype exactly like any other
// routine declaration.
func (p *Parser) methodPrototype() *ast.Node {
	isFunction := p.at(token.KwFunction)
	kind := ast.KindProcedureDecl
	if isFunction {
		kind = ast.KindFunctionDecl
	}
	p.advance()
	nameTok := p.eat(token.Ident)
	n := ast.New(kind, &nameTok)
	ast.SetLeft(n, p.paramList())
	if isFunction {
		p.eat(token.Colon)
		n.VarType = p.TypeExpr().VarType
	}
	p.eat(token.Semicolon)
	n.Flags.IsForwardDecl = true
	return n
}

func (p *Parser) enumType() *ast.Node {
	n := p.newNode(ast.KindEnumType)
	p.eat(token.LParen)
	ordinal := 0
	for {
		nameTok := p.eat(token.Ident)
		member := ast.New(ast.KindEnumValue, &nameTok)
		member.IVal = int64(ordinal)
		member.VarType = ast.TypeEnum
		ast.AddChild(n, member)
		ordinal++
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.eat(token.RParen)
	n.VarType = ast.TypeEnum
	return n
}

func (p *Parser) pointerType() *ast.Node {
	n := p.newNode(ast.KindPointerType)
	p.eat(token.Caret)
	ast.SetRight(n, p.TypeExpr())
	n.VarType = ast.TypePointer
	return n
}

func (p *Parser) procPtrType() *ast.Node {
	n := p.newNode(ast.KindProcPtrType)
	isFunction := p.at(token.KwFunction)
	p.advance()
	ast.SetLeft(n, p.paramList())
	if isFunction {
		p.eat(token.Colon)
		n.VarType = p.TypeExpr().VarType
	}
	return n
}
