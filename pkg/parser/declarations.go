package parser

import (
	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/symbol"
	"github.com/pscal-toolchain/core/pkg/token"
)

// constBlock parses a `CONST ident = expr ; { ident = expr ; }` group.
// Each constant is folded immediately and registered both in the compile-
// time constant table and as a Constant symbol.
func (p *Parser) constBlock() *ast.Node {
	group := p.newNode(ast.KindCompound)
	p.eat(token.KwConst)
	for p.at(token.Ident) {
		nameTok := p.eat(token.Ident)
		p.eat(token.Eq)
		valueExpr := p.Expression()
		p.eat(token.Semicolon)

		decl := ast.New(ast.KindConstDecl, &nameTok)
		ast.SetRight(decl, valueExpr)
		ast.AddChild(group, decl)

		folded := foldWithParser(p, valueExpr)
		p.Consts.Set(nameTok.Lexeme, folded)
		p.Ctx.ConstGlobal.Insert(&symbol.Symbol{
			Name:  canonicalName(nameTok.Lexeme),
			Kind:  symbol.KindConstant,
			Value: folded,
			Flags: symbol.Flags{IsConst: true, IsDefined: true},
		})
	}
	return group
}

// typeBlock parses a `TYPE ident = type-expr ; { ident = type-expr ; }`
// group, registering each name in the type registry. A record type's
// method prototypes (parsed by recordType as plain Children) are
// registered here, once the record's own name is known, as
// Record.Method-qualified procedure-table entries (spec.md §4.6).
func (p *Parser) typeBlock() *ast.Node {
	group := p.newNode(ast.KindCompound)
	p.eat(token.KwType)
	for p.at(token.Ident) {
		nameTok := p.eat(token.Ident)
		p.eat(token.Eq)
		def := p.TypeExpr()
		p.eat(token.Semicolon)

		decl := ast.New(ast.KindTypeDecl, &nameTok)
		ast.SetRight(decl, def)
		ast.AddChild(group, decl)

		p.Ctx.Types.Insert(nameTok.Lexeme, def)
		if def.Kind == ast.KindRecordType {
			p.registerRecordMethods(nameTok.Lexeme, def)
		}
	}
	return group
}

// registerRecordMethods publishes a record type's method prototypes into
// the current procedure table as "RecordName.MethodName" (spec.md §4.6),
// exactly the way a unit's interface section publishes a forward
// declaration: a later Class.Method-qualified routineDecl implementing one
// finds this entry via registerRoutineIn's existing lookup and replaces
// its AST and IsDefined flag in place.
func (p *Parser) registerRecordMethods(recordName string, def *ast.Node) {
	for _, member := range def.Children {
		if member.Kind != ast.KindProcedureDecl && member.Kind != ast.KindFunctionDecl {
			continue
		}
		qualified := canonicalName(recordName + "." + member.Token.Lexeme)
		registerRoutineIn(p.Ctx.Procedure, qualified, member, member.Kind == ast.KindFunctionDecl, false)
	}
}

// varBlock parses a `VAR ident-list : type [ '=' initializer ] ; { ... }`
// group. An `array of T` type is accepted here as in a parameter list (it
// is not rejected); ordinary array bounds must fold. Inside a routine body each
// name is inserted into the routine's local table (see routineDecl);
// elsewhere it goes into Global.
func (p *Parser) varBlock() *ast.Node {
	group := p.newNode(ast.KindCompound)
	p.eat(token.KwVar)
	for p.at(token.Ident) {
		names := p.identList()
		p.eat(token.Colon)
		typeNode := p.TypeExpr()

		var initializer *ast.Node
		if p.at(token.Eq) {
			p.advance()
			initializer = p.Expression()
		}
		p.eat(token.Semicolon)

		for _, nameTok := range names {
			decl := ast.New(ast.KindVarDecl, &nameTok)
			ast.SetRight(decl, ast.Copy(typeNode))
			if initializer != nil {
				ast.SetExtra(decl, ast.Copy(initializer))
			}
			ast.AddChild(group, decl)

			sym := &symbol.Symbol{
				Name:    canonicalName(nameTok.Lexeme),
				Kind:    symbol.KindVariable,
				VarType: ast.VarTypeForDecl(typeNode),
				TypeDef: typeNode,
				Flags:   symbol.Flags{IsDefined: true, IsLocalVar: p.inRoutineBody},
			}
			if p.inRoutineBody {
				p.Ctx.Local.Insert(sym)
			} else {
				p.Ctx.Global.Insert(sym)
			}
		}
	}
	return group
}

// identList parses `ident { ',' ident }` and returns the consumed tokens.
func (p *Parser) identList() []token.Token {
	var names []token.Token
	names = append(names, p.eat(token.Ident))
	for p.at(token.Comma) {
		p.advance()
		names = append(names, p.eat(token.Ident))
	}
	return names
}

// routineDecl parses a PROCEDURE/FUNCTION declaration: modifiers, name,
// parameter list, return type (functions only), and either a forward
// marker or an implementation block. A re-declaration of a name already
// registered from an interface section replaces that symbol's AST and sets
// IsDefined. The name may be a plain identifier or a Class.Method-qualified
// one (spec.md §4.7): the latter implements a method prototype a record
// type registered under that same qualified name (see registerRecordMethods),
// and registerRoutineIn's existing forward/implementation replacement
// handles the method the same way it already does an ordinary forward
// declaration.
func (p *Parser) routineDecl() *ast.Node {
	isFunction := p.at(token.KwFunction)
	kind := ast.KindProcedureDecl
	if isFunction {
		kind = ast.KindFunctionDecl
	}
	p.advance() // PROCEDURE | FUNCTION

	nameTok := p.eat(token.Ident)
	if p.at(token.Dot) {
		p.advance()
		methodTok := p.eat(token.Ident)
		nameTok = token.Token{
			Kind:   token.Ident,
			Lexeme: nameTok.Lexeme + "." + methodTok.Lexeme,
			Line:   nameTok.Line,
			Column: nameTok.Column,
		}
	}
	n := ast.New(kind, &nameTok)

	// Every parameter and in-body local belongs to this routine's own
	// scope. outerProcs stays the enclosing procedure table so the
	// routine's own name (needed for recursive self-calls and for
	// sibling declarations after it) is registered there rather than in
	// the fresh table pushed below, which only holds any routine nested
	// inside this one's body and is discarded when it returns.
	outerProcs := p.Ctx.Procedure
	p.Ctx.SaveLocalEnv()
	p.Ctx.PushProcedureTable()
	outerInRoutineBody := p.inRoutineBody
	p.inRoutineBody = true

	params := p.paramList()
	ast.SetLeft(n, params)
	for _, param := range params.Children {
		p.Ctx.Local.Insert(&symbol.Symbol{
			Name:    canonicalName(param.Token.Lexeme),
			Kind:    symbol.KindVariable,
			VarType: ast.VarTypeForDecl(param.Right),
			TypeDef: param.Right,
			Flags:   symbol.Flags{IsDefined: true, IsLocalVar: true},
		})
	}

	if isFunction {
		p.eat(token.Colon)
		n.VarType = p.TypeExpr().VarType
	}
	p.eat(token.Semicolon)

	for p.atModifierKeyword() {
		switch p.cur.Kind {
		case token.KwInline:
			n.Flags.IsInline = true
		case token.KwVirtual:
			n.Flags.IsVirtual = true
		}
		p.advance()
		p.eat(token.Semicolon)
	}

	symName := canonicalName(nameTok.Lexeme)
	if p.overridesBuiltinWithoutDirective(symName) {
		p.warnf(nameTok.Line, nameTok.Column, "declaration of %q overrides a built-in routine", nameTok.Lexeme)
	}

	// Register in the enclosing table now, before parsing the body, so a
	// recursive call to this routine's own name resolves.
	registerRoutineIn(outerProcs, symName, n, isFunction, false)

	if p.at(token.KwForward) {
		p.advance()
		p.eat(token.Semicolon)
		n.Flags.IsForwardDecl = true
		n.Symbols = p.Ctx.Local
		p.inRoutineBody = outerInRoutineBody
		p.Ctx.PopProcedureTable(true)
		p.Ctx.RestoreLocalEnv()
		return n
	}

	ast.SetExtra(n, p.Block())
	p.eat(token.Semicolon)
	registerRoutineIn(outerProcs, symName, n, isFunction, true)
	// n.Symbols carries this routine's own local table (params plus
	// in-body VAR declarations) so a later semantic pass over n.Extra can
	// reinstall it instead of resolving names against whatever scope
	// happens to be active when it visits this node; see annotateRoutine.
	n.Symbols = p.Ctx.Local
	p.inRoutineBody = outerInRoutineBody
	p.Ctx.PopProcedureTable(true)
	p.Ctx.RestoreLocalEnv()
	return n
}

func (p *Parser) atModifierKeyword() bool {
	return p.at(token.KwInline) || p.at(token.KwVirtual)
}

// registerRoutineIn inserts (or, for a forward declaration's later body,
// updates) decl's symbol into table. A re-declaration from an interface
// section replaces the existing symbol's AST and defined flag in place so
// callers resolved against the earlier (forward) symbol still see it.
func registerRoutineIn(table *symbol.Table, name string, decl *ast.Node, isFunction, defined bool) {
	kind := symbol.KindProcedure
	if isFunction {
		kind = symbol.KindFunction
	}
	if existing := table.Lookup(name); existing != nil {
		existing.TypeDef = decl
		existing.Flags.IsDefined = defined
		return
	}
	table.Insert(&symbol.Symbol{
		Name:    name,
		Kind:    kind,
		Arity:   len(decl.Left.Children),
		TypeDef: decl,
		Flags:   symbol.Flags{IsDefined: defined},
	})
}

func (p *Parser) overridesBuiltinWithoutDirective(name string) bool {
	if !p.Builtins[name] {
		return false
	}
	for _, overridden := range p.lex.OverrideBuiltin {
		if canonicalName(overridden) == name {
			return false
		}
	}
	return true
}

// paramList parses `'(' [ paramGroup { ';' paramGroup } ] ')'` where a
// paramGroup is `[VAR|OUT|CONST] ident { ',' ident } ':' type`. Each
// identifier gets its own deep-copied
// type AST and a VAR_DECL node; VAR/OUT set by_ref.
func (p *Parser) paramList() *ast.Node {
	n := p.newNode(ast.KindCompound)
	if !p.at(token.LParen) {
		return n
	}
	p.advance()
	for !p.at(token.RParen) {
		byRef := false
		switch p.cur.Kind {
		case token.KwVar, token.KwOut:
			byRef = true
			p.advance()
		case token.KwConst:
			// Recorded implicitly (no by_ref flag): CONST does not by itself
			// force by-reference.
			p.advance()
		}
		names := p.identList()
		p.eat(token.Colon)
		typeNode := p.TypeExpr()

		for _, nameTok := range names {
			decl := ast.New(ast.KindVarDecl, &nameTok)
			decl.Flags.ByRef = byRef
			copied := ast.Copy(typeNode)
			if copied.Kind == ast.KindArrayType {
				copied.VarType = ast.TypeArray
			}
			ast.SetRight(decl, copied)
			ast.AddChild(n, decl)
		}
		if p.at(token.Semicolon) {
			p.advance()
		} else {
			break
		}
	}
	p.eat(token.RParen)
	return n
}

func canonicalName(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
