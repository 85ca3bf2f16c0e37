// Package token implements the lexical front end shared by every parser
// instance (spec component C1): a lazy token stream over source text that
// tracks line/column, folds character-code escapes, and skips nested
// comments, shebangs, and a leading UTF-8 BOM.
package token

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	IntLiteral
	RealLiteral
	HexLiteral
	StringLiteral
	CharLiteral // a single #nn escape, before string-concatenation folding

	// Keywords
	KwAnd
	KwArray
	KwBegin
	KwBreak
	KwCase
	KwConst
	KwDiv
	KwDo
	KwDowndo // alias kept distinct from KwDownto for clarity in switch tables
	KwDownto
	KwElse
	KwEnd
	KwEnum
	KwFalse
	KwFor
	KwForward
	KwFunction
	KwGoto
	KwIf
	KwImplementation
	KwIn
	KwInitialization
	KwInline
	KwInterface
	KwIs
	KwAs
	KwLabel
	KwMod
	KwNil
	KwNot
	KwOf
	KwOr
	KwOut
	KwProcedure
	KwProgram
	KwRead
	KwReadln
	KwRecord
	KwRepeat
	KwSet
	KwShl
	KwShr
	KwSpawn
	KwJoin
	KwThen
	KwTo
	KwTrue
	KwType
	KwUnit
	KwUntil
	KwUses
	KwVar
	KwVirtual
	KwWhile
	KwWrite
	KwWriteln
	KwXor

	// Punctuation / operators
	Plus
	Minus
	Star
	Slash
	Assign    // :=
	PlusEq    // +=
	MinusEq   // -=
	Eq        // =
	NotEq     // <>
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;
	Colon     // :
	Dot       // .
	DotDot    // ..
	Caret     // ^
	At        // @
	Question  // ?
	Hash      // #
	Dollar    // $
)

var kindNames = map[Kind]string{
	EOF: "EOF", Ident: "IDENT", IntLiteral: "INT_LITERAL", RealLiteral: "REAL_LITERAL",
	HexLiteral: "HEX_LITERAL", StringLiteral: "STRING_LITERAL", CharLiteral: "CHAR_LITERAL",
	KwAnd: "KW_AND", KwArray: "KW_ARRAY", KwBegin: "KW_BEGIN", KwBreak: "KW_BREAK",
	KwCase: "KW_CASE", KwConst: "KW_CONST", KwDiv: "KW_DIV", KwDo: "KW_DO",
	KwDowndo: "KW_DOWNDO", KwDownto: "KW_DOWNTO", KwElse: "KW_ELSE", KwEnd: "KW_END",
	KwEnum: "KW_ENUM", KwFalse: "KW_FALSE", KwFor: "KW_FOR", KwForward: "KW_FORWARD",
	KwFunction: "KW_FUNCTION", KwGoto: "KW_GOTO", KwIf: "KW_IF",
	KwImplementation: "KW_IMPLEMENTATION", KwIn: "KW_IN", KwInitialization: "KW_INITIALIZATION",
	KwInline: "KW_INLINE", KwInterface: "KW_INTERFACE", KwIs: "KW_IS", KwAs: "KW_AS",
	KwLabel: "KW_LABEL", KwMod: "KW_MOD", KwNil: "KW_NIL", KwNot: "KW_NOT", KwOf: "KW_OF",
	KwOr: "KW_OR", KwOut: "KW_OUT", KwProcedure: "KW_PROCEDURE", KwProgram: "KW_PROGRAM",
	KwRead: "KW_READ", KwReadln: "KW_READLN", KwRecord: "KW_RECORD", KwRepeat: "KW_REPEAT",
	KwSet: "KW_SET", KwShl: "KW_SHL", KwShr: "KW_SHR", KwSpawn: "KW_SPAWN", KwJoin: "KW_JOIN",
	KwThen: "KW_THEN", KwTo: "KW_TO", KwTrue: "KW_TRUE", KwType: "KW_TYPE", KwUnit: "KW_UNIT",
	KwUntil: "KW_UNTIL", KwUses: "KW_USES", KwVar: "KW_VAR", KwVirtual: "KW_VIRTUAL",
	KwWhile: "KW_WHILE", KwWrite: "KW_WRITE", KwWriteln: "KW_WRITELN", KwXor: "KW_XOR",
	Plus: "PLUS", Minus: "MINUS", Star: "STAR", Slash: "SLASH", Assign: "ASSIGN",
	PlusEq: "PLUS_EQ", MinusEq: "MINUS_EQ", Eq: "EQ", NotEq: "NOT_EQ", Lt: "LT",
	LtEq: "LT_EQ", Gt: "GT", GtEq: "GT_EQ", LParen: "LPAREN", RParen: "RPAREN",
	LBracket: "LBRACKET", RBracket: "RBRACKET", Comma: "COMMA", Semicolon: "SEMICOLON",
	Colon: "COLON", Dot: "DOT", DotDot: "DOT_DOT", Caret: "CARET", At: "AT",
	Question: "QUESTION", Hash: "HASH", Dollar: "DOLLAR",
}

// String renders k's canonical name, used by pkg/astjson's token.type field
// and diagnostic formatting.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexeme produced by the Lexer, owned by the parser until
// it is either eaten (freed) or copied into an AST node.
type Token struct {
	Kind       Kind
	Lexeme     string
	Line       int
	Column     int
	IsCharCode bool // distinguishes a lexed #nn escape from an ordinary string
}

var keywords = map[string]Kind{
	"and": KwAnd, "array": KwArray, "begin": KwBegin, "break": KwBreak,
	"case": KwCase, "const": KwConst, "div": KwDiv, "do": KwDo,
	"downto": KwDownto, "else": KwElse, "end": KwEnd, "enum": KwEnum,
	"false": KwFalse, "for": KwFor, "forward": KwForward, "function": KwFunction,
	"goto": KwGoto, "if": KwIf, "implementation": KwImplementation, "in": KwIn,
	"initialization": KwInitialization, "inline": KwInline, "interface": KwInterface,
	"is": KwIs, "as": KwAs, "label": KwLabel, "mod": KwMod, "nil": KwNil, "not": KwNot,
	"of": KwOf, "or": KwOr, "out": KwOut, "procedure": KwProcedure, "program": KwProgram,
	"read": KwRead, "readln": KwReadln, "record": KwRecord, "repeat": KwRepeat,
	"set": KwSet, "shl": KwShl, "shr": KwShr, "spawn": KwSpawn, "join": KwJoin,
	"then": KwThen, "to": KwTo, "true": KwTrue, "type": KwType, "unit": KwUnit,
	"until": KwUntil, "uses": KwUses, "var": KwVar, "virtual": KwVirtual,
	"while": KwWhile, "write": KwWrite, "writeln": KwWriteln, "xor": KwXor,
}

// LookupKeyword returns the keyword Kind for a case-folded identifier, or
// (Ident, false) if name is not a reserved word.
func LookupKeyword(lowerName string) (Kind, bool) {
	k, ok := keywords[lowerName]
	return k, ok
}
