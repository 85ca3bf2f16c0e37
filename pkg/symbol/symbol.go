// Package symbol implements the compile-time symbol system: bucket-
// chained hash tables for global, constant-global, local, and procedure
// symbols, scope push/pop, snapshot save/restore, alias nullification,
// and an explicitly threaded Context in place of thread-local globals.
package symbol

import "github.com/pscal-toolchain/core/pkg/ast"

// Kind discriminates what a Symbol names.
type Kind int

const (
	KindVariable Kind = iota
	KindConstant
	KindProcedure
	KindFunction
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "VARIABLE"
	case KindConstant:
		return "CONSTANT"
	case KindProcedure:
		return "PROCEDURE"
	case KindFunction:
		return "FUNCTION"
	case KindAlias:
		return "ALIAS"
	default:
		return "UNKNOWN"
	}
}

// Flags bundles a Symbol's boolean annotations.
type Flags struct {
	IsConst         bool
	IsAlias         bool
	IsLocalVar      bool
	IsDefined       bool
	ClosureCaptures bool
	ClosureEscapes  bool
}

// Symbol is one declared name: a variable, constant, procedure, function, or
// alias. Variables own Value; aliases borrow it from the symbol they alias
// (Flags.IsAlias true, Value shared by pointer, never cloned).
type Symbol struct {
	Name    string // always lowercase; canonical-case name lives on the declaring ast.Node's Token
	Kind    Kind
	VarType ast.VarType
	Value   *Value
	TypeDef *ast.Node // weak, may point into the type registry

	Flags Flags

	EnclosingScope *ast.Node
	Arity          int
	LocalsCount    int
	BytecodeAddress int64
	IsInline       bool

	next *Symbol // bucket chain, intrusive singly-linked list
}
