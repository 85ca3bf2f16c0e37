package ast

import "github.com/pscal-toolchain/core/pkg/token"

// Flags bundles the small set of boolean annotations a Node may carry
// (spec Data Model: by_ref, is_global_scope, is_inline, is_forward_decl,
// is_virtual, is_exported).
type Flags struct {
	ByRef         bool
	IsGlobalScope bool
	IsInline      bool
	IsForwardDecl bool
	IsVirtual     bool
	IsExported    bool
}

// Node is the single tagged-variant AST node shape shared by every kind in
// the grammar (spec Data Model §3). Left/Right/Extra and every element of
// Children are exclusively owned unless explicitly noted (see Free/Copy);
// Parent and TypeDef are weak back-edges that Free never follows.
type Node struct {
	Kind    Kind
	Token   *token.Token
	VarType VarType

	Left, Right, Extra *Node
	Children           []*Node
	Parent             *Node // weak
	TypeDef            *Node // weak, may point into the type registry

	Flags Flags
	IVal  int64

	UnitList []string  // uses-clause unit names, in source order
	Symbols  SymbolLink // attached to unit/function scopes; opaque to ast

	freed bool
}

// SymbolLink is an opaque handle to the symbol table a Block/Unit/Procedure
// node owns scope for; pkg/ast never dereferences it, only carries it
// (avoids an import cycle with pkg/symbol, which itself needs to reference
// Nodes for declaration ASTs).
type SymbolLink interface{}

// New allocates a Node of the given kind, deep-copying tok (if non-nil) so
// the returned Node does not alias the parser's token buffer. VarType starts
// at Void per spec; flags and IVal are zeroed.
func New(kind Kind, tok *token.Token) *Node {
	n := &Node{Kind: kind, VarType: TypeVoid}
	if tok != nil {
		copied := *tok
		n.Token = &copied
	}
	return n
}

// SetLeft assigns n.Left, wiring child.Parent back to n when child is non-nil.
func SetLeft(n, child *Node) {
	n.Left = child
	if child != nil {
		child.Parent = n
	}
}

// SetRight assigns n.Right. For an AST_TYPE_REFERENCE node, callers must use
// SetRightShared instead — Right there is a shared, non-owning edge into the
// type registry (spec invariant 1a) and must not set Parent.
func SetRight(n, child *Node) {
	n.Right = child
	if child != nil {
		child.Parent = n
	}
}

// SetRightShared assigns a TYPE_REFERENCE node's Right to point at a
// registry-owned type AST without claiming ownership (no Parent back-edge
// is installed, matching spec invariant 1a).
func SetRightShared(n, typeAST *Node) {
	n.Right = typeAST
}

// SetExtra assigns n.Extra, wiring the back-edge like SetLeft/SetRight.
func SetExtra(n, child *Node) {
	n.Extra = child
	if child != nil {
		child.Parent = n
	}
}

const childInitialCapacity = 4

// AddChild appends child to n.Children with geometric growth, wiring the
// parent back-edge when child is non-nil.
func AddChild(n, child *Node) {
	if n.Children == nil {
		n.Children = make([]*Node, 0, childInitialCapacity)
	}
	n.Children = append(n.Children, child)
	if child != nil {
		child.Parent = n
	}
}

// SetChildIndex installs child at position i, padding with nils as needed
// (used for block declarations/body positional slots 0 and 1).
func SetChildIndex(n *Node, i int, child *Node) {
	for len(n.Children) <= i {
		n.Children = append(n.Children, nil)
	}
	n.Children[i] = child
	if child != nil {
		child.Parent = n
	}
}

// IsFreed reports whether Free has already reclaimed this node.
func (n *Node) IsFreed() bool { return n != nil && n.freed }
