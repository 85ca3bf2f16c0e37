package ast

// CaseBranchLabels returns the label expressions of a CASE_BRANCH node.
//
// A CASE_BRANCH can carry either a single label ("1: ...") or a
// comma-separated set ("1, 2, 5: ..."). Rather
// than smuggling a variable-arity list through Left with a sentinel marker
// kind, a CASE_BRANCH stores its labels directly as Children (in source
// order) and keeps Left for the branch body — so a single label is simply a
// one-element Children slice. This helper is the single place that decision
// is encoded; callers never need to special-case branch arity themselves.
func CaseBranchLabels(n *Node) []*Node {
	if n == nil || n.Kind != KindCaseBranch {
		return nil
	}
	return n.Children
}

// CaseBranchBody returns a CASE_BRANCH node's statement body.
func CaseBranchBody(n *Node) *Node {
	if n == nil || n.Kind != KindCaseBranch {
		return nil
	}
	return n.Left
}

// ResolveTypeRef follows a single TYPE_REFERENCE indirection to the
// registry-owned definition it shares (invariant 1a: a TYPE_REFERENCE's
// Right is a non-owning edge into the type registry). Callers that need to
// inspect the definition itself — e.g. a procedure-pointer's parameter
// list — see straight through a named type alias instead of having to
// special-case TYPE_REFERENCE separately from an inline type expression.
// Non-TYPE_REFERENCE nodes are returned unchanged.
func ResolveTypeRef(n *Node) *Node {
	if n != nil && n.Kind == KindTypeReference && n.Right != nil {
		return n.Right
	}
	return n
}

// VarTypeForDecl returns the VarType a variable, parameter, or field should
// carry when declared with type expression def. Ordinarily that's def's own
// VarType (TypeExpr already computed it correctly for every other type
// kind), except a PROC_PTR_TYPE: its own VarType instead echoes its return
// type (Void for a procedure), mirroring a routine declaration's
// convention — so checkProcPointerCompatibility can compare two routines'
// return types the same way regardless of which one is a bare routine
// reference. A *variable* of procedure-pointer type is itself a pointer,
// not its pointee's echoed return type, so storage sites must go through
// this helper rather than reading def.VarType directly.
func VarTypeForDecl(def *Node) VarType {
	if def == nil {
		return TypeVoid
	}
	if ResolveTypeRef(def).Kind == KindProcPtrType {
		return TypePointer
	}
	return def.VarType
}

// VerifyLinks walks root and reports whether every owned child's Parent
// back-edge points at its actual owner, and root itself has Parent ==
// expectedParent (pass nil for a true root). Used by tests as a structural
// sanity check after parsing, copying, or mutation.
func VerifyLinks(root *Node, expectedParent *Node) bool {
	if root == nil {
		return true
	}
	if root.Parent != expectedParent {
		return false
	}
	if !verifyEdge(root, root.Left) {
		return false
	}
	if !verifyEdge(root, root.Extra) {
		return false
	}
	if root.Kind != KindTypeReference && !verifyEdge(root, root.Right) {
		return false
	}
	for _, c := range root.Children {
		if !verifyEdge(root, c) {
			return false
		}
	}
	return true
}

func verifyEdge(parent, child *Node) bool {
	if child == nil {
		return true
	}
	return VerifyLinks(child, parent)
}
