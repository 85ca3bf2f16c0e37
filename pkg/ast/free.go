package ast

// Registry is the free-barrier contract pkg/types.Registry satisfies: Free
// never reclaims a node the registry owns. The registry itself never
// hands out a Node through a path Free would reach without going through
// this check first, but the check stays in place as a second line of
// defense.
type Registry interface {
	Contains(n *Node) bool
}

// boundedFreedCapacity caps freeWalk's seen set of already-freed pointers
// during a single Free walk; beyond that the guard degrades to "freed flag
// only," which is still sufficient because every node's own freed bit is
// checked first. The weak edges (TypeDef, Parent) are never walked.
const boundedFreedCapacity = 1 << 16

// Free reclaims root and everything it exclusively owns:
//  1. nil/already-freed nodes are a no-op.
//  2. A node owned by reg (if reg is non-nil) is never freed.
//  3. The node is marked freed before recursing, breaking cycles through
//     weak edges.
//  4. Left is skipped for TYPE_DECL (owned elsewhere); Right is skipped for
//     TYPE_REFERENCE (shared registry edge); Extra and Children always recurse.
//  5. UnitList is released (just a Go slice, GC'd); Symbols is left alone,
//     owned by the enclosing scope.
func Free(root *Node, reg Registry) {
	freeWalk(root, reg, make(map[*Node]bool, 64))
}

func freeWalk(n *Node, reg Registry, seen map[*Node]bool) {
	if n == nil || n.freed || seen[n] {
		return
	}
	if reg != nil && reg.Contains(n) {
		return
	}

	n.freed = true
	if len(seen) < boundedFreedCapacity {
		seen[n] = true
	}

	if n.Kind != KindTypeDecl {
		freeWalk(n.Left, reg, seen)
	}
	if n.Kind != KindTypeReference {
		freeWalk(n.Right, reg, seen)
	}
	freeWalk(n.Extra, reg, seen)
	for _, c := range n.Children {
		freeWalk(c, reg, seen)
	}

	n.UnitList = nil
	n.Token = nil
}
