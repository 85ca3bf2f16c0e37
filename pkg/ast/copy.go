package ast

// Copy performs a deep copy of n, memoizing by pointer identity so that
// internal sharing (a TypeDef or weak back-edge pointing at a node also
// reachable by ordinary ownership edges) is preserved in the copy and
// cycles terminate.
func Copy(n *Node) *Node {
	return copyWalk(n, make(map[*Node]*Node, 64))
}

func copyWalk(n *Node, memo map[*Node]*Node) *Node {
	if n == nil {
		return nil
	}
	if c, ok := memo[n]; ok {
		return c
	}

	c := &Node{Kind: n.Kind, VarType: n.VarType, Flags: n.Flags, IVal: n.IVal}
	memo[n] = c

	if n.Token != nil {
		tok := *n.Token
		c.Token = &tok
	}
	if len(n.UnitList) > 0 {
		c.UnitList = append([]string{}, n.UnitList...)
	}
	c.Symbols = n.Symbols // shared, not owned

	SetLeft(c, copyWalk(n.Left, memo))
	SetExtra(c, copyWalk(n.Extra, memo))

	if n.Kind == KindTypeReference {
		// Right is a shared registry edge on TYPE_REFERENCE nodes: copy by
		// reference, never duplicate the registry's canonical subtree.
		SetRightShared(c, n.Right)
	} else {
		SetRight(c, copyWalk(n.Right, memo))
	}

	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = copyWalk(child, memo)
			if c.Children[i] != nil {
				c.Children[i].Parent = c
			}
		}
	}

	// TypeDef is weak. If the original aliased its own Right, the copy's
	// TypeDef aliases the copy's Right too; otherwise resolve through the
	// memo (so a TypeDef pointing elsewhere in the same subtree stays
	// shared) or carry the original pointer by reference (registry-owned).
	switch {
	case n.TypeDef == nil:
		c.TypeDef = nil
	case n.TypeDef == n.Right:
		c.TypeDef = c.Right
	default:
		if mapped, ok := memo[n.TypeDef]; ok {
			c.TypeDef = mapped
		} else {
			c.TypeDef = n.TypeDef
		}
	}

	return c
}

// CountDistinctNodes counts the distinct reachable nodes of root by pointer
// identity (testable property 4 — used to compare an original subtree
// against Copy(original)).
func CountDistinctNodes(root *Node) int {
	seen := map[*Node]bool{}
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		walk(n.Left)
		walk(n.Right)
		walk(n.Extra)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return len(seen)
}
