package ast

import (
	"fmt"
	"strings"
)

// Dump renders root as an indented text tree for debugging and golden-file
// tests. Each line is "<indent><Kind> <detail>"
// where detail carries the token lexeme (if any) and VarType when it is not
// Void; Left/Extra/Right are walked before Children, the same order Copy
// uses (Free walks Left/Right/Extra).
func Dump(root *Node) string {
	var b strings.Builder
	dumpWalk(&b, root, 0)
	return b.String()
}

func dumpWalk(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("<nil>\n")
		return
	}

	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	if n.Token != nil && n.Token.Lexeme != "" {
		fmt.Fprintf(b, " %q", n.Token.Lexeme)
	}
	if n.VarType != TypeVoid {
		fmt.Fprintf(b, " :%s", n.VarType.String())
	}
	if n.Flags.ByRef {
		b.WriteString(" byref")
	}
	if n.Flags.IsForwardDecl {
		b.WriteString(" forward")
	}
	b.WriteString("\n")

	if n.Left != nil {
		dumpWalk(b, n.Left, depth+1)
	}
	if n.Extra != nil {
		dumpWalk(b, n.Extra, depth+1)
	}
	if n.Right != nil {
		if n.Kind == KindTypeReference {
			b.WriteString(strings.Repeat("  ", depth+1))
			b.WriteString("-> ")
			b.WriteString(n.Right.Kind.String())
			b.WriteString(" (shared)\n")
		} else {
			dumpWalk(b, n.Right, depth+1)
		}
	}
	for _, c := range n.Children {
		dumpWalk(b, c, depth+1)
	}
}
