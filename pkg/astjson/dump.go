// Package astjson implements the bit-stable AST<->JSON round trip: Dump
// hand-writes the exact key order and control-character escaping the wire
// format requires (no encoding/json struct tags could pin down the
// per-kind optional-field shape and key ordering), and Load reads that
// format back using gjson (grafana-k6 wires gjson for exactly this kind
// of untyped-but-schema-shaped document walk).
package astjson

import (
	"strconv"
	"strings"

	"github.com/pscal-toolchain/core/pkg/ast"
)

// Dump renders root as: node_type, optional token, var_type_annotated,
// by_ref (parameter var-decls only), i_val (enum-values/numbers), is_inline
// (routines), is_global_scope (blocks), declarations/body (blocks),
// program_name_node/main_block/uses_clauses (program), unit_list
// (uses-clause), then left/right/extra/children.
func Dump(root *ast.Node) string {
	var b strings.Builder
	writeNode(&b, root)
	return b.String()
}

func writeNode(b *strings.Builder, n *ast.Node) {
	if n == nil {
		b.WriteString("null")
		return
	}

	b.WriteByte('{')
	writeKey(b, "node_type", true)
	writeString(b, n.Kind.String())

	if n.Token != nil {
		writeKey(b, "token", false)
		b.WriteByte('{')
		writeKey(b, "type", true)
		writeString(b, n.Token.Kind.String())
		writeKey(b, "value", false)
		writeString(b, n.Token.Lexeme)
		b.WriteByte('}')
	}

	writeKey(b, "var_type_annotated", false)
	writeString(b, n.VarType.String())

	if n.Kind == ast.KindVarDecl && n.Flags.ByRef {
		writeKey(b, "by_ref", false)
		b.WriteString("true")
	}

	if n.Kind == ast.KindEnumValue || n.Kind == ast.KindNumber {
		writeKey(b, "i_val", false)
		b.WriteString(strconv.FormatInt(n.IVal, 10))
	}

	if n.Kind == ast.KindProcedureDecl || n.Kind == ast.KindFunctionDecl {
		writeKey(b, "is_inline", false)
		writeBool(b, n.Flags.IsInline)
	}

	if n.Kind == ast.KindBlock {
		writeKey(b, "is_global_scope", false)
		writeBool(b, n.Flags.IsGlobalScope)
		writeKey(b, "declarations", false)
		writeNode(b, childAt(n, 0))
		writeKey(b, "body", false)
		writeNode(b, childAt(n, 1))
	}

	if n.Kind == ast.KindProgram {
		writeKey(b, "program_name_node", false)
		writeNode(b, n.Left)
		writeKey(b, "main_block", false)
		writeNode(b, n.Right)
		writeKey(b, "uses_clauses", false)
		writeNodeArray(b, n.Children)
	} else {
		if n.Kind != ast.KindBlock {
			writeKey(b, "left", false)
			writeNode(b, n.Left)
			if n.Kind != ast.KindTypeReference {
				writeKey(b, "right", false)
				writeNode(b, n.Right)
			}
			writeKey(b, "extra", false)
			writeNode(b, n.Extra)
		}
		if n.Kind != ast.KindBlock {
			writeKey(b, "children", false)
			writeNodeArray(b, n.Children)
		}
	}

	if n.Kind == ast.KindUsesClause {
		writeKey(b, "unit_list", false)
		writeStringArray(b, n.UnitList)
	}

	b.WriteByte('}')
}

func childAt(n *ast.Node, i int) *ast.Node {
	if i < len(n.Children) {
		return n.Children[i]
	}
	return nil
}

func writeNodeArray(b *strings.Builder, nodes []*ast.Node) {
	b.WriteByte('[')
	for i, c := range nodes {
		if i > 0 {
			b.WriteByte(',')
		}
		writeNode(b, c)
	}
	b.WriteByte(']')
}

func writeStringArray(b *strings.Builder, values []string) {
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		writeString(b, v)
	}
	b.WriteByte(']')
}

func writeKey(b *strings.Builder, key string, first bool) {
	if !first {
		b.WriteByte(',')
	}
	writeString(b, key)
	b.WriteByte(':')
}

func writeBool(b *strings.Builder, v bool) {
	if v {
		b.WriteString("true")
	} else {
		b.WriteString("false")
	}
}

// writeString writes s as a JSON string literal: \n \r \t \b \f use their
// short escapes and every other control character below 0x20 is \uXXXX.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				b.WriteString("\\u")
				const hex = "0123456789abcdef"
				b.WriteByte(hex[(r>>12)&0xf])
				b.WriteByte(hex[(r>>8)&0xf])
				b.WriteByte(hex[(r>>4)&0xf])
				b.WriteByte(hex[r&0xf])
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
