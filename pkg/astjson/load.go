package astjson

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/token"
)

var kindByName map[string]ast.Kind

func init() {
	kindByName = map[string]ast.Kind{}
	for k := ast.KindInvalid + 1; k.String() != "UNKNOWN_KIND"; k++ {
		kindByName[k.String()] = k
	}
}

var tokenKindByName map[string]token.Kind

func init() {
	tokenKindByName = map[string]token.Kind{}
	for k := token.EOF; k.String() != "UNKNOWN"; k++ {
		tokenKindByName[k.String()] = k
	}
}

// Load parses data (the format Dump writes) back into an ast.Node tree,
// tolerating unknown fields by simply never looking at them — gjson reads
// named paths out of the raw bytes rather than unmarshalling into a rigid
// struct, so extra keys cost nothing.
func Load(data []byte) (*ast.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("astjson: invalid JSON")
	}
	return loadValue(gjson.ParseBytes(data))
}

func loadValue(v gjson.Result) (*ast.Node, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsObject() {
		return nil, fmt.Errorf("astjson: expected object, got %s", v.Type)
	}

	kindName := v.Get("node_type").String()
	kind, ok := kindByName[kindName]
	if !ok {
		return nil, fmt.Errorf("astjson: unknown node_type %q", kindName)
	}

	n := &ast.Node{Kind: kind, VarType: ast.TypeVoid}

	if tok := v.Get("token"); tok.Exists() {
		typeName := tok.Get("type").String()
		tokKind, ok := tokenKindByName[typeName]
		if !ok {
			tokKind = token.Ident
		}
		n.Token = &token.Token{Kind: tokKind, Lexeme: tok.Get("value").String()}
	}

	if vt := v.Get("var_type_annotated"); vt.Exists() {
		n.VarType = varTypeByName(vt.String())
	}
	if byRef := v.Get("by_ref"); byRef.Exists() {
		n.Flags.ByRef = byRef.Bool()
	}
	if ival := v.Get("i_val"); ival.Exists() {
		n.IVal = ival.Int()
	}
	if isInline := v.Get("is_inline"); isInline.Exists() {
		n.Flags.IsInline = isInline.Bool()
	}
	if isGlobal := v.Get("is_global_scope"); isGlobal.Exists() {
		n.Flags.IsGlobalScope = isGlobal.Bool()
	}

	// declarations/body install at positional child indices 0 and 1,
	// before any plain "children" entries are appended.
	if decls := v.Get("declarations"); decls.Exists() {
		child, err := loadValue(decls)
		if err != nil {
			return nil, err
		}
		ast.SetChildIndex(n, 0, child)
	}
	if body := v.Get("body"); body.Exists() {
		child, err := loadValue(body)
		if err != nil {
			return nil, err
		}
		ast.SetChildIndex(n, 1, child)
	}

	if nameNode := v.Get("program_name_node"); nameNode.Exists() {
		child, err := loadValue(nameNode)
		if err != nil {
			return nil, err
		}
		ast.SetLeft(n, child)
	}
	if mainBlock := v.Get("main_block"); mainBlock.Exists() {
		child, err := loadValue(mainBlock)
		if err != nil {
			return nil, err
		}
		ast.SetRight(n, child)
	}
	if usesClauses := v.Get("uses_clauses"); usesClauses.Exists() {
		if err := appendChildren(n, usesClauses); err != nil {
			return nil, err
		}
	}

	if left := v.Get("left"); left.Exists() {
		child, err := loadValue(left)
		if err != nil {
			return nil, err
		}
		ast.SetLeft(n, child)
	}
	if right := v.Get("right"); right.Exists() {
		child, err := loadValue(right)
		if err != nil {
			return nil, err
		}
		if n.Kind == ast.KindTypeReference {
			ast.SetRightShared(n, child)
		} else {
			ast.SetRight(n, child)
		}
	}
	if extra := v.Get("extra"); extra.Exists() {
		child, err := loadValue(extra)
		if err != nil {
			return nil, err
		}
		ast.SetExtra(n, child)
	}
	if children := v.Get("children"); children.Exists() {
		if err := appendChildren(n, children); err != nil {
			return nil, err
		}
	}

	if unitList := v.Get("unit_list"); unitList.Exists() {
		for _, item := range unitList.Array() {
			n.UnitList = append(n.UnitList, item.String())
		}
	}

	return n, nil
}

func appendChildren(n *ast.Node, arr gjson.Result) error {
	for _, item := range arr.Array() {
		child, err := loadValue(item)
		if err != nil {
			return err
		}
		ast.AddChild(n, child)
	}
	return nil
}

var varTypeNames map[string]ast.VarType

func init() {
	varTypeNames = map[string]ast.VarType{}
	for t := ast.TypeVoid; t <= ast.TypeInterface; t++ {
		varTypeNames[t.String()] = t
	}
}

func varTypeByName(name string) ast.VarType {
	if t, ok := varTypeNames[name]; ok {
		return t
	}
	return ast.TypeUnknown
}
