package parser

import (
	"fmt"
	"strconv"
	"strings"

	pc "github.com/prataprc/goparsec"
)

// Format specifiers on write-arguments (`expr:width` or `expr:width:precision`)
// are reduced to plain integers once the parser has already folded width and
// precision to literals. The ':'-joined raw text is re-parsed with a small
// goparsec grammar, composing a package-level AST instance with
// `ast.And`/`pc.Maybe` combinators and `pc.Int()` literals.
var formatSpecAST = pc.NewAST("format_spec", 0)

var pFormatSpec = formatSpecAST.And("format_spec", nil,
	pc.Int(),
	pc.Maybe(nil, formatSpecAST.And("precision", nil, pc.Atom(":", "COLON"), pc.Int())),
)

// parseFormatSpec parses a ':'-joined "width[:precision]" string (already
// assembled from folded integer literals) and renders the canonical
// "width,precision" lexeme AST_FORMATTED_EXPR carries. Precision
// defaults to 0 when absent.
func parseFormatSpec(text string) (lexeme string, ok bool) {
	root, _ := formatSpecAST.Parsewith(pFormatSpec, pc.NewScanner([]byte(text)))
	if root == nil {
		return "", false
	}
	children := root.GetChildren()
	if len(children) == 0 {
		return "", false
	}
	width, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(children[0].GetValue())))
	if err != nil {
		return "", false
	}
	precision := 0
	if len(children) > 1 {
		precisionGroup := children[1].GetChildren()
		if len(precisionGroup) > 1 {
			if v, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(precisionGroup[1].GetValue()))); err == nil {
				precision = v
			}
		}
	}
	return fmt.Sprintf("%d,%d", width, precision), true
}
