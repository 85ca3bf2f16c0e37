package token

import (
	pc "github.com/prataprc/goparsec"
)

// Hexadecimal literal bodies ($-prefixed) are recognised with a
// regex-combinator idiom: a throwaway single-use AST plus a pc.Token
// regex parser, run over the remaining input starting at the current
// cursor. This keeps the numeric sub-grammar declarative exactly where
// parsing it does not need to interleave with any semantic action.
var hexLiteralAST = pc.NewAST("hex_literal", 8)

var pHexDigits = pc.Token(`[0-9A-Fa-f]+`, "HEXDIGITS")

// scanHexDigits consumes a run of hex digits starting at remaining[0] and
// returns the matched text, or ("", false) if remaining does not start with
// at least one hex digit.
func scanHexDigits(remaining []byte) (string, bool) {
	root, _ := hexLiteralAST.Parsewith(pHexDigits, pc.NewScanner(remaining))
	if root == nil {
		return "", false
	}
	value := root.GetValue()
	if value == "" {
		return "", false
	}
	return value, true
}
