// Package constfold evaluates a restricted set of AST expressions to a
// Value at parse time: literals, identifier references against the
// compile-time constant table, unary +/-/NOT, the arithmetic/logical/
// shift/bitwise/relational operators, and the builtins
// chr/ord/length/succ/pred. Set operators, IN, sizeof, low and high do not
// fold (they yield a Void value).
package constfold

import (
	"strings"

	"github.com/pscal-toolchain/core/pkg/symbol"
)

// Table is the process-wide compile-time constant table: identifier (always
// looked up lowercased) to its folded Value snapshot, consulted by the
// folder itself and by parse-time array-bound resolution.
type Table struct {
	entries map[string]*symbol.Value
}

// NewTable returns an empty constant table.
func NewTable() *Table {
	return &Table{entries: map[string]*symbol.Value{}}
}

// Set records name's folded value, overwriting any prior entry.
func (t *Table) Set(name string, v *symbol.Value) {
	t.entries[strings.ToLower(name)] = v
}

// Get returns the folded value for name, or (nil, false).
func (t *Table) Get(name string) (*symbol.Value, bool) {
	v, ok := t.entries[strings.ToLower(name)]
	return v, ok
}
