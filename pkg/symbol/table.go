package symbol

import (
	"fmt"
	"strings"

	"github.com/pscal-toolchain/core/pkg/ast"
)

// HashTableSize is the bucket count for every Table: a fixed prime bucket
// count, matching the sizing convention of a process-wide hash table
// that is never resized.
const HashTableSize = 211

// Table is a hash table of HashTableSize buckets of singly-linked Symbols,
// keyed by lowercase name. It is intentionally not a Go `map`: the
// bucket-chain shape and its index-ordered iteration are part of the
// dump/alias-nullification contract under test, not an implementation
// detail a builtin map could hide.
type Table struct {
	buckets [HashTableSize]*Symbol
	count   int
}

// NewTable returns an empty Table.
func NewTable() *Table { return &Table{} }

// hashName is a polynomial rolling hash: sum ASCII values (lower-cased)
// multiplied by 31 per character, modulo HashTableSize.
func hashName(name string) int {
	var hash uint64
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		hash = hash*31 + uint64(c)
	}
	return int(hash % HashTableSize)
}

func canonical(name string) string { return strings.ToLower(name) }

// Insert links sym at the head of its bucket, keyed by its (already
// lowercase) Name. Callers must lowercase Name themselves; Insert does not
// check for an existing duplicate; callers should use Lookup first if
// that matters to them.
func (t *Table) Insert(sym *Symbol) {
	idx := hashName(sym.Name)
	sym.next = t.buckets[idx]
	t.buckets[idx] = sym
	t.count++
}

// Lookup returns the symbol named name (case-insensitive), or nil.
func (t *Table) Lookup(name string) *Symbol {
	key := canonical(name)
	for s := t.buckets[hashName(key)]; s != nil; s = s.next {
		if s.Name == key {
			return s
		}
	}
	return nil
}

// Count returns the number of symbols currently installed.
func (t *Table) Count() int { return t.count }

// Update resolves name in t and overwrites its Value in place, applying the
// §7.1 coercion matrix: assignment to a constant or a file-typed symbol is
// rejected outright, an ordinal (byte/word/enum) symbol's incoming value
// must fall within its legal range, and any other value kind must be
// assignable to the symbol's declared VarType. The incoming value itself is
// adopted by reference on success; callers must not mutate or reuse it
// afterwards.
func (t *Table) Update(name string, value *Value) error {
	sym := t.Lookup(name)
	if sym == nil {
		return &UpdateError{Kind: SymbolNotFound, Name: name}
	}
	if sym.Flags.IsConst {
		return &UpdateError{Kind: AssignToConstant, Name: name}
	}
	if sym.VarType == ast.TypeFile {
		return &UpdateError{Kind: FileAssignmentUnsupported, Name: name}
	}
	if low, high, ok := ordinalRange(sym.VarType, sym.TypeDef); ok {
		var ordinal int64
		switch value.Kind {
		case ValueInt:
			ordinal = value.IntVal
		case ValueByte:
			ordinal = int64(value.ByteVal)
		case ValueWord:
			ordinal = int64(value.WordVal)
		case ValueEnum:
			ordinal = int64(value.EnumOrdinal)
		}
		if ordinal < low || ordinal > high {
			return &UpdateError{Kind: OrdinalOutOfRange, Name: name, Detail: fmt.Sprintf("%d not in %d..%d", ordinal, low, high)}
		}
	}
	if !assignable(sym.VarType, value.Kind) {
		return &UpdateError{Kind: TypeMismatchOnAssign, Name: name, Detail: fmt.Sprintf("expected %s, got value kind %d", sym.VarType, value.Kind)}
	}
	sym.Value = value
	return nil
}

// Each calls fn once per symbol, visiting buckets in index order and each
// bucket's chain head-to-tail (the order the textual dump uses).
func (t *Table) Each(fn func(*Symbol)) {
	for _, head := range t.buckets {
		for s := head; s != nil; s = s.next {
			fn(s)
		}
	}
}

// NullifyPointerAliases walks every bucket; for each Pointer-typed symbol
// whose value's address equals disposedAddr, sets that pointer to nil
// (used by Dispose() to break dangling aliases).
func (t *Table) NullifyPointerAliases(disposedAddr uintptr) {
	t.Each(func(s *Symbol) {
		if s.Value != nil && s.Value.Kind == ValuePointer && s.Value.PtrAddr == disposedAddr {
			s.Value.PtrAddr = 0
			s.Value.PtrBaseType = nil
		}
	})
}

// Dump renders the table as a textual listing of non-empty buckets in index
// order, each followed by its chain's symbol names in insertion order
// (diagnostics only).
func (t *Table) Dump() string {
	var b strings.Builder
	for i, head := range t.buckets {
		if head == nil {
			continue
		}
		fmt.Fprintf(&b, "bucket %d:", i)
		for s := head; s != nil; s = s.next {
			fmt.Fprintf(&b, " %s(%s)", s.Name, s.Kind)
		}
		b.WriteString("\n")
	}
	return b.String()
}
