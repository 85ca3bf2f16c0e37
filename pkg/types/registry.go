// Package types implements the compile-time type registry: an
// insertion-ordered, case-insensitive name-to-AST map that owns every type
// definition it stores.
package types

import (
	"fmt"
	"strings"

	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/internal/container"
)

// Entry is one registered type: its canonical (original-case) name and the
// AST subtree describing its shape.
type Entry struct {
	Name string
	Def  *ast.Node
}

// Registry owns the type ASTs of every type declared in a translation unit
// (and, after linking, the interface types a caller unit pulls in). It
// satisfies pkg/ast.Registry: a type_def edge or any other weak edge that
// points into the registry is never reclaimed by ast.Free.
type Registry struct {
	entries container.OrderedMap[string, Entry]
	owned   map[*ast.Node]bool
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		entries: container.NewOrderedMap[string, Entry](),
		owned:   map[*ast.Node]bool{},
	}
}

func key(name string) string { return strings.ToLower(name) }

// ReservePlaceholder registers name with a nil definition, so that a forward
// reference (an interface or record referring to itself, or to a type not
// yet parsed) can resolve to a stable registry slot before its body is
// known. A later Insert of the same name fills the slot in place, preserving
// insertion order — needed for forward-declared interface/class types.
func (r *Registry) ReservePlaceholder(name string) {
	k := key(name)
	if _, ok := r.entries.Get(k); ok {
		return
	}
	r.entries.Set(k, Entry{Name: name})
}

// Insert deep-copies def (via ast.Copy) and stores it under name, claiming
// ownership. Re-inserting an existing name (filling a placeholder, or a
// redeclaration the parser already diagnosed) replaces the definition in
// place rather than appending a duplicate entry.
func (r *Registry) Insert(name string, def *ast.Node) {
	owned := ast.Copy(def)
	r.owned[owned] = true
	r.entries.Set(key(name), Entry{Name: name, Def: owned})
}

// Lookup returns the AST registered under name (case-insensitively), or nil
// if name was never declared or only reserved.
func (r *Registry) Lookup(name string) *ast.Node {
	e, ok := r.entries.Get(key(name))
	if !ok {
		return nil
	}
	return e.Def
}

// FindEntry returns the full Entry (preserving the declaration's original
// casing) registered under name, or (Entry{}, false) if absent.
func (r *Registry) FindEntry(name string) (Entry, bool) {
	return r.entries.Get(key(name))
}

// Contains reports whether n is an AST node this registry owns, satisfying
// ast.Registry so that ast.Free never reclaims a registry-owned type
// subtree reached through a node's weak TypeDef or a TYPE_REFERENCE's
// shared Right edge.
func (r *Registry) Contains(n *ast.Node) bool {
	return n != nil && r.owned[n]
}

// Names returns every registered name in insertion order.
func (r *Registry) Names() []string {
	pairs := r.entries.Pairs()
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Value.Name
	}
	return out
}

// String renders the registry for diagnostics: one "name -> KIND" line per
// entry in insertion order, "name -> <unresolved>" for a still-pending
// placeholder.
func (r *Registry) String() string {
	var b strings.Builder
	for _, p := range r.entries.Pairs() {
		if p.Value.Def == nil {
			fmt.Fprintf(&b, "%s -> <unresolved>\n", p.Value.Name)
			continue
		}
		fmt.Fprintf(&b, "%s -> %s\n", p.Value.Name, p.Value.Def.Kind)
	}
	return b.String()
}
