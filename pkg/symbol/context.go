package symbol

import (
	"sync/atomic"

	"github.com/pscal-toolchain/core/pkg/types"
)

// ConsoleState is the text-mode console attribute state carried per
// Context, shadowed per logical thread of execution. AttrDirty is a
// hint for a console built-in (out of scope here); core code neither sets
// nor reads it.
type ConsoleState struct {
	ForegroundColor int
	BackgroundColor int
	AttrDirty       bool
}

// Context bundles everything that would otherwise live in thread-local
// storage: the four symbol tables, the type registry, the current
// function symbol, console state, and error counters. A Context is
// created per parser instance and threaded explicitly through parsing
// and annotation instead of relying on TLS.
type Context struct {
	Global      *Table
	ConstGlobal *Table
	Local       *Table
	Procedure   *Table

	Types *types.Registry

	CurrentFunction *Symbol
	Console         ConsoleState
	ErrorCount      int

	breakRequested atomic.Bool

	localStack     []*Table
	procedureStack []*Table
}

// NewContext returns a freshly initialised Context: four empty tables, an
// empty type registry, default console colours, zeroed error count.
func NewContext() *Context {
	return &Context{
		Global:      NewTable(),
		ConstGlobal: NewTable(),
		Local:       NewTable(),
		Procedure:   NewTable(),
		Types:       types.New(),
	}
}

// Lookup searches Local then Global.
func (c *Context) Lookup(name string) *Symbol {
	if s := c.Local.Lookup(name); s != nil {
		return s
	}
	return c.Global.Lookup(name)
}

// UpdateSymbol resolves name against Local then Global (the same order
// Lookup uses) and overwrites its Value via Table.Update, applying the
// §7.1 coercion matrix. A name found in neither table is SymbolNotFound.
func (c *Context) UpdateSymbol(name string, value *Value) error {
	if c.Local.Lookup(name) != nil {
		return c.Local.Update(name, value)
	}
	if c.Global.Lookup(name) != nil {
		return c.Global.Update(name, value)
	}
	return &UpdateError{Kind: SymbolNotFound, Name: name}
}

// PushProcedureTable pushes a new empty procedure table atop the current one.
func (c *Context) PushProcedureTable() {
	c.procedureStack = append(c.procedureStack, c.Procedure)
	c.Procedure = NewTable()
}

// PopProcedureTable releases the current procedure table (discard=true) or
// merges its symbols into the table beneath it (discard=false) before
// restoring the enclosing table.
func (c *Context) PopProcedureTable(discard bool) {
	if len(c.procedureStack) == 0 {
		return
	}
	prev := c.procedureStack[len(c.procedureStack)-1]
	c.procedureStack = c.procedureStack[:len(c.procedureStack)-1]
	if !discard {
		c.Procedure.Each(func(s *Symbol) { prev.Insert(s) })
	}
	c.Procedure = prev
}

// SaveLocalEnv pushes the current local table onto an internal stack and
// installs a fresh empty one, matching save_local_env's "install a fresh
// table, stash the old one" contract.
func (c *Context) SaveLocalEnv() {
	c.localStack = append(c.localStack, c.Local)
	c.Local = NewTable()
}

// RestoreLocalEnv discards the currently installed local table (left to the
// garbage collector; see Table's doc comment) and reinstalls the most
// recently saved one.
func (c *Context) RestoreLocalEnv() {
	if len(c.localStack) == 0 {
		c.Local = NewTable()
		return
	}
	prev := c.localStack[len(c.localStack)-1]
	c.localStack = c.localStack[:len(c.localStack)-1]
	c.Local = prev
}

// PopLocalEnv discards the current local table entirely, replacing it with
// a fresh empty one (used for the outermost local scope's final cleanup).
func (c *Context) PopLocalEnv() {
	c.Local = NewTable()
}

// GlobalStateSnapshot is the state push_global_state moves aside and
// pop_global_state later reinstalls.
type GlobalStateSnapshot struct {
	global, constGlobal, local, procedure *Table
	types                                 *types.Registry
	currentFunction                       *Symbol
	console                               ConsoleState
	errorCount                            int
}

// PushGlobalState moves the Context's current live state into a snapshot
// and zero-initialises fresh state in its place: new empty hashtables,
// default console colours, cleared error count, and a reset break-requested
// flag.
func (c *Context) PushGlobalState() GlobalStateSnapshot {
	snap := GlobalStateSnapshot{
		global: c.Global, constGlobal: c.ConstGlobal, local: c.Local, procedure: c.Procedure,
		types: c.Types, currentFunction: c.CurrentFunction, console: c.Console, errorCount: c.ErrorCount,
	}
	c.Global = NewTable()
	c.ConstGlobal = NewTable()
	c.Local = NewTable()
	c.Procedure = NewTable()
	c.Types = types.New()
	c.CurrentFunction = nil
	c.Console = ConsoleState{}
	c.ErrorCount = 0
	c.breakRequested.Store(false)
	return snap
}

// PopGlobalState drops any tables PushGlobalState created (left to the
// garbage collector) and reinstalls snap's state.
func (c *Context) PopGlobalState(snap GlobalStateSnapshot) {
	c.Global = snap.global
	c.ConstGlobal = snap.constGlobal
	c.Local = snap.local
	c.Procedure = snap.procedure
	c.Types = snap.types
	c.CurrentFunction = snap.currentFunction
	c.Console = snap.console
	c.ErrorCount = snap.errorCount
}

// InvalidateGlobalState clears all four tables and the type registry to
// fresh empty values without attempting to reclaim the old ones (used when
// a child scope has already taken ownership of them).
func (c *Context) InvalidateGlobalState() {
	c.Global = NewTable()
	c.ConstGlobal = NewTable()
	c.Local = NewTable()
	c.Procedure = NewTable()
	c.Types = types.New()
}

// RequestBreak sets the atomic cancellation flag.
func (c *Context) RequestBreak() { c.breakRequested.Store(true) }

// BreakRequested reports whether RequestBreak has been called.
func (c *Context) BreakRequested() bool { return c.breakRequested.Load() }
