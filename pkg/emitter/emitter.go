// Package emitter defines the four-operation interface the core hands a
// fully-annotated AST to. Bytecode generation itself is out of scope for
// this module; NopEmitter exists so pkg/unit and cmd/json2bc can be
// exercised without a real backend wired in.
package emitter

import (
	"github.com/pscal-toolchain/core/pkg/ast"
	"github.com/pscal-toolchain/core/pkg/symbol"
)

// Chunk is an opaque bytecode buffer handle; the core never inspects its
// contents, only passes it between emitter calls.
type Chunk struct {
	Bytes []byte
}

// Emitter is the exact four-operation surface a bytecode backend needs to
// expose. The emitter reads from the procedure table by lowercased symbol
// name and expects each routine's TypeDef to be a fully annotated
// declaration AST.
type Emitter interface {
	// CompileProgram compiles the top-level program AST into out, returning
	// whether compilation succeeded.
	CompileProgram(program *ast.Node, out *Chunk) bool

	// CompileUnitImplementation emits code for a unit's implementation
	// section, assigning each routine a bytecode address inside out.
	CompileUnitImplementation(unit *ast.Node, procedures *symbol.Table, out *Chunk)

	// ResetCompilerState clears the emitter's own constant cache before a
	// new compilation.
	ResetCompilerState()

	// Disassemble is an optional diagnostic dump of out under name.
	Disassemble(out *Chunk, name string, procedures *symbol.Table) string
}

// NopEmitter satisfies Emitter without producing bytecode: CompileProgram
// and CompileUnitImplementation record that they were invoked but emit
// nothing, which is sufficient for exercising pkg/unit's linking contract
// without a real backend.
type NopEmitter struct {
	ProgramCompiled bool
	UnitsCompiled   []string
}

// CompileProgram marks the program as seen and reports success.
func (e *NopEmitter) CompileProgram(program *ast.Node, out *Chunk) bool {
	e.ProgramCompiled = true
	return program != nil
}

// CompileUnitImplementation records the unit's name (from its anchor token,
// if any) as compiled; it assigns no bytecode addresses.
func (e *NopEmitter) CompileUnitImplementation(unit *ast.Node, procedures *symbol.Table, out *Chunk) {
	name := ""
	if unit != nil && unit.Token != nil {
		name = unit.Token.Lexeme
	}
	e.UnitsCompiled = append(e.UnitsCompiled, name)
}

// ResetCompilerState is a no-op; NopEmitter has no cache to clear.
func (e *NopEmitter) ResetCompilerState() {}

// Disassemble returns a fixed placeholder; NopEmitter never produces real
// bytecode to disassemble.
func (e *NopEmitter) Disassemble(out *Chunk, name string, procedures *symbol.Table) string {
	return "; no-op emitter: nothing compiled for " + name
}
