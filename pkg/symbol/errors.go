package symbol

import (
	"fmt"

	"github.com/pscal-toolchain/core/pkg/ast"
)

// ErrorKind enumerates the runtime symbol-update error taxonomy (spec §4.3,
// §7.1), mirroring pkg/token's LexError/ErrorKind shape.
type ErrorKind int

const (
	SymbolNotFound ErrorKind = iota
	AssignToConstant
	TypeMismatchOnAssign
	FileAssignmentUnsupported
	OrdinalOutOfRange
)

var errorKindMessages = map[ErrorKind]string{
	SymbolNotFound:            "symbol not found",
	AssignToConstant:          "assignment to constant",
	TypeMismatchOnAssign:      "type mismatch on assignment",
	FileAssignmentUnsupported: "file-typed symbols cannot be assigned",
	OrdinalOutOfRange:         "ordinal value out of range",
}

// UpdateError is a hard runtime symbol-update error. Callers that already
// allocated an incoming Value must free it themselves on receiving one;
// only a successful Table.Update adopts the incoming Value.
type UpdateError struct {
	Kind   ErrorKind
	Name   string
	Detail string
}

func (e *UpdateError) Error() string {
	msg := errorKindMessages[e.Kind]
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return fmt.Sprintf("symbol %q: %s", e.Name, msg)
}

// ordinalRange reports the legal ordinal bounds for byte/word/enum symbols,
// and whether t is an ordinal type this check applies to at all.
func ordinalRange(t ast.VarType, enumDef *ast.Node) (low, high int64, ok bool) {
	switch t {
	case ast.TypeByte:
		return 0, 255, true
	case ast.TypeWord:
		return 0, 65535, true
	case ast.TypeEnum:
		if enumDef == nil {
			return 0, 0, false
		}
		return 0, int64(len(enumDef.Children)) - 1, true
	default:
		return 0, 0, false
	}
}

// assignable reports whether a value of kind rhs may be coerced into a
// symbol declared with VarType lhs, following the same widening rules
// sema.annotateAssign already applies at compile time (real widens from
// int, string accepts char, ordinals intermix).
func assignable(lhs ast.VarType, rhs ValueKind) bool {
	switch lhs {
	case ast.TypeReal32, ast.TypeReal64:
		return rhs == ValueReal || rhs == ValueInt || rhs == ValueByte || rhs == ValueWord
	case ast.TypeString:
		return rhs == ValueString || rhs == ValueChar
	case ast.TypeChar:
		return rhs == ValueChar
	case ast.TypeBoolean:
		return rhs == ValueBoolean
	case ast.TypeInt8, ast.TypeInt16, ast.TypeInt32, ast.TypeInt64, ast.TypeByte, ast.TypeWord, ast.TypeEnum:
		return rhs == ValueInt || rhs == ValueByte || rhs == ValueWord || rhs == ValueEnum
	case ast.TypePointer:
		return rhs == ValuePointer || rhs == ValueNil
	case ast.TypeSet:
		return rhs == ValueSet
	case ast.TypeRecord:
		return rhs == ValueRecord
	case ast.TypeArray:
		return rhs == ValueArray
	default:
		return true
	}
}
