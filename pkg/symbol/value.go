package symbol

import "github.com/pscal-toolchain/core/pkg/ast"

// ValueKind discriminates the tagged union Value implements.
type ValueKind int

const (
	ValueInvalid ValueKind = iota
	ValueInt
	ValueReal
	ValueChar
	ValueString
	ValueBoolean
	ValueByte
	ValueWord
	ValueEnum
	ValueSet
	ValueRecord
	ValueArray
	ValuePointer
	ValueNil
	ValueFile
	ValueMemoryStream
	ValueThread
)

// Value is the language-agnostic runtime/compile-time value sum type a
// Symbol or the constant folder carries. Only the field(s) matching Kind are
// meaningful; the rest are zero. Values own their heap-allocated contents
// (Fields, Elements) except Pointer and MemoryStream, which are shallow
// handles.
type Value struct {
	Kind ValueKind

	IntVal     int64
	IntWidth   int  // 8, 16, 32, 64
	IntSigned  bool
	RealVal    float64
	RealWidth  int // 32 or 64
	CharVal    byte
	StringVal  string
	StringMax  int // 0 = unbounded
	BoolVal    bool
	ByteVal    byte
	WordVal    uint16

	EnumName    string
	EnumOrdinal int

	SetBits map[int]bool

	Fields map[string]*Value // record: field name -> value

	ArrayLowBound, ArrayHighBound int
	Elements                     []*Value
	ElementType                  *ast.Node

	PtrAddr     uintptr
	PtrBaseType *ast.Node

	FileHandle         int
	MemoryStreamHandle int
	ThreadHandle       int
}

// NewNil returns the nil pointer/reference value.
func NewNil() *Value { return &Value{Kind: ValueNil} }

// NewInt returns a signed or unsigned integer value of the given bit width.
func NewInt(v int64, width int, signed bool) *Value {
	return &Value{Kind: ValueInt, IntVal: v, IntWidth: width, IntSigned: signed}
}

// NewReal returns a floating-point value of the given bit width (32 or 64).
func NewReal(v float64, width int) *Value {
	return &Value{Kind: ValueReal, RealVal: v, RealWidth: width}
}

// NewString returns a string value; maxLen of 0 means unbounded (heap-managed).
func NewString(s string, maxLen int) *Value {
	return &Value{Kind: ValueString, StringVal: s, StringMax: maxLen}
}

// NewBoolean returns a boolean value.
func NewBoolean(b bool) *Value { return &Value{Kind: ValueBoolean, BoolVal: b} }

// NewEnum returns an enum value (type name plus ordinal).
func NewEnum(typeName string, ordinal int) *Value {
	return &Value{Kind: ValueEnum, EnumName: typeName, EnumOrdinal: ordinal}
}

// Clone deep-copies v, duplicating owned contents (Fields, Elements, SetBits)
// but leaving Pointer/MemoryStream handle fields shallow, matching the
// ownership rule above.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := *v
	if v.SetBits != nil {
		c.SetBits = make(map[int]bool, len(v.SetBits))
		for k, b := range v.SetBits {
			c.SetBits[k] = b
		}
	}
	if v.Fields != nil {
		c.Fields = make(map[string]*Value, len(v.Fields))
		for k, f := range v.Fields {
			c.Fields[k] = f.Clone()
		}
	}
	if v.Elements != nil {
		c.Elements = make([]*Value, len(v.Elements))
		for i, e := range v.Elements {
			c.Elements[i] = e.Clone()
		}
	}
	return &c
}
