// Package value implements the tagged value variants (§3 of the
// specification) and the type descriptors they carry, along with the
// arithmetic, comparison, and bitwise operators defined over them,
// including the untyped-literal promotion rules.
package value

import (
	"fmt"
	"strconv"
)

// Value is implemented by every runtime value the compiler can emit and the
// VM can hold on its operand stack.
type Value interface {
	String() string
	Type() Type
}

// Nil is the value of an uninitialized interface-shaped slot; it never
// appears as a declared variable's static type in this language, but the
// built-in table and error paths use it as a sentinel "no value".
type Nil struct{}

func (Nil) String() string { return "<nil>" }
func (Nil) Type() Type     { return Simple(KindNil) }

// Bool is a boolean value.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) Type() Type { return Simple(KindBool) }

// String is a string value.
type String string

func (s String) String() string { return string(s) }
func (String) Type() Type       { return Simple(KindString) }

// Typed integers.
type (
	Int8    int8
	Int16   int16
	Int32   int32
	Int64   int64
	Int     int64
	Uint8   uint8
	Uint16  uint16
	Uint32  uint32
	Uint64  uint64
	Uint    uint64
	Uintptr uint64
)

func (v Int8) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Int16) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int32) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int64) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int) String() string     { return strconv.FormatInt(int64(v), 10) }
func (v Uint8) String() string   { return strconv.FormatUint(uint64(v), 10) }
func (v Uint16) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v Uint32) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v Uint64) String() string  { return strconv.FormatUint(uint64(v), 10) }
func (v Uint) String() string    { return strconv.FormatUint(uint64(v), 10) }
func (v Uintptr) String() string { return strconv.FormatUint(uint64(v), 10) }

func (Int8) Type() Type    { return Simple(KindInt8) }
func (Int16) Type() Type   { return Simple(KindInt16) }
func (Int32) Type() Type   { return Simple(KindInt32) }
func (Int64) Type() Type   { return Simple(KindInt64) }
func (Int) Type() Type     { return Simple(KindInt) }
func (Uint8) Type() Type   { return Simple(KindUint8) }
func (Uint16) Type() Type  { return Simple(KindUint16) }
func (Uint32) Type() Type  { return Simple(KindUint32) }
func (Uint64) Type() Type  { return Simple(KindUint64) }
func (Uint) Type() Type    { return Simple(KindUint) }
func (Uintptr) Type() Type { return Simple(KindUintptr) }

// Typed floats.
type (
	Float32 float32
	Float64 float64
)

func (v Float32) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v Float64) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (Float32) Type() Type       { return Simple(KindFloat32) }
func (Float64) Type() Type       { return Simple(KindFloat64) }

// Complex values.
type (
	Complex64  complex64
	Complex128 complex128
)

func (v Complex64) String() string  { return fmt.Sprintf("%v", complex64(v)) }
func (v Complex128) String() string { return fmt.Sprintf("%v", complex128(v)) }
func (Complex64) Type() Type        { return Simple(KindComplex64) }
func (Complex128) Type() Type       { return Simple(KindComplex128) }

// IntLiteral and FloatLiteral are "untyped" literals: values whose concrete
// type has not yet been fixed. They lose their literal status and adopt a
// concrete type on first combination with a typed value, or on assignment
// to a typed destination (see LoseLiteral).
type (
	IntLiteral   int64
	FloatLiteral float64
)

func (v IntLiteral) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v FloatLiteral) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (IntLiteral) Type() Type         { return Simple(KindIntLiteral) }
func (FloatLiteral) Type() Type       { return Simple(KindFloatLiteral) }

// Func and FuncBuiltin are indirections keyed by a global name, resolved
// against the VM's function table / built-in table at call time.
type (
	Func        struct{ Name string }
	FuncBuiltin struct{ Name string }
)

func (f Func) String() string        { return fmt.Sprintf("func %s", f.Name) }
func (f FuncBuiltin) String() string { return fmt.Sprintf("builtin %s", f.Name) }
func (f Func) Type() Type            { return Simple(KindFunc) }
func (f FuncBuiltin) Type() Type     { return Simple(KindFunc) }

// IsUntyped reports whether v is an IntLiteral or FloatLiteral.
func IsUntyped(v Value) bool {
	switch v.(type) {
	case IntLiteral, FloatLiteral:
		return true
	default:
		return false
	}
}
