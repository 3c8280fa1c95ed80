package value

import "fmt"

// Kind identifies the shape of a Type descriptor.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNil
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint
	KindUintptr
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindString
	KindFunc
	KindArray
	KindSlice
	KindStruct
	KindIntLiteral
	KindFloatLiteral
)

var kindNames = [...]string{
	KindInvalid:      "invalid",
	KindNil:          "nil",
	KindBool:         "bool",
	KindInt8:         "int8",
	KindInt16:        "int16",
	KindInt32:        "int32",
	KindInt64:        "int64",
	KindInt:          "int",
	KindUint8:        "uint8",
	KindUint16:       "uint16",
	KindUint32:       "uint32",
	KindUint64:       "uint64",
	KindUint:         "uint",
	KindUintptr:      "uintptr",
	KindFloat32:      "float32",
	KindFloat64:      "float64",
	KindComplex64:    "complex64",
	KindComplex128:   "complex128",
	KindString:       "string",
	KindFunc:         "func",
	KindArray:        "array",
	KindSlice:        "slice",
	KindStruct:       "struct",
	KindIntLiteral:   "untyped int",
	KindFloatLiteral: "untyped float",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown kind"
}

// IsInteger reports whether k is one of the signed or unsigned integer
// kinds (not including the untyped literal kinds).
func (k Kind) IsInteger() bool {
	return k >= KindInt8 && k <= KindUintptr
}

// IsFloat reports whether k is float32 or float64.
func (k Kind) IsFloat() bool { return k == KindFloat32 || k == KindFloat64 }

// IsComplex reports whether k is complex64 or complex128.
func (k Kind) IsComplex() bool { return k == KindComplex64 || k == KindComplex128 }

// IsNumeric reports whether k is an integer, float, or complex kind.
func (k Kind) IsNumeric() bool { return k.IsInteger() || k.IsFloat() || k.IsComplex() }

// Param describes one function parameter: its type, and whether it is the
// (necessarily last) variadic parameter.
type Param struct {
	Type     Type
	Variadic bool
}

// FuncType describes the signature of a function value: an ordered
// parameter list and an ordered return composite (0 results = void, 1 =
// scalar, 2+ = tuple).
type FuncType struct {
	Params  []Param
	Results []Type
}

func (ft *FuncType) String() string {
	s := "func("
	for i, p := range ft.Params {
		if i > 0 {
			s += ", "
		}
		if p.Variadic {
			s += "..."
		}
		s += p.Type.String()
	}
	s += ")"
	if len(ft.Results) == 1 {
		s += " " + ft.Results[0].String()
	} else if len(ft.Results) > 1 {
		s += " ("
		for i, r := range ft.Results {
			if i > 0 {
				s += ", "
			}
			s += r.String()
		}
		s += ")"
	}
	return s
}

// Type is the type descriptor: a Kind tag plus the extra payload needed by
// the compound kinds (Array, Slice, Func, Struct).
type Type struct {
	Kind Kind
	Elem *Type    // Array, Slice
	Size int      // Array
	Func *FuncType // Func
	Name string   // Struct
}

func Simple(k Kind) Type { return Type{Kind: k} }

func ArrayOf(elem Type, size int) Type {
	return Type{Kind: KindArray, Elem: &elem, Size: size}
}

func SliceOf(elem Type) Type {
	return Type{Kind: KindSlice, Elem: &elem}
}

func FuncOf(ft *FuncType) Type {
	return Type{Kind: KindFunc, Func: ft}
}

func StructNamed(name string) Type {
	return Type{Kind: KindStruct, Name: name}
}

func (t Type) String() string {
	switch t.Kind {
	case KindArray:
		return fmt.Sprintf("[%d]%s", t.Size, t.Elem)
	case KindSlice:
		return fmt.Sprintf("[]%s", t.Elem)
	case KindFunc:
		if t.Func != nil {
			return t.Func.String()
		}
		return "func"
	case KindStruct:
		return "struct " + t.Name
	default:
		return t.Kind.String()
	}
}

// Equal reports whether t and u describe the same type.
func (t Type) Equal(u Type) bool {
	if t.Kind != u.Kind {
		return false
	}
	switch t.Kind {
	case KindArray:
		return t.Size == u.Size && t.Elem.Equal(*u.Elem)
	case KindSlice:
		return t.Elem.Equal(*u.Elem)
	case KindStruct:
		return t.Name == u.Name
	case KindFunc:
		return funcTypeEqual(t.Func, u.Func)
	default:
		return true
	}
}

func funcTypeEqual(a, b *FuncType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Params) != len(b.Params) || len(a.Results) != len(b.Results) {
		return false
	}
	for i := range a.Params {
		if a.Params[i].Variadic != b.Params[i].Variadic || !a.Params[i].Type.Equal(b.Params[i].Type) {
			return false
		}
	}
	for i := range a.Results {
		if !a.Results[i].Equal(b.Results[i]) {
			return false
		}
	}
	return true
}

// DefaultValue returns the zero value for t, used by PutDefaultValue.
func DefaultValue(t Type) Value {
	switch t.Kind {
	case KindBool:
		return Bool(false)
	case KindInt8:
		return Int8(0)
	case KindInt16:
		return Int16(0)
	case KindInt32:
		return Int32(0)
	case KindInt64:
		return Int64(0)
	case KindInt:
		return Int(0)
	case KindUint8:
		return Uint8(0)
	case KindUint16:
		return Uint16(0)
	case KindUint32:
		return Uint32(0)
	case KindUint64:
		return Uint64(0)
	case KindUint:
		return Uint(0)
	case KindUintptr:
		return Uintptr(0)
	case KindFloat32:
		return Float32(0)
	case KindFloat64:
		return Float64(0)
	case KindComplex64:
		return Complex64(0)
	case KindComplex128:
		return Complex128(0)
	case KindString:
		return String("")
	case KindArray:
		elems := make([]Value, t.Size)
		ev := DefaultValue(*t.Elem)
		for i := range elems {
			elems[i] = ev
		}
		return NewArray(elems, *t.Elem)
	case KindSlice:
		return NewSlice(nil, *t.Elem)
	default:
		return Nil{}
	}
}
