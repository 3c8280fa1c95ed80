package value

import "strings"

// handle is the shared mutable backing store for Array and Slice values.
// Copying a Value that wraps a handle produces an aliasing reference; the
// VM performs a deep copy (Array.Copy, via the vm package's copyIfArray) at
// the defined store points to
// preserve array value semantics while leaving slices reference-typed.
type handle struct {
	elems []Value
}

// Array is a fixed-size indexable sequence. Arrays are value-typed at the
// language level: the VM deep-copies the backing handle whenever an array
// value is stored into a global, a local, or passed as an argument.
type Array struct {
	h    *handle
	Elem Type
	Size int
}

// NewArray wraps elems (len(elems) must equal the array's declared size) in
// a fresh handle.
func NewArray(elems []Value, elem Type) Array {
	return Array{h: &handle{elems: elems}, Elem: elem, Size: len(elems)}
}

func (a Array) Type() Type { return ArrayOf(a.Elem, a.Size) }

func (a Array) String() string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(a.Type().String())
	sb.WriteString(">[")
	for i, e := range a.h.elems {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.String())
	}
	sb.WriteString("]")
	return sb.String()
}

func (a Array) Len() int { return len(a.h.elems) }

func (a Array) Index(i int) Value { return a.h.elems[i] }

func (a Array) SetIndex(i int, v Value) { a.h.elems[i] = v }

// Copy returns a new Array with its own handle, a deep copy of a's
// contents (the "copy_if_soft_reference" rule).
func (a Array) Copy() Array {
	elems := make([]Value, len(a.h.elems))
	copy(elems, a.h.elems)
	return Array{h: &handle{elems: elems}, Elem: a.Elem, Size: a.Size}
}

// Slice is a dynamically-sized indexable sequence. Slices are
// reference-typed: copying a Slice value aliases the same handle, and
// mutations through one binding are visible through any other.
type Slice struct {
	h    *handle
	Elem Type
}

func NewSlice(elems []Value, elem Type) Slice {
	return Slice{h: &handle{elems: elems}, Elem: elem}
}

func (s Slice) Type() Type { return SliceOf(s.Elem) }

func (s Slice) String() string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(s.Type().String())
	sb.WriteString(">[")
	for i, e := range s.h.elems {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.String())
	}
	sb.WriteString("]")
	return sb.String()
}

func (s Slice) Len() int { return len(s.h.elems) }

func (s Slice) Index(i int) Value { return s.h.elems[i] }

func (s Slice) SetIndex(i int, v Value) { s.h.elems[i] = v }

// Append appends vs in place to the slice's shared backing handle, so every
// Slice value that aliases the handle observes the new elements and length.
func (s Slice) Append(vs ...Value) Slice {
	s.h.elems = append(s.h.elems, vs...)
	return s
}

// Elems returns the live backing slice; callers must not retain it across
// further mutation without being aware of aliasing.
func (s Slice) Elems() []Value { return s.h.elems }

func (a Array) Elems() []Value { return a.h.elems }
