package value

import (
	"fmt"
	"strings"
)

// asInt64 extracts the integer value of v as an int64, for use by the
// truncating/wrapping numeric conversions below. ok is true for every
// integer-kinded value, untyped int literals included, and false for
// anything else.
func asInt64(v Value) (int64, bool) {
	switch n := v.(type) {
	case Int8:
		return int64(n), true
	case Int16:
		return int64(n), true
	case Int32:
		return int64(n), true
	case Int64:
		return int64(n), true
	case Int:
		return int64(n), true
	case Uint8:
		return int64(n), true
	case Uint16:
		return int64(n), true
	case Uint32:
		return int64(n), true
	case Uint64:
		return int64(n), true
	case Uint:
		return int64(n), true
	case Uintptr:
		return int64(n), true
	case IntLiteral:
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat64(v Value) (float64, bool) {
	switch n := v.(type) {
	case Float32:
		return float64(n), true
	case Float64:
		return float64(n), true
	case FloatLiteral:
		return float64(n), true
	default:
		if i, ok := asInt64(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// ConvertTo performs an explicit conversion TYPE(v), per §4.6/§4.7: numeric
// conversions truncate (integer to narrower integer) or wrap (signed to
// unsigned) silently, float-to-int truncates toward zero, and conversions
// to string follow the rune-slice / byte-slice / code-point / identity
// rules the string built-in documents.
func ConvertTo(v Value, target Type) (Value, error) {
	if target.Kind == KindString {
		return convertToString(v)
	}
	if target.Kind.IsInteger() {
		i, ok := asInt64(v)
		if !ok {
			f, ok := asFloat64(v)
			if !ok {
				return nil, fmt.Errorf("cannot convert %s to %s", v.Type(), target.Kind)
			}
			i = int64(f) // truncate toward zero
		}
		return intLiteralTo(i, target.Kind)
	}
	if target.Kind.IsFloat() {
		f, ok := asFloat64(v)
		if !ok {
			return nil, fmt.Errorf("cannot convert %s to %s", v.Type(), target.Kind)
		}
		return floatLiteralTo(f, target.Kind)
	}
	if target.Kind.IsComplex() {
		switch n := v.(type) {
		case Complex64:
			if target.Kind == KindComplex128 {
				return Complex128(complex128(n)), nil
			}
			return n, nil
		case Complex128:
			if target.Kind == KindComplex64 {
				return Complex64(complex64(n)), nil
			}
			return n, nil
		default:
			return nil, fmt.Errorf("cannot convert %s to %s", v.Type(), target.Kind)
		}
	}
	if target.Kind == KindBool {
		b, ok := v.(Bool)
		if !ok {
			return nil, fmt.Errorf("cannot convert %s to bool", v.Type())
		}
		return b, nil
	}
	return nil, fmt.Errorf("unsupported conversion target %s", target.Kind)
}

// convertToString implements the `string` built-in/conversion: a slice of
// int32 (runes) or uint8 (bytes) decodes to text, a bare integer becomes the
// single-codepoint string for that scalar value, and a string converts to
// itself unchanged.
func convertToString(v Value) (Value, error) {
	switch s := v.(type) {
	case String:
		return s, nil
	case Slice:
		return sliceToString(s.Elems(), s.Elem.Kind)
	case Array:
		return sliceToString(s.Elems(), s.Elem.Kind)
	default:
		if i, ok := asInt64(v); ok {
			return String(string(rune(i))), nil
		}
		return nil, fmt.Errorf("cannot convert %s to string", v.Type())
	}
}

func sliceToString(elems []Value, elemKind Kind) (Value, error) {
	var sb strings.Builder
	switch elemKind {
	case KindInt32:
		for _, e := range elems {
			i, ok := asInt64(e)
			if !ok {
				return nil, fmt.Errorf("non-integer element in rune slice")
			}
			sb.WriteRune(rune(i))
		}
	case KindUint8:
		buf := make([]byte, len(elems))
		for i, e := range elems {
			n, ok := asInt64(e)
			if !ok {
				return nil, fmt.Errorf("non-integer element in byte slice")
			}
			buf[i] = byte(n)
		}
		sb.Write(buf)
	default:
		return nil, fmt.Errorf("cannot convert []%s to string", elemKind)
	}
	return String(sb.String()), nil
}
