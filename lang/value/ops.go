package value

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/mna/gobc/lang/token"
)

// ErrDivideByZero is returned by Binary for integer division or remainder
// by zero; the VM turns this into a runtime panic.
var ErrDivideByZero = fmt.Errorf("division by zero")

// ErrTypeMismatch is returned by Binary/Compare when, after untyped-literal
// promotion, the two operands are still concrete values of different
// kinds (e.g. int + int8): the §7 "operand type mismatch" runtime error.
var ErrTypeMismatch = fmt.Errorf("operand type mismatch")

const floatEpsilon = 1e-9

// LoseLiteral promotes v to target's concrete type if v is an untyped
// literal, per the "lose literal" rule: a bare numeric literal combined
// with a typed value takes the typed value's concrete type. If v is
// already concrete, it is returned unchanged (the rule is idempotent).
func LoseLiteral(v Value, target Type) (Value, error) {
	switch lit := v.(type) {
	case IntLiteral:
		return intLiteralTo(int64(lit), target.Kind)
	case FloatLiteral:
		return floatLiteralTo(float64(lit), target.Kind)
	default:
		return v, nil
	}
}

func intLiteralTo(i int64, k Kind) (Value, error) {
	switch k {
	case KindInt8:
		return Int8(i), nil
	case KindInt16:
		return Int16(i), nil
	case KindInt32:
		return Int32(i), nil
	case KindInt64:
		return Int64(i), nil
	case KindInt, KindIntLiteral:
		return Int(i), nil
	case KindUint8:
		return Uint8(i), nil
	case KindUint16:
		return Uint16(i), nil
	case KindUint32:
		return Uint32(i), nil
	case KindUint64:
		return Uint64(i), nil
	case KindUint:
		return Uint(i), nil
	case KindUintptr:
		return Uintptr(i), nil
	case KindFloat32:
		return Float32(i), nil
	case KindFloat64, KindFloatLiteral:
		return Float64(i), nil
	case KindComplex64:
		return Complex64(complex(float32(i), 0)), nil
	case KindComplex128:
		return Complex128(complex(float64(i), 0)), nil
	default:
		return nil, fmt.Errorf("cannot use untyped int constant as %s", k)
	}
}

func floatLiteralTo(f float64, k Kind) (Value, error) {
	switch k {
	case KindFloat32:
		return Float32(f), nil
	case KindFloat64, KindFloatLiteral:
		return Float64(f), nil
	case KindComplex64:
		return Complex64(complex(float32(f), 0)), nil
	case KindComplex128:
		return Complex128(complex(f, 0)), nil
	default:
		return nil, fmt.Errorf("cannot use untyped float constant as %s", k)
	}
}

// coercePair applies the literal-adoption rule between a pair of operands
// about to be combined: whichever side is untyped takes on the other
// side's concrete type. If both are untyped they stay untyped: two int
// literals are returned unchanged, and a pair involving a float literal is
// returned as two FloatLiteral values.
func coercePair(x, y Value) (Value, Value, error) {
	xu, yu := IsUntyped(x), IsUntyped(y)
	switch {
	case xu && !yu:
		nx, err := LoseLiteral(x, y.Type())
		return nx, y, err
	case yu && !xu:
		ny, err := LoseLiteral(y, x.Type())
		return x, ny, err
	case xu && yu:
		// both untyped: int+float -> float, else keep as-is (same literal kind)
		_, xf := x.(FloatLiteral)
		_, yf := y.(FloatLiteral)
		if xf || yf {
			nx, _ := floatLiteralTo(toF64(x), KindFloatLiteral)
			ny, _ := floatLiteralTo(toF64(y), KindFloatLiteral)
			return nx, ny, nil
		}
		return x, y, nil
	default:
		return x, y, nil
	}
}

func toF64(v Value) float64 {
	switch n := v.(type) {
	case IntLiteral:
		return float64(n)
	case FloatLiteral:
		return float64(n)
	default:
		return 0
	}
}

func intBinary[T constraints.Integer](op token.Token, a, b T) (T, error) {
	switch op {
	case token.PLUS:
		return a + b, nil
	case token.MINUS:
		return a - b, nil
	case token.STAR:
		return a * b, nil
	case token.SLASH:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	case token.PERCENT:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a % b, nil
	case token.AMPERSAND:
		return a & b, nil
	case token.PIPE:
		return a | b, nil
	case token.CIRCUMFLEX:
		return a ^ b, nil
	case token.AMPCARET:
		return a &^ b, nil
	case token.LTLT:
		return a << uint(b), nil
	case token.GTGT:
		return a >> uint(b), nil
	default:
		return 0, fmt.Errorf("unsupported integer operator %s", op)
	}
}

func floatBinary[T constraints.Float](op token.Token, a, b T) (T, error) {
	switch op {
	case token.PLUS:
		return a + b, nil
	case token.MINUS:
		return a - b, nil
	case token.STAR:
		return a * b, nil
	case token.SLASH:
		return a / b, nil
	default:
		return 0, fmt.Errorf("unsupported float operator %s", op)
	}
}

func complexBinary[T complex64 | complex128](op token.Token, a, b T) (T, error) {
	switch op {
	case token.PLUS:
		return a + b, nil
	case token.MINUS:
		return a - b, nil
	case token.STAR:
		return a * b, nil
	case token.SLASH:
		return a / b, nil
	default:
		return 0, fmt.Errorf("unsupported complex operator %s", op)
	}
}

// Binary evaluates op on x and y, applying untyped-literal promotion
// first. x's resulting concrete type (after promotion) is the result
// type.
func Binary(op token.Token, x, y Value) (Value, error) {
	x, y, err := coercePair(x, y)
	if err != nil {
		return nil, err
	}

	if bothUntyped(x, y) {
		return untypedBinary(op, x, y)
	}

	if !x.Type().Equal(y.Type()) {
		return nil, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, x.Type(), y.Type())
	}

	switch a := x.(type) {
	case Int8:
		r, err := intBinary(op, int8(a), int8(y.(Int8)))
		return Int8(r), err
	case Int16:
		r, err := intBinary(op, int16(a), int16(y.(Int16)))
		return Int16(r), err
	case Int32:
		r, err := intBinary(op, int32(a), int32(y.(Int32)))
		return Int32(r), err
	case Int64:
		r, err := intBinary(op, int64(a), int64(y.(Int64)))
		return Int64(r), err
	case Int:
		r, err := intBinary(op, int64(a), int64(y.(Int)))
		return Int(r), err
	case Uint8:
		r, err := intBinary(op, uint8(a), uint8(y.(Uint8)))
		return Uint8(r), err
	case Uint16:
		r, err := intBinary(op, uint16(a), uint16(y.(Uint16)))
		return Uint16(r), err
	case Uint32:
		r, err := intBinary(op, uint32(a), uint32(y.(Uint32)))
		return Uint32(r), err
	case Uint64:
		r, err := intBinary(op, uint64(a), uint64(y.(Uint64)))
		return Uint64(r), err
	case Uint:
		r, err := intBinary(op, uint64(a), uint64(y.(Uint)))
		return Uint(r), err
	case Uintptr:
		r, err := intBinary(op, uint64(a), uint64(y.(Uintptr)))
		return Uintptr(r), err
	case Float32:
		r, err := floatBinary(op, float32(a), float32(y.(Float32)))
		return Float32(r), err
	case Float64:
		r, err := floatBinary(op, float64(a), float64(y.(Float64)))
		return Float64(r), err
	case Complex64:
		r, err := complexBinary(op, complex64(a), complex64(y.(Complex64)))
		return Complex64(r), err
	case Complex128:
		r, err := complexBinary(op, complex128(a), complex128(y.(Complex128)))
		return Complex128(r), err
	case String:
		if op == token.PLUS {
			return String(string(a) + string(y.(String))), nil
		}
		return nil, fmt.Errorf("unsupported string operator %s", op)
	default:
		return nil, fmt.Errorf("type mismatch: cannot apply %s to %s", op, x.Type())
	}
}

func bothUntyped(x, y Value) bool { return IsUntyped(x) && IsUntyped(y) }

func untypedBinary(op token.Token, x, y Value) (Value, error) {
	switch a := x.(type) {
	case IntLiteral:
		r, err := intBinary(op, int64(a), int64(y.(IntLiteral)))
		return IntLiteral(r), err
	case FloatLiteral:
		r, err := floatBinary(op, float64(a), float64(y.(FloatLiteral)))
		return FloatLiteral(r), err
	default:
		return nil, fmt.Errorf("internal error: untypedBinary on %T", x)
	}
}

// Compare evaluates the ordering/equality operator op between x and y.
func Compare(op token.Token, x, y Value) (Bool, error) {
	x, y, err := coercePair(x, y)
	if err != nil {
		return false, err
	}

	if bothUntyped(x, y) {
		return untypedCompare(op, x, y)
	}

	_, xNil := x.(Nil)
	_, yNil := y.(Nil)
	if xNil || yNil {
		return eqCompare(op, xNil && yNil)
	}
	if !x.Type().Equal(y.Type()) {
		return false, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, x.Type(), y.Type())
	}

	switch a := x.(type) {
	case Bool:
		return boolCompare(op, bool(a), bool(y.(Bool)))
	case String:
		return strCompare(op, string(a), string(y.(String)))
	case Int8:
		return ordCompare(op, int8(a), int8(y.(Int8)))
	case Int16:
		return ordCompare(op, int16(a), int16(y.(Int16)))
	case Int32:
		return ordCompare(op, int32(a), int32(y.(Int32)))
	case Int64:
		return ordCompare(op, int64(a), int64(y.(Int64)))
	case Int:
		return ordCompare(op, int64(a), int64(y.(Int)))
	case Uint8:
		return ordCompare(op, uint8(a), uint8(y.(Uint8)))
	case Uint16:
		return ordCompare(op, uint16(a), uint16(y.(Uint16)))
	case Uint32:
		return ordCompare(op, uint32(a), uint32(y.(Uint32)))
	case Uint64:
		return ordCompare(op, uint64(a), uint64(y.(Uint64)))
	case Uint:
		return ordCompare(op, uint64(a), uint64(y.(Uint)))
	case Uintptr:
		return ordCompare(op, uint64(a), uint64(y.(Uintptr)))
	case Float32:
		return ordCompare(op, float32(a), float32(y.(Float32)))
	case Float64:
		return ordCompare(op, float64(a), float64(y.(Float64)))
	default:
		return false, fmt.Errorf("type %s is not comparable", x.Type())
	}
}

func untypedCompare(op token.Token, x, y Value) (Bool, error) {
	switch a := x.(type) {
	case IntLiteral:
		return ordCompare(op, int64(a), int64(y.(IntLiteral)))
	case FloatLiteral:
		af, bf := float64(a), float64(y.(FloatLiteral))
		if op == token.EQ {
			return Bool(math.Abs(af-bf) < floatEpsilon), nil
		}
		if op == token.NEQ {
			return Bool(math.Abs(af-bf) >= floatEpsilon), nil
		}
		return ordCompare(op, af, bf)
	default:
		return false, fmt.Errorf("internal error: untypedCompare on %T", x)
	}
}

func ordCompare[T constraints.Ordered](op token.Token, a, b T) (Bool, error) {
	switch op {
	case token.EQ:
		return Bool(a == b), nil
	case token.NEQ:
		return Bool(a != b), nil
	case token.LT:
		return Bool(a < b), nil
	case token.LE:
		return Bool(a <= b), nil
	case token.GT:
		return Bool(a > b), nil
	case token.GE:
		return Bool(a >= b), nil
	default:
		return false, fmt.Errorf("unsupported comparison operator %s", op)
	}
}

func boolCompare(op token.Token, a, b bool) (Bool, error) { return eqOnly(op, a == b) }
func strCompare(op token.Token, a, b string) (Bool, error) {
	return ordCompare(op, a, b)
}
func eqCompare(op token.Token, eq bool) (Bool, error) { return eqOnly(op, eq) }

func eqOnly(op token.Token, eq bool) (Bool, error) {
	switch op {
	case token.EQ:
		return Bool(eq), nil
	case token.NEQ:
		return Bool(!eq), nil
	default:
		return false, fmt.Errorf("unsupported comparison operator %s", op)
	}
}

// Unary evaluates a unary operator on v.
func Unary(op token.Token, v Value) (Value, error) {
	switch op {
	case token.NOT:
		b, ok := v.(Bool)
		if !ok {
			return nil, fmt.Errorf("operator ! requires bool, got %s", v.Type())
		}
		return !b, nil
	case token.PLUS:
		return v, nil // PlusNoop
	case token.MINUS:
		return negate(v)
	case token.CIRCUMFLEX:
		return bitwiseNot(v)
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", op)
	}
}

func negate(v Value) (Value, error) {
	switch n := v.(type) {
	case Int8:
		return -n, nil
	case Int16:
		return -n, nil
	case Int32:
		return -n, nil
	case Int64:
		return -n, nil
	case Int:
		return -n, nil
	case Uint8:
		return -n, nil
	case Uint16:
		return -n, nil
	case Uint32:
		return -n, nil
	case Uint64:
		return -n, nil
	case Uint:
		return -n, nil
	case Uintptr:
		return -n, nil
	case Float32:
		return -n, nil
	case Float64:
		return -n, nil
	case Complex64:
		return -n, nil
	case Complex128:
		return -n, nil
	case IntLiteral:
		return -n, nil
	case FloatLiteral:
		return -n, nil
	default:
		return nil, fmt.Errorf("operator - requires a numeric type, got %s", v.Type())
	}
}

func bitwiseNot(v Value) (Value, error) {
	switch n := v.(type) {
	case Int8:
		return ^n, nil
	case Int16:
		return ^n, nil
	case Int32:
		return ^n, nil
	case Int64:
		return ^n, nil
	case Int:
		return ^n, nil
	case Uint8:
		return ^n, nil
	case Uint16:
		return ^n, nil
	case Uint32:
		return ^n, nil
	case Uint64:
		return ^n, nil
	case Uint:
		return ^n, nil
	case Uintptr:
		return ^n, nil
	case IntLiteral:
		return ^n, nil
	default:
		return nil, fmt.Errorf("operator ^ requires an integer type, got %s", v.Type())
	}
}

// Equal reports whether x and y are equal values, applying the same
// literal-adaptation rule as comparison.
func Equal(x, y Value) (bool, error) {
	b, err := Compare(token.EQ, x, y)
	return bool(b), err
}
