package vm

import (
	"fmt"

	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/value"
)

// callBuiltin implements the eight genuine built-in globals of §4.7. Type
// conversions (including string(...)) never reach here: they are compiled
// to BLIND_LITERAL_CAST directly, since every type-keyword token is a
// prefix rule in the compiler's Pratt table, not an ordinary identifier.
// A nil, nil result means "no meaningful return value"; execCall/invoke
// turn that into a pushed value.Nil{}.
func (m *Machine) callBuiltin(name string, args []value.Value, pos token.Position) (value.Value, error) {
	switch name {
	case "print":
		m.builtinPrint(args, false)
		return nil, nil
	case "println":
		m.builtinPrint(args, true)
		return nil, nil
	case "len":
		return builtinLen(args, pos)
	case "append":
		return builtinAppend(args, pos)
	case "complex":
		return builtinComplex(args, pos)
	case "real":
		return builtinReal(args, pos)
	case "imag":
		return builtinImag(args, pos)
	case "panic":
		return nil, builtinPanic(args, pos)
	default:
		return nil, runtimeErrf(pos, "internal error: unregistered builtin %s", name)
	}
}

// builtinPrint writes print/println's output to stream_err() (§6): this is
// intentional, not a bug — the language's tests rely on print output being
// interleaved on stderr.
func (m *Machine) builtinPrint(args []value.Value, newline bool) {
	for i, a := range args {
		if newline && i > 0 {
			fmt.Fprint(m.Stdio.Stderr, " ")
		}
		fmt.Fprint(m.Stdio.Stderr, a.String())
	}
	if newline {
		fmt.Fprintln(m.Stdio.Stderr)
	}
}

func builtinLen(args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, runtimeErrf(pos, "len expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case value.String:
		return value.Int(len(v)), nil
	case value.Array:
		return value.Int(v.Size), nil
	case value.Slice:
		return value.Int(v.Len()), nil
	default:
		return nil, runtimeErrf(pos, "len: unsupported operand type %s", v.Type())
	}
}

func builtinAppend(args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) < 1 {
		return nil, runtimeErrf(pos, "append expects at least 1 argument, got 0")
	}
	sl, ok := args[0].(value.Slice)
	if !ok {
		return nil, runtimeErrf(pos, "append: first argument must be a slice, got %s", args[0].Type())
	}
	rest := make([]value.Value, len(args)-1)
	for i, v := range args[1:] {
		pv, err := value.LoseLiteral(v, sl.Elem)
		if err != nil {
			return nil, runtimeErrf(pos, "append: %s", err)
		}
		if !pv.Type().Equal(sl.Elem) {
			return nil, runtimeErrf(pos, "append: cannot use %s as %s", pv.Type(), sl.Elem)
		}
		rest[i] = pv
	}
	elems := make([]value.Value, 0, sl.Len()+len(rest))
	elems = append(append(elems, sl.Elems()...), rest...)
	return value.NewSlice(elems, sl.Elem), nil
}

func builtinComplex(args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 2 {
		return nil, runtimeErrf(pos, "complex expects 2 arguments, got %d", len(args))
	}
	re, im := args[0], args[1]
	reUntyped, imUntyped := value.IsUntyped(re), value.IsUntyped(im)
	switch {
	case reUntyped && !imUntyped:
		v, err := value.LoseLiteral(re, im.Type())
		if err != nil {
			return nil, runtimeErrf(pos, "complex: %s", err)
		}
		re = v
	case imUntyped && !reUntyped:
		v, err := value.LoseLiteral(im, re.Type())
		if err != nil {
			return nil, runtimeErrf(pos, "complex: %s", err)
		}
		im = v
	case reUntyped && imUntyped:
		rv, err1 := value.LoseLiteral(re, value.Simple(value.KindFloat64))
		iv, err2 := value.LoseLiteral(im, value.Simple(value.KindFloat64))
		if err1 != nil || err2 != nil {
			return nil, runtimeErrf(pos, "complex: invalid operands")
		}
		re, im = rv, iv
	}

	if reF32, ok := re.(value.Float32); ok {
		if imF32, ok := im.(value.Float32); ok {
			return value.Complex64(complex(float32(reF32), float32(imF32))), nil
		}
	}
	if reF64, ok := re.(value.Float64); ok {
		if imF64, ok := im.(value.Float64); ok {
			return value.Complex128(complex(float64(reF64), float64(imF64))), nil
		}
	}
	return nil, runtimeErrf(pos, "complex: operands must both be float32 or both be float64, got %s and %s", re.Type(), im.Type())
}

func builtinReal(args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, runtimeErrf(pos, "real expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case value.Complex64:
		return value.Float32(real(complex64(v))), nil
	case value.Complex128:
		return value.Float64(real(complex128(v))), nil
	default:
		return nil, runtimeErrf(pos, "real: unsupported operand type %s", v.Type())
	}
}

func builtinImag(args []value.Value, pos token.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, runtimeErrf(pos, "imag expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case value.Complex64:
		return value.Float32(imag(complex64(v))), nil
	case value.Complex128:
		return value.Float64(imag(complex128(v))), nil
	default:
		return nil, runtimeErrf(pos, "imag: unsupported operand type %s", v.Type())
	}
}

func builtinPanic(args []value.Value, pos token.Position) error {
	msg := "panic"
	if len(args) > 0 {
		msg = args[0].String()
	}
	return runtimeErrf(pos, "panic: %s", msg)
}
