// Package vm implements the bytecode-dispatch stack machine (§4.6 of the
// specification): it executes the Chunk produced by lang/compiler against a
// flat operand stack shared across call frames, resolving globals through a
// swiss-map table the way the teacher's lang/machine package resolves its
// own globals, and user/builtin calls through a pair of name-keyed tables
// built once at construction time.
package vm

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/dolthub/swiss"

	"github.com/mna/gobc/lang/bytecode"
	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/value"
	"github.com/mna/mainer"
)

// Config controls VM resource limits, overridable via environment variables
// the same way the teacher's config layers do (caarlos0/env tags).
type Config struct {
	MaxSteps     int64 `env:"GOBC_MAX_STEPS" envDefault:"100000000"`
	InitialStack int   `env:"GOBC_INITIAL_STACK" envDefault:"256"`
}

// LoadConfig parses a Config from the environment, falling back to the
// envDefault tags for anything unset.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse vm config: %w", err)
	}
	return c, nil
}

// RuntimeError is a fatal error raised during execution (§7): a type
// mismatch, an out-of-range index, division by zero, and so on. It mirrors
// token.Error's shape since both are positioned, user-facing diagnostics.
type RuntimeError struct {
	Pos token.Position
	Msg string
}

func (e *RuntimeError) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func runtimeErrf(pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// globalSlot is one package-level binding: its current value and whether
// VAR_GLOBAL (mutable) or CONST_GLOBAL (immutable) declared it.
type globalSlot struct {
	value   value.Value
	mutable bool
}

// deferredCall is a captured "defer CALL" invocation: the callee and its
// already-evaluated arguments, run LIFO when the enclosing frame returns.
type deferredCall struct {
	callee value.Value
	args   []value.Value
	spread bool
	pos    token.Position
}

// frame is one function activation: its own chunk and instruction pointer,
// the stack index its parameters/locals start at, and any defers it has
// captured. There is no separate frame stack in Machine — nested calls
// recurse through Go's own call stack via runFunc/invoke, which gives calls
// strict LIFO ordering for free (§5).
type frame struct {
	chunk     *bytecode.Chunk
	ip        int
	stackBase int
	defers    []deferredCall
}

// Machine is one bytecode VM instance: a function table, a globals table,
// and the shared operand stack every frame indexes into.
type Machine struct {
	Config Config
	Stdio  mainer.Stdio

	functions map[string]*bytecode.FuncUnit
	globals   *swiss.Map[string, globalSlot]

	stack []value.Value
	steps int64
}

// builtinNames lists every genuine FuncBuiltin global (§4.7). Type
// conversions, including string(...), are never ordinary builtins: every
// type-keyword token is registered in the compiler's Pratt table as a
// prefix rule (castExpr) that emits BLIND_LITERAL_CAST directly, so those
// names are never looked up as globals at all.
var builtinNames = []string{"print", "println", "len", "append", "complex", "real", "imag", "panic"}

// New constructs a Machine over functions (the compiler's Result.Functions
// table), pre-registering the built-in globals.
func New(cfg Config, stdio mainer.Stdio, functions map[string]*bytecode.FuncUnit) *Machine {
	m := &Machine{
		Config:    cfg,
		Stdio:     stdio,
		functions: functions,
		globals:   swiss.NewMap[string, globalSlot](16),
		stack:     make([]value.Value, 0, cfg.InitialStack),
	}
	for _, name := range builtinNames {
		m.globals.Put(name, globalSlot{value: value.FuncBuiltin{Name: name}, mutable: false})
	}
	return m
}

// ---- operand stack helpers ----

func (m *Machine) push(v value.Value) { m.stack = append(m.stack, v) }

func (m *Machine) pop() value.Value {
	n := len(m.stack) - 1
	v := m.stack[n]
	m.stack = m.stack[:n]
	return v
}

func (m *Machine) peek() value.Value { return m.stack[len(m.stack)-1] }

func (m *Machine) truncate(n int) { m.stack = m.stack[:n] }

// Run executes pkg's chunk: global initializers in declaration order
// followed by the entry-point call glue the compiler appended
// (GET_GLOBAL "main", CALL, EXIT). Execution ends when EXIT is reached.
func (m *Machine) Run(ctx context.Context, pkg *bytecode.PackageUnit) error {
	fr := frame{chunk: &pkg.Chunk, stackBase: 0}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fr.ip >= len(fr.chunk.Code) {
			return &RuntimeError{Msg: "package initializer ended without reaching exit"}
		}
		pos := fr.chunk.Pos[fr.ip]
		if err := m.checkSteps(pos); err != nil {
			return err
		}
		instr := fr.chunk.Code[fr.ip]
		fr.ip++
		if instr.Op == bytecode.EXIT {
			return nil
		}
		if err := m.exec(ctx, &fr, instr, pos); err != nil {
			return err
		}
	}
}

func (m *Machine) checkSteps(pos token.Position) error {
	m.steps++
	if m.Config.MaxSteps > 0 && m.steps > m.Config.MaxSteps {
		return runtimeErrf(pos, "exceeded maximum step count (%d)", m.Config.MaxSteps)
	}
	return nil
}

// runFunc executes fn's chunk with its parameters/locals already pushed
// onto m.stack starting at stackBase, returning its result values (0 or 1,
// since this language's grammar allows at most one declared result type)
// in original order.
func (m *Machine) runFunc(ctx context.Context, fn *bytecode.FuncUnit, stackBase int) ([]value.Value, error) {
	fr := frame{chunk: &fn.Chunk, stackBase: stackBase}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if fr.ip >= len(fr.chunk.Code) {
			// every function body ends with an explicit RETURN emitted by
			// funcDecl; falling off the end would be a compiler bug.
			return nil, runtimeErrf(token.Position{}, "function %s fell off its chunk without returning", fn.Name)
		}
		pos := fr.chunk.Pos[fr.ip]
		if err := m.checkSteps(pos); err != nil {
			return nil, err
		}
		instr := fr.chunk.Code[fr.ip]
		fr.ip++

		switch instr.Op {
		case bytecode.RETURN:
			return m.doReturn(ctx, fn, &fr, instr, pos)
		case bytecode.DEFER:
			if err := m.captureDefer(&fr, instr, pos); err != nil {
				return nil, err
			}
		default:
			if err := m.exec(ctx, &fr, instr, pos); err != nil {
				return nil, err
			}
		}
	}
}

func (m *Machine) doReturn(ctx context.Context, fn *bytecode.FuncUnit, fr *frame, instr bytecode.Instr, pos token.Position) ([]value.Value, error) {
	count := int(instr.A)
	vals := make([]value.Value, count)
	for i := count - 1; i >= 0; i-- {
		vals[i] = m.pop()
	}

	// LIFO: the most recently deferred call runs first.
	for i := len(fr.defers) - 1; i >= 0; i-- {
		d := fr.defers[i]
		if _, err := m.invoke(ctx, d.callee, d.args, d.spread, d.pos); err != nil {
			return nil, err
		}
	}

	if count != len(fn.Sig.Results) {
		return nil, runtimeErrf(pos, "function %s returns %d value(s), got %d", fn.Name, len(fn.Sig.Results), count)
	}
	for i, rt := range fn.Sig.Results {
		pv, err := value.LoseLiteral(vals[i], rt)
		if err != nil {
			return nil, runtimeErrf(pos, "return value %d of %s: %s", i, fn.Name, err)
		}
		if !pv.Type().Equal(rt) {
			return nil, runtimeErrf(pos, "return value %d of %s: cannot use %s as %s", i, fn.Name, pv.Type(), rt)
		}
		vals[i] = pv
	}
	return vals, nil
}

func (m *Machine) captureDefer(fr *frame, instr bytecode.Instr, pos token.Position) error {
	argc := int(instr.A)
	calleeIndex := len(m.stack) - argc - 1
	if calleeIndex < 0 {
		return runtimeErrf(pos, "internal error: stack underflow preparing defer")
	}
	callee := m.stack[calleeIndex]
	args := append([]value.Value(nil), m.stack[calleeIndex+1:]...)
	m.truncate(calleeIndex)
	fr.defers = append(fr.defers, deferredCall{callee: callee, args: args, spread: instr.B != 0, pos: pos})
	return nil
}

// ---- opcode dispatch for everything but RETURN/DEFER/EXIT ----

func (m *Machine) exec(ctx context.Context, fr *frame, instr bytecode.Instr, pos token.Position) error {
	switch instr.Op {
	case bytecode.NOP:
		// no-op

	case bytecode.POP:
		m.pop()

	case bytecode.NEGATE, bytecode.PLUS_NOOP, bytecode.NOT, bytecode.BITWISE_NOT:
		v, err := value.Unary(unaryToken(instr.Op), m.pop())
		if err != nil {
			return runtimeErrf(pos, "%s", err)
		}
		m.push(v)

	case bytecode.ADD, bytecode.SUBTRACT, bytecode.MULTIPLY, bytecode.DIVIDE, bytecode.REMAINDER,
		bytecode.BITWISE_AND, bytecode.BITWISE_OR, bytecode.BITWISE_XOR, bytecode.BIT_CLEAR,
		bytecode.LEFT_SHIFT, bytecode.RIGHT_SHIFT:
		y := m.pop()
		x := m.pop()
		v, err := value.Binary(binaryToken(instr.Op), x, y)
		if err != nil {
			return runtimeErrf(pos, "%s", err)
		}
		m.push(v)

	case bytecode.EQUAL, bytecode.NOT_EQUAL, bytecode.GREATER, bytecode.GREATER_EQUAL, bytecode.LESS, bytecode.LESS_EQUAL:
		y := m.pop()
		x := m.pop()
		v, err := value.Compare(compareToken(instr.Op), x, y)
		if err != nil {
			return runtimeErrf(pos, "%s", err)
		}
		m.push(v)

	case bytecode.JUMP, bytecode.FALLTHROUGH:
		fr.ip += int(instr.A)

	case bytecode.BACK_JUMP:
		fr.ip = (fr.ip - 1) - int(instr.A)

	case bytecode.IF_FALSE_JUMP:
		b, ok := m.peek().(value.Bool)
		if !ok {
			return runtimeErrf(pos, "non-bool value used as condition")
		}
		if !bool(b) {
			fr.ip += int(instr.A)
		}

	case bytecode.CALL:
		return m.execCall(ctx, instr, pos)

	case bytecode.PUSH_BOOL, bytecode.PUSH_STRING, bytecode.PUSH_INT_LITERAL, bytecode.PUSH_FLOAT_LITERAL:
		m.push(instr.Val)

	case bytecode.PUSH_FUNC:
		m.push(value.Func{Name: instr.Fn.Name})

	case bytecode.ARRAY_LITERAL:
		return m.execCompositeLiteral(instr, pos, true)
	case bytecode.SLICE_LITERAL:
		return m.execCompositeLiteral(instr, pos, false)

	case bytecode.VAR_GLOBAL:
		return m.execDeclGlobal(instr, pos, true)
	case bytecode.CONST_GLOBAL:
		return m.execDeclGlobal(instr, pos, false)

	case bytecode.GET_GLOBAL:
		slot, ok := m.globals.Get(instr.Str)
		if !ok {
			return runtimeErrf(pos, "undefined global %s", instr.Str)
		}
		m.push(slot.value)

	case bytecode.SET_GLOBAL:
		v := m.pop()
		slot, ok := m.globals.Get(instr.Str)
		if !ok {
			return runtimeErrf(pos, "undefined global %s", instr.Str)
		}
		if !slot.mutable {
			return runtimeErrf(pos, "cannot assign to const global %s", instr.Str)
		}
		slot.value = v
		m.globals.Put(instr.Str, slot)
		m.push(v)

	case bytecode.GET_LOCAL:
		m.push(m.stack[fr.stackBase+int(instr.A)])

	case bytecode.SET_LOCAL:
		v := m.pop()
		m.stack[fr.stackBase+int(instr.A)] = v
		m.push(v)

	case bytecode.GET_INDEX:
		idxV := m.pop()
		container := m.pop()
		v, err := m.getIndexed(container, idxV, pos)
		if err != nil {
			return err
		}
		m.push(v)

	case bytecode.GET_LOCAL_INDEX:
		idxV := m.pop()
		container := m.stack[fr.stackBase+int(instr.A)]
		v, err := m.getIndexed(container, idxV, pos)
		if err != nil {
			return err
		}
		m.push(v)

	case bytecode.GET_GLOBAL_INDEX:
		idxV := m.pop()
		slot, ok := m.globals.Get(instr.Str)
		if !ok {
			return runtimeErrf(pos, "undefined global %s", instr.Str)
		}
		v, err := m.getIndexed(slot.value, idxV, pos)
		if err != nil {
			return err
		}
		m.push(v)

	case bytecode.SET_INDEX:
		v := m.pop()
		idxV := m.pop()
		container := m.pop()
		nv, err := m.setIndexed(container, idxV, v, pos)
		if err != nil {
			return err
		}
		m.push(nv)

	case bytecode.SET_LOCAL_INDEX:
		v := m.pop()
		idxV := m.pop()
		container := m.stack[fr.stackBase+int(instr.A)]
		nv, err := m.setIndexed(container, idxV, v, pos)
		if err != nil {
			return err
		}
		m.push(nv)

	case bytecode.SET_GLOBAL_INDEX:
		v := m.pop()
		idxV := m.pop()
		slot, ok := m.globals.Get(instr.Str)
		if !ok {
			return runtimeErrf(pos, "undefined global %s", instr.Str)
		}
		nv, err := m.setIndexed(slot.value, idxV, v, pos)
		if err != nil {
			return err
		}
		m.push(nv)

	case bytecode.BLIND_LITERAL_CAST:
		v, err := value.ConvertTo(m.pop(), instr.Typ)
		if err != nil {
			return runtimeErrf(pos, "%s", err)
		}
		m.push(v)

	case bytecode.LOSE_SOFT_REFERENCE:
		m.push(copyIfArray(m.pop()))

	case bytecode.TYPE_VALIDATION:
		v, err := value.LoseLiteral(m.pop(), instr.Typ)
		if err != nil {
			return runtimeErrf(pos, "%s", err)
		}
		if !v.Type().Equal(instr.Typ) {
			return runtimeErrf(pos, "cannot use %s as %s", v.Type(), instr.Typ)
		}
		m.push(v)

	case bytecode.PUT_DEFAULT_VALUE:
		m.push(value.DefaultValue(instr.Typ))

	default:
		return runtimeErrf(pos, "internal error: unreachable opcode %s", instr.Op)
	}
	return nil
}

func (m *Machine) execDeclGlobal(instr bytecode.Instr, pos token.Position, mutable bool) error {
	v := copyIfArray(m.pop())
	if _, exists := m.globals.Get(instr.Str); exists {
		return runtimeErrf(pos, "global %s already declared", instr.Str)
	}
	m.globals.Put(instr.Str, globalSlot{value: v, mutable: mutable})
	return nil
}

func (m *Machine) execCompositeLiteral(instr bytecode.Instr, pos token.Position, isArray bool) error {
	n := int(instr.A)
	elemType := *instr.Typ.Elem

	var elems []value.Value
	if n == 0 {
		if isArray {
			elems = make([]value.Value, instr.Typ.Size)
			zero := value.DefaultValue(elemType)
			for i := range elems {
				elems[i] = zero
			}
		}
	} else {
		elems = make([]value.Value, n)
		for i := n - 1; i >= 0; i-- {
			v, err := value.LoseLiteral(m.pop(), elemType)
			if err != nil {
				return runtimeErrf(pos, "%s", err)
			}
			if !v.Type().Equal(elemType) {
				return runtimeErrf(pos, "composite literal element has type %s, want %s", v.Type(), elemType)
			}
			elems[i] = v
		}
	}

	if isArray {
		m.push(value.NewArray(elems, elemType))
	} else {
		m.push(value.NewSlice(elems, elemType))
	}
	return nil
}

// execCall implements Call(argc, spread) (§4.6): inspect the callee at
// stack_top-argc, dispatch to a user function or a builtin, and leave
// exactly one value on the stack (every call site either statement-pops it
// or consumes it as an expression operand).
func (m *Machine) execCall(ctx context.Context, instr bytecode.Instr, pos token.Position) error {
	argc := int(instr.A)
	calleeIndex := len(m.stack) - argc - 1
	if calleeIndex < 0 {
		return runtimeErrf(pos, "internal error: stack underflow preparing call")
	}
	callee := m.stack[calleeIndex]
	args := append([]value.Value(nil), m.stack[calleeIndex+1:]...)
	m.truncate(calleeIndex)

	results, err := m.invoke(ctx, callee, args, instr.B != 0, pos)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		m.push(value.Nil{})
	} else {
		m.push(results[0])
	}
	return nil
}

// invoke dispatches one call to a user function or a builtin, shared by
// execCall and by LIFO defer execution at return time.
func (m *Machine) invoke(ctx context.Context, callee value.Value, args []value.Value, spread bool, pos token.Position) ([]value.Value, error) {
	switch c := callee.(type) {
	case value.Func:
		fu, ok := m.functions[c.Name]
		if !ok {
			return nil, runtimeErrf(pos, "undefined function %s", c.Name)
		}
		finalArgs, err := m.prepareArgs(fu, args, spread, pos)
		if err != nil {
			return nil, err
		}
		stackBase := len(m.stack)
		for _, a := range finalArgs {
			m.push(a)
		}
		results, err := m.runFunc(ctx, fu, stackBase)
		m.truncate(stackBase)
		return results, err

	case value.FuncBuiltin:
		v, err := m.callBuiltin(c.Name, args, pos)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		return []value.Value{v}, nil

	default:
		return nil, runtimeErrf(pos, "value of type %s is not callable", callee.Type())
	}
}

// prepareArgs validates argc against fu's declared arity and, for a
// variadic function called without spread, packs the trailing arguments
// into a slice of the variadic parameter's element type. Each resulting
// array-typed argument is deep-copied (copy_if_soft_reference) before the
// callee sees it.
func (m *Machine) prepareArgs(fu *bytecode.FuncUnit, args []value.Value, spread bool, pos token.Position) ([]value.Value, error) {
	params := fu.Sig.Params
	arity := len(params)

	var final []value.Value
	switch {
	case !fu.Variadic || spread:
		if len(args) != arity {
			return nil, runtimeErrf(pos, "function %s expects %d argument(s), got %d", fu.Name, arity, len(args))
		}
		final = args

	default:
		keep := arity - 1
		if len(args) < keep {
			return nil, runtimeErrf(pos, "function %s expects at least %d argument(s), got %d", fu.Name, keep, len(args))
		}
		elemType := params[keep].Type
		trailing := make([]value.Value, len(args)-keep)
		for i, v := range args[keep:] {
			pv, err := value.LoseLiteral(v, elemType)
			if err != nil {
				return nil, runtimeErrf(pos, "argument %d of %s: %s", keep+i, fu.Name, err)
			}
			trailing[i] = pv
		}
		final = append(append([]value.Value(nil), args[:keep]...), value.NewSlice(trailing, elemType))
	}

	for i, v := range final {
		if i >= len(params) {
			break
		}
		pt := params[i].Type
		if params[i].Variadic {
			// already packed into (or passed as) a slice of the element type.
			pt = value.SliceOf(pt)
		}
		pv, err := value.LoseLiteral(v, pt)
		if err != nil {
			return nil, runtimeErrf(pos, "argument %d of %s: %s", i, fu.Name, err)
		}
		if !pv.Type().Equal(pt) {
			return nil, runtimeErrf(pos, "argument %d of %s: cannot use %s as %s", i, fu.Name, pv.Type(), pt)
		}
		v = pv
		if pt.Kind == value.KindArray {
			if arr, ok := v.(value.Array); ok {
				v = arr.Copy()
			}
		}
		final[i] = v
	}
	return final, nil
}

// ---- indexing helpers ----

func indexToInt(v value.Value) (int, error) {
	switch n := v.(type) {
	case value.IntLiteral:
		return int(n), nil
	case value.Int8:
		return int(n), nil
	case value.Int16:
		return int(n), nil
	case value.Int32:
		return int(n), nil
	case value.Int64:
		return int(n), nil
	case value.Int:
		return int(n), nil
	case value.Uint8:
		return int(n), nil
	case value.Uint16:
		return int(n), nil
	case value.Uint32:
		return int(n), nil
	case value.Uint64:
		return int(n), nil
	case value.Uint:
		return int(n), nil
	case value.Uintptr:
		return int(n), nil
	default:
		return 0, fmt.Errorf("non-integer index: %s", v.Type())
	}
}

func (m *Machine) getIndexed(container, idxV value.Value, pos token.Position) (value.Value, error) {
	idx, err := indexToInt(idxV)
	if err != nil {
		return nil, runtimeErrf(pos, "%s", err)
	}
	switch c := container.(type) {
	case value.Array:
		if idx < 0 || idx >= c.Len() {
			return nil, runtimeErrf(pos, "index %d out of range [0,%d)", idx, c.Len())
		}
		return c.Index(idx), nil
	case value.Slice:
		if idx < 0 || idx >= c.Len() {
			return nil, runtimeErrf(pos, "index %d out of range [0,%d)", idx, c.Len())
		}
		return c.Index(idx), nil
	default:
		return nil, runtimeErrf(pos, "cannot index value of type %s", container.Type())
	}
}

func (m *Machine) setIndexed(container, idxV, v value.Value, pos token.Position) (value.Value, error) {
	idx, err := indexToInt(idxV)
	if err != nil {
		return nil, runtimeErrf(pos, "%s", err)
	}
	switch c := container.(type) {
	case value.Array:
		if idx < 0 || idx >= c.Len() {
			return nil, runtimeErrf(pos, "index %d out of range [0,%d)", idx, c.Len())
		}
		pv, err := value.LoseLiteral(v, c.Elem)
		if err != nil {
			return nil, runtimeErrf(pos, "%s", err)
		}
		c.SetIndex(idx, pv)
		return pv, nil
	case value.Slice:
		if idx < 0 || idx >= c.Len() {
			return nil, runtimeErrf(pos, "index %d out of range [0,%d)", idx, c.Len())
		}
		pv, err := value.LoseLiteral(v, c.Elem)
		if err != nil {
			return nil, runtimeErrf(pos, "%s", err)
		}
		c.SetIndex(idx, pv)
		return pv, nil
	default:
		return nil, runtimeErrf(pos, "cannot index value of type %s", container.Type())
	}
}

// copyIfArray applies the "lose soft reference" rule: arrays are
// value-typed at the language level but reference-typed in representation,
// so every store point deep-copies an array handle; slices keep aliasing.
func copyIfArray(v value.Value) value.Value {
	if arr, ok := v.(value.Array); ok {
		return arr.Copy()
	}
	return v
}

// ---- opcode-to-operator-token mapping ----

func unaryToken(op bytecode.Opcode) token.Token {
	switch op {
	case bytecode.NEGATE:
		return token.MINUS
	case bytecode.PLUS_NOOP:
		return token.PLUS
	case bytecode.NOT:
		return token.NOT
	case bytecode.BITWISE_NOT:
		return token.CIRCUMFLEX
	default:
		return token.ILLEGAL
	}
}

func binaryToken(op bytecode.Opcode) token.Token {
	switch op {
	case bytecode.ADD:
		return token.PLUS
	case bytecode.SUBTRACT:
		return token.MINUS
	case bytecode.MULTIPLY:
		return token.STAR
	case bytecode.DIVIDE:
		return token.SLASH
	case bytecode.REMAINDER:
		return token.PERCENT
	case bytecode.BITWISE_AND:
		return token.AMPERSAND
	case bytecode.BITWISE_OR:
		return token.PIPE
	case bytecode.BITWISE_XOR:
		return token.CIRCUMFLEX
	case bytecode.BIT_CLEAR:
		return token.AMPCARET
	case bytecode.LEFT_SHIFT:
		return token.LTLT
	case bytecode.RIGHT_SHIFT:
		return token.GTGT
	default:
		return token.ILLEGAL
	}
}

func compareToken(op bytecode.Opcode) token.Token {
	switch op {
	case bytecode.EQUAL:
		return token.EQ
	case bytecode.NOT_EQUAL:
		return token.NEQ
	case bytecode.GREATER:
		return token.GT
	case bytecode.GREATER_EQUAL:
		return token.GE
	case bytecode.LESS:
		return token.LT
	case bytecode.LESS_EQUAL:
		return token.LE
	default:
		return token.ILLEGAL
	}
}
