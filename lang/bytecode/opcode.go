// Package bytecode defines the closed opcode ISA (§4.5) shared by the
// compiler (producer) and the VM (consumer). Branch targets are encoded as
// positive relative offsets: a forward jump's offset is added to the index
// of the instruction that follows it, and BACK_JUMP's offset is subtracted
// from the index of the BACK_JUMP itself.
package bytecode

import "github.com/mna/gobc/lang/value"

// Opcode identifies one VM instruction.
type Opcode uint8

//nolint:revive
const (
	NOP Opcode = iota
	POP

	// unary arithmetic
	NEGATE
	PLUS_NOOP
	NOT
	BITWISE_NOT

	// binary arithmetic
	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	REMAINDER
	BITWISE_AND
	BITWISE_OR
	BITWISE_XOR
	BIT_CLEAR
	LEFT_SHIFT
	RIGHT_SHIFT

	// comparisons
	EQUAL
	NOT_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// branches
	JUMP
	BACK_JUMP
	IF_FALSE_JUMP

	// switch
	SWITCH
	CASE_JUMP
	DEFAULT_CASE_JUMP
	DEFAULT_JUMP
	CASE_BREAK_JUMP
	DO_CASE_BREAK_JUMP
	FALLTHROUGH

	// call / return
	CALL
	RETURN

	// constants
	PUSH_BOOL
	PUSH_STRING
	PUSH_INT_LITERAL
	PUSH_FLOAT_LITERAL
	PUSH_FUNC
	ARRAY_LITERAL
	SLICE_LITERAL

	// globals
	VAR_GLOBAL
	CONST_GLOBAL
	GET_GLOBAL
	SET_GLOBAL

	// locals
	GET_LOCAL
	SET_LOCAL

	// indexing
	GET_INDEX
	GET_LOCAL_INDEX
	GET_GLOBAL_INDEX
	SET_INDEX
	SET_LOCAL_INDEX
	SET_GLOBAL_INDEX

	// coercions
	BLIND_LITERAL_CAST
	VARIADIC_SLICE_CAST
	LOSE_SOFT_REFERENCE
	TYPE_VALIDATION
	PUT_DEFAULT_VALUE

	// defer
	DEFER

	EXIT

	maxOpcode
)

var names = [...]string{
	NOP:                  "nop",
	POP:                  "pop",
	NEGATE:               "negate",
	PLUS_NOOP:            "plus_noop",
	NOT:                  "not",
	BITWISE_NOT:          "bitwise_not",
	ADD:                  "add",
	SUBTRACT:             "subtract",
	MULTIPLY:             "multiply",
	DIVIDE:               "divide",
	REMAINDER:            "remainder",
	BITWISE_AND:          "bitwise_and",
	BITWISE_OR:           "bitwise_or",
	BITWISE_XOR:          "bitwise_xor",
	BIT_CLEAR:            "bit_clear",
	LEFT_SHIFT:           "left_shift",
	RIGHT_SHIFT:          "right_shift",
	EQUAL:                "equal",
	NOT_EQUAL:            "not_equal",
	GREATER:              "greater",
	GREATER_EQUAL:        "greater_equal",
	LESS:                 "less",
	LESS_EQUAL:           "less_equal",
	JUMP:                 "jump",
	BACK_JUMP:            "back_jump",
	IF_FALSE_JUMP:        "if_false_jump",
	SWITCH:               "switch",
	CASE_JUMP:            "case_jump",
	DEFAULT_CASE_JUMP:    "default_case_jump",
	DEFAULT_JUMP:         "default_jump",
	CASE_BREAK_JUMP:      "case_break_jump",
	DO_CASE_BREAK_JUMP:   "do_case_break_jump",
	FALLTHROUGH:          "fallthrough",
	CALL:                 "call",
	RETURN:               "return",
	PUSH_BOOL:            "push_bool",
	PUSH_STRING:          "push_string",
	PUSH_INT_LITERAL:     "push_int_literal",
	PUSH_FLOAT_LITERAL:   "push_float_literal",
	PUSH_FUNC:            "push_func",
	ARRAY_LITERAL:        "array_literal",
	SLICE_LITERAL:        "slice_literal",
	VAR_GLOBAL:           "var_global",
	CONST_GLOBAL:         "const_global",
	GET_GLOBAL:           "get_global",
	SET_GLOBAL:           "set_global",
	GET_LOCAL:            "get_local",
	SET_LOCAL:            "set_local",
	GET_INDEX:            "get_index",
	GET_LOCAL_INDEX:      "get_local_index",
	GET_GLOBAL_INDEX:     "get_global_index",
	SET_INDEX:            "set_index",
	SET_LOCAL_INDEX:      "set_local_index",
	SET_GLOBAL_INDEX:     "set_global_index",
	BLIND_LITERAL_CAST:   "blind_literal_cast",
	VARIADIC_SLICE_CAST:  "variadic_slice_cast",
	LOSE_SOFT_REFERENCE:  "lose_soft_reference",
	TYPE_VALIDATION:      "type_validation",
	PUT_DEFAULT_VALUE:    "put_default_value",
	DEFER:                "defer",
	EXIT:                 "exit",
}

func (op Opcode) String() string {
	if op < maxOpcode && names[op] != "" {
		return names[op]
	}
	return "illegal opcode"
}

// IsJump reports whether op carries a relative jump offset operand.
func IsJump(op Opcode) bool {
	switch op {
	case JUMP, BACK_JUMP, IF_FALSE_JUMP, CASE_JUMP, DEFAULT_CASE_JUMP, DEFAULT_JUMP, CASE_BREAK_JUMP, FALLTHROUGH:
		return true
	default:
		return false
	}
}

// Instr is a single emitted instruction: an opcode, its operand (meaning
// depends on the opcode; zero if unused), and the source position it was
// compiled from.
type Instr struct {
	Op  Opcode
	A   int32   // generic integer operand: slot index, jump offset, argc, count...
	B    int32  // secondary integer operand (e.g. depth, spread flag)
	Str string  // name operand (global/function name) or string constant
	Val value.Value // constant value operand (Bool/String/IntLiteral/FloatLiteral)
	Typ value.Type  // type operand (for type-carrying opcodes)
	Fn  *FuncUnit   // function constant operand (PUSH_FUNC)
}
