package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes a human-readable listing of chunk to w, one
// instruction per line. It is a debugging aid only; no on-disk bytecode
// format is defined (bytecode is never persisted between runs).
func Disassemble(w io.Writer, name string, c *Chunk) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for i, instr := range c.Code {
		fmt.Fprintf(w, "%04d %-20s", i, instr.Op)
		switch instr.Op {
		case JUMP, BACK_JUMP, IF_FALSE_JUMP, CASE_JUMP, DEFAULT_CASE_JUMP, DEFAULT_JUMP, CASE_BREAK_JUMP, FALLTHROUGH:
			fmt.Fprintf(w, " -> %d", resolveJumpTarget(instr, i))
		case GET_LOCAL, SET_LOCAL, GET_LOCAL_INDEX, SET_LOCAL_INDEX:
			fmt.Fprintf(w, " slot=%d", instr.A)
		case GET_GLOBAL, SET_GLOBAL, GET_GLOBAL_INDEX, SET_GLOBAL_INDEX, VAR_GLOBAL, CONST_GLOBAL:
			fmt.Fprintf(w, " %s", instr.Str)
		case PUSH_BOOL, PUSH_STRING, PUSH_INT_LITERAL, PUSH_FLOAT_LITERAL:
			if instr.Val != nil {
				fmt.Fprintf(w, " %s", instr.Val.String())
			}
		case PUSH_FUNC:
			if instr.Fn != nil {
				fmt.Fprintf(w, " <func %s>", instr.Fn.Name)
			}
		case CALL:
			fmt.Fprintf(w, " argc=%d spread=%t", instr.A, instr.B != 0)
		case RETURN:
			fmt.Fprintf(w, " count=%d", instr.A)
		case ARRAY_LITERAL, SLICE_LITERAL:
			fmt.Fprintf(w, " n=%d %s", instr.A, instr.Typ)
		}
		fmt.Fprintln(w)
	}
}

func resolveJumpTarget(instr Instr, at int) int {
	if instr.Op == BACK_JUMP {
		return at - int(instr.A)
	}
	return at + int(instr.A) + 1
}

// DisassembleProgram writes the full program (package unit plus every
// function unit) to w.
func DisassembleProgram(w io.Writer, p *Program) {
	Disassemble(w, "package "+p.Package.Name, &p.Package.Chunk)
	for _, fn := range p.Functions {
		Disassemble(w, "func "+fn.Name, &fn.Chunk)
	}
}
