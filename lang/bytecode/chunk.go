package bytecode

import (
	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/value"
)

// Chunk is the ordered list of instructions (with positions) forming the
// body of a compilation unit.
type Chunk struct {
	Code []Instr
	Pos  []token.Position
}

// Emit appends instr at position pos and returns its index.
func (c *Chunk) Emit(instr Instr, pos token.Position) int {
	c.Code = append(c.Code, instr)
	c.Pos = append(c.Pos, pos)
	return len(c.Code) - 1
}

// Len returns the number of instructions currently in the chunk.
func (c *Chunk) Len() int { return len(c.Code) }

// Last returns the most recently emitted instruction. Len must be > 0.
func (c *Chunk) Last() Instr { return c.Code[len(c.Code)-1] }

// PopLast removes and returns the most recently emitted instruction, used by
// the compiler to fuse a preceding GET_LOCAL/GET_GLOBAL into an indexed
// opcode once it discovers a following '[' subscript.
func (c *Chunk) PopLast() Instr {
	instr := c.Code[len(c.Code)-1]
	c.Code = c.Code[:len(c.Code)-1]
	c.Pos = c.Pos[:len(c.Pos)-1]
	return instr
}

// PatchJump rewrites the operand of the jump instruction at idx so that it
// jumps to the chunk's current end (a forward jump target).
func (c *Chunk) PatchJump(idx int) {
	offset := int32(len(c.Code) - idx - 1)
	c.Code[idx].A = offset
}

// Binding names one parameter or local, purely for diagnostics/disasm.
type Binding struct {
	Name string
	Pos  token.Position
}

// FuncUnit is a compilation unit for a function body: its own chunk plus
// enough metadata for the VM to set up a call frame.
type FuncUnit struct {
	Name      string
	Params    []Binding
	Variadic  bool
	NumLocals int // total local slots reserved (including params)
	Chunk     Chunk
	Sig       *value.FuncType // declared signature, used by the VM for argument/return checks
}

// PackageUnit is the compilation unit for package-level code: global
// var/const initializers in declaration order, followed by the entry-point
// dispatch glue.
type PackageUnit struct {
	Name  string
	Chunk Chunk
}

// Program is the result of compiling one source file: the package unit plus
// every function unit reachable from it (used by disassembly/tooling; the
// VM itself reaches functions through the global function table).
type Program struct {
	Package   *PackageUnit
	Functions []*FuncUnit
}
