// Package compiler implements the single forward pass over the lexeme
// stream that folds lexical analysis (via lang/lexer), precedence parsing,
// scope resolution, control-flow jump patching, and bytecode emission into
// one sweep, per §4 of the specification. There is no separate
// abstract-syntax-tree phase: each expression and statement is compiled
// directly to bytecode.Instr values as it is recognized.
package compiler

import (
	"fmt"

	"github.com/mna/gobc/lang/bytecode"
	"github.com/mna/gobc/lang/lexer"
	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/value"
)

// unitState is the compiler state for one compilation unit (the package
// body, or a single function body). Units nest: compiling a function
// declaration pushes a new unitState and pops it when the function body is
// done, the way the teacher's fcomp/pcomp split works, collapsed here into
// a single struct since there is no separate CFG-linearization pass.
type unitState struct {
	enclosing *unitState

	fn    *bytecode.FuncUnit // nil for the package unit
	chunk *bytecode.Chunk

	sc *scope
	cf *controlFlow

	funcType *value.FuncType // declared signature, only set for function units
}

// Compiler drives the single-pass compilation of one source file.
type Compiler struct {
	lex lexer.Scanner

	prev, cur lexer.Lexeme

	errs      token.ErrorList
	panicking bool

	unit *unitState

	pkg         *bytecode.PackageUnit
	packageName string
	sawPackage  bool

	functions map[string]*bytecode.FuncUnit
	funcOrder []*bytecode.FuncUnit

	mainFound bool

	switchCtxs []*switchCtx
}

// switchCtx tracks the one pending fallthrough jump (if any) for the
// innermost switch statement being compiled, plus the position to blame if
// it is never patched (fallthrough in the textually last clause).
type switchCtx struct {
	pending    int
	pendingPos token.Position
}

// Result is the output of a successful (error-free) compilation.
type Result struct {
	Program   *bytecode.Program
	Functions map[string]*bytecode.FuncUnit
}

// CompileSource compiles one source file's bytes into a Program. Lex and
// compile errors are batched; if any are returned, Result is nil and the
// program must not be run (§7 propagation policy).
func CompileSource(filename string, src []byte) (*Result, error) {
	c := &Compiler{
		functions: make(map[string]*bytecode.FuncUnit),
	}
	c.lex.Init(src, c.errs.Add)
	c.pkg = &bytecode.PackageUnit{}
	c.unit = &unitState{chunk: &c.pkg.Chunk, sc: &scope{}, cf: newControlFlow()}

	c.advance()
	c.packageDecl()
	for !c.check(token.EOF) {
		c.topLevelDecl()
	}

	if !c.mainFound && c.packageName == "main" {
		c.errorAtCurrent("package main has no function named main")
	}

	if c.errs.Err() != nil {
		c.errs.Sort()
		return nil, c.errs.Err()
	}

	c.entryGlue()
	c.pkg.Name = c.packageName

	prog := &bytecode.Program{Package: c.pkg, Functions: c.funcOrder}
	return &Result{Program: prog, Functions: c.functions}, nil
}

func (c *Compiler) entryGlue() {
	pos := token.Position{}
	c.emit(bytecode.Instr{Op: bytecode.GET_GLOBAL, Str: "main"}, pos)
	c.emit(bytecode.Instr{Op: bytecode.CALL, A: 0, B: 0}, pos)
	c.emit(bytecode.Instr{Op: bytecode.EXIT}, pos)
}

// ---- token stream plumbing ----

func (c *Compiler) advance() {
	c.prev = c.cur
	c.cur = c.lex.Scan()
}

func (c *Compiler) check(t token.Token) bool { return c.cur.Tok == t }

func (c *Compiler) match(t token.Token) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) expect(t token.Token, msg string) {
	if c.check(t) {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.cur, msg) }
func (c *Compiler) errorAtPrev(msg string)    { c.errorAt(c.prev, msg) }

func (c *Compiler) errorAt(lx lexer.Lexeme, msg string) {
	if c.panicking {
		return
	}
	c.panicking = true
	c.errs.Add(lx.Pos, msg)
}

func (c *Compiler) errorf(format string, args ...any) {
	c.errorAtPrev(fmt.Sprintf(format, args...))
}

// synchronize implements the parse-error recovery rule: advance until a
// Semicolon or a statement-starting keyword.
func (c *Compiler) synchronize() {
	c.panicking = false
	for !c.check(token.EOF) {
		if c.prev.Tok == token.SEMI {
			return
		}
		switch c.cur.Tok {
		case token.STRUCT, token.FUNC, token.VAR, token.IF, token.FOR, token.RETURN:
			return
		}
		c.advance()
	}
}

// ---- emission helpers ----

func (c *Compiler) emit(instr bytecode.Instr, pos token.Position) int {
	return c.unit.chunk.Emit(instr, pos)
}

func (c *Compiler) emitAtPrev(instr bytecode.Instr) int {
	return c.emit(instr, c.prev.Pos)
}

func (c *Compiler) emitJump(op bytecode.Opcode) int {
	return c.emitAtPrev(bytecode.Instr{Op: op})
}

func (c *Compiler) patchJump(idx int) { c.unit.chunk.PatchJump(idx) }

// emitBackJump emits a BACK_JUMP targeting the absolute instruction index
// target.
func (c *Compiler) emitBackJump(target int) {
	at := c.unit.chunk.Len()
	offset := int32(at - target)
	c.emitAtPrev(bytecode.Instr{Op: bytecode.BACK_JUMP, A: offset})
}

func (c *Compiler) here() int { return c.unit.chunk.Len() }
