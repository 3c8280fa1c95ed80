package compiler

import (
	"github.com/mna/gobc/lang/bytecode"
	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/value"
)

func (c *Compiler) consumeSemi() { c.match(token.SEMI) }

func (c *Compiler) packageDecl() {
	if !c.match(token.PACKAGE) {
		c.errorAtCurrent("expected 'package' declaration")
		return
	}
	nameTok := c.cur
	c.expect(token.IDENT, "expected package name")
	c.packageName = nameTok.Lit
	c.sawPackage = true
	c.consumeSemi()
}

// topLevelDecl compiles one package-level declaration: a func, var, or
// const decl. Anything else is a syntax error recovered via synchronize.
func (c *Compiler) topLevelDecl() {
	switch {
	case c.match(token.FUNC):
		c.funcDecl(true)
		c.consumeSemi()
	case c.match(token.VAR):
		c.varDecl(true)
		c.consumeSemi()
	case c.match(token.CONST):
		c.constDecl(true)
		c.consumeSemi()
	default:
		c.errorAtCurrent("expected a top-level declaration")
		c.advance()
	}
	if c.panicking {
		c.synchronize()
	}
}

// varDecl compiles "NAME [TYPE] [= EXPR]". At package scope the binding is
// installed with VAR_GLOBAL; inside a function it becomes a new local slot
// directly at its current stack position.
func (c *Compiler) varDecl(isGlobal bool) {
	nameTok := c.cur
	c.expect(token.IDENT, "expected variable name")
	name := nameTok.Lit

	var typ value.Type
	hasType := false
	if !c.check(token.ASSIGN) {
		typ = c.typeExpr()
		hasType = true
	}

	switch {
	case c.match(token.ASSIGN):
		c.expression()
		if hasType {
			c.emitAtPrev(bytecode.Instr{Op: bytecode.TYPE_VALIDATION, Typ: typ})
		}
	case hasType:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.PUT_DEFAULT_VALUE, Typ: typ})
	default:
		c.errorAtCurrent("var declaration needs a type or an initializer")
		return
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.LOSE_SOFT_REFERENCE})

	if isGlobal {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.VAR_GLOBAL, Str: name})
		return
	}
	if c.unit.sc.hasDefined(name) {
		c.errorf("%s already declared in this scope", name)
	}
	c.unit.sc.addVar(name)
	c.unit.sc.initLast()
}

// constDecl compiles "NAME [TYPE] = EXPR"; unlike var, an initializer is
// mandatory.
func (c *Compiler) constDecl(isGlobal bool) {
	nameTok := c.cur
	c.expect(token.IDENT, "expected constant name")
	name := nameTok.Lit

	var typ value.Type
	hasType := false
	if !c.check(token.ASSIGN) {
		typ = c.typeExpr()
		hasType = true
	}
	c.expect(token.ASSIGN, "const declaration requires an initializer")
	c.expression()
	if hasType {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.TYPE_VALIDATION, Typ: typ})
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.LOSE_SOFT_REFERENCE})

	if isGlobal {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.CONST_GLOBAL, Str: name})
		return
	}
	if c.unit.sc.hasDefined(name) {
		c.errorf("%s already declared in this scope", name)
	}
	c.unit.sc.addConst(name)
	c.unit.sc.initLast()
}

// funcDecl compiles a function declaration, pushing a fresh unitState for
// its body and registering the resulting FuncUnit in the function table.
// The function's own name is then bound like a const, holding a value.Func
// indirection the VM's CALL opcode dereferences through that table. Nested
// function declarations are supported as plain local const bindings; their
// bodies see only their own parameters and locals; there is no closure
// capture of the enclosing function's locals.
func (c *Compiler) funcDecl(isGlobal bool) {
	nameTok := c.cur
	c.expect(token.IDENT, "expected function name")
	name := nameTok.Lit
	if isGlobal && name == "main" {
		c.mainFound = true
	}

	fu := &bytecode.FuncUnit{Name: name}
	ft := &value.FuncType{}

	enclosing := c.unit
	c.unit = &unitState{enclosing: enclosing, fn: fu, chunk: &fu.Chunk, sc: &scope{}, cf: newControlFlow(), funcType: ft}

	c.expect(token.LPAREN, "expected '(' after function name")
	for !c.check(token.RPAREN) {
		pnameTok := c.cur
		c.expect(token.IDENT, "expected parameter name")
		variadic := c.match(token.ELLIPSIS)
		ptyp := c.typeExpr()

		fu.Params = append(fu.Params, bytecode.Binding{Name: pnameTok.Lit, Pos: pnameTok.Pos})
		ft.Params = append(ft.Params, value.Param{Type: ptyp, Variadic: variadic})
		c.unit.sc.addVar(pnameTok.Lit)
		c.unit.sc.initLast()
		if variadic {
			fu.Variadic = true
		}
		if !c.match(token.COMMA) {
			break
		}
	}
	c.expect(token.RPAREN, "expected ')' after parameters")

	if c.isTypeStart() {
		ft.Results = append(ft.Results, c.typeExpr())
	}
	if isGlobal && name == "main" && (len(ft.Params) != 0 || len(ft.Results) != 0) {
		c.errorf("func main must take no parameters and return no value")
	}

	c.expect(token.LBRACE, "expected '{' to start function body")
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declOrStmt()
	}
	c.expect(token.RBRACE, "expected '}' to close function body")
	c.emitAtPrev(bytecode.Instr{Op: bytecode.RETURN, A: 0})

	fu.NumLocals = c.unit.sc.maxSlots()
	fu.Sig = ft

	c.functions[name] = fu
	c.funcOrder = append(c.funcOrder, fu)
	c.unit = enclosing

	c.emitAtPrev(bytecode.Instr{Op: bytecode.PUSH_FUNC, Fn: fu, Typ: value.FuncOf(ft)})
	if isGlobal {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.CONST_GLOBAL, Str: name})
		return
	}
	if c.unit.sc.hasDefined(name) {
		c.errorf("%s already declared in this scope", name)
	}
	c.unit.sc.addConst(name)
	c.unit.sc.initLast()
}
