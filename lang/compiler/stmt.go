package compiler

import (
	"github.com/mna/gobc/lang/bytecode"
	"github.com/mna/gobc/lang/lexer"
	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/value"
)

// declOrStmt compiles one body statement, which may itself be a local
// var/const/func declaration.
func (c *Compiler) declOrStmt() {
	switch {
	case c.match(token.VAR):
		c.varDecl(false)
		c.consumeSemi()
	case c.match(token.CONST):
		c.constDecl(false)
		c.consumeSemi()
	case c.match(token.FUNC):
		c.funcDecl(false)
		c.consumeSemi()
	default:
		c.statement()
	}
	if c.panicking {
		c.synchronize()
	}
}

func (c *Compiler) statement() {
	switch {
	case c.check(token.LBRACE):
		c.block()
	case c.match(token.IF):
		c.ifStmt()
	case c.match(token.FOR):
		c.forStmt()
	case c.match(token.SWITCH):
		c.switchStmt()
	case c.match(token.BREAK):
		c.breakStmt()
	case c.match(token.CONTINUE):
		c.continueStmt()
	case c.match(token.FALLTHROUGH):
		c.fallthroughStmt()
	case c.match(token.RETURN):
		c.returnStmt()
	case c.match(token.DEFER):
		c.deferStmt()
	case c.match(token.SEMI):
		// empty statement
	default:
		c.simpleStmt()
		c.consumeSemi()
	}
}

// block compiles "{ declOrStmt* }", opening and closing its own lexical
// scope and popping every local it declared on the way out.
func (c *Compiler) block() {
	c.expect(token.LBRACE, "expected '{'")
	c.unit.sc.begin()
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declOrStmt()
	}
	c.expect(token.RBRACE, "expected '}'")
	c.popScope()
}

func (c *Compiler) popScope() {
	n := c.unit.sc.end()
	for i := 0; i < n; i++ {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	}
}

// ---- simple statements: expression statements and assignment forms ----

func isCompoundAssignOp(t token.Token) bool {
	switch t {
	case token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ, token.PERCENT_EQ,
		token.AMP_EQ, token.PIPE_EQ, token.CARET_EQ, token.LTLT_EQ, token.GTGT_EQ, token.AMPCARET_EQ:
		return true
	default:
		return false
	}
}

func compoundOpInstr(t token.Token) bytecode.Instr {
	switch t {
	case token.PLUS_EQ:
		return bytecode.Instr{Op: bytecode.ADD}
	case token.MINUS_EQ:
		return bytecode.Instr{Op: bytecode.SUBTRACT}
	case token.STAR_EQ:
		return bytecode.Instr{Op: bytecode.MULTIPLY}
	case token.SLASH_EQ:
		return bytecode.Instr{Op: bytecode.DIVIDE}
	case token.PERCENT_EQ:
		return bytecode.Instr{Op: bytecode.REMAINDER}
	case token.AMP_EQ:
		return bytecode.Instr{Op: bytecode.BITWISE_AND}
	case token.PIPE_EQ:
		return bytecode.Instr{Op: bytecode.BITWISE_OR}
	case token.CARET_EQ:
		return bytecode.Instr{Op: bytecode.BITWISE_XOR}
	case token.LTLT_EQ:
		return bytecode.Instr{Op: bytecode.LEFT_SHIFT}
	case token.GTGT_EQ:
		return bytecode.Instr{Op: bytecode.RIGHT_SHIFT}
	case token.AMPCARET_EQ:
		return bytecode.Instr{Op: bytecode.BIT_CLEAR}
	default:
		return bytecode.Instr{Op: bytecode.NOP}
	}
}

func (c *Compiler) simpleStmt() {
	if !c.check(token.IDENT) {
		c.expression()
		c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
		return
	}
	firstTok := c.cur
	c.advance()
	c.simpleStmtFromIdent(firstTok)
}

// simpleStmtFromIdent compiles a simple statement whose leading identifier
// has already been consumed (firstTok == c.prev at the point of the call).
// It covers plain calls, increment/decrement, index assignment, single and
// parallel assignment, short variable declaration, and bare identifier
// expression statements.
func (c *Compiler) simpleStmtFromIdent(firstTok lexer.Lexeme) {
	if c.check(token.INC) || c.check(token.DEC) {
		op := c.cur.Tok
		c.advance()
		c.emitIncDec(firstTok.Lit, op)
		return
	}
	if c.check(token.LPAREN) {
		variable(c)
		c.finishPrecedence(precOr)
		c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
		return
	}
	if c.check(token.LBRACK) {
		c.indexAssign(firstTok.Lit)
		return
	}

	targets := []string{firstTok.Lit}
	for c.match(token.COMMA) {
		tok := c.cur
		c.expect(token.IDENT, "expected identifier in assignment list")
		targets = append(targets, tok.Lit)
	}

	switch {
	case c.match(token.DEFINE):
		c.shortVarDecl(targets)
	case c.match(token.ASSIGN):
		c.parallelAssign(targets)
	case len(targets) == 1 && isCompoundAssignOp(c.cur.Tok):
		op := c.cur.Tok
		c.advance()
		c.compoundAssign(targets[0], op)
	case len(targets) == 1:
		variable(c)
		c.finishPrecedence(precOr)
		c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	default:
		c.errorAtCurrent("expected '=' or ':=' in multi-value assignment")
	}
}

func (c *Compiler) emitIncDec(name string, op token.Token) {
	slot, mutable, isLocal := c.unit.sc.resolve(name)
	if isLocal && !mutable {
		c.errorf("cannot assign to %s (declared const)", name)
	}
	if isLocal {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(slot)})
	} else {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_GLOBAL, Str: name})
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.PUSH_INT_LITERAL, Val: value.IntLiteral(1)})
	if op == token.INC {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.ADD})
	} else {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.SUBTRACT})
	}
	if isLocal {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.SET_LOCAL, A: int32(slot)})
	} else {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.SET_GLOBAL, Str: name})
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
}

func (c *Compiler) compoundAssign(name string, op token.Token) {
	slot, mutable, isLocal := c.unit.sc.resolve(name)
	if isLocal && !mutable {
		c.errorf("cannot assign to %s (declared const)", name)
	}
	if isLocal {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(slot)})
	} else {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_GLOBAL, Str: name})
	}
	c.expression()
	c.emitAtPrev(compoundOpInstr(op))
	if isLocal {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.SET_LOCAL, A: int32(slot)})
	} else {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.SET_GLOBAL, Str: name})
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
}

// shortVarDecl compiles "a, b := expr, expr", binding each freshly-computed
// value as a new local slot in left-to-right order.
func (c *Compiler) shortVarDecl(targets []string) {
	for i, name := range targets {
		c.expression()
		c.emitAtPrev(bytecode.Instr{Op: bytecode.LOSE_SOFT_REFERENCE})
		if c.unit.sc.hasDefined(name) {
			c.errorf("%s already declared in this scope", name)
		}
		c.unit.sc.addVar(name)
		c.unit.sc.initLast()
		if i != len(targets)-1 {
			c.expect(token.COMMA, "expected ',' between values")
		}
	}
}

// parallelAssign compiles "a, b = expr, expr" (including the single-target
// case): every right-hand expression is evaluated before any assignment
// takes place, so a swap like "a, b = b, a" sees the old values on both
// sides.
func (c *Compiler) parallelAssign(targets []string) {
	for i := range targets {
		c.expression()
		if i != len(targets)-1 {
			c.expect(token.COMMA, "expected ',' between assignment values")
		}
	}
	for i := len(targets) - 1; i >= 0; i-- {
		name := targets[i]
		c.emitAtPrev(bytecode.Instr{Op: bytecode.LOSE_SOFT_REFERENCE})
		if slot, mutable, ok := c.unit.sc.resolve(name); ok {
			if !mutable {
				c.errorf("cannot assign to %s (declared const)", name)
			}
			c.emitAtPrev(bytecode.Instr{Op: bytecode.SET_LOCAL, A: int32(slot)})
		} else {
			c.emitAtPrev(bytecode.Instr{Op: bytecode.SET_GLOBAL, Str: name})
		}
		c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	}
}

// indexAssign compiles "name[index] = expr", "name[index] OP= expr", or a
// bare "name[index]" expression statement. The index value is cached in a
// hidden temporary local slot (there is no stack-duplicate opcode) so a
// compound assignment can read it, combine it, and store back without
// re-evaluating a possibly side-effecting index expression twice.
func (c *Compiler) indexAssign(name string) {
	c.expect(token.LBRACK, "expected '['")
	c.expression()
	c.expect(token.RBRACK, "expected ']'")

	tmp := c.unit.sc.addVar("$index")
	c.unit.sc.initLast()

	slot, _, isLocal := c.unit.sc.resolve(name)

	switch {
	case c.match(token.ASSIGN):
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(tmp)})
		c.expression()
		c.emitAtPrev(bytecode.Instr{Op: bytecode.LOSE_SOFT_REFERENCE})
		c.storeIndexed(isLocal, slot, name)
	case isCompoundAssignOp(c.cur.Tok):
		op := c.cur.Tok
		c.advance()
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(tmp)})
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(tmp)})
		c.loadIndexed(isLocal, slot, name)
		c.expression()
		c.emitAtPrev(compoundOpInstr(op))
		c.storeIndexed(isLocal, slot, name)
	default:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(tmp)})
		c.loadIndexed(isLocal, slot, name)
		c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	}

	c.unit.sc.dropLast()
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
}

func (c *Compiler) loadIndexed(isLocal bool, slot int, name string) {
	if isLocal {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL_INDEX, A: int32(slot)})
	} else {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_GLOBAL_INDEX, Str: name})
	}
}

func (c *Compiler) storeIndexed(isLocal bool, slot int, name string) {
	if isLocal {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.SET_LOCAL_INDEX, A: int32(slot)})
	} else {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.SET_GLOBAL_INDEX, Str: name})
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
}

// ---- if ----

func (c *Compiler) ifStmt() {
	c.expression()
	elseJump := c.emitJump(bytecode.IF_FALSE_JUMP)
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	c.block()
	endJump := c.emitJump(bytecode.JUMP)

	c.patchJump(elseJump)
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	if c.match(token.ELSE) {
		if c.check(token.IF) {
			c.advance()
			c.ifStmt()
		} else {
			c.block()
		}
	}
	c.patchJump(endJump)
}

// ---- for ----

func (c *Compiler) forStmt() {
	c.unit.sc.begin()

	switch {
	case c.check(token.LBRACE):
		c.forInfinite()
	case c.check(token.IDENT):
		firstTok := c.cur
		c.advance()
		names := []string{firstTok.Lit}
		for c.check(token.COMMA) {
			c.advance()
			tok := c.cur
			c.expect(token.IDENT, "expected identifier")
			names = append(names, tok.Lit)
		}
		switch {
		case len(names) > 1 || c.check(token.DEFINE) || c.check(token.ASSIGN):
			isDefine := c.check(token.DEFINE)
			if !isDefine && !c.check(token.ASSIGN) {
				c.errorAtCurrent("expected '=' or ':=' after identifier list")
			}
			c.advance()
			if c.match(token.RANGE) {
				c.forRange(names, isDefine)
			} else {
				c.forClassicAfterAssignOp(names, isDefine)
			}
		case c.check(token.INC) || c.check(token.DEC) || isCompoundAssignOp(c.cur.Tok) ||
			c.check(token.LPAREN) || c.check(token.LBRACK):
			c.forClassic(firstTok)
		default:
			c.forConditional(firstTok)
		}
	default:
		c.forConditional(lexer.Lexeme{})
	}

	c.popScope()
}

func (c *Compiler) forInfinite() {
	loopStart := c.here()
	c.unit.cf.enterLoop(loopStart)
	c.block()
	c.emitBackJump(loopStart)
	for _, idx := range c.unit.cf.exitLoop() {
		c.patchJump(idx)
	}
}

// forConditional compiles "for COND { body }". If firstIdent carries an
// IDENT token, it has already been consumed as COND's leading token and is
// replayed through the variable() prefix rule instead of being re-scanned.
func (c *Compiler) forConditional(firstIdent lexer.Lexeme) {
	loopStart := c.here()
	if firstIdent.Tok == token.IDENT {
		variable(c)
		c.finishPrecedence(precOr)
	} else {
		c.expression()
	}
	exitJump := c.emitJump(bytecode.IF_FALSE_JUMP)
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})

	c.unit.cf.enterLoop(loopStart)
	c.block()
	c.emitBackJump(loopStart)

	c.patchJump(exitJump)
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	for _, idx := range c.unit.cf.exitLoop() {
		c.patchJump(idx)
	}
}

// forClassic compiles "for INIT; COND; POST { body }" where firstIdent's
// token has already been consumed as INIT's leading identifier.
func (c *Compiler) forClassic(firstIdent lexer.Lexeme) {
	c.simpleStmtFromIdent(firstIdent)
	c.expect(token.SEMI, "expected ';' after for loop init statement")
	c.forClassicRest()
}

// forClassicAfterAssignOp compiles the remainder of "for INIT; COND; POST"
// when INIT is an assignment or short declaration whose leading identifier
// list and '=' / ':=' operator have already been consumed while probing for
// the range form.
func (c *Compiler) forClassicAfterAssignOp(names []string, isDefine bool) {
	if isDefine {
		c.shortVarDecl(names)
	} else {
		c.parallelAssign(names)
	}
	c.expect(token.SEMI, "expected ';' after for loop init statement")
	c.forClassicRest()
}

// forClassicRest compiles "COND; POST { body }", desugaring the post
// clause so it runs after the body but is parsed, once, in its textual
// position between the two semicolons.
func (c *Compiler) forClassicRest() {
	condStart := c.here()
	exitJump := -1
	if !c.check(token.SEMI) {
		c.expression()
		exitJump = c.emitJump(bytecode.IF_FALSE_JUMP)
		c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	}
	c.expect(token.SEMI, "expected ';' after for loop condition")

	bodyJump := c.emitJump(bytecode.JUMP)
	postStart := c.here()
	if !c.check(token.LBRACE) {
		c.simpleStmt()
	}
	c.emitBackJump(condStart)
	c.patchJump(bodyJump)

	c.unit.cf.enterLoop(postStart)
	c.block()
	c.emitBackJump(postStart)

	if exitJump >= 0 {
		c.patchJump(exitJump)
		c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	}
	for _, idx := range c.unit.cf.exitLoop() {
		c.patchJump(idx)
	}
}

// forRange compiles "for k, v := range EXPR { body }" over an array or
// slice, desugared into an index-counter loop since the language has no
// iterator protocol. Blank identifiers ("_") simply skip their binding.
func (c *Compiler) forRange(names []string, isDefine bool) {
	_ = isDefine
	c.expression()
	collSlot := c.unit.sc.addVar("$range")
	c.unit.sc.initLast()

	c.emitAtPrev(bytecode.Instr{Op: bytecode.PUSH_INT_LITERAL, Val: value.IntLiteral(0)})
	idxSlot := c.unit.sc.addVar("$i")
	c.unit.sc.initLast()

	loopStart := c.here()
	c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(idxSlot)})
	c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_GLOBAL, Str: "len"})
	c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(collSlot)})
	c.emitAtPrev(bytecode.Instr{Op: bytecode.CALL, A: 1})
	c.emitAtPrev(bytecode.Instr{Op: bytecode.LESS})
	exitJump := c.emitJump(bytecode.IF_FALSE_JUMP)
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})

	bodyJump := c.emitJump(bytecode.JUMP)
	postStart := c.here()
	c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(idxSlot)})
	c.emitAtPrev(bytecode.Instr{Op: bytecode.PUSH_INT_LITERAL, Val: value.IntLiteral(1)})
	c.emitAtPrev(bytecode.Instr{Op: bytecode.ADD})
	c.emitAtPrev(bytecode.Instr{Op: bytecode.SET_LOCAL, A: int32(idxSlot)})
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	c.emitBackJump(loopStart)
	c.patchJump(bodyJump)

	c.unit.cf.enterLoop(postStart)

	c.unit.sc.begin()
	if len(names) >= 1 && names[0] != "_" {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(idxSlot)})
		c.unit.sc.addVar(names[0])
		c.unit.sc.initLast()
	}
	if len(names) >= 2 && names[1] != "_" {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(collSlot)})
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(idxSlot)})
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_INDEX})
		c.unit.sc.addVar(names[1])
		c.unit.sc.initLast()
	}

	c.expect(token.LBRACE, "expected '{' to start range body")
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declOrStmt()
	}
	c.expect(token.RBRACE, "expected '}' to close range body")
	c.popScope()

	c.emitBackJump(postStart)

	c.patchJump(exitJump)
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	for _, idx := range c.unit.cf.exitLoop() {
		c.patchJump(idx)
	}
}

// ---- switch ----

// switchStmt compiles a (optionally tagless) switch statement as a chain
// of equality tests against a single cached tag value, since there is no
// stack-duplicate opcode to re-read an arbitrary tag expression per case.
func (c *Compiler) switchStmt() {
	c.unit.sc.begin()

	if c.check(token.LBRACE) {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.PUSH_BOOL, Val: value.Bool(true)})
	} else {
		c.expression()
	}
	tagSlot := c.unit.sc.addVar("$switch")
	c.unit.sc.initLast()

	c.expect(token.LBRACE, "expected '{' to start switch body")

	c.unit.cf.enterSwitch()
	c.switchCtxs = append(c.switchCtxs, &switchCtx{pending: -1})

	var endJumps []int
	var pendingNextTest []int
	sawDefault := false

	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		isDefault := c.match(token.DEFAULT)
		if !isDefault {
			c.expect(token.CASE, "expected 'case' or 'default'")
		}

		if isDefault {
			if sawDefault {
				c.errorAtPrev("multiple default clauses in switch")
			}
			sawDefault = true
			for _, j := range pendingNextTest {
				c.patchJump(j)
			}
			pendingNextTest = nil
		} else {
			for _, j := range pendingNextTest {
				c.patchJump(j)
			}
			var matchJumps []int
			for {
				c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(tagSlot)})
				c.expression()
				c.emitAtPrev(bytecode.Instr{Op: bytecode.EQUAL})
				noMatch := c.emitJump(bytecode.IF_FALSE_JUMP)
				c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
				matchJumps = append(matchJumps, c.emitJump(bytecode.JUMP))
				c.patchJump(noMatch)
				c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
				if !c.match(token.COMMA) {
					break
				}
			}
			skipBody := c.emitJump(bytecode.JUMP)
			pendingNextTest = []int{skipBody}
			for _, j := range matchJumps {
				c.patchJump(j)
			}
		}

		c.expect(token.COLON, "expected ':' after case expression(s)")

		top := c.switchCtxs[len(c.switchCtxs)-1]
		if top.pending >= 0 {
			c.patchJump(top.pending)
			top.pending = -1
		}

		for !c.check(token.CASE) && !c.check(token.DEFAULT) && !c.check(token.RBRACE) && !c.check(token.EOF) {
			c.declOrStmt()
		}
		endJumps = append(endJumps, c.emitJump(bytecode.JUMP))
	}
	for _, j := range pendingNextTest {
		c.patchJump(j)
	}
	c.expect(token.RBRACE, "expected '}' to close switch body")

	for _, j := range endJumps {
		c.patchJump(j)
	}
	top := c.switchCtxs[len(c.switchCtxs)-1]
	if top.pending >= 0 {
		c.errs.Add(top.pendingPos, "fallthrough statement out of place (no subsequent case)")
	}
	c.switchCtxs = c.switchCtxs[:len(c.switchCtxs)-1]
	for _, j := range c.unit.cf.exitSwitch() {
		c.patchJump(j)
	}

	c.popScope()
}

// ---- break / continue / fallthrough / return / defer ----

func (c *Compiler) breakStmt() {
	if !c.unit.cf.isBreakable() {
		c.errorAtPrev("break outside loop or switch")
	} else {
		idx := c.emitJump(bytecode.JUMP)
		c.unit.cf.addBreak(idx)
	}
	c.consumeSemi()
}

func (c *Compiler) continueStmt() {
	if !c.unit.cf.isContinuable() {
		c.errorAtPrev("continue outside loop")
	} else {
		c.emitBackJump(c.unit.cf.continueTarget())
	}
	c.consumeSemi()
}

func (c *Compiler) fallthroughStmt() {
	if len(c.switchCtxs) == 0 {
		c.errorAtPrev("fallthrough outside switch")
		c.consumeSemi()
		return
	}
	idx := c.emitJump(bytecode.FALLTHROUGH)
	top := c.switchCtxs[len(c.switchCtxs)-1]
	top.pending = idx
	top.pendingPos = c.prev.Pos
	c.consumeSemi()
}

func (c *Compiler) returnStmt() {
	count := 0
	if !c.check(token.SEMI) && !c.check(token.RBRACE) {
		c.expression()
		count = 1
		for c.match(token.COMMA) {
			c.expression()
			count++
		}
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.RETURN, A: int32(count)})
	c.consumeSemi()
}

// deferStmt compiles "defer CALL". The call expression is compiled
// normally and then its trailing CALL instruction is replaced with DEFER,
// leaving the callee and its already-evaluated arguments on the stack for
// the VM to capture into a per-frame deferred-call record, run LIFO at
// RETURN.
func (c *Compiler) deferStmt() {
	c.expression()
	last := c.unit.chunk.PopLast()
	if last.Op != bytecode.CALL {
		c.errorAtPrev("defer requires a function call")
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.DEFER, A: last.A, B: last.B})
	c.consumeSemi()
}
