package compiler

import (
	"strconv"

	"github.com/mna/gobc/lang/bytecode"
	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/value"
)

// precedence orders the Pratt table; larger binds tighter.
type precedence int

const (
	precNone       precedence = iota
	precOr                    // ||
	precAnd                   // &&
	precEquality              // == !=
	precComparison            // < <= > >=
	precTerm                  // + - | ^
	precFactor                // * / % << >> & &^
	precUnary                 // ! - ^ + (prefix)
	precCall                  // ( [
	precPrimary
)

type prefixFn func(c *Compiler)
type infixFn func(c *Compiler)

type rule struct {
	prefix prefixFn
	infix  infixFn
	prec   precedence
}

var rules map[token.Token]rule

func init() {
	rules = map[token.Token]rule{
		token.INT:    {prefix: intLiteral},
		token.FLOAT:  {prefix: floatLiteral},
		token.STRING: {prefix: stringLiteral},
		token.TRUE:   {prefix: boolLiteral},
		token.FALSE:  {prefix: boolLiteral},
		token.NIL:    {prefix: nilLiteral},
		token.IDENT:  {prefix: variable},
		token.LPAREN: {prefix: grouping, infix: call, prec: precCall},
		token.LBRACK: {prefix: arrayOrSliceLiteral, infix: index, prec: precCall},

		token.MINUS:      {prefix: unary, infix: binary, prec: precTerm},
		token.PLUS:       {prefix: unary, infix: binary, prec: precTerm},
		token.PIPE:       {infix: binary, prec: precTerm},
		token.CIRCUMFLEX: {prefix: unary, infix: binary, prec: precTerm},

		token.STAR:      {infix: binary, prec: precFactor},
		token.SLASH:     {infix: binary, prec: precFactor},
		token.PERCENT:   {infix: binary, prec: precFactor},
		token.AMPERSAND: {infix: binary, prec: precFactor},
		token.AMPCARET:  {infix: binary, prec: precFactor},
		token.LTLT:      {infix: binary, prec: precFactor},
		token.GTGT:      {infix: binary, prec: precFactor},

		token.EQ:  {infix: binary, prec: precEquality},
		token.NEQ: {infix: binary, prec: precEquality},

		token.LT: {infix: binary, prec: precComparison},
		token.LE: {infix: binary, prec: precComparison},
		token.GT: {infix: binary, prec: precComparison},
		token.GE: {infix: binary, prec: precComparison},

		token.ANDAND: {infix: logicalAnd, prec: precAnd},
		token.OROR:   {infix: logicalOr, prec: precOr},

		token.NOT: {prefix: unary},
	}
	for t := token.BOOL; t <= token.STRING_; t++ {
		rules[t] = rule{prefix: castExpr}
	}
}

func getRule(t token.Token) rule { return rules[t] }

// expression compiles one expression at or above precOr, the lowest
// precedence an expression (as opposed to an assignment statement) may
// appear at.
func (c *Compiler) expression() { c.parsePrecedence(precOr) }

func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	pfx := getRule(c.prev.Tok).prefix
	if pfx == nil {
		c.errorf("expected expression, found %s", c.prev.Tok)
		return
	}
	pfx(c)

	for prec <= getRule(c.cur.Tok).prec {
		c.advance()
		inf := getRule(c.prev.Tok).infix
		inf(c)
	}
}

// finishPrecedence runs parsePrecedence's infix loop for an operand whose
// prefix part has already been compiled by the caller.
func (c *Compiler) finishPrecedence(prec precedence) {
	for prec <= getRule(c.cur.Tok).prec {
		c.advance()
		inf := getRule(c.prev.Tok).infix
		inf(c)
	}
}

func intLiteral(c *Compiler) {
	n, err := strconv.ParseInt(c.prev.Lit, 10, 64)
	if err != nil {
		c.errorf("invalid integer literal %q", c.prev.Lit)
		return
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.PUSH_INT_LITERAL, Val: value.IntLiteral(n)})
}

func floatLiteral(c *Compiler) {
	f, err := strconv.ParseFloat(c.prev.Lit, 64)
	if err != nil {
		c.errorf("invalid float literal %q", c.prev.Lit)
		return
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.PUSH_FLOAT_LITERAL, Val: value.FloatLiteral(f)})
}

func stringLiteral(c *Compiler) {
	c.emitAtPrev(bytecode.Instr{Op: bytecode.PUSH_STRING, Val: value.String(c.prev.Lit)})
}

func boolLiteral(c *Compiler) {
	c.emitAtPrev(bytecode.Instr{Op: bytecode.PUSH_BOOL, Val: value.Bool(c.prev.Tok == token.TRUE)})
}

func nilLiteral(c *Compiler) {
	c.emitAtPrev(bytecode.Instr{Op: bytecode.PUT_DEFAULT_VALUE})
}

func grouping(c *Compiler) {
	c.expression()
	c.expect(token.RPAREN, "expected ')' after expression")
}

func unary(c *Compiler) {
	op := c.prev.Tok
	c.parsePrecedence(precUnary)
	switch op {
	case token.MINUS:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.NEGATE})
	case token.PLUS:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.PLUS_NOOP})
	case token.NOT:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.NOT})
	case token.CIRCUMFLEX:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.BITWISE_NOT})
	}
}

func binary(c *Compiler) {
	op := c.prev.Tok
	r := getRule(op)
	c.parsePrecedence(r.prec + 1)
	switch op {
	case token.PLUS:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.ADD})
	case token.MINUS:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.SUBTRACT})
	case token.STAR:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.MULTIPLY})
	case token.SLASH:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.DIVIDE})
	case token.PERCENT:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.REMAINDER})
	case token.AMPERSAND:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.BITWISE_AND})
	case token.PIPE:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.BITWISE_OR})
	case token.CIRCUMFLEX:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.BITWISE_XOR})
	case token.AMPCARET:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.BIT_CLEAR})
	case token.LTLT:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.LEFT_SHIFT})
	case token.GTGT:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.RIGHT_SHIFT})
	case token.EQ:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.EQUAL})
	case token.NEQ:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.NOT_EQUAL})
	case token.LT:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.LESS})
	case token.LE:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.LESS_EQUAL})
	case token.GT:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GREATER})
	case token.GE:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GREATER_EQUAL})
	}
}

// logicalAnd and logicalOr short-circuit: the right operand is only
// evaluated (and its code only reached) when necessary.
func logicalAnd(c *Compiler) {
	endJump := c.emitJump(bytecode.IF_FALSE_JUMP)
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

func logicalOr(c *Compiler) {
	elseJump := c.emitJump(bytecode.IF_FALSE_JUMP)
	endJump := c.emitJump(bytecode.JUMP)
	c.patchJump(elseJump)
	c.emitAtPrev(bytecode.Instr{Op: bytecode.POP})
	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

// variable resolves an identifier to a local slot or a global name and
// emits the corresponding load. Function names resolve exactly like any
// other global: the loaded value is a value.Func indirection the VM's CALL
// opcode dereferences through the function table.
func variable(c *Compiler) {
	name := c.prev.Lit
	if slot, _, ok := c.unit.sc.resolve(name); ok {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL, A: int32(slot)})
		return
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_GLOBAL, Str: name})
}

// index compiles a subscript expression. If the base value was just loaded
// by a plain GET_LOCAL/GET_GLOBAL, it is fused into a single indexed
// opcode; otherwise a generic GET_INDEX is emitted against whatever value
// is already on the stack.
func index(c *Compiler) {
	chunk := c.unit.chunk
	var base bytecode.Instr
	fused := chunk.Len() > 0
	if fused {
		base = chunk.Last()
		fused = base.Op == bytecode.GET_LOCAL || base.Op == bytecode.GET_GLOBAL
	}
	if fused {
		chunk.PopLast()
	}
	c.expression()
	c.expect(token.RBRACK, "expected ']' after index expression")
	if !fused {
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_INDEX})
		return
	}
	switch base.Op {
	case bytecode.GET_LOCAL:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_LOCAL_INDEX, A: base.A})
	case bytecode.GET_GLOBAL:
		c.emitAtPrev(bytecode.Instr{Op: bytecode.GET_GLOBAL_INDEX, Str: base.Str})
	}
}

// call compiles a call expression's argument list. The callee value is
// already on the stack (pushed by the preceding primary); Call itself
// inspects it at runtime to dispatch to a user function or a built-in.
func call(c *Compiler) {
	argc := 0
	spread := false
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			argc++
			if c.match(token.ELLIPSIS) {
				spread = true
			}
			if !c.match(token.COMMA) {
				break
			}
			if c.check(token.RPAREN) {
				break
			}
		}
	}
	c.expect(token.RPAREN, "expected ')' after call arguments")
	b := int32(0)
	if spread {
		b = 1
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.CALL, A: int32(argc), B: b})
}

// castExpr compiles TYPE(expr), a blind literal cast or numeric conversion.
func castExpr(c *Compiler) {
	typ := c.typeFromKeyword(c.prev.Tok)
	c.expect(token.LPAREN, "expected '(' after type in conversion")
	c.expression()
	c.expect(token.RPAREN, "expected ')' after conversion expression")
	c.emitAtPrev(bytecode.Instr{Op: bytecode.BLIND_LITERAL_CAST, Typ: typ})
}

// arrayOrSliceLiteral compiles a composite literal: [SIZE]TYPE{elems...} or
// []TYPE{elems...}. The leading '[' has already been consumed.
func arrayOrSliceLiteral(c *Compiler) {
	isArray := false
	elided := false
	size := 0
	switch {
	case c.check(token.RBRACK):
		// slice literal: no size between the brackets.
	case c.match(token.ELLIPSIS):
		isArray = true
		elided = true
	default:
		isArray = true
		tok := c.cur
		c.expect(token.INT, "expected array size, '...', or ']'")
		n, err := strconv.Atoi(tok.Lit)
		if err != nil {
			c.errorf("invalid array size %q", tok.Lit)
		}
		size = n
	}
	c.expect(token.RBRACK, "expected ']' in composite literal type")
	elemTyp := c.typeExpr()

	c.expect(token.LBRACE, "expected '{' in composite literal")
	n := 0
	for !c.check(token.RBRACE) {
		c.expression()
		n++
		if !c.match(token.COMMA) {
			break
		}
	}
	c.expect(token.RBRACE, "expected '}' to close composite literal")

	if isArray {
		if elided {
			size = n
		} else if n != 0 && n != size {
			c.errorf("composite literal has %d elements, array size is %d", n, size)
		}
		c.emitAtPrev(bytecode.Instr{Op: bytecode.ARRAY_LITERAL, A: int32(n), Typ: value.ArrayOf(elemTyp, size)})
		return
	}
	c.emitAtPrev(bytecode.Instr{Op: bytecode.SLICE_LITERAL, A: int32(n), Typ: value.SliceOf(elemTyp)})
}
