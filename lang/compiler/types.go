package compiler

import (
	"github.com/mna/gobc/lang/token"
	"github.com/mna/gobc/lang/value"
)

// typeFromKeyword maps one of the primitive type keywords to its Kind.
// rune and byte are aliases for int32 and uint8, matching Go.
func (c *Compiler) typeFromKeyword(t token.Token) value.Type {
	switch t {
	case token.BOOL:
		return value.Simple(value.KindBool)
	case token.INT8:
		return value.Simple(value.KindInt8)
	case token.INT16:
		return value.Simple(value.KindInt16)
	case token.INT32, token.RUNE:
		return value.Simple(value.KindInt32)
	case token.INT64:
		return value.Simple(value.KindInt64)
	case token.INT_:
		return value.Simple(value.KindInt)
	case token.UINT8, token.BYTE:
		return value.Simple(value.KindUint8)
	case token.UINT16:
		return value.Simple(value.KindUint16)
	case token.UINT32:
		return value.Simple(value.KindUint32)
	case token.UINT64:
		return value.Simple(value.KindUint64)
	case token.UINT_:
		return value.Simple(value.KindUint)
	case token.UINTPTR:
		return value.Simple(value.KindUintptr)
	case token.FLOAT32:
		return value.Simple(value.KindFloat32)
	case token.FLOAT64:
		return value.Simple(value.KindFloat64)
	case token.COMPLEX64:
		return value.Simple(value.KindComplex64)
	case token.COMPLEX128:
		return value.Simple(value.KindComplex128)
	case token.STRING_:
		return value.Simple(value.KindString)
	default:
		c.errorf("not a type keyword: %s", t)
		return value.Type{}
	}
}

// typeExpr parses a type expression: a primitive keyword, an array type
// [N]T, a slice type []T, or a function type func(PARAMS) RESULT.
func (c *Compiler) typeExpr() value.Type {
	switch {
	case c.check(token.FUNC):
		c.advance()
		return value.FuncOf(c.funcTypeSignature())
	case c.check(token.LBRACK):
		c.advance()
		if c.match(token.RBRACK) {
			elem := c.typeExpr()
			return value.SliceOf(elem)
		}
		sizeTok := c.cur
		c.expect(token.INT, "expected array size")
		n := 0
		for _, d := range sizeTok.Lit {
			n = n*10 + int(d-'0')
		}
		c.expect(token.RBRACK, "expected ']' after array size")
		elem := c.typeExpr()
		return value.ArrayOf(elem, n)
	case c.cur.Tok.IsTypeKeyword():
		t := c.cur.Tok
		c.advance()
		return c.typeFromKeyword(t)
	default:
		c.errorf("expected type, found %s", c.cur.Tok)
		c.advance()
		return value.Type{}
	}
}

// funcTypeSignature parses the parameter and result types of a function
// type or declaration header, starting at '('.
func (c *Compiler) funcTypeSignature() *value.FuncType {
	ft := &value.FuncType{}
	c.expect(token.LPAREN, "expected '(' in function signature")
	for !c.check(token.RPAREN) {
		variadic := c.match(token.ELLIPSIS)
		// optional parameter name precedes its type; peek: IDENT followed by
		// a type-starting token means "name type", otherwise it's a bare type.
		if c.check(token.IDENT) {
			save := c.cur
			c.advance()
			if c.isTypeStart() {
				_ = save // name is only used for local-slot binding by the caller
				t := c.typeExpr()
				ft.Params = append(ft.Params, value.Param{Type: t, Variadic: variadic})
			} else {
				// bare named type used as a type (no further type follows): treat
				// the identifier itself as a struct type name.
				ft.Params = append(ft.Params, value.Param{Type: value.StructNamed(save.Lit), Variadic: variadic})
			}
		} else {
			t := c.typeExpr()
			ft.Params = append(ft.Params, value.Param{Type: t, Variadic: variadic})
		}
		if !c.match(token.COMMA) {
			break
		}
	}
	c.expect(token.RPAREN, "expected ')' after parameters")

	switch {
	case c.check(token.LPAREN):
		c.advance()
		for !c.check(token.RPAREN) {
			ft.Results = append(ft.Results, c.typeExpr())
			if !c.match(token.COMMA) {
				break
			}
		}
		c.expect(token.RPAREN, "expected ')' after result list")
	case c.isTypeStart():
		ft.Results = append(ft.Results, c.typeExpr())
	}
	return ft
}

// isTypeStart reports whether the current token can begin a type
// expression, used to disambiguate "name type" parameters from bare types.
func (c *Compiler) isTypeStart() bool {
	return c.cur.Tok.IsTypeKeyword() || c.check(token.LBRACK) || c.check(token.FUNC) || c.check(token.IDENT)
}
