// Package lexer converts source text into a flat token stream for the
// compiler. The lexer is a collaborator in the sense that the compiler only
// depends on the token vocabulary it produces (see lang/token), not on its
// internals.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mna/gobc/lang/token"
)

// Lexeme is one token together with its source position and, for tokens
// that carry one, its literal payload (identifier text, numeric text,
// unescaped string contents).
type Lexeme struct {
	Tok token.Token
	Lit string
	Pos token.Position
}

// Scanner tokenizes a single source file. The zero value is not usable;
// call Init first.
type Scanner struct {
	src []byte
	err func(token.Position, string)

	start, current int // byte offsets
	line, col      int // position of 'current'
	startLine      int
	startCol       int

	lastSignificant token.Token // last non-comment token emitted, for auto-semi
}

// Init prepares s to scan src, reporting lexical errors via errHandler.
func (s *Scanner) Init(src []byte, errHandler func(token.Position, string)) {
	s.src = src
	s.err = errHandler
	s.start, s.current = 0, 0
	s.line, s.col = 1, 1
	s.lastSignificant = token.ILLEGAL
}

// ScanAll tokenizes the full source and returns the lexeme stream
// (terminated by an EOF lexeme) and any accumulated errors.
func ScanAll(src []byte) ([]Lexeme, error) {
	var el token.ErrorList
	var s Scanner
	s.Init(src, el.Add)

	var out []Lexeme
	for {
		lx := s.Scan()
		out = append(out, lx)
		if lx.Tok == token.EOF {
			break
		}
	}
	return out, el.Err()
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekAt(off int) byte {
	if s.current+off >= len(s.src) {
		return 0
	}
	return s.src[s.current+off]
}

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	s.col++
	return c
}

func (s *Scanner) match(c byte) bool {
	if s.atEnd() || s.src[s.current] != c {
		return false
	}
	s.current++
	s.col++
	return true
}

func (s *Scanner) newLine() {
	s.line++
	s.col = 1
}

// Scan returns the next lexeme. Once it returns a token.EOF lexeme, every
// subsequent call keeps returning EOF.
func (s *Scanner) Scan() Lexeme {
	lx := s.scanOne()
	if lx.Tok != token.ILLEGAL { // errors don't update auto-semi state
		s.lastSignificant = lx.Tok
	}
	return lx
}

func (s *Scanner) scanOne() Lexeme {
	for {
		if s.atEnd() {
			return s.make(token.EOF, "")
		}

		c := s.src[s.current]
		switch c {
		case ' ', '\r', '\t':
			s.advance()
			continue
		case '\n':
			// auto-semicolon rule: insert before consuming the newline's
			// position update if the last token warrants it.
			insert := token.IsAutoSemiTerminator(s.lastSignificant)
			s.current++
			if insert {
				lx := Lexeme{Tok: token.SEMI, Lit: "", Pos: token.Position{Line: s.line, Col: s.col}}
				s.newLine()
				return lx
			}
			s.newLine()
			continue
		}

		if c == '/' && s.peekAt(1) == '/' {
			for !s.atEnd() && s.src[s.current] != '\n' {
				s.current++
				s.col++
			}
			continue
		}
		if c == '/' && s.peekAt(1) == '*' {
			s.blockComment()
			continue
		}

		break
	}

	s.start = s.current
	s.startLine, s.startCol = s.line, s.col

	c := s.advance()

	switch {
	case isAlpha(c):
		return s.identifier()
	case isDigit(c):
		return s.number(c)
	}

	switch c {
	case '"':
		return s.string()
	case '+':
		if s.match('+') {
			return s.make(token.INC, "")
		}
		if s.match('=') {
			return s.make(token.PLUS_EQ, "")
		}
		return s.make(token.PLUS, "")
	case '-':
		if s.match('-') {
			return s.make(token.DEC, "")
		}
		if s.match('=') {
			return s.make(token.MINUS_EQ, "")
		}
		return s.make(token.MINUS, "")
	case '*':
		if s.match('=') {
			return s.make(token.STAR_EQ, "")
		}
		return s.make(token.STAR, "")
	case '/':
		if s.match('=') {
			return s.make(token.SLASH_EQ, "")
		}
		return s.make(token.SLASH, "")
	case '%':
		if s.match('=') {
			return s.make(token.PERCENT_EQ, "")
		}
		return s.make(token.PERCENT, "")
	case '&':
		if s.match('^') {
			if s.match('=') {
				return s.make(token.AMPCARET_EQ, "")
			}
			return s.make(token.AMPCARET, "")
		}
		if s.match('&') {
			return s.make(token.ANDAND, "")
		}
		if s.match('=') {
			return s.make(token.AMP_EQ, "")
		}
		return s.make(token.AMPERSAND, "")
	case '|':
		if s.match('|') {
			return s.make(token.OROR, "")
		}
		if s.match('=') {
			return s.make(token.PIPE_EQ, "")
		}
		return s.make(token.PIPE, "")
	case '^':
		if s.match('=') {
			return s.make(token.CARET_EQ, "")
		}
		return s.make(token.CIRCUMFLEX, "")
	case '<':
		if s.match('<') {
			if s.match('=') {
				return s.make(token.LTLT_EQ, "")
			}
			return s.make(token.LTLT, "")
		}
		if s.match('=') {
			return s.make(token.LE, "")
		}
		if s.match('-') {
			return s.make(token.ARROW, "")
		}
		return s.make(token.LT, "")
	case '>':
		if s.match('>') {
			if s.match('=') {
				return s.make(token.GTGT_EQ, "")
			}
			return s.make(token.GTGT, "")
		}
		if s.match('=') {
			return s.make(token.GE, "")
		}
		return s.make(token.GT, "")
	case '=':
		if s.match('=') {
			return s.make(token.EQ, "")
		}
		return s.make(token.ASSIGN, "")
	case '!':
		if s.match('=') {
			return s.make(token.NEQ, "")
		}
		return s.make(token.NOT, "")
	case ':':
		if s.match('=') {
			return s.make(token.DEFINE, "")
		}
		return s.make(token.COLON, "")
	case '.':
		if s.peek() == '.' && s.peekAt(1) == '.' {
			s.current += 2
			s.col += 2
			return s.make(token.ELLIPSIS, "")
		}
		return s.make(token.DOT, "")
	case '(':
		return s.make(token.LPAREN, "")
	case ')':
		return s.make(token.RPAREN, "")
	case '[':
		return s.make(token.LBRACK, "")
	case ']':
		return s.make(token.RBRACK, "")
	case '{':
		return s.make(token.LBRACE, "")
	case '}':
		return s.make(token.RBRACE, "")
	case ',':
		return s.make(token.COMMA, "")
	case ';':
		return s.make(token.SEMI, "")
	}

	s.errorf("unknown character %q", c)
	return s.make(token.ILLEGAL, string(c))
}

func (s *Scanner) blockComment() {
	// consume '/*'
	s.current += 2
	s.col += 2
	for {
		if s.atEnd() {
			s.errorf("unclosed comment")
			return
		}
		c := s.src[s.current]
		if c == '\n' {
			s.current++
			s.newLine()
			continue
		}
		if c == '*' && s.peekAt(1) == '/' {
			s.current += 2
			s.col += 2
			return
		}
		s.current++
		s.col++
	}
}

func (s *Scanner) identifier() Lexeme {
	for isAlnum(s.peek()) {
		s.advance()
	}
	text := string(s.src[s.start:s.current])
	tok := token.Lookup(text)
	if tok != token.IDENT {
		return s.make(tok, "")
	}
	return s.make(token.IDENT, text)
}

func (s *Scanner) number(first byte) Lexeme {
	_ = first
	for isDigit(s.peek()) {
		s.advance()
	}
	isFloat := false
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		isFloat = true
		s.advance() // consume '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	text := string(s.src[s.start:s.current])
	if isFloat {
		return s.make(token.FLOAT, text)
	}
	return s.make(token.INT, text)
}

func (s *Scanner) string() Lexeme {
	var sb strings.Builder
	for {
		if s.atEnd() {
			s.errorf("unterminated string")
			return s.make(token.ILLEGAL, sb.String())
		}
		c := s.src[s.current]
		if c == '"' {
			s.current++
			s.col++
			break
		}
		if c == '\n' {
			// newlines are preserved verbatim inside string literals
			sb.WriteByte(c)
			s.current++
			s.newLine()
			continue
		}
		if c == '\\' && s.current+1 < len(s.src) {
			s.current++
			s.col++
			esc := s.src[s.current]
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(esc)
			}
			s.current++
			s.col++
			continue
		}
		r, size := utf8.DecodeRune(s.src[s.current:])
		sb.WriteRune(r)
		s.current += size
		s.col++
	}
	return s.make(token.STRING, sb.String())
}

func (s *Scanner) make(tok token.Token, lit string) Lexeme {
	return Lexeme{Tok: tok, Lit: lit, Pos: token.Position{Line: s.startLine, Col: s.startCol}}
}

func (s *Scanner) errorf(format string, args ...any) {
	if s.err == nil {
		return
	}
	s.err(token.Position{Line: s.startLine, Col: s.startCol}, fmt.Sprintf(format, args...))
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
