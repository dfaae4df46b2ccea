package lang

import (
	"bytes"
	"io"
	"slices"
	"unicode/utf8"
)

type cursor struct {
	char rune
	curr int
	next int
	Position
}

type Scanner struct {
	input []byte
	cursor
	old cursor

	str bytes.Buffer
}

func Scan(r io.Reader) *Scanner {
	buf, _ := io.ReadAll(r)
	buf, _ = bytes.CutPrefix(buf, []byte{0xef, 0xbb, 0xbf})
	s := Scanner{
		input: buf,
	}
	s.cursor.Line = 1
	s.read()
	s.skip(isSpace)
	return &s
}

func (s *Scanner) Scan() Token {
	defer s.reset()

	s.skip(isSpace)

	var tok Token
	tok.Position = s.cursor.Position
	if s.done() {
		tok.Type = EOF
		return tok
	}

	switch {
	case isComment(s.char, s.peek()):
		s.scanComment(&tok)
	case isQuote(s.char):
		s.scanString(&tok)
	case isLetter(s.char):
		s.scanIdent(&tok)
	case isDigit(s.char):
		s.scanNumber(&tok)
	case isEOL(s.char):
		s.scanEOL(&tok)
	default:
		s.scanPunct(&tok)
	}
	return tok
}

func (s *Scanner) scanEOL(tok *Token) {
	s.skip(isEOL)
	tok.Type = EOL
}

func (s *Scanner) scanComment(tok *Token) {
	s.read()
	s.read()
	s.skip(isSpace)
	for !s.done() && !isNL(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Comment
	tok.Literal = s.literal()
}

func (s *Scanner) scanString(tok *Token) {
	quote := s.char
	s.read()
	for !s.done() && s.char != quote && !isNL(s.char) {
		if s.char == backslash {
			s.read()
			switch s.char {
			case 'n':
				s.str.WriteRune(nl)
			case 'r':
				s.str.WriteRune(cr)
			case 't':
				s.str.WriteRune(tab)
			case backslash, squote, dquote:
				s.write()
			default:
				s.write()
			}
			s.read()
			continue
		}
		s.write()
		s.read()
	}
	tok.Type = String
	if s.char != quote {
		tok.Type = Invalid
	} else {
		s.read()
	}
	tok.Literal = s.literal()
}

func (s *Scanner) scanNumber(tok *Token) {
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Number
	tok.Literal = s.literal()
	if s.char != dot {
		return
	}
	s.write()
	s.read()
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
	tok.Literal = s.literal()
}

func (s *Scanner) scanIdent(tok *Token) {
	for !s.done() && isAlpha(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Ident
	tok.Literal = s.literal()
	if slices.Contains(keywords, tok.Literal) {
		tok.Type = Keyword
	}
	if tok.Literal == "true" || tok.Literal == "false" {
		tok.Type = Boolean
	}
}

func (s *Scanner) scanPunct(tok *Token) {
	switch s.char {
	case dot:
		tok.Type = Dot
	case comma:
		tok.Type = Comma
	case lbrace:
		tok.Type = Lbrace
	case rbrace:
		tok.Type = Rbrace
	case lparen:
		tok.Type = Lparen
	case rparen:
		tok.Type = Rparen
	case lsquare:
		tok.Type = Lsquare
	case rsquare:
		tok.Type = Rsquare
	case plus:
		tok.Type = Add
		if k := s.peek(); k == equal {
			s.read()
			tok.Type = AddAssign
		} else if k == plus {
			s.read()
			tok.Type = Incr
		}
	case minus:
		tok.Type = Sub
		if k := s.peek(); k == equal {
			s.read()
			tok.Type = SubAssign
		} else if k == minus {
			s.read()
			tok.Type = Decr
		}
	case star:
		tok.Type = Mul
		if s.peek() == equal {
			s.read()
			tok.Type = MulAssign
		}
	case slash:
		tok.Type = Div
		if s.peek() == equal {
			s.read()
			tok.Type = DivAssign
		}
	case percent:
		tok.Type = Mod
		if s.peek() == equal {
			s.read()
			tok.Type = ModAssign
		}
	case ampersand:
		tok.Type = Invalid
		if s.peek() == ampersand {
			s.read()
			tok.Type = And
		}
	case pipe:
		tok.Type = Invalid
		if s.peek() == pipe {
			s.read()
			tok.Type = Or
		}
	case equal:
		tok.Type = Assign
		if s.peek() == equal {
			s.read()
			tok.Type = Eq
			if s.peek() == equal {
				s.read()
			}
		}
	case bang:
		tok.Type = Not
		if s.peek() == equal {
			s.read()
			tok.Type = Ne
			if s.peek() == equal {
				s.read()
			}
		}
	case langle:
		tok.Type = Lt
		if s.peek() == equal {
			s.read()
			tok.Type = Le
		}
	case rangle:
		tok.Type = Gt
		if s.peek() == equal {
			s.read()
			tok.Type = Ge
		}
	default:
		tok.Type = Invalid
	}
	s.read()
}

func (s *Scanner) done() bool {
	return s.char == utf8.RuneError && s.curr >= len(s.input)
}

func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.char = utf8.RuneError
		s.curr = len(s.input)
		return
	}
	// an invalid byte decodes to RuneError with size 1; it stays in the
	// stream and comes out of Scan as an Invalid token
	r, n := utf8.DecodeRune(s.input[s.next:])
	s.old.Position = s.cursor.Position
	if r == nl {
		s.cursor.Line++
		s.cursor.Column = 0
	}
	s.cursor.Column++
	s.char, s.curr, s.next = r, s.next, s.next+n
}

func (s *Scanner) peek() rune {
	r, _ := utf8.DecodeRune(s.input[s.next:])
	return r
}

func (s *Scanner) reset() {
	s.str.Reset()
}

func (s *Scanner) write() {
	s.str.WriteRune(s.char)
}

func (s *Scanner) literal() string {
	return s.str.String()
}

func (s *Scanner) skip(accept func(rune) bool) {
	if s.done() {
		return
	}
	for accept(s.char) && !s.done() {
		s.read()
	}
}

const (
	lbrace    = '{'
	rbrace    = '}'
	lparen    = '('
	rparen    = ')'
	lsquare   = '['
	rsquare   = ']'
	langle    = '<'
	rangle    = '>'
	space     = ' '
	tab       = '\t'
	nl        = '\n'
	cr        = '\r'
	squote    = '\''
	dquote    = '"'
	backslash = '\\'
	dot       = '.'
	plus      = '+'
	minus     = '-'
	star      = '*'
	slash     = '/'
	percent   = '%'
	ampersand = '&'
	pipe      = '|'
	bang      = '!'
	equal     = '='
	comma     = ','
	semicolon = ';'
)

func isComment(r, k rune) bool {
	return r == slash && r == k
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return isLetter(r) || isDigit(r)
}

func isSpace(r rune) bool {
	return r == space || r == tab
}

func isQuote(r rune) bool {
	return r == squote || r == dquote
}

func isNL(r rune) bool {
	return r == nl || r == cr
}

func isEOL(r rune) bool {
	return isNL(r) || r == semicolon
}
