package lang

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	powLowest int = iota
	powAssign
	powOr
	powAnd
	powEq
	powCmp
	powAdd
	powMul
	powPrefix
	powPostfix
	powAccess
	powGroup
)

var bindings = map[rune]int{
	Assign:    powAssign,
	AddAssign: powAssign,
	SubAssign: powAssign,
	MulAssign: powAssign,
	DivAssign: powAssign,
	ModAssign: powAssign,
	Or:        powOr,
	And:       powAnd,
	Eq:        powEq,
	Ne:        powEq,
	Lt:        powCmp,
	Le:        powCmp,
	Gt:        powCmp,
	Ge:        powCmp,
	Add:       powAdd,
	Sub:       powAdd,
	Mul:       powMul,
	Div:       powMul,
	Mod:       powMul,
	Incr:      powPostfix,
	Decr:      powPostfix,
	Dot:       powAccess,
	Lsquare:   powAccess,
	Lparen:    powGroup,
}

type (
	prefixFunc func() (Node, error)
	infixFunc  func(Node) (Node, error)
)

type Parser struct {
	prefix map[rune]prefixFunc
	infix  map[rune]infixFunc

	scan *Scanner
	curr Token
	peek Token
}

func ParseString(str string) (Script, error) {
	return ParseReader(strings.NewReader(str))
}

func ParseReader(r io.Reader) (Script, error) {
	return Parse(r).Parse()
}

func Parse(r io.Reader) *Parser {
	p := Parser{
		scan:   Scan(r),
		prefix: make(map[rune]prefixFunc),
		infix:  make(map[rune]infixFunc),
	}

	p.registerPrefix(Ident, p.parseIdent)
	p.registerPrefix(String, p.parseString)
	p.registerPrefix(Number, p.parseNumber)
	p.registerPrefix(Boolean, p.parseBoolean)
	p.registerPrefix(Lsquare, p.parseArray)
	p.registerPrefix(Lparen, p.parseGroup)
	p.registerPrefix(Not, p.parseNot)
	p.registerPrefix(Sub, p.parseRev)
	p.registerPrefix(Incr, p.parseIncrPrefix)
	p.registerPrefix(Decr, p.parseDecrPrefix)
	p.registerPrefix(Keyword, p.parseKeywordExpr)

	p.registerInfix(Assign, p.parseAssign)
	p.registerInfix(AddAssign, p.parseAssign)
	p.registerInfix(SubAssign, p.parseAssign)
	p.registerInfix(MulAssign, p.parseAssign)
	p.registerInfix(DivAssign, p.parseAssign)
	p.registerInfix(ModAssign, p.parseAssign)
	p.registerInfix(Add, p.parseBinary)
	p.registerInfix(Sub, p.parseBinary)
	p.registerInfix(Mul, p.parseBinary)
	p.registerInfix(Div, p.parseBinary)
	p.registerInfix(Mod, p.parseBinary)
	p.registerInfix(And, p.parseBinary)
	p.registerInfix(Or, p.parseBinary)
	p.registerInfix(Eq, p.parseBinary)
	p.registerInfix(Ne, p.parseBinary)
	p.registerInfix(Lt, p.parseBinary)
	p.registerInfix(Le, p.parseBinary)
	p.registerInfix(Gt, p.parseBinary)
	p.registerInfix(Ge, p.parseBinary)
	p.registerInfix(Dot, p.parseDot)
	p.registerInfix(Lsquare, p.parseIndex)
	p.registerInfix(Lparen, p.parseCall)
	p.registerInfix(Incr, p.parseIncrPostfix)
	p.registerInfix(Decr, p.parseDecrPostfix)

	p.next()
	p.next()
	return &p
}

func (p *Parser) Parse() (Script, error) {
	var script Script
	p.skipLines()
	for !p.done() {
		n, err := p.parseStatement()
		if err != nil {
			return script, err
		}
		if n != nil {
			script.Nodes = append(script.Nodes, n)
		}
		p.skipLines()
	}
	return script, nil
}

func (p *Parser) parseStatement() (Node, error) {
	if p.is(Keyword) {
		switch p.curr.Literal {
		case "var", "let", "const":
			return p.parseVar()
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "for":
			return p.parseFor()
		case "function":
			return p.parseFunction()
		case "return":
			return p.parseReturn()
		case "break":
			defer p.next()
			return Break{Position: p.curr.Position}, nil
		case "continue":
			defer p.next()
			return Continue{Position: p.curr.Position}, nil
		case "async":
			p.next()
			return p.parseStatement()
		}
	}
	return p.parseExpression(powLowest)
}

func (p *Parser) parseVar() (Node, error) {
	decl := Var{
		Position: p.curr.Position,
	}
	p.next()
	for {
		if !p.is(Ident) {
			return nil, p.unexpected()
		}
		assign := Assignment{
			Target: Identifier{
				Name:     p.curr.Literal,
				Position: p.curr.Position,
			},
			Position: p.curr.Position,
		}
		p.next()
		if p.is(Assign) {
			p.next()
			value, err := p.parseExpression(powAssign)
			if err != nil {
				return nil, err
			}
			assign.Node = value
		} else {
			assign.Node = Undefined{}
		}
		decl.Decls = append(decl.Decls, assign)
		if !p.is(Comma) {
			break
		}
		p.next()
	}
	return decl, nil
}

func (p *Parser) parseIf() (Node, error) {
	expr := If{
		Position: p.curr.Position,
	}
	p.next()
	cdt, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	expr.Cdt = cdt
	if expr.Csq, err = p.parseBody(); err != nil {
		return nil, err
	}
	p.skipLines()
	if p.is(Keyword) && p.curr.Literal == "else" {
		p.next()
		if p.is(Keyword) && p.curr.Literal == "if" {
			expr.Alt, err = p.parseIf()
		} else {
			expr.Alt, err = p.parseBody()
		}
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) parseWhile() (Node, error) {
	expr := While{
		Position: p.curr.Position,
	}
	p.next()
	cdt, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	expr.Cdt = cdt
	if expr.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseFor() (Node, error) {
	loop := For{
		Position: p.curr.Position,
	}
	p.next()
	if !p.is(Lparen) {
		return nil, p.unexpected()
	}
	p.next()
	var err error
	if !p.is(EOL) {
		if loop.Init, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	if !p.is(EOL) {
		return nil, p.unexpected()
	}
	p.next()
	if !p.is(EOL) {
		if loop.Cdt, err = p.parseExpression(powLowest); err != nil {
			return nil, err
		}
	}
	if !p.is(EOL) {
		return nil, p.unexpected()
	}
	p.next()
	if !p.is(Rparen) {
		if loop.After, err = p.parseExpression(powLowest); err != nil {
			return nil, err
		}
	}
	if !p.is(Rparen) {
		return nil, p.unexpected()
	}
	p.next()
	if loop.Body, err = p.parseBody(); err != nil {
		return nil, err
	}
	return loop, nil
}

func (p *Parser) parseFunction() (Node, error) {
	fn := Func{
		Position: p.curr.Position,
	}
	p.next()
	if p.is(Ident) {
		fn.Ident = p.curr.Literal
		p.next()
	}
	if !p.is(Lparen) {
		return nil, p.unexpected()
	}
	p.next()
	for !p.done() && !p.is(Rparen) {
		if !p.is(Ident) {
			return nil, p.unexpected()
		}
		fn.Args = append(fn.Args, Identifier{
			Name:     p.curr.Literal,
			Position: p.curr.Position,
		})
		p.next()
		switch {
		case p.is(Comma):
			p.next()
		case p.is(Rparen):
		default:
			return nil, p.unexpected()
		}
	}
	if !p.is(Rparen) {
		return nil, p.unexpected()
	}
	p.next()
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func (p *Parser) parseReturn() (Node, error) {
	expr := Return{
		Position: p.curr.Position,
	}
	p.next()
	if p.is(EOL) || p.is(Rbrace) || p.done() {
		return expr, nil
	}
	n, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	expr.Node = n
	return expr, nil
}

func (p *Parser) parseCondition() (Node, error) {
	if !p.is(Lparen) {
		return nil, p.unexpected()
	}
	p.next()
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.is(Rparen) {
		return nil, p.unexpected()
	}
	p.next()
	return expr, nil
}

func (p *Parser) parseBody() (Node, error) {
	if !p.is(Lbrace) {
		return p.parseStatement()
	}
	p.next()
	var b Body
	p.skipLines()
	for !p.done() && !p.is(Rbrace) {
		n, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if n != nil {
			b.Nodes = append(b.Nodes, n)
		}
		p.skipLines()
	}
	if !p.is(Rbrace) {
		return nil, p.unexpected()
	}
	p.next()
	return b, nil
}

func (p *Parser) parseExpression(pow int) (Node, error) {
	fn, ok := p.prefix[p.curr.Type]
	if !ok {
		return nil, p.unexpected()
	}
	left, err := fn()
	if err != nil {
		return nil, err
	}
	for !p.done() && !p.is(EOL) && pow < p.power() {
		fn, ok := p.infix[p.curr.Type]
		if !ok {
			return nil, p.unexpected()
		}
		if left, err = fn(left); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseKeywordExpr() (Node, error) {
	switch p.curr.Literal {
	case "await":
		expr := Await{
			Position: p.curr.Position,
		}
		p.next()
		n, err := p.parseExpression(powPrefix)
		if err != nil {
			return nil, err
		}
		expr.Node = n
		return expr, nil
	case "new":
		p.next()
		return p.parseExpression(powPrefix)
	case "function":
		return p.parseFunction()
	case "null":
		defer p.next()
		return Null{Position: p.curr.Position}, nil
	case "undefined":
		defer p.next()
		return Undefined{Position: p.curr.Position}, nil
	default:
		return nil, fmt.Errorf("%s: keyword not supported/known", p.curr.Literal)
	}
}

func (p *Parser) parseIdent() (Node, error) {
	defer p.next()
	expr := Identifier{
		Name:     p.curr.Literal,
		Position: p.curr.Position,
	}
	return expr, nil
}

func (p *Parser) parseString() (Node, error) {
	defer p.next()
	expr := Literal[string]{
		Value:    p.curr.Literal,
		Position: p.curr.Position,
	}
	return expr, nil
}

func (p *Parser) parseNumber() (Node, error) {
	n, err := strconv.ParseFloat(p.curr.Literal, 64)
	if err != nil {
		return nil, err
	}
	defer p.next()
	expr := Literal[float64]{
		Value:    n,
		Position: p.curr.Position,
	}
	return expr, nil
}

func (p *Parser) parseBoolean() (Node, error) {
	n, err := strconv.ParseBool(p.curr.Literal)
	if err != nil {
		return nil, err
	}
	defer p.next()
	expr := Literal[bool]{
		Value:    n,
		Position: p.curr.Position,
	}
	return expr, nil
}

func (p *Parser) parseArray() (Node, error) {
	arr := Array{
		Position: p.curr.Position,
	}
	p.next()
	for !p.done() && !p.is(Rsquare) {
		p.skipLines()
		n, err := p.parseExpression(powAssign)
		if err != nil {
			return nil, err
		}
		arr.Nodes = append(arr.Nodes, n)
		p.skipLines()
		switch {
		case p.is(Comma):
			p.next()
			p.skipLines()
		case p.is(Rsquare):
		default:
			return nil, p.unexpected()
		}
	}
	if !p.is(Rsquare) {
		return nil, fmt.Errorf("missing ] at end of array")
	}
	p.next()
	return arr, nil
}

func (p *Parser) parseGroup() (Node, error) {
	p.next()
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.is(Rparen) {
		return nil, p.unexpected()
	}
	p.next()
	return expr, nil
}

func (p *Parser) parseNot() (Node, error) {
	expr := Unary{
		Op:       Not,
		Position: p.curr.Position,
	}
	p.next()
	n, err := p.parseExpression(powPrefix)
	if err != nil {
		return nil, err
	}
	expr.Node = n
	return expr, nil
}

func (p *Parser) parseRev() (Node, error) {
	expr := Unary{
		Op:       Sub,
		Position: p.curr.Position,
	}
	p.next()
	n, err := p.parseExpression(powPrefix)
	if err != nil {
		return nil, err
	}
	expr.Node = n
	return expr, nil
}

func (p *Parser) parseIncrPrefix() (Node, error) {
	incr := Increment{
		Position: p.curr.Position,
	}
	p.next()
	n, err := p.parseExpression(powPrefix)
	if err != nil {
		return nil, err
	}
	incr.Node = n
	return incr, nil
}

func (p *Parser) parseDecrPrefix() (Node, error) {
	decr := Decrement{
		Position: p.curr.Position,
	}
	p.next()
	n, err := p.parseExpression(powPrefix)
	if err != nil {
		return nil, err
	}
	decr.Node = n
	return decr, nil
}

func (p *Parser) parseIncrPostfix(left Node) (Node, error) {
	incr := Increment{
		Node:     left,
		Post:     true,
		Position: p.curr.Position,
	}
	p.next()
	return incr, nil
}

func (p *Parser) parseDecrPostfix(left Node) (Node, error) {
	decr := Decrement{
		Node:     left,
		Post:     true,
		Position: p.curr.Position,
	}
	p.next()
	return decr, nil
}

func (p *Parser) parseAssign(left Node) (Node, error) {
	switch left.(type) {
	case Identifier, Index, Access:
	default:
		return nil, fmt.Errorf("invalid assignment target at %d:%d", p.curr.Line, p.curr.Column)
	}
	expr := Assignment{
		Target:   left,
		Position: p.curr.Position,
	}
	var op rune
	switch p.curr.Type {
	case AddAssign:
		op = Add
	case SubAssign:
		op = Sub
	case MulAssign:
		op = Mul
	case DivAssign:
		op = Div
	case ModAssign:
		op = Mod
	}
	p.next()
	right, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if op != 0 {
		right = Binary{
			Op:    op,
			Left:  left,
			Right: right,
		}
	}
	expr.Node = right
	return expr, nil
}

func (p *Parser) parseBinary(left Node) (Node, error) {
	expr := Binary{
		Left:     left,
		Op:       p.curr.Type,
		Position: p.curr.Position,
	}
	p.next()
	right, err := p.parseExpression(bindings[expr.Op])
	if err != nil {
		return nil, err
	}
	expr.Right = right
	return expr, nil
}

func (p *Parser) parseDot(left Node) (Node, error) {
	access := Access{
		Object:   left,
		Position: p.curr.Position,
	}
	p.next()
	if !p.is(Ident) && !p.is(Keyword) {
		return nil, p.unexpected()
	}
	access.Name = p.curr.Literal
	p.next()
	return access, nil
}

func (p *Parser) parseIndex(left Node) (Node, error) {
	ix := Index{
		Object:   left,
		Position: p.curr.Position,
	}
	p.next()
	x, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	ix.Expr = x
	if !p.is(Rsquare) {
		return nil, p.unexpected()
	}
	p.next()
	return ix, nil
}

func (p *Parser) parseCall(left Node) (Node, error) {
	call := Call{
		Callee:   left,
		Position: p.curr.Position,
	}
	p.next()
	for !p.done() && !p.is(Rparen) {
		p.skipLines()
		a, err := p.parseExpression(powAssign)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, a)
		p.skipLines()
		switch {
		case p.is(Comma):
			p.next()
			p.skipLines()
		case p.is(Rparen):
		default:
			return nil, p.unexpected()
		}
	}
	if !p.is(Rparen) {
		return nil, p.unexpected()
	}
	p.next()
	return call, nil
}

func (p *Parser) registerPrefix(kind rune, fn prefixFunc) {
	p.prefix[kind] = fn
}

func (p *Parser) registerInfix(kind rune, fn infixFunc) {
	p.infix[kind] = fn
}

func (p *Parser) power() int {
	pow, ok := bindings[p.curr.Type]
	if !ok {
		return powLowest
	}
	return pow
}

func (p *Parser) skipLines() {
	for p.is(EOL) || p.is(Comment) {
		p.next()
	}
}

func (p *Parser) done() bool {
	return p.is(EOF)
}

func (p *Parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}

func (p *Parser) unexpected() error {
	pos := p.curr.Position
	return fmt.Errorf("%s unexpected token at %d:%d", p.curr, pos.Line, pos.Column)
}
