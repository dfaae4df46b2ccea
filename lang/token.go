package lang

import "fmt"

const (
	EOF rune = -(iota + 1)
	EOL
	Comment
	Ident
	Keyword
	String
	Number
	Boolean
	Dot
	Comma
	Lparen
	Rparen
	Lsquare
	Rsquare
	Lbrace
	Rbrace
	Assign
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModAssign
	Incr
	Decr
	Not
	And
	Or
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Add
	Sub
	Mul
	Div
	Mod
	Invalid
)

var keywords = []string{
	"var",
	"let",
	"const",
	"if",
	"else",
	"for",
	"while",
	"do",
	"function",
	"return",
	"break",
	"continue",
	"await",
	"async",
	"new",
	"null",
	"undefined",
	"true",
	"false",
}

type Position struct {
	Line   int
	Column int
}

type Token struct {
	Literal string
	Type    rune
	Position
}

func (t Token) String() string {
	var prefix string
	switch t.Type {
	case EOF:
		return "<eof>"
	case EOL:
		return "<eol>"
	case Dot:
		return "<dot>"
	case Comma:
		return "<comma>"
	case Lparen:
		return "<lparen>"
	case Rparen:
		return "<rparen>"
	case Lsquare:
		return "<lsquare>"
	case Rsquare:
		return "<rsquare>"
	case Lbrace:
		return "<lbrace>"
	case Rbrace:
		return "<rbrace>"
	case Assign:
		return "<assign>"
	case AddAssign:
		return "<add-assign>"
	case SubAssign:
		return "<sub-assign>"
	case MulAssign:
		return "<mul-assign>"
	case DivAssign:
		return "<div-assign>"
	case ModAssign:
		return "<mod-assign>"
	case Incr:
		return "<incr>"
	case Decr:
		return "<decr>"
	case Not:
		return "<not>"
	case And:
		return "<and>"
	case Or:
		return "<or>"
	case Eq:
		return "<eq>"
	case Ne:
		return "<ne>"
	case Lt:
		return "<lt>"
	case Le:
		return "<le>"
	case Gt:
		return "<gt>"
	case Ge:
		return "<ge>"
	case Add:
		return "<add>"
	case Sub:
		return "<sub>"
	case Mul:
		return "<mul>"
	case Div:
		return "<div>"
	case Mod:
		return "<mod>"
	case Keyword:
		prefix = "keyword"
	case Ident:
		prefix = "identifier"
	case String:
		prefix = "string"
	case Number:
		prefix = "number"
	case Boolean:
		prefix = "boolean"
	case Comment:
		prefix = "comment"
	case Invalid:
		prefix = "invalid"
	default:
		prefix = "unknown"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}
