package lang

// Node is implemented by every AST node. Nodes are transient: they are
// produced by the parser and consumed by one translation pass.
type Node interface{}

type Script struct {
	Nodes []Node
}

type Body struct {
	Nodes []Node
}

type Literal[T string | float64 | bool] struct {
	Value T
	Position
}

type Identifier struct {
	Name string
	Position
}

type Unary struct {
	Op rune
	Node
	Position
}

type Binary struct {
	Op    rune
	Left  Node
	Right Node
	Position
}

// Assignment covers plain and compound assignment; the parser desugars
// compound forms so Node already holds the read-modify expression.
type Assignment struct {
	Target Node
	Node
	Position
}

type Access struct {
	Object Node
	Name   string
	Position
}

type Index struct {
	Object Node
	Expr   Node
	Position
}

type Array struct {
	Nodes []Node
	Position
}

type Call struct {
	Callee Node
	Args   []Node
	Position
}

type Await struct {
	Node
	Position
}

// Var is one declaration statement; each declarator is an Assignment with
// an Identifier target.
type Var struct {
	Decls []Node
	Position
}

type If struct {
	Cdt Node
	Csq Node
	Alt Node
	Position
}

type While struct {
	Cdt  Node
	Body Node
	Position
}

type For struct {
	Init  Node
	Cdt   Node
	After Node
	Body  Node
	Position
}

type Increment struct {
	Node
	Post bool
	Position
}

type Decrement struct {
	Node
	Post bool
	Position
}

type Func struct {
	Ident string
	Args  []Node
	Body  Node
	Position
}

type Return struct {
	Node
	Position
}

type Break struct {
	Position
}

type Continue struct {
	Position
}

type Null struct {
	Position
}

type Undefined struct {
	Position
}
