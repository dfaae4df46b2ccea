// Package translate compiles restricted-script source into graph nodes.
// Translation is deliberately lossy: statements and expressions outside the
// recognized subset yield nothing and are dropped, they never abort the
// pass. Parse errors, in contrast, are reported before the workspace is
// touched.
package translate

import (
	"github.com/minilab/bloc/graph"
	"github.com/minilab/bloc/lang"
	"github.com/minilab/bloc/robot"
)

// Text parses src and appends the translated program to ws as one new root
// chain. On parse failure ws is left untouched and the parser error is
// returned verbatim.
func Text(ws *graph.Workspace, src string) error {
	script, err := lang.ParseString(src)
	if err != nil {
		return err
	}
	t := translator{ws: ws}
	if head := t.statements(script.Nodes); head != nil {
		ws.AppendRoot(head)
	}
	return nil
}

// Statement translates one statement node, returning the head of the
// resulting chain or nil when the construct has no translation.
func Statement(ws *graph.Workspace, n lang.Node) *graph.Node {
	t := translator{ws: ws}
	return t.statement(n)
}

// Expression translates one expression node or returns nil.
func Expression(ws *graph.Workspace, n lang.Node) *graph.Node {
	t := translator{ws: ws}
	return t.expression(n)
}

type translator struct {
	ws *graph.Workspace
}

// statements translates a block, linking consecutive non-nil chains; the
// first non-nil chain is the attachment point.
func (t *translator) statements(nodes []lang.Node) *graph.Node {
	var head, tail *graph.Node
	for _, n := range nodes {
		c := t.statement(n)
		if c == nil {
			continue
		}
		if head == nil {
			head = c
		} else if err := tail.SetNext(c); err != nil {
			continue
		}
		tail = c.Tail()
	}
	return head
}

func (t *translator) statement(n lang.Node) *graph.Node {
	switch n := n.(type) {
	case lang.Await:
		return t.statement(n.Node)
	case lang.Var:
		return t.declaration(n)
	case lang.Assignment:
		return t.assignment(n)
	case lang.If:
		return t.ifStatement(n)
	case lang.While:
		return t.whileStatement(n)
	case lang.For:
		return t.forStatement(n)
	case lang.Call:
		return t.callStatement(n)
	default:
		return nil
	}
}

func (t *translator) declaration(decl lang.Var) *graph.Node {
	var head, tail *graph.Node
	for _, d := range decl.Decls {
		a, ok := d.(lang.Assignment)
		if !ok {
			continue
		}
		// a bare declarator has nothing to set
		if _, ok := a.Node.(lang.Undefined); ok {
			continue
		}
		n := t.assignment(a)
		if n == nil {
			continue
		}
		if head == nil {
			head = n
		} else if err := tail.SetNext(n); err != nil {
			continue
		}
		tail = n
	}
	return head
}

func (t *translator) assignment(a lang.Assignment) *graph.Node {
	switch target := a.Target.(type) {
	case lang.Identifier:
		n := graph.New(graph.KindSetVariable)
		n.Var = t.ws.Variable(target.Name)
		n.Connect(graph.SlotValue, t.expression(a.Node))
		return n
	case lang.Index:
		n := graph.New(graph.KindListSet)
		n.Connect(graph.SlotList, t.expression(target.Object))
		n.Connect(graph.SlotIndex, t.indexValue(target.Expr))
		n.Connect(graph.SlotValue, t.expression(a.Node))
		return n
	default:
		return nil
	}
}

func (t *translator) ifStatement(stmt lang.If) *graph.Node {
	// the else flag shapes the node and must be set before branches are
	// attached
	n := graph.NewIf(stmt.Alt != nil)
	n.Connect(graph.SlotIf, t.expression(stmt.Cdt))
	n.Attach(graph.ChainDo, t.body(stmt.Csq))
	if stmt.Alt != nil {
		n.Attach(graph.ChainElse, t.body(stmt.Alt))
	}
	return n
}

func (t *translator) whileStatement(stmt lang.While) *graph.Node {
	n := graph.New(graph.KindWhile)
	n.Connect(graph.SlotCond, t.expression(stmt.Cdt))
	n.Attach(graph.ChainDo, t.body(stmt.Body))
	return n
}

// forStatement translates the counted shape `for (var i = A; i < B; ...)`.
// The loop variable and the from value come from the initializer, the to
// value from the right side of the `<` test. The step expression is not
// inspected: the step is always the literal 1.
func (t *translator) forStatement(stmt lang.For) *graph.Node {
	name, from, ok := loopInit(stmt.Init)
	if !ok {
		return nil
	}
	test, ok := stmt.Cdt.(lang.Binary)
	if !ok || test.Op != lang.Lt {
		return nil
	}
	n := graph.New(graph.KindCountLoop)
	n.Var = t.ws.Variable(name)
	n.Connect(graph.SlotFrom, t.expression(from))
	n.Connect(graph.SlotTo, t.expression(test.Right))
	one := graph.New(graph.KindNumber)
	one.Num = 1
	n.Connect(graph.SlotBy, one)
	n.Attach(graph.ChainDo, t.body(stmt.Body))
	return n
}

func loopInit(init lang.Node) (string, lang.Node, bool) {
	var assign lang.Assignment
	switch n := init.(type) {
	case lang.Var:
		if len(n.Decls) != 1 {
			return "", nil, false
		}
		a, ok := n.Decls[0].(lang.Assignment)
		if !ok {
			return "", nil, false
		}
		assign = a
	case lang.Assignment:
		assign = n
	default:
		return "", nil, false
	}
	ident, ok := assign.Target.(lang.Identifier)
	if !ok {
		return "", nil, false
	}
	return ident.Name, assign.Node, true
}

func (t *translator) callStatement(call lang.Call) *graph.Node {
	receiver, method, ok := callForm(call)
	if !ok {
		return nil
	}
	for _, e := range robot.Lookup(receiver, method, len(call.Args)) {
		if !e.Statement {
			continue
		}
		if n := t.bind(e, call.Args); n != nil {
			return n
		}
	}
	return nil
}

func (t *translator) body(n lang.Node) *graph.Node {
	switch n := n.(type) {
	case nil:
		return nil
	case lang.Body:
		return t.statements(n.Nodes)
	default:
		return t.statements([]lang.Node{n})
	}
}
