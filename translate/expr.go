package translate

import (
	"strconv"

	"github.com/minilab/bloc/graph"
	"github.com/minilab/bloc/lang"
	"github.com/minilab/bloc/robot"
)

func (t *translator) expression(n lang.Node) *graph.Node {
	switch n := n.(type) {
	case lang.Await:
		return t.expression(n.Node)
	case lang.Literal[float64]:
		out := graph.New(graph.KindNumber)
		out.Num = n.Value
		return out
	case lang.Literal[string]:
		out := graph.New(graph.KindText)
		out.Text = n.Value
		return out
	case lang.Literal[bool]:
		out := graph.New(graph.KindBoolean)
		out.Bool = n.Value
		return out
	case lang.Identifier:
		out := graph.New(graph.KindVariable)
		out.Var = t.ws.Variable(n.Name)
		return out
	case lang.Unary:
		return t.unary(n)
	case lang.Binary:
		return t.binary(n)
	case lang.Call:
		return t.call(n)
	case lang.Access:
		if n.Name == "length" {
			out := graph.New(graph.KindListLength)
			out.Connect(graph.SlotList, t.expression(n.Object))
			return out
		}
		return nil
	case lang.Index:
		out := graph.New(graph.KindListGet)
		out.Connect(graph.SlotList, t.expression(n.Object))
		out.Connect(graph.SlotIndex, t.indexValue(n.Expr))
		return out
	case lang.Array:
		return t.array(n)
	case lang.Assignment:
		return t.assignment(n)
	default:
		return nil
	}
}

func (t *translator) unary(n lang.Unary) *graph.Node {
	var out *graph.Node
	switch n.Op {
	case lang.Sub:
		out = graph.New(graph.KindNegate)
	case lang.Not:
		out = graph.New(graph.KindNot)
	default:
		return nil
	}
	out.Connect(graph.SlotOperand, t.expression(n.Node))
	return out
}

func (t *translator) binary(n lang.Binary) *graph.Node {
	switch n.Op {
	case lang.And, lang.Or:
		out := graph.New(graph.KindLogic)
		out.SetField(graph.FieldOp, opText(n.Op))
		out.Connect(graph.SlotLeft, t.expression(n.Left))
		out.Connect(graph.SlotRight, t.expression(n.Right))
		return out
	case lang.Eq, lang.Ne, lang.Lt, lang.Le, lang.Gt, lang.Ge:
		out := graph.New(graph.KindCompare)
		out.SetField(graph.FieldOp, opText(n.Op))
		out.Connect(graph.SlotLeft, t.expression(n.Left))
		out.Connect(graph.SlotRight, t.expression(n.Right))
		return out
	case lang.Add:
		return t.addChain(n)
	case lang.Div:
		if fn, x, ok := matchInverseTrig(n); ok {
			out := graph.New(graph.KindTrig)
			out.SetField(graph.FieldFn, fn)
			out.Connect(graph.SlotOperand, t.expression(x))
			return out
		}
		return t.arith(n)
	case lang.Sub, lang.Mul, lang.Mod:
		return t.arith(n)
	default:
		return nil
	}
}

func (t *translator) arith(n lang.Binary) *graph.Node {
	out := graph.New(graph.KindArith)
	out.SetField(graph.FieldOp, opText(n.Op))
	out.Connect(graph.SlotLeft, t.expression(n.Left))
	out.Connect(graph.SlotRight, t.expression(n.Right))
	return out
}

// addChain resolves the `+` ambiguity. The left-associative chain is
// flattened; if any flattened operand is a string literal the whole chain
// becomes one variadic concatenation node, otherwise the original two
// operands make a plain arithmetic node.
func (t *translator) addChain(n lang.Binary) *graph.Node {
	operands := flattenAdd(n, nil)
	concat := false
	for _, op := range operands {
		if _, ok := op.(lang.Literal[string]); ok {
			concat = true
			break
		}
	}
	if !concat {
		return t.arith(n)
	}
	out := graph.New(graph.KindConcat)
	for i, op := range operands {
		out.Connect("ADD"+strconv.Itoa(i), t.expression(op))
	}
	return out
}

func flattenAdd(n lang.Node, out []lang.Node) []lang.Node {
	if b, ok := n.(lang.Binary); ok && b.Op == lang.Add {
		out = flattenAdd(b.Left, out)
		return flattenAdd(b.Right, out)
	}
	return append(out, n)
}

func (t *translator) call(call lang.Call) *graph.Node {
	if access, ok := call.Callee.(lang.Access); ok {
		if recv, ok := access.Object.(lang.Identifier); ok && recv.Name == "Math" && len(call.Args) == 1 {
			if n := t.mathCall(access.Name, call.Args[0]); n != nil {
				return n
			}
		}
		if recv, ok := access.Object.(lang.Identifier); ok && recv.Name == "Date" && access.Name == "now" && len(call.Args) == 0 {
			return graph.New(graph.KindNow)
		}
	}
	receiver, method, ok := callForm(call)
	if !ok {
		return nil
	}
	for _, e := range robot.Lookup(receiver, method, len(call.Args)) {
		if n := t.bind(e, call.Args); n != nil {
			return n
		}
	}
	return nil
}

// mathCall handles the Math.* single-argument forms, including the
// degree-conversion idiom `Math.sin(x * Math.PI / 180)`: when the argument
// has that shape the division tree collapses into a single degree-aware
// trig node over x. Without the shape no conversion is inferred and the
// argument is translated as-is.
func (t *translator) mathCall(fn string, arg lang.Node) *graph.Node {
	switch fn {
	case "sin", "cos", "tan", "asin", "acos", "atan":
		out := graph.New(graph.KindTrig)
		out.SetField(graph.FieldFn, fn)
		if inner, ok := matchDegreeArg(arg); ok {
			out.Connect(graph.SlotOperand, t.expression(inner))
		} else {
			out.Connect(graph.SlotOperand, t.expression(arg))
		}
		return out
	case "floor", "ceil", "round", "abs", "sqrt":
		out := graph.New(graph.KindMathFunc)
		out.SetField(graph.FieldFn, fn)
		out.Connect(graph.SlotOperand, t.expression(arg))
		return out
	default:
		return nil
	}
}

// matchDegreeArg matches `(inner * Math.PI) / 180`.
func matchDegreeArg(n lang.Node) (lang.Node, bool) {
	div, ok := n.(lang.Binary)
	if !ok || div.Op != lang.Div {
		return nil, false
	}
	if !isNumberLit(div.Right, 180) {
		return nil, false
	}
	mul, ok := div.Left.(lang.Binary)
	if !ok || mul.Op != lang.Mul || !isPi(mul.Right) {
		return nil, false
	}
	return mul.Left, true
}

// matchInverseTrig matches `(Math.asin(x) * 180) / Math.PI` and its acos
// and atan variants.
func matchInverseTrig(div lang.Binary) (string, lang.Node, bool) {
	if !isPi(div.Right) {
		return "", nil, false
	}
	mul, ok := div.Left.(lang.Binary)
	if !ok || mul.Op != lang.Mul || !isNumberLit(mul.Right, 180) {
		return "", nil, false
	}
	call, ok := mul.Left.(lang.Call)
	if !ok || len(call.Args) != 1 {
		return "", nil, false
	}
	access, ok := call.Callee.(lang.Access)
	if !ok {
		return "", nil, false
	}
	recv, ok := access.Object.(lang.Identifier)
	if !ok || recv.Name != "Math" {
		return "", nil, false
	}
	switch access.Name {
	case "asin", "acos", "atan":
		return access.Name, call.Args[0], true
	}
	return "", nil, false
}

func isPi(n lang.Node) bool {
	access, ok := n.(lang.Access)
	if !ok || access.Name != "PI" {
		return false
	}
	recv, ok := access.Object.(lang.Identifier)
	return ok && recv.Name == "Math"
}

func isNumberLit(n lang.Node, v float64) bool {
	lit, ok := n.(lang.Literal[float64])
	return ok && lit.Value == v
}

// array recognizes the six-element pose literal (x, y, z, roll, pitch,
// yaw); every other length makes a generic ordered list.
func (t *translator) array(arr lang.Array) *graph.Node {
	if len(arr.Nodes) == 6 {
		out := graph.New(graph.KindPose)
		names := []string{"X", "Y", "Z", "ROLL", "PITCH", "YAW"}
		for i, el := range arr.Nodes {
			out.Connect(names[i], t.expression(el))
		}
		return out
	}
	out := graph.New(graph.KindList)
	for i, el := range arr.Nodes {
		out.Connect("ITEM"+strconv.Itoa(i), t.expression(el))
	}
	return out
}

// indexValue converts a 0-based source index to the 1-based convention of
// the graph: literal indexes fold, anything else is wrapped in an add-1
// node. The list generators apply the exact inverse.
func (t *translator) indexValue(e lang.Node) *graph.Node {
	if lit, ok := e.(lang.Literal[float64]); ok {
		out := graph.New(graph.KindNumber)
		out.Num = lit.Value + 1
		return out
	}
	out := graph.New(graph.KindArith)
	out.SetField(graph.FieldOp, "+")
	out.Connect(graph.SlotLeft, t.expression(e))
	one := graph.New(graph.KindNumber)
	one.Num = 1
	out.Connect(graph.SlotRight, one)
	return out
}

func (t *translator) bind(e robot.Entry, args []lang.Node) *graph.Node {
	n := graph.New(e.Kind)
	for name, value := range e.Fields {
		n.SetField(name, value)
	}
	for i, spec := range e.Args {
		arg := unwrapAwait(args[i])
		switch spec.Kind {
		case robot.ArgValue:
			n.Connect(spec.Name, t.expression(arg))
		case robot.ArgField:
			lit, ok := arg.(lang.Literal[float64])
			if !ok {
				return nil
			}
			n.SetField(spec.Name, strconv.FormatFloat(lit.Value, 'g', -1, 64))
		case robot.ArgLiteral:
			lit, ok := arg.(lang.Literal[bool])
			if !ok || strconv.FormatBool(lit.Value) != spec.Want {
				return nil
			}
		}
	}
	return n
}

func callForm(call lang.Call) (string, string, bool) {
	switch callee := call.Callee.(type) {
	case lang.Access:
		recv, ok := callee.Object.(lang.Identifier)
		if !ok {
			return "", "", false
		}
		return recv.Name, callee.Name, true
	case lang.Identifier:
		return "", callee.Name, true
	default:
		return "", "", false
	}
}

func unwrapAwait(n lang.Node) lang.Node {
	if a, ok := n.(lang.Await); ok {
		return unwrapAwait(a.Node)
	}
	return n
}

func opText(op rune) string {
	switch op {
	case lang.Add:
		return "+"
	case lang.Sub:
		return "-"
	case lang.Mul:
		return "*"
	case lang.Div:
		return "/"
	case lang.Mod:
		return "%"
	case lang.And:
		return "&&"
	case lang.Or:
		return "||"
	case lang.Eq:
		return "=="
	case lang.Ne:
		return "!="
	case lang.Lt:
		return "<"
	case lang.Le:
		return "<="
	case lang.Gt:
		return ">"
	case lang.Ge:
		return ">="
	default:
		return ""
	}
}
