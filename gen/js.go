package gen

import (
	"strings"

	"github.com/minilab/bloc/graph"
	"github.com/minilab/bloc/robot"
)

// JavaScript binding orders, lower binds tighter. The multiplicative
// operators share one order: equal orders force parens, so a grouped
// operand under / or % keeps its grouping.
const (
	orderMember   Order = 1.8
	orderCall     Order = 2
	orderNegation Order = 4.3
	orderNot      Order = 4.4
	orderAwait    Order = 4.8
	orderMul      Order = 5.2
	orderSub      Order = 6.1
	orderAdd      Order = 6.2
	orderRel      Order = 8
	orderEq       Order = 9
	orderAnd      Order = 13
	orderOr       Order = 14
	orderAssign   Order = 17
)

var jsReserved = []string{
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "export", "extends", "finally",
	"for", "function", "if", "import", "in", "instanceof", "let", "new",
	"return", "super", "switch", "this", "throw", "try", "typeof", "var",
	"void", "while", "with", "yield", "await", "async", "true", "false",
	"null", "undefined",
	// globals the generated program relies on
	"bot", "console", "Math", "Date", "String", "sleep",
}

const jsIndent = "  "

type jsGen struct {
	ctx *Context
}

func (g jsGen) program(ws *graph.Workspace) (string, error) {
	if ws.Empty() {
		return "// empty program\n", nil
	}
	var chunks []string
	for _, root := range ws.Roots() {
		s, err := chainCode(g, root)
		if err != nil {
			return "", err
		}
		chunks = append(chunks, s)
	}
	body := strings.Join(chunks, "\n\n")

	var parts []string
	if vars := g.ctx.renamed(); len(vars) > 0 {
		parts = append(parts, "var "+strings.Join(vars, ", ")+";")
	}
	if pro := g.ctx.prologue(); pro != "" {
		parts = append(parts, pro)
	}
	parts = append(parts, body)
	return strings.Join(parts, "\n\n") + "\n", nil
}

func (g jsGen) statement(n *graph.Node) (string, error) {
	switch n.Kind {
	case graph.KindIf:
		cond, err := valueCode(g, n, graph.SlotIf, OrderNone, "false")
		if err != nil {
			return "", err
		}
		then, err := g.block(n.ChainHead(graph.ChainDo))
		if err != nil {
			return "", err
		}
		out := "if (" + cond + ") " + then
		if n.HasElse() {
			alt, err := g.block(n.ChainHead(graph.ChainElse))
			if err != nil {
				return "", err
			}
			out += " else " + alt
		}
		return out, nil
	case graph.KindWhile:
		cond, err := valueCode(g, n, graph.SlotCond, OrderNone, "false")
		if err != nil {
			return "", err
		}
		body, err := g.block(n.ChainHead(graph.ChainDo))
		if err != nil {
			return "", err
		}
		return "while (" + cond + ") " + body, nil
	case graph.KindCountLoop:
		v := g.ctx.rename(n.Var.Name)
		from, err := valueCode(g, n, graph.SlotFrom, orderAssign, "0")
		if err != nil {
			return "", err
		}
		to, err := valueCode(g, n, graph.SlotTo, orderRel, "0")
		if err != nil {
			return "", err
		}
		step := v + "++"
		if by := n.Slot(graph.SlotBy); by != nil && !(by.Kind == graph.KindNumber && by.Num == 1) {
			code, err := valueCode(g, n, graph.SlotBy, orderAssign, "1")
			if err != nil {
				return "", err
			}
			step = v + " += " + code
		}
		body, err := g.block(n.ChainHead(graph.ChainDo))
		if err != nil {
			return "", err
		}
		return "for (" + v + " = " + from + "; " + v + " < " + to + "; " + step + ") " + body, nil
	case graph.KindSetVariable:
		value, err := valueCode(g, n, graph.SlotValue, orderAssign, "0")
		if err != nil {
			return "", err
		}
		return g.ctx.rename(n.Var.Name) + " = " + value + ";", nil
	case graph.KindListSet:
		list, err := valueCode(g, n, graph.SlotList, orderMember, "list")
		if err != nil {
			return "", err
		}
		index, err := indexCode(g, n, orderSub)
		if err != nil {
			return "", err
		}
		value, err := valueCode(g, n, graph.SlotValue, orderAssign, "0")
		if err != nil {
			return "", err
		}
		return list + "[" + index + "] = " + value + ";", nil
	case graph.KindWait:
		g.ctx.provide("sleep",
			"function sleep(s) {\n"+
				jsIndent+"return new Promise(function (resolve) { setTimeout(resolve, s * 1000); });\n"+
				"}")
		sec, err := valueCode(g, n, graph.SlotSeconds, OrderNone, "0")
		if err != nil {
			return "", err
		}
		return "await sleep(" + sec + ");", nil
	case graph.KindPrint:
		text, err := valueCode(g, n, graph.SlotText, OrderNone, "''")
		if err != nil {
			return "", err
		}
		return "console.log(" + text + ");", nil
	case graph.KindMoveToPose, graph.KindSetHeadJoints, graph.KindSetAllJoints,
		graph.KindSetAntennas, graph.KindSetAntenna, graph.KindTorqueOn,
		graph.KindTorqueOff, graph.KindRebootMotor:
		call, err := g.robotCall(n)
		if err != nil {
			return "", err
		}
		return "await " + call + ";", nil
	default:
		return "", errNoRule(n, JS)
	}
}

func (g jsGen) value(n *graph.Node) (string, Order, error) {
	switch n.Kind {
	case graph.KindNumber:
		return formatNum(n.Num), OrderAtomic, nil
	case graph.KindText:
		return quoteSingle(n.Text), OrderAtomic, nil
	case graph.KindBoolean:
		if n.Bool {
			return "true", OrderAtomic, nil
		}
		return "false", OrderAtomic, nil
	case graph.KindVariable:
		return g.ctx.rename(n.Var.Name), OrderAtomic, nil
	case graph.KindNegate:
		x, err := valueCode(g, n, graph.SlotOperand, orderNegation, "0")
		if err != nil {
			return "", 0, err
		}
		return "-" + x, orderNegation, nil
	case graph.KindNot:
		x, err := valueCode(g, n, graph.SlotOperand, orderNot, "false")
		if err != nil {
			return "", 0, err
		}
		return "!" + x, orderNot, nil
	case graph.KindLogic:
		op := n.Field(graph.FieldOp)
		order := orderAnd
		if op == "||" {
			order = orderOr
		}
		return g.binary(n, op, order, "false")
	case graph.KindCompare:
		op := n.Field(graph.FieldOp)
		order := orderRel
		if op == "==" || op == "!=" {
			order = orderEq
		}
		return g.binary(n, op, order, "0")
	case graph.KindArith:
		op := n.Field(graph.FieldOp)
		return g.binary(n, op, jsArithOrder(op), "0")
	case graph.KindConcat:
		var parts []string
		for _, s := range n.Slots() {
			code, err := valueCode(g, n, s.Name, orderAdd, "''")
			if err != nil {
				return "", 0, err
			}
			parts = append(parts, code)
		}
		if len(parts) == 0 {
			return "''", OrderAtomic, nil
		}
		return strings.Join(parts, " + "), orderAdd, nil
	case graph.KindTrig:
		return g.trig(n)
	case graph.KindMathFunc:
		x, err := valueCode(g, n, graph.SlotOperand, OrderNone, "0")
		if err != nil {
			return "", 0, err
		}
		return "Math." + n.Field(graph.FieldFn) + "(" + x + ")", orderCall, nil
	case graph.KindNow:
		return "Date.now()", orderCall, nil
	case graph.KindPose, graph.KindList:
		items, err := g.items(n, "0")
		if err != nil {
			return "", 0, err
		}
		return "[" + strings.Join(items, ", ") + "]", OrderAtomic, nil
	case graph.KindListGet:
		list, err := valueCode(g, n, graph.SlotList, orderMember, "list")
		if err != nil {
			return "", 0, err
		}
		index, err := indexCode(g, n, orderSub)
		if err != nil {
			return "", 0, err
		}
		return list + "[" + index + "]", orderMember, nil
	case graph.KindListLength:
		list, err := valueCode(g, n, graph.SlotList, orderMember, "list")
		if err != nil {
			return "", 0, err
		}
		return list + ".length", orderMember, nil
	case graph.KindGetHeadPose, graph.KindGetHeadJoints, graph.KindGetAllJoints,
		graph.KindGetAntenna, graph.KindMotorTemperature, graph.KindMotorLoad,
		graph.KindPingMotor, graph.KindIsConnected:
		call, err := g.robotCall(n)
		if err != nil {
			return "", 0, err
		}
		return "await " + call, orderAwait, nil
	default:
		return "", 0, errNoRule(n, JS)
	}
}

func (g jsGen) binary(n *graph.Node, op string, order Order, def string) (string, Order, error) {
	left, err := valueCode(g, n, graph.SlotLeft, order, def)
	if err != nil {
		return "", 0, err
	}
	right, err := valueCode(g, n, graph.SlotRight, order, def)
	if err != nil {
		return "", 0, err
	}
	return left + " " + op + " " + right, order, nil
}

// trig renders the degree-aware trig node. Forward functions convert their
// input to radians inline; inverse functions convert their radian result
// back to degrees. Both shapes are the ones the translator recognizes, so
// generated trig round-trips to a single node.
func (g jsGen) trig(n *graph.Node) (string, Order, error) {
	fn := n.Field(graph.FieldFn)
	switch fn {
	case "sin", "cos", "tan":
		x, err := valueCode(g, n, graph.SlotOperand, orderMul, "0")
		if err != nil {
			return "", 0, err
		}
		return "Math." + fn + "(" + x + " * Math.PI / 180)", orderCall, nil
	case "asin", "acos", "atan":
		x, err := valueCode(g, n, graph.SlotOperand, OrderNone, "0")
		if err != nil {
			return "", 0, err
		}
		return "Math." + fn + "(" + x + ") * 180 / Math.PI", orderMul, nil
	default:
		return "", 0, errNoRule(n, JS)
	}
}

// indexCode inverts the translator's 1-based index adjustment: literal
// indexes fold back to k-1, an add-1 wrapper is peeled, anything else gets
// an explicit subtraction at the target's subtraction order.
func indexCode(b backend, n *graph.Node, sub Order) (string, error) {
	child := n.Slot(graph.SlotIndex)
	if child == nil {
		return "0", nil
	}
	if child.Kind == graph.KindNumber {
		return formatNum(child.Num - 1), nil
	}
	if inner := peelAddOne(child); inner != nil {
		code, order, err := b.value(inner)
		if err != nil {
			return "", err
		}
		return wrap(code, order, OrderNone), nil
	}
	code, order, err := b.value(child)
	if err != nil {
		return "", err
	}
	return wrap(code, order, sub) + " - 1", nil
}

func peelAddOne(n *graph.Node) *graph.Node {
	if n.Kind != graph.KindArith || n.Field(graph.FieldOp) != "+" {
		return nil
	}
	right := n.Slot(graph.SlotRight)
	if right == nil || right.Kind != graph.KindNumber || right.Num != 1 {
		return nil
	}
	return n.Slot(graph.SlotLeft)
}

func (g jsGen) robotCall(n *graph.Node) (string, error) {
	e, ok := robot.ByKind(n)
	if !ok {
		return "", errNoRule(n, JS)
	}
	var args []string
	for _, a := range e.Args {
		switch a.Kind {
		case robot.ArgValue:
			s, err := valueCode(g, n, a.Name, OrderNone, "0")
			if err != nil {
				return "", err
			}
			args = append(args, s)
		case robot.ArgField:
			args = append(args, n.Field(a.Name))
		case robot.ArgLiteral:
			args = append(args, a.Want)
		}
	}
	call := e.Method + "(" + strings.Join(args, ", ") + ")"
	if e.Receiver != "" {
		call = e.Receiver + "." + call
	}
	return call, nil
}

func (g jsGen) items(n *graph.Node, def string) ([]string, error) {
	var items []string
	for _, s := range n.Slots() {
		code, err := valueCode(g, n, s.Name, OrderNone, def)
		if err != nil {
			return nil, err
		}
		items = append(items, code)
	}
	return items, nil
}

func (g jsGen) block(head *graph.Node) (string, error) {
	body, err := chainCode(g, head)
	if err != nil {
		return "", err
	}
	if body == "" {
		return "{\n}", nil
	}
	return "{\n" + indent(body, jsIndent) + "\n}", nil
}

func jsArithOrder(op string) Order {
	switch op {
	case "*", "/", "%":
		return orderMul
	case "-":
		return orderSub
	default:
		return orderAdd
	}
}

// quoteSingle renders a single-quoted string literal; the escape set is
// shared by both targets.
func quoteSingle(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
