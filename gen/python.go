package gen

import (
	"strings"

	"github.com/minilab/bloc/graph"
)

// Python binding orders, lower binds tighter.
const (
	pyOrderMember Order = 2.1
	pyOrderCall   Order = 2.2
	pyOrderUnary  Order = 4
	pyOrderMul    Order = 5
	pyOrderAdd    Order = 6
	pyOrderRel    Order = 11
	pyOrderNot    Order = 12
	pyOrderAnd    Order = 13
	pyOrderOr     Order = 14
)

var pyReserved = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
	// names the generated shell relies on
	"bot", "time", "math", "start_time", "MiniBot", "make_pose",
	"print", "range", "len", "str", "int", "abs", "round",
}

const pyIndent = "    "

type pyGen struct {
	ctx *Context
}

// program wraps the rendered chains in the fixed runner shell: the time
// import feeds both time.sleep and the start_time clock, and the context
// manager owns the device connection for the whole program.
func (g pyGen) program(ws *graph.Workspace) (string, error) {
	var chunks []string
	for _, root := range ws.Roots() {
		s, err := chainCode(g, root)
		if err != nil {
			return "", err
		}
		chunks = append(chunks, s)
	}
	body := strings.Join(chunks, "\n\n")
	if body == "" {
		body = "pass"
	}

	var b strings.Builder
	b.WriteString("import time\n")
	if imports := g.ctx.prologue(); imports != "" {
		b.WriteString(imports)
		b.WriteString("\n")
	}
	b.WriteString("from minibot import MiniBot\n")
	b.WriteString("\n")
	b.WriteString("with MiniBot() as bot:\n")
	b.WriteString(pyIndent + "start_time = time.monotonic()\n")
	b.WriteString("\n")
	b.WriteString(indent(body, pyIndent))
	b.WriteString("\n")
	return b.String(), nil
}

func (g pyGen) statement(n *graph.Node) (string, error) {
	switch n.Kind {
	case graph.KindIf:
		cond, err := valueCode(g, n, graph.SlotIf, OrderNone, "False")
		if err != nil {
			return "", err
		}
		out, err := g.suite("if "+cond, n.ChainHead(graph.ChainDo))
		if err != nil {
			return "", err
		}
		if n.HasElse() {
			alt, err := g.suite("else", n.ChainHead(graph.ChainElse))
			if err != nil {
				return "", err
			}
			out += "\n" + alt
		}
		return out, nil
	case graph.KindWhile:
		cond, err := valueCode(g, n, graph.SlotCond, OrderNone, "False")
		if err != nil {
			return "", err
		}
		return g.suite("while "+cond, n.ChainHead(graph.ChainDo))
	case graph.KindCountLoop:
		v := g.ctx.rename(n.Var.Name)
		from, err := valueCode(g, n, graph.SlotFrom, OrderNone, "0")
		if err != nil {
			return "", err
		}
		to, err := valueCode(g, n, graph.SlotTo, OrderNone, "0")
		if err != nil {
			return "", err
		}
		return g.suite("for "+v+" in range("+from+", "+to+")", n.ChainHead(graph.ChainDo))
	case graph.KindSetVariable:
		value, err := valueCode(g, n, graph.SlotValue, OrderNone, "0")
		if err != nil {
			return "", err
		}
		return g.ctx.rename(n.Var.Name) + " = " + value, nil
	case graph.KindListSet:
		list, err := valueCode(g, n, graph.SlotList, pyOrderMember, "items")
		if err != nil {
			return "", err
		}
		index, err := indexCode(g, n, pyOrderAdd)
		if err != nil {
			return "", err
		}
		value, err := valueCode(g, n, graph.SlotValue, OrderNone, "0")
		if err != nil {
			return "", err
		}
		return list + "[" + index + "] = " + value, nil
	case graph.KindWait:
		sec, err := valueCode(g, n, graph.SlotSeconds, OrderNone, "0")
		if err != nil {
			return "", err
		}
		return "time.sleep(" + sec + ")", nil
	case graph.KindPrint:
		text, err := valueCode(g, n, graph.SlotText, OrderNone, "''")
		if err != nil {
			return "", err
		}
		return "print(" + text + ")", nil
	case graph.KindMoveToPose:
		pose, err := valueCode(g, n, graph.SlotPose, OrderNone, "None")
		if err != nil {
			return "", err
		}
		return "bot.set_head_pose(" + pose + ")", nil
	case graph.KindSetHeadJoints:
		angles, err := valueCode(g, n, graph.SlotAngles, OrderNone, "None")
		if err != nil {
			return "", err
		}
		return "bot.set_head_joints(" + angles + ")", nil
	case graph.KindSetAllJoints:
		angles, err := valueCode(g, n, graph.SlotAngles, OrderNone, "None")
		if err != nil {
			return "", err
		}
		return "bot.set_all_joints(" + angles + ")", nil
	case graph.KindSetAntennas:
		left, err := valueCode(g, n, graph.SlotLeftDeg, OrderNone, "0")
		if err != nil {
			return "", err
		}
		right, err := valueCode(g, n, graph.SlotRightDeg, OrderNone, "0")
		if err != nil {
			return "", err
		}
		return "bot.set_antennas(" + left + ", " + right + ")", nil
	case graph.KindSetAntenna:
		angle, err := valueCode(g, n, graph.SlotAngle, OrderNone, "0")
		if err != nil {
			return "", err
		}
		if n.Field(graph.FieldSide) == "right" {
			return "bot.set_right_antenna(" + angle + ")", nil
		}
		return "bot.set_left_antenna(" + angle + ")", nil
	case graph.KindTorqueOn:
		return "pass  # torque on for motor " + n.Field(graph.FieldMotor) + " is not available here", nil
	case graph.KindTorqueOff:
		return "pass  # torque off for motor " + n.Field(graph.FieldMotor) + " is not available here", nil
	case graph.KindRebootMotor:
		return "pass  # rebooting motor " + n.Field(graph.FieldMotor) + " is not available here", nil
	default:
		return "", errNoRule(n, Python)
	}
}

func (g pyGen) value(n *graph.Node) (string, Order, error) {
	switch n.Kind {
	case graph.KindNumber:
		return formatNum(n.Num), OrderAtomic, nil
	case graph.KindText:
		return quoteSingle(n.Text), OrderAtomic, nil
	case graph.KindBoolean:
		if n.Bool {
			return "True", OrderAtomic, nil
		}
		return "False", OrderAtomic, nil
	case graph.KindVariable:
		return g.ctx.rename(n.Var.Name), OrderAtomic, nil
	case graph.KindNegate:
		x, err := valueCode(g, n, graph.SlotOperand, pyOrderUnary, "0")
		if err != nil {
			return "", 0, err
		}
		return "-" + x, pyOrderUnary, nil
	case graph.KindNot:
		x, err := valueCode(g, n, graph.SlotOperand, pyOrderNot, "False")
		if err != nil {
			return "", 0, err
		}
		return "not " + x, pyOrderNot, nil
	case graph.KindLogic:
		op, order := "and", pyOrderAnd
		if n.Field(graph.FieldOp) == "||" {
			op, order = "or", pyOrderOr
		}
		return g.binary(n, op, order, "False")
	case graph.KindCompare:
		return g.binary(n, n.Field(graph.FieldOp), pyOrderRel, "0")
	case graph.KindArith:
		op := n.Field(graph.FieldOp)
		order := pyOrderAdd
		if op == "*" || op == "/" || op == "%" {
			order = pyOrderMul
		}
		return g.binary(n, op, order, "0")
	case graph.KindConcat:
		return g.concat(n)
	case graph.KindTrig:
		return g.trig(n)
	case graph.KindMathFunc:
		return g.mathFunc(n)
	case graph.KindNow:
		return "int((time.monotonic() - start_time) * 1000)", pyOrderCall, nil
	case graph.KindPose:
		g.ctx.provide("make_pose", "from minibot.utils import make_pose")
		items, err := g.items(n)
		if err != nil {
			return "", 0, err
		}
		return "make_pose(" + strings.Join(items, ", ") + ")", pyOrderCall, nil
	case graph.KindList:
		items, err := g.items(n)
		if err != nil {
			return "", 0, err
		}
		return "[" + strings.Join(items, ", ") + "]", OrderAtomic, nil
	case graph.KindListGet:
		list, err := valueCode(g, n, graph.SlotList, pyOrderMember, "items")
		if err != nil {
			return "", 0, err
		}
		index, err := indexCode(g, n, pyOrderAdd)
		if err != nil {
			return "", 0, err
		}
		return list + "[" + index + "]", pyOrderMember, nil
	case graph.KindListLength:
		list, err := valueCode(g, n, graph.SlotList, OrderNone, "items")
		if err != nil {
			return "", 0, err
		}
		return "len(" + list + ")", pyOrderCall, nil
	case graph.KindGetHeadPose:
		return "bot.get_head_pose()", pyOrderCall, nil
	case graph.KindGetHeadJoints:
		return "bot.get_head_joints()", pyOrderCall, nil
	case graph.KindGetAllJoints:
		return "bot.get_all_joints()", pyOrderCall, nil
	case graph.KindGetAntenna:
		if n.Field(graph.FieldSide) == "right" {
			return "bot.get_right_antenna()", pyOrderCall, nil
		}
		return "bot.get_left_antenna()", pyOrderCall, nil
	case graph.KindMotorTemperature, graph.KindMotorLoad:
		// per-motor telemetry has no client call, a neutral reading stands in
		return "0", OrderAtomic, nil
	case graph.KindPingMotor:
		return "False", OrderAtomic, nil
	case graph.KindIsConnected:
		// inside the context manager the connection is up
		return "True", OrderAtomic, nil
	default:
		return "", 0, errNoRule(n, Python)
	}
}

func (g pyGen) binary(n *graph.Node, op string, order Order, def string) (string, Order, error) {
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

// concat joins the operands with +, coercing every non-text operand through
// str() so mixed chains stay valid.
func (g pyGen) concat(n *graph.Node) (string, Order, error) {
	var parts []string
	for _, s := range n.Slots() {
		if s.Node == nil {
			parts = append(parts, "''")
			continue
		}
		code, order, err := g.value(s.Node)
		if err != nil {
			return "", 0, err
		}
		if s.Node.Kind == graph.KindText {
			parts = append(parts, code)
		} else {
			parts = append(parts, "str("+wrap(code, order, OrderNone)+")")
		}
	}
	if len(parts) == 0 {
		return "''", OrderAtomic, nil
	}
	return strings.Join(parts, " + "), pyOrderAdd, nil
}

func (g pyGen) trig(n *graph.Node) (string, Order, error) {
	g.ctx.provide("math", "import math")
	fn := n.Field(graph.FieldFn)
	switch fn {
	case "sin", "cos", "tan":
		x, err := valueCode(g, n, graph.SlotOperand, pyOrderMul, "0")
		if err != nil {
			return "", 0, err
		}
		return "math." + fn + "(" + x + " / 180.0 * math.pi)", pyOrderCall, nil
	case "asin", "acos", "atan":
		x, err := valueCode(g, n, graph.SlotOperand, OrderNone, "0")
		if err != nil {
			return "", 0, err
		}
		return "math." + fn + "(" + x + ") / math.pi * 180", pyOrderMul, nil
	default:
		return "", 0, errNoRule(n, Python)
	}
}

func (g pyGen) mathFunc(n *graph.Node) (string, Order, error) {
	x, err := valueCode(g, n, graph.SlotOperand, OrderNone, "0")
	if err != nil {
		return "", 0, err
	}
	switch fn := n.Field(graph.FieldFn); fn {
	case "floor", "ceil", "sqrt":
		g.ctx.provide("math", "import math")
		return "math." + fn + "(" + x + ")", pyOrderCall, nil
	case "round", "abs":
		return fn + "(" + x + ")", pyOrderCall, nil
	default:
		return "", 0, errNoRule(n, Python)
	}
}

func (g pyGen) items(n *graph.Node) ([]string, error) {
	var items []string
	for _, s := range n.Slots() {
		code, err := valueCode(g, n, s.Name, OrderNone, "0")
		if err != nil {
			return nil, err
		}
		items = append(items, code)
	}
	return items, nil
}

// suite renders a header plus its indented body; an empty body becomes pass.
func (g pyGen) suite(header string, head *graph.Node) (string, error) {
	body, err := chainCode(g, head)
	if err != nil {
		return "", err
	}
	if body == "" {
		body = "pass"
	}
	return header + ":\n" + indent(body, pyIndent), nil
}
