package gen

import (
	"strings"
	"testing"

	"github.com/minilab/bloc/graph"
	"github.com/minilab/bloc/translate"
)

func render(t *testing.T, src string, target Target) string {
	t.Helper()
	ws := graph.NewWorkspace()
	if err := translate.Text(ws, src); err != nil {
		t.Fatalf("%s: translate: %v", src, err)
	}
	out, err := Generate(ws, target)
	if err != nil {
		t.Fatalf("%s: generate: %v", src, err)
	}
	return out
}

func TestJSEmpty(t *testing.T) {
	out, err := Generate(graph.NewWorkspace(), JS)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "// empty program\n" {
		t.Fatalf("got %q", out)
	}
}

func TestJSProgram(t *testing.T) {
	src := "var x = 1;\nif (x < 3) {\n  await bot.setAntennas(10, 20);\n}"
	want := "var x;\n\nx = 1;\nif (x < 3) {\n  await bot.setAntennas(10, 20);\n}\n"
	if out := render(t, src, JS); out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestJSPrecedence(t *testing.T) {
	data := []struct {
		src  string
		want string
	}{
		{src: "x = (1 + 2) * 3", want: "x = (1 + 2) * 3;"},
		{src: "x = 1 + 2 * 3", want: "x = 1 + 2 * 3;"},
		{src: "x = 1 - (2 - 3)", want: "x = 1 - (2 - 3);"},
		{src: "x = a / (b * c)", want: "x = a / (b * c);"},
		{src: "x = a % (b * c)", want: "x = a % (b * c);"},
		{src: "x = a % (b / c)", want: "x = a % (b / c);"},
		{src: "x = !(a && b)", want: "x = !(a && b);"},
		{src: "x = -(a + b)", want: "x = -(a + b);"},
		{src: "x = a < b == c", want: "x = a < b == c;"},
	}
	for _, d := range data {
		out := render(t, d.src, JS)
		if !strings.Contains(out, d.want) {
			t.Errorf("%s: want %q in:\n%s", d.src, d.want, out)
		}
	}
}

func TestJSIndexInverse(t *testing.T) {
	out := render(t, "x = arr[0]", JS)
	if !strings.Contains(out, "x = arr[0];") {
		t.Fatalf("literal index:\n%s", out)
	}
	out = render(t, "x = arr[i]", JS)
	if !strings.Contains(out, "x = arr[i];") {
		t.Fatalf("peeled index:\n%s", out)
	}
	out = render(t, "x = arr[i + 1]", JS)
	if !strings.Contains(out, "x = arr[i + 1];") {
		t.Fatalf("shifted index:\n%s", out)
	}
}

func TestJSSleepHelper(t *testing.T) {
	out := render(t, "await sleep(1);\nawait sleep(2)", JS)
	if got := strings.Count(out, "function sleep"); got != 1 {
		t.Fatalf("helper emitted %d times:\n%s", got, out)
	}
	if !strings.Contains(out, "await sleep(1);\nawait sleep(2);") {
		t.Fatalf("calls missing:\n%s", out)
	}
}

func TestJSReservedRename(t *testing.T) {
	out := render(t, "Math = 5", JS)
	want := "var Math_;\n\nMath_ = 5;\n"
	if out != want {
		t.Fatalf("got:\n%s", out)
	}
}

func TestJSTrig(t *testing.T) {
	out := render(t, "x = Math.sin(45 * Math.PI / 180)", JS)
	if !strings.Contains(out, "x = Math.sin(45 * Math.PI / 180);") {
		t.Fatalf("forward trig:\n%s", out)
	}
	out = render(t, "x = Math.asin(y) * 180 / Math.PI", JS)
	if !strings.Contains(out, "x = Math.asin(y) * 180 / Math.PI;") {
		t.Fatalf("inverse trig:\n%s", out)
	}
}

func TestJSRobotCalls(t *testing.T) {
	data := []struct {
		src  string
		want string
	}{
		{src: "await bot.setTorque(1, true)", want: "await bot.setTorque(1, true);"},
		{src: "await bot.setTorque(1, false)", want: "await bot.setTorque(1, false);"},
		{src: "await bot.rebootMotor(4)", want: "await bot.rebootMotor(4);"},
		{src: "x = await bot.getRightAntenna()", want: "x = await bot.getRightAntenna();"},
		{src: "x = await bot.getMotorLoad(2) + 1", want: "x = await bot.getMotorLoad(2) + 1;"},
	}
	for _, d := range data {
		out := render(t, d.src, JS)
		if !strings.Contains(out, d.want) {
			t.Errorf("%s: want %q in:\n%s", d.src, d.want, out)
		}
	}
}

func TestJSFixpoint(t *testing.T) {
	data := []string{
		"var x = 1;\nif (x < 3) { await bot.setAntennas(10, 20); } else { await bot.setAntennas(0, 0); }",
		"await sleep(1);",
		"for (var i = 0; i < 10; i++) { await bot.setLeftAntenna(i); }",
		"console.log('v=' + x);",
		"x = Math.sin(45 * Math.PI / 180);",
		"x = Math.asin(y) * 180 / Math.PI;",
		"x = arr[i]; arr[0] = x;",
		"await bot.setTorque(1, true);",
		"x = Date.now();",
		"x = (1 + 2) * 3;",
		"x = a / (b * c);",
		"while (await bot.isConnected()) { await sleep(1); }",
		"await bot.moveToPose([1, 2, 3, 4, 5, 6]);",
	}
	for _, src := range data {
		first := render(t, src, JS)
		second := render(t, first, JS)
		if first != second {
			t.Errorf("%s: not a fixpoint:\n--- first\n%s\n--- second\n%s", src, first, second)
		}
	}
}

func TestJSStringQuoting(t *testing.T) {
	ws := graph.NewWorkspace()
	say := graph.New(graph.KindPrint)
	text := graph.New(graph.KindText)
	text.Text = "it's\n\"done\""
	say.Connect(graph.SlotText, text)
	ws.AppendRoot(say)
	out, err := Generate(ws, JS)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, `console.log('it\'s\n"done"');`) {
		t.Fatalf("got:\n%s", out)
	}
}

func TestFormatNum(t *testing.T) {
	data := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 42, want: "42"},
		{in: -7, want: "-7"},
		{in: 0.5, want: "0.5"},
		{in: 1.25, want: "1.25"},
	}
	for _, d := range data {
		if got := formatNum(d.in); got != d.want {
			t.Errorf("%v: want %s, got %s", d.in, d.want, got)
		}
	}
}

func TestContextRename(t *testing.T) {
	ctx := newContext([]string{"for"})
	if got := ctx.rename("robot speed"); got != "robot_speed" {
		t.Fatalf("sanitize: got %s", got)
	}
	if got := ctx.rename("robot speed"); got != "robot_speed" {
		t.Fatalf("rename not stable: got %s", got)
	}
	if got := ctx.rename("for"); got != "for_" {
		t.Fatalf("reserved: got %s", got)
	}
	if got := ctx.rename("robot+speed"); got != "robot_speed2" {
		t.Fatalf("collision: got %s", got)
	}
	if got := ctx.rename("3rd"); got != "_3rd" {
		t.Fatalf("leading digit: got %s", got)
	}
}
