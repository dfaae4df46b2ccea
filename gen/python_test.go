package gen

import (
	"strings"
	"testing"

	"github.com/minilab/bloc/graph"
)

const pyShellHead = "import time\nfrom minibot import MiniBot\n\nwith MiniBot() as bot:\n    start_time = time.monotonic()\n\n"

func TestPyEmpty(t *testing.T) {
	out, err := Generate(graph.NewWorkspace(), Python)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != pyShellHead+"    pass\n" {
		t.Fatalf("got:\n%s", out)
	}
}

func TestPyProgram(t *testing.T) {
	src := "var x = 1;\nif (x < 3) {\n  await bot.setAntennas(10, 20);\n}"
	want := pyShellHead + "    x = 1\n    if x < 3:\n        bot.set_antennas(10, 20)\n"
	if out := render(t, src, Python); out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestPyPose(t *testing.T) {
	out := render(t, "await bot.moveToPose([1, 2, 3, 4, 5, 6])", Python)
	if !strings.Contains(out, "bot.set_head_pose(make_pose(1, 2, 3, 4, 5, 6))") {
		t.Fatalf("call missing:\n%s", out)
	}
	if !strings.HasPrefix(out, "import time\nfrom minibot.utils import make_pose\n") {
		t.Fatalf("import missing:\n%s", out)
	}
}

func TestPyTrig(t *testing.T) {
	out := render(t, "x = Math.sin(a * Math.PI / 180)", Python)
	if !strings.Contains(out, "x = math.sin(a / 180.0 * math.pi)") {
		t.Fatalf("forward trig:\n%s", out)
	}
	if !strings.Contains(out, "import math\n") {
		t.Fatalf("math import missing:\n%s", out)
	}
	out = render(t, "x = Math.asin(a) * 180 / Math.PI", Python)
	if !strings.Contains(out, "x = math.asin(a) / math.pi * 180") {
		t.Fatalf("inverse trig:\n%s", out)
	}
}

func TestPyConcatCoercion(t *testing.T) {
	out := render(t, "console.log('v=' + x + 2)", Python)
	if !strings.Contains(out, "print('v=' + str(x) + str(2))") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestPyLoopAndSleep(t *testing.T) {
	out := render(t, "for (var i = 0; i < 5; i++) { await sleep(0.5); }", Python)
	if !strings.Contains(out, "for i in range(0, 5):\n        time.sleep(0.5)") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestPyEmptyBranch(t *testing.T) {
	out := render(t, "if (x > 1) {}", Python)
	if !strings.Contains(out, "if x > 1:\n        pass") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestPyLogic(t *testing.T) {
	out := render(t, "x = !(a && b) || c", Python)
	if !strings.Contains(out, "x = not (a and b) or c") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestPyNow(t *testing.T) {
	out := render(t, "x = Date.now()", Python)
	if !strings.Contains(out, "x = int((time.monotonic() - start_time) * 1000)") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestPyListOps(t *testing.T) {
	out := render(t, "x = arr[i]; arr[0] = arr.length", Python)
	if !strings.Contains(out, "x = arr[i]") {
		t.Fatalf("get:\n%s", out)
	}
	if !strings.Contains(out, "arr[0] = len(arr)") {
		t.Fatalf("set:\n%s", out)
	}
}

func TestPyCapabilityGaps(t *testing.T) {
	data := []struct {
		src  string
		want string
	}{
		{src: "await bot.setTorque(1, true)", want: "pass  # torque on for motor 1 is not available here"},
		{src: "await bot.setTorque(1, false)", want: "pass  # torque off for motor 1 is not available here"},
		{src: "await bot.rebootMotor(2)", want: "pass  # rebooting motor 2 is not available here"},
		{src: "x = await bot.isConnected()", want: "x = True"},
		{src: "x = await bot.pingMotor(3)", want: "x = False"},
		{src: "x = await bot.getMotorTemperature(3)", want: "x = 0"},
	}
	for _, d := range data {
		out := render(t, d.src, Python)
		if !strings.Contains(out, d.want) {
			t.Errorf("%s: want %q in:\n%s", d.src, d.want, out)
		}
	}
}

func TestPyRobotReads(t *testing.T) {
	out := render(t, "x = await bot.getHeadPose(); y = await bot.getLeftAntenna()", Python)
	if !strings.Contains(out, "x = bot.get_head_pose()") {
		t.Fatalf("pose read:\n%s", out)
	}
	if !strings.Contains(out, "y = bot.get_left_antenna()") {
		t.Fatalf("antenna read:\n%s", out)
	}
}
