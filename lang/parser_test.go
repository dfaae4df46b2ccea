package lang

import "testing"

func parseOne(t *testing.T, src string) Node {
	t.Helper()
	script, err := ParseString(src)
	if err != nil {
		t.Fatalf("%s: parse error: %v", src, err)
	}
	if len(script.Nodes) != 1 {
		t.Fatalf("%s: want one statement, got %d", src, len(script.Nodes))
	}
	return script.Nodes[0]
}

func TestParseVar(t *testing.T) {
	decl, ok := parseOne(t, "var x = 1, y").(Var)
	if !ok {
		t.Fatalf("want Var, got %T", parseOne(t, "var x = 1, y"))
	}
	if len(decl.Decls) != 2 {
		t.Fatalf("want 2 declarators, got %d", len(decl.Decls))
	}
	first := decl.Decls[0].(Assignment)
	if id := first.Target.(Identifier); id.Name != "x" {
		t.Fatalf("want x, got %s", id.Name)
	}
	if lit := first.Node.(Literal[float64]); lit.Value != 1 {
		t.Fatalf("want 1, got %v", lit.Value)
	}
	second := decl.Decls[1].(Assignment)
	if _, ok := second.Node.(Undefined); !ok {
		t.Fatalf("bare declarator should hold undefined, got %T", second.Node)
	}
}

func TestParsePrecedence(t *testing.T) {
	n := parseOne(t, "x = 1 + 2 * 3").(Assignment)
	add, ok := n.Node.(Binary)
	if !ok || add.Op != Add {
		t.Fatalf("want +, got %#v", n.Node)
	}
	mul, ok := add.Right.(Binary)
	if !ok || mul.Op != Mul {
		t.Fatalf("* should bind tighter, got %#v", add.Right)
	}
}

func TestParseGroup(t *testing.T) {
	n := parseOne(t, "x = (1 + 2) * 3").(Assignment)
	mul := n.Node.(Binary)
	if mul.Op != Mul {
		t.Fatalf("want *, got %c", mul.Op)
	}
	add, ok := mul.Left.(Binary)
	if !ok || add.Op != Add {
		t.Fatalf("group should hold +, got %#v", mul.Left)
	}
}

func TestParseCompoundAssign(t *testing.T) {
	n := parseOne(t, "x += 2").(Assignment)
	bin, ok := n.Node.(Binary)
	if !ok || bin.Op != Add {
		t.Fatalf("compound assign should desugar to +, got %#v", n.Node)
	}
	if id := bin.Left.(Identifier); id.Name != "x" {
		t.Fatalf("left should be x, got %s", id.Name)
	}
}

func TestParseIfElse(t *testing.T) {
	stmt := parseOne(t, "if (a < b) { x = 1 } else { x = 2 }").(If)
	cdt := stmt.Cdt.(Binary)
	if cdt.Op != Lt {
		t.Fatalf("want <, got %c", cdt.Op)
	}
	if body := stmt.Csq.(Body); len(body.Nodes) != 1 {
		t.Fatalf("want 1 statement, got %d", len(body.Nodes))
	}
	if stmt.Alt == nil {
		t.Fatal("else branch missing")
	}
}

func TestParseFor(t *testing.T) {
	loop := parseOne(t, "for (var i = 0; i < 10; i++) { x = i }").(For)
	if _, ok := loop.Init.(Var); !ok {
		t.Fatalf("want var initializer, got %T", loop.Init)
	}
	cdt := loop.Cdt.(Binary)
	if cdt.Op != Lt {
		t.Fatalf("want <, got %c", cdt.Op)
	}
	incr, ok := loop.After.(Increment)
	if !ok || !incr.Post {
		t.Fatalf("want postfix increment, got %#v", loop.After)
	}
	if body := loop.Body.(Body); len(body.Nodes) != 1 {
		t.Fatalf("want 1 statement, got %d", len(body.Nodes))
	}
}

func TestParseAwaitCall(t *testing.T) {
	aw := parseOne(t, "await bot.moveToPose([0, 0, 0, 0, 0, 0])").(Await)
	call := aw.Node.(Call)
	access := call.Callee.(Access)
	if access.Name != "moveToPose" {
		t.Fatalf("want moveToPose, got %s", access.Name)
	}
	if recv := access.Object.(Identifier); recv.Name != "bot" {
		t.Fatalf("want bot, got %s", recv.Name)
	}
	if len(call.Args) != 1 {
		t.Fatalf("want 1 argument, got %d", len(call.Args))
	}
	if arr := call.Args[0].(Array); len(arr.Nodes) != 6 {
		t.Fatalf("want 6 elements, got %d", len(arr.Nodes))
	}
}

func TestParseIndexAssign(t *testing.T) {
	n := parseOne(t, "arr[i + 1] = 5").(Assignment)
	ix, ok := n.Target.(Index)
	if !ok {
		t.Fatalf("want index target, got %T", n.Target)
	}
	if _, ok := ix.Expr.(Binary); !ok {
		t.Fatalf("want binary index, got %T", ix.Expr)
	}
}

func TestParseFunctionExpression(t *testing.T) {
	n := parseOne(t, "new Promise(function (resolve) { setTimeout(resolve, s * 1000); })")
	call, ok := n.(Call)
	if !ok {
		t.Fatalf("want call, got %T", n)
	}
	fn, ok := call.Args[0].(Func)
	if !ok {
		t.Fatalf("want function argument, got %T", call.Args[0])
	}
	if len(fn.Args) != 1 {
		t.Fatalf("want 1 parameter, got %d", len(fn.Args))
	}
}

func TestParseErrors(t *testing.T) {
	data := []string{
		"x = (1 + 2",
		"var 1 = 2",
		"if a < b { x = 1 }",
		"arr[1 = 2",
		"x = 1\n\xffy = 2",
		"a\x00b",
	}
	for _, src := range data {
		if _, err := ParseString(src); err == nil {
			t.Errorf("%s: error expected", src)
		}
	}
}

func TestParseScript(t *testing.T) {
	script, err := ParseString("x = 1;\ny = 2\n\nz = 3")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(script.Nodes) != 3 {
		t.Fatalf("want 3 statements, got %d", len(script.Nodes))
	}
}
