package graph

import (
	"encoding/json"
	"testing"
)

func sampleWorkspace() *Workspace {
	ws := NewWorkspace()

	set := New(KindSetVariable)
	set.Var = ws.Variable("x")
	set.Connect(SlotValue, number(2))

	cond := New(KindCompare)
	cond.SetField(FieldOp, "<")
	left := New(KindVariable)
	left.Var = ws.Variable("x")
	cond.Connect(SlotLeft, left)
	cond.Connect(SlotRight, number(5))

	stmt := NewIf(true)
	stmt.Connect(SlotIf, cond)
	say := New(KindPrint)
	text := New(KindText)
	text.Text = "hi"
	say.Connect(SlotText, text)
	stmt.Attach(ChainDo, say)
	stmt.Attach(ChainElse, New(KindRebootMotor))

	set.SetNext(stmt)
	ws.AppendRoot(set)
	return ws
}

func TestWorkspaceJSONRoundTrip(t *testing.T) {
	ws := sampleWorkspace()
	data, err := json.Marshal(ws)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Workspace
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	roots := got.Roots()
	if len(roots) != 1 {
		t.Fatalf("want 1 root, got %d", len(roots))
	}
	set := roots[0]
	if set.Kind != KindSetVariable || set.Var == nil || set.Var.Name != "x" {
		t.Fatalf("first node: %v %v", set.Kind, set.Var)
	}
	if v := set.Slot(SlotValue); v == nil || v.Num != 2 {
		t.Fatalf("value slot: %#v", v)
	}
	stmt := set.Next()
	if stmt == nil || stmt.Kind != KindIf || !stmt.HasElse() {
		t.Fatalf("second node: %#v", stmt)
	}
	cond := stmt.Slot(SlotIf)
	if cond == nil || cond.Kind != KindCompare || cond.Field(FieldOp) != "<" {
		t.Fatalf("condition: %#v", cond)
	}
	if l := cond.Slot(SlotLeft); l == nil || l.Var != set.Var {
		t.Fatal("variable handle should be shared after decode")
	}
	if say := stmt.ChainHead(ChainDo); say == nil || say.Kind != KindPrint {
		t.Fatalf("do chain: %#v", say)
	}
	if alt := stmt.ChainHead(ChainElse); alt == nil || alt.Kind != KindRebootMotor {
		t.Fatalf("else chain: %#v", alt)
	}
}

func TestWorkspaceJSONStable(t *testing.T) {
	ws := sampleWorkspace()
	first, err := json.Marshal(ws)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Workspace
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := json.Marshal(&decoded)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("codec not stable:\n%s\n%s", first, second)
	}
}

func TestWorkspaceJSONUnknownKind(t *testing.T) {
	blob := `{"roots":[{"x":0,"y":0,"chain":[{"id":"n1","kind":"bogus"}]}]}`
	var ws Workspace
	if err := json.Unmarshal([]byte(blob), &ws); err == nil {
		t.Fatal("unknown kind should fail decoding")
	}
}
