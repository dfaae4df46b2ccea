package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/minilab/bloc/graph"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "programs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleWorkspace() *graph.Workspace {
	ws := graph.NewWorkspace()
	set := graph.New(graph.KindSetVariable)
	set.Var = ws.Variable("x")
	value := graph.New(graph.KindNumber)
	value.Num = 42
	set.Connect(graph.SlotValue, value)
	ws.AppendRoot(set)
	return ws
}

func TestSaveLoad(t *testing.T) {
	st := openStore(t)
	if err := st.Save("demo", sampleWorkspace()); err != nil {
		t.Fatalf("save: %v", err)
	}
	ws, err := st.Load("demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	roots := ws.Roots()
	if len(roots) != 1 || roots[0].Kind != graph.KindSetVariable {
		t.Fatalf("roots: %#v", roots)
	}
	if roots[0].Var == nil || roots[0].Var.Name != "x" {
		t.Fatalf("variable: %#v", roots[0].Var)
	}
	if v := roots[0].Slot(graph.SlotValue); v == nil || v.Num != 42 {
		t.Fatalf("value: %#v", v)
	}
}

func TestSaveOverwrites(t *testing.T) {
	st := openStore(t)
	if err := st.Save("demo", sampleWorkspace()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.Save("demo", graph.NewWorkspace()); err != nil {
		t.Fatalf("save: %v", err)
	}
	ws, err := st.Load("demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ws.Empty() {
		t.Fatal("overwrite not applied")
	}
}

func TestSaveEmptyName(t *testing.T) {
	st := openStore(t)
	if err := st.Save("", sampleWorkspace()); err == nil {
		t.Fatal("empty name should be rejected")
	}
}

func TestLoadMissing(t *testing.T) {
	st := openStore(t)
	if _, err := st.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListAndDelete(t *testing.T) {
	st := openStore(t)
	for _, name := range []string{"b", "a"} {
		if err := st.Save(name, sampleWorkspace()); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	names, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names: %v", names)
	}
	if err := st.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.Delete("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	names, _ = st.List()
	if len(names) != 1 || names[0] != "b" {
		t.Fatalf("names after delete: %v", names)
	}
}
