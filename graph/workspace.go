package graph

import (
	"sort"

	"github.com/google/uuid"
)

// Variable is a name-keyed handle; within one workspace the same name
// always resolves to the same handle.
type Variable struct {
	ID   string
	Name string
}

// RootGap is the vertical offset between a new root block and the lowest
// existing one.
const RootGap = 40

// Workspace owns the root statement nodes and the variable registry.
type Workspace struct {
	roots []*Node
	vars  map[string]*Variable
	order []*Variable
}

func NewWorkspace() *Workspace {
	return &Workspace{
		vars: make(map[string]*Variable),
	}
}

// Variable returns the handle for name, creating it on first use.
func (w *Workspace) Variable(name string) *Variable {
	if v, ok := w.vars[name]; ok {
		return v
	}
	v := &Variable{
		ID:   uuid.New().String(),
		Name: name,
	}
	w.vars[name] = v
	w.order = append(w.order, v)
	return v
}

func (w *Workspace) Variables() []*Variable {
	return w.order
}

// AppendRoot adds head as a new top-level chain, placed a fixed gap below
// the lowest existing root.
func (w *Workspace) AppendRoot(head *Node) {
	if head == nil {
		return
	}
	var lowest float64
	for _, r := range w.roots {
		if r.Y > lowest {
			lowest = r.Y
		}
	}
	if len(w.roots) > 0 {
		head.Y = lowest + RootGap
	}
	w.roots = append(w.roots, head)
}

// Roots returns the top-level chains in document order (top to bottom).
func (w *Workspace) Roots() []*Node {
	roots := make([]*Node, len(w.roots))
	copy(roots, w.roots)
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].Y < roots[j].Y
	})
	return roots
}

func (w *Workspace) Empty() bool {
	return len(w.roots) == 0
}
