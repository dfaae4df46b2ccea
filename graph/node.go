package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// Slot is a named attachment point holding at most one child value node.
type Slot struct {
	Name string
	Node *Node
}

// Chain is a named nested statement chain (loop body, if branch).
type Chain struct {
	Name string
	Head *Node
}

// Node is one block of the graph: either a value node pluggable into a
// slot, or a statement node linked into a chain. Which one it is follows
// from the Kind.
type Node struct {
	ID   string
	Kind Kind

	Num  float64
	Text string
	Bool bool
	Var  *Variable

	fields map[string]string
	slots  []Slot
	chains []Chain

	parent *Node
	prev   *Node
	next   *Node

	X float64
	Y float64
}

func New(kind Kind) *Node {
	return &Node{
		ID:     uuid.New().String(),
		Kind:   kind,
		fields: make(map[string]string),
	}
}

// NewIf creates an if node; the else flag is part of the node shape and
// must be known before any chain is attached.
func NewIf(hasElse bool) *Node {
	n := New(KindIf)
	if hasElse {
		n.SetField(FieldElse, "true")
		n.chains = []Chain{{Name: ChainDo}, {Name: ChainElse}}
	} else {
		n.chains = []Chain{{Name: ChainDo}}
	}
	return n
}

func (n *Node) SetField(name, value string) {
	n.fields[name] = value
}

func (n *Node) Field(name string) string {
	return n.fields[name]
}

func (n *Node) HasElse() bool {
	return n.fields[FieldElse] == "true"
}

// Connect plugs child into the named slot. A slot holds at most one child
// and value graphs stay acyclic.
func (n *Node) Connect(name string, child *Node) error {
	if child == nil {
		return nil
	}
	if child.Kind.Statement() {
		return fmt.Errorf("%s: statement node cannot fill slot %s", child.Kind, name)
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("%s: node cannot occupy its own slot", name)
		}
	}
	for i := range n.slots {
		if n.slots[i].Name == name {
			if n.slots[i].Node != nil {
				return fmt.Errorf("%s: slot already occupied", name)
			}
			n.slots[i].Node = child
			child.parent = n
			return nil
		}
	}
	n.slots = append(n.slots, Slot{Name: name, Node: child})
	child.parent = n
	return nil
}

func (n *Node) Slot(name string) *Node {
	for i := range n.slots {
		if n.slots[i].Name == name {
			return n.slots[i].Node
		}
	}
	return nil
}

func (n *Node) Slots() []Slot {
	return n.slots
}

// Attach sets the head of the named nested chain.
func (n *Node) Attach(name string, head *Node) error {
	if head != nil && !head.Kind.Statement() {
		return fmt.Errorf("%s: value node cannot start a chain", head.Kind)
	}
	for i := range n.chains {
		if n.chains[i].Name == name {
			n.chains[i].Head = head
			return nil
		}
	}
	n.chains = append(n.chains, Chain{Name: name, Head: head})
	return nil
}

func (n *Node) ChainHead(name string) *Node {
	for i := range n.chains {
		if n.chains[i].Name == name {
			return n.chains[i].Head
		}
	}
	return nil
}

func (n *Node) Chains() []Chain {
	return n.chains
}

// SetNext links next after n in the statement chain.
func (n *Node) SetNext(next *Node) error {
	if next == nil {
		n.next = nil
		return nil
	}
	if !n.Kind.Statement() || !next.Kind.Statement() {
		return fmt.Errorf("%s: only statement nodes chain", n.Kind)
	}
	for c := next; c != nil; c = c.next {
		if c == n {
			return fmt.Errorf("%s: statement cannot follow itself", n.Kind)
		}
	}
	n.next = next
	next.prev = n
	return nil
}

func (n *Node) Next() *Node {
	return n.next
}

func (n *Node) Prev() *Node {
	return n.prev
}

// Tail returns the last node of the chain starting at n.
func (n *Node) Tail() *Node {
	c := n
	for c.next != nil {
		c = c.next
	}
	return c
}
