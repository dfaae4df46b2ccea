package graph

import (
	"encoding/json"
	"fmt"
)

// JSON codec for whole workspaces. Kinds serialize by name so stored
// programs stay readable across builds.

type varJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type slotJSON struct {
	Name string    `json:"name"`
	Node *nodeJSON `json:"node,omitempty"`
}

type chainJSON struct {
	Name  string     `json:"name"`
	Chain []nodeJSON `json:"chain,omitempty"`
}

type nodeJSON struct {
	ID     string            `json:"id"`
	Kind   string            `json:"kind"`
	Num    float64           `json:"num,omitempty"`
	Text   string            `json:"text,omitempty"`
	Bool   bool              `json:"bool,omitempty"`
	Var    string            `json:"var,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Slots  []slotJSON        `json:"slots,omitempty"`
	Chains []chainJSON       `json:"chains,omitempty"`
}

type rootJSON struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Chain []nodeJSON `json:"chain"`
}

type workspaceJSON struct {
	Variables []varJSON  `json:"variables,omitempty"`
	Roots     []rootJSON `json:"roots"`
}

func (w *Workspace) MarshalJSON() ([]byte, error) {
	var doc workspaceJSON
	for _, v := range w.order {
		doc.Variables = append(doc.Variables, varJSON{ID: v.ID, Name: v.Name})
	}
	for _, r := range w.roots {
		doc.Roots = append(doc.Roots, rootJSON{
			X:     r.X,
			Y:     r.Y,
			Chain: encodeChain(r),
		})
	}
	return json.Marshal(doc)
}

func encodeChain(head *Node) []nodeJSON {
	var out []nodeJSON
	for n := head; n != nil; n = n.next {
		out = append(out, encodeNode(n))
	}
	return out
}

func encodeNode(n *Node) nodeJSON {
	doc := nodeJSON{
		ID:   n.ID,
		Kind: n.Kind.String(),
		Num:  n.Num,
		Text: n.Text,
		Bool: n.Bool,
	}
	if n.Var != nil {
		doc.Var = n.Var.ID
	}
	if len(n.fields) > 0 {
		doc.Fields = n.fields
	}
	for _, s := range n.slots {
		slot := slotJSON{Name: s.Name}
		if s.Node != nil {
			child := encodeNode(s.Node)
			slot.Node = &child
		}
		doc.Slots = append(doc.Slots, slot)
	}
	for _, c := range n.chains {
		doc.Chains = append(doc.Chains, chainJSON{
			Name:  c.Name,
			Chain: encodeChain(c.Head),
		})
	}
	return doc
}

func (w *Workspace) UnmarshalJSON(data []byte) error {
	var doc workspaceJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	w.roots = nil
	w.vars = make(map[string]*Variable)
	w.order = nil

	byID := make(map[string]*Variable)
	for _, v := range doc.Variables {
		handle := &Variable{ID: v.ID, Name: v.Name}
		w.vars[v.Name] = handle
		w.order = append(w.order, handle)
		byID[v.ID] = handle
	}
	for _, r := range doc.Roots {
		head, err := decodeChain(r.Chain, byID)
		if err != nil {
			return err
		}
		if head == nil {
			continue
		}
		head.X = r.X
		head.Y = r.Y
		w.roots = append(w.roots, head)
	}
	return nil
}

func decodeChain(docs []nodeJSON, vars map[string]*Variable) (*Node, error) {
	var head, tail *Node
	for i := range docs {
		n, err := decodeNode(&docs[i], vars)
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = n
		} else if err := tail.SetNext(n); err != nil {
			return nil, err
		}
		tail = n
	}
	return head, nil
}

func decodeNode(doc *nodeJSON, vars map[string]*Variable) (*Node, error) {
	kind, ok := KindByName(doc.Kind)
	if !ok {
		return nil, fmt.Errorf("%s: unknown node kind", doc.Kind)
	}
	n := New(kind)
	if doc.ID != "" {
		n.ID = doc.ID
	}
	n.Num = doc.Num
	n.Text = doc.Text
	n.Bool = doc.Bool
	if doc.Var != "" {
		v, ok := vars[doc.Var]
		if !ok {
			return nil, fmt.Errorf("%s: unknown variable id", doc.Var)
		}
		n.Var = v
	}
	for name, value := range doc.Fields {
		n.SetField(name, value)
	}
	for _, s := range doc.Slots {
		if s.Node == nil {
			n.slots = append(n.slots, Slot{Name: s.Name})
			continue
		}
		child, err := decodeNode(s.Node, vars)
		if err != nil {
			return nil, err
		}
		if err := n.Connect(s.Name, child); err != nil {
			return nil, err
		}
	}
	for _, c := range doc.Chains {
		head, err := decodeChain(c.Chain, vars)
		if err != nil {
			return nil, err
		}
		if err := n.Attach(c.Name, head); err != nil {
			return nil, err
		}
	}
	return n, nil
}
