// Package gen renders a workspace graph back to source text. The engine
// here is target-agnostic: precedence-driven parenthesization, statement
// chain following, deferred definitions and identifier sanitization. All
// actual text comes from the two backends (js.go, python.go).
//
// Generation must be total over every kind the translators produce: a node
// kind without a render rule is a hard error, never a silent drop.
package gen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/minilab/bloc/graph"
)

type Target int

const (
	JS Target = iota
	Python
)

func (t Target) String() string {
	switch t {
	case JS:
		return "js"
	case Python:
		return "python"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// Generate renders every top-level chain of ws in document order. A fresh
// Context backs each call; nothing is shared between calls.
func Generate(ws *graph.Workspace, target Target) (string, error) {
	switch target {
	case JS:
		g := jsGen{ctx: newContext(jsReserved)}
		return g.program(ws)
	case Python:
		g := pyGen{ctx: newContext(pyReserved)}
		return g.program(ws)
	default:
		return "", fmt.Errorf("%s: unknown generation target", target)
	}
}

// Order is the numeric binding strength of a rendered expression. Lower
// binds tighter. A child is parenthesized inside its parent slot iff the
// parent's required order is <= the child's, except that the two boundary
// orders (atomic, none) never need wrapping against themselves.
type Order float64

const (
	OrderAtomic Order = 0
	OrderNone   Order = 99
)

func wrap(code string, child, parent Order) string {
	if parent <= child {
		if parent == child && (parent == OrderAtomic || parent == OrderNone) {
			return code
		}
		return "(" + code + ")"
	}
	return code
}

// backend is the per-target rule set the engine drives.
type backend interface {
	value(n *graph.Node) (string, Order, error)
	statement(n *graph.Node) (string, error)
}

// valueCode renders the child plugged into the named slot of n, wrapped
// according to the parent order; def stands in for an empty slot.
func valueCode(b backend, n *graph.Node, slot string, parent Order, def string) (string, error) {
	child := n.Slot(slot)
	if child == nil {
		return def, nil
	}
	code, order, err := b.value(child)
	if err != nil {
		return "", err
	}
	return wrap(code, order, parent), nil
}

// chainCode renders head and every statement after it.
func chainCode(b backend, head *graph.Node) (string, error) {
	var lines []string
	for n := head; n != nil; n = n.Next() {
		s, err := b.statement(n)
		if err != nil {
			return "", err
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n"), nil
}

func indent(text, pad string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

func formatNum(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func errNoRule(n *graph.Node, target Target) error {
	return fmt.Errorf("%s: no %s render rule for this node kind", n.Kind, target)
}

type def struct {
	id   string
	text string
}

// Context is the per-call mutable state of one generation pass: the
// ordered deduplicated deferred definitions and the reserved-word-aware
// identifier table. It is created fresh per top-level call and never
// shared.
type Context struct {
	reserved map[string]bool
	names    map[string]string
	taken    map[string]bool
	aliases  []string
	defs     []def
	seen     map[string]bool
}

func newContext(reserved []string) *Context {
	ctx := Context{
		reserved: make(map[string]bool),
		names:    make(map[string]string),
		taken:    make(map[string]bool),
		seen:     make(map[string]bool),
	}
	for _, w := range reserved {
		ctx.reserved[w] = true
	}
	return &ctx
}

// provide records a deferred definition under a stable id; repeats are
// no-ops. Definitions flush in insertion order as the program prologue.
func (c *Context) provide(id, text string) {
	if c.seen[id] {
		return
	}
	c.seen[id] = true
	c.defs = append(c.defs, def{id: id, text: text})
}

func (c *Context) prologue() string {
	var texts []string
	for _, d := range c.defs {
		texts = append(texts, d.text)
	}
	return strings.Join(texts, "\n")
}

// rename maps a variable name to a target-safe alias, stable and 1:1
// within this pass.
func (c *Context) rename(name string) string {
	if alias, ok := c.names[name]; ok {
		return alias
	}
	alias := sanitize(name)
	if c.reserved[alias] {
		alias += "_"
	}
	base := alias
	for i := 2; c.taken[alias]; i++ {
		alias = base + strconv.Itoa(i)
	}
	c.taken[alias] = true
	c.names[name] = alias
	c.aliases = append(c.aliases, alias)
	return alias
}

func (c *Context) renamed() []string {
	return c.aliases
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if b.Len() == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
