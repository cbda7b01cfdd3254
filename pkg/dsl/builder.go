package dsl

import (
	"fmt"

	"github.com/Semihazah/skein/pkg/lines"
	"github.com/Semihazah/skein/pkg/program"
)

// Builder manages script construction. Nodes are emitted in the order they
// are first named; line texts registered through Say accumulate into the
// string table.
type Builder struct {
	name    string
	nodes   map[string]*NodeBuilder
	order   []string
	records []lines.Record
}

// New creates a new script builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Node creates a node in the script.
// If the node already exists, it returns the existing builder.
func (b *Builder) Node(name string) *NodeBuilder {
	if nb, ok := b.nodes[name]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    program.Node{Name: name, Labels: make(map[string]int)},
		builder: b,
	}
	b.nodes[name] = nb
	b.order = append(b.order, name)
	return nb
}

// Build compiles the accumulated nodes into a Program and string table.
func (b *Builder) Build() (*program.Program, *lines.Table, error) {
	if len(b.nodes) == 0 {
		return nil, nil, fmt.Errorf("script %q has no nodes", b.name)
	}
	nodes := make(map[string]*program.Node, len(b.nodes))
	for _, name := range b.order {
		nb := b.nodes[name]
		for label, idx := range nb.node.Labels {
			if idx >= len(nb.node.Instructions) {
				return nil, nil, fmt.Errorf("node %q: label %q points past the last instruction", name, label)
			}
		}
		n := nb.node
		nodes[name] = &n
	}
	return &program.Program{Name: b.name, Nodes: nodes}, lines.NewTable(b.records), nil
}

func (b *Builder) record(id, text string) {
	b.records = append(b.records, lines.Record{ID: id, Text: text})
}
