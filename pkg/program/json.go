package program

import (
	"encoding/json"
	"fmt"
	"io"
)

// The wire shape uses string opcode names and a tagged operand object so
// compiled programs stay diffable and hand-editable in fixtures.

type programJSON struct {
	Name  string              `json:"name"`
	Nodes map[string]nodeJSON `json:"nodes"`
}

type nodeJSON struct {
	Name         string            `json:"name"`
	Instructions []instructionJSON `json:"instructions"`
	Labels       map[string]int    `json:"labels,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	SourceTextID string            `json:"source_text_id,omitempty"`
}

type instructionJSON struct {
	Op       string        `json:"op"`
	Operands []operandJSON `json:"operands,omitempty"`
}

type operandJSON struct {
	String *string  `json:"string,omitempty"`
	Bool   *bool    `json:"bool,omitempty"`
	Float  *float32 `json:"float,omitempty"`
}

// Decode reads a compiled program from its JSON form.
func Decode(r io.Reader) (*Program, error) {
	var pj programJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&pj); err != nil {
		return nil, fmt.Errorf("decoding program: %w", err)
	}
	p := &Program{Name: pj.Name, Nodes: make(map[string]*Node, len(pj.Nodes))}
	for name, nj := range pj.Nodes {
		n := &Node{
			Name:         nj.Name,
			Labels:       nj.Labels,
			Tags:         nj.Tags,
			SourceTextID: nj.SourceTextID,
		}
		if n.Name == "" {
			n.Name = name
		}
		for i, ij := range nj.Instructions {
			op, err := ParseOpCode(ij.Op)
			if err != nil {
				return nil, fmt.Errorf("node %q instruction %d: %w", name, i, err)
			}
			inst := Instruction{Op: op}
			for _, oj := range ij.Operands {
				switch {
				case oj.String != nil:
					inst.Operands = append(inst.Operands, StringOperand(*oj.String))
				case oj.Bool != nil:
					inst.Operands = append(inst.Operands, BoolOperand(*oj.Bool))
				case oj.Float != nil:
					inst.Operands = append(inst.Operands, FloatOperand(*oj.Float))
				default:
					return nil, fmt.Errorf("node %q instruction %d: operand with no value", name, i)
				}
			}
			n.Instructions = append(n.Instructions, inst)
		}
		p.Nodes[name] = n
	}
	return p, nil
}

// Encode writes the program in its JSON form.
func Encode(w io.Writer, p *Program) error {
	pj := programJSON{Name: p.Name, Nodes: make(map[string]nodeJSON, len(p.Nodes))}
	for name, n := range p.Nodes {
		nj := nodeJSON{
			Name:         n.Name,
			Labels:       n.Labels,
			Tags:         n.Tags,
			SourceTextID: n.SourceTextID,
		}
		for _, inst := range n.Instructions {
			ij := instructionJSON{Op: inst.Op.String()}
			for _, o := range inst.Operands {
				o := o
				switch o.Kind {
				case OperandBool:
					ij.Operands = append(ij.Operands, operandJSON{Bool: &o.Bool})
				case OperandFloat:
					ij.Operands = append(ij.Operands, operandJSON{Float: &o.Float})
				default:
					ij.Operands = append(ij.Operands, operandJSON{String: &o.String})
				}
			}
			nj.Instructions = append(nj.Instructions, ij)
		}
		pj.Nodes[name] = nj
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pj); err != nil {
		return fmt.Errorf("encoding program: %w", err)
	}
	return nil
}
