// Package validator statically checks a compiled program against its string
// table before it ships: unresolved line ids and broken jump labels are the
// two faults that abort sessions at runtime, and both are detectable at
// build time.
package validator

import (
	"fmt"

	"github.com/Semihazah/skein/pkg/lines"
	"github.com/Semihazah/skein/pkg/program"
)

// Severity classifies an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one integrity finding.
type Issue struct {
	Severity Severity
	Node     string
	Message  string
}

func (i Issue) String() string {
	if i.Node != "" {
		return fmt.Sprintf("%s: node %q: %s", i.Severity, i.Node, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// Check inspects prog against table and returns all findings. Errors mean a
// session bound to these assets can abort at runtime; warnings are contract
// smells (duplicate line ids resolve first-match-wins by design).
func Check(prog *program.Program, table *lines.Table) []Issue {
	var issues []Issue

	if len(prog.Nodes) == 0 {
		issues = append(issues, Issue{Severity: SeverityError, Message: "program has no nodes"})
	}

	seen := make(map[string]bool)
	for _, rec := range table.Records() {
		if seen[rec.ID] {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("duplicate line id %q: first occurrence wins", rec.ID),
			})
		}
		seen[rec.ID] = true
	}

	for name, node := range prog.Nodes {
		for pc, inst := range node.Instructions {
			switch inst.Op {
			case program.OpRunLine, program.OpAddOption:
				id := firstString(inst)
				if id == "" {
					issues = append(issues, Issue{
						Severity: SeverityError, Node: name,
						Message: fmt.Sprintf("pc %d: %s without a string id operand", pc, inst.Op),
					})
					continue
				}
				if _, ok := table.Lookup(id); !ok {
					issues = append(issues, Issue{
						Severity: SeverityError, Node: name,
						Message: fmt.Sprintf("pc %d: line id %q not in string table", pc, id),
					})
				}
			case program.OpJumpTo, program.OpJumpIfFalse:
				label := firstString(inst)
				if _, ok := node.Labels[label]; !ok {
					issues = append(issues, Issue{
						Severity: SeverityError, Node: name,
						Message: fmt.Sprintf("pc %d: jump to unknown label %q", pc, label),
					})
				}
			}
		}
		for label, idx := range node.Labels {
			if idx < 0 || idx > len(node.Instructions) {
				issues = append(issues, Issue{
					Severity: SeverityError, Node: name,
					Message: fmt.Sprintf("label %q points outside the instruction list", label),
				})
			}
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func firstString(inst program.Instruction) string {
	if len(inst.Operands) == 0 || inst.Operands[0].Kind != program.OperandString {
		return ""
	}
	return inst.Operands[0].String
}
