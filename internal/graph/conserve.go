package graph

import "fmt"

// Epsilon is the tolerance for flow conservation checks. Amounts are stored
// in whole currency units, so one unit absorbs any float accumulation drift.
const Epsilon = 1.0

// A ConservationError reports a node whose outgoing flow disagrees with its
// value.
type ConservationError struct {
	NodeID  string
	Value   float64
	Outflow float64
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf("graph: node %s emits %.2f against value %.2f", e.NodeID, e.Outflow, e.Value)
}

// CheckConservation verifies the flow invariant over every node that has
// outgoing edges. Budget-side nodes (ministry-budget, project-budget) may
// emit less than their value: the unexecuted part of a budget legitimately
// stops at the budget-to-spending transition. Spending-side nodes must emit
// exactly what they carry. Render-only nodes and edges count as zero.
func CheckConservation(g *Graph) error {
	outflow := make(map[string]float64, len(g.Nodes))
	hasOut := make(map[string]bool, len(g.Nodes))
	for _, e := range g.Links {
		hasOut[e.Source] = true
		if e.RenderOnly {
			continue
		}
		outflow[e.Source] += e.Value
	}

	for _, n := range g.Nodes {
		if !hasOut[n.ID] {
			continue
		}
		value := n.Value.Amount()
		out := outflow[n.ID]
		switch n.Category {
		case CategoryMinistryBudget, CategoryProjectBudget:
			if out > value+Epsilon {
				return &ConservationError{NodeID: n.ID, Value: value, Outflow: out}
			}
		default:
			if diff := out - value; diff > Epsilon || diff < -Epsilon {
				return &ConservationError{NodeID: n.ID, Value: value, Outflow: out}
			}
		}
	}
	return nil
}
