package graph

import "encoding/json"

// Category is the layer a node belongs to.
type Category string

const (
	CategoryMinistryBudget  Category = "ministry-budget"
	CategoryProjectBudget   Category = "project-budget"
	CategoryProjectSpending Category = "project-spending"
	CategoryRecipient       Category = "recipient"
)

// AggregateKind distinguishes the engine's synthetic nodes. It is set at
// construction time; consumers must branch on it, never on display names.
type AggregateKind string

const (
	// AggregateLeftover sums the entities excluded from a top-K selection.
	AggregateLeftover AggregateKind = "leftover"
	// AggregateReservedOther is the source data's own "unspecified payee"
	// record, kept apart from the truncation leftovers.
	AggregateReservedOther AggregateKind = "reservedOther"
	// AggregateNoDestination marks the synthetic sink of a project with no
	// payment records at all.
	AggregateNoDestination AggregateKind = "noDestination"
)

// Node is one vertex of the flow graph.
type Node struct {
	ID            string
	Name          string
	Category      Category
	Value         NodeValue
	OriginalID    int
	IsAggregate   bool
	AggregateKind AggregateKind
	Details       map[string]any
}

type nodeJSON struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      Category       `json:"category"`
	Value         float64        `json:"value"`
	RenderOnly    bool           `json:"renderOnly,omitempty"`
	OriginalID    int            `json:"originalId,omitempty"`
	IsAggregate   bool           `json:"isAggregate,omitempty"`
	AggregateKind AggregateKind  `json:"aggregateKind,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// MarshalJSON substitutes the dummy value for render-only nodes and flags
// them so consumers render zero.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		ID:            n.ID,
		Name:          n.Name,
		Category:      n.Category,
		Value:         n.Value.wire(),
		RenderOnly:    n.Value.IsRenderOnly(),
		OriginalID:    n.OriginalID,
		IsAggregate:   n.IsAggregate,
		AggregateKind: n.AggregateKind,
		Details:       n.Details,
	})
}

// EdgeDetails carries contract metadata on project-to-recipient edges.
type EdgeDetails struct {
	ContractMethod string `json:"contractMethod,omitempty"`
	BlockName      string `json:"blockName,omitempty"`
}

// Edge is one weighted link. RenderOnly edges exist to keep a render-only
// node connected; they serialize with the dummy value.
type Edge struct {
	Source     string
	Target     string
	Value      float64
	RenderOnly bool
	Details    *EdgeDetails
}

type edgeJSON struct {
	Source     string       `json:"source"`
	Target     string       `json:"target"`
	Value      float64      `json:"value"`
	RenderOnly bool         `json:"renderOnly,omitempty"`
	Details    *EdgeDetails `json:"details,omitempty"`
}

func (e Edge) MarshalJSON() ([]byte, error) {
	value := e.Value
	if e.RenderOnly {
		value = DummyValue
	}
	return json.Marshal(edgeJSON{
		Source:     e.Source,
		Target:     e.Target,
		Value:      value,
		RenderOnly: e.RenderOnly,
		Details:    e.Details,
	})
}

// Graph is the builder's output: nodes in layer emission order, links in
// source-layer order.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Edge `json:"links"`
}
