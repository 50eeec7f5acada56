package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishDropsOrphanNodes(t *testing.T) {
	b := &builder{}
	b.addNode(Node{ID: "a", Category: CategoryMinistryBudget, Value: Real(10)})
	b.addNode(Node{ID: "b", Category: CategoryRecipient, Value: Real(10)})
	b.addNode(Node{ID: "orphan", Category: CategoryRecipient, Value: Real(5)})
	b.addEdge("a", "b", 10, nil)

	g := b.finish()
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "a", g.Nodes[0].ID)
	assert.Equal(t, "b", g.Nodes[1].ID)
}

func TestFinishKeepsRenderOnlyConnections(t *testing.T) {
	b := &builder{}
	b.addNode(Node{ID: "a", Category: CategoryProjectBudget, Value: Real(10)})
	b.addNode(Node{ID: "b", Category: CategoryProjectSpending, Value: RenderOnly()})
	b.addStructuralEdge("a", "b", 0)

	g := b.finish()
	assert.Len(t, g.Nodes, 2)
	require.Len(t, g.Links, 1)
	assert.True(t, g.Links[0].RenderOnly)
}

func TestFinishEmptyBuilderMarshalsToEmptyLists(t *testing.T) {
	g := (&builder{}).finish()
	raw, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"links":[]}`, string(raw))
}

func TestAddEdgeDropsNonPositiveAmounts(t *testing.T) {
	b := &builder{}
	b.addEdge("a", "b", 0, nil)
	b.addEdge("a", "b", -5, nil)
	assert.Empty(t, b.edges)
}

func TestNodeMarshalSubstitutesDummyValue(t *testing.T) {
	raw, err := json.Marshal(Node{ID: "x", Name: "n", Category: CategoryRecipient, Value: RenderOnly()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","name":"n","category":"recipient","value":0.0001,"renderOnly":true}`, string(raw))

	raw, err = json.Marshal(Node{ID: "y", Name: "m", Category: CategoryRecipient, Value: Real(42)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"y","name":"m","category":"recipient","value":42}`, string(raw))
}

func TestEdgeMarshalSubstitutesDummyValue(t *testing.T) {
	raw, err := json.Marshal(Edge{Source: "a", Target: "b", RenderOnly: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"source":"a","target":"b","value":0.0001,"renderOnly":true}`, string(raw))
}
