package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsviz/budgetflow/internal/graph"
	"github.com/rsviz/budgetflow/internal/selector"
	"github.com/rsviz/budgetflow/internal/testutil"
	"github.com/rsviz/budgetflow/internal/view"
)

func buildGraph(t *testing.T, spec view.Spec) *graph.Graph {
	t.Helper()
	norm, mode, err := spec.Normalize()
	require.NoError(t, err)
	sel, err := selector.Select(testutil.SampleDataset(), norm, mode)
	require.NoError(t, err)
	return graph.Build(sel)
}

func findNode(t *testing.T, g *graph.Graph, id string) graph.Node {
	t.Helper()
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %s not in graph", id)
	return graph.Node{}
}

func hasNode(g *graph.Graph, id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

func findEdge(t *testing.T, g *graph.Graph, source, target string) graph.Edge {
	t.Helper()
	for _, e := range g.Links {
		if e.Source == source && e.Target == target {
			return e
		}
	}
	t.Fatalf("edge %s -> %s not in graph", source, target)
	return graph.Edge{}
}

func outflow(g *graph.Graph, source string) float64 {
	var sum float64
	for _, e := range g.Links {
		if e.Source == source && !e.RenderOnly {
			sum += e.Value
		}
	}
	return sum
}

func TestGlobalGraphDefault(t *testing.T) {
	g := buildGraph(t, view.Spec{})

	require.NoError(t, graph.CheckConservation(g))

	root := findNode(t, g, "total")
	assert.Equal(t, graph.CategoryMinistryBudget, root.Category)
	assert.Equal(t, 2410.0, root.Value.Amount())
	assert.Equal(t, 2410.0, outflow(g, "total"))

	digital := findNode(t, g, "ministry:デジタル庁")
	assert.Equal(t, 1000.0, digital.Value.Amount())
	assert.Equal(t, 1, digital.OriginalID)
	assert.Equal(t, 1000.0, outflow(g, "ministry:デジタル庁"))

	lm := findNode(t, g, "others:ministries")
	assert.True(t, lm.IsAggregate)
	assert.Equal(t, graph.AggregateLeftover, lm.AggregateKind)
	assert.Equal(t, 10.0, lm.Value.Amount())
	// All budget, no spending: the bucket legitimately emits nothing.
	assert.Equal(t, 0.0, outflow(g, "others:ministries"))

	// Budget-to-spending transition carries the executed part only.
	assert.Equal(t, 500.0, findEdge(t, g, "project:101", "project-spending:101").Value)

	// The reserved payee sits apart from truncation leftovers.
	reserved := findNode(t, g, "recipient:other")
	assert.Equal(t, graph.AggregateReservedOther, reserved.AggregateKind)
	assert.Equal(t, 250.0, reserved.Value.Amount())
	assert.Equal(t, 150.0, findEdge(t, g, "project-spending:102", "recipient:other").Value)

	// Every contribution is attributed, so no generic leftover node appears.
	assert.False(t, hasNode(g, "others:recipients"))

	// Contract metadata rides the project-to-recipient edge.
	e := findEdge(t, g, "project-spending:101", "recipient:1001")
	assert.Equal(t, 300.0, e.Value)
	require.NotNil(t, e.Details)
	assert.Equal(t, "一般競争契約", e.Details.ContractMethod)
	assert.Equal(t, "クラウド基盤構築", e.Details.BlockName)
}

func TestGlobalGraphZeroValueNodes(t *testing.T) {
	g := buildGraph(t, view.Spec{})

	// Zero-budget project: budget node is render-only, transition is a dummy
	// edge, but the spending side carries its real amount.
	pb := findNode(t, g, "project:203")
	assert.True(t, pb.Value.IsRenderOnly())
	assert.Equal(t, 0.0, pb.Value.Amount())
	tr := findEdge(t, g, "project:203", "project-spending:203")
	assert.True(t, tr.RenderOnly)
	ps := findNode(t, g, "project-spending:203")
	assert.Equal(t, 50.0, ps.Value.Amount())
	assert.Equal(t, 50.0, findEdge(t, g, "project-spending:203", "recipient:1003").Value)

	// Project with no payment records: spending node render-only, routed to
	// its synthetic sink.
	assert.True(t, findNode(t, g, "project-spending:103").Value.IsRenderOnly())
	nd := findNode(t, g, "no-destination:103")
	assert.Equal(t, graph.AggregateNoDestination, nd.AggregateKind)
	assert.True(t, nd.Value.IsRenderOnly())
	assert.True(t, findEdge(t, g, "project-spending:103", "no-destination:103").RenderOnly)
}

func TestGlobalGraphNarrowLimits(t *testing.T) {
	g := buildGraph(t, view.Spec{MinistryLimit: 1, ProjectLimit: 1, SpendingLimit: 1})

	require.NoError(t, graph.CheckConservation(g))
	assert.Len(t, g.Nodes, 10)
	assert.Len(t, g.Links, 13)

	// Per-ministry leftover bucket spans both sides of the transition.
	assert.Equal(t, 400.0, findNode(t, g, "others:projects:デジタル庁").Value.Amount())
	assert.Equal(t, 300.0, findNode(t, g, "others-spending:projects:デジタル庁").Value.Amount())
	assert.Equal(t, 300.0, findEdge(t, g, "others:projects:デジタル庁", "others-spending:projects:デジタル庁").Value)

	// Unattributed spending pools in the generic leftover-recipients node.
	lr := findNode(t, g, "others:recipients")
	assert.Equal(t, 1400.0, lr.Value.Amount())
	assert.Equal(t, 200.0, findEdge(t, g, "project-spending:101", "others:recipients").Value)
	assert.Equal(t, 150.0, findEdge(t, g, "others-spending:projects:デジタル庁", "others:recipients").Value)
	assert.Equal(t, 1050.0, findEdge(t, g, "others:ministries", "others:recipients").Value)

	// The kept recipient's out-of-selection inflow arrives through the
	// ministries bucket.
	assert.Equal(t, 100.0, findEdge(t, g, "others:ministries", "recipient:1001").Value)
	assert.Equal(t, 400.0, findNode(t, g, "recipient:1001").Value.Amount())
}

func TestMinistryGraph(t *testing.T) {
	g := buildGraph(t, view.Spec{TargetMinistry: "環境省", ProjectLimit: 1})

	require.NoError(t, graph.CheckConservation(g))

	// No root in ministry mode: the ministry node is the single source.
	assert.False(t, hasNode(g, "total"))
	m := findNode(t, g, "ministry:環境省")
	assert.Equal(t, 800.0, m.Value.Amount())
	assert.Equal(t, 800.0, outflow(g, "ministry:環境省"))

	assert.Equal(t, 500.0, findEdge(t, g, "ministry:環境省", "project:201").Value)
	assert.Equal(t, 300.0, findEdge(t, g, "ministry:環境省", "others:projects:環境省").Value)
	assert.Equal(t, 250.0, findEdge(t, g, "others:projects:環境省", "others-spending:projects:環境省").Value)
}

func TestProjectGraph(t *testing.T) {
	g := buildGraph(t, view.Spec{TargetProject: "道路維持管理"})

	require.NoError(t, graph.CheckConservation(g))

	// Root is the owning ministry; no separate ministry layer.
	root := findNode(t, g, "total")
	assert.Equal(t, "国土交通省", root.Name)
	assert.Equal(t, 400.0, root.Value.Amount())
	assert.False(t, hasNode(g, "ministry:国土交通省"))

	assert.Equal(t, 400.0, findEdge(t, g, "total", "project:301").Value)
	assert.Equal(t, 400.0, findEdge(t, g, "project:301", "project-spending:301").Value)
	assert.Equal(t, 400.0, findEdge(t, g, "project-spending:301", "recipient:1004").Value)
}

func TestProjectGraphWithoutPayees(t *testing.T) {
	g := buildGraph(t, view.Spec{TargetProject: "デジタル人材育成"})

	require.NoError(t, graph.CheckConservation(g))
	assert.Equal(t, 100.0, findNode(t, g, "total").Value.Amount())
	assert.True(t, findNode(t, g, "project-spending:103").Value.IsRenderOnly())
	assert.True(t, findEdge(t, g, "project:103", "project-spending:103").RenderOnly)
	assert.True(t, hasNode(g, "no-destination:103"))
}
