// Package graph builds the weighted flow graph a Sankey renderer consumes:
// one node per kept entity, aggregate nodes for everything bucketed away,
// and edges whose values reconcile with node values by construction.
//
// Two structural rules hold for every emitted graph: no node without an
// incident edge, and no edge with a non-positive value (render-only
// placeholders excepted, which serialize as a fixed dummy value and are
// flagged so consumers display zero).
package graph
