// Package selector implements the ranking/truncation core of the flow-graph
// engine: given an immutable dataset and a normalized view specification, it
// decides which ministries, projects and recipients are kept and how
// everything excluded rolls up into leftover buckets.
//
// The four view modes share one shape - rank, keep top-K, bucket the rest -
// expressed as one strategy per mode behind a common interface. Ranking is
// always deterministic: primary key descending (budget or contribution),
// ties broken by ascending identity.
package selector
