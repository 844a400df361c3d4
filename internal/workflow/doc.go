// Package workflow implements Gameday's task-graph orchestrator.
//
// It is intentionally split into:
//   - Graph construction: nodes registered with declared dependencies, with
//     the DAG invariant enforced (and rolled back) at AddNode time
//   - Execution: a deterministic serial walk in topological order, plus an
//     optional batch-parallel mode with identical semantics
//   - Status: read-only per-node and aggregate projections, safe to query
//     at any point during or after a run
//
// Determinism: whenever several nodes are simultaneously schedulable, ties
// are broken by registration order, so two runs over an identically
// constructed graph visit nodes in the same order.
package workflow
