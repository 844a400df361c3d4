package workflow

import "time"

// WorkflowStatus is an aggregate, read-only projection over all nodes.
type WorkflowStatus struct {
	Total     int           `json:"total"`
	Pending   int           `json:"pending"`
	Running   int           `json:"running"`
	Completed int           `json:"completed"`
	Failed    int           `json:"failed"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Verdict   NodeState     `json:"verdict"`
}

// NodeStatus returns the lifecycle snapshot of a single node.
func (g *Graph) NodeStatus(name string) (NodeStatus, error) {
	n, ok := g.nodes[name]
	if !ok {
		return NodeStatus{}, graphErrorf(ErrUnknownNode, "%q", name)
	}
	return n.Status(), nil
}

// Status computes per-state counts, the earliest recorded start, the latest
// recorded end, the overall duration when both exist, and a summary verdict:
// FAILED if any node failed; else COMPLETED if every node completed; else
// RUNNING if any node is running; else PENDING.
//
// It has no side effects and may be called at any point during or after
// execution.
func (g *Graph) Status() WorkflowStatus {
	ws := WorkflowStatus{Total: len(g.order)}

	for _, name := range g.order {
		st := g.nodes[name].Status()
		switch st.State {
		case StatePending:
			ws.Pending++
		case StateRunning:
			ws.Running++
		case StateCompleted:
			ws.Completed++
		case StateFailed:
			ws.Failed++
		}
		if !st.StartTime.IsZero() && (ws.StartTime.IsZero() || st.StartTime.Before(ws.StartTime)) {
			ws.StartTime = st.StartTime
		}
		if st.EndTime.After(ws.EndTime) {
			ws.EndTime = st.EndTime
		}
	}

	if !ws.StartTime.IsZero() && !ws.EndTime.IsZero() {
		ws.Duration = ws.EndTime.Sub(ws.StartTime)
	}

	switch {
	case ws.Failed > 0:
		ws.Verdict = StateFailed
	case ws.Completed == ws.Total:
		ws.Verdict = StateCompleted
	case ws.Running > 0:
		ws.Verdict = StateRunning
	default:
		ws.Verdict = StatePending
	}
	return ws
}
