package workflow

import (
	"context"
	"sync"
	"time"
)

// Node wraps one unit of work: an identity, a worker, the identities of the
// nodes it depends on, and a lifecycle state. A node has no knowledge of the
// graph that owns it.
//
// The identity and dependency set are immutable once registered. State,
// result, error, and timestamps are guarded by a mutex so that status
// queries are safe while a parallel run is in flight.
type Node struct {
	name   string
	worker Worker
	deps   []string

	mu      sync.Mutex
	state   NodeState
	result  Payload
	err     error
	started time.Time
	ended   time.Time
}

func newNode(name string, worker Worker, deps []string) *Node {
	return &Node{
		name:   name,
		worker: worker,
		deps:   append([]string(nil), deps...),
		state:  StatePending,
	}
}

// Name returns the node's identity.
func (n *Node) Name() string { return n.name }

// Dependencies returns a copy of the node's declared dependency identities,
// in declaration order.
func (n *Node) Dependencies() []string {
	return append([]string(nil), n.deps...)
}

// State returns the node's current lifecycle state.
func (n *Node) State() NodeState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Result returns the node's output payload. The second return is false
// unless the node has completed.
func (n *Node) Result() (Payload, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != StateCompleted {
		return nil, false
	}
	return n.result, true
}

// Err returns the recorded work failure, or nil if the node has not failed.
func (n *Node) Err() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.err
}

// Execute runs the node's worker with the given input.
//
// Precondition: the node is PENDING; executing a node twice (or a terminal
// node) fails with ErrInvalidState and leaves the node untouched.
//
// On success the node is COMPLETED and the output payload is returned. On
// failure the node is FAILED with the error recorded, and the same error is
// returned to the caller (dual surfacing, so the failure remains observable
// through the node after the run aborts).
func (n *Node) Execute(ctx context.Context, input Payload) (Payload, error) {
	n.mu.Lock()
	if n.state != StatePending {
		state := n.state
		n.mu.Unlock()
		return nil, graphErrorf(ErrInvalidState, "node %q is %s, not %s", n.name, state, StatePending)
	}
	n.state = StateRunning
	n.started = time.Now()
	n.mu.Unlock()

	out, err := n.worker.Run(ctx, input)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.ended = time.Now()
	if err != nil {
		n.state = StateFailed
		n.err = err
		return nil, err
	}
	n.state = StateCompleted
	n.result = out
	return out, nil
}

// NodeStatus is a read-only snapshot of a node's lifecycle.
type NodeStatus struct {
	Name      string        `json:"name"`
	State     NodeState     `json:"state"`
	Err       string        `json:"error,omitempty"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// Status returns a consistent snapshot of the node's state, error, and
// timing, taken under a single lock.
func (n *Node) Status() NodeStatus {
	n.mu.Lock()
	defer n.mu.Unlock()

	st := NodeStatus{
		Name:      n.name,
		State:     n.state,
		StartTime: n.started,
		EndTime:   n.ended,
	}
	if n.err != nil {
		st.Err = n.err.Error()
	}
	if !n.started.IsZero() && !n.ended.IsZero() {
		st.Duration = n.ended.Sub(n.started)
	}
	return st
}
