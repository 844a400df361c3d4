package workflow

// NodeState is the lifecycle state of a Node.
//
// Transitions:
//
//	PENDING -> RUNNING              (node selected for execution)
//	RUNNING -> COMPLETED | FAILED   (worker returned or failed)
//
// COMPLETED and FAILED are terminal; no transition leaves them.
type NodeState string

const (
	StatePending   NodeState = "PENDING"
	StateRunning   NodeState = "RUNNING"
	StateCompleted NodeState = "COMPLETED"
	StateFailed    NodeState = "FAILED"
)

// IsTerminal reports whether the state is terminal (finished).
func (s NodeState) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}
