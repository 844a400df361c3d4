package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for graph contract violations. Construction errors
// (duplicate, unknown dependency, cycle, invalid node) leave the graph
// unmodified; precondition errors (dependency not satisfied, invalid state)
// indicate a caller bug rather than a transient condition.
var (
	ErrInvalidNode            = errors.New("invalid node")
	ErrDuplicateNode          = errors.New("duplicate node")
	ErrUnknownNode            = errors.New("unknown node")
	ErrUnknownDependency      = errors.New("unknown dependency")
	ErrCycle                  = errors.New("cycle detected")
	ErrDependencyNotSatisfied = errors.New("dependency not satisfied")
	ErrInvalidState           = errors.New("invalid node state")
)

// GraphError wraps a contract violation with its sentinel kind.
type GraphError struct {
	Kind error
	Msg  string
}

func (e *GraphError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return e.Kind }

func graphErrorf(kind error, format string, args ...any) error {
	return &GraphError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []string) error {
	msg := "cycle"
	if len(path) > 0 {
		msg = "cycle: " + strings.Join(path, " -> ")
	}
	return &GraphError{Kind: ErrCycle, Msg: msg}
}

// NodeError is a work failure attributed to the node that produced it.
// The same underlying error is also recorded on the node itself, so it
// stays observable after the workflow aborts.
type NodeError struct {
	Node string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %q: %v", e.Node, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }
