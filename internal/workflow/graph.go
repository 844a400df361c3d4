package workflow

import "context"

// Graph owns a collection of Nodes plus the dependency edges between them.
//
// The edge set must form a DAG at all times; this is enforced when a node is
// added, not only at execution time. Dependencies must be registered before
// their dependents, which gives builds a natural order and means a cycle can
// only be introduced through already-declared nodes.
//
// A Graph is built once, executed once, then inspected. Construction is not
// safe for concurrent use; node state is independently synchronized, so
// status queries are safe while an execution is in flight.
type Graph struct {
	nodes      map[string]*Node
	order      []string            // insertion order, for deterministic tie-breaking
	dependents map[string][]string // name -> names of nodes that depend on it
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[string]*Node),
		dependents: make(map[string][]string),
	}
}

// AddNode registers a node with its declared dependencies.
//
// It fails with ErrDuplicateNode if the name is taken, ErrUnknownDependency
// if any dependency is not already registered, and ErrCycle if the insertion
// would make the graph cyclic. On any failure the graph is left exactly as
// it was, so the caller may retry with corrected input.
func (g *Graph) AddNode(name string, worker Worker, deps []string) error {
	if name == "" {
		return graphErrorf(ErrInvalidNode, "node name is required")
	}
	if worker == nil {
		return graphErrorf(ErrInvalidNode, "node %q has no worker", name)
	}
	if _, exists := g.nodes[name]; exists {
		return graphErrorf(ErrDuplicateNode, "%q", name)
	}

	seen := make(map[string]struct{}, len(deps))
	for _, dep := range deps {
		if _, ok := g.nodes[dep]; !ok {
			return graphErrorf(ErrUnknownDependency, "node %q depends on unregistered %q", name, dep)
		}
		if _, dup := seen[dep]; dup {
			return graphErrorf(ErrInvalidNode, "node %q declares dependency %q twice", name, dep)
		}
		seen[dep] = struct{}{}
	}

	// Tentatively insert, then prove the graph is still acyclic. The
	// pre-registration rule means a cycle cannot actually arise here, but
	// execution must never see a structurally invalid graph, so the full
	// check runs anyway and rolls the insertion back on failure.
	g.nodes[name] = newNode(name, worker, deps)
	g.order = append(g.order, name)
	for _, dep := range deps {
		g.dependents[dep] = append(g.dependents[dep], name)
	}

	if path := g.findCycle(); path != nil {
		delete(g.nodes, name)
		g.order = g.order[:len(g.order)-1]
		for _, dep := range deps {
			ds := g.dependents[dep]
			g.dependents[dep] = ds[:len(ds)-1]
		}
		return cycleError(path)
	}
	return nil
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Names returns the node names in registration order.
func (g *Graph) Names() []string {
	return append([]string(nil), g.order...)
}

// Node returns a registered node by name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// ReadyNodes returns, in registration order, every PENDING node whose
// dependencies have all COMPLETED. A node with a FAILED dependency is never
// ready; it stays PENDING unless the workflow aborts around it.
func (g *Graph) ReadyNodes() []string {
	var ready []string
	for _, name := range g.order {
		n := g.nodes[name]
		if n.State() != StatePending {
			continue
		}
		ok := true
		for _, dep := range n.deps {
			if g.nodes[dep].State() != StateCompleted {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, name)
		}
	}
	return ready
}

// ExecuteNode runs a single node after verifying that every one of its
// dependencies has completed, failing with ErrDependencyNotSatisfied
// otherwise. The node's own failure is propagated unchanged.
func (g *Graph) ExecuteNode(ctx context.Context, name string, input Payload) (Payload, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, graphErrorf(ErrUnknownNode, "%q", name)
	}
	for _, dep := range n.deps {
		if st := g.nodes[dep].State(); st != StateCompleted {
			return nil, graphErrorf(ErrDependencyNotSatisfied, "node %q dependency %q is %s", name, dep, st)
		}
	}
	return n.Execute(ctx, input)
}
