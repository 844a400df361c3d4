package workflow

import (
	"context"
	"fmt"
	"sync"
)

// buildInput combines the shared working context with one key per dependency
// bound to that dependency's stored result, so downstream workers can read
// upstream output either merged or addressed by node name.
func (g *Graph) buildInput(working Payload, n *Node) Payload {
	input := make(Payload, len(working)+len(n.deps))
	for k, v := range working {
		input[k] = v
	}
	for _, dep := range n.deps {
		res, _ := g.nodes[dep].Result()
		input[dep] = res
	}
	return input
}

// ExecuteWorkflow runs every node to completion, strictly sequentially, in
// deterministic topological order.
//
// Each node receives the current working context plus its dependencies'
// results; on success its output is merged into the working context key-wise,
// later values overwriting earlier ones. If two independent nodes emit the
// same key, the surviving value is decided by the registration-order
// tie-break; that ambiguity is inherited behavior, documented rather than
// fixed.
//
// On the first failure the walk aborts immediately: nodes not yet started
// stay PENDING, already-completed nodes keep their results, and the caller
// receives the partial result map alongside a NodeError naming the failed
// node.
func (g *Graph) ExecuteWorkflow(ctx context.Context, initial Payload) (map[string]Payload, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Construction already guarantees acyclicity; execution still must not
	// proceed on a structurally invalid graph.
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	working := initial.Clone()
	if working == nil {
		working = Payload{}
	}
	results := make(map[string]Payload, len(order))

	for _, name := range order {
		n := g.nodes[name]
		out, err := g.ExecuteNode(ctx, name, g.buildInput(working, n))
		if err != nil {
			return results, &NodeError{Node: name, Err: err}
		}
		results[name] = out
		working.Merge(out)
	}
	return results, nil
}

type batchOutcome struct {
	out Payload
	err error
}

// ExecuteParallel runs the workflow with each ready batch executing
// concurrently, up to the given limit of in-flight nodes.
//
// It preserves ExecuteWorkflow's contract: a node only starts once all its
// dependencies have completed, working-context merges happen atomically
// between batches in registration order (so the key-collision rule is
// identical to the serial mode), and the first failure wins, cancelling the
// context passed to in-flight siblings and aborting the run once the batch
// has drained.
func (g *Graph) ExecuteParallel(ctx context.Context, initial Payload, concurrency int) (map[string]Payload, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be > 0")
	}

	if _, err := g.TopologicalOrder(); err != nil {
		return nil, err
	}

	working := initial.Clone()
	if working == nil {
		working = Payload{}
	}
	results := make(map[string]Payload, len(g.order))

	for {
		ready := g.ReadyNodes()
		if len(ready) == 0 {
			for _, name := range g.order {
				if !g.nodes[name].State().IsTerminal() {
					return results, fmt.Errorf("no ready nodes but workflow not finished")
				}
			}
			return results, nil
		}
		if len(ready) > concurrency {
			ready = ready[:concurrency]
		}

		runCtx, cancel := context.WithCancel(ctx)
		outcomes := make([]batchOutcome, len(ready))

		var (
			wg       sync.WaitGroup
			once     sync.Once
			firstErr *NodeError
		)
		for i, name := range ready {
			n := g.nodes[name]
			input := g.buildInput(working, n)
			wg.Add(1)
			go func(i int, n *Node, input Payload) {
				defer wg.Done()
				out, err := n.Execute(runCtx, input)
				outcomes[i] = batchOutcome{out: out, err: err}
				if err != nil {
					once.Do(func() {
						firstErr = &NodeError{Node: n.Name(), Err: err}
						cancel()
					})
				}
			}(i, n, input)
		}
		wg.Wait()
		cancel()

		// Merge in registration order so collisions resolve exactly as the
		// serial executor would.
		for i, name := range ready {
			if outcomes[i].err == nil {
				results[name] = outcomes[i].out
				working.Merge(outcomes[i].out)
			}
		}
		if firstErr != nil {
			return results, firstErr
		}
	}
}
