package workflow

import "container/heap"

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topoOrderIndices returns a topological ordering of registration indices
// using Kahn's algorithm. The ready queue is a min-heap over registration
// index, so simultaneously schedulable nodes always come out in insertion
// order. If the graph is cyclic the returned slice is short.
func (g *Graph) topoOrderIndices() []int {
	index := make(map[string]int, len(g.order))
	for i, name := range g.order {
		index[name] = i
	}

	indeg := make([]int, len(g.order))
	for i, name := range g.order {
		indeg[i] = len(g.nodes[name].deps)
	}

	ready := &intMinHeap{}
	heap.Init(ready)
	for i := range indeg {
		if indeg[i] == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]int, 0, len(indeg))
	for ready.Len() > 0 {
		u := heap.Pop(ready).(int)
		out = append(out, u)
		for _, depName := range g.dependents[g.order[u]] {
			v := index[depName]
			indeg[v]--
			if indeg[v] == 0 {
				heap.Push(ready, v)
			}
		}
	}
	return out
}

// TopologicalOrder returns a linearization of node names consistent with all
// dependency edges, breaking ties by registration order. It fails with
// ErrCycle if the graph is not a DAG.
func (g *Graph) TopologicalOrder() ([]string, error) {
	order := g.topoOrderIndices()
	if len(order) != len(g.order) {
		return nil, cycleError(g.findCycle())
	}
	names := make([]string, 0, len(order))
	for _, idx := range order {
		names = append(names, g.order[idx])
	}
	return names, nil
}

// findCycle runs a deterministic DFS over registration order to extract one
// cycle path as a stable witness, or nil if the graph is acyclic. It does
// not attempt to list all cycles.
func (g *Graph) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int, len(g.order))
	parent := make(map[string]string, len(g.order))

	var cycle []string

	var dfs func(u string) bool
	dfs = func(u string) bool {
		color[u] = gray
		for _, v := range g.dependents[u] {
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// Back-edge u -> v: reconstruct v ... u -> v via parents.
				cycle = append(cycle, v)
				for cur := u; cur != "" && cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for _, name := range g.order {
		if color[name] != white {
			continue
		}
		if dfs(name) {
			break
		}
	}

	if len(cycle) == 0 {
		return nil
	}

	// The walk collected the path backwards; reverse it into forward order.
	out := make([]string, len(cycle))
	for i := range cycle {
		out[i] = cycle[len(cycle)-1-i]
	}
	return out
}
