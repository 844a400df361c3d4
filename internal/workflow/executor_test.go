package workflow

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// recordOrder returns a worker that appends the node's name to visited.
func recordOrder(name string, visited *[]string) Worker {
	return WorkerFunc(func(ctx context.Context, input Payload) (Payload, error) {
		*visited = append(*visited, name)
		return Payload{name + "_done": true}, nil
	})
}

func buildDiamond(t *testing.T, visited *[]string) *Graph {
	t.Helper()
	g := New()
	must := func(name string, deps []string) {
		t.Helper()
		if err := g.AddNode(name, recordOrder(name, visited), deps); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}
	must("A", nil)
	must("B", []string{"A"})
	must("C", []string{"A"})
	must("D", []string{"B", "C"})
	return g
}

func TestExecuteWorkflow_DiamondOrderAndStatus(t *testing.T) {
	var visited []string
	g := buildDiamond(t, &visited)

	results, err := g.ExecuteWorkflow(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(visited, []string{"A", "B", "C", "D"}) {
		t.Fatalf("unexpected visitation order: %v", visited)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for _, name := range []string{"A", "B", "C", "D"} {
		n, _ := g.Node(name)
		if n.State() != StateCompleted {
			t.Fatalf("expected %q COMPLETED, got %s", name, n.State())
		}
	}

	ws := g.Status()
	if ws.Verdict != StateCompleted {
		t.Fatalf("expected COMPLETED verdict, got %s", ws.Verdict)
	}
	if ws.Completed != 4 || ws.Failed != 0 || ws.Pending != 0 {
		t.Fatalf("unexpected counts: %+v", ws)
	}
	if ws.StartTime.IsZero() || ws.EndTime.IsZero() || ws.Duration < 0 {
		t.Fatalf("unexpected timing: %+v", ws)
	}
}

func TestExecuteWorkflow_Deterministic(t *testing.T) {
	var first, second []string
	g1 := buildDiamond(t, &first)
	g2 := buildDiamond(t, &second)

	if _, err := g1.ExecuteWorkflow(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g2.ExecuteWorkflow(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identically-constructed graphs diverged: %v vs %v", first, second)
	}
}

func TestExecuteWorkflow_InputCombinesContextAndDependencyResults(t *testing.T) {
	g := New()
	if err := g.AddNode("A", emit("a_key", "a_val"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var seen Payload
	inspect := WorkerFunc(func(ctx context.Context, input Payload) (Payload, error) {
		seen = input.Clone()
		return nil, nil
	})
	if err := g.AddNode("B", inspect, []string{"A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.ExecuteWorkflow(context.Background(), Payload{"seed": 42}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if seen["seed"] != 42 {
		t.Fatalf("initial context not propagated: %v", seen)
	}
	if seen["a_key"] != "a_val" {
		t.Fatalf("upstream output not merged into working context: %v", seen)
	}
	dep, ok := seen["A"].(Payload)
	if !ok || dep["a_key"] != "a_val" {
		t.Fatalf("dependency result not bound under dependency name: %v", seen["A"])
	}
}

func TestExecuteWorkflow_LastWriteWinsByInsertionOrder(t *testing.T) {
	g := New()
	if err := g.AddNode("first", emit("shared", "from_first"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddNode("second", emit("shared", "from_second"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var seen Payload
	inspect := WorkerFunc(func(ctx context.Context, input Payload) (Payload, error) {
		seen = input.Clone()
		return nil, nil
	})
	if err := g.AddNode("last", inspect, []string{"first", "second"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.ExecuteWorkflow(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen["shared"] != "from_second" {
		t.Fatalf("expected later insertion to win, got %v", seen["shared"])
	}
}

func TestExecuteWorkflow_FailFastChain(t *testing.T) {
	g := New()
	boom := errors.New("boom")
	if err := g.AddNode("A", emit("a", 1), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddNode("B", failWith(boom), []string{"A"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddNode("C", passthrough(), []string{"B"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := g.ExecuteWorkflow(context.Background(), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	var nerr *NodeError
	if !errors.As(err, &nerr) || nerr.Node != "B" {
		t.Fatalf("expected NodeError for B, got %v", err)
	}

	a, _ := g.Node("A")
	b, _ := g.Node("B")
	c, _ := g.Node("C")
	if a.State() != StateCompleted {
		t.Fatalf("expected A COMPLETED, got %s", a.State())
	}
	if b.State() != StateFailed || b.Err() == nil {
		t.Fatalf("expected B FAILED with recorded error, got %s / %v", b.State(), b.Err())
	}
	if c.State() != StatePending {
		t.Fatalf("expected C to remain PENDING, got %s", c.State())
	}

	// Partial results stay retrievable.
	if _, ok := results["A"]; !ok {
		t.Fatalf("expected partial result for A, got %v", results)
	}
	if _, ok := results["B"]; ok {
		t.Fatalf("failed node must not appear in results")
	}

	ws := g.Status()
	if ws.Verdict != StateFailed {
		t.Fatalf("expected FAILED verdict, got %s", ws.Verdict)
	}
	if ws.Completed != 1 || ws.Failed != 1 || ws.Pending != 1 {
		t.Fatalf("unexpected counts: %+v", ws)
	}
}

func TestExecuteWorkflow_TransitiveDependentsStayPending(t *testing.T) {
	g := New()
	boom := errors.New("boom")
	if err := g.AddNode("X", failWith(boom), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddNode("Y", passthrough(), []string{"X"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddNode("Z", passthrough(), []string{"Y"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.ExecuteWorkflow(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	for _, name := range []string{"Y", "Z"} {
		n, _ := g.Node(name)
		if n.State() != StatePending {
			t.Fatalf("expected %q PENDING, got %s", name, n.State())
		}
	}
}

func TestExecuteWorkflow_DoesNotMutateInitialPayload(t *testing.T) {
	g := New()
	if err := g.AddNode("A", emit("added", true), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	initial := Payload{"seed": 1}
	if _, err := g.ExecuteWorkflow(context.Background(), initial); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := initial["added"]; ok {
		t.Fatalf("initial payload was mutated: %v", initial)
	}
}
