package workflow

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestExecuteParallel_Diamond(t *testing.T) {
	g := New()
	var running atomic.Int32
	var peak atomic.Int32

	tracked := func(out Payload) Worker {
		return WorkerFunc(func(ctx context.Context, input Payload) (Payload, error) {
			cur := running.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return out, nil
		})
	}

	must := func(name string, deps []string) {
		t.Helper()
		if err := g.AddNode(name, tracked(Payload{name: true}), deps); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}
	must("A", nil)
	must("B", []string{"A"})
	must("C", []string{"A"})
	must("D", []string{"B", "C"})

	results, err := g.ExecuteParallel(context.Background(), nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if ws := g.Status(); ws.Verdict != StateCompleted {
		t.Fatalf("expected COMPLETED verdict, got %s", ws.Verdict)
	}
	if peak.Load() < 2 {
		t.Fatalf("expected B and C to overlap, peak concurrency was %d", peak.Load())
	}
}

func TestExecuteParallel_CollisionMatchesSerialOrder(t *testing.T) {
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

	if _, err := g.ExecuteParallel(context.Background(), nil, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen["shared"] != "from_second" {
		t.Fatalf("collision rule diverged from serial mode: %v", seen["shared"])
	}
}

func TestExecuteParallel_FirstFailureCancelsSiblings(t *testing.T) {
	g := New()
	boom := errors.New("boom")

	failFast := WorkerFunc(func(ctx context.Context, input Payload) (Payload, error) {
		return nil, boom
	})
	sibling := WorkerFunc(func(ctx context.Context, input Payload) (Payload, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
			return Payload{"slow": true}, nil
		}
	})

	if err := g.AddNode("fails", failFast, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddNode("slow", sibling, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddNode("downstream", passthrough(), []string{"fails", "slow"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	_, err := g.ExecuteParallel(context.Background(), nil, 2)
	if err == nil {
		t.Fatalf("expected error")
	}
	var nerr *NodeError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NodeError, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("sibling was not cancelled promptly: %v", elapsed)
	}

	d, _ := g.Node("downstream")
	if d.State() != StatePending {
		t.Fatalf("expected downstream PENDING, got %s", d.State())
	}
	if ws := g.Status(); ws.Verdict != StateFailed {
		t.Fatalf("expected FAILED verdict, got %s", ws.Verdict)
	}
}

func TestExecuteParallel_RejectsBadConcurrency(t *testing.T) {
	g := New()
	if err := g.AddNode("A", passthrough(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := g.ExecuteParallel(context.Background(), nil, 0); err == nil {
		t.Fatalf("expected error for concurrency 0")
	}
}
