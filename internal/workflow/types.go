package workflow

import "context"

// Payload is the keyed data passed into and out of workers.
//
// Values are opaque to the orchestrator; workers agree on keys and types
// among themselves.
type Payload map[string]any

// Clone returns a shallow copy of the payload. A nil payload clones to nil.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	cp := make(Payload, len(p))
	for k, v := range p {
		cp[k] = v
	}
	return cp
}

// Merge copies every key of src into p, overwriting on collision.
func (p Payload) Merge(src Payload) {
	for k, v := range src {
		p[k] = v
	}
}

// Worker is a single unit of orchestrated work: payload in, payload or
// error out. Implementations must not retain or mutate the input payload
// after returning.
type Worker interface {
	Run(ctx context.Context, input Payload) (Payload, error)
}

// WorkerFunc adapts a plain function to the Worker interface.
type WorkerFunc func(ctx context.Context, input Payload) (Payload, error)

// Run invokes f.
func (f WorkerFunc) Run(ctx context.Context, input Payload) (Payload, error) {
	return f(ctx, input)
}
