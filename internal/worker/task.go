// Package worker runs screen loads in the background.
package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// State is the progress of a Task.
type State string

const (
	StateLoading   State = "LOADING"
	StateSuccess   State = "SUCCESS"
	StateError     State = "ERROR"
	StateCancelled State = "CANCELLED"
)

// Snapshot is what a screen renders for a Task.
type Snapshot[T any] struct {
	State State
	Data  T
	Err   error
}

// Done reports whether the load has finished in any way.
func (s Snapshot[T]) Done() bool {
	return s.State != StateLoading
}

// Func is the load a Task runs.
type Func[T any] func(ctx context.Context) (T, error)

// Option configures a Task.
type Option[T any] func(*Task[T])

// WithLogger sets the logger used for recovered panics.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(t *Task[T]) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// OnUpdate registers a callback invoked with every snapshot the task
// publishes. It is not called after Detach.
func OnUpdate[T any](fn func(Snapshot[T])) Option[T] {
	return func(t *Task[T]) {
		t.onUpdate = fn
	}
}

// Task is one cancellable asynchronous load. Cancel aborts the call; Detach
// only stops the task from publishing its result, so the call itself still
// runs to completion along with any side effects it triggers.
type Task[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]

	cancel   context.CancelFunc
	detached atomic.Bool
	done     chan struct{}

	onUpdate func(Snapshot[T])
	logger   *zap.Logger
}

// Start launches fn on its own goroutine.
func Start[T any](ctx context.Context, fn Func[T], opts ...Option[T]) *Task[T] {
	runCtx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		snapshot: Snapshot[T]{State: StateLoading},
		cancel:   cancel,
		done:     make(chan struct{}),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.notify(t.Snapshot())

	go t.run(runCtx, fn)
	return t
}

func (t *Task[T]) run(ctx context.Context, fn Func[T]) {
	defer close(t.done)
	defer t.cancel()

	data, err := t.call(ctx, fn)

	next := Snapshot[T]{State: StateSuccess, Data: data}
	switch {
	case err != nil && ctx.Err() == context.Canceled:
		next = Snapshot[T]{State: StateCancelled, Err: err}
	case err != nil:
		next = Snapshot[T]{State: StateError, Err: err}
	}
	t.publish(next)
}

func (t *Task[T]) call(ctx context.Context, fn Func[T]) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("task panicked", zap.Any("panic", r))
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(ctx)
}

func (t *Task[T]) publish(next Snapshot[T]) {
	if t.detached.Load() {
		return
	}
	t.mu.Lock()
	t.snapshot = next
	t.mu.Unlock()
	t.notify(next)
}

func (t *Task[T]) notify(s Snapshot[T]) {
	if t.onUpdate != nil && !t.detached.Load() {
		t.onUpdate(s)
	}
}

// Snapshot returns the latest published state.
func (t *Task[T]) Snapshot() Snapshot[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot
}

// Cancel aborts the call through its context.
func (t *Task[T]) Cancel() {
	t.cancel()
}

// Detach stops snapshot updates. The call keeps running.
func (t *Task[T]) Detach() {
	t.detached.Store(true)
}

// Detached reports whether Detach was called.
func (t *Task[T]) Detached() bool {
	return t.detached.Load()
}

// Done is closed when the call has returned.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the call returns or ctx ends, then returns the latest
// snapshot.
func (t *Task[T]) Wait(ctx context.Context) (Snapshot[T], error) {
	select {
	case <-t.done:
		return t.Snapshot(), nil
	case <-ctx.Done():
		return t.Snapshot(), ctx.Err()
	}
}
