// Package task provides a minimal asynchronous operation handle. A Handle is
// the in-flight result of one load: it resolves with a value or rejects with
// an error, exactly once, and can be awaited by any number of consumers.
//
// There is no cancellation: a started operation runs to completion or
// failure. Await honors its context only for the waiting side.
package task

import (
	"context"
	"sync"
)

// Handle is the future side of an asynchronous operation.
type Handle[T any] struct {
	done chan struct{}

	once  sync.Once
	value T
	err   error
}

// Go starts fn on its own goroutine and returns the handle it will resolve.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Handle[T] {
	h := &Handle[T]{done: make(chan struct{})}
	go func() {
		v, err := fn(ctx)
		h.settle(v, err)
	}()
	return h
}

// Resolved returns an already-settled successful handle.
func Resolved[T any](v T) *Handle[T] {
	h := &Handle[T]{done: make(chan struct{})}
	h.settle(v, nil)
	return h
}

// Rejected returns an already-settled failed handle.
func Rejected[T any](err error) *Handle[T] {
	h := &Handle[T]{done: make(chan struct{})}
	var zero T
	h.settle(zero, err)
	return h
}

func (h *Handle[T]) settle(v T, err error) {
	h.once.Do(func() {
		h.value = v
		h.err = err
		close(h.done)
	})
}

// Done returns a channel closed once the operation has settled.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Await blocks until the operation settles or ctx is done, whichever comes
// first. A ctx error abandons the wait; it does not stop the operation.
func (h *Handle[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		return h.value, h.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Err returns the operation's error if it has settled, else nil. Use Done
// to find out whether it has.
func (h *Handle[T]) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}
