package transport

import (
	"context"
	"sync"
)

// Future is a value that becomes available once, later.
// It is settled exactly once, by Resolve or Reject; later calls are ignored.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future already settled with v.
func Resolved[T any](v T) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(v)
	return f
}

// Rejected returns a future already settled with err.
func Rejected[T any](err error) *Future[T] {
	f := NewFuture[T]()
	f.Reject(err)
	return f
}

// Resolve settles the future with v. It reports whether this call settled it.
func (f *Future[T]) Resolve(v T) bool {
	return f.settle(v, nil)
}

// Reject settles the future with err. It reports whether this call settled it.
func (f *Future[T]) Reject(err error) bool {
	var zero T
	return f.settle(zero, err)
}

func (f *Future[T]) settle(v T, err error) bool {
	settled := false
	f.once.Do(func() {
		f.value = v
		f.err = err
		settled = true
		close(f.done)
	})
	return settled
}

// Done is closed when the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx is done.
// Giving up on ctx does not cancel the underlying operation.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then schedules fn to run once f resolves and returns a future of its result.
// A rejection of f skips fn and is passed through unchanged.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	next := NewFuture[U]()
	go func() {
		<-f.done
		if f.err != nil {
			next.Reject(f.err)
			return
		}
		v, err := fn(f.value)
		if err != nil {
			next.Reject(err)
			return
		}
		next.Resolve(v)
	}()
	return next
}
