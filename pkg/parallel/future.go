package parallel

import "context"

// Future is the pending result of a submitted call.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(value T, err error) {
	f.value, f.err = value, err
	close(f.done)
}

// Done is closed once the call has finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the call has finished.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get blocks until the call has finished and returns its result.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// Wait blocks until the call has finished or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// executor runs functions on a bounded set of goroutines. Go may block
// until a slot is free.
type executor interface {
	Go(f func())
}

// submit schedules fn on e and returns its future.
func submit[T any](e executor, fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	e.Go(func() {
		f.resolve(fn())
	})
	return f
}
