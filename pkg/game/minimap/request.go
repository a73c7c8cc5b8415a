package minimap

// Request is a pending asynchronous result. The minimap polls Done once per tick
// and reads Result only after Done reports true.
type Request[T any] interface {
	Done() bool
	Result() (T, error)
}

type resolved[T any] struct {
	v   T
	err error
}

func (r resolved[T]) Done() bool         { return true }
func (r resolved[T]) Result() (T, error) { return r.v, r.err }

// Resolved returns a request that is already complete.
func Resolved[T any](v T, err error) Request[T] {
	return resolved[T]{v: v, err: err}
}

type async[T any] struct {
	ch   chan resolved[T]
	res  resolved[T]
	done bool
}

// Go runs fn on its own goroutine and returns a request for its result.
func Go[T any](fn func() (T, error)) Request[T] {
	r := &async[T]{ch: make(chan resolved[T], 1)}
	go func() {
		v, err := fn()
		r.ch <- resolved[T]{v: v, err: err}
	}()
	return r
}

func (r *async[T]) Done() bool {
	if r.done {
		return true
	}
	select {
	case r.res = <-r.ch:
		r.done = true
	default:
	}
	return r.done
}

func (r *async[T]) Result() (T, error) {
	return r.res.v, r.res.err
}
