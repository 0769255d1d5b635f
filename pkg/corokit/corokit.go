// Package corokit implements a stackless suspend/resume protocol and combinators over it.
//
// A Coroutine is resumed step by step.
// Every resumption either yields an intermediate value, so resuming it again is valid,
// or completes with a terminal value, after which the Coroutine must not be resumed again.
// The terminal value is a regular element of the produced sequence,
// it is never reported as a yielded value.
//
// The asymmetry matters for the combinators: Pair stops on the first completing side,
// while Concat turns the completion of its first producer into an ordinary yield.
package corokit

import (
	"iter"

	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	// ErrResumedAfterCompletion is the panic value when a completed Coroutine is resumed again.
	ErrResumedAfterCompletion errorkit.Error = "corokit: coroutine resumed after completion"
	// ErrResumedEmpty is the panic value when a Coroutine has nothing at all to produce,
	// not even a terminal value.
	ErrResumedEmpty errorkit.Error = "corokit: resumed a coroutine without values"
)

// State is the outcome of a single resumption.
type State[T any] struct {
	Value T
	// Done marks the terminal state, Value is then the terminal value.
	Done bool
}

func Yield[T any](v T) State[T] { return State[T]{Value: v} }

func Return[T any](v T) State[T] { return State[T]{Value: v, Done: true} }

// Coroutine is a resumable computation.
// Resume must panic with ErrResumedAfterCompletion once a State with Done was returned.
type Coroutine[T any] interface {
	Resume() State[T]
}

// Func is a Coroutine implemented by a plain step function.
// The function itself is responsible for the completion guard.
type Func[T any] func() State[T]

func (fn Func[T]) Resume() State[T] { return fn() }

// Slice returns a Coroutine that yields every element of vs except the last one,
// and completes with the last one.
// Resuming a Coroutine over an empty slice panics with ErrResumedEmpty.
func Slice[T any](vs ...T) Coroutine[T] {
	return &sliceCoroutine[T]{vs: vs}
}

type sliceCoroutine[T any] struct {
	vs   []T
	done bool
}

func (c *sliceCoroutine[T]) Resume() State[T] {
	if c.done {
		panic(ErrResumedAfterCompletion)
	}
	switch len(c.vs) {
	case 0:
		c.done = true
		panic(ErrResumedEmpty)
	case 1:
		c.done = true
		v := c.vs[0]
		c.vs = nil
		return Return(v)
	default:
		v := c.vs[0]
		c.vs = c.vs[1:]
		return Yield(v)
	}
}

// Drain resumes c until it completes.
// It returns the yielded values in order and the terminal value separately.
func Drain[T any](c Coroutine[T]) (yielded []T, final T) {
	for {
		s := c.Resume()
		if s.Done {
			return yielded, s.Value
		}
		yielded = append(yielded, s.Value)
	}
}

// Fold reduces every value of c, the terminal value included, into a single result.
func Fold[R, T any](c Coroutine[T], initial R, fn func(R, T) R) R {
	var acc = initial
	for {
		s := c.Resume()
		acc = fn(acc, s.Value)
		if s.Done {
			return acc
		}
	}
}

// Seq exposes the values of c, the terminal value included, as a single use iter.Seq.
// Breaking out of the range loop leaves c suspended at its current position.
func Seq[T any](c Coroutine[T]) iter.Seq[T] {
	var done bool
	return func(yield func(T) bool) {
		for !done {
			s := c.Resume()
			done = s.Done
			if !yield(s.Value) {
				return
			}
		}
	}
}
