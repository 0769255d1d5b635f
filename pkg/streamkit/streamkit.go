// Package streamkit implements a poll based asynchronous producer protocol
// and a minimal synchronous driver for it.
//
// A Future resolves to a single value, a Stream produces a sequence of values.
// Both are advanced by polling, and a poll that is not ready yet promises
// to notify the given Waker once progress is possible.
//
// Execute is not a scheduler: it polls on the calling goroutine in a busy loop
// until the Future resolves. It is meant for producers that make progress on every poll.
package streamkit

import (
	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	// ErrPolledAfterCompletion is the panic value when a resolved Future is polled again.
	ErrPolledAfterCompletion errorkit.Error = "streamkit: future polled after completion"
	// ErrExhaustedFuture is the panic value when a Future reports Exhausted, a status only streams may use.
	ErrExhaustedFuture errorkit.Error = "streamkit: future reported exhaustion"
)

type Status int

const (
	// Pending means no value is available yet.
	Pending Status = iota
	// Ready means Poll.Value holds a value.
	Ready
	// Exhausted means the stream has no more values.
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Poll is the outcome of polling a Future or a Stream.
type Poll[T any] struct {
	Status Status
	Value  T
}

func NotReady[T any]() Poll[T] { return Poll[T]{Status: Pending} }

func Item[T any](v T) Poll[T] { return Poll[T]{Status: Ready, Value: v} }

func End[T any]() Poll[T] { return Poll[T]{Status: Exhausted} }

func (p Poll[T]) IsPending() bool   { return p.Status == Pending }
func (p Poll[T]) IsReady() bool     { return p.Status == Ready }
func (p Poll[T]) IsExhausted() bool { return p.Status == Exhausted }

// Waker is notified by a pending producer when it can make progress again.
type Waker interface {
	Wake()
}

type WakerFunc func()

func (fn WakerFunc) Wake() { fn() }

// NoopWaker ignores every notification.
var NoopWaker Waker = WakerFunc(func() {})

// Future is an asynchronous computation of a single value.
// Poll returns either a Pending or a Ready Poll.
type Future[T any] interface {
	Poll(w Waker) Poll[T]
}

// Stream is an asynchronous producer of a sequence of values.
// PollNext returns a Pending, a Ready or an Exhausted Poll.
type Stream[T any] interface {
	PollNext(w Waker) Poll[T]
}

type FutureFunc[T any] func(w Waker) Poll[T]

func (fn FutureFunc[T]) Poll(w Waker) Poll[T] { return fn(w) }

type StreamFunc[T any] func(w Waker) Poll[T]

func (fn StreamFunc[T]) PollNext(w Waker) Poll[T] { return fn(w) }

// Resolved returns a Future that is ready on its first poll.
func Resolved[T any](v T) Future[T] {
	return FutureFunc[T](func(Waker) Poll[T] { return Item(v) })
}

// Execute drives f to its resolved value on the calling goroutine.
// It keeps polling with NoopWaker as long as f reports Pending,
// so f must eventually resolve without relying on a wake notification.
func Execute[T any](f Future[T]) T {
	for {
		p := f.Poll(NoopWaker)
		switch p.Status {
		case Ready:
			return p.Value
		case Pending:
			continue
		default:
			panic(ErrExhaustedFuture)
		}
	}
}
