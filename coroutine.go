package conslist

import (
	"go.llib.dev/conslist/pkg/corokit"
)

// Coroutine is an owning corokit.Coroutine over a List.
//
// A list of N elements yields N-1 times and completes with its last element.
// Resuming a Coroutine made from an empty list panics with corokit.ErrResumedEmpty,
// and resuming it after completion panics with corokit.ErrResumedAfterCompletion.
type Coroutine[T any] struct {
	list     *List[T]
	prefetch Prefetcher
	done     bool
}

var _ corokit.Coroutine[int] = &Coroutine[int]{}

// IntoCoroutine returns an owning Coroutine that consumes l.
func (l *List[T]) IntoCoroutine() *Coroutine[T] {
	return &Coroutine[T]{list: l}
}

// IntoCoroutinePrefetch is IntoCoroutine with p hinted on every non-final resumption.
func (l *List[T]) IntoCoroutinePrefetch(p Prefetcher) *Coroutine[T] {
	return &Coroutine[T]{list: l, prefetch: p}
}

func (c *Coroutine[T]) Resume() corokit.State[T] {
	if c.done {
		panic(corokit.ErrResumedAfterCompletion)
	}
	head := c.list.cons
	if head == nil {
		c.done = true
		panic(corokit.ErrResumedEmpty)
	}
	if head.tail.IsEmpty() {
		c.done = true
		v, _ := c.list.Shift()
		return corokit.Return(v)
	}
	v, ok := c.list.Shift()
	if !ok || c.list.IsEmpty() {
		panic(ErrBrokenChain)
	}
	if c.prefetch != nil {
		hintAfter(c.prefetch, c.list.cons)
	}
	return corokit.Yield(v)
}

// BorrowCoroutine is a borrowing corokit.Coroutine over a View.
// It follows the same rules as Coroutine, without consuming the list.
type BorrowCoroutine[T any] struct {
	view     View[T]
	prefetch Prefetcher
	done     bool
}

var _ corokit.Coroutine[int] = &BorrowCoroutine[int]{}

// Coroutine returns a borrowing Coroutine starting at v.
func (v View[T]) Coroutine() *BorrowCoroutine[T] {
	return &BorrowCoroutine[T]{view: v}
}

// CoroutinePrefetch is Coroutine with p hinted on every non-final resumption.
func (v View[T]) CoroutinePrefetch(p Prefetcher) *BorrowCoroutine[T] {
	return &BorrowCoroutine[T]{view: v, prefetch: p}
}

func (c *BorrowCoroutine[T]) Resume() corokit.State[T] {
	if c.done {
		panic(corokit.ErrResumedAfterCompletion)
	}
	head := c.view.cons
	if head == nil {
		c.done = true
		panic(corokit.ErrResumedEmpty)
	}
	if head.tail.IsEmpty() {
		c.done = true
		c.view = View[T]{}
		return corokit.Return(head.head)
	}
	c.view = head.tail.View()
	if c.view.IsEmpty() {
		panic(ErrBrokenChain)
	}
	if c.prefetch != nil {
		hintAfter(c.prefetch, c.view.cons)
	}
	return corokit.Yield(head.head)
}
