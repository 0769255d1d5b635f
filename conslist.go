// Package conslist implements a singly linked cons list with lazy traversals.
//
// A List is either empty, or a head value with an exclusively owned tail List.
// Lists are built once from a finite sequence by prepending every element,
// thus traversals reveal the elements in reverse input order.
//
// Every traversal comes in an owning and a borrowing flavour:
//
//   - owning traversals take the elements out of the list variable they were made from,
//     shrinking it in place with every step,
//   - borrowing traversals advance a View and leave the list untouched.
//
// Each flavour is available through three protocols: a pull iterator (Iterator),
// a coroutine with a distinguished terminal value (corokit.Coroutine),
// and a poll based stream (streamkit.Stream).
// All of them have a prefetching twin that hints the CPU about upcoming nodes.
//
// A List is not safe for concurrent use.
// An owning traversal must not run while any borrowing traversal of the same list is in progress.
package conslist

import (
	"iter"
	"slices"
	"unsafe"

	"go.llib.dev/frameless/pkg/errorkit"
)

// ErrBrokenChain is the panic value when a traversal finds an empty node
// at a position where the list structure guarantees a non-empty one.
const ErrBrokenChain errorkit.Error = "conslist: broken chain, empty node where a cons was expected"

// List is a cons list. The zero value is the empty list.
type List[T any] struct {
	cons *cons[T]
}

type cons[T any] struct {
	head T
	tail List[T]
}

// New builds a List by prepending every element of seq in order.
// The last element of seq becomes the head of the List.
func New[T any](seq iter.Seq[T]) List[T] {
	var l List[T]
	if seq == nil {
		return l
	}
	for v := range seq {
		l.Prepend(v)
	}
	return l
}

// Of is the variadic form of New.
//
//	conslist.Of(1, 2, 3) // 3 -> 2 -> 1
func Of[T any](vs ...T) List[T] {
	return New(slices.Values(vs))
}

// Prepend puts v in front of the list.
func (l *List[T]) Prepend(v T) {
	l.cons = &cons[T]{head: v, tail: *l}
}

// IsEmpty reports whether the list is the terminal empty list.
func (l List[T]) IsEmpty() bool {
	return l.cons == nil
}

// Shift detaches the head of the list and returns its value.
// The list keeps the remaining tail.
// On an empty list Shift reports false.
func (l *List[T]) Shift() (T, bool) {
	c := l.cons
	if c == nil {
		var zero T
		return zero, false
	}
	*l = c.tail
	c.tail = List[T]{}
	return c.head, true
}

// Clear empties the list.
//
// The chain is detached first, then its nodes are unlinked one at a time,
// so tearing down a list of any length needs constant stack space.
// Calling Clear on an empty list is a no-op.
func (l *List[T]) Clear() {
	c := l.cons
	if c == nil {
		return
	}
	*l = List[T]{}
	for c != nil {
		next := c.tail.cons
		*c = cons[T]{}
		c = next
	}
}

// View returns a borrowed view over the whole list.
func (l List[T]) View() View[T] {
	return View[T]{cons: l.cons}
}

// All iterates over the elements without consuming the list.
func (l List[T]) All() iter.Seq[T] {
	return l.View().All()
}

// View is a borrowed position within a List.
// It never owns the nodes and must not outlive the List it was taken from.
type View[T any] struct {
	cons *cons[T]
}

func (v View[T]) IsEmpty() bool {
	return v.cons == nil
}

// Head returns the element at the view's position.
func (v View[T]) Head() (T, bool) {
	if v.cons == nil {
		var zero T
		return zero, false
	}
	return v.cons.head, true
}

// Tail returns the view of the remaining elements after the current one.
// The tail of an empty view is the empty view.
func (v View[T]) Tail() View[T] {
	if v.cons == nil {
		return v
	}
	return v.cons.tail.View()
}

func (v View[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := v.cons; c != nil; c = c.tail.cons {
			if !yield(c.head) {
				return
			}
		}
	}
}

// Prefetcher receives advisory hints about list nodes that a traversal is about to visit.
// A hint must not have any observable effect besides timing.
//
// prefetch.Locality values (go.llib.dev/conslist/pkg/prefetch) implement Prefetcher
// with hardware prefetch instructions.
type Prefetcher interface {
	Prefetch(addr unsafe.Pointer)
}

// hintAfter asks p to prefetch the node following current.
// Nothing is hinted past the end of the list.
func hintAfter[T any](p Prefetcher, current *cons[T]) {
	if p == nil || current == nil {
		return
	}
	next := current.tail.cons
	if next == nil {
		return
	}
	p.Prefetch(unsafe.Pointer(next))
}
