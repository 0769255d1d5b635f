package conslist

import (
	"iter"
)

// Iterator is an owning pull iterator over a List.
// It implements the iterkit.PullIter[T] protocol of frameless.
//
// Each successful Next detaches the head node from the list variable the Iterator was made from,
// and moves its element into the Iterator, from where Value hands it out.
// Abandoning the Iterator leaves the not yet visited elements in the list variable.
type Iterator[T any] struct {
	list     *List[T]
	prefetch Prefetcher
	value    T
}

// IntoIter returns an owning Iterator that consumes l.
func (l *List[T]) IntoIter() *Iterator[T] {
	return &Iterator[T]{list: l}
}

// IntoIterPrefetch is IntoIter with p hinted about the node after the new head on every step.
func (l *List[T]) IntoIterPrefetch(p Prefetcher) *Iterator[T] {
	return &Iterator[T]{list: l, prefetch: p}
}

func (i *Iterator[T]) Next() bool {
	v, ok := i.list.Shift()
	if !ok {
		var zero T
		i.value = zero
		return false
	}
	if i.prefetch != nil {
		hintAfter(i.prefetch, i.list.cons)
	}
	i.value = v
	return true
}

func (i *Iterator[T]) Value() T {
	return i.value
}

func (i *Iterator[T]) Err() error {
	return nil
}

// Close releases the current value.
// The remaining elements stay in the list.
func (i *Iterator[T]) Close() error {
	var zero T
	i.value = zero
	return nil
}

// Seq returns the remaining elements as a single use iter.Seq.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i.Next() {
			if !yield(i.Value()) {
				return
			}
		}
	}
}

// BorrowIterator is a borrowing pull iterator over a View.
// It implements the iterkit.PullIter[T] protocol of frameless.
// Any number of BorrowIterator may traverse the same list at the same time.
type BorrowIterator[T any] struct {
	view     View[T]
	prefetch Prefetcher
	current  *cons[T]
}

// Iter returns a borrowing iterator starting at v.
func (v View[T]) Iter() *BorrowIterator[T] {
	return &BorrowIterator[T]{view: v}
}

// IterPrefetch is Iter with p hinted about the node after the new position on every step.
func (v View[T]) IterPrefetch(p Prefetcher) *BorrowIterator[T] {
	return &BorrowIterator[T]{view: v, prefetch: p}
}

func (i *BorrowIterator[T]) Next() bool {
	c := i.view.cons
	if c == nil {
		i.current = nil
		return false
	}
	i.view = c.tail.View()
	if i.prefetch != nil {
		hintAfter(i.prefetch, i.view.cons)
	}
	i.current = c
	return true
}

// Value returns a copy of the element at the iterator's current position.
func (i *BorrowIterator[T]) Value() T {
	if i.current == nil {
		var zero T
		return zero
	}
	return i.current.head
}

func (i *BorrowIterator[T]) Err() error {
	return nil
}

func (i *BorrowIterator[T]) Close() error {
	i.view = View[T]{}
	i.current = nil
	return nil
}

// Seq returns the remaining elements as a single use iter.Seq.
func (i *BorrowIterator[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i.Next() {
			if !yield(i.Value()) {
				return
			}
		}
	}
}
