package conslist

import (
	"go.llib.dev/conslist/pkg/streamkit"
)

// Stream is an owning streamkit.Stream over a List.
// It produces the same elements in the same order as Iterator,
// and it is never Pending, so streamkit.Execute can drive it without a scheduler.
type Stream[T any] struct {
	iter Iterator[T]
}

var _ streamkit.Stream[int] = &Stream[int]{}

// IntoStream returns an owning Stream that consumes l.
func (l *List[T]) IntoStream() *Stream[T] {
	return &Stream[T]{iter: Iterator[T]{list: l}}
}

// IntoStreamPrefetch is IntoStream with p hinted about the node after the new head on every poll.
func (l *List[T]) IntoStreamPrefetch(p Prefetcher) *Stream[T] {
	return &Stream[T]{iter: Iterator[T]{list: l, prefetch: p}}
}

func (s *Stream[T]) PollNext(streamkit.Waker) streamkit.Poll[T] {
	if !s.iter.Next() {
		return streamkit.End[T]()
	}
	v := s.iter.Value()
	s.iter.Close()
	return streamkit.Item(v)
}

// BorrowStream is a borrowing streamkit.Stream over a View.
type BorrowStream[T any] struct {
	iter BorrowIterator[T]
}

var _ streamkit.Stream[int] = &BorrowStream[int]{}

// Stream returns a borrowing Stream starting at v.
func (v View[T]) Stream() *BorrowStream[T] {
	return &BorrowStream[T]{iter: BorrowIterator[T]{view: v}}
}

// StreamPrefetch is Stream with p hinted about the node after the new position on every poll.
func (v View[T]) StreamPrefetch(p Prefetcher) *BorrowStream[T] {
	return &BorrowStream[T]{iter: BorrowIterator[T]{view: v, prefetch: p}}
}

func (s *BorrowStream[T]) PollNext(streamkit.Waker) streamkit.Poll[T] {
	if !s.iter.Next() {
		return streamkit.End[T]()
	}
	return streamkit.Item(s.iter.Value())
}
