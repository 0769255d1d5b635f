package streamkit

// Fold returns a Future that reduces every value of s into a single result.
// The Future resolves when s is exhausted.
func Fold[R, T any](s Stream[T], initial R, fn func(R, T) R) Future[R] {
	return &fold[R, T]{stream: s, acc: initial, fn: fn}
}

type fold[R, T any] struct {
	stream Stream[T]
	acc    R
	fn     func(R, T) R
	done   bool
}

func (f *fold[R, T]) Poll(w Waker) Poll[R] {
	if f.done {
		panic(ErrPolledAfterCompletion)
	}
	for {
		p := f.stream.PollNext(w)
		switch p.Status {
		case Ready:
			f.acc = f.fn(f.acc, p.Value)
		case Exhausted:
			f.done = true
			return Item(f.acc)
		default:
			return NotReady[R]()
		}
	}
}

// Collect returns a Future that gathers every value of s.
func Collect[T any](s Stream[T]) Future[[]T] {
	return Fold(s, []T(nil), func(vs []T, v T) []T {
		return append(vs, v)
	})
}

// ZipWith pairs up the values of l and r with fn.
// The resulting stream is exhausted as soon as either side is exhausted.
// A value already received from l is kept while r is pending.
func ZipWith[L, R, O any](l Stream[L], r Stream[R], fn func(L, R) O) Stream[O] {
	return &zip[L, R, O]{left: l, right: r, fn: fn}
}

type zip[L, R, O any] struct {
	left  Stream[L]
	right Stream[R]
	fn    func(L, R) O

	buf   L
	hasL  bool
	ended bool
}

func (z *zip[L, R, O]) PollNext(w Waker) Poll[O] {
	if z.ended {
		return End[O]()
	}
	if !z.hasL {
		lp := z.left.PollNext(w)
		switch lp.Status {
		case Pending:
			return NotReady[O]()
		case Exhausted:
			z.ended = true
			return End[O]()
		}
		z.buf, z.hasL = lp.Value, true
	}
	rp := z.right.PollNext(w)
	switch rp.Status {
	case Pending:
		return NotReady[O]()
	case Exhausted:
		z.ended = true
		return End[O]()
	}
	var zero L
	lv := z.buf
	z.buf, z.hasL = zero, false
	return Item(z.fn(lv, rp.Value))
}

// Take limits s to its first n values.
func Take[T any](s Stream[T], n int) Stream[T] {
	return &take[T]{stream: s, left: n}
}

type take[T any] struct {
	stream Stream[T]
	left   int
}

func (t *take[T]) PollNext(w Waker) Poll[T] {
	if t.left <= 0 {
		return End[T]()
	}
	p := t.stream.PollNext(w)
	switch p.Status {
	case Ready:
		t.left--
	case Exhausted:
		t.left = 0
	}
	return p
}

// FromFunc returns an endless Stream where every value is the result of a Future made by next.
// A Future that is still pending is kept between polls and polled again,
// next is only called once the previous Future resolved.
func FromFunc[T any](next func() Future[T]) Stream[T] {
	return &funcStream[T]{next: next}
}

type funcStream[T any] struct {
	next     func() Future[T]
	inflight Future[T]
}

func (s *funcStream[T]) PollNext(w Waker) Poll[T] {
	if s.inflight == nil {
		s.inflight = s.next()
	}
	p := s.inflight.Poll(w)
	if p.IsReady() {
		s.inflight = nil
	}
	return p
}
