package corokit

// Tuple is the element type produced by Pair.
type Tuple[L, R any] struct {
	Left  L
	Right R
}

// Pair resumes l and then r once per step.
//
// As long as both sides yield, Pair yields their values together.
// When either side completes, Pair completes with the values observed on that same step,
// and the other side is never resumed again.
func Pair[L, R any](l Coroutine[L], r Coroutine[R]) Coroutine[Tuple[L, R]] {
	return &pair[L, R]{left: l, right: r}
}

type pair[L, R any] struct {
	left  Coroutine[L]
	right Coroutine[R]
	done  bool
}

func (p *pair[L, R]) Resume() State[Tuple[L, R]] {
	if p.done {
		panic(ErrResumedAfterCompletion)
	}
	ls := p.left.Resume()
	rs := p.right.Resume()
	t := Tuple[L, R]{Left: ls.Value, Right: rs.Value}
	if ls.Done || rs.Done {
		p.done = true
		return Return(t)
	}
	return Yield(t)
}

// Concat drains first and then second.
//
// The terminal value of first is yielded as an ordinary value,
// so the only completion Concat reports is the one coming from second.
func Concat[T any](first, second Coroutine[T]) Coroutine[T] {
	return &concat[T]{first: first, second: second}
}

type concat[T any] struct {
	first  Coroutine[T]
	second Coroutine[T]

	onSecond bool
	done     bool
}

func (c *concat[T]) Resume() State[T] {
	if c.done {
		panic(ErrResumedAfterCompletion)
	}
	if !c.onSecond {
		s := c.first.Resume()
		if s.Done {
			c.onSecond = true
		}
		return Yield(s.Value)
	}
	s := c.second.Resume()
	if s.Done {
		c.done = true
	}
	return s
}
