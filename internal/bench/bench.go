// Package bench holds the zip-and-fold workload that compares the traversal families of conslist.
//
// Every workload walks two lists side by side and sums up the paired elements,
// stopping with the shorter list.
package bench

import (
	"context"
	"fmt"
	"time"

	"go.llib.dev/conslist"
	"go.llib.dev/conslist/pkg/corokit"
	"go.llib.dev/conslist/pkg/prefetch"
	"go.llib.dev/conslist/pkg/streamkit"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/iterkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/testcase/clock"
)

const (
	ErrUnknownTraversal errorkit.Error = "ErrUnknownTraversal"
	ErrInvalidLength    errorkit.Error = "ErrInvalidLength"
	ErrInvalidLocality  errorkit.Error = "ErrInvalidLocality"
)

type Traversal string

const (
	Iter         Traversal = "iter"
	BorrowIter   Traversal = "borrow-iter"
	Coro         Traversal = "coro"
	BorrowCoro   Traversal = "borrow-coro"
	Stream       Traversal = "stream"
	BorrowStream Traversal = "borrow-stream"
)

// Traversals lists every supported traversal family.
func Traversals() []Traversal {
	return []Traversal{Iter, BorrowIter, Coro, BorrowCoro, Stream, BorrowStream}
}

type Config struct {
	Traversal Traversal
	// Length is the number of elements in each of the two lists.
	Length   int
	Prefetch bool
	Locality prefetch.Locality
}

func (c Config) Validate() error {
	if c.Length < 1 {
		return ErrInvalidLength.F("length must be positive, got %d", c.Length)
	}
	if c.Prefetch && !c.Locality.Valid() {
		return ErrInvalidLocality.F("locality must be between 0 and 3, got %d", c.Locality)
	}
	if _, ok := workloads[c.Traversal]; !ok {
		return ErrUnknownTraversal.F("%q", c.Traversal)
	}
	return nil
}

type Result struct {
	Traversal Traversal     `json:"traversal" yaml:"traversal"`
	Length    int           `json:"length" yaml:"length"`
	Prefetch  bool          `json:"prefetch" yaml:"prefetch"`
	Locality  string        `json:"locality,omitempty" yaml:"locality,omitempty"`
	Sum       int           `json:"sum" yaml:"sum"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
}

func (r Result) String() string {
	return fmt.Sprintf("res: %d time: %s", r.Sum, r.Elapsed)
}

// Lists builds the two input lists, both from the range 1..n.
func Lists(n int) (conslist.List[int], conslist.List[int]) {
	seq := func(yield func(int) bool) {
		for i := 1; i <= n; i++ {
			if !yield(i) {
				return
			}
		}
	}
	return conslist.New[int](seq), conslist.New[int](seq)
}

// Run builds the lists, then times a single workload over them.
// List construction and teardown are not part of the measured time.
func Run(ctx context.Context, c Config) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	ctx = logging.ContextWith(ctx,
		logging.Field("traversal", string(c.Traversal)),
		logging.Field("length", c.Length),
		logging.Field("prefetch", c.Prefetch))

	logger.Debug(ctx, "building benchmark lists")
	l, r := Lists(c.Length)
	defer l.Clear()
	defer r.Clear()

	var p conslist.Prefetcher
	if c.Prefetch {
		p = c.Locality
	}

	start := clock.Now()
	sum := workloads[c.Traversal](&l, &r, p)
	elapsed := clock.Now().Sub(start)
	logger.Debug(ctx, "benchmark workload finished", logging.Field("elapsed", elapsed.String()))

	res := Result{
		Traversal: c.Traversal,
		Length:    c.Length,
		Prefetch:  c.Prefetch,
		Sum:       sum,
		Elapsed:   elapsed,
	}
	if c.Prefetch {
		res.Locality = c.Locality.String()
	}
	return res, nil
}

// Sum runs the workload of traversal t over the given lists.
// Owning workloads consume l and r.
func Sum(t Traversal, l, r *conslist.List[int], p conslist.Prefetcher) (int, error) {
	w, ok := workloads[t]
	if !ok {
		return 0, ErrUnknownTraversal.F("%q", t)
	}
	return w(l, r, p), nil
}

type workload func(l, r *conslist.List[int], p conslist.Prefetcher) int

var workloads = map[Traversal]workload{
	Iter: func(l, r *conslist.List[int], p conslist.Prefetcher) int {
		return sumIter(l.IntoIterPrefetch(p), r.IntoIterPrefetch(p))
	},
	BorrowIter: func(l, r *conslist.List[int], p conslist.Prefetcher) int {
		return sumIter(l.View().IterPrefetch(p), r.View().IterPrefetch(p))
	},
	Coro: func(l, r *conslist.List[int], p conslist.Prefetcher) int {
		return sumCoro(l.IntoCoroutinePrefetch(p), r.IntoCoroutinePrefetch(p))
	},
	BorrowCoro: func(l, r *conslist.List[int], p conslist.Prefetcher) int {
		return sumCoro(l.View().CoroutinePrefetch(p), r.View().CoroutinePrefetch(p))
	},
	Stream: func(l, r *conslist.List[int], p conslist.Prefetcher) int {
		return sumStream(l.IntoStreamPrefetch(p), r.IntoStreamPrefetch(p))
	},
	BorrowStream: func(l, r *conslist.List[int], p conslist.Prefetcher) int {
		return sumStream(l.View().StreamPrefetch(p), r.View().StreamPrefetch(p))
	},
}

func sumIter(l, r iterkit.PullIter[int]) int {
	defer l.Close()
	defer r.Close()
	var acc int
	for l.Next() && r.Next() {
		acc += l.Value() + r.Value()
	}
	return acc
}

func sumCoro(l, r corokit.Coroutine[int]) int {
	return corokit.Fold(corokit.Pair(l, r), 0, func(acc int, t corokit.Tuple[int, int]) int {
		return acc + t.Left + t.Right
	})
}

func sumStream(l, r streamkit.Stream[int]) int {
	zipped := streamkit.ZipWith(l, r, func(a, b int) int { return a + b })
	return streamkit.Execute(streamkit.Fold(zipped, 0, func(acc, v int) int { return acc + v }))
}
