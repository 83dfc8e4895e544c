package problem

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rwcarlsen/optimum"
	"golang.org/x/sync/errgroup"
)

// Wrapper owns a user-supplied problem for the life of an Executor run. It
// re-exposes every capability the user's O implements and counts the
// number of scalar evaluations performed against each capability kind. A
// bulk call of length N increments its capability's counter by N,
// regardless of whether the bulk call ran sequentially or in parallel.
type Wrapper[O any] struct {
	Problem O

	// Parallel enables parallel bulk dispatch when the capability
	// being called implements Parallelizer and it returns true (or
	// implements nothing, in which case it defaults to true). It is
	// off by default: SPEC_FULL.md §5 requires parallel evaluation to
	// be an opt-in, not a silent default.
	Parallel bool

	mu     sync.Mutex
	counts map[optimum.CapabilityKind]uint64
}

// New wraps problem with zeroed counters.
func New[O any](p O) *Wrapper[O] {
	return &Wrapper[O]{Problem: p, counts: make(map[optimum.CapabilityKind]uint64, 6)}
}

// Lend returns the same wrapper instance, documenting that a solver is
// handing the problem to a nested sub-solver (e.g. a line search run
// inside a descent method). Because it is the same *Wrapper, evaluation
// counts performed by the sub-solver accrue into the same outer counter
// map automatically.
func (w *Wrapper[O]) Lend() *Wrapper[O] { return w }

func (w *Wrapper[O]) addCount(kind optimum.CapabilityKind, n uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.counts[kind] += n
}

// Counts returns a snapshot of the evaluation counters accumulated so far.
func (w *Wrapper[O]) Counts() optimum.Counts {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := optimum.NewCounts()
	for k, v := range w.counts {
		out = out.With(k, v)
	}
	return out
}

// dispatch runs fn(params[i]) for every i, either sequentially or (when
// parallel is true) over a bounded work-stealing pool via errgroup, and
// always returns results in input-index order (§5's ordering guarantee).
func dispatch[P, R any](parallel bool, params []P, fn func(P) (R, error)) ([]R, error) {
	results := make([]R, len(params))
	if !parallel || len(params) < 2 {
		for i, p := range params {
			r, err := fn(p)
			if err != nil {
				return results, err
			}
			results[i] = r
		}
		return results, nil
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(maxParallelism())
	for i, p := range params {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			r, err := fn(p)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

var parallelismOverride int32

// maxParallelism bounds the work-stealing pool used for parallel bulk
// dispatch. It defaults to GOMAXPROCS; tests may lower it with
// SetMaxParallelism to make interleaving deterministic.
func maxParallelism() int {
	if n := atomic.LoadInt32(&parallelismOverride); n > 0 {
		return int(n)
	}
	return runtime.GOMAXPROCS(0)
}

// SetMaxParallelism overrides the parallel bulk-dispatch pool size; pass 0
// to restore the GOMAXPROCS default.
func SetMaxParallelism(n int) {
	atomic.StoreInt32(&parallelismOverride, int32(n))
}
