// Package running executes independent shots across a worker pool, giving
// each worker a private result container and reducing the finished
// containers into a single aggregate.
package running

import (
	"context"
	"log"
	"runtime"
	"sync"

	"ResultAggregator/pkg/results"
)

// ShotFunc produces one shot's result fragments into rec. It is called from
// worker goroutines, but every worker owns its container exclusively, so a
// ShotFunc never needs to synchronize writes to rec.
type ShotFunc[T results.Value[T]] func(shot int, rec *results.Container[T])

// Runner fans N shots out over W workers.
type Runner[T results.Value[T]] struct {
	Shots   int
	Workers int
}

// NewRunner creates a runner for the given shot count. Workers defaults to
// GOMAXPROCS.
func NewRunner[T results.Value[T]](shots int) *Runner[T] {
	return &Runner[T]{
		Shots:   shots,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Run executes the shots and returns the merged aggregate. Workers pull shot
// indices from a shared channel; each accumulates into its own container, and
// the containers are absorbed into one survivor only after all workers have
// stopped. On cancellation the aggregate of the shots completed so far is
// returned along with the context error; callers that want all-or-nothing
// semantics should discard it.
func (r *Runner[T]) Run(ctx context.Context, fn ShotFunc[T]) (*results.Container[T], error) {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > r.Shots && r.Shots > 0 {
		workers = r.Shots
	}

	shots := make(chan int)
	go func() {
		defer close(shots)
		for i := 0; i < r.Shots; i++ {
			select {
			case shots <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	partials := make([]*results.Container[T], workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(idx int) {
			defer wg.Done()
			rec := results.New[T]()
			for shot := range shots {
				fn(shot, rec)
			}
			partials[idx] = rec
		}(w)
	}
	wg.Wait()

	acc := results.New[T]()
	for _, rec := range partials {
		if rec != nil {
			acc.Absorb(rec)
		}
	}

	if err := ctx.Err(); err != nil {
		log.Printf("Run cancelled after partial accumulation: %v", err)
		return acc, err
	}
	return acc, nil
}
