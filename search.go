package xwsolve

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"sync"

	"crosswarped.com/xwsolve/internal/checker"
	"crosswarped.com/xwsolve/pkg/pattern"
)

// Engine drives a depth-first backtracking search that fills Grid's blank
// cells so every span spells a distinct word from Dict.
//
// Engine mutates Grid in place during the search, recording an undo entry
// (the span's previous contents) before every commit and restoring it on
// the way back out -- an O(span length) undo instead of an O(rows*cols)
// clone per recursion frame (see SPEC_FULL.md §9).
type Engine struct {
	Grid *Grid
	Dict *pattern.Dictionary
}

// NewEngine pairs a grid with the dictionary that will fill it. The engine
// does not take ownership of callers' references to grid: Grid.Clone it
// first if you need the original preserved across a Solve call.
func NewEngine(grid *Grid, dict *pattern.Dictionary) *Engine {
	return &Engine{Grid: grid, Dict: dict}
}

// slot pairs a span with its current pattern string and classification,
// read fresh at the start of every recursion node.
type slot struct {
	span  Span
	index int
	word  string
	attr  Attribute
}

// classify reads every span in the grid and buckets it by attribute.
func (e *Engine) classify() (empties, partials, fulls []slot) {
	for i, span := range e.Grid.Spans() {
		word, attr := e.Grid.Read(span)
		s := slot{span: span, index: i, word: word, attr: attr}
		switch {
		case attr.IsEmpty():
			empties = append(empties, s)
		case attr.IsPartial():
			partials = append(partials, s)
		case attr.IsFull():
			fulls = append(fulls, s)
		}
	}
	return empties, partials, fulls
}

func (e *Engine) validateFull(fulls []slot) error {
	fullSlots := make([]checker.FullSlot, len(fulls))
	for i, f := range fulls {
		fullSlots[i] = checker.FullSlot{ID: f.index, Word: f.word}
	}
	return checker.Validate(e.Dict, fullSlots)
}

// pickMRV applies minimum-remaining-values: the slot (a partial one, or an
// empty one when no partial is left) whose pattern has the fewest dictionary
// matches, ties broken by span order. This is the §9-recommended replacement
// for "first partial in span order"; it affects only the order solutions are
// found in, never which grids are solutions.
func (e *Engine) pickMRV(slots []slot) (slot, []string) {
	best := slots[0]
	bestMatches, _ := e.Dict.FindMatches(best.word)
	for _, p := range slots[1:] {
		matches, _ := e.Dict.FindMatches(p.word)
		if len(matches) < len(bestMatches) {
			best, bestMatches = p, matches
		}
	}
	return best, bestMatches
}

// Solve runs the search single-threaded and returns an iterator over
// solution grids in deterministic depth-first, MRV, dictionary-bucket
// order. The yielded *Grid aliases Engine's own storage: a caller that
// needs to retain a solution past the next loop iteration must Clone it.
func (e *Engine) Solve(ctx context.Context) iter.Seq[*Grid] {
	return func(yield func(*Grid) bool) {
		e.search(ctx, yield)
	}
}

// search is the recursive node procedure from SPEC_FULL.md §4.4. It returns
// false when the caller should stop entirely (yield declined a solution, or
// ctx was cancelled), true to keep searching sibling branches.
func (e *Engine) search(ctx context.Context, yield func(*Grid) bool) bool {
	if ctx.Err() != nil {
		return false
	}

	empties, partials, fulls := e.classify()

	if err := e.validateFull(fulls); err != nil {
		return true // pruned: not a word, or a duplicate
	}

	if len(partials) == 0 && len(empties) == 0 {
		return yield(e.Grid)
	}
	// With no partial slot left (a blank grid, or spans that cross no
	// filled cell), the next slot is chosen among the empty ones instead
	// (SPEC_FULL.md §9, replacing the original's assert(nPartial > 0)).
	open := partials
	if len(open) == 0 {
		open = empties
	}

	chosen, candidates := e.pickMRV(open)
	if len(candidates) == 0 {
		return true // dead end: no word matches this pattern
	}

	for _, word := range candidates {
		if ctx.Err() != nil {
			return false
		}

		previous, err := e.Grid.Write(chosen.span, word)
		if err != nil {
			panic(fmt.Errorf("%w: committing %q into %s: %v", ErrInternal, word, chosen.span, err))
		}

		keepGoing := e.search(ctx, yield)

		if _, err := e.Grid.Write(chosen.span, previous); err != nil {
			panic(fmt.Errorf("%w: undoing commit into %s: %v", ErrInternal, chosen.span, err))
		}

		if !keepGoing {
			return false
		}
	}
	return true
}

// SolveAsync runs Solve in its own goroutine and streams solutions over a
// channel, each one an independent Clone so the receiver can hold onto it
// past the next send. The channel closes when the search completes, the
// receiver stops draining and ctx is cancelled, or ctx is cancelled
// directly; this is the entry point the HTTP/Cloud Function layer uses to
// stream results across a request boundary.
func (e *Engine) SolveAsync(ctx context.Context, bufSize int) <-chan *Grid {
	out := make(chan *Grid, bufSize)
	go func() {
		defer close(out)
		for g := range e.Solve(ctx) {
			select {
			case out <- g.Clone():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// SolveParallel forks the search across up to workers goroutines by
// splitting the first MRV-chosen slot's candidate word list, the top-level
// parallelization strategy described in SPEC_FULL.md §5. A worker clones
// the grid for each candidate word it takes and runs the undo-log search on
// that clone.
// workers <= 0 defaults to runtime.GOMAXPROCS(0).
//
// Solutions are not emitted in Solve's deterministic order: only the set of
// solutions is guaranteed to match a sequential Solve run over the same
// grid and dictionary.
func (e *Engine) SolveParallel(ctx context.Context, workers int) iter.Seq[*Grid] {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return func(yield func(*Grid) bool) {
		empties, partials, fulls := e.classify()

		if err := e.validateFull(fulls); err != nil {
			return
		}
		if len(partials) == 0 && len(empties) == 0 {
			yield(e.Grid)
			return
		}
		open := partials
		if len(open) == 0 {
			open = empties
		}

		chosen, candidates := e.pickMRV(open)
		if len(candidates) == 0 {
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		var (
			mu      sync.Mutex
			stopped bool
			wg      sync.WaitGroup
		)

		jobs := make(chan string)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for word := range jobs {
					worker := &Engine{Grid: e.Grid.Clone(), Dict: e.Dict}
					if _, err := worker.Grid.Write(chosen.span, word); err != nil {
						panic(fmt.Errorf("%w: committing %q into %s: %v", ErrInternal, word, chosen.span, err))
					}
					worker.search(ctx, func(g *Grid) bool {
						mu.Lock()
						defer mu.Unlock()
						if stopped {
							return false
						}
						if !yield(g.Clone()) {
							stopped = true
							cancel()
							return false
						}
						return true
					})
				}
			}()
		}

	feed:
		for _, word := range candidates {
			select {
			case jobs <- word:
			case <-ctx.Done():
				break feed
			}
		}
		close(jobs)
		wg.Wait()
	}
}
