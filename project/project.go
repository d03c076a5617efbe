// Package project is the multi-contract scheduling layer of spec.md
// §5: it compiles independent contracts in parallel over a
// work-stealing pool, while guaranteeing each contract is compiled
// exactly once even when several contracts depend on it. Grounded on
// _examples/luxfi-evm/plugin/evm/block_builder.go's per-entry
// sync.Mutex/sync.Cond protocol, generalized from one shared resource
// (the pending-block signal) to one condition variable per contract.
package project

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/yulc/log"
	"github.com/luxfi/yulc/metrics"
)

// CompileFunc compiles one contract's source, calling resolve for
// each dependency it discovers during its own parse step (spec.md §5
// "Dependency discovery is topologically stable: a contract's
// dependency list is known after its parse step").
type CompileFunc func(ctx context.Context, id string, src Source, resolve ResolveFunc) (*Artifact, error)

// ResolveFunc resolves one dependency identifier to its artifact,
// compiling it if necessary.
type ResolveFunc func(ctx context.Context, dependency string) (*Artifact, error)

// Project owns the shared ContractState map and drives the
// work-stealing pool of spec.md §5.
type Project struct {
	compile CompileFunc
	metrics *metrics.Metrics

	mu      sync.Mutex
	entries map[string]*entry

	// ownerRoot and waitFor track the wait-for graph across the whole
	// pool, not just one goroutine's own recursion: ownerRoot[id] is
	// the root identifier of the goroutine currently compiling id;
	// waitFor[root] is the id that root's goroutine is currently
	// blocked on. A per-goroutine stack walk alone (spec.md §5) only
	// catches a cycle discovered by a single chain recursing back on
	// itself; two independently launched top-level goroutines that
	// happen to depend on each other need this cross-goroutine check
	// to avoid deadlocking instead of reporting CyclicDependencyError.
	ownerRoot map[string]string
	waitFor   map[string]string
}

// New constructs a Project that compiles each contract with compile,
// recording compile-duration and worker-count observations into m.
func New(compile CompileFunc, m *metrics.Metrics) *Project {
	if m == nil {
		m = metrics.New()
	}
	return &Project{
		compile:   compile,
		metrics:   m,
		entries:   make(map[string]*entry),
		ownerRoot: make(map[string]string),
		waitFor:   make(map[string]string),
	}
}

// AddSource registers one contract's not-yet-compiled input. Calling
// AddSource for an identifier already present resets it back to
// Source state, discarding any prior Built/Failed result.
func (p *Project) AddSource(id string, src Source) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[id] = newEntry(src)
}

func (p *Project) lookup(id string) (*entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[id]
	return e, ok
}

// Build compiles every registered contract using up to workers
// concurrent goroutines (spec.md §5 "work-stealing pool"): each
// goroutine pulls the next unstarted identifier and resolves it,
// falling through to the same shared-entry protocol as any
// dependency lookup, so contracts reached only as a dependency are
// compiled exactly as eagerly as top-level ones.
func (p *Project) Build(ctx context.Context, workers int) (map[string]*Artifact, error) {
	ids := p.identifiers()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_, err := p.resolve(gctx, id, nil)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p.artifacts(), nil
}

func (p *Project) identifiers() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.entries))
	for id := range p.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids) // spec.md §5 "Determinism": sorted iteration
	return ids
}

func (p *Project) artifacts() map[string]*Artifact {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]*Artifact, len(p.entries))
	for id, e := range p.entries {
		e.mu.Lock()
		if e.state == StateBuilt {
			out[id] = e.artifact
		}
		e.mu.Unlock()
	}
	return out
}

// setOwner records that root's goroutine now owns id's compile.
func (p *Project) setOwner(id, root string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ownerRoot[id] = root
}

// wouldDeadlock walks the wait-for graph starting at target: if
// target's owner is itself (transitively) waiting on something owned
// by root, root blocking on target would close a cycle.
func (p *Project) wouldDeadlock(root, target string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur := target
	visited := make(map[string]bool)
	for {
		if cur == root {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		owner, ok := p.ownerRoot[cur]
		if !ok {
			return false
		}
		next, ok := p.waitFor[owner]
		if !ok {
			return false
		}
		cur = next
	}
}

func (p *Project) setWaiting(root, target string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waitFor[root] = target
}

func (p *Project) clearWaiting(root string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.waitFor, root)
}

// resolve implements the per-entry protocol of spec.md §5: acquire,
// observe Built/Failed/Source/InProgress, and either return
// immediately, claim ownership of the compile, or wait on the
// condition variable. stack is the calling goroutine's chain of
// in-progress identifiers, used to detect a dependency cycle before
// ever blocking on one (spec.md §5 "detected by walking the
// InProgress stack of the current worker").
func (p *Project) resolve(ctx context.Context, id string, stack []string) (*Artifact, error) {
	for _, s := range stack {
		if s == id {
			return nil, &CyclicDependencyError{Chain: append(append([]string{}, stack...), id)}
		}
	}

	root := id
	if len(stack) > 0 {
		root = stack[0]
	}

	e, ok := p.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	e.mu.Lock()
	for {
		switch e.state {
		case StateBuilt:
			artifact := e.artifact
			e.mu.Unlock()
			return artifact, nil

		case StateFailed:
			err := e.err
			e.mu.Unlock()
			return nil, err

		case StateInProgress:
			if p.wouldDeadlock(root, id) {
				e.mu.Unlock()
				return nil, &CyclicDependencyError{Chain: append(append([]string{}, stack...), id)}
			}
			p.setWaiting(root, id)
			e.cond.Wait()
			p.clearWaiting(root)

		case StateSource:
			e.state = StateInProgress
			src := e.source
			e.mu.Unlock()
			p.setOwner(id, root)

			p.metrics.ActiveWorkers.Inc()
			started := time.Now()

			childStack := append(append([]string{}, stack...), id)
			artifact, err := p.compile(ctx, id, src, func(ctx context.Context, dep string) (*Artifact, error) {
				a, derr := p.resolve(ctx, dep, childStack)
				if derr != nil {
					return nil, &SubcompileError{Dependency: dep, Err: derr}
				}
				return a, nil
			})

			p.metrics.CompileDuration.WithLabelValues(id).Observe(time.Since(started).Seconds())
			p.metrics.ActiveWorkers.Dec()

			e.mu.Lock()
			if err != nil {
				e.state = StateFailed
				e.err = err
				log.Error("contract compile failed", "id", id, "error", err)
			} else {
				e.state = StateBuilt
				e.artifact = artifact
				log.Debug("contract compiled", "id", id)
			}
			e.cond.Broadcast()
			e.mu.Unlock()

			if err != nil {
				return nil, err
			}
			return artifact, nil
		}
	}
}
