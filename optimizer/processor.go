/*
 * MIT License
 *
 * Copyright (c) 2024-2026 StellarForge
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package optimizer

import (
	"runtime"
	"time"

	"github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
)

// parallelThreshold is the minimum group size worth fanning out over
// multiple goroutines.
const parallelThreshold = 4

// slowTransitionAverage is the mean transition duration above which the
// worker emits a warning.
const slowTransitionAverage = 10 * time.Millisecond

// operation is one queued batch request.
type operation struct {
	actors []lifecycle.Actor
	target lifecycle.State
}

// batchProcessor drains queued batch operations on a single worker
// goroutine. Operations still queued when the processor stops are
// abandoned.
type batchProcessor struct {
	manager *lifecycle.Manager
	config  Config
	metrics *Metrics
	logger  log.Logger

	operations *queue.Queue
	started    *atomic.Bool
	doneCh     chan struct{}
}

func newBatchProcessor(manager *lifecycle.Manager, config Config, metrics *Metrics, logger log.Logger) *batchProcessor {
	return &batchProcessor{
		manager:    manager,
		config:     config,
		metrics:    metrics,
		logger:     logger,
		operations: queue.New(int64(config.PreferredBatchSize)),
		started:    atomic.NewBool(false),
		doneCh:     make(chan struct{}),
	}
}

// Start spawns the worker goroutine. Starting a running processor is a
// no-op.
func (p *batchProcessor) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	go p.run()
}

// Stop disposes the queue and waits for the worker to exit. The
// operation in flight finishes; queued operations are dropped.
func (p *batchProcessor) Stop() {
	if !p.started.CompareAndSwap(true, false) {
		return
	}
	pending := p.operations.Len()
	p.operations.Dispose()
	select {
	case <-p.doneCh:
	case <-time.After(p.config.BatchTimeout):
		p.logger.Warn("batch processor did not drain before the shutdown timeout")
	}
	if pending > 0 {
		p.logger.Warnf("abandoning %d queued batch operations", pending)
	}
}

// Submit enqueues a batch for asynchronous processing.
func (p *batchProcessor) Submit(actors []lifecycle.Actor, target lifecycle.State) error {
	return p.operations.Put(operation{actors: actors, target: target})
}

// Pending reports how many operations are waiting in the queue.
func (p *batchProcessor) Pending() int64 {
	return p.operations.Len()
}

func (p *batchProcessor) run() {
	defer close(p.doneCh)
	for {
		items, err := p.operations.Get(1)
		if err != nil {
			// queue disposed
			return
		}
		for _, item := range items {
			op, ok := item.(operation)
			if !ok {
				continue
			}
			p.process(op.actors, op.target)
		}
	}
}

// process applies one batch, chunked to the configured maximum size.
func (p *batchProcessor) process(actors []lifecycle.Actor, target lifecycle.State) {
	chunkSize := p.config.MaxBatchSize
	if chunkSize <= 0 {
		chunkSize = len(actors)
	}
	for start := 0; start < len(actors); start += chunkSize {
		end := min(start+chunkSize, len(actors))
		p.processChunk(actors[start:end], target)
	}
}

func (p *batchProcessor) processChunk(actors []lifecycle.Actor, target lifecycle.State) {
	batchStart := time.Now()

	// group actors by their current state so each group can be checked
	// for parallel eligibility as a whole
	order := make([]lifecycle.State, 0, 4)
	groups := make(map[lifecycle.State][]lifecycle.Actor, 4)
	for _, actor := range actors {
		state := p.manager.GetState(actor)
		if _, seen := groups[state]; !seen {
			order = append(order, state)
		}
		groups[state] = append(groups[state], actor)
	}

	for _, state := range order {
		group := groups[state]
		if p.config.EnableParallel && lifecycle.ParallelSafe(state, target) && len(group) > parallelThreshold {
			p.applyParallel(group, target)
			continue
		}
		for _, actor := range group {
			p.applyOne(actor, target)
		}
	}

	p.metrics.RecordBatch(time.Since(batchStart), len(actors))
	if p.config.EnableMonitoring {
		if average := p.metrics.AverageTransitionTime(); average > slowTransitionAverage {
			p.logger.Warnf("average transition time %s exceeds %s", average, slowTransitionAverage)
		}
	}
}

func (p *batchProcessor) applyParallel(actors []lifecycle.Actor, target lifecycle.State) {
	p.metrics.RecordParallelGroup()
	eg := new(errgroup.Group)
	eg.SetLimit(runtime.NumCPU())
	for _, actor := range actors {
		actor := actor
		eg.Go(func() error {
			p.applyOne(actor, target)
			return nil
		})
	}
	_ = eg.Wait()
}

func (p *batchProcessor) applyOne(actor lifecycle.Actor, target lifecycle.State) {
	start := time.Now()
	p.manager.TransitionTo(actor, target)
	p.metrics.RecordTransition(time.Since(start))
}
