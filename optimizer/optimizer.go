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

// Package optimizer batches and parallelizes lifecycle transitions and
// keeps throughput metrics about them.
package optimizer

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
)

// Optimizer owns the batch processor and its metrics.
type Optimizer struct {
	mutex     sync.Mutex
	manager   *lifecycle.Manager
	config    Config
	metrics   *Metrics
	processor *batchProcessor
	logger    log.Logger
	started   *atomic.Bool
}

// New creates an optimizer bound to the given manager. The optimizer
// does not process anything until Start is called.
func New(manager *lifecycle.Manager, config Config, opts ...Option) *Optimizer {
	optimizer := &Optimizer{
		manager: manager,
		config:  config,
		metrics: NewMetrics(),
		logger:  log.DefaultLogger,
		started: atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(optimizer)
	}
	optimizer.processor = newBatchProcessor(manager, config, optimizer.metrics, optimizer.logger)
	return optimizer
}

// Start spins up the batch worker. Starting twice is a no-op.
func (o *Optimizer) Start() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.started.Load() {
		return
	}
	// the queue is disposed on Stop, so each start gets a fresh processor;
	// the started flag flips only after the worker is live
	o.processor = newBatchProcessor(o.manager, o.config, o.metrics, o.logger)
	o.processor.Start()
	o.started.Store(true)
	o.logger.Info("performance optimizer started")
}

// Stop shuts the batch worker down. Queued operations that have not
// begun are abandoned.
func (o *Optimizer) Stop() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if !o.started.Load() {
		return
	}
	o.started.Store(false)
	o.processor.Stop()
	o.logger.Info("performance optimizer stopped")
}

// Running reports whether the batch worker is live.
func (o *Optimizer) Running() bool {
	return o.started.Load()
}

// BatchTransition moves the given actors toward the target state. With
// batching enabled and the worker running, the operation is queued and
// applied asynchronously; otherwise it is applied inline on the calling
// goroutine.
func (o *Optimizer) BatchTransition(actors []lifecycle.Actor, target lifecycle.State) error {
	if len(actors) == 0 {
		return nil
	}
	if o.config.EnableBatching && o.started.Load() {
		return o.processor.Submit(actors, target)
	}
	o.processor.process(actors, target)
	return nil
}

// Pending reports how many batch operations are waiting in the queue.
func (o *Optimizer) Pending() int64 {
	return o.processor.Pending()
}

// Metrics returns a snapshot of the optimizer counters.
func (o *Optimizer) Metrics() MetricsSnapshot {
	return o.metrics.Snapshot()
}

// Report renders a human-readable performance summary with tuning
// recommendations.
func (o *Optimizer) Report() string {
	snapshot := o.metrics.Snapshot()

	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)
	heapMB := float64(memory.HeapInuse) / (1024 * 1024)

	builder := new(strings.Builder)
	builder.WriteString("=== Performance Report ===\n")
	fmt.Fprintf(builder, "Uptime: %s\n", snapshot.Uptime.Round(time.Second))
	fmt.Fprintf(builder, "Transitions: %d (avg %s)\n", snapshot.TransitionCount, snapshot.AverageTransitionTime)
	fmt.Fprintf(builder, "Batches: %d (avg %s, %d actors, %d parallel groups)\n",
		snapshot.BatchCount, snapshot.AverageBatchTime, snapshot.BatchedActors, snapshot.ParallelGroups)
	fmt.Fprintf(builder, "Throughput: %.1f transitions/s (target %.1f)\n",
		snapshot.TransitionsPerSecond, o.config.TargetTransitionsPerSecond)
	fmt.Fprintf(builder, "Heap in use: %.1f MB\n", heapMB)

	var recommendations []string
	if snapshot.TransitionCount > 0 && snapshot.TransitionsPerSecond < o.config.TargetTransitionsPerSecond {
		recommendations = append(recommendations, "throughput below target, consider larger batches")
	}
	if snapshot.AverageTransitionTime > slowTransitionAverage {
		recommendations = append(recommendations, "transitions are slow, check hook and validator cost")
	}
	if heapMB > o.config.MemoryWarningThresholdMB {
		recommendations = append(recommendations, fmt.Sprintf("heap above %.0f MB, consider shrinking the context pool", o.config.MemoryWarningThresholdMB))
	}
	if len(recommendations) == 0 {
		builder.WriteString("Recommendations: none\n")
		return builder.String()
	}
	builder.WriteString("Recommendations:\n")
	for _, recommendation := range recommendations {
		fmt.Fprintf(builder, "  - %s\n", recommendation)
	}
	return builder.String()
}
