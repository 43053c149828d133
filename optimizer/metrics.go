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
	"time"

	"go.uber.org/atomic"
)

// Metrics accumulates transition and batch timings. All counters are
// atomic so the batch worker and callers can read them concurrently.
type Metrics struct {
	startedAt time.Time

	transitionCount      *atomic.Uint64
	totalTransitionNanos *atomic.Int64
	batchCount           *atomic.Uint64
	totalBatchNanos      *atomic.Int64
	batchedActors        *atomic.Uint64
	parallelGroups       *atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of the optimizer metrics.
type MetricsSnapshot struct {
	TransitionCount       uint64
	TotalTransitionTime   time.Duration
	AverageTransitionTime time.Duration
	BatchCount            uint64
	TotalBatchTime        time.Duration
	AverageBatchTime      time.Duration
	BatchedActors         uint64
	ParallelGroups        uint64
	TransitionsPerSecond  float64
	Uptime                time.Duration
}

// NewMetrics creates a zeroed metrics accumulator.
func NewMetrics() *Metrics {
	return &Metrics{
		startedAt:            time.Now(),
		transitionCount:      atomic.NewUint64(0),
		totalTransitionNanos: atomic.NewInt64(0),
		batchCount:           atomic.NewUint64(0),
		totalBatchNanos:      atomic.NewInt64(0),
		batchedActors:        atomic.NewUint64(0),
		parallelGroups:       atomic.NewUint64(0),
	}
}

// RecordTransition accounts for one attempted transition.
func (m *Metrics) RecordTransition(elapsed time.Duration) {
	m.transitionCount.Inc()
	m.totalTransitionNanos.Add(elapsed.Nanoseconds())
}

// RecordBatch accounts for one processed batch of the given size.
func (m *Metrics) RecordBatch(elapsed time.Duration, size int) {
	m.batchCount.Inc()
	m.totalBatchNanos.Add(elapsed.Nanoseconds())
	m.batchedActors.Add(uint64(size))
}

// RecordParallelGroup counts a group that was applied in parallel.
func (m *Metrics) RecordParallelGroup() {
	m.parallelGroups.Inc()
}

// TransitionCount returns the number of attempted transitions.
func (m *Metrics) TransitionCount() uint64 {
	return m.transitionCount.Load()
}

// AverageTransitionTime returns the mean duration of one transition,
// zero when nothing has been recorded.
func (m *Metrics) AverageTransitionTime() time.Duration {
	count := m.transitionCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(m.totalTransitionNanos.Load() / int64(count))
}

// AverageBatchTime returns the mean duration of one batch, zero when
// nothing has been recorded.
func (m *Metrics) AverageBatchTime() time.Duration {
	count := m.batchCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(m.totalBatchNanos.Load() / int64(count))
}

// TransitionsPerSecond returns the throughput since the metrics were
// created.
func (m *Metrics) TransitionsPerSecond() float64 {
	elapsed := time.Since(m.startedAt).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(m.transitionCount.Load()) / elapsed
}

// Snapshot copies every counter into a plain value.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		TransitionCount:       m.transitionCount.Load(),
		TotalTransitionTime:   time.Duration(m.totalTransitionNanos.Load()),
		AverageTransitionTime: m.AverageTransitionTime(),
		BatchCount:            m.batchCount.Load(),
		TotalBatchTime:        time.Duration(m.totalBatchNanos.Load()),
		AverageBatchTime:      m.AverageBatchTime(),
		BatchedActors:         m.batchedActors.Load(),
		ParallelGroups:        m.parallelGroups.Load(),
		TransitionsPerSecond:  m.TransitionsPerSecond(),
		Uptime:                time.Since(m.startedAt),
	}
}
