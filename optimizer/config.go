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

import "time"

// Config tunes the performance optimizer.
type Config struct {
	// EnableBatching routes batch transitions through the worker queue.
	EnableBatching bool
	// EnableParallel allows parallel application of eligible transitions.
	EnableParallel bool
	// EnablePooling recycles lifecycle contexts through the context pool.
	EnablePooling bool
	// EnableMonitoring lets the optimizer log performance warnings.
	EnableMonitoring bool
	// PreferredBatchSize is the batch size the optimizer aims for.
	PreferredBatchSize int
	// MaxBatchSize caps how many actors one operation processes at once;
	// larger operations are chunked.
	MaxBatchSize int
	// BatchTimeout bounds how long Stop waits for the worker to drain the
	// operation in flight.
	BatchTimeout time.Duration
	// MaxPoolSize caps the context pool.
	MaxPoolSize int
	// TargetTransitionsPerSecond is the throughput goal used by the
	// performance report.
	TargetTransitionsPerSecond float64
	// MemoryWarningThresholdMB is the in-use heap size that triggers a
	// warning in the performance report.
	MemoryWarningThresholdMB float64
}

// DefaultConfig returns the optimizer defaults.
func DefaultConfig() Config {
	return Config{
		EnableBatching:             true,
		EnableParallel:             true,
		EnablePooling:              true,
		EnableMonitoring:           true,
		PreferredBatchSize:         64,
		MaxBatchSize:               256,
		BatchTimeout:               time.Second,
		MaxPoolSize:                1000,
		TargetTransitionsPerSecond: 10000,
		MemoryWarningThresholdMB:   512,
	}
}
