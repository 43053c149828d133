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

package lifecycle

import "time"

// Stats records the timing history of a single actor. Timestamps are set at
// most once each; counters only increase.
type Stats struct {
	// CreationTime is when the actor was registered.
	CreationTime time.Time
	// InitializationTime is when the actor reached Initialized.
	InitializationTime time.Time
	// ActivationTime is when the actor first reached Active.
	ActivationTime time.Time
	// DestructionTime is when the actor reached Destroyed.
	DestructionTime time.Time
	// UpdateCallCount is the number of Update invocations.
	UpdateCallCount uint64
	// TotalUpdateTime is the cumulative wall time spent in Update.
	TotalUpdateTime time.Duration
	// AverageUpdateTime is TotalUpdateTime divided by UpdateCallCount.
	AverageUpdateTime time.Duration
	// PauseCount is the number of times the actor entered Paused.
	PauseCount uint64
}

// IsAlive reports whether the actor has not been destroyed yet.
func (s Stats) IsAlive() bool {
	return s.DestructionTime.IsZero()
}

// Lifetime returns the time between creation and destruction, or the time
// since creation while the actor is alive.
func (s Stats) Lifetime() time.Duration {
	if s.CreationTime.IsZero() {
		return 0
	}
	if s.IsAlive() {
		return time.Since(s.CreationTime)
	}
	return s.DestructionTime.Sub(s.CreationTime)
}

// InitializationDuration returns the time spent between creation and
// reaching Initialized, or zero when the actor never initialized.
func (s Stats) InitializationDuration() time.Duration {
	if s.CreationTime.IsZero() || s.InitializationTime.IsZero() {
		return 0
	}
	return s.InitializationTime.Sub(s.CreationTime)
}

// ActivationDuration returns the time spent between Initialized and the
// first activation, or zero when the actor never activated.
func (s Stats) ActivationDuration() time.Duration {
	if s.InitializationTime.IsZero() || s.ActivationTime.IsZero() {
		return 0
	}
	return s.ActivationTime.Sub(s.InitializationTime)
}

// recordUpdate folds one Update invocation into the counters.
func (s *Stats) recordUpdate(elapsed time.Duration) {
	s.UpdateCallCount++
	s.TotalUpdateTime += elapsed
	s.AverageUpdateTime = s.TotalUpdateTime / time.Duration(s.UpdateCallCount)
}
