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

package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

const (
	createdCounterName          = "actor_created_total"
	destroyedCounterName        = "actor_destroyed_total"
	transitionCounterName       = "actor_transitions_total"
	failedTransitionCounterName = "actor_transitions_failed_total"
	transitionDurationName      = "actor_transition_duration"
	creationDurationName        = "actor_creation_duration"
)

// Metrics holds the lifecycle instruments.
type Metrics struct {
	// CreatedCount is the total number of actors registered.
	CreatedCount metric.Int64Counter
	// DestroyedCount is the total number of actors destroyed.
	DestroyedCount metric.Int64Counter
	// TransitionCount is the total number of successful state transitions.
	TransitionCount metric.Int64Counter
	// FailedTransitionCount is the total number of rejected transitions.
	FailedTransitionCount metric.Int64Counter
	// TransitionDuration is the latency of a state transition in milliseconds.
	TransitionDuration metric.Float64Histogram
	// CreationDuration is the latency of factory creation in milliseconds.
	CreationDuration metric.Float64Histogram
}

// NewMetrics registers the lifecycle instruments against the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	metrics := new(Metrics)
	var err error

	if metrics.CreatedCount, err = meter.Int64Counter(
		createdCounterName,
		metric.WithDescription("The total number of actors registered"),
	); err != nil {
		return nil, fmt.Errorf("failed to create created count instrument, %v", err)
	}

	if metrics.DestroyedCount, err = meter.Int64Counter(
		destroyedCounterName,
		metric.WithDescription("The total number of actors destroyed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create destroyed count instrument, %v", err)
	}

	if metrics.TransitionCount, err = meter.Int64Counter(
		transitionCounterName,
		metric.WithDescription("The total number of successful state transitions"),
	); err != nil {
		return nil, fmt.Errorf("failed to create transition count instrument, %v", err)
	}

	if metrics.FailedTransitionCount, err = meter.Int64Counter(
		failedTransitionCounterName,
		metric.WithDescription("The total number of rejected state transitions"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failed transition count instrument, %v", err)
	}

	if metrics.TransitionDuration, err = meter.Float64Histogram(
		transitionDurationName,
		metric.WithDescription("The latency of a state transition in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create transition duration instrument, %v", err)
	}

	if metrics.CreationDuration, err = meter.Float64Histogram(
		creationDurationName,
		metric.WithDescription("The latency of factory actor creation in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create creation duration instrument, %v", err)
	}

	return metrics, nil
}
