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

package factory

import (
	"maps"
	"time"
)

// Metadata describes a registered actor factory.
type Metadata struct {
	// TypeName is the name actors of this factory are created under.
	TypeName string
	// Category groups related factories for introspection.
	Category string
	// Dependencies lists the type names this factory requires to be
	// registered before it validates.
	Dependencies []string
	// CreationCount is the number of creation attempts that invoked the
	// builder, successful or not.
	CreationCount uint64
	// TotalCreationTime is the cumulative wall time of those attempts.
	TotalCreationTime time.Duration
	// AverageCreationTime is TotalCreationTime divided by CreationCount.
	AverageCreationTime time.Duration
	// LastUsed is when the factory last built an actor.
	LastUsed time.Time
	// IsValid reports whether the last validation passed. An invalid
	// factory refuses to produce actors until re-validated.
	IsValid bool
	// ValidationErrors describes why the last validation failed.
	ValidationErrors string
}

// recordCreation folds one builder invocation into the counters.
func (m *Metadata) recordCreation(elapsed time.Duration) {
	m.CreationCount++
	m.TotalCreationTime += elapsed
	m.AverageCreationTime = m.TotalCreationTime / time.Duration(m.CreationCount)
	m.LastUsed = time.Now()
}

// PerformanceMetrics aggregates creation timing across every factory in a
// registry. TotalCreations always equals the sum of CreationsByType, which in
// turn equals the sum of per-factory CreationCount.
type PerformanceMetrics struct {
	TotalCreations      uint64
	TotalCreationTime   time.Duration
	AverageCreationTime time.Duration
	MinCreationTime     time.Duration
	MaxCreationTime     time.Duration
	CreationsByType     map[string]uint64
}

// recordCreation folds one builder invocation into the aggregate.
func (m *PerformanceMetrics) recordCreation(typeName string, elapsed time.Duration) {
	if m.CreationsByType == nil {
		m.CreationsByType = make(map[string]uint64)
	}
	if m.TotalCreations == 0 || elapsed < m.MinCreationTime {
		m.MinCreationTime = elapsed
	}
	if elapsed > m.MaxCreationTime {
		m.MaxCreationTime = elapsed
	}
	m.TotalCreations++
	m.TotalCreationTime += elapsed
	m.AverageCreationTime = m.TotalCreationTime / time.Duration(m.TotalCreations)
	m.CreationsByType[typeName]++
}

// clone returns a deep copy safe to hand out.
func (m PerformanceMetrics) clone() PerformanceMetrics {
	copied := m
	copied.CreationsByType = maps.Clone(m.CreationsByType)
	return copied
}
