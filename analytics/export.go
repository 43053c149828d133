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

package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// TypeSummary condenses what the collector knows about one actor type.
type TypeSummary struct {
	Created     uint64
	Destroyed   uint64
	Active      int
	AvgInit     time.Duration
	HasInit     bool
	AvgActive   time.Duration
	HasActive   bool
	EventCounts map[string]uint64
}

// Snapshot returns the total creation count and a per-type summary, both
// detached from the collector's internal state.
func (c *Collector) Snapshot() (uint64, map[string]TypeSummary) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	summaries := make(map[string]TypeSummary)
	for typeName, created := range c.creationsByType {
		summary := TypeSummary{
			Created:     created,
			Destroyed:   c.destructionsByType[typeName],
			Active:      c.activeByType[typeName],
			EventCounts: make(map[string]uint64),
		}
		summary.AvgInit, summary.HasInit = average(c.initDurations[typeName])
		summary.AvgActive, summary.HasActive = average(c.activeDurations[typeName])
		for event, count := range c.eventCounts[typeName] {
			summary.EventCounts[event.String()] = count
		}
		summaries[typeName] = summary
	}
	return c.totalCreations, summaries
}

// Report returns a human-readable summary of everything observed so far.
func (c *Collector) Report() string {
	total, summaries := c.Snapshot()

	builder := new(strings.Builder)
	builder.WriteString("=== Lifecycle Analytics ===\n")
	fmt.Fprintf(builder, "Uptime: %s\n", c.Uptime().Round(time.Second))
	fmt.Fprintf(builder, "Total creations: %d\n", total)

	for _, typeName := range sortedTypes(summaries) {
		summary := summaries[typeName]
		fmt.Fprintf(builder, "%s: created=%d destroyed=%d active=%d", typeName, summary.Created, summary.Destroyed, summary.Active)
		if summary.HasInit {
			fmt.Fprintf(builder, " avg_init=%s", summary.AvgInit)
		}
		if summary.HasActive {
			fmt.Fprintf(builder, " avg_active=%s", summary.AvgActive)
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// ExportJSON serializes the collected statistics. The output is string-built
// on purpose so the export has no dependency beyond quote and backslash
// escaping; type names are the only uncontrolled input.
func (c *Collector) ExportJSON() string {
	total, summaries := c.Snapshot()

	builder := new(strings.Builder)
	builder.WriteString("{")
	fmt.Fprintf(builder, "\"totalCreations\":%d,", total)
	builder.WriteString("\"types\":{")

	typeNames := sortedTypes(summaries)
	for i, typeName := range typeNames {
		if i > 0 {
			builder.WriteString(",")
		}
		summary := summaries[typeName]
		fmt.Fprintf(builder, "\"%s\":{", escapeJSON(typeName))
		fmt.Fprintf(builder, "\"created\":%d", summary.Created)
		if summary.HasInit {
			fmt.Fprintf(builder, ",\"avg_init\":%.6f", summary.AvgInit.Seconds())
		}
		if summary.HasActive {
			fmt.Fprintf(builder, ",\"avg_active\":%.6f", summary.AvgActive.Seconds())
		}
		builder.WriteString("}")
	}
	builder.WriteString("}}")
	return builder.String()
}

func sortedTypes(summaries map[string]TypeSummary) []string {
	typeNames := make([]string, 0, len(summaries))
	for typeName := range summaries {
		typeNames = append(typeNames, typeName)
	}
	slices.Sort(typeNames)
	return typeNames
}

func escapeJSON(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return value
}
