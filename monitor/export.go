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

package monitor

import (
	"fmt"
	"strings"
	"time"
)

// Status returns a one-shot textual summary of the monitor's view.
func (m *Monitor) Status() string {
	m.mutex.Lock()
	tracked := len(m.births)
	recentCreations := len(m.creationTimes)
	ringSize := len(m.alerts)
	m.mutex.Unlock()

	builder := new(strings.Builder)
	builder.WriteString("=== Lifecycle Monitor Status ===\n")
	fmt.Fprintf(builder, "Uptime: %s\n", m.Uptime().Round(time.Second))
	fmt.Fprintf(builder, "Tracked actors: %d\n", tracked)
	fmt.Fprintf(builder, "Active actors: %d\n", m.ActiveActors())
	fmt.Fprintf(builder, "Creations in last 60s: %d\n", recentCreations)
	fmt.Fprintf(builder, "Alerts: %d total, %d retained\n", m.TotalAlerts(), ringSize)
	return builder.String()
}

// ExportJSON serializes the alert ring. The output is string-built with
// quote and backslash escaping, matching the analytics export.
func (m *Monitor) ExportJSON() string {
	alerts := m.Alerts()

	builder := new(strings.Builder)
	builder.WriteString("{")
	fmt.Fprintf(builder, "\"totalAlerts\":%d,", m.TotalAlerts())
	builder.WriteString("\"alerts\":[")
	for i, alert := range alerts {
		if i > 0 {
			builder.WriteString(",")
		}
		builder.WriteString("{")
		fmt.Fprintf(builder, "\"level\":\"%s\"", alert.Level)
		fmt.Fprintf(builder, ",\"message\":\"%s\"", escapeJSON(alert.Message))
		fmt.Fprintf(builder, ",\"timestamp\":\"%s\"", alert.CreatedAt.Format("2006-01-02 15:04:05"))
		if alert.ActorType != "" {
			fmt.Fprintf(builder, ",\"type\":\"%s\"", escapeJSON(alert.ActorType))
		}
		if alert.ActorName != "" {
			fmt.Fprintf(builder, ",\"name\":\"%s\"", escapeJSON(alert.ActorName))
		}
		if alert.HasValue {
			fmt.Fprintf(builder, ",\"value\":%.6f", alert.Value)
		}
		builder.WriteString("}")
	}
	builder.WriteString("]}")
	return builder.String()
}

func escapeJSON(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return value
}
