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

// AlertLevel grades the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertError
	AlertCritical
)

// String implements fmt.Stringer.
func (l AlertLevel) String() string {
	switch l {
	case AlertInfo:
		return "INFO"
	case AlertWarning:
		return "WARNING"
	case AlertError:
		return "ERROR"
	case AlertCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Alert is one observation emitted by the monitor.
type Alert struct {
	// Level grades the severity.
	Level AlertLevel
	// Message is the human-readable description.
	Message string
	// ActorType is the type of the actor involved, empty when the alert is
	// not about a particular actor.
	ActorType string
	// ActorName is the display name of the actor involved.
	ActorName string
	// CreatedAt is when the alert was emitted.
	CreatedAt time.Time
	// Value carries an optional measurement, meaningful when HasValue is
	// set.
	Value    float64
	HasValue bool
}

// Format renders the alert as one log line:
//
//	[YYYY-MM-DD HH:MM:SS] [LEVEL] message (type=T, name=N) value=V
func (a Alert) Format() string {
	builder := new(strings.Builder)
	fmt.Fprintf(builder, "[%s] [%s] %s", a.CreatedAt.Format("2006-01-02 15:04:05"), a.Level, a.Message)
	if a.ActorType != "" || a.ActorName != "" {
		fmt.Fprintf(builder, " (type=%s, name=%s)", a.ActorType, a.ActorName)
	}
	if a.HasValue {
		fmt.Fprintf(builder, " value=%.3f", a.Value)
	}
	return builder.String()
}
