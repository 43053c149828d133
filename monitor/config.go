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

import "time"

// Config tunes the monitor's observation thresholds and outputs.
type Config struct {
	// RealTime enables the background observation loop.
	RealTime bool
	// PeriodicReports enables the interval status report.
	PeriodicReports bool
	// Alerting enables alert emission from the lifecycle hooks.
	Alerting bool
	// FileLogging appends every alert to the log file at LogFilePath.
	FileLogging bool
	// ReportInterval is the spacing between periodic reports.
	ReportInterval time.Duration
	// SlowInitThreshold flags actors whose initialization took longer.
	SlowInitThreshold time.Duration
	// SlowActiveThreshold flags actors continuously active for longer.
	SlowActiveThreshold time.Duration
	// HighCreationRateThreshold is the number of creations within the last
	// 60 seconds that triggers a warning.
	HighCreationRateThreshold int
	// MaxActiveActors is the active-population size that triggers an error.
	MaxActiveActors int
	// LogFilePath is where alerts are appended when FileLogging is on.
	LogFilePath string
}

// DefaultConfig returns the monitor defaults.
func DefaultConfig() Config {
	return Config{
		RealTime:                  true,
		PeriodicReports:           true,
		Alerting:                  true,
		FileLogging:               false,
		ReportInterval:            30 * time.Second,
		SlowInitThreshold:         time.Second,
		SlowActiveThreshold:       60 * time.Second,
		HighCreationRateThreshold: 100,
		MaxActiveActors:           1000,
		LogFilePath:               "lifecycle_monitor.log",
	}
}
