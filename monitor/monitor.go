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

// Package monitor provides live observability over the lifecycle manager:
// threshold alerts, a bounded alert ring, an append-only text log and a
// periodic background report. The monitor tracks its own counters through
// hooks and never calls back into the manager, so its hooks are safe under
// the manager lock.
package monitor

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/stellarforge/actorlife/internal/ticker"
	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
)

const (
	// maxAlerts bounds the alert ring; older entries are evicted silently.
	maxAlerts = 1000
	// leakLifetime is how old a live actor must be before the health check
	// flags it as a possible leak.
	leakLifetime = 300 * time.Second
	// creationRateWindow is the sliding window for the creation-rate check.
	creationRateWindow = 60 * time.Second

	slowInitHookName     = "monitor.slow-init"
	creationRateHookName = "monitor.creation-rate"
	activateHookName     = "monitor.activate"
	pauseHookName        = "monitor.pause"
	destroyHookName      = "monitor.destroy"
)

// birthRecord tracks one live actor for the health and active-count checks.
type birthRecord struct {
	typeName    string
	name        string
	createdAt   time.Time
	activeSince time.Time
	active      bool
	leakFlagged bool
	slowFlagged bool
}

// Monitor observes the lifecycle manager. Exactly one background goroutine
// runs between Start and Stop.
type Monitor struct {
	mutex   sync.Mutex
	manager *lifecycle.Manager
	config  Config
	logger  log.Logger

	alerts      []Alert
	totalAlerts *atomic.Uint64
	activeCount *atomic.Int64
	started     *atomic.Bool
	startedAt   time.Time
	lastReport  time.Time

	creationTimes []time.Time
	births        map[uuid.UUID]*birthRecord

	logFile *os.File
	ticker  *ticker.Ticker
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a Monitor over the given manager. Call Start to begin
// observing.
func New(manager *lifecycle.Manager, config Config, opts ...Option) *Monitor {
	monitor := &Monitor{
		manager:     manager,
		config:      config,
		logger:      log.DefaultLogger,
		totalAlerts: atomic.NewUint64(0),
		activeCount: atomic.NewInt64(0),
		started:     atomic.NewBool(false),
		births:      make(map[uuid.UUID]*birthRecord),
	}
	for _, opt := range opts {
		opt.Apply(monitor)
	}
	return monitor
}

// Start registers the monitor hooks, opens the log file when file logging is
// enabled and launches the background loop. Starting a started monitor is a
// no-op.
func (m *Monitor) Start() error {
	if !m.started.CompareAndSwap(false, true) {
		return nil
	}
	m.startedAt = time.Now()
	m.lastReport = m.startedAt

	if m.config.FileLogging {
		file, err := os.OpenFile(m.config.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			m.started.Store(false)
			return fmt.Errorf("failed to open monitor log file: %w", err)
		}
		m.mutex.Lock()
		m.logFile = file
		m.mutex.Unlock()
		m.writeLogLine(fmt.Sprintf("=== monitoring session started at %s ===", m.startedAt.Format("2006-01-02 15:04:05")))
	}

	m.manager.RegisterHook(lifecycle.PostInitialize, slowInitHookName, m.onInitialize)
	m.manager.RegisterHook(lifecycle.PostCreate, creationRateHookName, m.onCreate)
	m.manager.RegisterHook(lifecycle.PostActivate, activateHookName, m.onActivate)
	m.manager.RegisterHook(lifecycle.PostPause, pauseHookName, m.onPause)
	m.manager.RegisterHook(lifecycle.PostDestroy, destroyHookName, m.onDestroy)

	if m.config.RealTime {
		m.ticker = ticker.New(time.Second)
		m.stopCh = make(chan struct{})
		m.doneCh = make(chan struct{})
		m.ticker.Start()
		go m.loop()
	}

	m.logger.Info("lifecycle monitor started")
	return nil
}

// Stop unregisters the hooks, halts the background loop and closes the log
// file with a session-end marker. Stopping a stopped monitor is a no-op.
func (m *Monitor) Stop() {
	if !m.started.CompareAndSwap(true, false) {
		return
	}

	m.manager.UnregisterHook(lifecycle.PostInitialize, slowInitHookName)
	m.manager.UnregisterHook(lifecycle.PostCreate, creationRateHookName)
	m.manager.UnregisterHook(lifecycle.PostActivate, activateHookName)
	m.manager.UnregisterHook(lifecycle.PostPause, pauseHookName)
	m.manager.UnregisterHook(lifecycle.PostDestroy, destroyHookName)

	if m.ticker != nil {
		close(m.stopCh)
		<-m.doneCh
		m.ticker.Stop()
		m.ticker = nil
	}

	m.mutex.Lock()
	file := m.logFile
	m.logFile = nil
	m.mutex.Unlock()
	if file != nil {
		fmt.Fprintf(file, "=== monitoring session ended at %s ===\n", time.Now().Format("2006-01-02 15:04:05"))
		_ = file.Close()
	}

	m.logger.Info("lifecycle monitor stopped")
}

// Running reports whether the monitor is observing.
func (m *Monitor) Running() bool {
	return m.started.Load()
}

// TotalAlerts returns the monotone count of every alert ever emitted,
// including those already evicted from the ring.
func (m *Monitor) TotalAlerts() uint64 {
	return m.totalAlerts.Load()
}

// ActiveActors returns the monitor's view of the active population.
func (m *Monitor) ActiveActors() int64 {
	return m.activeCount.Load()
}

// Alerts returns a copy of the alert ring, oldest first.
func (m *Monitor) Alerts() []Alert {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	copied := make([]Alert, len(m.alerts))
	copy(copied, m.alerts)
	return copied
}

// Uptime returns how long the monitor has been running.
func (m *Monitor) Uptime() time.Duration {
	if !m.started.Load() {
		return 0
	}
	return time.Since(m.startedAt)
}

// Emit records an alert in the ring, appends it to the log file and prints
// Error and Critical alerts to standard output.
func (m *Monitor) Emit(alert Alert) {
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	m.totalAlerts.Inc()

	m.mutex.Lock()
	m.alerts = append(m.alerts, alert)
	if len(m.alerts) > maxAlerts {
		m.alerts = m.alerts[len(m.alerts)-maxAlerts:]
	}
	file := m.logFile
	if file != nil {
		fmt.Fprintln(file, alert.Format())
	}
	m.mutex.Unlock()

	if alert.Level >= AlertError {
		fmt.Println(alert.Format())
	}
}

func (m *Monitor) onCreate(ctx *lifecycle.Context) {
	now := time.Now()

	m.mutex.Lock()
	m.births[ctx.ID()] = &birthRecord{
		typeName:  ctx.ActorType(),
		name:      ctx.ActorName(),
		createdAt: now,
	}
	m.creationTimes = append(m.creationTimes, now)
	cutoff := now.Add(-creationRateWindow)
	for len(m.creationTimes) > 0 && m.creationTimes[0].Before(cutoff) {
		m.creationTimes = m.creationTimes[1:]
	}
	rate := len(m.creationTimes)
	m.mutex.Unlock()

	if m.config.Alerting && rate > m.config.HighCreationRateThreshold {
		m.Emit(Alert{
			Level:    AlertWarning,
			Message:  fmt.Sprintf("High creation rate: %d actors in the last 60s", rate),
			Value:    float64(rate),
			HasValue: true,
		})
	}
}

func (m *Monitor) onInitialize(ctx *lifecycle.Context) {
	duration := ctx.Stats().InitializationDuration()
	if m.config.Alerting && duration > m.config.SlowInitThreshold {
		m.Emit(Alert{
			Level:     AlertWarning,
			Message:   "Slow actor initialization",
			ActorType: ctx.ActorType(),
			ActorName: ctx.ActorName(),
			Value:     duration.Seconds(),
			HasValue:  true,
		})
	}
}

func (m *Monitor) onActivate(ctx *lifecycle.Context) {
	m.mutex.Lock()
	if record, known := m.births[ctx.ID()]; known && !record.active {
		record.active = true
		record.activeSince = time.Now()
		m.activeCount.Inc()
	}
	m.mutex.Unlock()

	active := m.activeCount.Load()
	if m.config.Alerting && int(active) > m.config.MaxActiveActors {
		m.Emit(Alert{
			Level:    AlertError,
			Message:  fmt.Sprintf("Too many active actors: %d", active),
			Value:    float64(active),
			HasValue: true,
		})
	}
}

func (m *Monitor) onPause(ctx *lifecycle.Context) {
	m.mutex.Lock()
	if record, known := m.births[ctx.ID()]; known && record.active {
		record.active = false
		record.activeSince = time.Time{}
		m.activeCount.Dec()
	}
	m.mutex.Unlock()
}

func (m *Monitor) onDestroy(ctx *lifecycle.Context) {
	m.mutex.Lock()
	if record, known := m.births[ctx.ID()]; known {
		if record.active {
			m.activeCount.Dec()
		}
		delete(m.births, ctx.ID())
	}
	m.mutex.Unlock()
}

// loop is the single background goroutine. It wakes every second, emits the
// periodic report when due and runs the health check.
func (m *Monitor) loop() {
	defer close(m.doneCh)
	for {
		select {
		case <-m.ticker.Ticks:
			if m.config.PeriodicReports && time.Since(m.lastReport) >= m.config.ReportInterval {
				m.lastReport = time.Now()
				m.logger.Info(m.Status())
			}
			m.healthCheck()
		case <-m.stopCh:
			return
		}
	}
}

// healthCheck flags long-lived actors as possible leaks and long-active
// actors as stuck, once per actor each.
func (m *Monitor) healthCheck() {
	now := time.Now()
	type finding struct {
		alert Alert
	}
	var findings []finding

	m.mutex.Lock()
	for _, record := range m.births {
		if !record.leakFlagged && now.Sub(record.createdAt) > leakLifetime {
			record.leakFlagged = true
			findings = append(findings, finding{Alert{
				Level:     AlertInfo,
				Message:   "Possible actor leak: lifetime exceeds 300s",
				ActorType: record.typeName,
				ActorName: record.name,
				Value:     now.Sub(record.createdAt).Seconds(),
				HasValue:  true,
			}})
		}
		if !record.slowFlagged && record.active && now.Sub(record.activeSince) > m.config.SlowActiveThreshold {
			record.slowFlagged = true
			findings = append(findings, finding{Alert{
				Level:     AlertWarning,
				Message:   "Actor active beyond threshold",
				ActorType: record.typeName,
				ActorName: record.name,
				Value:     now.Sub(record.activeSince).Seconds(),
				HasValue:  true,
			}})
		}
	}
	m.mutex.Unlock()

	if !m.config.Alerting {
		return
	}
	for _, f := range findings {
		m.Emit(f.alert)
	}
}

func (m *Monitor) writeLogLine(line string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.logFile != nil {
		fmt.Fprintln(m.logFile, line)
	}
}
