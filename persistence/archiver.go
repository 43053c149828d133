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

// Package persistence writes analytics data to disk, on demand or on a
// schedule.
package persistence

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	"github.com/stellarforge/actorlife/analytics"
	"github.com/stellarforge/actorlife/log"
)

const archivePrefix = "lifecycle_"

// archiveSeq disambiguates archives created within the same second. It
// is process wide so restarted archivers never reuse a name.
var archiveSeq = atomic.NewUint64(0)

// Archiver exports collector data as JSON and CSV archive files.
type Archiver struct {
	mutex     sync.Mutex
	collector *analytics.Collector
	config    Config
	logger    log.Logger
	scheduler quartz.Scheduler
	started   *atomic.Bool
}

// New creates an archiver for the given collector.
func New(collector *analytics.Collector, config Config, opts ...Option) *Archiver {
	archiver := &Archiver{
		collector: collector,
		config:    config,
		logger:    log.DefaultLogger,
		scheduler: quartz.NewStdScheduler(),
		started:   atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(archiver)
	}
	return archiver
}

// Start begins the periodic archive job when auto archiving is enabled.
// Starting twice is a no-op.
func (a *Archiver) Start(ctx context.Context) error {
	if !a.started.CompareAndSwap(false, true) {
		return nil
	}
	if !a.config.AutoArchive {
		return nil
	}

	a.scheduler.Start(ctx)
	job := quartz.NewFunctionJob[string](func(context.Context) (string, error) {
		path, err := a.Archive()
		if err != nil {
			a.logger.Warnf("scheduled archive failed: %v", err)
			return "", err
		}
		a.logger.Infof("archived analytics to %s", path)
		return path, nil
	})
	trigger := quartz.NewSimpleTrigger(a.config.ArchiveInterval)
	if err := a.scheduler.ScheduleJob(ctx, job, trigger); err != nil {
		a.scheduler.Stop()
		a.started.Store(false)
		return fmt.Errorf("failed to schedule the archive job: %w", err)
	}
	return nil
}

// Stop halts the schedule and, when configured, writes one final
// archive. Stopping twice is a no-op.
func (a *Archiver) Stop(ctx context.Context) {
	if !a.started.CompareAndSwap(true, false) {
		return
	}
	if a.config.AutoArchive {
		a.scheduler.Stop()
		a.scheduler.Wait(ctx)
	}
	if a.config.FinalExport {
		if path, err := a.Archive(); err != nil {
			a.logger.Warnf("final archive failed: %v", err)
		} else {
			a.logger.Infof("final archive written to %s", path)
		}
	}
}

// Running reports whether the archiver has been started.
func (a *Archiver) Running() bool {
	return a.started.Load()
}

// Archive writes the current analytics as a JSON and a CSV file under
// the archive directory and prunes old archives past the retention
// bound. It returns the common path of the pair without extension.
func (a *Archiver) Archive() (string, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if err := os.MkdirAll(a.config.Directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create the archive directory: %w", err)
	}

	// the sequence is zero padded so filename order stays chronological
	// within one second
	base := fmt.Sprintf("%s%s_%06d", archivePrefix, time.Now().Format("20060102_150405"), archiveSeq.Inc())
	stem := filepath.Join(a.config.Directory, base)

	if err := a.exportJSON(stem + ".json"); err != nil {
		return "", err
	}
	if err := a.exportCSV(stem + ".csv"); err != nil {
		return "", err
	}
	if err := a.pruneLocked(); err != nil {
		return "", err
	}
	return stem, nil
}

// ExportJSON writes the collector's JSON report to the given path.
func (a *Archiver) ExportJSON(path string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.exportJSON(path)
}

// ExportCSV writes a per-type CSV report to the given path.
func (a *Archiver) ExportCSV(path string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.exportCSV(path)
}

func (a *Archiver) exportJSON(path string) error {
	if err := os.WriteFile(path, []byte(a.collector.ExportJSON()), 0o644); err != nil {
		return fmt.Errorf("failed to write the JSON archive: %w", err)
	}
	return nil
}

func (a *Archiver) exportCSV(path string) error {
	_, summaries := a.collector.Snapshot()

	types := make([]string, 0, len(summaries))
	for typeName := range summaries {
		types = append(types, typeName)
	}
	sort.Strings(types)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create the CSV archive: %w", err)
	}
	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"type", "created", "destroyed", "active", "avg_init_ms", "avg_active_ms"}); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write the CSV header: %w", err)
	}
	for _, typeName := range types {
		summary := summaries[typeName]
		record := []string{
			typeName,
			strconv.FormatUint(summary.Created, 10),
			strconv.FormatUint(summary.Destroyed, 10),
			strconv.Itoa(summary.Active),
			formatMillis(summary.AvgInit, summary.HasInit),
			formatMillis(summary.AvgActive, summary.HasActive),
		}
		if err := writer.Write(record); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to write a CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to flush the CSV archive: %w", err)
	}
	return file.Close()
}

// pruneLocked removes the oldest archive pairs beyond MaxArchives. The
// timestamped names sort chronologically, so filename order is age
// order.
func (a *Archiver) pruneLocked() error {
	if a.config.MaxArchives <= 0 {
		return nil
	}
	entries, err := os.ReadDir(a.config.Directory)
	if err != nil {
		return fmt.Errorf("failed to list the archive directory: %w", err)
	}

	var stems []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, archivePrefix) && strings.HasSuffix(name, ".json") {
			stems = append(stems, strings.TrimSuffix(name, ".json"))
		}
	}
	if len(stems) <= a.config.MaxArchives {
		return nil
	}
	sort.Strings(stems)
	for _, stem := range stems[:len(stems)-a.config.MaxArchives] {
		for _, ext := range []string{".json", ".csv"} {
			if err := os.Remove(filepath.Join(a.config.Directory, stem+ext)); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to prune archive %s: %w", stem+ext, err)
			}
		}
	}
	return nil
}

func formatMillis(d time.Duration, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 3, 64)
}
