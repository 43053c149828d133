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

// Package analytics passively observes the lifecycle manager through hook
// subscriptions and maintains per-type histograms plus a per-actor snapshot.
// The collector never calls back into the manager from its hooks.
package analytics

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
)

const (
	createHookName   = "analytics.create"
	initHookName     = "analytics.initialize"
	activateHookName = "analytics.activate"
	pauseHookName    = "analytics.pause"
	destroyHookName  = "analytics.destroy"
	eventHookPrefix  = "analytics.event."
)

// actorRecord is the per-actor snapshot keyed by context identity.
type actorRecord struct {
	typeName    string
	name        string
	createdAt   time.Time
	activeSince time.Time
}

// Collector accumulates lifecycle statistics. Create one per manager and
// call Attach to subscribe its hooks.
type Collector struct {
	mutex   sync.Mutex
	manager *lifecycle.Manager
	logger  log.Logger

	startedAt          time.Time
	totalCreations     uint64
	creationsByType    map[string]uint64
	destructionsByType map[string]uint64
	activeByType       map[string]int
	initDurations      map[string][]time.Duration
	activeDurations    map[string][]time.Duration
	eventCounts        map[string]map[lifecycle.Event]uint64
	actors             map[uuid.UUID]actorRecord
}

// NewCollector creates a collector for the given manager. The hooks are not
// registered until Attach is called.
func NewCollector(manager *lifecycle.Manager, opts ...Option) *Collector {
	collector := &Collector{
		manager:            manager,
		logger:             log.DefaultLogger,
		startedAt:          time.Now(),
		creationsByType:    make(map[string]uint64),
		destructionsByType: make(map[string]uint64),
		activeByType:       make(map[string]int),
		initDurations:      make(map[string][]time.Duration),
		activeDurations:    make(map[string][]time.Duration),
		eventCounts:        make(map[string]map[lifecycle.Event]uint64),
		actors:             make(map[uuid.UUID]actorRecord),
	}
	for _, opt := range opts {
		opt.Apply(collector)
	}
	return collector
}

// Attach subscribes the collector's hooks to the manager.
func (c *Collector) Attach() {
	c.manager.RegisterHook(lifecycle.PostCreate, createHookName, c.onCreate)
	c.manager.RegisterHook(lifecycle.PostInitialize, initHookName, c.onInitialize)
	c.manager.RegisterHook(lifecycle.PostActivate, activateHookName, c.onActivate)
	c.manager.RegisterHook(lifecycle.PostPause, pauseHookName, c.onPause)
	c.manager.RegisterHook(lifecycle.PostDestroy, destroyHookName, c.onDestroy)
	for _, event := range lifecycle.Events {
		event := event
		c.manager.RegisterHook(event, eventHookPrefix+event.String(), func(ctx *lifecycle.Context) {
			c.countEvent(event, ctx)
		})
	}
	c.logger.Debug("analytics collector attached")
}

// Detach unsubscribes every collector hook from the manager. Accumulated
// data is kept.
func (c *Collector) Detach() {
	c.manager.UnregisterHook(lifecycle.PostCreate, createHookName)
	c.manager.UnregisterHook(lifecycle.PostInitialize, initHookName)
	c.manager.UnregisterHook(lifecycle.PostActivate, activateHookName)
	c.manager.UnregisterHook(lifecycle.PostPause, pauseHookName)
	c.manager.UnregisterHook(lifecycle.PostDestroy, destroyHookName)
	for _, event := range lifecycle.Events {
		c.manager.UnregisterHook(event, eventHookPrefix+event.String())
	}
}

func (c *Collector) onCreate(ctx *lifecycle.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.totalCreations++
	c.creationsByType[ctx.ActorType()]++
	c.actors[ctx.ID()] = actorRecord{
		typeName:  ctx.ActorType(),
		name:      ctx.ActorName(),
		createdAt: ctx.Stats().CreationTime,
	}
}

func (c *Collector) onInitialize(ctx *lifecycle.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.initDurations[ctx.ActorType()] = append(c.initDurations[ctx.ActorType()], ctx.Stats().InitializationDuration())
}

func (c *Collector) onActivate(ctx *lifecycle.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	record, known := c.actors[ctx.ID()]
	if known && record.activeSince.IsZero() {
		record.activeSince = time.Now()
		c.actors[ctx.ID()] = record
		c.activeByType[ctx.ActorType()]++
	}
}

func (c *Collector) onPause(ctx *lifecycle.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.closeActiveSpanLocked(ctx)
}

func (c *Collector) onDestroy(ctx *lifecycle.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.destructionsByType[ctx.ActorType()]++
	c.closeActiveSpanLocked(ctx)
	delete(c.actors, ctx.ID())
}

// closeActiveSpanLocked folds an open activity interval into the per-type
// histogram and decrements the active count.
func (c *Collector) closeActiveSpanLocked(ctx *lifecycle.Context) {
	record, known := c.actors[ctx.ID()]
	if !known || record.activeSince.IsZero() {
		return
	}
	c.activeDurations[ctx.ActorType()] = append(c.activeDurations[ctx.ActorType()], time.Since(record.activeSince))
	record.activeSince = time.Time{}
	c.actors[ctx.ID()] = record
	if c.activeByType[ctx.ActorType()] > 0 {
		c.activeByType[ctx.ActorType()]--
	}
}

func (c *Collector) countEvent(event lifecycle.Event, ctx *lifecycle.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	counts, known := c.eventCounts[ctx.ActorType()]
	if !known {
		counts = make(map[lifecycle.Event]uint64)
		c.eventCounts[ctx.ActorType()] = counts
	}
	counts[event]++
}

// TotalCreations returns the number of actors observed since the collector
// started.
func (c *Collector) TotalCreations() uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.totalCreations
}

// CreationCount returns the number of creations observed for a type.
func (c *Collector) CreationCount(typeName string) uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.creationsByType[typeName]
}

// DestructionCount returns the number of destructions observed for a type.
func (c *Collector) DestructionCount(typeName string) uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.destructionsByType[typeName]
}

// ActiveCount returns the number of currently active actors of a type.
func (c *Collector) ActiveCount(typeName string) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.activeByType[typeName]
}

// EventCount returns how often an event fired for a type.
func (c *Collector) EventCount(typeName string, event lifecycle.Event) uint64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.eventCounts[typeName][event]
}

// AverageInitDuration returns the mean observed initialization duration for
// a type. The second return value is false when no sample exists.
func (c *Collector) AverageInitDuration(typeName string) (time.Duration, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return average(c.initDurations[typeName])
}

// AverageActiveDuration returns the mean observed active duration for a
// type. The second return value is false when no sample exists.
func (c *Collector) AverageActiveDuration(typeName string) (time.Duration, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return average(c.activeDurations[typeName])
}

// TrackedActors returns the number of actors currently in the snapshot.
func (c *Collector) TrackedActors() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.actors)
}

// Uptime returns how long the collector has been running.
func (c *Collector) Uptime() time.Duration {
	return time.Since(c.startedAt)
}

func average(samples []time.Duration) (time.Duration, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	var total time.Duration
	for _, sample := range samples {
		total += sample
	}
	return total / time.Duration(len(samples)), true
}
