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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarforge/actorlife/ecs"
	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
)

type probeActor struct {
	name string
}

func (a *probeActor) Initialize() error {
	return nil
}

func (a *probeActor) Update(float64) {}

func (a *probeActor) GetName() string {
	return a.name
}

func newAttachedCollector() (*Collector, *lifecycle.Manager) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	collector := NewCollector(manager, WithLogger(log.DiscardLogger))
	collector.Attach()
	return collector, manager
}

// spawn registers an actor under the given type and drives it to Active.
func spawn(t *testing.T, manager *lifecycle.Manager, typeName, name string) lifecycle.Actor {
	t.Helper()
	actor := &probeActor{name: name}
	manager.RegisterTyped(actor, ecs.Context{}, typeName)
	require.True(t, manager.TransitionTo(actor, lifecycle.Initializing))
	require.True(t, manager.TransitionTo(actor, lifecycle.Initialized))
	require.True(t, manager.TransitionTo(actor, lifecycle.Active))
	return actor
}

func TestCollector(t *testing.T) {
	t.Run("With creations tracked", func(t *testing.T) {
		collector, manager := newAttachedCollector()
		spawn(t, manager, "Drone", "d1")
		spawn(t, manager, "Drone", "d2")
		spawn(t, manager, "Turret", "t1")

		assert.Equal(t, uint64(3), collector.TotalCreations())
		assert.Equal(t, uint64(2), collector.CreationCount("Drone"))
		assert.Equal(t, uint64(1), collector.CreationCount("Turret"))
		assert.Equal(t, 3, collector.TrackedActors())
	})
	t.Run("With init durations recorded", func(t *testing.T) {
		collector, manager := newAttachedCollector()
		spawn(t, manager, "Drone", "d1")

		avg, ok := collector.AverageInitDuration("Drone")
		require.True(t, ok)
		assert.GreaterOrEqual(t, avg.Nanoseconds(), int64(0))

		_, ok = collector.AverageInitDuration("Ghost")
		assert.False(t, ok)
	})
	t.Run("With active counts across pause", func(t *testing.T) {
		collector, manager := newAttachedCollector()
		actor := spawn(t, manager, "Drone", "d1")
		assert.Equal(t, 1, collector.ActiveCount("Drone"))

		require.True(t, manager.TransitionTo(actor, lifecycle.Pausing))
		require.True(t, manager.TransitionTo(actor, lifecycle.Paused))
		assert.Equal(t, 0, collector.ActiveCount("Drone"))

		_, ok := collector.AverageActiveDuration("Drone")
		assert.True(t, ok)
	})
	t.Run("With destructions tracked", func(t *testing.T) {
		collector, manager := newAttachedCollector()
		actor := spawn(t, manager, "Drone", "d1")
		manager.Unregister(actor)

		assert.Equal(t, uint64(1), collector.DestructionCount("Drone"))
		assert.Equal(t, 0, collector.ActiveCount("Drone"))
		assert.Zero(t, collector.TrackedActors())
	})
	t.Run("With event histogram", func(t *testing.T) {
		collector, manager := newAttachedCollector()
		actor := spawn(t, manager, "Drone", "d1")
		require.True(t, manager.TransitionTo(actor, lifecycle.Pausing))
		require.True(t, manager.TransitionTo(actor, lifecycle.Paused))

		assert.Equal(t, uint64(1), collector.EventCount("Drone", lifecycle.PostCreate))
		assert.Equal(t, uint64(1), collector.EventCount("Drone", lifecycle.PostActivate))
		assert.Equal(t, uint64(1), collector.EventCount("Drone", lifecycle.PrePause))
		assert.Equal(t, uint64(1), collector.EventCount("Drone", lifecycle.PostPause))
		assert.Zero(t, collector.EventCount("Drone", lifecycle.PostDestroy))
	})
	t.Run("With detach", func(t *testing.T) {
		collector, manager := newAttachedCollector()
		collector.Detach()
		spawn(t, manager, "Drone", "d1")
		assert.Zero(t, collector.TotalCreations())
	})
}

func TestReport(t *testing.T) {
	collector, manager := newAttachedCollector()
	spawn(t, manager, "Drone", "d1")

	report := collector.Report()
	assert.Contains(t, report, "Total creations: 1")
	assert.Contains(t, report, "Drone: created=1")
	assert.Contains(t, report, "avg_init=")
}

func TestExportJSON(t *testing.T) {
	t.Run("With well-formed output", func(t *testing.T) {
		collector, manager := newAttachedCollector()
		spawn(t, manager, "Drone", "d1")
		spawn(t, manager, "Turret", "t1")

		raw := collector.ExportJSON()
		var decoded struct {
			TotalCreations uint64 `json:"totalCreations"`
			Types          map[string]struct {
				Created   uint64   `json:"created"`
				AvgInit   *float64 `json:"avg_init"`
				AvgActive *float64 `json:"avg_active"`
			} `json:"types"`
		}
		require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
		assert.Equal(t, uint64(2), decoded.TotalCreations)
		require.Contains(t, decoded.Types, "Drone")
		assert.Equal(t, uint64(1), decoded.Types["Drone"].Created)
		require.NotNil(t, decoded.Types["Drone"].AvgInit)
	})
	t.Run("With escaped type names", func(t *testing.T) {
		collector, manager := newAttachedCollector()
		actor := &probeActor{name: "odd"}
		manager.RegisterTyped(actor, ecs.Context{}, `Quote"Back\slash`)

		raw := collector.ExportJSON()
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
		types := decoded["types"].(map[string]any)
		assert.Contains(t, types, `Quote"Back\slash`)
	})
	t.Run("With empty collector", func(t *testing.T) {
		collector := NewCollector(lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger)))
		assert.Equal(t, `{"totalCreations":0,"types":{}}`, collector.ExportJSON())
	})
}
