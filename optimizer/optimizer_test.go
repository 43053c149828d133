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

package optimizer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/stellarforge/actorlife/ecs"
	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type soldierActor struct {
	name string
}

func (a *soldierActor) Initialize() error {
	return nil
}

func (a *soldierActor) Update(float64) {}

func (a *soldierActor) GetName() string {
	return a.name
}

func registerInitialized(t *testing.T, manager *lifecycle.Manager, count int) []lifecycle.Actor {
	t.Helper()
	actors := make([]lifecycle.Actor, 0, count)
	for i := 0; i < count; i++ {
		actor := &soldierActor{name: fmt.Sprintf("soldier-%d", i)}
		manager.Register(actor, ecs.Context{})
		require.True(t, manager.TransitionTo(actor, lifecycle.Initializing))
		require.True(t, manager.TransitionTo(actor, lifecycle.Initialized))
		actors = append(actors, actor)
	}
	return actors
}

func TestSynchronousBatchTransition(t *testing.T) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	cfg := DefaultConfig()
	cfg.EnableBatching = false
	opt := New(manager, cfg, WithLogger(log.DiscardLogger))

	actors := registerInitialized(t, manager, 10)
	require.NoError(t, opt.BatchTransition(actors, lifecycle.Active))

	assert.Equal(t, 10, manager.CountInState(lifecycle.Active))
	snapshot := opt.Metrics()
	assert.Equal(t, uint64(10), snapshot.TransitionCount)
	assert.Equal(t, uint64(1), snapshot.BatchCount)
	assert.Equal(t, uint64(10), snapshot.BatchedActors)
}

func TestAsynchronousBatchTransition(t *testing.T) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	opt := New(manager, DefaultConfig(), WithLogger(log.DiscardLogger))
	opt.Start()
	defer opt.Stop()

	actors := registerInitialized(t, manager, 20)
	require.NoError(t, opt.BatchTransition(actors, lifecycle.Active))

	assert.Eventually(t, func() bool {
		return manager.CountInState(lifecycle.Active) == 20
	}, time.Second, 5*time.Millisecond)
}

func TestParallelGroupApplied(t *testing.T) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	cfg := DefaultConfig()
	cfg.EnableBatching = false
	opt := New(manager, cfg, WithLogger(log.DiscardLogger))

	// Initialized to Active is parallel safe and the group exceeds the
	// parallel threshold
	actors := registerInitialized(t, manager, parallelThreshold+4)
	require.NoError(t, opt.BatchTransition(actors, lifecycle.Active))

	assert.Equal(t, parallelThreshold+4, manager.CountInState(lifecycle.Active))
	assert.Equal(t, uint64(1), opt.Metrics().ParallelGroups)
}

func TestParallelDisabledRunsSequentially(t *testing.T) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	cfg := DefaultConfig()
	cfg.EnableBatching = false
	cfg.EnableParallel = false
	opt := New(manager, cfg, WithLogger(log.DiscardLogger))

	actors := registerInitialized(t, manager, parallelThreshold+4)
	require.NoError(t, opt.BatchTransition(actors, lifecycle.Active))

	assert.Equal(t, parallelThreshold+4, manager.CountInState(lifecycle.Active))
	assert.Equal(t, uint64(0), opt.Metrics().ParallelGroups)
}

func TestMixedStatesAreGrouped(t *testing.T) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	cfg := DefaultConfig()
	cfg.EnableBatching = false
	opt := New(manager, cfg, WithLogger(log.DiscardLogger))

	initialized := registerInitialized(t, manager, 3)
	fresh := &soldierActor{name: "fresh"}
	manager.Register(fresh, ecs.Context{})

	mixed := append(append([]lifecycle.Actor{}, initialized...), fresh)
	require.NoError(t, opt.BatchTransition(mixed, lifecycle.Active))

	// only the initialized actors can reach Active; the fresh one is
	// still in Created and its attempt fails
	assert.Equal(t, 3, manager.CountInState(lifecycle.Active))
	assert.Equal(t, lifecycle.Created, manager.GetState(fresh))
	assert.Equal(t, uint64(4), opt.Metrics().TransitionCount)
}

func TestChunkingRespectsMaxBatchSize(t *testing.T) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	cfg := DefaultConfig()
	cfg.EnableBatching = false
	cfg.MaxBatchSize = 4
	opt := New(manager, cfg, WithLogger(log.DiscardLogger))

	actors := registerInitialized(t, manager, 10)
	require.NoError(t, opt.BatchTransition(actors, lifecycle.Active))

	assert.Equal(t, 10, manager.CountInState(lifecycle.Active))
	snapshot := opt.Metrics()
	// 10 actors in chunks of 4 makes 3 batches
	assert.Equal(t, uint64(3), snapshot.BatchCount)
	assert.Equal(t, uint64(10), snapshot.BatchedActors)
}

func TestStartStopLifecycle(t *testing.T) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	opt := New(manager, DefaultConfig(), WithLogger(log.DiscardLogger))

	assert.False(t, opt.Running())
	opt.Start()
	assert.True(t, opt.Running())
	opt.Start() // no-op
	assert.True(t, opt.Running())

	opt.Stop()
	assert.False(t, opt.Running())
	assert.NotPanics(t, opt.Stop)

	// restart works after the queue was disposed
	opt.Start()
	actors := registerInitialized(t, manager, 2)
	require.NoError(t, opt.BatchTransition(actors, lifecycle.Active))
	assert.Eventually(t, func() bool {
		return manager.CountInState(lifecycle.Active) == 2
	}, time.Second, 5*time.Millisecond)
	opt.Stop()
}

func TestEmptyBatchIsNoOp(t *testing.T) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	opt := New(manager, DefaultConfig(), WithLogger(log.DiscardLogger))

	require.NoError(t, opt.BatchTransition(nil, lifecycle.Active))
	assert.Equal(t, uint64(0), opt.Metrics().BatchCount)
}

func TestMetricsAverages(t *testing.T) {
	metrics := NewMetrics()
	assert.Equal(t, time.Duration(0), metrics.AverageTransitionTime())
	assert.Equal(t, time.Duration(0), metrics.AverageBatchTime())

	metrics.RecordTransition(10 * time.Millisecond)
	metrics.RecordTransition(20 * time.Millisecond)
	assert.Equal(t, 15*time.Millisecond, metrics.AverageTransitionTime())

	metrics.RecordBatch(30*time.Millisecond, 2)
	assert.Equal(t, 30*time.Millisecond, metrics.AverageBatchTime())

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(2), snapshot.TransitionCount)
	assert.Equal(t, uint64(1), snapshot.BatchCount)
	assert.Equal(t, uint64(2), snapshot.BatchedActors)
	assert.Greater(t, snapshot.TransitionsPerSecond, 0.0)
}

func TestReport(t *testing.T) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	cfg := DefaultConfig()
	cfg.EnableBatching = false
	opt := New(manager, cfg, WithLogger(log.DiscardLogger))

	actors := registerInitialized(t, manager, 5)
	require.NoError(t, opt.BatchTransition(actors, lifecycle.Active))

	report := opt.Report()
	assert.Contains(t, report, "=== Performance Report ===")
	assert.Contains(t, report, "Transitions: 5")
	assert.Contains(t, report, "Throughput:")
}
