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

package bench

import (
	"testing"

	"github.com/stellarforge/actorlife/ecs"
	"github.com/stellarforge/actorlife/factory"
	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
)

func BenchmarkRegisterUnregister(b *testing.B) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		actor := newDrone(i)
		manager.Register(actor, ecs.Context{})
		manager.Unregister(actor)
	}
}

func BenchmarkTransitionCycle(b *testing.B) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	actor := newDrone(0)
	manager.Register(actor, ecs.Context{})
	manager.TransitionTo(actor, lifecycle.Initializing)
	manager.TransitionTo(actor, lifecycle.Initialized)
	manager.TransitionTo(actor, lifecycle.Active)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		manager.TransitionTo(actor, lifecycle.Pausing)
		manager.TransitionTo(actor, lifecycle.Paused)
		manager.TransitionTo(actor, lifecycle.Resuming)
		manager.TransitionTo(actor, lifecycle.Active)
	}
}

func BenchmarkBatchUpdate(b *testing.B) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	for i := 0; i < 1000; i++ {
		actor := newDrone(i)
		manager.Register(actor, ecs.Context{})
		manager.TransitionTo(actor, lifecycle.Initializing)
		manager.TransitionTo(actor, lifecycle.Initialized)
		manager.TransitionTo(actor, lifecycle.Active)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		manager.BatchUpdate(0.016)
	}
}

func BenchmarkFactoryCreate(b *testing.B) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	registry := factory.NewRegistry(manager, factory.WithLogger(log.DiscardLogger))
	if err := registry.RegisterFactory("Drone", func() (lifecycle.Actor, error) {
		return newDrone(0), nil
	}, "bench"); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := registry.CreateActor("Drone", ecs.Context{})
		if !result.Success {
			b.Fatal(result.ErrorMessage)
		}
		manager.Unregister(result.Actor)
	}
}

func BenchmarkPooledContextReuse(b *testing.B) {
	pool := lifecycle.NewContextPool(lifecycle.DefaultMaxPoolSize)
	manager := lifecycle.NewManager(
		lifecycle.WithLogger(log.DiscardLogger),
		lifecycle.WithContextPool(pool),
	)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		actor := newDrone(i)
		manager.Register(actor, ecs.Context{})
		manager.Unregister(actor)
	}
}
