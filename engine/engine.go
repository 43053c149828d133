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

// Package engine assembles the lifecycle subsystems into one container
// with a single start and stop sequence. Nothing in it is global; every
// engine owns its own manager, registry, collector, monitor, optimizer
// and archiver.
package engine

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/atomic"

	"github.com/stellarforge/actorlife/analytics"
	"github.com/stellarforge/actorlife/config"
	"github.com/stellarforge/actorlife/ecs"
	"github.com/stellarforge/actorlife/factory"
	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
	"github.com/stellarforge/actorlife/monitor"
	"github.com/stellarforge/actorlife/optimizer"
	"github.com/stellarforge/actorlife/persistence"
	"github.com/stellarforge/actorlife/telemetry"
)

// Registration declares one actor type for the factory registry.
// Registrations are applied when the engine starts.
type Registration struct {
	// TypeName is the factory key.
	TypeName string
	// Category groups the type in factory reports.
	Category string
	// Dependencies are type names that must be registered for this
	// factory to validate.
	Dependencies []string
	// Builder constructs a new actor instance.
	Builder factory.Builder
}

// Engine wires the lifecycle manager, factory registry and the
// observation subsystems together.
type Engine struct {
	config        config.Config
	logger        log.Logger
	telemetry     *telemetry.Telemetry
	manager       *lifecycle.Manager
	registry      *factory.Registry
	collector     *analytics.Collector
	monitor       *monitor.Monitor
	optimizer     *optimizer.Optimizer
	archiver      *persistence.Archiver
	registrations []Registration
	started       *atomic.Bool
}

// New builds an engine from the given configuration. Disabled sections
// leave the corresponding subsystem nil.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	engine := &Engine{
		config:  cfg,
		started: atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(engine)
	}
	if engine.logger == nil {
		engine.logger = log.NewZap(cfg.LogLevel(), os.Stderr)
	}

	managerOpts := []lifecycle.Option{lifecycle.WithLogger(engine.logger)}
	if cfg.Pool.Enabled {
		managerOpts = append(managerOpts, lifecycle.WithContextPool(lifecycle.NewContextPool(cfg.Pool.MaxSize)))
	} else {
		managerOpts = append(managerOpts, lifecycle.WithoutPooling())
	}
	registryOpts := []factory.Option{factory.WithLogger(engine.logger)}
	if engine.telemetry != nil {
		managerOpts = append(managerOpts, lifecycle.WithTelemetry(engine.telemetry))
		registryOpts = append(registryOpts, factory.WithTelemetry(engine.telemetry))
	}

	engine.manager = lifecycle.NewManager(managerOpts...)
	engine.registry = factory.NewRegistry(engine.manager, registryOpts...)

	if cfg.Analytics.Enabled {
		engine.collector = analytics.NewCollector(engine.manager, analytics.WithLogger(engine.logger))
	}
	if cfg.Monitor.Enabled {
		engine.monitor = monitor.New(engine.manager, cfg.MonitorConfig(), monitor.WithLogger(engine.logger))
	}
	if cfg.Optimizer.Enabled {
		engine.optimizer = optimizer.New(engine.manager, cfg.OptimizerConfig(), optimizer.WithLogger(engine.logger))
	}
	if cfg.Persistence.Enabled {
		if engine.collector == nil {
			return nil, fmt.Errorf("persistence requires analytics to be enabled")
		}
		engine.archiver = persistence.New(engine.collector, cfg.PersistenceConfig(), persistence.WithLogger(engine.logger))
	}
	return engine, nil
}

// Start applies the actor registrations and brings the subsystems up.
// Starting a running engine is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return nil
	}

	for _, registration := range e.registrations {
		if err := e.registry.RegisterFactory(
			registration.TypeName,
			registration.Builder,
			registration.Category,
			registration.Dependencies...,
		); err != nil {
			e.started.Store(false)
			return fmt.Errorf("failed to register actor type %s: %w", registration.TypeName, err)
		}
	}

	if e.collector != nil {
		e.collector.Attach()
	}
	if e.monitor != nil {
		if err := e.monitor.Start(); err != nil {
			e.teardown(ctx)
			e.started.Store(false)
			return fmt.Errorf("failed to start the monitor: %w", err)
		}
	}
	if e.optimizer != nil {
		e.optimizer.Start()
	}
	if e.archiver != nil {
		if err := e.archiver.Start(ctx); err != nil {
			e.teardown(ctx)
			e.started.Store(false)
			return fmt.Errorf("failed to start the archiver: %w", err)
		}
	}
	e.logger.Info("engine started")
	return nil
}

// Stop destroys every live actor and brings the subsystems down. The
// collector stays attached while actors are destroyed so the final
// archive includes their destruction. Stopping twice is a no-op.
func (e *Engine) Stop(ctx context.Context) {
	if !e.started.CompareAndSwap(true, false) {
		return
	}
	e.manager.DestroyAllActors()
	e.teardown(ctx)
	e.logger.Info("engine stopped")
}

func (e *Engine) teardown(ctx context.Context) {
	if e.optimizer != nil {
		e.optimizer.Stop()
	}
	if e.archiver != nil {
		e.archiver.Stop(ctx)
	}
	if e.monitor != nil {
		e.monitor.Stop()
	}
	if e.collector != nil {
		e.collector.Detach()
	}
}

// Running reports whether the engine has been started.
func (e *Engine) Running() bool {
	return e.started.Load()
}

// Spawn creates an actor of the given registered type.
func (e *Engine) Spawn(typeName string, ectx ecs.Context) *factory.Result {
	return e.registry.CreateActor(typeName, ectx)
}

// SpawnFromTemplate creates an actor from a registered template.
func (e *Engine) SpawnFromTemplate(name string, ectx ecs.Context) *factory.Result {
	return e.registry.CreateFromTemplate(name, ectx)
}

// Manager returns the lifecycle manager.
func (e *Engine) Manager() *lifecycle.Manager {
	return e.manager
}

// Registry returns the factory registry.
func (e *Engine) Registry() *factory.Registry {
	return e.registry
}

// Collector returns the analytics collector, nil when analytics is
// disabled.
func (e *Engine) Collector() *analytics.Collector {
	return e.collector
}

// Monitor returns the lifecycle monitor, nil when monitoring is
// disabled.
func (e *Engine) Monitor() *monitor.Monitor {
	return e.monitor
}

// Optimizer returns the performance optimizer, nil when disabled.
func (e *Engine) Optimizer() *optimizer.Optimizer {
	return e.optimizer
}

// Archiver returns the analytics archiver, nil when persistence is
// disabled.
func (e *Engine) Archiver() *persistence.Archiver {
	return e.archiver
}

// Logger returns the engine logger.
func (e *Engine) Logger() log.Logger {
	return e.logger
}
