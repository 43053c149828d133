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

package lifecycle

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/stellarforge/actorlife/ecs"
	"github.com/stellarforge/actorlife/log"
	"github.com/stellarforge/actorlife/telemetry"
)

// Manager is the authoritative per-actor state machine and hook dispatcher.
// Every live actor has exactly one Context in the manager; the actor's State
// is the single source of truth for what operations are permitted on it.
//
// All operations are safe for concurrent use. Hooks and validators run with
// the manager lock held; see the Hook contract for the no-reentry rules.
type Manager struct {
	mutex      sync.Mutex
	contexts   map[Actor]*Context
	hooks      map[Event][]namedHook
	validators []namedValidator
	optimizers []namedOptimizer
	pool       *ContextPool
	pooling    bool
	logger     log.Logger
	telemetry  *telemetry.Telemetry
}

// NewManager creates a lifecycle Manager. Pooling is enabled by default with
// a pool of DefaultMaxPoolSize contexts.
func NewManager(opts ...Option) *Manager {
	manager := &Manager{
		contexts: make(map[Actor]*Context),
		hooks:    make(map[Event][]namedHook),
		pooling:  true,
		logger:   log.DefaultLogger,
	}
	for _, opt := range opts {
		opt.Apply(manager)
	}
	if manager.pool == nil {
		manager.pool = NewContextPool(DefaultMaxPoolSize)
	}
	return manager
}

// Pool returns the context pool backing the manager.
func (m *Manager) Pool() *ContextPool {
	return m.pool
}

// PoolingEnabled reports whether released contexts are recycled.
func (m *Manager) PoolingEnabled() bool {
	return m.pooling
}

// Register places an actor under lifecycle management in the Created state
// and fires the PostCreate hooks. A nil actor and a re-registration of an
// already managed actor are both no-ops. The actor's type name is derived
// from its Go type; use RegisterTyped when the caller knows better.
func (m *Manager) Register(actor Actor, ectx ecs.Context) {
	m.RegisterTyped(actor, ectx, TypeNameOf(actor))
}

// RegisterTyped is Register with an explicit actor type name. The factory
// registry uses it so contexts carry the registered type rather than the Go
// type.
func (m *Manager) RegisterTyped(actor Actor, ectx ecs.Context, typeName string) {
	if actor == nil {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, exists := m.contexts[actor]; exists {
		return
	}

	var ctx *Context
	if m.pooling {
		ctx = m.pool.Acquire()
	} else {
		ctx = newContext()
	}
	ctx.bind(actor, ectx, typeName)
	ctx.stats.CreationTime = time.Now()
	m.contexts[actor] = ctx

	m.logger.Debugf("registered actor %s (type=%s)", ctx.actorName, typeName)
	m.fireLocked(PostCreate, ctx)

	if m.telemetry != nil {
		m.telemetry.Metrics.CreatedCount.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("actor.type", typeName)))
	}
}

// Unregister removes an actor from management. When the actor is not yet
// Destroyed its state is driven through Destroying and Destroyed so the
// PreDestroy and PostDestroy hooks fire in that order. Unknown actors are a
// no-op.
func (m *Manager) Unregister(actor Actor) {
	if actor == nil {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	ctx, exists := m.contexts[actor]
	if !exists {
		return
	}
	m.destroyLocked(ctx)
	delete(m.contexts, actor)
	m.recycleLocked(ctx)
}

// TransitionTo moves an actor to a new state. The transition is checked
// against the state machine and every registered validator; on success the
// pre hook fires, the state and timestamps mutate, then the post hook fires.
// It returns false without side effects when the actor is unknown or the
// transition is rejected.
func (m *Manager) TransitionTo(actor Actor, target State) bool {
	if actor == nil {
		return false
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	ctx, exists := m.contexts[actor]
	if !exists {
		m.logger.Debugf("transition to %s requested for unknown actor", target)
		return false
	}
	return m.transitionLocked(ctx, target)
}

// GetState returns the actor's current state. Unknown and nil actors report
// Destroyed.
func (m *Manager) GetState(actor Actor) State {
	if actor == nil {
		return Destroyed
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if ctx, exists := m.contexts[actor]; exists {
		return ctx.state
	}
	return Destroyed
}

// ContextOf returns the lifecycle context of a managed actor. The returned
// pointer stays valid until the actor is unregistered; after that the record
// may be recycled for another actor, detectable through ID and Epoch.
func (m *Manager) ContextOf(actor Actor) (*Context, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	ctx, exists := m.contexts[actor]
	return ctx, exists
}

// Stats returns a copy of the actor's lifecycle statistics.
func (m *Manager) Stats(actor Actor) (Stats, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if ctx, exists := m.contexts[actor]; exists {
		return ctx.stats, true
	}
	return Stats{}, false
}

// AllStats returns a copy of the statistics of every managed actor.
func (m *Manager) AllStats() map[Actor]Stats {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	all := make(map[Actor]Stats, len(m.contexts))
	for actor, ctx := range m.contexts {
		all[actor] = ctx.stats
	}
	return all
}

// BatchTransition applies TransitionTo to every listed actor. Registered
// batch optimizers may reorder or prune the batch first. The batch is not
// atomic: some transitions may succeed while others fail. It returns the
// number of successful transitions.
func (m *Manager) BatchTransition(actors []Actor, target State) int {
	m.mutex.Lock()
	contexts := make([]*Context, 0, len(actors))
	for _, actor := range actors {
		if ctx, exists := m.contexts[actor]; exists {
			contexts = append(contexts, ctx)
		}
	}
	optimizers := slices.Clone(m.optimizers)
	m.mutex.Unlock()

	for _, optimizer := range optimizers {
		contexts = m.runOptimizer(optimizer, contexts, target)
	}

	succeeded := 0
	for _, ctx := range contexts {
		m.mutex.Lock()
		if live, exists := m.contexts[ctx.actor]; exists && live == ctx {
			if m.transitionLocked(ctx, target) {
				succeeded++
			}
		}
		m.mutex.Unlock()
	}
	return succeeded
}

// BatchUpdate calls Update(dt) on every Active actor, timing each call and
// folding the result into the actor's statistics. The manager lock is never
// held across an Update invocation.
func (m *Manager) BatchUpdate(dt float64) {
	m.mutex.Lock()
	targets := make([]Actor, 0, len(m.contexts))
	for actor, ctx := range m.contexts {
		if ctx.state == Active {
			targets = append(targets, actor)
		}
	}
	m.mutex.Unlock()

	for _, actor := range targets {
		start := time.Now()
		actor.Update(dt)
		elapsed := time.Since(start)

		m.mutex.Lock()
		if ctx, exists := m.contexts[actor]; exists && ctx.state == Active {
			ctx.stats.recordUpdate(elapsed)
		}
		m.mutex.Unlock()
	}
}

// DestroyAllActors forces every managed actor through Destroying and
// Destroyed with the full hook sequence and clears the registry.
func (m *Manager) DestroyAllActors() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for actor, ctx := range m.contexts {
		m.destroyLocked(ctx)
		delete(m.contexts, actor)
		m.recycleLocked(ctx)
	}
}

// GarbageCollect removes contexts whose actor already reached Destroyed and
// returns how many were removed.
func (m *Manager) GarbageCollect() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	removed := 0
	for actor, ctx := range m.contexts {
		if ctx.state == Destroyed {
			delete(m.contexts, actor)
			m.recycleLocked(ctx)
			removed++
		}
	}
	return removed
}

// RegisterHook adds a named hook for an event. Hooks fire in registration
// order; registering under an existing name replaces the hook in place.
func (m *Manager) RegisterHook(event Event, name string, hook Hook) {
	if hook == nil {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	entries := m.hooks[event]
	for i, entry := range entries {
		if entry.name == name {
			entries[i].fn = hook
			return
		}
	}
	m.hooks[event] = append(entries, namedHook{name: name, fn: hook})
}

// UnregisterHook removes the named hook for an event and reports whether it
// existed.
func (m *Manager) UnregisterHook(event Event, name string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	entries := m.hooks[event]
	for i, entry := range entries {
		if entry.name == name {
			m.hooks[event] = slices.Delete(entries, i, i+1)
			return true
		}
	}
	return false
}

// ClearHooks removes every hook registered for the given event.
func (m *Manager) ClearHooks(event Event) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.hooks, event)
}

// ClearAllHooks removes every registered hook.
func (m *Manager) ClearAllHooks() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.hooks = make(map[Event][]namedHook)
}

// RegisterValidator adds a named transition validator. A transition is
// rejected as soon as any validator returns false.
func (m *Manager) RegisterValidator(name string, validator Validator) {
	if validator == nil {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i, entry := range m.validators {
		if entry.name == name {
			m.validators[i].fn = validator
			return
		}
	}
	m.validators = append(m.validators, namedValidator{name: name, fn: validator})
}

// UnregisterValidator removes the named validator and reports whether it
// existed.
func (m *Manager) UnregisterValidator(name string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i, entry := range m.validators {
		if entry.name == name {
			m.validators = slices.Delete(m.validators, i, i+1)
			return true
		}
	}
	return false
}

// RegisterOptimizer adds a named batch optimizer consulted by
// BatchTransition.
func (m *Manager) RegisterOptimizer(name string, optimizer BatchOptimizer) {
	if optimizer == nil {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i, entry := range m.optimizers {
		if entry.name == name {
			m.optimizers[i].fn = optimizer
			return
		}
	}
	m.optimizers = append(m.optimizers, namedOptimizer{name: name, fn: optimizer})
}

// UnregisterOptimizer removes the named batch optimizer and reports whether
// it existed.
func (m *Manager) UnregisterOptimizer(name string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i, entry := range m.optimizers {
		if entry.name == name {
			m.optimizers = slices.Delete(m.optimizers, i, i+1)
			return true
		}
	}
	return false
}

// Count returns the number of managed actors.
func (m *Manager) Count() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.contexts)
}

// CountInState returns the number of managed actors currently in the given
// state.
func (m *Manager) CountInState(state State) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	count := 0
	for _, ctx := range m.contexts {
		if ctx.state == state {
			count++
		}
	}
	return count
}

// ActorsInState returns the managed actors currently in the given state.
func (m *Manager) ActorsInState(state State) []Actor {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	actors := make([]Actor, 0)
	for actor, ctx := range m.contexts {
		if ctx.state == state {
			actors = append(actors, actor)
		}
	}
	return actors
}

// StateReport returns a textual summary of the managed population grouped by
// state.
func (m *Manager) StateReport() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	byState := make(map[State][]string)
	for _, ctx := range m.contexts {
		byState[ctx.state] = append(byState[ctx.state], fmt.Sprintf("%s (%s)", ctx.actorName, ctx.actorType))
	}

	builder := new(strings.Builder)
	builder.WriteString("=== Actor Lifecycle Report ===\n")
	fmt.Fprintf(builder, "Total actors: %d\n", len(m.contexts))
	for _, state := range []State{Created, Initializing, Initialized, Active, Pausing, Paused, Resuming, Destroying, Destroyed} {
		names := byState[state]
		if len(names) == 0 {
			continue
		}
		slices.Sort(names)
		fmt.Fprintf(builder, "%s: %d\n", state, len(names))
		for _, name := range names {
			fmt.Fprintf(builder, "  - %s\n", name)
		}
	}
	return builder.String()
}

// transitionLocked performs the validated state change. Callers hold the
// manager lock.
func (m *Manager) transitionLocked(ctx *Context, target State) bool {
	from := ctx.state
	start := time.Now()

	if !CanTransition(from, target) {
		m.logger.Debugf("invalid transition %s -> %s for actor %s", from, target, ctx.actorName)
		m.recordFailedTransition(ctx, from, target)
		return false
	}
	for _, validator := range m.validators {
		if !m.runValidator(validator, ctx, from, target) {
			m.logger.Debugf("validator %s rejected %s -> %s for actor %s", validator.name, from, target, ctx.actorName)
			m.recordFailedTransition(ctx, from, target)
			return false
		}
	}

	if event, ok := preEventFor(target); ok {
		m.fireLocked(event, ctx)
	}

	ctx.state = target
	now := time.Now()
	switch target {
	case Initialized:
		if ctx.stats.InitializationTime.IsZero() {
			ctx.stats.InitializationTime = now
		}
	case Active:
		if ctx.stats.ActivationTime.IsZero() {
			ctx.stats.ActivationTime = now
		}
	case Paused:
		ctx.stats.PauseCount++
	case Destroyed:
		if ctx.stats.DestructionTime.IsZero() {
			ctx.stats.DestructionTime = now
		}
	}

	if event, ok := postEventFor(target); ok {
		m.fireLocked(event, ctx)
	}

	m.logger.Debugf("actor %s moved %s -> %s", ctx.actorName, from, target)

	if m.telemetry != nil {
		attrs := metric.WithAttributes(
			attribute.String("actor.type", ctx.actorType),
			attribute.String("state.from", from.String()),
			attribute.String("state.to", target.String()))
		m.telemetry.Metrics.TransitionCount.Add(context.Background(), 1, attrs)
		m.telemetry.Metrics.TransitionDuration.Record(context.Background(),
			float64(time.Since(start))/float64(time.Millisecond), attrs)
	}
	return true
}

// destroyLocked drives an actor to Destroyed unconditionally. Teardown
// bypasses validators so destruction can never be vetoed.
func (m *Manager) destroyLocked(ctx *Context) {
	if ctx.state == Destroyed {
		return
	}
	if ctx.state != Destroying {
		m.fireLocked(PreDestroy, ctx)
		ctx.state = Destroying
	}
	ctx.state = Destroyed
	if ctx.stats.DestructionTime.IsZero() {
		ctx.stats.DestructionTime = time.Now()
	}
	m.fireLocked(PostDestroy, ctx)

	if m.telemetry != nil {
		m.telemetry.Metrics.DestroyedCount.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("actor.type", ctx.actorType)))
	}
}

func (m *Manager) recycleLocked(ctx *Context) {
	if m.pooling {
		m.pool.Release(ctx)
	}
}

func (m *Manager) recordFailedTransition(ctx *Context, from, to State) {
	if m.telemetry == nil {
		return
	}
	m.telemetry.Metrics.FailedTransitionCount.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("actor.type", ctx.actorType),
			attribute.String("state.from", from.String()),
			attribute.String("state.to", to.String())))
}

// fireLocked dispatches an event to its hooks in registration order.
func (m *Manager) fireLocked(event Event, ctx *Context) {
	for _, hook := range m.hooks[event] {
		m.runHook(event, hook, ctx)
	}
}

func (m *Manager) runHook(event Event, hook namedHook, ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("hook %s panicked during %s for actor %s: %v", hook.name, event, ctx.actorName, r)
		}
	}()
	hook.fn(ctx)
}

// runOptimizer shields BatchTransition from a panicking optimizer; the
// batch proceeds unmodified in that case.
func (m *Manager) runOptimizer(optimizer namedOptimizer, contexts []*Context, target State) (result []*Context) {
	result = contexts
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("optimizer %s panicked for target %s: %v", optimizer.name, target, r)
		}
	}()
	return optimizer.fn(contexts, target)
}

func (m *Manager) runValidator(validator namedValidator, ctx *Context, from, to State) (accepted bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("validator %s panicked on %s -> %s for actor %s: %v", validator.name, from, to, ctx.actorName, r)
			accepted = false
		}
	}()
	return validator.fn(ctx, from, to)
}
