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
	"github.com/google/uuid"

	"github.com/stellarforge/actorlife/ecs"
)

// Context is the per-actor record owned by the Manager. It carries the
// actor's identity, lifecycle state, statistics and a free-form metadata map
// hooks may annotate. Contexts are recycled through the ContextPool; holders
// of a stale pointer can detect reuse by comparing ID and Epoch.
type Context struct {
	id         uuid.UUID
	epoch      uint64
	actor      Actor
	ecsContext ecs.Context
	actorName  string
	actorType  string
	state      State
	stats      Stats
	metadata   map[string]string
}

func newContext() *Context {
	return &Context{
		id:       uuid.New(),
		state:    Created,
		metadata: make(map[string]string),
	}
}

// ID returns the unique identifier of this context incarnation. A recycled
// context gets a fresh ID.
func (c *Context) ID() uuid.UUID {
	return c.id
}

// Epoch returns the reuse generation of the underlying record. It increases
// every time the context is reset for a new actor.
func (c *Context) Epoch() uint64 {
	return c.epoch
}

// Actor returns the managed actor. The reference is non-owning.
func (c *Context) Actor() Actor {
	return c.actor
}

// ECSContext returns the entity handle the actor was registered with.
func (c *Context) ECSContext() ecs.Context {
	return c.ecsContext
}

// ActorName returns the actor's cached display name.
func (c *Context) ActorName() string {
	return c.actorName
}

// ActorType returns the actor's cached type name.
func (c *Context) ActorType() string {
	return c.actorType
}

// State returns the actor's current lifecycle state.
func (c *Context) State() State {
	return c.state
}

// Stats returns a copy of the actor's lifecycle statistics.
func (c *Context) Stats() Stats {
	return c.stats
}

// IsInState reports whether the actor currently is in the given state.
func (c *Context) IsInState(s State) bool {
	return c.state == s
}

// CanTransitionTo reports whether the state machine allows moving from the
// current state to the target.
func (c *Context) CanTransitionTo(target State) bool {
	return CanTransition(c.state, target)
}

// SetMetadata stores a hook-written annotation on the context.
func (c *Context) SetMetadata(key, value string) {
	c.metadata[key] = value
}

// Metadata returns the annotation stored under key, or fallback when the key
// is absent.
func (c *Context) Metadata(key, fallback string) string {
	if value, ok := c.metadata[key]; ok {
		return value
	}
	return fallback
}

// HasMetadata reports whether an annotation exists under key.
func (c *Context) HasMetadata(key string) bool {
	_, ok := c.metadata[key]
	return ok
}

// bind attaches an actor to the context at registration time.
func (c *Context) bind(actor Actor, ectx ecs.Context, typeName string) {
	c.actor = actor
	c.ecsContext = ectx
	c.actorName = actor.GetName()
	c.actorType = typeName
	c.state = Created
}

// reset clears the record for reuse. The epoch is bumped and a fresh ID
// assigned so stale holders can detect the recycling.
func (c *Context) reset() {
	c.id = uuid.New()
	c.epoch++
	c.actor = nil
	c.ecsContext = ecs.Context{}
	c.actorName = ""
	c.actorType = ""
	c.state = Created
	c.stats = Stats{}
	clear(c.metadata)
}
