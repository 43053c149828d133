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

// Package ecs defines the opaque handle pair the lifecycle subsystem carries
// on behalf of the entity-component storage. The lifecycle core never
// interprets the handle; it only stores it and passes it back to actors.
package ecs

// EntityID uniquely identifies an entity within an entity manager.
type EntityID uint64

// InvalidEntity is the zero entity identifier. It never addresses a live
// entity.
const InvalidEntity EntityID = 0

// Context pairs an entity manager with an entity identifier. The manager is
// deliberately untyped so the lifecycle core stays decoupled from the
// component storage implementation. Context values are cheap to copy.
type Context struct {
	// Manager is a non-owning reference to the entity manager.
	Manager any
	// Entity is the identifier of the entity backing the actor.
	Entity EntityID
}

// New creates an ECS context for the given manager and entity.
func New(manager any, entity EntityID) Context {
	return Context{
		Manager: manager,
		Entity:  entity,
	}
}

// Valid returns true when the context addresses a live entity.
func (c Context) Valid() bool {
	return c.Manager != nil && c.Entity != InvalidEntity
}
