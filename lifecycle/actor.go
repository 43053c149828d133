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
	"fmt"
	"strings"
)

// Actor is the capability set a gameplay object must expose to be managed by
// this subsystem. The manager holds a non-owning reference; ownership stays
// with the caller. Actors must not call back into the Manager from
// Initialize, the manager attaches the lifecycle context before Initialize
// runs.
type Actor interface {
	// Initialize prepares the actor for activation. It is called exactly
	// once, after registration and before the actor can become Active.
	Initialize() error
	// Update advances the actor by dt seconds. Only Active actors are
	// updated.
	Update(dt float64)
	// GetName returns the actor's human-readable display name.
	GetName() string
}

// TypeNameOf derives a stable type name for an actor from its Go type,
// stripped of pointer and package qualifiers.
func TypeNameOf(actor Actor) string {
	if actor == nil {
		return ""
	}
	name := strings.TrimLeft(fmt.Sprintf("%T", actor), "*")
	if index := strings.LastIndex(name, "."); index >= 0 {
		name = name[index+1:]
	}
	return name
}
