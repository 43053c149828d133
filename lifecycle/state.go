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

import "fmt"

// State represents the position of an actor in its lifecycle. The state is
// the single source of truth for what operations are permitted on the actor.
type State int

const (
	// Created means the actor exists but has not started initializing.
	Created State = iota
	// Initializing means the actor's Initialize hook is running.
	Initializing
	// Initialized means initialization completed successfully.
	Initialized
	// Active means the actor participates in update ticks.
	Active
	// Pausing means the actor is leaving the active set.
	Pausing
	// Paused means the actor is suspended and receives no updates.
	Paused
	// Resuming means the actor is rejoining the active set.
	Resuming
	// Destroying means teardown has begun.
	Destroying
	// Destroyed is terminal. No transition leaves it.
	Destroyed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Initializing:
		return "Initializing"
	case Initialized:
		return "Initialized"
	case Active:
		return "Active"
	case Pausing:
		return "Pausing"
	case Paused:
		return "Paused"
	case Resuming:
		return "Resuming"
	case Destroying:
		return "Destroying"
	case Destroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ParseState returns the State named by text.
func ParseState(text string) (State, error) {
	switch text {
	case "Created":
		return Created, nil
	case "Initializing":
		return Initializing, nil
	case "Initialized":
		return Initialized, nil
	case "Active":
		return Active, nil
	case "Pausing":
		return Pausing, nil
	case "Paused":
		return Paused, nil
	case "Resuming":
		return Resuming, nil
	case "Destroying":
		return Destroying, nil
	case "Destroyed":
		return Destroyed, nil
	default:
		return Destroyed, fmt.Errorf("unknown lifecycle state %q", text)
	}
}

// transitions is the authoritative state machine. From each state only the
// listed targets are legal. Any other pair fails validation without side
// effects.
var transitions = map[State][]State{
	Created:      {Initializing, Destroying},
	Initializing: {Initialized, Destroying},
	Initialized:  {Active, Destroying},
	Active:       {Pausing, Destroying},
	Pausing:      {Paused, Destroying},
	Paused:       {Resuming, Destroying},
	Resuming:     {Active, Destroying},
	Destroying:   {Destroyed},
	Destroyed:    nil,
}

// CanTransition reports whether the state machine allows moving from one
// state to another.
func CanTransition(from, to State) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ParallelSafe reports whether a from/to transition may be applied to many
// actors concurrently. Only fan-out transitions that touch no shared global
// state qualify; everything else must be applied sequentially within a batch.
func ParallelSafe(from, to State) bool {
	switch from {
	case Created:
		return to == Initializing || to == Initialized
	case Initialized:
		return to == Active
	case Active:
		return to == Pausing
	case Paused:
		return to == Resuming
	case Destroying:
		return to == Destroyed
	default:
		return false
	}
}

// IsCreationState reports whether the state belongs to the construction
// phase of the lifecycle.
func IsCreationState(s State) bool {
	return s == Created || s == Initializing || s == Initialized
}

// IsActiveState reports whether the actor participates in updates or is on
// its way in or out of the active set.
func IsActiveState(s State) bool {
	return s == Active || s == Pausing || s == Resuming
}

// IsDestructionState reports whether teardown has begun.
func IsDestructionState(s State) bool {
	return s == Destroying || s == Destroyed
}

// IsTransientState reports whether the state is an in-between step that a
// well-behaved actor leaves promptly.
func IsTransientState(s State) bool {
	switch s {
	case Initializing, Pausing, Resuming, Destroying:
		return true
	default:
		return false
	}
}
