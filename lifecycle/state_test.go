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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStates = []State{Created, Initializing, Initialized, Active, Pausing, Paused, Resuming, Destroying, Destroyed}

func TestCanTransition(t *testing.T) {
	t.Run("With legal transitions", func(t *testing.T) {
		legal := [][2]State{
			{Created, Initializing},
			{Initializing, Initialized},
			{Initialized, Active},
			{Active, Pausing},
			{Pausing, Paused},
			{Paused, Resuming},
			{Resuming, Active},
			{Destroying, Destroyed},
		}
		for _, pair := range legal {
			assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
		}
		// every live state may begin teardown
		for _, state := range allStates[:7] {
			assert.True(t, CanTransition(state, Destroying), "%s -> Destroying", state)
		}
	})
	t.Run("With illegal transitions", func(t *testing.T) {
		assert.False(t, CanTransition(Created, Paused))
		assert.False(t, CanTransition(Created, Active))
		assert.False(t, CanTransition(Active, Active))
		assert.False(t, CanTransition(Paused, Active))
		assert.False(t, CanTransition(Destroyed, Created))
		for _, state := range allStates {
			assert.False(t, CanTransition(Destroyed, state), "Destroyed is terminal")
		}
	})
}

func TestParallelSafe(t *testing.T) {
	assert.True(t, ParallelSafe(Created, Initializing))
	assert.True(t, ParallelSafe(Created, Initialized))
	assert.True(t, ParallelSafe(Initialized, Active))
	assert.True(t, ParallelSafe(Active, Pausing))
	assert.True(t, ParallelSafe(Paused, Resuming))
	assert.True(t, ParallelSafe(Destroying, Destroyed))

	assert.False(t, ParallelSafe(Initializing, Initialized))
	assert.False(t, ParallelSafe(Resuming, Active))
	assert.False(t, ParallelSafe(Active, Destroying))
}

func TestStateString(t *testing.T) {
	names := []string{"Created", "Initializing", "Initialized", "Active", "Pausing", "Paused", "Resuming", "Destroying", "Destroyed"}
	for i, state := range allStates {
		assert.Equal(t, names[i], state.String())
	}
	assert.Contains(t, State(42).String(), "42")
}

func TestParseState(t *testing.T) {
	t.Run("With valid names", func(t *testing.T) {
		for _, state := range allStates {
			parsed, err := ParseState(state.String())
			require.NoError(t, err)
			assert.Equal(t, state, parsed)
		}
	})
	t.Run("With invalid name", func(t *testing.T) {
		_, err := ParseState("Zombie")
		require.Error(t, err)
	})
}

func TestStatePredicates(t *testing.T) {
	assert.True(t, IsCreationState(Created))
	assert.True(t, IsCreationState(Initializing))
	assert.True(t, IsCreationState(Initialized))
	assert.False(t, IsCreationState(Active))

	assert.True(t, IsActiveState(Active))
	assert.True(t, IsActiveState(Pausing))
	assert.True(t, IsActiveState(Resuming))
	assert.False(t, IsActiveState(Paused))

	assert.True(t, IsDestructionState(Destroying))
	assert.True(t, IsDestructionState(Destroyed))
	assert.False(t, IsDestructionState(Created))

	assert.True(t, IsTransientState(Initializing))
	assert.True(t, IsTransientState(Pausing))
	assert.True(t, IsTransientState(Resuming))
	assert.True(t, IsTransientState(Destroying))
	assert.False(t, IsTransientState(Active))
	assert.False(t, IsTransientState(Destroyed))
}

func TestParseEvent(t *testing.T) {
	t.Run("With valid names", func(t *testing.T) {
		for _, event := range Events {
			parsed, err := ParseEvent(event.String())
			require.NoError(t, err)
			assert.Equal(t, event, parsed)
		}
	})
	t.Run("With invalid name", func(t *testing.T) {
		_, err := ParseEvent("PostTeleport")
		require.Error(t, err)
	})
}
