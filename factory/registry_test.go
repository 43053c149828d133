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

package factory

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarforge/actorlife/ecs"
	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
)

type stubActor struct {
	name    string
	initErr error
}

func (a *stubActor) Initialize() error {
	return a.initErr
}

func (a *stubActor) Update(float64) {}

func (a *stubActor) GetName() string {
	return a.name
}

func stubBuilder(name string) Builder {
	return func() (lifecycle.Actor, error) {
		return &stubActor{name: name}, nil
	}
}

func newTestRegistry() (*Registry, *lifecycle.Manager) {
	manager := lifecycle.NewManager(lifecycle.WithLogger(log.DiscardLogger))
	return NewRegistry(manager, WithLogger(log.DiscardLogger)), manager
}

func TestRegisterFactory(t *testing.T) {
	t.Run("With registration", func(t *testing.T) {
		registry, _ := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("TestActor", stubBuilder("TestActor"), "gameplay"))

		assert.True(t, registry.HasFactory("TestActor"))
		assert.Contains(t, registry.RegisteredTypes(), "TestActor")

		metadata, ok := registry.MetadataOf("TestActor")
		require.True(t, ok)
		assert.True(t, metadata.IsValid)
		assert.Empty(t, metadata.ValidationErrors)
		assert.Equal(t, "gameplay", metadata.Category)
	})
	t.Run("With empty type name", func(t *testing.T) {
		registry, _ := newTestRegistry()
		err := registry.RegisterFactory("", stubBuilder("x"), "")
		assert.ErrorIs(t, err, ErrEmptyTypeName)
	})
	t.Run("With nil builder", func(t *testing.T) {
		registry, _ := newTestRegistry()
		err := registry.RegisterFactory("TestActor", nil, "")
		assert.ErrorIs(t, err, ErrNilBuilder)
	})
	t.Run("With duplicate registration", func(t *testing.T) {
		registry, _ := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("TestActor", stubBuilder("x"), ""))
		err := registry.RegisterFactory("TestActor", stubBuilder("y"), "")
		assert.ErrorIs(t, err, ErrTypeAlreadyRegistered)
	})
}

func TestValidateFactory(t *testing.T) {
	t.Run("With missing dependency gate", func(t *testing.T) {
		registry, _ := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("B", stubBuilder("B"), "", "A"))

		assert.False(t, registry.ValidateFactory("B"))
		metadata, _ := registry.MetadataOf("B")
		assert.Equal(t, "Missing dependency: A", metadata.ValidationErrors)

		result := registry.CreateActor("B", ecs.Context{})
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.ErrorMessage)

		require.NoError(t, registry.RegisterFactory("A", stubBuilder("A"), ""))
		assert.True(t, registry.ValidateFactory("B"))
		metadata, _ = registry.MetadataOf("B")
		assert.True(t, metadata.IsValid)
		assert.Empty(t, metadata.ValidationErrors)
	})
	t.Run("With failing builder", func(t *testing.T) {
		registry, _ := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("Broken", func() (lifecycle.Actor, error) {
			return nil, errors.New("out of parts")
		}, ""))

		metadata, _ := registry.MetadataOf("Broken")
		assert.False(t, metadata.IsValid)
		assert.Contains(t, metadata.ValidationErrors, "Builder test failed")
	})
	t.Run("With panicking builder", func(t *testing.T) {
		registry, _ := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("Volatile", func() (lifecycle.Actor, error) {
			panic("assembly line exploded")
		}, ""))

		metadata, _ := registry.MetadataOf("Volatile")
		assert.False(t, metadata.IsValid)
		assert.Contains(t, metadata.ValidationErrors, "panicked")
	})
	t.Run("With unknown factory", func(t *testing.T) {
		registry, _ := newTestRegistry()
		assert.False(t, registry.ValidateFactory("Ghost"))
	})
	t.Run("With validate all", func(t *testing.T) {
		registry, _ := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("Good", stubBuilder("Good"), ""))
		require.NoError(t, registry.RegisterFactory("Bad", stubBuilder("Bad"), "", "Missing"))
		assert.Equal(t, 1, registry.ValidateAllFactories())
	})
}

func TestCreateActor(t *testing.T) {
	t.Run("With creation", func(t *testing.T) {
		registry, manager := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("TestActor", stubBuilder("TestActor"), "gameplay"))

		result := registry.CreateActor("TestActor", ecs.New("manager", 1))
		require.True(t, result.Success)
		require.NotNil(t, result.Actor)
		assert.Equal(t, "TestActor", result.Actor.GetName())
		assert.GreaterOrEqual(t, result.CreationTimeMs(), 0.0)
		assert.Equal(t, lifecycle.Initialized, manager.GetState(result.Actor))

		metrics := registry.Metrics()
		assert.Equal(t, uint64(1), metrics.TotalCreations)
		assert.Equal(t, uint64(1), metrics.CreationsByType["TestActor"])
	})
	t.Run("With unknown type", func(t *testing.T) {
		registry, _ := newTestRegistry()
		result := registry.CreateActor("Ghost", ecs.Context{})
		assert.False(t, result.Success)
		assert.Contains(t, result.ErrorMessage, "No factory registered")
		assert.Zero(t, registry.Metrics().TotalCreations)
	})
	t.Run("With failing Initialize counted in metrics", func(t *testing.T) {
		registry, manager := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("Fragile", func() (lifecycle.Actor, error) {
			return &stubActor{name: "fragile", initErr: errors.New("boot failure")}, nil
		}, ""))

		result := registry.CreateActor("Fragile", ecs.Context{})
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.ErrorMessage)
		assert.Nil(t, result.Actor)

		// the partially-constructed actor is discarded
		assert.Zero(t, manager.Count())

		// failed attempts still count, in aggregate and per type
		metrics := registry.Metrics()
		assert.Equal(t, uint64(1), metrics.TotalCreations)
		metadata, _ := registry.MetadataOf("Fragile")
		assert.Equal(t, uint64(1), metadata.CreationCount)
	})
	t.Run("With panicking Initialize", func(t *testing.T) {
		registry, manager := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("Wild", func() (lifecycle.Actor, error) {
			return &wildActor{}, nil
		}, ""))

		// validation succeeds because only CreateActor runs Initialize
		result := registry.CreateActor("Wild", ecs.Context{})
		assert.False(t, result.Success)
		assert.Contains(t, result.ErrorMessage, "panicked")
		assert.Zero(t, manager.Count())
	})
	t.Run("With metrics invariants", func(t *testing.T) {
		registry, _ := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("A", stubBuilder("A"), ""))
		require.NoError(t, registry.RegisterFactory("B", stubBuilder("B"), ""))
		for n := 0; n < 3; n++ {
			require.True(t, registry.CreateActor("A", ecs.Context{}).Success)
		}
		for n := 0; n < 2; n++ {
			require.True(t, registry.CreateActor("B", ecs.Context{}).Success)
		}

		metrics := registry.Metrics()
		var byType, byMetadata uint64
		for _, count := range metrics.CreationsByType {
			byType += count
		}
		for _, typeName := range registry.RegisteredTypes() {
			metadata, _ := registry.MetadataOf(typeName)
			byMetadata += metadata.CreationCount
		}
		assert.Equal(t, metrics.TotalCreations, byType)
		assert.Equal(t, metrics.TotalCreations, byMetadata)
		assert.LessOrEqual(t, metrics.MinCreationTime, metrics.AverageCreationTime)
		assert.LessOrEqual(t, metrics.AverageCreationTime, metrics.MaxCreationTime)
	})
}

type wildActor struct{}

func (a *wildActor) Initialize() error {
	panic("uncontained reaction")
}

func (a *wildActor) Update(float64) {}

func (a *wildActor) GetName() string {
	return "wild"
}

func TestTemplates(t *testing.T) {
	t.Run("With template creation", func(t *testing.T) {
		registry, _ := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("Ship", stubBuilder("Ship"), "vessels"))
		require.NoError(t, registry.RegisterTemplate("Corvette", "Ship", map[string]string{"hull": "light"}))

		result := registry.CreateFromTemplate("Corvette", ecs.Context{})
		require.True(t, result.Success)
		assert.Equal(t, "Ship", result.TypeName)

		template, ok := registry.TemplateOf("Corvette")
		require.True(t, ok)
		assert.Equal(t, uint64(1), template.UsageCount)
		assert.Equal(t, "light", template.Parameters["hull"])
	})
	t.Run("With unknown base type", func(t *testing.T) {
		registry, _ := newTestRegistry()
		err := registry.RegisterTemplate("Corvette", "Ghost", nil)
		assert.ErrorIs(t, err, ErrUnknownBaseType)
	})
	t.Run("With duplicate template", func(t *testing.T) {
		registry, _ := newTestRegistry()
		require.NoError(t, registry.RegisterFactory("Ship", stubBuilder("Ship"), ""))
		require.NoError(t, registry.RegisterTemplate("Corvette", "Ship", nil))
		err := registry.RegisterTemplate("Corvette", "Ship", nil)
		assert.ErrorIs(t, err, ErrTemplateAlreadyRegistered)
	})
	t.Run("With unknown template", func(t *testing.T) {
		registry, _ := newTestRegistry()
		result := registry.CreateFromTemplate("Ghost", ecs.Context{})
		assert.False(t, result.Success)
		assert.Contains(t, result.ErrorMessage, "No template registered")
	})
}

func TestIntrospection(t *testing.T) {
	registry, _ := newTestRegistry()
	require.NoError(t, registry.RegisterFactory("Zebra", stubBuilder("Zebra"), "fauna"))
	require.NoError(t, registry.RegisterFactory("Apple", stubBuilder("Apple"), "flora"))
	require.NoError(t, registry.RegisterFactory("Moss", stubBuilder("Moss"), "flora"))

	t.Run("With sorted type listing", func(t *testing.T) {
		assert.Equal(t, []string{"Apple", "Moss", "Zebra"}, registry.RegisteredTypes())
	})
	t.Run("With categories", func(t *testing.T) {
		assert.Equal(t, []string{"fauna", "flora"}, registry.Categories())
		assert.Equal(t, []string{"Apple", "Moss"}, registry.FactoriesByCategory("flora"))
		assert.Empty(t, registry.FactoriesByCategory("minerals"))
	})
	t.Run("With most used ranking", func(t *testing.T) {
		for n := 0; n < 3; n++ {
			require.True(t, registry.CreateActor("Moss", ecs.Context{}).Success)
		}
		require.True(t, registry.CreateActor("Zebra", ecs.Context{}).Success)

		top := registry.MostUsedActorTypes(2)
		require.Len(t, top, 2)
		assert.Equal(t, "Moss", top[0])
		assert.Equal(t, "Zebra", top[1])

		all := registry.MostUsedActorTypes(10)
		assert.Len(t, all, 3)
	})
	t.Run("With count", func(t *testing.T) {
		assert.Equal(t, 3, registry.Count())
	})
}

func TestReports(t *testing.T) {
	registry, _ := newTestRegistry()
	require.NoError(t, registry.RegisterFactory("Ship", stubBuilder("Ship"), "vessels"))
	require.NoError(t, registry.RegisterFactory("Orphan", stubBuilder("Orphan"), "", "MissingDep"))

	t.Run("With health report", func(t *testing.T) {
		report := registry.HealthReport()
		assert.Contains(t, report, "[OK] Ship")
		assert.Contains(t, report, "[INVALID] Orphan")
		assert.Contains(t, report, "Missing dependency: MissingDep")
		assert.Contains(t, report, "Healthy: 1/2")
	})
	t.Run("With documentation", func(t *testing.T) {
		docs := registry.GenerateDocumentation()
		assert.Contains(t, docs, "## vessels")
		assert.Contains(t, docs, "- Ship")
		assert.Contains(t, docs, "(uncategorized)")
		assert.Contains(t, docs, "depends on: MissingDep")
	})
	t.Run("With exported documentation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.txt")
		require.NoError(t, registry.ExportDocumentation(path))
	})
	t.Run("With smoke tests", func(t *testing.T) {
		ok, line := registry.TestFactory("Ship")
		assert.True(t, ok)
		assert.Equal(t, "PASS Ship", line)

		ok, line = registry.TestFactory("Ghost")
		assert.False(t, ok)
		assert.Contains(t, line, "FAIL Ghost")

		report := registry.TestAllFactories()
		assert.Contains(t, report, "PASS Ship")
		assert.Contains(t, report, fmt.Sprintf("Passed: %d/%d", 2, 2))
	})
}
