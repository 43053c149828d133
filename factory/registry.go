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

// Package factory builds actors by type name with dependency checking,
// per-type metrics and named templates. Created actors are wired straight
// into the lifecycle manager.
package factory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/stellarforge/actorlife/ecs"
	"github.com/stellarforge/actorlife/lifecycle"
	"github.com/stellarforge/actorlife/log"
	"github.com/stellarforge/actorlife/telemetry"
)

// Builder constructs one actor instance. Builders must not touch the
// lifecycle manager; the registry attaches the lifecycle context before
// Initialize runs.
type Builder func() (lifecycle.Actor, error)

type entry struct {
	builder  Builder
	metadata Metadata
}

// Registry maps actor type names to builders plus metadata. All operations
// are safe for concurrent use. Factories live for the registry's lifetime;
// there is no unregistration.
type Registry struct {
	mutex      sync.Mutex
	manager    *lifecycle.Manager
	factories  map[string]*entry
	order      []string
	templates  map[string]*Template
	types      mapset.Set[string]
	categories mapset.Set[string]
	metrics    PerformanceMetrics
	logger     log.Logger
	telemetry  *telemetry.Telemetry
}

// NewRegistry creates a factory registry bound to the given lifecycle
// manager.
func NewRegistry(manager *lifecycle.Manager, opts ...Option) *Registry {
	registry := &Registry{
		manager:    manager,
		factories:  make(map[string]*entry),
		templates:  make(map[string]*Template),
		types:      mapset.NewSet[string](),
		categories: mapset.NewSet[string](),
		logger:     log.DefaultLogger,
	}
	registry.metrics.CreationsByType = make(map[string]uint64)
	for _, opt := range opts {
		opt.Apply(registry)
	}
	return registry
}

// RegisterFactory stores a builder under typeName with its category and
// declared dependencies, then validates it immediately. Registration order
// is remembered for tie-breaking in usage rankings.
func (r *Registry) RegisterFactory(typeName string, builder Builder, category string, dependencies ...string) error {
	if typeName == "" {
		return ErrEmptyTypeName
	}
	if builder == nil {
		return ErrNilBuilder
	}

	r.mutex.Lock()
	if _, exists := r.factories[typeName]; exists {
		r.mutex.Unlock()
		return NewErrTypeAlreadyRegistered(typeName)
	}
	r.factories[typeName] = &entry{
		builder: builder,
		metadata: Metadata{
			TypeName:     typeName,
			Category:     category,
			Dependencies: slices.Clone(dependencies),
		},
	}
	r.order = append(r.order, typeName)
	r.mutex.Unlock()

	r.types.Add(typeName)
	if category != "" {
		r.categories.Add(category)
	}

	r.ValidateFactory(typeName)
	r.logger.Infof("registered actor factory %s (category=%s)", typeName, category)
	return nil
}

// HasFactory reports whether a factory is registered under typeName.
func (r *Registry) HasFactory(typeName string) bool {
	return r.types.Contains(typeName)
}

// ValidateFactory re-checks a factory: every declared dependency must be
// registered and the builder must produce a non-nil actor without failing.
// The outcome lands in the factory metadata; an invalid factory refuses to
// produce actors until a later validation passes.
func (r *Registry) ValidateFactory(typeName string) bool {
	r.mutex.Lock()
	fact, exists := r.factories[typeName]
	if !exists {
		r.mutex.Unlock()
		return false
	}
	dependencies := slices.Clone(fact.metadata.Dependencies)
	builder := fact.builder
	r.mutex.Unlock()

	var problems []string
	for _, dependency := range dependencies {
		if !r.types.Contains(dependency) {
			problems = append(problems, "Missing dependency: "+dependency)
		}
	}
	if len(problems) == 0 {
		// smoke-invoke the builder; the probe actor is discarded unused
		if actor, err := invokeBuilder(builder); err != nil {
			problems = append(problems, fmt.Sprintf("Builder test failed: %v", err))
		} else if actor == nil {
			problems = append(problems, "Builder test failed: returned nil actor")
		}
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	fact.metadata.IsValid = len(problems) == 0
	fact.metadata.ValidationErrors = strings.Join(problems, "; ")
	if !fact.metadata.IsValid {
		r.logger.Warnf("factory %s failed validation: %s", typeName, fact.metadata.ValidationErrors)
	}
	return fact.metadata.IsValid
}

// ValidateAllFactories validates every registered factory and returns the
// number that passed.
func (r *Registry) ValidateAllFactories() int {
	valid := 0
	for _, typeName := range r.RegisteredTypes() {
		if r.ValidateFactory(typeName) {
			valid++
		}
	}
	return valid
}

// CreateActor builds an actor of the given type, registers it with the
// lifecycle manager and drives it to Initialized. Unknown and invalid
// factories are refused without touching the metrics; every attempt that
// invokes the builder counts, failures included.
func (r *Registry) CreateActor(typeName string, ectx ecs.Context) *Result {
	r.mutex.Lock()
	fact, exists := r.factories[typeName]
	if !exists {
		r.mutex.Unlock()
		r.logger.Warnf("no factory registered for type %s", typeName)
		return failure(typeName, fmt.Sprintf("No factory registered for type: %s", typeName), 0)
	}
	if !fact.metadata.IsValid {
		reason := fact.metadata.ValidationErrors
		r.mutex.Unlock()
		r.logger.Warnf("refusing to create %s, factory is invalid: %s", typeName, reason)
		return failure(typeName, fmt.Sprintf("Factory for %s is invalid: %s", typeName, reason), 0)
	}
	builder := fact.builder
	r.mutex.Unlock()

	start := time.Now()
	actor, err := invokeBuilder(builder)
	if err != nil || actor == nil {
		elapsed := time.Since(start)
		r.recordAttempt(typeName, elapsed)
		message := "builder returned a nil actor"
		if err != nil {
			message = err.Error()
		}
		r.logger.Errorf("failed to build actor of type %s: %s", typeName, message)
		return failure(typeName, message, elapsed)
	}

	r.manager.RegisterTyped(actor, ectx, typeName)
	r.manager.TransitionTo(actor, lifecycle.Initializing)
	if err := initializeActor(actor); err != nil {
		elapsed := time.Since(start)
		r.recordAttempt(typeName, elapsed)
		r.manager.Unregister(actor)
		r.logger.Errorf("failed to initialize actor of type %s: %v", typeName, err)
		return failure(typeName, fmt.Sprintf("Initialize failed: %v", err), elapsed)
	}
	r.manager.TransitionTo(actor, lifecycle.Initialized)

	elapsed := time.Since(start)
	r.recordAttempt(typeName, elapsed)
	r.logger.Debugf("created actor %s of type %s in %s", actor.GetName(), typeName, elapsed)
	return success(typeName, actor, elapsed)
}

// RegisterTemplate stores a named specialization delegating to baseType. The
// base type must already be registered.
func (r *Registry) RegisterTemplate(name, baseType string, parameters map[string]string) error {
	if name == "" {
		return ErrEmptyTypeName
	}
	if !r.HasFactory(baseType) {
		return NewErrUnknownBaseType(baseType)
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, exists := r.templates[name]; exists {
		return NewErrTemplateAlreadyRegistered(name)
	}
	params := make(map[string]string, len(parameters))
	for key, value := range parameters {
		params[key] = value
	}
	r.templates[name] = &Template{
		Name:       name,
		BaseType:   baseType,
		Parameters: params,
		CreatedAt:  time.Now(),
	}
	r.logger.Infof("registered template %s (base=%s)", name, baseType)
	return nil
}

// CreateFromTemplate creates an actor through a template, incrementing the
// template's usage counter and delegating to CreateActor with the base type.
func (r *Registry) CreateFromTemplate(name string, ectx ecs.Context) *Result {
	r.mutex.Lock()
	template, exists := r.templates[name]
	if !exists {
		r.mutex.Unlock()
		return failure("", fmt.Sprintf("No template registered: %s", name), 0)
	}
	template.UsageCount++
	baseType := template.BaseType
	r.mutex.Unlock()
	return r.CreateActor(baseType, ectx)
}

// TemplateOf returns a copy of the named template.
func (r *Registry) TemplateOf(name string) (Template, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if template, exists := r.templates[name]; exists {
		return template.clone(), true
	}
	return Template{}, false
}

// TemplateNames returns the registered template names sorted
// lexicographically.
func (r *Registry) TemplateNames() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RegisteredTypes returns every registered type name sorted
// lexicographically.
func (r *Registry) RegisteredTypes() []string {
	types := r.types.ToSlice()
	slices.Sort(types)
	return types
}

// Categories returns every category seen at registration, sorted.
func (r *Registry) Categories() []string {
	categories := r.categories.ToSlice()
	slices.Sort(categories)
	return categories
}

// FactoriesByCategory returns the type names registered under the given
// category, in registration order.
func (r *Registry) FactoriesByCategory(category string) []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	matches := make([]string, 0)
	for _, typeName := range r.order {
		if r.factories[typeName].metadata.Category == category {
			matches = append(matches, typeName)
		}
	}
	return matches
}

// MostUsedActorTypes returns the top n type names by creation count, ties
// broken by registration order.
func (r *Registry) MostUsedActorTypes(n int) []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	ranked := slices.Clone(r.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return r.factories[ranked[i]].metadata.CreationCount > r.factories[ranked[j]].metadata.CreationCount
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// MetadataOf returns a copy of the metadata for a registered type.
func (r *Registry) MetadataOf(typeName string) (Metadata, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if fact, exists := r.factories[typeName]; exists {
		metadata := fact.metadata
		metadata.Dependencies = slices.Clone(metadata.Dependencies)
		return metadata, true
	}
	return Metadata{}, false
}

// Metrics returns a copy of the aggregate creation metrics.
func (r *Registry) Metrics() PerformanceMetrics {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.metrics.clone()
}

// Count returns the number of registered factories.
func (r *Registry) Count() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.factories)
}

func (r *Registry) recordAttempt(typeName string, elapsed time.Duration) {
	r.mutex.Lock()
	if fact, exists := r.factories[typeName]; exists {
		fact.metadata.recordCreation(elapsed)
	}
	r.metrics.recordCreation(typeName, elapsed)
	r.mutex.Unlock()

	if r.telemetry != nil {
		r.telemetry.Metrics.CreationDuration.Record(context.Background(),
			float64(elapsed)/float64(time.Millisecond),
			metric.WithAttributes(attribute.String("actor.type", typeName)))
	}
}

// invokeBuilder shields the registry from a panicking builder.
func invokeBuilder(builder Builder) (actor lifecycle.Actor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			actor = nil
			err = fmt.Errorf("builder panicked: %v", rec)
		}
	}()
	return builder()
}

// initializeActor shields the registry from a panicking Initialize.
func initializeActor(actor lifecycle.Actor) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("initialize panicked: %v", rec)
		}
	}()
	return actor.Initialize()
}
