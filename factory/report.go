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
	"fmt"
	"os"
	"strings"
)

// HealthReport returns a textual overview of every factory's validity and
// usage.
func (r *Registry) HealthReport() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	builder := new(strings.Builder)
	builder.WriteString("=== Factory Health Report ===\n")
	fmt.Fprintf(builder, "Registered factories: %d\n", len(r.factories))

	healthy := 0
	for _, typeName := range r.order {
		metadata := r.factories[typeName].metadata
		status := "OK"
		if !metadata.IsValid {
			status = "INVALID"
		} else {
			healthy++
		}
		fmt.Fprintf(builder, "[%s] %s: %d creations, avg %s\n", status, typeName, metadata.CreationCount, metadata.AverageCreationTime)
		if metadata.ValidationErrors != "" {
			fmt.Fprintf(builder, "    errors: %s\n", metadata.ValidationErrors)
		}
	}
	fmt.Fprintf(builder, "Healthy: %d/%d\n", healthy, len(r.factories))
	return builder.String()
}

// GenerateDocumentation emits a catalog of every registered type grouped by
// category, with dependencies and usage counters.
func (r *Registry) GenerateDocumentation() string {
	categories := r.Categories()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	builder := new(strings.Builder)
	builder.WriteString("=== Actor Factory Catalog ===\n")

	grouped := make(map[string][]string)
	for _, typeName := range r.order {
		category := r.factories[typeName].metadata.Category
		grouped[category] = append(grouped[category], typeName)
	}

	emit := func(category string) {
		typeNames := grouped[category]
		if len(typeNames) == 0 {
			return
		}
		title := category
		if title == "" {
			title = "(uncategorized)"
		}
		fmt.Fprintf(builder, "\n## %s\n", title)
		for _, typeName := range typeNames {
			metadata := r.factories[typeName].metadata
			fmt.Fprintf(builder, "- %s", typeName)
			if len(metadata.Dependencies) > 0 {
				fmt.Fprintf(builder, " (depends on: %s)", strings.Join(metadata.Dependencies, ", "))
			}
			fmt.Fprintf(builder, "\n  created %d times", metadata.CreationCount)
			if !metadata.IsValid {
				fmt.Fprintf(builder, ", INVALID: %s", metadata.ValidationErrors)
			}
			builder.WriteString("\n")
		}
	}

	for _, category := range categories {
		emit(category)
	}
	emit("")
	return builder.String()
}

// ExportDocumentation writes the factory catalog to the given path.
func (r *Registry) ExportDocumentation(path string) error {
	if err := os.WriteFile(path, []byte(r.GenerateDocumentation()), 0o644); err != nil {
		return fmt.Errorf("failed to export factory documentation: %w", err)
	}
	return nil
}

// TestFactory smoke-invokes the named builder once and reports the outcome.
// The probe actor is discarded and never registered with the manager.
func (r *Registry) TestFactory(typeName string) (bool, string) {
	r.mutex.Lock()
	fact, exists := r.factories[typeName]
	if !exists {
		r.mutex.Unlock()
		return false, fmt.Sprintf("FAIL %s: no factory registered", typeName)
	}
	builder := fact.builder
	r.mutex.Unlock()

	actor, err := invokeBuilder(builder)
	switch {
	case err != nil:
		return false, fmt.Sprintf("FAIL %s: %v", typeName, err)
	case actor == nil:
		return false, fmt.Sprintf("FAIL %s: builder returned nil", typeName)
	default:
		return true, fmt.Sprintf("PASS %s", typeName)
	}
}

// TestAllFactories smoke-tests every registered factory and returns the
// per-type pass/fail report.
func (r *Registry) TestAllFactories() string {
	builder := new(strings.Builder)
	builder.WriteString("=== Factory Smoke Tests ===\n")
	passed := 0
	typeNames := r.RegisteredTypes()
	for _, typeName := range typeNames {
		ok, line := r.TestFactory(typeName)
		if ok {
			passed++
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	fmt.Fprintf(builder, "Passed: %d/%d\n", passed, len(typeNames))
	return builder.String()
}
