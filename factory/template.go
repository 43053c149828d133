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
	"maps"
	"time"
)

// Template is a named specialization of a factory. It delegates construction
// to its base type; the parameter map is stored as descriptive metadata and
// not interpreted by the core.
type Template struct {
	// Name identifies the template.
	Name string
	// BaseType is the factory the template delegates to.
	BaseType string
	// Parameters is a free-form string map describing the specialization.
	Parameters map[string]string
	// CreatedAt is when the template was registered.
	CreatedAt time.Time
	// UsageCount is the number of creations made through the template.
	UsageCount uint64
}

// clone returns a deep copy safe to hand out.
func (t Template) clone() Template {
	copied := t
	copied.Parameters = maps.Clone(t.Parameters)
	return copied
}
