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

package engine

import (
	"github.com/stellarforge/actorlife/log"
	"github.com/stellarforge/actorlife/telemetry"
)

// Option is the interface that applies a configuration option to the
// Engine.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Engine)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Engine)

// Apply applies the option.
func (f OptionFunc) Apply(e *Engine) {
	f(e)
}

// WithLogger sets the engine logger instead of building one from the
// configured level.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(e *Engine) {
		e.logger = logger
	})
}

// WithTelemetry wires an OpenTelemetry meter provider into the manager
// and the factory registry.
func WithTelemetry(tel *telemetry.Telemetry) Option {
	return OptionFunc(func(e *Engine) {
		e.telemetry = tel
	})
}

// WithRegistrations adds actor type registrations applied at start.
func WithRegistrations(registrations ...Registration) Option {
	return OptionFunc(func(e *Engine) {
		e.registrations = append(e.registrations, registrations...)
	})
}
