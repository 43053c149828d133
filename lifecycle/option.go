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
	"github.com/stellarforge/actorlife/log"
	"github.com/stellarforge/actorlife/telemetry"
)

// Option is the interface that applies a configuration option to the
// Manager.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Manager)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Manager)

// Apply applies the option.
func (f OptionFunc) Apply(m *Manager) {
	f(m)
}

// WithLogger sets the manager logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(m *Manager) {
		m.logger = logger
	})
}

// WithContextPool sets the pool used to recycle lifecycle contexts and
// enables pooling.
func WithContextPool(pool *ContextPool) Option {
	return OptionFunc(func(m *Manager) {
		m.pool = pool
		m.pooling = true
	})
}

// WithoutPooling disables context recycling. Every registration allocates a
// fresh context.
func WithoutPooling() Option {
	return OptionFunc(func(m *Manager) {
		m.pooling = false
	})
}

// WithTelemetry wires the manager to the given telemetry instruments.
func WithTelemetry(tel *telemetry.Telemetry) Option {
	return OptionFunc(func(m *Manager) {
		m.telemetry = tel
	})
}
