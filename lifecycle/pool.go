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

import "sync"

// DefaultMaxPoolSize caps the context pool when no explicit size is set.
const DefaultMaxPoolSize = 1000

// ContextPool recycles lifecycle contexts to avoid allocation churn when
// actors are created and destroyed at a high rate. The pool is LIFO and
// thread-safe. Release beyond the cap silently drops the context.
type ContextPool struct {
	mutex   sync.Mutex
	free    []*Context
	maxSize int
}

// NewContextPool creates a pool bounded at maxSize entries. A non-positive
// maxSize falls back to DefaultMaxPoolSize.
func NewContextPool(maxSize int) *ContextPool {
	if maxSize <= 0 {
		maxSize = DefaultMaxPoolSize
	}
	return &ContextPool{
		free:    make([]*Context, 0, maxSize),
		maxSize: maxSize,
	}
}

// Acquire returns a reset context, reusing a pooled one when available.
func (p *ContextPool) Acquire() *Context {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if n := len(p.free); n > 0 {
		ctx := p.free[n-1]
		p.free = p.free[:n-1]
		return ctx
	}
	return newContext()
}

// Release resets the context and returns it to the pool. When the pool is
// full the context is discarded.
func (p *ContextPool) Release(ctx *Context) {
	if ctx == nil {
		return
	}
	ctx.reset()
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if len(p.free) < p.maxSize {
		p.free = append(p.free, ctx)
	}
}

// Len returns the number of pooled contexts.
func (p *ContextPool) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.free)
}

// MaxSize returns the pool's capacity.
func (p *ContextPool) MaxSize() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.maxSize
}

// SetMaxSize changes the pool capacity, discarding the oldest entries when
// the pool shrinks below its current population.
func (p *ContextPool) SetMaxSize(maxSize int) {
	if maxSize <= 0 {
		maxSize = DefaultMaxPoolSize
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.maxSize = maxSize
	if len(p.free) > maxSize {
		p.free = p.free[len(p.free)-maxSize:]
	}
}

// Clear empties the pool.
func (p *ContextPool) Clear() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.free = p.free[:0]
}
