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

// Hook is a user function invoked when a lifecycle event fires. The hook may
// read every context field and write the metadata map.
//
// Hooks run while the manager lock is held. A hook must not call back into
// mutating manager operations (TransitionTo, Register, Unregister,
// BatchTransition); doing so deadlocks and is a contract violation by the
// caller. A hook that panics is isolated: the panic is logged and dispatch
// continues with the next hook.
type Hook func(ctx *Context)

// Validator accepts or rejects a proposed transition. Validators must be
// pure with respect to manager state: they may observe the context but not
// mutate it. A validator that panics counts as a rejection. The no-reentry
// rules for hooks apply to validators as well.
type Validator func(ctx *Context, from, to State) bool

// BatchOptimizer inspects the contexts of a pending batch before the
// transitions are applied. It may reorder or prune the slice and returns the
// contexts that should proceed. Optimizers run outside the manager lock.
type BatchOptimizer func(contexts []*Context, target State) []*Context

type namedHook struct {
	name string
	fn   Hook
}

type namedValidator struct {
	name string
	fn   Validator
}

type namedOptimizer struct {
	name string
	fn   BatchOptimizer
}
