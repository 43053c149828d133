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
	"time"

	"github.com/stellarforge/actorlife/lifecycle"
)

// Result reports the outcome of a creation attempt. Creation never panics
// and never aborts the process; every failure mode surfaces here.
type Result struct {
	// Success reports whether the actor was built and initialized.
	Success bool
	// Actor is the created actor, nil on failure.
	Actor lifecycle.Actor
	// TypeName is the factory type the attempt was made against.
	TypeName string
	// ErrorMessage describes the failure, empty on success.
	ErrorMessage string
	// CreationTime is the wall time the attempt took.
	CreationTime time.Duration
}

// CreationTimeMs returns the attempt duration in milliseconds.
func (r *Result) CreationTimeMs() float64 {
	return float64(r.CreationTime) / float64(time.Millisecond)
}

func failure(typeName, message string, elapsed time.Duration) *Result {
	return &Result{
		Success:      false,
		TypeName:     typeName,
		ErrorMessage: message,
		CreationTime: elapsed,
	}
}

func success(typeName string, actor lifecycle.Actor, elapsed time.Duration) *Result {
	return &Result{
		Success:      true,
		Actor:        actor,
		TypeName:     typeName,
		CreationTime: elapsed,
	}
}
