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

// Package ticker provides an interval ticker with back-pressure for slow
// receivers. Ticks that nobody is ready to receive are dropped rather than
// queued.
package ticker

import (
	"sync"
	"time"
)

// Ticker delivers the current time on its Ticks channel at a fixed interval.
type Ticker struct {
	Ticks chan time.Time

	interval time.Duration
	mutex    sync.Mutex
	running  bool
	stopCh   chan struct{}
}

// New creates a Ticker that ticks every interval. It panics when interval is
// not strictly positive.
func New(interval time.Duration) *Ticker {
	if interval <= 0 {
		panic("ticker: interval must be greater than zero")
	}
	return &Ticker{
		Ticks:    make(chan time.Time),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins delivering ticks. Calling Start on a running ticker is a
// no-op.
func (t *Ticker) Start() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.running {
		return
	}
	t.running = true
	go t.loop()
}

// Stop halts tick delivery. No tick is delivered after Stop returns until
// Start is called again.
func (t *Ticker) Stop() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if !t.running {
		return
	}
	t.running = false
	t.stopCh <- struct{}{}
}

// Running reports whether the ticker is currently delivering ticks.
func (t *Ticker) Running() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.running
}

func (t *Ticker) loop() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case tick := <-ticker.C:
			// drop the tick when the receiver is not ready
			select {
			case t.Ticks <- tick:
			default:
			}
		case <-t.stopCh:
			return
		}
	}
}
