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

import "fmt"

// Event names a notification point in the lifecycle. Pre events fire before
// the state change becomes observable, Post events after.
type Event int

const (
	PreCreate Event = iota
	PostCreate
	PreInitialize
	PostInitialize
	PreActivate
	PostActivate
	PrePause
	PostPause
	PreResume
	PostResume
	PreDestroy
	PostDestroy
)

// Events lists every lifecycle event in declaration order.
var Events = []Event{
	PreCreate, PostCreate,
	PreInitialize, PostInitialize,
	PreActivate, PostActivate,
	PrePause, PostPause,
	PreResume, PostResume,
	PreDestroy, PostDestroy,
}

// String implements fmt.Stringer.
func (e Event) String() string {
	switch e {
	case PreCreate:
		return "PreCreate"
	case PostCreate:
		return "PostCreate"
	case PreInitialize:
		return "PreInitialize"
	case PostInitialize:
		return "PostInitialize"
	case PreActivate:
		return "PreActivate"
	case PostActivate:
		return "PostActivate"
	case PrePause:
		return "PrePause"
	case PostPause:
		return "PostPause"
	case PreResume:
		return "PreResume"
	case PostResume:
		return "PostResume"
	case PreDestroy:
		return "PreDestroy"
	case PostDestroy:
		return "PostDestroy"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// ParseEvent returns the Event named by text.
func ParseEvent(text string) (Event, error) {
	for _, event := range Events {
		if event.String() == text {
			return event, nil
		}
	}
	return PreCreate, fmt.Errorf("unknown lifecycle event %q", text)
}

// preEventFor maps a target state to the event fired just before the state
// change is applied. States without a pre notification map to false.
func preEventFor(target State) (Event, bool) {
	switch target {
	case Initializing:
		return PreInitialize, true
	case Active:
		return PreActivate, true
	case Pausing:
		return PrePause, true
	case Resuming:
		return PreResume, true
	case Destroying:
		return PreDestroy, true
	default:
		return PreCreate, false
	}
}

// postEventFor maps a freshly-entered state to the event fired once the
// change is observable.
func postEventFor(target State) (Event, bool) {
	switch target {
	case Created:
		return PostCreate, true
	case Initialized:
		return PostInitialize, true
	case Active:
		return PostActivate, true
	case Paused:
		return PostPause, true
	case Destroyed:
		return PostDestroy, true
	default:
		return PostCreate, false
	}
}
