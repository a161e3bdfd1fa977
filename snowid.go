/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

      http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

package snowid

import (
	"runtime"
	"sync/atomic"
)

/*

ID is the 64-bit k-ordered identity

  42 bit                      n bit     22 - n bit
  |-------------------------|---------|----------|
             ⟨𝒕⟩                ⟨𝒏⟩        ⟨𝒔⟩

The binary layout is the only cross-process contract, the value is not
self-describing. Consumers agree on the Layout out-of-band.
*/
type ID uint64

/*

Generator issues k-ordered identities for a single ⟨𝒏⟩ node. One instance
is shared by any number of goroutines, all coordination is lock-free.
Two instances configured with the same node identifier violate the
uniqueness contract, the generator does not prevent it.
*/
type Generator struct {
	layout Layout

	// ⟨𝒕⟩ and ⟨𝒔⟩ fractions of the latest issued identity, packed into
	// a single word: timestamp << seqBits | sequence. The word is strictly
	// increasing, every issued identity corresponds to a unique value of it.
	// Under back-pressure the timestamp fraction runs ahead of the wall
	// clock, it is not a clock record.
	// Padded to own the cache line, sibling generators do not interfere.
	state atomic.Uint64

	// monotonic maximum of wall clock readings seen by the generator,
	// the reference for backward step detection
	clock atomic.Uint64

	_ [48]byte
}

/*

New creates the generator of k-ordered identities over the given schema
*/
func New(layout Layout) *Generator {
	g := &Generator{layout: layout}
	now := layout.millis()
	g.clock.Store(now)
	if now > 0 {
		// seed the state one millisecond behind so that the first identity
		// of the current millisecond takes sequence 0
		g.state.Store(now<<layout.seqBits - 1)
	}
	return g
}

// Layout returns the identity schema of the generator
func (g *Generator) Layout() Layout { return g.layout }

/*

Next issues the identity. The common case is a single atomic increment.

When the sequence space of the current millisecond is exhausted the call
claims a slot in the following millisecond and waits, spinning then
yielding, until the wall clock catches up. The wait resolves within about
one millisecond under a live clock.

It fails with ClockMovedBackwards if the clock has stepped behind the
latest issued timestamp by more than the configured drift tolerance.
A step within the tolerance is absorbed as same-millisecond jitter.
*/
func (g *Generator) Next() (ID, error) {
	for {
		now := g.layout.millis()
		seen := g.observe(now)

		// backward step is judged against clock readings only, never
		// against the state word: its timestamp fraction runs ahead of
		// the clock under back-pressure
		if seen-now > g.layout.drift {
			// the reading may be stale after preemption, not regressed
			now = g.layout.millis()
			if seen-now > g.layout.drift {
				return 0, &ClockMovedBackwards{Millis: seen - now}
			}
			continue
		}

		word := g.state.Load()
		last := word >> g.layout.seqBits

		if now > last {
			// millisecond advanced, publish it with sequence 0
			if g.state.CompareAndSwap(word, now<<g.layout.seqBits) {
				return g.layout.pack(now, 0), nil
			}
			// lost the publish race, re-read the state
			continue
		}

		// same millisecond, clock jitter within tolerance, or claims
		// running ahead of the clock: claim the next sequence slot. The
		// increment carries into the timestamp fraction when the sequence
		// wraps, the claim then points at a following millisecond.
		word = g.state.Add(1)
		t := word >> g.layout.seqBits
		if t > seen {
			// the claimed millisecond has not been observed on the wall
			// clock yet, wait for it
			g.wait(t)
		}
		return g.layout.pack(t, word&g.layout.maxSeq), nil
	}
}

// observe folds the clock reading into the monotonic maximum of readings
// seen by the generator, returns the maximum
func (g *Generator) observe(now uint64) uint64 {
	for {
		seen := g.clock.Load()
		if now <= seen {
			return seen
		}
		if g.clock.CompareAndSwap(seen, now) {
			return now
		}
	}
}

// wait blocks until the clock reaches the claimed millisecond: a bounded
// busy phase, then yields with exponential back-off between clock re-checks
func (g *Generator) wait(target uint64) {
	for i := 0; i < g.layout.spin; i++ {
		if m := g.layout.millis(); m >= target {
			g.observe(m)
			return
		}
	}

	for pause := 1; ; {
		for i := 0; i < pause; i++ {
			runtime.Gosched()
		}
		if m := g.layout.millis(); m >= target {
			g.observe(m)
			return
		}
		if pause < g.layout.yield {
			pause <<= 1
		}
	}
}
