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
	"time"

	"github.com/pkg/errors"
)

const (
	// width of ⟨𝒕⟩ fraction, fixed by the identity schema
	timestampBits = 42

	// joint width of ⟨𝒏⟩ and ⟨𝒔⟩ fractions
	clockBits = 64 - timestampBits

	maxTimestamp = 1<<timestampBits - 1

	minNodeBits = 6
	maxNodeBits = 16
)

// defaultEpoch is 2024-01-01T00:00:00Z, the zero point of ⟨𝒕⟩ fraction
// unless the application configures its own.
const defaultEpoch = uint64(1704067200000)

/*

Layout is a validated, immutable description of the identity schema: how
64 bits split into ⟨𝒕⟩ timestamp, ⟨𝒏⟩ node and ⟨𝒔⟩ sequence fractions,
together with the clock and back-pressure tuning of the generator.

All shift and mask constants are computed once by NewLayout so that packing
and unpacking on the hot path is pure bitwise arithmetic. The value is
copyable and freely shareable across goroutines without synchronization.
*/
type Layout struct {
	nodeBits uint64
	seqBits  uint64
	node     uint64
	epoch    uint64
	maxNode  uint64
	maxSeq   uint64
	drift    uint64
	spin     int
	yield    int
	ticker   func() uint64
}

/*

Config option of the identity schema and generator behavior
*/
type Config func(*Layout)

/*

ConfNodeBits configures the width of ⟨𝒏⟩ node fraction, [6, 16] bits.
The ⟨𝒔⟩ sequence fraction takes the remaining 22 - n bits.
*/
func ConfNodeBits(bits uint64) Config {
	return func(l *Layout) {
		l.nodeBits = bits
	}
}

/*

ConfNodeID explicitly configures ⟨𝒏⟩ spatially unique identifier.
The value is validated against the configured node width.
*/
func ConfNodeID(id uint64) Config {
	return func(l *Layout) {
		l.node = id
	}
}

/*

ConfEpoch configures the zero point of ⟨𝒕⟩ timestamp fraction.
The epoch must not lie in the future.
*/
func ConfEpoch(t time.Time) Config {
	return func(l *Layout) {
		l.epoch = uint64(t.UnixMilli())
	}
}

/*

ConfClock configures a custom millisecond ticker, a function returning
Unix time in milliseconds. The default ticker is time.Now().UnixMilli().
*/
func ConfClock(ticker func() uint64) Config {
	return func(l *Layout) {
		l.ticker = ticker
	}
}

/*

ConfSpin configures the number of busy iterations the generator re-reads
the clock before it starts yielding, while waiting for the sequence space
of the current millisecond to roll over.
*/
func ConfSpin(iters int) Config {
	return func(l *Layout) {
		l.spin = iters
	}
}

/*

ConfYield configures the cap on consecutive yields between clock re-checks
in the back-off phase of the sequence roll-over wait.
*/
func ConfYield(n int) Config {
	return func(l *Layout) {
		l.yield = n
	}
}

/*

ConfDrift configures the tolerated backward clock step. A clock reading
behind the latest issued timestamp by at most this duration is absorbed as
same-millisecond jitter, a larger step fails with ClockMovedBackwards.
*/
func ConfDrift(drift time.Duration) Config {
	return func(l *Layout) {
		l.drift = uint64(drift.Milliseconds())
	}
}

/*

NewLayout creates the identity schema from configuration options.

  42 bit                      n bit     22 - n bit
  |-------------------------|---------|----------|
             ⟨𝒕⟩                ⟨𝒏⟩        ⟨𝒔⟩

It fails with ErrNodeBits, ErrEpoch or InvalidNodeID if options do not
form a valid schema.
*/
func NewLayout(opts ...Config) (Layout, error) {
	l := Layout{
		nodeBits: 10,
		epoch:    defaultEpoch,
		drift:    10,
		spin:     100,
		yield:    64,
		ticker:   unixMillis,
	}

	for _, f := range opts {
		f(&l)
	}

	if l.nodeBits < minNodeBits || l.nodeBits > maxNodeBits {
		return Layout{}, errors.Wrapf(ErrNodeBits, "%d bits, supported [%d, %d]",
			l.nodeBits, minNodeBits, maxNodeBits)
	}

	l.seqBits = clockBits - l.nodeBits
	l.maxNode = 1<<l.nodeBits - 1
	l.maxSeq = 1<<l.seqBits - 1

	if l.node > l.maxNode {
		return Layout{}, &InvalidNodeID{Node: l.node, MaxNode: l.maxNode}
	}

	if l.epoch > l.ticker() {
		return Layout{}, errors.Wrapf(ErrEpoch, "epoch at %d ms", l.epoch)
	}

	return l, nil
}

func unixMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// NodeBits returns the width of ⟨𝒏⟩ fraction
func (l Layout) NodeBits() uint64 { return l.nodeBits }

// SeqBits returns the width of ⟨𝒔⟩ fraction
func (l Layout) SeqBits() uint64 { return l.seqBits }

// MaxNode returns the largest ⟨𝒏⟩ node identifier the schema can hold
func (l Layout) MaxNode() uint64 { return l.maxNode }

// MaxSeq returns the largest ⟨𝒔⟩ sequence value of a single millisecond
func (l Layout) MaxSeq() uint64 { return l.maxSeq }

// Epoch returns the zero point of ⟨𝒕⟩ fraction
func (l Layout) Epoch() time.Time { return time.UnixMilli(int64(l.epoch)) }

// millis reads the clock as milliseconds since the epoch. Readings before
// the epoch clamp to zero, the regression check against the generator
// state reports them.
func (l Layout) millis() uint64 {
	if t := l.ticker(); t > l.epoch {
		return t - l.epoch
	}
	return 0
}

// pack assembles the identity from schema fractions
func (l Layout) pack(t, seq uint64) ID {
	return ID((t&maxTimestamp)<<clockBits | l.node<<l.seqBits | seq)
}

/*

Components are schema fractions of a decomposed identity: milliseconds
since the epoch, node identifier and in-millisecond sequence.
*/
type Components struct {
	Time uint64
	Node uint64
	Seq  uint64
}

/*

Lenses of the identity schema

Decomposition is total, it never fails. Taking apart an identity produced
under a different schema yields well-defined but meaningless fractions.
*/

// Time returns ⟨𝒕⟩ timestamp fraction, milliseconds since the epoch
func (l Layout) Time(uid ID) uint64 {
	return uint64(uid) >> clockBits
}

// TimeUnix returns ⟨𝒕⟩ timestamp fraction as unix timestamp
func (l Layout) TimeUnix(uid ID) time.Time {
	return time.UnixMilli(int64(l.epoch + l.Time(uid)))
}

// Node returns ⟨𝒏⟩ node fraction from the identity
func (l Layout) Node(uid ID) uint64 {
	return uint64(uid) >> l.seqBits & l.maxNode
}

// Seq returns ⟨𝒔⟩ sequence fraction from the identity
func (l Layout) Seq(uid ID) uint64 {
	return uint64(uid) & l.maxSeq
}

// Decompose splits the identity into schema fractions
func (l Layout) Decompose(uid ID) Components {
	return Components{
		Time: l.Time(uid),
		Node: l.Node(uid),
		Seq:  l.Seq(uid),
	}
}
