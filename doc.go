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

/*

Package snowid generates k-ordered unique 64-bit identifiers in lock-free
and decentralized manner for Golang applications. It is a Snowflake-style
scheme: identity allocation requires neither centralized authority nor
coordination with other nodes, identities are roughly sortable by
allocation order and collision-free across nodes as long as each node is
assigned a distinct identifier.

Identity Schema

An identity is a triple ⟨𝒕, 𝒏, 𝒔⟩ packed most-significant-first into
64 bits:

  42 bit                      n bit     22 - n bit
  |-------------------------|---------|----------|
             ⟨𝒕⟩                ⟨𝒏⟩        ⟨𝒔⟩

↣ ⟨𝒕⟩ is a 42-bit timestamp with millisecond precision, measured from a
configurable epoch. The width covers about 139 years.

↣ ⟨𝒏⟩ is a node identifier of configurable width, 6 to 16 bits. It is
assigned by the application, the library does not coordinate assignment
across processes.

↣ ⟨𝒔⟩ takes the remaining 22 - n bits, a per-millisecond sequence
disambiguating identities issued within the same millisecond on one node.

The schema is built once with NewLayout and shared read-only by the
generator and the decomposition lenses:

  layout, err := snowid.NewLayout(
    snowid.ConfNodeBits(10),
    snowid.ConfNodeID(5),
    snowid.ConfEpoch(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
  )

Generation

Generator issues identities for one node, any number of goroutines share a
single instance:

  g := snowid.New(layout)
  uid, err := g.Next()

The common case costs a single atomic increment, no locks, no allocation.
When a millisecond exhausts its sequence space the call waits, spinning
then yielding, for the next millisecond. A clock stepping backwards beyond
the configured drift tolerance fails the call with ClockMovedBackwards,
smaller steps are absorbed as jitter. Identities issued by one instance
are strictly increasing in the order the calls complete.

Text Form

EncodeBase62 and DecodeBase62 give a compact reversible rendering of an
identity, at most 11 characters of 0-9A-Za-z. ID implements Stringer and
JSON marshaling in this form.

*/
package snowid
