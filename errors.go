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
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNodeBits is returned by NewLayout if ⟨𝒏⟩ width is outside [6, 16]
	ErrNodeBits = errors.New("node bits out of range")

	// ErrEpoch is returned by NewLayout if the epoch lies in the future
	ErrEpoch = errors.New("epoch in the future")

	// ErrBase62 is returned by DecodeBase62 for input that is not
	// a base62 rendering of a 64-bit value
	ErrBase62 = errors.New("invalid base62 value")
)

/*

InvalidNodeID is returned by NewLayout if ⟨𝒏⟩ node identifier does not fit
the configured number of node bits.
*/
type InvalidNodeID struct {
	Node    uint64
	MaxNode uint64
}

func (e *InvalidNodeID) Error() string {
	return fmt.Sprintf("invalid node id %d, layout allows at most %d", e.Node, e.MaxNode)
}

/*

ClockMovedBackwards is returned by Generator.Next if the wall clock has
stepped behind the latest issued timestamp by more than the drift tolerance.
Millis carries the size of the step.

The caller decides the policy: abort, retry after Millis, or alert.
*/
type ClockMovedBackwards struct {
	Millis uint64
}

func (e *ClockMovedBackwards) Error() string {
	return fmt.Sprintf("clock moved backwards by %d ms", e.Millis)
}
