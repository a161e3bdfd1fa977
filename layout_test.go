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

package snowid_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fogfish/it/v2"
	"github.com/fogfish/snowid"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewLayout(t *testing.T) {
	l, err := snowid.NewLayout()

	it.Then(t).
		Should(it.True(err == nil)).
		Should(it.Equal(l.NodeBits(), 10)).
		Should(it.Equal(l.SeqBits(), 12)).
		Should(it.Equal(l.MaxNode(), 1023)).
		Should(it.Equal(l.MaxSeq(), 4095))
}

func TestNodeBitsBoundary(t *testing.T) {
	for _, bits := range []uint64{6, 10, 16} {
		l, err := snowid.NewLayout(snowid.ConfNodeBits(bits))

		it.Then(t).
			Should(it.True(err == nil)).
			Should(it.Equal(l.NodeBits(), bits)).
			Should(it.Equal(l.NodeBits()+l.SeqBits(), 22))
	}

	for _, bits := range []uint64{0, 5, 17, 64} {
		_, err := snowid.NewLayout(snowid.ConfNodeBits(bits))

		it.Then(t).
			Should(it.True(errors.Is(err, snowid.ErrNodeBits)))
	}
}

func TestNodeIDBoundary(t *testing.T) {
	_, err := snowid.NewLayout(
		snowid.ConfNodeBits(10),
		snowid.ConfNodeID(1023),
	)

	it.Then(t).
		Should(it.True(err == nil))

	_, err = snowid.NewLayout(
		snowid.ConfNodeBits(10),
		snowid.ConfNodeID(1024),
	)

	var invalid *snowid.InvalidNodeID
	it.Then(t).
		Should(it.True(errors.As(err, &invalid))).
		Should(it.Equal(invalid.Node, 1024)).
		Should(it.Equal(invalid.MaxNode, 1023))
}

func TestEpochInFuture(t *testing.T) {
	_, err := snowid.NewLayout(
		snowid.ConfEpoch(time.Now().Add(time.Hour)),
	)

	it.Then(t).
		Should(it.True(errors.Is(err, snowid.ErrEpoch)))
}

func TestDecompose(t *testing.T) {
	for _, bits := range []uint64{6, 10, 16} {
		node := uint64(1)<<bits - 1
		seqBits := 22 - bits

		l, err := snowid.NewLayout(
			snowid.ConfNodeBits(bits),
			snowid.ConfNodeID(node),
			snowid.ConfEpoch(epoch),
		)
		it.Then(t).Must(it.True(err == nil))

		uid := snowid.ID(12345<<22 | node<<seqBits | 3)
		parts := l.Decompose(uid)

		it.Then(t).
			Should(it.Equal(parts.Time, 12345)).
			Should(it.Equal(parts.Node, node)).
			Should(it.Equal(parts.Seq, 3)).
			Should(it.Equal(l.Time(uid), 12345)).
			Should(it.Equal(l.Node(uid), node)).
			Should(it.Equal(l.Seq(uid), 3))
	}
}

func TestDecomposeZero(t *testing.T) {
	l, err := snowid.NewLayout(snowid.ConfEpoch(epoch))

	it.Then(t).
		Should(it.True(err == nil)).
		Should(it.Equal(l.Decompose(0), snowid.Components{}))
}

func TestTimeUnix(t *testing.T) {
	l, err := snowid.NewLayout(snowid.ConfEpoch(epoch))

	uid := snowid.ID(1000 << 22)

	it.Then(t).
		Should(it.True(err == nil)).
		Should(it.Equal(l.Epoch().UnixMilli(), epoch.UnixMilli())).
		Should(it.True(l.TimeUnix(uid).Equal(epoch.Add(time.Second))))
}
