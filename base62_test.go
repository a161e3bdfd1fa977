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
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/fogfish/it/v2"
	"github.com/fogfish/snowid"
)

func TestBase62RoundTrip(t *testing.T) {
	for _, v := range []uint64{
		0, 1, 61, 62, 63, 123, 3843, 1234567890,
		math.MaxUint64 / 2, math.MaxUint64,
	} {
		val := snowid.EncodeBase62(snowid.ID(v))
		uid, err := snowid.DecodeBase62(val)

		it.Then(t).
			Should(it.True(err == nil)).
			Should(it.True(len(val) <= 11)).
			Should(it.Equal(uid, snowid.ID(v)))
	}
}

func TestBase62Encoding(t *testing.T) {
	spec := map[uint64]string{
		0:              "0",
		1:              "1",
		61:             "z",
		62:             "10",
		3843:           "zz",
		math.MaxUint64: "LygHa16AHYF",
	}

	for v, expect := range spec {
		it.Then(t).
			Should(it.Equal(snowid.EncodeBase62(snowid.ID(v)), expect))
	}
}

func TestBase62DecodeRejects(t *testing.T) {
	for _, val := range []string{
		"",
		"abc!def",
		"лед",
		"aaaaaaaaaaaa", // 12 characters, beyond any 64-bit value
		"zzzzzzzzzzz",  // 11 characters, overflows 64 bits
	} {
		_, err := snowid.DecodeBase62(val)

		it.Then(t).
			Should(it.True(errors.Is(err, snowid.ErrBase62)))
	}

	// the largest decodable numeral is accepted at full length
	uid, err := snowid.DecodeBase62("LygHa16AHYF")
	it.Then(t).
		Should(it.True(err == nil)).
		Should(it.Equal(uid, snowid.ID(math.MaxUint64)))
}

func TestBase62OfGenerated(t *testing.T) {
	l, err := snowid.NewLayout(snowid.ConfNodeID(42))
	it.Then(t).Must(it.True(err == nil))

	g := snowid.New(l)
	for i := 0; i < 10; i++ {
		uid, err := g.Next()
		it.Then(t).Must(it.True(err == nil))

		decoded, err := snowid.DecodeBase62(uid.String())

		it.Then(t).
			Should(it.True(err == nil)).
			Should(it.True(len(uid.String()) <= 11)).
			Should(it.Equal(decoded, uid)).
			Should(it.Equal(l.Node(decoded), 42))
	}
}

func TestBase62JSON(t *testing.T) {
	uid := snowid.ID(1234567890)

	b, err := json.Marshal(uid)
	it.Then(t).
		Should(it.True(err == nil)).
		Should(it.Equal(string(b), `"1LY7VK"`))

	var decoded snowid.ID
	err = json.Unmarshal(b, &decoded)
	it.Then(t).
		Should(it.True(err == nil)).
		Should(it.Equal(decoded, uid))

	it.Then(t).
		Should(it.True(json.Unmarshal([]byte(`"no-$"`), &decoded) != nil)).
		Should(it.True(json.Unmarshal([]byte(`42`), &decoded) != nil))
}
