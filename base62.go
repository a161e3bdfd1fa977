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
	"encoding/json"
	"math"

	"github.com/pkg/errors"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// the longest base62 rendering of a 64-bit value, len(encode(2^64 - 1))
const maxEncoded = 11

/*

EncodeBase62 renders the identity as a base62 numeral, most significant
digit first, alphabet 0-9A-Za-z, no padding. The rendering is at most
11 characters long.
*/
func EncodeBase62(uid ID) string {
	if uid == 0 {
		return "0"
	}

	var b [maxEncoded]byte
	i := len(b)
	for v := uint64(uid); v > 0; v /= 62 {
		i--
		b[i] = alphabet[v%62]
	}
	return string(b[i:])
}

/*

DecodeBase62 is inverse to EncodeBase62. It fails with ErrBase62 for empty
input, input longer than 11 characters, characters outside the alphabet or
a numeral overflowing 64 bits.
*/
func DecodeBase62(val string) (ID, error) {
	if len(val) == 0 {
		return 0, errors.Wrap(ErrBase62, "empty input")
	}
	if len(val) > maxEncoded {
		return 0, errors.Wrapf(ErrBase62, "%q longer than %d characters", val, maxEncoded)
	}

	uid := uint64(0)
	for i := 0; i < len(val); i++ {
		var d uint64
		switch x := val[i]; {
		case x >= '0' && x <= '9':
			d = uint64(x - '0')
		case x >= 'A' && x <= 'Z':
			d = uint64(x-'A') + 10
		case x >= 'a' && x <= 'z':
			d = uint64(x-'a') + 36
		default:
			return 0, errors.Wrapf(ErrBase62, "character %q at position %d", x, i)
		}

		if uid > (math.MaxUint64-d)/62 {
			return 0, errors.Wrapf(ErrBase62, "%q overflows 64 bits", val)
		}
		uid = uid*62 + d
	}

	return ID(uid), nil
}

// String renders the identity as base62 numeral
func (uid ID) String() string {
	return EncodeBase62(uid)
}

/*

MarshalJSON encodes the identity to base62 JSON string
*/
func (uid ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeBase62(uid))
}

/*

UnmarshalJSON decodes base62 JSON string to the identity
*/
func (uid *ID) UnmarshalJSON(b []byte) error {
	var val string
	if err := json.Unmarshal(b, &val); err != nil {
		return err
	}

	v, err := DecodeBase62(val)
	if err != nil {
		return err
	}

	*uid = v
	return nil
}
