// Copyright (C) 2022-2023 Algorand, Inc.
// This file is part of avm-semantics
//
// avm-semantics is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// avm-semantics is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with avm-semantics.  If not, see <https://www.gnu.org/licenses/>.

package adaptors

import (
	"encoding/base64"
	"fmt"

	"github.com/rejkowic/avm-semantics/data/models"
)

// SplitTealKeyValues splits a raw algod global-state list into a
// bytes-keyed-to-bytes mapping and a bytes-keyed-to-uint mapping. Keys are
// assumed distinct between the two by source convention; this is not
// enforced. Keys and byte values arrive base64-encoded and are decoded to
// raw bytes.
func SplitTealKeyValues(kvs []models.TealKeyValue) (map[string]string, map[string]uint64, error) {
	byteValues := make(map[string]string)
	uintValues := make(map[string]uint64)
	for _, kv := range kvs {
		key, err := base64.StdEncoding.DecodeString(kv.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("key %q is not valid base64: %w", kv.Key, err)
		}
		switch kv.Value.Type {
		case models.TealValueBytes:
			value, err := base64.StdEncoding.DecodeString(kv.Value.Bytes)
			if err != nil {
				return nil, nil, fmt.Errorf("value for key %q is not valid base64: %w", kv.Key, err)
			}
			byteValues[string(key)] = string(value)
		case models.TealValueUint:
			uintValues[string(key)] = kv.Value.Uint
		default:
			return nil, nil, fmt.Errorf("value for key %q has unsupported type %d", kv.Key, kv.Value.Type)
		}
	}
	return byteValues, uintValues, nil
}
