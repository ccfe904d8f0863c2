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

package kavm

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/rejkowic/avm-semantics/data/basics"
	"github.com/rejkowic/avm-semantics/kast"
)

// TValue tokens are the typed scalar values of the AVM semantics'
// transaction representation. Absent optional fields are rendered as the
// NoTValue token.

// NoTValue is the token for an absent optional transaction value.
func NoTValue() kast.KInner {
	return kast.KToken{Token: "NoTValue", Sort: "MaybeTValue"}
}

// TUInt renders an unsigned integer transaction value.
func TUInt(v uint64) kast.KInner {
	return kast.KToken{Token: strconv.FormatUint(v, 10), Sort: "TUInt64"}
}

// TBytes renders a byte-array transaction value as a quoted base64 token.
func TBytes(b []byte) kast.KInner {
	return kast.KToken{Token: strconv.Quote(base64.StdEncoding.EncodeToString(b)), Sort: "TBytes"}
}

// MaybeTBytes renders bytes, or NoTValue when empty.
func MaybeTBytes(b []byte) kast.KInner {
	if len(b) == 0 {
		return NoTValue()
	}
	return TBytes(b)
}

// TString renders a textual transaction value as a quoted token.
func TString(s string) kast.KInner {
	return kast.KToken{Token: strconv.Quote(s), Sort: "TString"}
}

// MaybeTString renders a string, or NoTValue when empty.
func MaybeTString(s string) kast.KInner {
	if s == "" {
		return NoTValue()
	}
	return TString(s)
}

// TAddressLiteral renders an address as an unquoted address literal token.
func TAddressLiteral(addr basics.Address) kast.KInner {
	return kast.KToken{Token: addr.String(), Sort: "TAddressLiteral"}
}

// MaybeTAddress renders an address literal, or NoTValue for the zero address.
func MaybeTAddress(addr basics.Address) kast.KInner {
	if addr.IsZero() {
		return NoTValue()
	}
	return TAddressLiteral(addr)
}

// TValueList right-folds transaction values into a TValueList term, the
// `.TValueList` unit when empty.
func TValueList(items []kast.KInner) kast.KInner {
	unit := kast.KInner(kast.KToken{Token: ".TValueList", Sort: "TValueList"})
	return kast.BuildAssoc(unit, "_TValueList_", items)
}

// TUIntList renders a list of unsigned integers as a TValueList.
func TUIntList(vs []uint64) kast.KInner {
	items := make([]kast.KInner, len(vs))
	for i, v := range vs {
		items[i] = TUInt(v)
	}
	return TValueList(items)
}

// TBytesList renders a list of byte arrays as a TValueList.
func TBytesList(bs [][]byte) kast.KInner {
	items := make([]kast.KInner, len(bs))
	for i, b := range bs {
		items[i] = TBytes(b)
	}
	return TValueList(items)
}

// BytesToken renders raw bytes as a K Bytes token, `b"..."` with every byte
// hex-escaped.
func BytesToken(b []byte) kast.KInner {
	token := make([]byte, 0, 2*len(b)+3)
	token = append(token, 'b', '"')
	for _, c := range b {
		token = append(token, fmt.Sprintf(`\x%02x`, c)...)
	}
	token = append(token, '"')
	return kast.KToken{Token: string(token), Sort: "Bytes"}
}

// AddressBytes renders an address as the raw-bytes token the semantics
// stores account and asset role addresses as.
func AddressBytes(addr basics.Address) kast.KInner {
	return BytesToken(addr[:])
}
