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

package models

// Asset mirrors the algod asset record.
type Asset struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Index  uint64      `codec:"index"`
	Params AssetParams `codec:"params"`
}

// AssetParams carries the configuration of an asset. The four role addresses
// are checksummed address strings and are re-encoded as raw bytes when the
// asset term is built.
type AssetParams struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Name          string `codec:"name"`
	UnitName      string `codec:"unit-name"`
	Total         uint64 `codec:"total"`
	Decimals      uint64 `codec:"decimals"`
	DefaultFrozen bool   `codec:"default-frozen"`
	URL           string `codec:"url"`
	MetadataHash  string `codec:"metadata-hash"`
	Manager       string `codec:"manager"`
	Reserve       string `codec:"reserve"`
	Freeze        string `codec:"freeze"`
	Clawback      string `codec:"clawback"`
}

// AssetHolding describes an account's position in an asset it opted in to.
type AssetHolding struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	AssetID  uint64 `codec:"asset-id"`
	Amount   uint64 `codec:"amount"`
	IsFrozen bool   `codec:"is-frozen"`
}
