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

package basics

type (
	// Round represents a protocol round index
	Round uint64

	// AppIndex is the unique integer index of an application that can be used
	// to look up the creator of the application
	AppIndex uint64

	// AssetIndex is the unique integer index of an asset that can be used to
	// look up the creator of the asset
	AssetIndex uint64

	// MicroAlgos is our unit of currency
	MicroAlgos uint64
)

// MinBalance is the minimum balance requirement substituted for accounts that
// do not report one.
const MinBalance = MicroAlgos(100000)
