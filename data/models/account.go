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

// Package models holds the algod-shaped records the adaptor layer consumes
// and produces. Field keys are the literal algod REST API names.
package models

// Account mirrors the algod account record.
type Account struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Address        string `codec:"address"`
	Amount         uint64 `codec:"amount"`
	Round          uint64 `codec:"round"`
	PendingRewards uint64 `codec:"pending-rewards"`
	Rewards        uint64 `codec:"rewards"`
	Status         uint64 `codec:"status"`
	AuthAddr       string `codec:"auth-addr"`

	// MinBalance is a pointer so that an absent field can be told apart
	// from an explicit zero and defaulted separately.
	MinBalance *uint64 `codec:"min-balance"`

	CreatedApps    []Application           `codec:"created-apps"`
	AppsLocalState []ApplicationLocalState `codec:"apps-local-state"`
	CreatedAssets  []Asset                 `codec:"created-assets"`
	Assets         []AssetHolding          `codec:"assets"`
	Boxes          []Box                   `codec:"boxes"`
}

// Box is a single name-value entry of an account's box storage.
type Box struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Name  string `codec:"name"`
	Value string `codec:"value"`
}
