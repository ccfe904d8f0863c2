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

package transactions

import (
	"github.com/rejkowic/avm-semantics/data/basics"
)

// OnCompletion is an enum representing some layer 1 side effect that an
// ApplicationCall transaction will have if it is included in a block.
type OnCompletion uint64

const (
	// NoOpOC indicates that an application transaction will simply call its
	// ApprovalProgram
	NoOpOC OnCompletion = 0

	// OptInOC indicates that an application transaction will allocate some
	// LocalState for the application in the sender's account
	OptInOC OnCompletion = 1

	// CloseOutOC indicates that an application transaction will deallocate
	// some LocalState for the application from the user's account
	CloseOutOC OnCompletion = 2

	// ClearStateOC is similar to CloseOutOC, but may never fail. This
	// allows users to reclaim their minimum balance from an application
	// they no longer wish to opt in to.
	ClearStateOC OnCompletion = 3

	// UpdateApplicationOC indicates that an application transaction will
	// update the ApprovalProgram and ClearStateProgram for the application
	UpdateApplicationOC OnCompletion = 4

	// DeleteApplicationOC indicates that an application transaction will
	// delete the AppParams for the application from the creator's balance
	// record
	DeleteApplicationOC OnCompletion = 5
)

// ApplicationCallTxnFields captures the transaction fields used for all
// interactions with applications
type ApplicationCallTxnFields struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// ApplicationID is 0 when creating an application, and nonzero when
	// calling an existing application.
	ApplicationID basics.AppIndex `codec:"apid"`

	// OnCompletion specifies an optional side-effect that this transaction
	// will have on the balance record of the sender or the application's
	// creator.
	OnCompletion OnCompletion `codec:"apan"`

	// ApplicationArgs are arguments accessible to the executing
	// ApprovalProgram or ClearStateProgram.
	ApplicationArgs [][]byte `codec:"apaa"`

	// Accounts are accounts whose balance records are accessible
	// by the executing ApprovalProgram or ClearStateProgram.
	Accounts []basics.Address `codec:"apat"`

	// ForeignApps are application IDs for applications besides this one
	// whose GlobalState (or Local, since v4) may be read by the executing
	// ApprovalProgram or ClearStateProgram.
	ForeignApps []basics.AppIndex `codec:"apfa"`

	// ForeignAssets are asset IDs for assets whose AssetParams
	// (and since v4, Holdings) may be read by the executing
	// ApprovalProgram or ClearStateProgram.
	ForeignAssets []basics.AssetIndex `codec:"apas"`

	// LocalStateSchema specifies the maximum number of each type that may
	// appear in the local key/value store of users who opt in to this
	// application. This field is only used during application creation.
	LocalStateSchema basics.StateSchema `codec:"apls"`

	// GlobalStateSchema specifies the maximum number of each type that may
	// appear in the global key/value store associated with this
	// application. This field is only used during application creation.
	GlobalStateSchema basics.StateSchema `codec:"apgs"`

	// ApprovalProgram is the assembled TEAL program that approves or
	// rejects transactions that access this application.
	ApprovalProgram []byte `codec:"apap"`

	// ClearStateProgram is the assembled TEAL program that runs when a
	// ClearState transaction executes.
	ClearStateProgram []byte `codec:"apsu"`

	// ExtraProgramPages specifies the additional app program size requested
	// in pages.
	ExtraProgramPages uint32 `codec:"apep"`
}

// Empty reports whether the ApplicationCallTxnFields are all zero,
// in other words, whether this is not an application call at all.
func (ac *ApplicationCallTxnFields) Empty() bool {
	if ac.ApplicationID != 0 || ac.OnCompletion != 0 || ac.ApplicationArgs != nil ||
		ac.Accounts != nil || ac.ForeignApps != nil || ac.ForeignAssets != nil ||
		ac.LocalStateSchema != (basics.StateSchema{}) || ac.GlobalStateSchema != (basics.StateSchema{}) ||
		ac.ApprovalProgram != nil || ac.ClearStateProgram != nil || ac.ExtraProgramPages != 0 {
		return false
	}
	return true
}
