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
	"github.com/rejkowic/avm-semantics/protocol"
)

// Header captures the fields common to every transaction type.
type Header struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Sender      basics.Address    `codec:"snd"`
	Fee         basics.MicroAlgos `codec:"fee"`
	FirstValid  basics.Round      `codec:"fv"`
	LastValid   basics.Round      `codec:"lv"`
	Note        []byte            `codec:"note"`
	GenesisID   string            `codec:"gen"`
	GenesisHash []byte            `codec:"gh"`

	// Group is the id of the transaction group this transaction belongs
	// to, empty when the transaction is not grouped.
	Group []byte `codec:"grp"`

	Lease   []byte         `codec:"lx"`
	RekeyTo basics.Address `codec:"rekey"`
}

// Transaction describes a transaction that can appear in a block.
type Transaction struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// Type of transaction
	Type protocol.TxType `codec:"type"`

	// Common fields for all types of transactions
	Header

	// Fields for different types of transactions
	PaymentTxnFields
	AssetTransferTxnFields
	ApplicationCallTxnFields
}

// ApplyData contains information about the transaction's execution.
type ApplyData struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	// If asa or app is being created, the id used. Else 0.
	ConfigAsset   basics.AssetIndex `codec:"caid"`
	ApplicationID basics.AppIndex   `codec:"apid"`

	// Scratch holds the scratch space values left behind by the approval
	// program, keyed by slot.
	Scratch map[uint64]string `codec:"scr"`

	// InnerTxns are the ids of the inner transactions the transaction
	// spawned.
	InnerTxns []uint64 `codec:"itx"`

	LogSize uint64   `codec:"lgs"`
	Logs    []string `codec:"lg"`
}

// Equal reports whether two ApplyDatas carry the same effects.
func (ad ApplyData) Equal(o ApplyData) bool {
	if ad.ConfigAsset != o.ConfigAsset || ad.ApplicationID != o.ApplicationID || ad.LogSize != o.LogSize {
		return false
	}
	if len(ad.Scratch) != len(o.Scratch) || len(ad.InnerTxns) != len(o.InnerTxns) || len(ad.Logs) != len(o.Logs) {
		return false
	}
	for k, v := range ad.Scratch {
		if o.Scratch[k] != v {
			return false
		}
	}
	for i := range ad.InnerTxns {
		if ad.InnerTxns[i] != o.InnerTxns[i] {
			return false
		}
	}
	for i := range ad.Logs {
		if ad.Logs[i] != o.Logs[i] {
			return false
		}
	}
	return true
}
