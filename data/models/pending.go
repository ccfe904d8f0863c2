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

// PendingTransactionResponse summarizes the status of an executed
// transaction, in the shape algod reports for pending transactions. It is
// derived purely from previously attached apply data.
type PendingTransactionResponse struct {
	_struct struct{} `codec:",omitemptyarray"`

	AssetIndex         uint64   `codec:"asset-index"`
	ApplicationIndex   uint64   `codec:"application-index"`
	CloseRewards       uint64   `codec:"close-rewards"`
	ClosingAmount      uint64   `codec:"closing-amount"`
	AssetClosingAmount uint64   `codec:"asset-closing-amount"`
	ConfirmedRound     uint64   `codec:"confirmed-round"`
	ReceiverRewards    uint64   `codec:"receiver-rewards"`
	SenderRewards      uint64   `codec:"sender-rewards"`
	LocalStateDelta    []string `codec:"local-state-delta"`
	GlobalStateDelta   []string `codec:"global-state-delta"`
	Logs               []string `codec:"logs"`
	InnerTxns          []uint64 `codec:"inner-txns"`
	Txn                []byte   `codec:"txn"`
}
