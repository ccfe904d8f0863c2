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
	"github.com/rejkowic/avm-semantics/data/basics"
	"github.com/rejkowic/avm-semantics/data/models"
	"github.com/rejkowic/avm-semantics/data/transactions"
	"github.com/rejkowic/avm-semantics/kast"
)

// ApplyDataFromTerm reads the post-execution effects out of an executed
// transaction term. Scratch space, inner transactions and log payloads are
// not reconstructed yet.
func ApplyDataFromTerm(term kast.KInner) (transactions.ApplyData, error) {
	var ad transactions.ApplyData

	_, cells, err := kast.SplitConfig(term)
	if err != nil {
		return ad, err
	}

	configAsset, err := uintField(cells, "TXCONFIGASSET_CELL")
	if err != nil {
		return ad, err
	}
	applicationID, err := uintField(cells, "TXAPPLICATIONID_CELL")
	if err != nil {
		return ad, err
	}
	logSize, err := uintField(cells, "LOGSIZE_CELL")
	if err != nil {
		return ad, err
	}

	ad.ConfigAsset = basics.AssetIndex(configAsset)
	ad.ApplicationID = basics.AppIndex(applicationID)
	ad.LogSize = logSize
	return ad, nil
}

// PendingTransactionResponse summarizes an executed transaction's status
// purely from its attached apply data.
func PendingTransactionResponse(ad transactions.ApplyData) models.PendingTransactionResponse {
	return models.PendingTransactionResponse{
		AssetIndex:       uint64(ad.ConfigAsset),
		ApplicationIndex: uint64(ad.ApplicationID),
		ConfirmedRound:   1,
		Logs:             ad.Logs,
		InnerTxns:        ad.InnerTxns,
	}
}
