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

package protocol

import "fmt"

// TxType is the type of the transaction written to the ledger
type TxType string

const (
	// PaymentTx is the TxType for payment transactions
	PaymentTx TxType = "pay"

	// KeyRegistrationTx is the TxType for key registration transactions
	KeyRegistrationTx TxType = "keyreg"

	// AssetConfigTx creates, re-configures, or destroys an asset
	AssetConfigTx TxType = "acfg"

	// AssetTransferTx transfers assets between accounts
	AssetTransferTx TxType = "axfer"

	// AssetFreezeTx changes the freeze status of an asset
	AssetFreezeTx TxType = "afrz"

	// ApplicationCallTx allows creating, deleting, and interacting with an application
	ApplicationCallTx TxType = "appl"

	// UnknownTx signals an error
	UnknownTx TxType = "unknown"
)

// TypeEnum returns the numeric type code the AVM semantics uses for a
// transaction type tag.
func (tt TxType) TypeEnum() (uint64, error) {
	switch tt {
	case UnknownTx:
		return 0, nil
	case PaymentTx:
		return 1, nil
	case KeyRegistrationTx:
		return 2, nil
	case AssetConfigTx:
		return 3, nil
	case AssetTransferTx:
		return 4, nil
	case AssetFreezeTx:
		return 5, nil
	case ApplicationCallTx:
		return 6, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %s", tt)
	}
}
