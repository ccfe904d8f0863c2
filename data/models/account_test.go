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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rejkowic/avm-semantics/protocol"
)

func TestAccountDecode(t *testing.T) {
	blob := []byte(`{
  "address": "PNZUXEM65DCIOGNG6NBXWENXSJBVBBSJCVZ4OXTFVRBIFYLROBLIC6D7GI",
  "amount": 5000000,
  "round": 17,
  "status": 1,
  "created-assets": [
    {
      "index": 7,
      "params": {
        "name": "gold",
        "unit-name": "oz",
        "total": 1000000,
        "decimals": 3
      }
    }
  ],
  "assets": [
    {
      "asset-id": 7,
      "amount": 250,
      "is-frozen": true
    }
  ]
}`)

	var acct Account
	require.NoError(t, protocol.DecodeJSON(blob, &acct))

	require.Equal(t, uint64(5000000), acct.Amount)
	require.Equal(t, uint64(17), acct.Round)
	require.Equal(t, uint64(1), acct.Status)
	// min-balance absent in the blob, not zero
	require.Nil(t, acct.MinBalance)

	require.Len(t, acct.CreatedAssets, 1)
	require.Equal(t, uint64(7), acct.CreatedAssets[0].Index)
	require.Equal(t, "gold", acct.CreatedAssets[0].Params.Name)
	require.Equal(t, uint64(1000000), acct.CreatedAssets[0].Params.Total)

	require.Len(t, acct.Assets, 1)
	require.Equal(t, uint64(7), acct.Assets[0].AssetID)
	require.True(t, acct.Assets[0].IsFrozen)
}

func TestAccountDecodeExplicitMinBalance(t *testing.T) {
	blob := []byte(`{"address": "a", "min-balance": 0}`)

	var acct Account
	require.NoError(t, protocol.DecodeJSON(blob, &acct))
	require.NotNil(t, acct.MinBalance)
	require.Equal(t, uint64(0), *acct.MinBalance)
}

func TestAccountDecodeRejectsUnknownField(t *testing.T) {
	blob := []byte(`{"address": "a", "no-such-field": 1}`)

	var acct Account
	require.Error(t, protocol.DecodeJSON(blob, &acct))
}

func TestAccountEncodeRoundTrip(t *testing.T) {
	minBalance := uint64(100000)
	acct := Account{
		Address:    "addr",
		Amount:     42,
		MinBalance: &minBalance,
		CreatedApps: []Application{
			{
				ID: 9,
				Params: ApplicationParams{
					ApprovalProgram:   "approval.teal",
					ClearStateProgram: "clear.teal",
					GlobalStateSchema: &ApplicationSchema{NumUint: 1},
				},
			},
		},
	}

	var decoded Account
	require.NoError(t, protocol.DecodeJSON(protocol.EncodeJSON(acct), &decoded))
	require.Equal(t, acct, decoded)
}
