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
	"crypto/sha512"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rejkowic/avm-semantics/data/basics"
	"github.com/rejkowic/avm-semantics/data/models"
	"github.com/rejkowic/avm-semantics/kast"
	"github.com/rejkowic/avm-semantics/kavm"
)

// stubParser serves canned program terms by path and never shells out.
type stubParser struct {
	programs map[string]kast.KInner
	err      error
}

func (p stubParser) ParseTeal(path string) (kast.KInner, error) {
	if p.err != nil {
		return nil, p.err
	}
	term, ok := p.programs[path]
	if !ok {
		return nil, errors.New("no such program " + path)
	}
	return term, nil
}

func (p stubParser) ParseTealSource(src string) (kast.KInner, error) {
	if p.err != nil {
		return nil, p.err
	}
	return kavm.TrivialProgram(1), nil
}

func testFactory(parser TealParser) *TermFactory {
	if parser == nil {
		parser = stubParser{}
	}
	return NewTermFactory(kavm.Definition{}, parser)
}

func addressFromSeed(seed string) basics.Address {
	return basics.Address(sha512.Sum512_256([]byte(seed)))
}

func cellsOf(t *testing.T, term kast.KInner) kast.Subst {
	t.Helper()
	_, cells, err := kast.SplitConfig(term)
	require.NoError(t, err)
	return cells
}

func TestAssetCell(t *testing.T) {
	manager := addressFromSeed("manager")
	asset := models.Asset{
		Index: 7,
		Params: models.AssetParams{
			Name:     "gold",
			UnitName: "oz",
			Total:    1000000,
			Decimals: 3,
			URL:      "https://example.com",
			Manager:  manager.String(),
		},
	}

	term, err := testFactory(nil).AssetCell(asset, nil)
	require.NoError(t, err)

	cells := cellsOf(t, term)
	require.True(t, kast.Equal(kast.IntToken(7), cells["ASSETID_CELL"]))
	require.True(t, kast.Equal(kast.StringToken("gold"), cells["ASSETNAME_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(1000000), cells["ASSETTOTAL_CELL"]))
	require.True(t, kast.Equal(kavm.AddressBytes(manager), cells["ASSETMANAGERADDR_CELL"]))
	// Unset role addresses become the empty bytes token, not an error.
	require.True(t, kast.Equal(kavm.BytesToken(nil), cells["ASSETRESERVEADDR_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(0), cells["ASSETDEFAULTFROZEN_CELL"]))
}

func TestAssetCellRejectsMalformedRoleAddress(t *testing.T) {
	asset := models.Asset{
		Index:  7,
		Params: models.AssetParams{Manager: "notanaddress"},
	}
	_, err := testFactory(nil).AssetCell(asset, nil)
	require.Error(t, err)
}

func TestAssetCellOverridesWin(t *testing.T) {
	asset := models.Asset{Index: 7, Params: models.AssetParams{Total: 100}}
	overrides := kast.Subst{"ASSETTOTAL_CELL": kast.IntToken(999)}

	term, err := testFactory(nil).AssetCell(asset, overrides)
	require.NoError(t, err)

	cells := cellsOf(t, term)
	require.True(t, kast.Equal(kast.IntToken(999), cells["ASSETTOTAL_CELL"]))
}

func TestOptInAssetCell(t *testing.T) {
	holding := models.AssetHolding{AssetID: 3, Amount: 250, IsFrozen: true}

	term, err := testFactory(nil).OptInAssetCell(holding, nil)
	require.NoError(t, err)

	cells := cellsOf(t, term)
	require.True(t, kast.Equal(kast.IntToken(3), cells["OPTINASSETID_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(250), cells["OPTINASSETBALANCE_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(1), cells["OPTINASSETFROZEN_CELL"]))
}

func TestAppCell(t *testing.T) {
	tealDir := "teal"
	approval := kavm.TrivialProgram(42)
	clear := kavm.TrivialProgram(43)
	parser := stubParser{programs: map[string]kast.KInner{
		filepath.Join(tealDir, "approval.teal"): approval,
		filepath.Join(tealDir, "clear.teal"):    clear,
	}}

	app := models.Application{
		ID: 11,
		Params: models.ApplicationParams{
			ApprovalProgram:   "approval.teal",
			ClearStateProgram: "clear.teal",
			GlobalStateSchema: &models.ApplicationSchema{NumUint: 2, NumByteSlice: 1},
			GlobalState: []models.TealKeyValue{
				{Key: "Y291bnRlcg==", Value: models.TealValue{Type: models.TealValueUint, Uint: 5}},
			},
			ExtraProgramPages: 1,
		},
	}

	term, err := testFactory(parser).AppCell(app, tealDir, nil)
	require.NoError(t, err)

	cells := cellsOf(t, term)
	require.True(t, kast.Equal(kast.IntToken(11), cells["APPID_CELL"]))
	require.True(t, kast.Equal(approval, cells["APPROVALPGMSRC_CELL"]))
	require.True(t, kast.Equal(clear, cells["CLEARSTATEPGMSRC_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(2), cells["GLOBALNUMINTS_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(1), cells["GLOBALNUMBYTES_CELL"]))
	// No local schema supplied: counters default to zero.
	require.True(t, kast.Equal(kast.IntToken(0), cells["LOCALNUMINTS_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(0), cells["LOCALNUMBYTES_CELL"]))
	require.True(t, kast.Equal(kast.MapBytesInts(map[string]uint64{"counter": 5}), cells["GLOBALINTS_CELL"]))
	require.True(t, kast.Equal(kast.MapUnit(), cells["GLOBALBYTES_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(1), cells["EXTRAPAGES_CELL"]))
}

func TestAppCellProgramFailureKeepsTerm(t *testing.T) {
	app := models.Application{
		ID: 11,
		Params: models.ApplicationParams{
			ApprovalProgram:   "missing.teal",
			ClearStateProgram: "also-missing.teal",
		},
	}

	term, err := testFactory(stubParser{}).AppCell(app, "teal", nil)
	require.Error(t, err)
	require.NotNil(t, term)

	// Both programs fall back to the trivial placeholder; the rest of the
	// cell is intact.
	cells := cellsOf(t, term)
	require.True(t, kast.Equal(kavm.TrivialProgram(0), cells["APPROVALPGMSRC_CELL"]))
	require.True(t, kast.Equal(kavm.TrivialProgram(0), cells["CLEARSTATEPGMSRC_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(11), cells["APPID_CELL"]))
}

func TestOptInAppCellNotImplemented(t *testing.T) {
	_, err := testFactory(nil).OptInAppCell(models.ApplicationLocalState{ID: 1}, nil)
	require.ErrorIs(t, err, ErrOptInAppNotImplemented)
}

func TestAccountCellEmptyCollections(t *testing.T) {
	addr := addressFromSeed("account")
	acct := models.Account{
		Address: addr.String(),
		Amount:  5000000,
		Round:   17,
		Status:  1,
	}

	term, err := testFactory(nil).AccountCell(acct, "teal", nil)
	require.NoError(t, err)

	cells := cellsOf(t, term)
	require.True(t, kast.Equal(kavm.AddressBytes(addr), cells["ADDRESS_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(5000000), cells["BALANCE_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(17), cells["ROUND_CELL"]))
	require.True(t, kast.Equal(kast.IntToken(1), cells["STATUS_CELL"]))
	// No auth-addr set: the key cell holds the account's own address.
	require.True(t, kast.Equal(kavm.AddressBytes(addr), cells["KEY_CELL"]))
	// Absent min-balance defaults to the protocol minimum.
	require.True(t, kast.Equal(kast.IntToken(uint64(basics.MinBalance)), cells["MINBALANCE_CELL"]))
	// Empty collections are the bag units of their sorts.
	require.True(t, kast.Equal(kavm.BagUnit("AppMapCell"), cells["APPSCREATED_CELL"]))
	require.True(t, kast.Equal(kavm.BagUnit("OptInAppMapCell"), cells["APPSOPTEDIN_CELL"]))
	require.True(t, kast.Equal(kavm.BagUnit("AssetMapCell"), cells["ASSETSCREATED_CELL"]))
	require.True(t, kast.Equal(kavm.BagUnit("OptInAssetMapCell"), cells["ASSETSOPTEDIN_CELL"]))
	require.True(t, kast.Equal(kavm.BagUnit("BoxMapCell"), cells["BOXES_CELL"]))
}

func TestAccountCellExplicitMinBalanceAndAuthAddr(t *testing.T) {
	addr := addressFromSeed("account")
	authAddr := addressFromSeed("auth")
	minBalance := uint64(300000)
	acct := models.Account{
		Address:    addr.String(),
		AuthAddr:   authAddr.String(),
		MinBalance: &minBalance,
	}

	term, err := testFactory(nil).AccountCell(acct, "teal", nil)
	require.NoError(t, err)

	cells := cellsOf(t, term)
	require.True(t, kast.Equal(kast.IntToken(300000), cells["MINBALANCE_CELL"]))
	require.True(t, kast.Equal(kavm.AddressBytes(authAddr), cells["KEY_CELL"]))
}

func TestAccountCellCollections(t *testing.T) {
	addr := addressFromSeed("account")
	acct := models.Account{
		Address: addr.String(),
		CreatedAssets: []models.Asset{
			{Index: 1, Params: models.AssetParams{Name: "a"}},
			{Index: 2, Params: models.AssetParams{Name: "b"}},
		},
		Assets: []models.AssetHolding{
			{AssetID: 3, Amount: 10},
			{AssetID: 4, Amount: 20},
		},
	}

	f := testFactory(nil)
	term, err := f.AccountCell(acct, "teal", nil)
	require.NoError(t, err)

	assetA, err := f.AssetCell(acct.CreatedAssets[0], nil)
	require.NoError(t, err)
	assetB, err := f.AssetCell(acct.CreatedAssets[1], nil)
	require.NoError(t, err)
	holdingA, err := f.OptInAssetCell(acct.Assets[0], nil)
	require.NoError(t, err)
	holdingB, err := f.OptInAssetCell(acct.Assets[1], nil)
	require.NoError(t, err)

	cells := cellsOf(t, term)
	expectedCreated := kast.BuildAssoc(kavm.BagUnit("AssetMapCell"), kavm.AssetCellMapLabel, []kast.KInner{assetA, assetB})
	require.True(t, kast.Equal(expectedCreated, cells["ASSETSCREATED_CELL"]))
	expectedOptedIn := kast.BuildAssoc(kavm.BagUnit("OptInAssetMapCell"), kavm.OptInAssetCellMapLabel, []kast.KInner{holdingA, holdingB})
	require.True(t, kast.Equal(expectedOptedIn, cells["ASSETSOPTEDIN_CELL"]))
}

func TestAccountCellAppProgramFailurePropagates(t *testing.T) {
	addr := addressFromSeed("account")
	acct := models.Account{
		Address: addr.String(),
		CreatedApps: []models.Application{
			{ID: 4, Params: models.ApplicationParams{ApprovalProgram: "missing.teal"}},
		},
	}

	term, err := testFactory(stubParser{}).AccountCell(acct, "teal", nil)
	require.Error(t, err)
	require.NotNil(t, term)

	// The created app still made it into the account, placeholder programs
	// and all. Splitting recurses into the nested app cell.
	cells := cellsOf(t, term)
	require.True(t, kast.Equal(kast.IntToken(4), cells["APPID_CELL"]))
	require.True(t, kast.Equal(kavm.TrivialProgram(0), cells["APPROVALPGMSRC_CELL"]))
}

func TestAccountCellRejectsMalformedAddress(t *testing.T) {
	_, err := testFactory(nil).AccountCell(models.Account{Address: "garbage"}, "teal", nil)
	require.Error(t, err)
}

func TestPreprocessTealProgram(t *testing.T) {
	program := kast.Apply("byte__OPS",
		kast.KToken{Token: "0xdeadbeef", Sort: "HexToken"},
		kast.IntToken(1),
	)

	got := PreprocessTealProgram(program)

	expected := kast.Apply("byte__OPS",
		kast.StringToken("\xde\xad\xbe\xef"),
		kast.IntToken(1),
	)
	require.True(t, kast.Equal(expected, got))
}

func TestSplitTealKeyValues(t *testing.T) {
	// Keys and byte values arrive base64-encoded.
	kvs := []models.TealKeyValue{
		{Key: "Y291bnRlcg==", Value: models.TealValue{Type: models.TealValueUint, Uint: 5}},
		{Key: "b3duZXI=", Value: models.TealValue{Type: models.TealValueBytes, Bytes: "Ym9i"}},
	}

	bytesKVs, intKVs, err := SplitTealKeyValues(kvs)
	require.NoError(t, err)
	require.Equal(t, map[string]uint64{"counter": 5}, intKVs)
	require.Equal(t, map[string]string{"owner": "bob"}, bytesKVs)

	_, _, err = SplitTealKeyValues([]models.TealKeyValue{{Key: "!!!"}})
	require.Error(t, err)
}
