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

package kavm

import (
	"fmt"

	"github.com/rejkowic/avm-semantics/kast"
)

// Sorts of the AVM semantics configuration for which template terms can be
// requested.
const (
	SortAccountCellMap    kast.KSort = "AccountCellMap"
	SortAppCellMap        kast.KSort = "AppCellMap"
	SortAssetCellMap      kast.KSort = "AssetCellMap"
	SortOptInAppCellMap   kast.KSort = "OptInAppCellMap"
	SortOptInAssetCellMap kast.KSort = "OptInAssetCellMap"
	SortTransactionCell   kast.KSort = "TransactionCell"
)

// Associative constructor labels of the nested account collections.
const (
	AppCellMapLabel        kast.KLabel = "_AppCellMap_"
	OptInAppCellMapLabel   kast.KLabel = "_OptInAppCellMap_"
	AssetCellMapLabel      kast.KLabel = "_AssetCellMap_"
	OptInAssetCellMapLabel kast.KLabel = "_OptInAssetCellMap_"
	BoxCellMapLabel        kast.KLabel = "_BoxCellMap_"
)

// BagUnit is the empty cell collection of the given collection sort.
func BagUnit(sort kast.KSort) kast.KInner {
	return kast.KToken{Token: ".Bag", Sort: sort}
}

// ListUnit is the empty K List.
func ListUnit() kast.KInner {
	return kast.Apply(".List")
}

// TrivialProgram is the always-available placeholder TEAL program `int n`,
// substituted when a real program is missing or fails to parse.
func TrivialProgram(n uint64) kast.KInner {
	return kast.Apply("int__TEAL-OPCODES_PseudoOpCode_PseudoTUInt64", kast.IntToken(n))
}

type cellSpec struct {
	name string
	def  kast.KInner
}

type sortSchema struct {
	cell  string
	cells []cellSpec
}

var schemas = map[kast.KSort]sortSchema{
	SortAccountCellMap: {
		cell: "account",
		cells: []cellSpec{
			{"address", BytesToken(nil)},
			{"balance", kast.IntToken(0)},
			{"minBalance", kast.IntToken(0)},
			{"round", kast.IntToken(0)},
			{"preRewards", kast.IntToken(0)},
			{"rewards", kast.IntToken(0)},
			{"status", kast.IntToken(0)},
			{"key", BytesToken(nil)},
			{"appsCreated", BagUnit("AppMapCell")},
			{"appsOptedIn", BagUnit("OptInAppMapCell")},
			{"assetsCreated", BagUnit("AssetMapCell")},
			{"assetsOptedIn", BagUnit("OptInAssetMapCell")},
			{"boxes", BagUnit("BoxMapCell")},
		},
	},
	SortAppCellMap: {
		cell: "app",
		cells: []cellSpec{
			{"appID", kast.IntToken(0)},
			{"approvalPgmSrc", TrivialProgram(0)},
			{"clearStatePgmSrc", TrivialProgram(0)},
			{"approvalPgm", kast.StringToken("")},
			{"clearStatePgm", kast.StringToken("")},
			{"globalNumInts", kast.IntToken(0)},
			{"globalNumBytes", kast.IntToken(0)},
			{"localNumInts", kast.IntToken(0)},
			{"localNumBytes", kast.IntToken(0)},
			{"globalBytes", kast.MapUnit()},
			{"globalInts", kast.MapUnit()},
			{"extraPages", kast.IntToken(0)},
		},
	},
	SortAssetCellMap: {
		cell: "asset",
		cells: []cellSpec{
			{"assetID", kast.IntToken(0)},
			{"assetName", kast.StringToken("")},
			{"assetUnitName", kast.StringToken("")},
			{"assetTotal", kast.IntToken(0)},
			{"assetDecimals", kast.IntToken(0)},
			{"assetDefaultFrozen", kast.IntToken(0)},
			{"assetURL", kast.StringToken("")},
			{"assetMetadataHash", kast.StringToken("")},
			{"assetManagerAddr", BytesToken(nil)},
			{"assetReserveAddr", BytesToken(nil)},
			{"assetFreezeAddr", BytesToken(nil)},
			{"assetClawbackAddr", BytesToken(nil)},
		},
	},
	SortOptInAppCellMap: {
		cell: "optInApp",
		cells: []cellSpec{
			{"optInAppID", kast.IntToken(0)},
			{"localInts", kast.MapUnit()},
			{"localBytes", kast.MapUnit()},
		},
	},
	SortOptInAssetCellMap: {
		cell: "optInAsset",
		cells: []cellSpec{
			{"optInAssetID", kast.IntToken(0)},
			{"optInAssetBalance", kast.IntToken(0)},
			{"optInAssetFrozen", kast.IntToken(0)},
		},
	},
	SortTransactionCell: {
		cell: "transaction",
		cells: []cellSpec{
			{"txID", kast.StringToken("")},
			{"fee", NoTValue()},
			{"firstValid", NoTValue()},
			{"lastValid", NoTValue()},
			{"genesisHash", NoTValue()},
			{"genesisID", NoTValue()},
			{"sender", NoTValue()},
			{"txType", NoTValue()},
			{"typeEnum", NoTValue()},
			{"groupIdx", NoTValue()},
			{"groupID", kast.StringToken("0")},
			{"lease", NoTValue()},
			{"note", NoTValue()},
			{"rekeyTo", NoTValue()},
			{"receiver", NoTValue()},
			{"amount", NoTValue()},
			{"closeRemainderTo", NoTValue()},
			{"xferAsset", NoTValue()},
			{"assetAmount", NoTValue()},
			{"assetReceiver", NoTValue()},
			{"assetSender", NoTValue()},
			{"assetCloseTo", NoTValue()},
			{"applicationID", NoTValue()},
			{"onCompletion", NoTValue()},
			{"accounts", TValueList(nil)},
			{"approvalProgram", NoTValue()},
			{"approvalProgramSrc", kast.KToken{Token: "int 0", Sort: "TealInputPgm"}},
			{"clearStateProgram", NoTValue()},
			{"clearStateProgramSrc", kast.KToken{Token: "int 1", Sort: "TealInputPgm"}},
			{"applicationArgs", TValueList(nil)},
			{"foreignApps", TValueList(nil)},
			{"foreignAssets", TValueList(nil)},
			{"globalNui", NoTValue()},
			{"globalNbs", NoTValue()},
			{"localNui", NoTValue()},
			{"localNbs", NoTValue()},
			{"extraProgramPages", NoTValue()},
			{"txConfigAsset", kast.IntToken(0)},
			{"txApplicationID", kast.IntToken(0)},
			{"innerTxns", ListUnit()},
			{"logSize", kast.IntToken(0)},
			{"logData", TValueList(nil)},
			{"resume", kast.BoolToken(false)},
			{"txScratch", kast.MapUnit()},
			{"txnExecutionContext", kast.KToken{Token: ".K", Sort: "K"}},
		},
	},
}

// Definition provides template configuration terms for the sorts of the
// compiled AVM semantics. The cell layout is owned by the K definition and
// treated as fixed here.
type Definition struct{}

// InitConfig returns the fully-defaulted configuration term for a sort, with
// every cell holding its default value.
func (Definition) InitConfig(sort kast.KSort) (kast.KInner, error) {
	schema, ok := schemas[sort]
	if !ok {
		return nil, fmt.Errorf("no configuration template for sort %s", sort)
	}
	cells := make([]kast.KInner, len(schema.cells))
	for i, spec := range schema.cells {
		cells[i] = kast.Cell(spec.name, spec.def)
	}
	return kast.KApply{Label: kast.KLabel("<" + schema.cell + ">"), Args: cells}, nil
}

// EmptyConfig returns the configuration term for a sort with every cell
// holding a named placeholder variable.
func (Definition) EmptyConfig(sort kast.KSort) (kast.KInner, error) {
	schema, ok := schemas[sort]
	if !ok {
		return nil, fmt.Errorf("no configuration template for sort %s", sort)
	}
	cells := make([]kast.KInner, len(schema.cells))
	for i, spec := range schema.cells {
		label := kast.KLabel("<" + spec.name + ">")
		cells[i] = kast.Apply(label, kast.KVariable{Name: kast.CellVariable(label)})
	}
	return kast.KApply{Label: kast.KLabel("<" + schema.cell + ">"), Args: cells}, nil
}
