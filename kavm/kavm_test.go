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
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rejkowic/avm-semantics/data/basics"
	"github.com/rejkowic/avm-semantics/kast"
)

func TestInitConfigKnownSorts(t *testing.T) {
	var def Definition
	for _, sort := range []kast.KSort{
		SortAccountCellMap,
		SortAppCellMap,
		SortAssetCellMap,
		SortOptInAppCellMap,
		SortOptInAssetCellMap,
		SortTransactionCell,
	} {
		config, err := def.InitConfig(sort)
		require.NoError(t, err, "sort %s", sort)

		// Every cell carries a concrete default.
		require.Empty(t, kast.FreeVars(config), "sort %s", sort)

		_, cells, err := kast.SplitConfig(config)
		require.NoError(t, err, "sort %s", sort)
		require.NotEmpty(t, cells, "sort %s", sort)
	}
}

func TestEmptyConfigVariables(t *testing.T) {
	var def Definition
	config, err := def.EmptyConfig(SortOptInAssetCellMap)
	require.NoError(t, err)

	require.Equal(t,
		[]string{"OPTINASSETID_CELL", "OPTINASSETBALANCE_CELL", "OPTINASSETFROZEN_CELL"},
		kast.FreeVars(config))
}

func TestConfigUnknownSort(t *testing.T) {
	var def Definition
	_, err := def.InitConfig("BogusCell")
	require.Error(t, err)
	_, err = def.EmptyConfig("BogusCell")
	require.Error(t, err)
}

func TestInitConfigAccountDefaults(t *testing.T) {
	var def Definition
	config, err := def.InitConfig(SortAccountCellMap)
	require.NoError(t, err)

	_, cells, err := kast.SplitConfig(config)
	require.NoError(t, err)
	require.True(t, kast.Equal(kast.IntToken(0), cells["BALANCE_CELL"]))
	require.True(t, kast.Equal(BagUnit("AppMapCell"), cells["APPSCREATED_CELL"]))
	require.True(t, kast.Equal(BytesToken(nil), cells["ADDRESS_CELL"]))
}

func TestTrivialProgram(t *testing.T) {
	expected := kast.Apply("int__TEAL-OPCODES_PseudoOpCode_PseudoTUInt64", kast.IntToken(0))
	require.True(t, kast.Equal(expected, TrivialProgram(0)))
}

func TestTValueTokens(t *testing.T) {
	require.True(t, kast.Equal(
		kast.KToken{Token: "NoTValue", Sort: "MaybeTValue"}, NoTValue()))
	require.True(t, kast.Equal(
		kast.KToken{Token: "42", Sort: "TUInt64"}, TUInt(42)))
	require.True(t, kast.Equal(
		kast.KToken{Token: `"aGk="`, Sort: "TBytes"}, TBytes([]byte("hi"))))
	require.True(t, kast.Equal(
		kast.KToken{Token: `"pay"`, Sort: "TString"}, TString("pay")))
}

func TestMaybeTValues(t *testing.T) {
	require.True(t, kast.Equal(NoTValue(), MaybeTBytes(nil)))
	require.True(t, kast.Equal(TBytes([]byte("x")), MaybeTBytes([]byte("x"))))
	require.True(t, kast.Equal(NoTValue(), MaybeTString("")))
	require.True(t, kast.Equal(NoTValue(), MaybeTAddress(basics.Address{})))

	addr := basics.Address(sha512.Sum512_256([]byte("addr")))
	require.True(t, kast.Equal(TAddressLiteral(addr), MaybeTAddress(addr)))
}

func TestTValueLists(t *testing.T) {
	unit := kast.KInner(kast.KToken{Token: ".TValueList", Sort: "TValueList"})
	require.True(t, kast.Equal(unit, TValueList(nil)))
	require.True(t, kast.Equal(unit, TUIntList(nil)))
	require.True(t, kast.Equal(unit, TBytesList(nil)))

	expected := kast.Apply("_TValueList_", TUInt(1), TUInt(2))
	require.True(t, kast.Equal(expected, TUIntList([]uint64{1, 2})))
}

func TestBytesToken(t *testing.T) {
	require.True(t, kast.Equal(
		kast.KToken{Token: `b""`, Sort: "Bytes"}, BytesToken(nil)))
	require.True(t, kast.Equal(
		kast.KToken{Token: `b"\x00\xde\xad"`, Sort: "Bytes"},
		BytesToken([]byte{0x00, 0xde, 0xad})))
}

func TestPaths(t *testing.T) {
	k := New("/tmp/avm-llvm")
	require.Equal(t, "/tmp/avm-llvm", k.DefinitionDir())
	require.Equal(t, "/tmp/avm-llvm/interpreter", k.InterpreterPath())
}
