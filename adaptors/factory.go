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

// Package adaptors maps algod-shaped records and transactions to the
// configuration terms of the AVM semantics and back.
package adaptors

import (
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rejkowic/avm-semantics/data/basics"
	"github.com/rejkowic/avm-semantics/data/models"
	"github.com/rejkowic/avm-semantics/kast"
	"github.com/rejkowic/avm-semantics/kavm"
	"github.com/rejkowic/avm-semantics/logging"
)

// ErrOptInAppNotImplemented is returned for opted-in application terms,
// which cannot be constructed yet.
var ErrOptInAppNotImplemented = errors.New("opted-in application term construction is not implemented")

// Definition hands out template configuration terms for the semantics' sorts.
type Definition interface {
	InitConfig(sort kast.KSort) (kast.KInner, error)
	EmptyConfig(sort kast.KSort) (kast.KInner, error)
}

// TealParser parses TEAL programs into program terms.
type TealParser interface {
	ParseTeal(path string) (kast.KInner, error)
	ParseTealSource(src string) (kast.KInner, error)
}

// TermFactory builds configuration terms for accounts, applications, assets
// and opted-in asset holdings. Each build composes the template's default
// substitution, the substitution derived from the record, and an optional
// caller-supplied override substitution, in that order, later stages winning
// on collisions.
type TermFactory struct {
	def    Definition
	parser TealParser
	log    logging.Logger
}

// NewTermFactory returns a factory bound to a definition and a TEAL parser.
func NewTermFactory(def Definition, parser TealParser) *TermFactory {
	return &TermFactory{
		def:    def,
		parser: parser,
		log:    logging.Base(),
	}
}

func (f *TermFactory) splitInit(sort kast.KSort) (kast.KInner, kast.Subst, error) {
	config, err := f.def.InitConfig(sort)
	if err != nil {
		return nil, nil, err
	}
	return kast.SplitConfig(config)
}

// AssetCell builds the term of a created asset.
func (f *TermFactory) AssetCell(asset models.Asset, overrides kast.Subst) (kast.KInner, error) {
	template, defaults, err := f.splitInit(kavm.SortAssetCellMap)
	if err != nil {
		return nil, err
	}

	manager, err := roleAddressBytes(asset.Params.Manager)
	if err != nil {
		return nil, fmt.Errorf("asset %d manager: %w", asset.Index, err)
	}
	reserve, err := roleAddressBytes(asset.Params.Reserve)
	if err != nil {
		return nil, fmt.Errorf("asset %d reserve: %w", asset.Index, err)
	}
	freeze, err := roleAddressBytes(asset.Params.Freeze)
	if err != nil {
		return nil, fmt.Errorf("asset %d freeze: %w", asset.Index, err)
	}
	clawback, err := roleAddressBytes(asset.Params.Clawback)
	if err != nil {
		return nil, fmt.Errorf("asset %d clawback: %w", asset.Index, err)
	}

	sdkFields := kast.Subst{
		"ASSETID_CELL":            kast.IntToken(asset.Index),
		"ASSETNAME_CELL":          kast.StringToken(asset.Params.Name),
		"ASSETUNITNAME_CELL":      kast.StringToken(asset.Params.UnitName),
		"ASSETTOTAL_CELL":         kast.IntToken(asset.Params.Total),
		"ASSETDECIMALS_CELL":      kast.IntToken(asset.Params.Decimals),
		"ASSETDEFAULTFROZEN_CELL": kast.IntToken(boolToUint(asset.Params.DefaultFrozen)),
		"ASSETURL_CELL":           kast.StringToken(asset.Params.URL),
		"ASSETMETADATAHASH_CELL":  kast.StringToken(asset.Params.MetadataHash),
		"ASSETMANAGERADDR_CELL":   manager,
		"ASSETRESERVEADDR_CELL":   reserve,
		"ASSETFREEZEADDR_CELL":    freeze,
		"ASSETCLAWBACKADDR_CELL":  clawback,
	}

	return defaults.Compose(sdkFields).Compose(overrides).Apply(template), nil
}

// OptInAssetCell builds the term of an opted-in asset holding.
func (f *TermFactory) OptInAssetCell(holding models.AssetHolding, overrides kast.Subst) (kast.KInner, error) {
	template, defaults, err := f.splitInit(kavm.SortOptInAssetCellMap)
	if err != nil {
		return nil, err
	}

	sdkFields := kast.Subst{
		"OPTINASSETID_CELL":      kast.IntToken(holding.AssetID),
		"OPTINASSETBALANCE_CELL": kast.IntToken(holding.Amount),
		"OPTINASSETFROZEN_CELL":  kast.IntToken(boolToUint(holding.IsFrozen)),
	}

	return defaults.Compose(sdkFields).Compose(overrides).Apply(template), nil
}

// AppCell builds the term of a created application. The approval and
// clear-state program sources are resolved against tealDir and parsed; when
// either fails the trivial placeholder program is substituted and the
// original error is returned alongside the structurally complete term, so
// the caller decides whether to use it or abort.
func (f *TermFactory) AppCell(app models.Application, tealDir string, overrides kast.Subst) (kast.KInner, error) {
	template, defaults, err := f.splitInit(kavm.SortAppCellMap)
	if err != nil {
		return nil, err
	}

	var firstErr error
	approvalTerm, err := f.parseProgram(tealDir, app.Params.ApprovalProgram)
	if err != nil {
		approvalTerm = kavm.TrivialProgram(0)
		firstErr = fmt.Errorf("application %d approval program: %w", app.ID, err)
	}
	clearTerm, err := f.parseProgram(tealDir, app.Params.ClearStateProgram)
	if err != nil {
		clearTerm = kavm.TrivialProgram(0)
		if firstErr == nil {
			firstErr = fmt.Errorf("application %d clear-state program: %w", app.ID, err)
		}
	}

	globalBytes, globalInts, err := SplitTealKeyValues(app.Params.GlobalState)
	if err != nil {
		return nil, fmt.Errorf("application %d global state: %w", app.ID, err)
	}

	var globalSchema, localSchema models.ApplicationSchema
	if app.Params.GlobalStateSchema != nil {
		globalSchema = *app.Params.GlobalStateSchema
	}
	if app.Params.LocalStateSchema != nil {
		localSchema = *app.Params.LocalStateSchema
	}

	sdkFields := kast.Subst{
		"APPID_CELL":            kast.IntToken(app.ID),
		"APPROVALPGMSRC_CELL":   approvalTerm,
		"CLEARSTATEPGMSRC_CELL": clearTerm,
		"APPROVALPGM_CELL":      kast.StringToken(app.Params.ApprovalProgram),
		"CLEARSTATEPGM_CELL":    kast.StringToken(app.Params.ClearStateProgram),
		"GLOBALNUMINTS_CELL":    kast.IntToken(globalSchema.NumUint),
		"GLOBALNUMBYTES_CELL":   kast.IntToken(globalSchema.NumByteSlice),
		"LOCALNUMINTS_CELL":     kast.IntToken(localSchema.NumUint),
		"LOCALNUMBYTES_CELL":    kast.IntToken(localSchema.NumByteSlice),
		"GLOBALBYTES_CELL":      kast.MapBytesBytes(globalBytes),
		"GLOBALINTS_CELL":       kast.MapBytesInts(globalInts),
		"EXTRAPAGES_CELL":       kast.IntToken(app.Params.ExtraProgramPages),
	}

	cell := defaults.Compose(sdkFields).Compose(overrides).Apply(template)
	return cell, firstErr
}

// OptInAppCell would build the term of an opted-in application's local
// state. Not implemented.
func (f *TermFactory) OptInAppCell(state models.ApplicationLocalState, overrides kast.Subst) (kast.KInner, error) {
	return nil, ErrOptInAppNotImplemented
}

// AccountCell builds the term of an account, constructing its four nested
// collections bottom-up. Program parse failures inside created applications
// surface as a non-nil error next to the structurally complete account term.
func (f *TermFactory) AccountCell(acct models.Account, tealDir string, overrides kast.Subst) (kast.KInner, error) {
	template, defaults, err := f.splitInit(kavm.SortAccountCellMap)
	if err != nil {
		return nil, err
	}

	addr, err := basics.UnmarshalChecksumAddress(acct.Address)
	if err != nil {
		return nil, fmt.Errorf("account address: %w", err)
	}
	keyTerm := kavm.AddressBytes(addr)
	if acct.AuthAddr != "" {
		authAddr, err := basics.UnmarshalChecksumAddress(acct.AuthAddr)
		if err != nil {
			return nil, fmt.Errorf("account %s auth-addr: %w", acct.Address, err)
		}
		keyTerm = kavm.AddressBytes(authAddr)
	}

	minBalance := uint64(basics.MinBalance)
	if acct.MinBalance != nil {
		minBalance = *acct.MinBalance
	}

	var firstErr error
	appCells := make([]kast.KInner, 0, len(acct.CreatedApps))
	for _, app := range acct.CreatedApps {
		cell, err := f.AppCell(app, tealDir, nil)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if cell != nil {
			appCells = append(appCells, cell)
		}
	}

	optInAppCells := make([]kast.KInner, 0, len(acct.AppsLocalState))
	for _, state := range acct.AppsLocalState {
		cell, err := f.OptInAppCell(state, nil)
		if err != nil {
			return nil, err
		}
		optInAppCells = append(optInAppCells, cell)
	}

	assetCells := make([]kast.KInner, 0, len(acct.CreatedAssets))
	for _, asset := range acct.CreatedAssets {
		cell, err := f.AssetCell(asset, nil)
		if err != nil {
			return nil, err
		}
		assetCells = append(assetCells, cell)
	}

	optInAssetCells := make([]kast.KInner, 0, len(acct.Assets))
	for _, holding := range acct.Assets {
		cell, err := f.OptInAssetCell(holding, nil)
		if err != nil {
			return nil, err
		}
		optInAssetCells = append(optInAssetCells, cell)
	}

	sdkFields := kast.Subst{
		"ADDRESS_CELL":       kavm.AddressBytes(addr),
		"BALANCE_CELL":       kast.IntToken(acct.Amount),
		"MINBALANCE_CELL":    kast.IntToken(minBalance),
		"ROUND_CELL":         fieldOrDefault(acct.Round, defaults, "ROUND_CELL"),
		"PREREWARDS_CELL":    fieldOrDefault(acct.PendingRewards, defaults, "PREREWARDS_CELL"),
		"REWARDS_CELL":       fieldOrDefault(acct.Rewards, defaults, "REWARDS_CELL"),
		"STATUS_CELL":        fieldOrDefault(acct.Status, defaults, "STATUS_CELL"),
		"KEY_CELL":           keyTerm,
		"APPSCREATED_CELL":   kast.BuildAssoc(kavm.BagUnit("AppMapCell"), kavm.AppCellMapLabel, appCells),
		"APPSOPTEDIN_CELL":   kast.BuildAssoc(kavm.BagUnit("OptInAppMapCell"), kavm.OptInAppCellMapLabel, optInAppCells),
		"ASSETSCREATED_CELL": kast.BuildAssoc(kavm.BagUnit("AssetMapCell"), kavm.AssetCellMapLabel, assetCells),
		"ASSETSOPTEDIN_CELL": kast.BuildAssoc(kavm.BagUnit("OptInAssetMapCell"), kavm.OptInAssetCellMapLabel, optInAssetCells),
		"BOXES_CELL":         kast.BuildAssoc(kavm.BagUnit("BoxMapCell"), kavm.BoxCellMapLabel, nil),
	}

	cell := defaults.Compose(sdkFields).Compose(overrides).Apply(template)
	return cell, firstErr
}

func (f *TermFactory) parseProgram(tealDir, name string) (kast.KInner, error) {
	if name == "" {
		return nil, errors.New("no program source file named")
	}
	term, err := f.parser.ParseTeal(filepath.Join(tealDir, name))
	if err != nil {
		return nil, err
	}
	return PreprocessTealProgram(term), nil
}

// PreprocessTealProgram rewrites every hex token of a parsed TEAL program
// into the string token the semantics expects.
func PreprocessTealProgram(term kast.KInner) kast.KInner {
	switch t := term.(type) {
	case kast.KApply:
		args := make([]kast.KInner, len(t.Args))
		for i, arg := range t.Args {
			args[i] = PreprocessTealProgram(arg)
		}
		return kast.KApply{Label: t.Label, Args: args}
	case kast.KToken:
		if t.Sort == "HexToken" {
			decoded, err := hex.DecodeString(strings.TrimPrefix(t.Token, "0x"))
			if err != nil {
				return t
			}
			return kast.StringToken(string(decoded))
		}
		return t
	default:
		return term
	}
}

func fieldOrDefault(v uint64, defaults kast.Subst, name string) kast.KInner {
	if v != 0 {
		return kast.IntToken(v)
	}
	if def, ok := defaults[name]; ok {
		return def
	}
	return kast.IntToken(0)
}

func roleAddressBytes(address string) (kast.KInner, error) {
	if address == "" {
		return kavm.BytesToken(nil), nil
	}
	addr, err := basics.UnmarshalChecksumAddress(address)
	if err != nil {
		return nil, err
	}
	return kavm.AddressBytes(addr), nil
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
