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
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"github.com/rejkowic/avm-semantics/data/basics"
	"github.com/rejkowic/avm-semantics/data/transactions"
	"github.com/rejkowic/avm-semantics/kast"
	"github.com/rejkowic/avm-semantics/kavm"
	"github.com/rejkowic/avm-semantics/protocol"
)

// ErrAssetTransferUnsupported is returned when an asset transfer is handed
// to the forward conversion; the variant is declared but intentionally
// unsupported there.
var ErrAssetTransferUnsupported = errors.New("asset transfer transactions cannot be converted to a term")

// TransactionCell converts a transaction and its id to a fully concrete
// transaction configuration term. Every template cell the transaction does
// not determine is backfilled, so the result carries no placeholders.
func (f *TermFactory) TransactionCell(txn transactions.Transaction, txid string) (kast.KInner, error) {
	template, err := f.def.EmptyConfig(kavm.SortTransactionCell)
	if err != nil {
		return nil, err
	}
	typeEnum, err := txn.Type.TypeEnum()
	if err != nil {
		return nil, err
	}

	headerFields := kast.Subst{
		"FEE_CELL":             kavm.TUInt(uint64(txn.Fee)),
		"FIRSTVALID_CELL":      kavm.TUInt(uint64(txn.FirstValid)),
		"LASTVALID_CELL":       kavm.TUInt(uint64(txn.LastValid)),
		"GENESISHASH_CELL":     kavm.MaybeTBytes(txn.GenesisHash),
		"GENESISID_CELL":       kavm.MaybeTString(txn.GenesisID),
		"SENDER_CELL":          kavm.TAddressLiteral(txn.Sender),
		"TXTYPE_CELL":          kavm.TString(string(txn.Type)),
		"TYPEENUM_CELL":        kavm.TUInt(typeEnum),
		"GROUPIDX_CELL":        kavm.MaybeTBytes(txn.Group),
		"GROUPID_CELL":         kast.StringToken("0"),
		"LEASE_CELL":           kavm.MaybeTBytes(txn.Lease),
		"NOTE_CELL":            kavm.MaybeTBytes(txn.Note),
		"REKEYTO_CELL":         kavm.MaybeTAddress(txn.RekeyTo),
		"TXCONFIGASSET_CELL":   kavm.TUInt(0),
		"TXAPPLICATIONID_CELL": kavm.TUInt(0),
		"INNERTXNS_CELL":       kavm.ListUnit(),
		"LOGSIZE_CELL":         kavm.TUInt(0),
		"LOGDATA_CELL":         kavm.TValueList(nil),
		"RESUME_CELL":          kast.BoolToken(false),
		"TXSCRATCH_CELL":       kast.MapUnit(),
	}

	typeFields, err := f.typeSpecificFields(txn)
	if err != nil {
		return nil, err
	}

	fields := kast.Subst{"TXID_CELL": kast.StringToken(txid)}.
		Compose(headerFields).
		Compose(typeFields)
	cell := fields.Apply(template)

	// Backfill every placeholder the transaction did not determine.
	backfill := make(kast.Subst)
	for _, name := range kast.FreeVars(cell) {
		backfill[name] = kavm.NoTValue()
	}
	backfill["ACCOUNTS_CELL"] = kavm.TValueList(nil)
	backfill["APPLICATIONARGS_CELL"] = kavm.TValueList(nil)
	backfill["FOREIGNAPPS_CELL"] = kavm.TValueList(nil)
	backfill["FOREIGNASSETS_CELL"] = kavm.TValueList(nil)
	backfill["APPROVALPROGRAM_CELL"] = kavm.NoTValue()
	backfill["APPROVALPROGRAMSRC_CELL"] = kast.KToken{Token: "int 0", Sort: "TealInputPgm"}
	backfill["CLEARSTATEPROGRAM_CELL"] = kavm.NoTValue()
	backfill["CLEARSTATEPROGRAMSRC_CELL"] = kast.KToken{Token: "int 1", Sort: "TealInputPgm"}
	backfill["LOGDATA_CELL"] = kavm.TValueList(nil)
	backfill["LOGSIZE_CELL"] = kavm.TUInt(0)
	backfill["TXSCRATCH_CELL"] = kast.MapUnit()
	backfill["TXNEXECUTIONCONTEXT_CELL"] = kast.KToken{Token: ".K", Sort: "K"}

	return backfill.Apply(cell), nil
}

func (f *TermFactory) typeSpecificFields(txn transactions.Transaction) (kast.Subst, error) {
	switch txn.Type {
	case protocol.PaymentTx:
		return kast.Subst{
			"RECEIVER_CELL":         kavm.TAddressLiteral(txn.Receiver),
			"AMOUNT_CELL":           kavm.TUInt(uint64(txn.Amount)),
			"CLOSEREMAINDERTO_CELL": kavm.MaybeTAddress(txn.CloseRemainderTo),
		}, nil

	case protocol.AssetTransferTx:
		return nil, ErrAssetTransferUnsupported

	case protocol.ApplicationCallTx:
		approvalSrc, err := f.programSource(txn.ApprovalProgram)
		if err != nil {
			return nil, err
		}
		clearSrc, err := f.programSource(txn.ClearStateProgram)
		if err != nil {
			return nil, err
		}

		accounts := make([]kast.KInner, len(txn.Accounts))
		for i, addr := range txn.Accounts {
			accounts[i] = kavm.TAddressLiteral(addr)
		}
		foreignApps := make([]uint64, len(txn.ForeignApps))
		for i, id := range txn.ForeignApps {
			foreignApps[i] = uint64(id)
		}
		foreignAssets := make([]uint64, len(txn.ForeignAssets))
		for i, id := range txn.ForeignAssets {
			foreignAssets[i] = uint64(id)
		}

		return kast.Subst{
			"APPLICATIONID_CELL":        kavm.TUInt(uint64(txn.ApplicationID)),
			"ONCOMPLETION_CELL":         kavm.TUInt(uint64(txn.OnCompletion)),
			"ACCOUNTS_CELL":             kavm.TValueList(accounts),
			"APPROVALPROGRAM_CELL":      kavm.MaybeTBytes(txn.ApprovalProgram),
			"APPROVALPROGRAMSRC_CELL":   approvalSrc,
			"CLEARSTATEPROGRAM_CELL":    kavm.MaybeTBytes(txn.ClearStateProgram),
			"CLEARSTATEPROGRAMSRC_CELL": clearSrc,
			"APPLICATIONARGS_CELL":      kavm.TBytesList(txn.ApplicationArgs),
			"FOREIGNAPPS_CELL":          kavm.TUIntList(foreignApps),
			"FOREIGNASSETS_CELL":        kavm.TUIntList(foreignAssets),
			"GLOBALNUI_CELL":            kavm.TUInt(txn.GlobalStateSchema.NumUint),
			"GLOBALNBS_CELL":            kavm.TUInt(txn.GlobalStateSchema.NumByteSlice),
			"LOCALNUI_CELL":             kavm.TUInt(txn.LocalStateSchema.NumUint),
			"LOCALNBS_CELL":             kavm.TUInt(txn.LocalStateSchema.NumByteSlice),
			"EXTRAPROGRAMPAGES_CELL":    kavm.TUInt(uint64(txn.ExtraProgramPages)),
		}, nil

	default:
		return nil, fmt.Errorf("transaction of type %s cannot be converted to a term", txn.Type)
	}
}

// programSource renders compiled program bytes for a program-source cell,
// falling back to parsing the trivial `int 1` program when absent.
func (f *TermFactory) programSource(program []byte) (kast.KInner, error) {
	if len(program) > 0 {
		return kavm.MaybeTBytes(program), nil
	}
	return f.parser.ParseTealSource("int 1")
}

// TransactionFromTerm reconstructs a transaction from a previously built
// transaction configuration term. Array-valued fields are not reconstructed
// yet and come back absent.
func TransactionFromTerm(term kast.KInner) (transactions.Transaction, error) {
	var txn transactions.Transaction

	_, cells, err := kast.SplitConfig(term)
	if err != nil {
		return txn, err
	}

	fee, err := uintField(cells, "FEE_CELL")
	if err != nil {
		return txn, err
	}
	firstValid, err := uintField(cells, "FIRSTVALID_CELL")
	if err != nil {
		return txn, err
	}
	lastValid, err := uintField(cells, "LASTVALID_CELL")
	if err != nil {
		return txn, err
	}
	genesisHash, err := bytesField(cells, "GENESISHASH_CELL")
	if err != nil {
		return txn, err
	}
	sender, err := addressField(cells, "SENDER_CELL")
	if err != nil {
		return txn, err
	}

	txn.Header = transactions.Header{
		Sender:      sender,
		Fee:         basics.MicroAlgos(fee),
		FirstValid:  basics.Round(firstValid),
		LastValid:   basics.Round(lastValid),
		GenesisHash: genesisHash,
	}

	txType, err := tokenField(cells, "TXTYPE_CELL")
	if err != nil {
		return txn, err
	}
	txn.Type = protocol.TxType(txType)

	switch txn.Type {
	case protocol.PaymentTx:
		receiver, err := addressField(cells, "RECEIVER_CELL")
		if err != nil {
			return txn, err
		}
		amount, err := uintField(cells, "AMOUNT_CELL")
		if err != nil {
			return txn, err
		}
		txn.PaymentTxnFields = transactions.PaymentTxnFields{
			Receiver: receiver,
			Amount:   basics.MicroAlgos(amount),
		}

	case protocol.AssetTransferTx:
		receiver, err := addressField(cells, "ASSETRECEIVER_CELL")
		if err != nil {
			return txn, err
		}
		amount, err := uintField(cells, "ASSETAMOUNT_CELL")
		if err != nil {
			return txn, err
		}
		index, err := uintField(cells, "XFERASSET_CELL")
		if err != nil {
			return txn, err
		}
		txn.AssetTransferTxnFields = transactions.AssetTransferTxnFields{
			XferAsset:     basics.AssetIndex(index),
			AssetAmount:   amount,
			AssetReceiver: receiver,
		}

	case protocol.ApplicationCallTx:
		appID, err := uintField(cells, "APPLICATIONID_CELL")
		if err != nil {
			return txn, err
		}
		onCompletion, err := uintField(cells, "ONCOMPLETION_CELL")
		if err != nil {
			return txn, err
		}
		localNui, err := uintField(cells, "LOCALNUI_CELL")
		if err != nil {
			return txn, err
		}
		localNbs, err := uintField(cells, "LOCALNBS_CELL")
		if err != nil {
			return txn, err
		}
		globalNui, err := uintField(cells, "GLOBALNUI_CELL")
		if err != nil {
			return txn, err
		}
		globalNbs, err := uintField(cells, "GLOBALNBS_CELL")
		if err != nil {
			return txn, err
		}
		approval, err := bytesField(cells, "APPROVALPROGRAM_CELL")
		if err != nil {
			return txn, err
		}
		clear, err := bytesField(cells, "CLEARSTATEPROGRAM_CELL")
		if err != nil {
			return txn, err
		}
		txn.ApplicationCallTxnFields = transactions.ApplicationCallTxnFields{
			ApplicationID:     basics.AppIndex(appID),
			OnCompletion:      transactions.OnCompletion(onCompletion),
			LocalStateSchema:  basics.StateSchema{NumUint: localNui, NumByteSlice: localNbs},
			GlobalStateSchema: basics.StateSchema{NumUint: globalNui, NumByteSlice: globalNbs},
			ApprovalProgram:   approval,
			ClearStateProgram: clear,
		}

	default:
		return txn, fmt.Errorf("cannot instantiate a transaction of an unexpected type %s", txType)
	}

	return txn, nil
}

// SanitizeByteFields converts the raw byte values of a flat transaction
// field mapping to their textual form: the sender, receiver and close-to
// address fields become checksummed address strings, every other byte field
// becomes base64 text.
func SanitizeByteFields(fields map[string]interface{}) (map[string]interface{}, error) {
	addressFields := map[string]bool{"snd": true, "rcv": true, "close": true}
	out := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		raw, ok := value.([]byte)
		if !ok {
			out[name] = value
			continue
		}
		if addressFields[name] {
			addr, err := basics.AddressFromBytes(raw)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			out[name] = addr.String()
		} else {
			out[name] = base64.StdEncoding.EncodeToString(raw)
		}
	}
	return out, nil
}

func tokenField(cells kast.Subst, name string) (string, error) {
	term, ok := cells[name]
	if !ok {
		return "", fmt.Errorf("term lacks cell %s", name)
	}
	token, ok := term.(kast.KToken)
	if !ok {
		return "", fmt.Errorf("cell %s does not hold a token", name)
	}
	return kast.Dequote(token.Token), nil
}

func uintField(cells kast.Subst, name string) (uint64, error) {
	s, err := tokenField(cells, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cell %s does not hold an integer: %w", name, err)
	}
	return v, nil
}

// bytesField reads an optional base64-encoded byte field; an absent value
// comes back nil.
func bytesField(cells kast.Subst, name string) ([]byte, error) {
	s, err := tokenField(cells, name)
	if err != nil {
		return nil, err
	}
	if s == "NoTValue" || s == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("cell %s does not hold base64 bytes: %w", name, err)
	}
	return raw, nil
}

func addressField(cells kast.Subst, name string) (basics.Address, error) {
	s, err := tokenField(cells, name)
	if err != nil {
		return basics.Address{}, err
	}
	addr, err := basics.UnmarshalChecksumAddress(s)
	if err != nil {
		return basics.Address{}, fmt.Errorf("cell %s: %w", name, err)
	}
	return addr, nil
}
