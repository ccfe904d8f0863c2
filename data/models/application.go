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

// Application mirrors the algod application record.
type Application struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	ID     uint64            `codec:"id"`
	Params ApplicationParams `codec:"params"`
}

// ApplicationParams carries the stored parameters of an application. The
// approval and clear-state program fields name TEAL source files, resolved
// against a caller-supplied source directory when the application term is
// built.
type ApplicationParams struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	ApprovalProgram   string             `codec:"approval-program"`
	ClearStateProgram string             `codec:"clear-state-program"`
	GlobalStateSchema *ApplicationSchema `codec:"global-state-schema"`
	LocalStateSchema  *ApplicationSchema `codec:"local-state-schema"`
	GlobalState       []TealKeyValue     `codec:"global-state"`
	ExtraProgramPages uint64             `codec:"extra-pages"`
}

// ApplicationSchema counts the values an application may store.
type ApplicationSchema struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	NumUint      uint64 `codec:"num-uint"`
	NumByteSlice uint64 `codec:"num-byte-slice"`
}

// ApplicationLocalState is the local state of one account opted in to an
// application. Term construction for opted-in applications is not
// implemented yet; the record is declared for decoding completeness.
type ApplicationLocalState struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	ID       uint64             `codec:"id"`
	Schema   *ApplicationSchema `codec:"schema"`
	KeyValue []TealKeyValue     `codec:"key-value"`
}

// TealValueType discriminates the two algod TEAL value encodings.
type TealValueType uint64

const (
	// TealValueBytes marks a value carrying bytes
	TealValueBytes TealValueType = 1
	// TealValueUint marks a value carrying a uint
	TealValueUint TealValueType = 2
)

// TealValue is the algod encoding of a single TEAL value.
type TealValue struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Type  TealValueType `codec:"type"`
	Bytes string        `codec:"bytes"`
	Uint  uint64        `codec:"uint"`
}

// TealKeyValue is one entry of an application key-value store.
type TealKeyValue struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Key   string    `codec:"key"`
	Value TealValue `codec:"value"`
}
