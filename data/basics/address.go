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

package basics

import (
	"bytes"
	"crypto/sha512"
	"encoding/base32"
	"fmt"
)

// Address is a unique identifier corresponding to ownership of money
type Address [32]byte

const checksumLength = 4

var base32Encoder = base32.StdEncoding.WithPadding(base32.NoPadding)

// GetChecksum returns the checksum as []byte
// Checksum in Algorand are the last 4 bytes of the address hash. H(Address)[28:]
func (addr Address) GetChecksum() []byte {
	shortAddressHash := sha512.Sum512_256(addr[:])
	return shortAddressHash[len(shortAddressHash)-checksumLength:]
}

// String returns the human-readable, checksummed base32 form of the address.
func (addr Address) String() string {
	addrWithChecksum := make([]byte, 0, len(addr)+checksumLength)
	addrWithChecksum = append(addrWithChecksum, addr[:]...)
	addrWithChecksum = append(addrWithChecksum, addr.GetChecksum()...)
	return base32Encoder.EncodeToString(addrWithChecksum)
}

// IsZero reports whether the address is the all-zero address.
func (addr Address) IsZero() bool {
	return addr == Address{}
}

// UnmarshalChecksumAddress tries to unmarshal the checksummed address string.
func UnmarshalChecksumAddress(address string) (Address, error) {
	decoded, err := base32Encoder.DecodeString(address)
	if err != nil {
		return Address{}, fmt.Errorf("failed to decode address %s to base 32", address)
	}
	var short Address
	if len(decoded) < len(short) {
		return Address{}, fmt.Errorf("decoded bad addr: %s", address)
	}
	copy(short[:], decoded[:len(short)])

	incomingchecksum := decoded[len(decoded)-checksumLength:]
	if !bytes.Equal(incomingchecksum, short.GetChecksum()) {
		return Address{}, fmt.Errorf("address %s is malformed, checksum verification failed", address)
	}

	// Validate that we had a canonical string representation
	if short.String() != address {
		return Address{}, fmt.Errorf("address %s is non-canonical", address)
	}

	return short, nil
}

// AddressFromBytes converts raw bytes to an Address, requiring exactly 32 of them.
func AddressFromBytes(b []byte) (Address, error) {
	var addr Address
	if len(b) != len(addr) {
		return Address{}, fmt.Errorf("expected 32 bytes for an address, got %d", len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

// MarshalText returns the address string as an array of bytes
func (addr Address) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

// UnmarshalText initializes the Address from an array of bytes.
func (addr *Address) UnmarshalText(text []byte) error {
	address, err := UnmarshalChecksumAddress(string(text))
	if err != nil {
		return err
	}
	*addr = address
	return nil
}
