// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
)

const AddressLen = 33

// Address identifies an account: a type byte followed by a 32-byte id.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns the [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	a := make([]byte, AddressLen)
	a[0] = typeID
	copy(a[1:], id[:])
	return Address(a)
}

// StringToAddress parses a hex-encoded address.
func StringToAddress(s string) (Address, error) {
	var a Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return EmptyAddress, err
	}
	if len(b) != AddressLen {
		return EmptyAddress, fmt.Errorf("%w: %d", ErrBadAddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	result := make([]byte, len(a)*2+2)
	copy(result, `0x`)
	hex.Encode(result[2:], a[:])
	return result, nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	if len(input) >= 2 && input[0] == '0' && input[1] == 'x' {
		input = input[2:]
	}
	if len(input) != AddressLen*2 {
		return fmt.Errorf("%w: %d", ErrBadAddressLen, len(input)/2)
	}
	_, err := hex.Decode(a[:], input)
	return err
}
