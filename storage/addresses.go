// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/probalance/provault/codec"
)

// MasterSeed is the fixed seed the singleton vault address is derived
// from. Anyone can recompute the address without a registry lookup.
const MasterSeed = "master"

const (
	vaultAddressID   uint8 = 0x0
	custodyAddressID uint8 = 0x1
)

// VaultAddress derives the deterministic address of the singleton vault.
func VaultAddress() codec.Address {
	return codec.CreateAddress(
		vaultAddressID,
		hashing.ComputeHash256Array([]byte(MasterSeed)),
	)
}

// CustodyAddress derives the address of the vault's custody account for
// [mint]. One such account may exist per mint, owned by the vault
// address; only vault operations move funds out of it.
func CustodyAddress(mint ids.ID) codec.Address {
	vault := VaultAddress()
	preimage := make([]byte, codec.AddressLen+ids.IDLen)
	copy(preimage, vault[:])
	copy(preimage[codec.AddressLen:], mint[:])
	return codec.CreateAddress(custodyAddressID, hashing.ComputeHash256Array(preimage))
}
