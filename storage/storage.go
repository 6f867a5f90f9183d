// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/near/borsh-go"

	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/consts"
	"github.com/probalance/provault/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// State
// 0x0/ (vault)
//   -> [vault address] => borsh(VaultRecord)
// 0x1/ (token custody)
//   -> [custody address] => borsh(TokenCustody)
// 0x2/ (balance)
//   -> [owner|asset] => balance
//
// NativeAsset (ids.Empty) keys the base asset in the balance table; any
// other asset id is a token mint.

const (
	vaultPrefix   = 0x0
	custodyPrefix = 0x1
	balancePrefix = 0x2
	genesisPrefix = 0x3
)

// NativeAsset keys the base asset in the balance table.
var NativeAsset = ids.Empty

// [vaultPrefix] + [vault address]
func VaultKey() []byte {
	vault := VaultAddress()
	k := make([]byte, consts.ByteLen+codec.AddressLen)
	k[0] = vaultPrefix
	copy(k[1:], vault[:])
	return k
}

// GetVault loads the singleton vault record, reporting whether it
// exists.
func GetVault(ctx context.Context, im state.Immutable) (*VaultRecord, bool, error) {
	v, err := im.GetValue(ctx, VaultKey())
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	record := new(VaultRecord)
	if err := borsh.Deserialize(record, v); err != nil {
		return nil, false, fmt.Errorf("could not decode vault record: %w", err)
	}
	return record, true, nil
}

func SetVault(ctx context.Context, mu state.Mutable, record *VaultRecord) error {
	v, err := borsh.Serialize(*record)
	if err != nil {
		return fmt.Errorf("could not encode vault record: %w", err)
	}
	return mu.Insert(ctx, VaultKey(), v)
}

// [custodyPrefix] + [custody address]
func CustodyKey(mint ids.ID) []byte {
	custody := CustodyAddress(mint)
	k := make([]byte, consts.ByteLen+codec.AddressLen)
	k[0] = custodyPrefix
	copy(k[1:], custody[:])
	return k
}

// GetCustody loads the vault's custody account for [mint], reporting
// whether it exists.
func GetCustody(ctx context.Context, im state.Immutable, mint ids.ID) (*TokenCustody, bool, error) {
	v, err := im.GetValue(ctx, CustodyKey(mint))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	custody := new(TokenCustody)
	if err := borsh.Deserialize(custody, v); err != nil {
		return nil, false, fmt.Errorf("could not decode custody record: %w", err)
	}
	return custody, true, nil
}

func SetCustody(ctx context.Context, mu state.Mutable, custody *TokenCustody) error {
	v, err := borsh.Serialize(*custody)
	if err != nil {
		return fmt.Errorf("could not encode custody record: %w", err)
	}
	return mu.Insert(ctx, CustodyKey(custody.Mint), v)
}

func genesisKey() []byte {
	return []byte{genesisPrefix}
}

// HasGenesis reports whether genesis allocations were already applied.
func HasGenesis(ctx context.Context, im state.Immutable) (bool, error) {
	_, err := im.GetValue(ctx, genesisKey())
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkGenesis records that genesis allocations were applied so a rerun
// cannot double-credit.
func MarkGenesis(ctx context.Context, mu state.Mutable) error {
	return mu.Insert(ctx, genesisKey(), []byte{0x1})
}

// [balancePrefix] + [address] + [asset]
func BalanceKey(addr codec.Address, asset ids.ID) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen+ids.IDLen)
	k[0] = balancePrefix
	copy(k[1:], addr[:])
	copy(k[1+codec.AddressLen:], asset[:])
	return k
}

func GetBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
	asset ids.ID,
) (uint64, error) {
	_, bal, _, err := getBalance(ctx, im, addr, asset)
	return bal, err
}

func getBalance(
	ctx context.Context,
	im state.Immutable,
	addr codec.Address,
	asset ids.ID,
) ([]byte, uint64, bool, error) {
	k := BalanceKey(addr, asset)
	bal, exists, err := innerGetBalance(im.GetValue(ctx, k))
	return k, bal, exists, err
}

func innerGetBalance(v []byte, err error) (uint64, bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func SetBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	asset ids.ID,
	balance uint64,
) error {
	return setBalance(ctx, mu, BalanceKey(addr, asset), balance)
}

func setBalance(
	ctx context.Context,
	mu state.Mutable,
	key []byte,
	balance uint64,
) error {
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, balance))
}

func AddBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	asset ids.ID,
	amount uint64,
) (uint64, error) {
	key, bal, _, err := getBalance(ctx, mu, addr, asset)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (asset=%s, bal=%d, addr=%s, amount=%d)",
			ErrInvalidBalance,
			asset,
			bal,
			addr,
			amount,
		)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}

func SubBalance(
	ctx context.Context,
	mu state.Mutable,
	addr codec.Address,
	asset ids.ID,
	amount uint64,
) (uint64, error) {
	key, bal, _, err := getBalance(ctx, mu, addr, asset)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (asset=%s, bal=%d, addr=%s, amount=%d)",
			ErrInvalidBalance,
			asset,
			bal,
			addr,
			amount,
		)
	}
	if nbal == 0 {
		// If there is no balance left, we should delete the record instead
		// of setting it to 0.
		return 0, mu.Remove(ctx, key)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}
