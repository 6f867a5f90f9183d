// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/probalance/provault/chain"
	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/storage"
)

func TestLoadDefaults(t *testing.T) {
	require := require.New(t)

	g, err := Load(nil)
	require.NoError(err)
	require.Equal(DefaultCustodyReserve, g.Rules.GetCustodyReserve())

	g, err = Load([]byte(`{"initialRules":{"custodyReserve":5}}`))
	require.NoError(err)
	require.Equal(uint64(5), g.Rules.GetCustodyReserve())

	_, err = Load([]byte(`{`))
	require.Error(err)
}

func TestInitializeState(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	addr := codec.CreateAddress(0xa, ids.ID{0x1})
	g, err := Load([]byte(fmt.Sprintf(
		`{"customAllocation":[{"address":%q,"balance":123}]}`, addr,
	)))
	require.NoError(err)

	store := chain.NewInMemoryStore()
	require.NoError(g.InitializeState(ctx, store))

	bal, err := storage.GetBalance(ctx, store, addr, storage.NativeAsset)
	require.NoError(err)
	require.Equal(uint64(123), bal)
}

func TestInitializeStateBadAddress(t *testing.T) {
	require := require.New(t)

	g := NewDefaultGenesis([]*CustomAllocation{{Address: "zz", Balance: 1}})
	require.Error(g.InitializeState(context.TODO(), chain.NewInMemoryStore()))
}
