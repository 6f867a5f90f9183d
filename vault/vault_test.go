// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"context"
	"errors"
	"maps"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/probalance/provault/actions"
	"github.com/probalance/provault/auth"
	"github.com/probalance/provault/chain"
	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/event"
	"github.com/probalance/provault/genesis"
	"github.com/probalance/provault/storage"
)

var (
	payer    = codec.CreateAddress(0xa, ids.ID{0x1})
	admin    = codec.CreateAddress(0xa, ids.ID{0x2})
	operator = codec.CreateAddress(0xa, ids.ID{0x3})
	receiver = codec.CreateAddress(0xa, ids.ID{0x4})
	second   = codec.CreateAddress(0xa, ids.ID{0x5})

	usdt = ids.ID{0x5, 0x4}
)

// newTestVault stands up a vault over an in-memory store with [payer],
// [admin] and [operator] funded and the master record initialized.
func newTestVault(t *testing.T, now *time.Time) (*Vault, *chain.InMemoryStore) {
	t.Helper()
	require := require.New(t)
	ctx := context.TODO()

	store := chain.NewInMemoryStore()
	rules := genesis.NewDefaultRules()
	v, err := New(store, rules, WithClock(func() time.Time { return *now }))
	require.NoError(err)

	g := genesis.NewDefaultGenesis([]*genesis.CustomAllocation{
		{Address: payer.String(), Balance: 10_000_000_000},
		{Address: second.String(), Balance: 1_000_000},
	})
	require.NoError(v.Initialize(ctx, g))

	_, err = v.Submit(ctx, payer, &actions.InitMaster{Admin: admin, Operator: operator})
	require.NoError(err)
	return v, store
}

func TestVaultNativeLifecycle(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	now := time.Unix(1_700_000_000, 0)

	v, _ := newTestVault(t, &now)

	// Re-running one-time setup must fail and change nothing.
	_, err := v.Submit(ctx, second, &actions.InitMaster{Admin: second, Operator: second})
	require.ErrorIs(err, storage.ErrAlreadyInitialized)

	out, err := v.Submit(ctx, payer, &actions.Deposit{Amount: 1_000_000_000})
	require.NoError(err)
	require.Equal(&actions.DepositResult{Balance: 1_000_000_000}, out)

	out, err = v.Submit(ctx, admin, &actions.Withdraw{Amount: 100})
	require.NoError(err)
	require.Equal(&actions.WithdrawResult{Balance: 999_999_900}, out)

	out, err = v.Submit(ctx, operator, &actions.SendWithdraw{Receiver: receiver, Amount: 1_000_000})
	require.NoError(err)
	require.Equal(&actions.SendWithdrawResult{Balance: 998_999_900}, out)

	record, exists, err := storage.GetVault(ctx, v.db)
	require.NoError(err)
	require.True(exists)
	require.Equal(uint64(998_999_900), record.Balance)
	require.Equal(now.Unix(), record.LastWithdrawTime)

	receiverBal, err := storage.GetBalance(ctx, v.db, receiver, storage.NativeAsset)
	require.NoError(err)
	require.Equal(uint64(1_000_000), receiverBal)

	// Custody account holds the reserve on top of the recorded balance.
	custodyBal, err := storage.GetBalance(ctx, v.db, storage.VaultAddress(), storage.NativeAsset)
	require.NoError(err)
	require.Equal(genesis.DefaultCustodyReserve+record.Balance, custodyBal)
}

func TestVaultRejectionLeavesStateUntouched(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	now := time.Unix(1_700_000_000, 0)

	v, store := newTestVault(t, &now)
	_, err := v.Submit(ctx, payer, &actions.Deposit{Amount: 500})
	require.NoError(err)

	snapshot := maps.Clone(store.Storage)

	_, err = v.Submit(ctx, receiver, &actions.Withdraw{Amount: 1})
	require.ErrorIs(err, auth.ErrUnauthorized)
	require.Equal(snapshot, store.Storage)

	_, err = v.Submit(ctx, admin, &actions.Withdraw{Amount: 501})
	require.ErrorIs(err, storage.ErrInsufficientBalance)
	require.Equal(snapshot, store.Storage)

	_, err = v.Submit(ctx, payer, &actions.Deposit{Amount: 0})
	require.ErrorIs(err, actions.ErrInvalidAmount)
	require.Equal(snapshot, store.Storage)
}

func TestVaultDepositWithdrawRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	now := time.Unix(1_700_000_000, 0)

	v, _ := newTestVault(t, &now)

	before, err := storage.GetBalance(ctx, v.db, payer, storage.NativeAsset)
	require.NoError(err)

	_, err = v.Submit(ctx, payer, &actions.Deposit{Amount: 777})
	require.NoError(err)
	_, err = v.Submit(ctx, admin, &actions.Withdraw{Amount: 777})
	require.NoError(err)

	record, _, err := storage.GetVault(ctx, v.db)
	require.NoError(err)
	require.Zero(record.Balance)

	payerBal, err := storage.GetBalance(ctx, v.db, payer, storage.NativeAsset)
	require.NoError(err)
	require.Equal(before-777, payerBal)

	adminBal, err := storage.GetBalance(ctx, v.db, admin, storage.NativeAsset)
	require.NoError(err)
	require.Equal(uint64(777), adminBal)
}

func TestVaultTokenLifecycle(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	now := time.Unix(1_700_000_000, 0)

	v, _ := newTestVault(t, &now)

	// Fund two depositors with token units (10-decimal mint; amounts are
	// raw units).
	require.NoError(storage.SetBalance(ctx, v.db, payer, usdt, 100))
	require.NoError(storage.SetBalance(ctx, v.db, second, usdt, 50))

	_, err := v.Submit(ctx, payer, &actions.InitTokenCustody{Mint: usdt})
	require.NoError(err)
	_, err = v.Submit(ctx, second, &actions.InitTokenCustody{Mint: usdt})
	require.ErrorIs(err, storage.ErrAlreadyInitialized)

	out, err := v.Submit(ctx, payer, &actions.DepositToken{Mint: usdt, Amount: 10})
	require.NoError(err)
	require.Equal(&actions.DepositTokenResult{Balance: 10}, out)

	payerTok, err := storage.GetBalance(ctx, v.db, payer, usdt)
	require.NoError(err)
	require.Equal(uint64(90), payerTok)

	// Only 10 units in custody.
	_, err = v.Submit(ctx, admin, &actions.WithdrawToken{Mint: usdt, Amount: 30})
	require.ErrorIs(err, storage.ErrInsufficientBalance)

	_, err = v.Submit(ctx, second, &actions.DepositToken{Mint: usdt, Amount: 30})
	require.NoError(err)

	out, err = v.Submit(ctx, admin, &actions.WithdrawToken{Mint: usdt, Amount: 30})
	require.NoError(err)
	require.Equal(&actions.WithdrawTokenResult{Balance: 10}, out)

	adminTok, err := storage.GetBalance(ctx, v.db, admin, usdt)
	require.NoError(err)
	require.Equal(uint64(30), adminTok)

	custody, _, err := storage.GetCustody(ctx, v.db, usdt)
	require.NoError(err)
	require.Equal(uint64(10), custody.Balance)
}

func TestVaultRoleRotation(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	now := time.Unix(1_700_000_000, 0)

	v, _ := newTestVault(t, &now)
	_, err := v.Submit(ctx, payer, &actions.Deposit{Amount: 100})
	require.NoError(err)

	_, err = v.Submit(ctx, admin, &actions.SetOperator{NewOperator: second})
	require.NoError(err)

	// Rotation takes effect immediately.
	_, err = v.Submit(ctx, operator, &actions.SendWithdraw{Receiver: receiver, Amount: 1})
	require.ErrorIs(err, auth.ErrUnauthorized)
	_, err = v.Submit(ctx, second, &actions.SendWithdraw{Receiver: receiver, Amount: 1})
	require.NoError(err)

	_, err = v.Submit(ctx, admin, &actions.SetAdmin{NewAdmin: second})
	require.NoError(err)
	_, err = v.Submit(ctx, admin, &actions.Withdraw{Amount: 1})
	require.ErrorIs(err, auth.ErrUnauthorized)
	_, err = v.Submit(ctx, second, &actions.Withdraw{Amount: 1})
	require.NoError(err)
}

func TestVaultInitializeOnce(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	now := time.Unix(1_700_000_000, 0)

	v, _ := newTestVault(t, &now)

	before, err := storage.GetBalance(ctx, v.db, payer, storage.NativeAsset)
	require.NoError(err)

	// A rerun fails and must not double-credit any allocation.
	g := genesis.NewDefaultGenesis([]*genesis.CustomAllocation{
		{Address: payer.String(), Balance: 10_000_000_000},
	})
	err = v.Initialize(ctx, g)
	require.ErrorIs(err, storage.ErrAlreadyInitialized)

	after, err := storage.GetBalance(ctx, v.db, payer, storage.NativeAsset)
	require.NoError(err)
	require.Equal(before, after)
}

func TestVaultSubscriberFailureKeepsCommit(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	now := time.Unix(1_700_000_000, 0)

	v, _ := newTestVault(t, &now)
	v.Subscribe(event.SubscriptionFunc[Event]{
		AcceptF: func(context.Context, Event) error {
			return errors.New("backend down")
		},
	})

	// The transition committed, so the caller must not see an error; a
	// resubmit on error would double-apply the deposit.
	out, err := v.Submit(ctx, payer, &actions.Deposit{Amount: 100})
	require.NoError(err)
	require.Equal(&actions.DepositResult{Balance: 100}, out)

	record, exists, err := storage.GetVault(ctx, v.db)
	require.NoError(err)
	require.True(exists)
	require.Equal(uint64(100), record.Balance)
}

func TestVaultEvents(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	now := time.Unix(1_700_000_000, 0)

	v, _ := newTestVault(t, &now)

	var got []Event
	v.Subscribe(event.SubscriptionFunc[Event]{
		AcceptF: func(_ context.Context, e Event) error {
			got = append(got, e)
			return nil
		},
	})

	_, err := v.Submit(ctx, payer, &actions.Deposit{Amount: 100})
	require.NoError(err)

	// Rejected operations emit nothing.
	_, err = v.Submit(ctx, receiver, &actions.Withdraw{Amount: 1})
	require.ErrorIs(err, auth.ErrUnauthorized)

	now = now.Add(5 * time.Second)
	_, err = v.Submit(ctx, operator, &actions.SendWithdraw{Receiver: receiver, Amount: 40})
	require.NoError(err)

	require.Equal([]Event{
		{
			Kind:   KindDeposit,
			User:   payer,
			Holder: storage.VaultAddress(),
			Amount: 100,
			Time:   1_700_000_000,
		},
		{
			Kind:   KindWithdraw,
			User:   receiver,
			Holder: storage.VaultAddress(),
			Amount: 40,
			Time:   1_700_000_005,
		},
	}, got)
}
