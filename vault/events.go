// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"github.com/probalance/provault/actions"
	"github.com/probalance/provault/chain"
	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/storage"
)

// Kind discriminates committed vault events so a backend can sync
// balances off the stream.
type Kind uint8

const (
	// KindDeposit is any deposit into vault custody.
	KindDeposit Kind = iota
	// KindAdminWithdraw is an admin self-withdrawal.
	KindAdminWithdraw
	// KindWithdraw is an operator send to a receiver.
	KindWithdraw
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindAdminWithdraw:
		return "admin_withdraw"
	case KindWithdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}

// Event describes one committed asset movement.
type Event struct {
	Kind Kind `json:"kind"`

	// User is the external party: the depositor for deposits, the payee
	// for withdraw-class operations.
	User codec.Address `json:"user"`

	// Holder is the custody account the funds moved through.
	Holder codec.Address `json:"holder"`

	Amount uint64 `json:"amount"`
	Time   int64  `json:"time"`
}

// eventFor maps a committed action onto its event, if it emits one.
// Setup and role-rotation actions move no funds and stay silent.
func eventFor(action chain.Action, actor codec.Address, t int64) (Event, bool) {
	switch a := action.(type) {
	case *actions.Deposit:
		return Event{KindDeposit, actor, storage.VaultAddress(), a.Amount, t}, true
	case *actions.DepositToken:
		return Event{KindDeposit, actor, storage.CustodyAddress(a.Mint), a.Amount, t}, true
	case *actions.Withdraw:
		return Event{KindAdminWithdraw, actor, storage.VaultAddress(), a.Amount, t}, true
	case *actions.WithdrawToken:
		return Event{KindAdminWithdraw, actor, storage.CustodyAddress(a.Mint), a.Amount, t}, true
	case *actions.SendWithdraw:
		return Event{KindWithdraw, a.Receiver, storage.VaultAddress(), a.Amount, t}, true
	case *actions.SendWithdrawToken:
		return Event{KindWithdraw, a.Receiver, storage.CustodyAddress(a.Mint), a.Amount, t}, true
	default:
		return Event{}, false
	}
}
