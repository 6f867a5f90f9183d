// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "github.com/probalance/provault/chain"

var _ chain.Rules = (*Rules)(nil)

// DefaultCustodyReserve keeps the vault custody account funded above the
// protocol minimum even when the recorded balance is zero.
const DefaultCustodyReserve uint64 = 1_000_000

type Rules struct {
	CustodyReserve uint64 `json:"custodyReserve"`
}

func NewDefaultRules() *Rules {
	return &Rules{
		CustodyReserve: DefaultCustodyReserve,
	}
}

func (r *Rules) GetCustodyReserve() uint64 {
	return r.CustodyReserve
}
