// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/state"
)

// Action is a single vault operation. Execute runs the whole state
// transition (authorization, bookkeeping, asset movement) against [mu];
// the processor guarantees that either every write in [mu] lands or
// none do.
type Action interface {
	codec.Typed

	// Execute performs the operation on behalf of [actor], the signing
	// caller. Request fields never stand in for [actor] during
	// authorization. [timestamp] is the substrate time in unix seconds.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
	) (codec.Typed, error)
}

// Rules are the deployment parameters actions execute under.
type Rules interface {
	// GetCustodyReserve is the protocol-reserved minimum, in native base
	// units, that the vault custody account keeps on top of the recorded
	// balance. Funded from the payer at initialization and never spent.
	GetCustodyReserve() uint64
}
