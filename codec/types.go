// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by self-identifying values (actions and their
// results) so callers can discriminate them on the wire.
type Typed interface {
	GetTypeID() uint8
}
