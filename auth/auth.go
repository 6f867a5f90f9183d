// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"errors"
	"fmt"

	"github.com/probalance/provault/codec"
)

// Role is the privilege an operation demands of its caller.
type Role uint8

const (
	// Any allows every caller (deposits, one-time setup).
	Any Role = iota
	// Admin may withdraw vault funds to itself and rotate identities.
	Admin
	// Operator may send vault funds to arbitrary receivers.
	Operator
)

// ErrUnauthorized reports a caller/role mismatch. Distinct from balance
// and initialization failures so callers can tell a wrong signer apart.
var ErrUnauthorized = errors.New("unauthorized")

func (r Role) String() string {
	switch r {
	case Any:
		return "any"
	case Admin:
		return "admin"
	case Operator:
		return "operator"
	default:
		return fmt.Sprintf("role(%d)", r)
	}
}

// Authorize is a pure predicate over already-loaded vault identities. It
// binds to [actor], the signing caller, never to request-supplied
// fields.
func Authorize(admin codec.Address, operator codec.Address, actor codec.Address, required Role) error {
	switch required {
	case Any:
		return nil
	case Admin:
		if actor != admin {
			return fmt.Errorf("%w: %s is not admin", ErrUnauthorized, actor)
		}
		return nil
	case Operator:
		if actor != operator {
			return fmt.Errorf("%w: %s is not operator", ErrUnauthorized, actor)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown role %s", ErrUnauthorized, required)
	}
}
