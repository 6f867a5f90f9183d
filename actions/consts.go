// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

const (
	initMasterID uint8 = iota
	depositID
	withdrawID
	sendWithdrawID
	initTokenCustodyID
	depositTokenID
	withdrawTokenID
	sendWithdrawTokenID
	setAdminID
	setOperatorID
)
