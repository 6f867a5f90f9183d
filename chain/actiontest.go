// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/state"
)

// ActionTest is a single parameterized test. It calls Execute on the
// action with the passed parameters and checks that all assertions pass.
type ActionTest struct {
	Action Action

	Rules     Rules
	State     state.Mutable
	Timestamp int64
	Actor     codec.Address

	ExpectedOutput codec.Typed
	ExpectedErr    error

	// Assertion is run after Execute for checks beyond the output/error
	// pair (e.g. inspecting resulting state).
	Assertion func(ctx context.Context, t *testing.T, mu state.Mutable)
}

type ActionTestSuite struct {
	Tests map[string]ActionTest
}

// Run executes all tests from the test suite and makes sure all
// assertions pass.
func (suite *ActionTestSuite) Run(t *testing.T) {
	for name, test := range suite.Tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.TODO()

			output, err := test.Action.Execute(ctx, test.Rules, test.State, test.Timestamp, test.Actor)

			require.ErrorIs(err, test.ExpectedErr)
			if test.ExpectedOutput != nil {
				require.Equal(test.ExpectedOutput, output)
			}
			if test.Assertion != nil {
				test.Assertion(ctx, t, test.State)
			}
		})
	}
}
