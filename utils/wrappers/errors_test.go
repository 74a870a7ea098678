// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrs(t *testing.T) {
	require := require.New(t)

	var (
		errFirst  = errors.New("first")
		errSecond = errors.New("second")
		errs      Errs
	)
	require.NoError(errs.Err)
	require.NoError(errs.Joined())

	errs.Add(nil, errFirst)
	errs.Add(errSecond, nil)

	require.Equal(errFirst, errs.Err)

	joined := errs.Joined()
	require.ErrorIs(joined, errFirst)
	require.ErrorIs(joined, errSecond)
}
