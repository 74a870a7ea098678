// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseScaleFactor(t *testing.T) {
	tests := []struct {
		input       string
		expected    ScaleFactor
		expectedErr error
	}{
		{input: "10:1", expected: ScaleFactor{Numerator: 10, Denominator: 1}},
		{input: " 3 : 2 ", expected: ScaleFactor{Numerator: 3, Denominator: 2}},
		{input: "10", expectedErr: ErrInvalidScaleFactor},
		{input: "a:1", expectedErr: ErrInvalidScaleFactor},
		{input: "1:b", expectedErr: ErrInvalidScaleFactor},
		{input: "0:1", expectedErr: ErrInvalidScaleFactor},
		{input: "1:0", expectedErr: ErrInvalidScaleFactor},
		{input: "-1:1", expectedErr: ErrInvalidScaleFactor},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			require := require.New(t)

			sf, err := ParseScaleFactor(test.input)
			require.ErrorIs(err, test.expectedErr)
			require.Equal(test.expected, sf)
		})
	}
}

func TestScaleFactorCompare(t *testing.T) {
	require := require.New(t)

	half := ScaleFactor{Numerator: 1, Denominator: 2}
	alsoHalf := ScaleFactor{Numerator: 2, Denominator: 4}
	threeHalves := ScaleFactor{Numerator: 3, Denominator: 2}
	huge := ScaleFactor{Numerator: math.MaxUint64, Denominator: 1}
	almostHuge := ScaleFactor{Numerator: math.MaxUint64 - 1, Denominator: 1}

	require.Zero(half.Compare(alsoHalf))
	require.Equal(-1, half.Compare(OneToOne))
	require.Equal(1, threeHalves.Compare(OneToOne))
	require.Equal(1, huge.Compare(almostHuge))
	require.Equal(-1, almostHuge.Compare(huge))
}

func TestScaleFactorScaling(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(15), ScaleFactor{Numerator: 3, Denominator: 2}.Scaling(10))
	require.Equal(uint64(1), ScaleFactor{Numerator: 1, Denominator: 3}.Scaling(1))
	require.Zero(ScaleFactor{Numerator: 5, Denominator: 1}.Scaling(0))
	require.Equal(uint64(math.MaxUint64), ScaleFactor{Numerator: 2, Denominator: 1}.Scaling(math.MaxUint64))
	require.Equal(uint64(math.MaxUint64), ScaleFactor{Numerator: math.MaxUint64, Denominator: math.MaxUint64}.Scaling(math.MaxUint64))
	require.Equal(uint64(42), OneToOne.Scaling(42))
	require.Equal("3:2", ScaleFactor{Numerator: 3, Denominator: 2}.String())
}
