// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// OneToOne leaves every quantity unchanged.
var OneToOne = ScaleFactor{Numerator: 1, Denominator: 1}

// ScaleFactor is the ratio Numerator:Denominator. Both parts are positive.
type ScaleFactor struct {
	Numerator   uint64
	Denominator uint64
}

// ParseScaleFactor parses "N:D".
func ParseScaleFactor(s string) (ScaleFactor, error) {
	numerator, denominator, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return ScaleFactor{}, fmt.Errorf("%w: %q is not of the form N:D", ErrInvalidScaleFactor, s)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(numerator), 10, 64)
	if err != nil {
		return ScaleFactor{}, fmt.Errorf("%w: numerator of %q: %w", ErrInvalidScaleFactor, s, err)
	}
	d, err := strconv.ParseUint(strings.TrimSpace(denominator), 10, 64)
	if err != nil {
		return ScaleFactor{}, fmt.Errorf("%w: denominator of %q: %w", ErrInvalidScaleFactor, s, err)
	}
	if n == 0 || d == 0 {
		return ScaleFactor{}, fmt.Errorf("%w: %q must be positive", ErrInvalidScaleFactor, s)
	}
	return ScaleFactor{Numerator: n, Denominator: d}, nil
}

// Compare orders scale factors by the ratio they represent.
func (s ScaleFactor) Compare(other ScaleFactor) int {
	var lhs, rhs uint256.Int
	lhs.SetUint64(s.Numerator)
	lhs.Mul(&lhs, uint256.NewInt(other.Denominator)) // range is [0, MaxUint128]
	rhs.SetUint64(other.Numerator)
	rhs.Mul(&rhs, uint256.NewInt(s.Denominator)) // range is [0, MaxUint128]
	return lhs.Cmp(&rhs)
}

// Scaling returns n * Numerator / Denominator, rounded down but never below
// one for a positive n. Results that do not fit in 64 bits saturate.
func (s ScaleFactor) Scaling(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	var scaled uint256.Int
	scaled.SetUint64(n)
	scaled.Mul(&scaled, uint256.NewInt(s.Numerator)) // range is [0, MaxUint128]
	scaled.Div(&scaled, uint256.NewInt(s.Denominator))
	if !scaled.IsUint64() {
		return math.MaxUint64
	}
	return max(1, scaled.Uint64())
}

func (s ScaleFactor) String() string {
	return fmt.Sprintf("%d:%d", s.Numerator, s.Denominator)
}
