// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import "github.com/holiman/uint256"

var (
	_ CongestibleThrottle = (*BucketThrottle)(nil)
	_ CongestibleThrottle = (*GasLimitBucketThrottle)(nil)
	_ CongestibleThrottle = (*DeterministicThrottle)(nil)
	_ CongestibleThrottle = (*GasLimitDeterministicThrottle)(nil)

	hundred = uint256.NewInt(100)
)

// CongestibleThrottle exposes the state of a throttle to components that
// measure congestion. It never modifies the throttle.
type CongestibleThrottle interface {
	Used() uint64
	Capacity() uint64
	Mtps() uint64
	Name() string
}

// UtilizationPercent returns 100 * used / capacity, rounded down.
func UtilizationPercent(t CongestibleThrottle) uint64 {
	capacity := t.Capacity()
	if capacity == 0 {
		return 0
	}

	var used, denominator uint256.Int
	used.SetUint64(t.Used())       // range is [0, MaxUint64]
	used.Mul(&used, hundred)       // range is [0, MaxUint71]
	denominator.SetUint64(capacity)
	return used.Div(&used, &denominator).Uint64()
}
