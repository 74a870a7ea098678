// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import (
	"fmt"

	safemath "github.com/consensusnode/admission/utils/math"
)

// LeakyBucket is a fixed capacity accumulator of used units.
//
// Invariant: 0 <= used <= capacity.
//
// LeakyBucket is not safe for concurrent use.
type LeakyBucket struct {
	used     uint64
	capacity uint64
}

func NewLeakyBucket(capacity uint64) (*LeakyBucket, error) {
	if capacity == 0 {
		return nil, ErrNonPositiveCapacity
	}
	return &LeakyBucket{capacity: capacity}, nil
}

func (b *LeakyBucket) Used() uint64 {
	return b.used
}

func (b *LeakyBucket) Capacity() uint64 {
	return b.capacity
}

func (b *LeakyBucket) CapacityFree() uint64 {
	return b.capacity - b.used
}

// UseCapacity marks [units] as used. Either all of [units] are used or none of
// them are.
func (b *LeakyBucket) UseCapacity(units uint64) error {
	newUsed, err := safemath.Add(b.used, units)
	if err != nil || newUsed > b.capacity {
		return fmt.Errorf("%w: cannot use %d units with %d of %d free",
			ErrInsufficientCapacity,
			units,
			b.CapacityFree(),
			b.capacity,
		)
	}
	b.used = newUsed
	return nil
}

// Leak frees up to [units] of used capacity. Leaking more than is used empties
// the bucket.
func (b *LeakyBucket) Leak(units uint64) {
	used, err := safemath.Sub(b.used, units)
	if err != nil {
		used = 0
	}
	b.used = used
}

// ResetUsed overwrites the used capacity. Only expected to be called when
// restoring a snapshot.
func (b *LeakyBucket) ResetUsed(amount uint64) error {
	if amount > b.capacity {
		return fmt.Errorf("%w: %d exceeds capacity %d", ErrInvalidUsage, amount, b.capacity)
	}
	b.used = amount
	return nil
}
