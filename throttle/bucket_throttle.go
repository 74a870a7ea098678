// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"

	safemath "github.com/consensusnode/admission/utils/math"
)

const (
	// One transaction is represented by CapacityUnitsPerTxn capacity units, so
	// rates below 1 TPS keep integer precision.
	CapacityUnitsPerTxn     uint64 = 1_000_000_000_000
	CapacityUnitsPerNanoTxn uint64 = 1_000
	NtpsPerMtps             uint64 = 1_000_000
	MtpsPerTps              uint64 = 1_000

	DefaultBurstPeriodMs uint64 = 1_000

	msPerSecond uint64 = 1_000
)

// BucketThrottle admits transactions at a rate given in milli-transactions per
// second (mTPS), allowing bursts of up to mtps * burstPeriod.
//
// Leaking for one nanosecond frees exactly mtps capacity units.
type BucketThrottle struct {
	mtps             uint64
	lastAllowedUnits uint64
	bucket           *LeakyBucket
}

func WithTps(tps uint64) (*BucketThrottle, error) {
	return WithTpsAndBurstPeriodMs(tps, DefaultBurstPeriodMs)
}

func WithMtps(mtps uint64) (*BucketThrottle, error) {
	return WithMtpsAndBurstPeriodMs(mtps, DefaultBurstPeriodMs)
}

func WithTpsAndBurstPeriod(tps uint64, burstPeriodSeconds uint64) (*BucketThrottle, error) {
	burstPeriodMs, err := safemath.Mul(burstPeriodSeconds, msPerSecond)
	if err != nil {
		return nil, fmt.Errorf("%w: burst period of %ds", ErrCapacityOverflow, burstPeriodSeconds)
	}
	return WithTpsAndBurstPeriodMs(tps, burstPeriodMs)
}

func WithMtpsAndBurstPeriod(mtps uint64, burstPeriodSeconds uint64) (*BucketThrottle, error) {
	burstPeriodMs, err := safemath.Mul(burstPeriodSeconds, msPerSecond)
	if err != nil {
		return nil, fmt.Errorf("%w: burst period of %ds", ErrCapacityOverflow, burstPeriodSeconds)
	}
	return WithMtpsAndBurstPeriodMs(mtps, burstPeriodMs)
}

func WithTpsAndBurstPeriodMs(tps uint64, burstPeriodMs uint64) (*BucketThrottle, error) {
	mtps, err := safemath.Mul(tps, MtpsPerTps)
	if err != nil {
		return nil, fmt.Errorf("%w: %d TPS", ErrCapacityOverflow, tps)
	}
	return WithMtpsAndBurstPeriodMs(mtps, burstPeriodMs)
}

// WithMtpsAndBurstPeriodMs returns a throttle whose capacity is
//
//	mtps * NtpsPerMtps * CapacityUnitsPerNanoTxn * burstPeriodMs / 1000
//
// The capacity must fit in 64 bits and must admit at least one transaction.
func WithMtpsAndBurstPeriodMs(mtps uint64, burstPeriodMs uint64) (*BucketThrottle, error) {
	var capacity uint256.Int
	capacity.SetUint64(mtps)                                        // range is [0, MaxUint64]
	capacity.Mul(&capacity, uint256.NewInt(NtpsPerMtps))            // range is [0, MaxUint84]
	capacity.Mul(&capacity, uint256.NewInt(CapacityUnitsPerNanoTxn)) // range is [0, MaxUint94]
	capacity.Mul(&capacity, uint256.NewInt(burstPeriodMs))           // range is [0, MaxUint158]
	capacity.Div(&capacity, uint256.NewInt(msPerSecond))
	if !capacity.IsUint64() {
		return nil, fmt.Errorf("%w: %d mTPS with a %dms burst period",
			ErrCapacityOverflow,
			mtps,
			burstPeriodMs,
		)
	}

	units := capacity.Uint64()
	if units < CapacityUnitsPerTxn {
		return nil, fmt.Errorf("%w: %d mTPS with a %dms burst period",
			ErrCannotAllowTxn,
			mtps,
			burstPeriodMs,
		)
	}
	bucket, err := NewLeakyBucket(units)
	if err != nil {
		return nil, err
	}
	return &BucketThrottle{
		mtps:   mtps,
		bucket: bucket,
	}, nil
}

// Allow leaks the capacity freed over [elapsedNanos] and then attempts to use
// the capacity of [n] transactions. If there is not enough free capacity,
// nothing is used and false is returned.
func (b *BucketThrottle) Allow(n uint64, elapsedNanos uint64) bool {
	b.LeakFor(elapsedNanos)

	required, err := safemath.Mul(n, CapacityUnitsPerTxn)
	if err != nil || required > b.bucket.CapacityFree() {
		return false
	}
	if err := b.bucket.UseCapacity(required); err != nil {
		return false
	}
	b.lastAllowedUnits = required
	return true
}

// LeakFor frees the capacity that drains over [elapsedNanos]. An elapsed time
// long enough to overflow the leak computation empties the bucket.
func (b *BucketThrottle) LeakFor(elapsedNanos uint64) {
	leaked, err := safemath.Mul(elapsedNanos, b.mtps)
	if err != nil {
		leaked = math.MaxUint64
	}
	b.bucket.Leak(leaked)
}

// ReclaimLastAllowedUse returns the capacity used by the last successful
// Allow. Callers must reclaim at most once per Allow.
func (b *BucketThrottle) ReclaimLastAllowedUse() {
	b.bucket.Leak(b.lastAllowedUnits)
}

func (b *BucketThrottle) ResetLastAllowedUse() {
	b.lastAllowedUnits = 0
}

func (b *BucketThrottle) LastAllowedUnits() uint64 {
	return b.lastAllowedUnits
}

// PercentUsed returns the percent of capacity that would be used after
// leaking for [elapsedNanos]. The bucket is not modified.
func (b *BucketThrottle) PercentUsed(elapsedNanos uint64) float64 {
	leaked, err := safemath.Mul(elapsedNanos, b.mtps)
	if err != nil {
		leaked = math.MaxUint64
	}
	used := b.bucket.Used() - min(leaked, b.bucket.Used())
	return 100 * float64(used) / float64(b.bucket.Capacity())
}

func (b *BucketThrottle) InstantaneousPercentUsed() float64 {
	return 100 * float64(b.bucket.Used()) / float64(b.bucket.Capacity())
}

func (b *BucketThrottle) Mtps() uint64 {
	return b.mtps
}

func (b *BucketThrottle) Used() uint64 {
	return b.bucket.Used()
}

func (b *BucketThrottle) Capacity() uint64 {
	return b.bucket.Capacity()
}

func (*BucketThrottle) Name() string {
	return ""
}
