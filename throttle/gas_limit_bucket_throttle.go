// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import (
	"math"
	"time"

	safemath "github.com/consensusnode/admission/utils/math"
)

const (
	nanosPerSecond = uint64(time.Second)

	// MaxLeakPerOverflow is leaked when elapsedNanos * capacity would not fit
	// in a signed 64-bit integer.
	MaxLeakPerOverflow = math.MaxInt64 / nanosPerSecond
)

// GasLimitBucketThrottle admits gas at a rate of capacity gas per second.
//
// Unlike BucketThrottle, the last allowed use accumulates across calls to
// Allow until ResetLastAllowedUse is called. A single transaction may be
// granted gas several times before its outcome is final.
type GasLimitBucketThrottle struct {
	lastAllowedUnits uint64
	bucket           *LeakyBucket
}

func NewGasLimitBucketThrottle(capacity uint64) (*GasLimitBucketThrottle, error) {
	bucket, err := NewLeakyBucket(capacity)
	if err != nil {
		return nil, err
	}
	return &GasLimitBucketThrottle{
		bucket: bucket,
	}, nil
}

// Allow leaks the gas freed over [elapsedNanos] and then attempts to use
// [gasLimit]. If there is not enough free capacity, nothing is used and false
// is returned.
func (g *GasLimitBucketThrottle) Allow(gasLimit uint64, elapsedNanos uint64) bool {
	g.LeakFor(elapsedNanos)
	if g.bucket.CapacityFree() < gasLimit {
		return false
	}
	if err := g.bucket.UseCapacity(gasLimit); err != nil {
		return false
	}
	lastAllowedUnits, err := safemath.Add(g.lastAllowedUnits, gasLimit)
	if err != nil {
		lastAllowedUnits = math.MaxUint64
	}
	g.lastAllowedUnits = lastAllowedUnits
	return true
}

func (g *GasLimitBucketThrottle) LeakFor(elapsedNanos uint64) {
	g.bucket.Leak(g.effectiveLeak(elapsedNanos))
}

func (g *GasLimitBucketThrottle) effectiveLeak(elapsedNanos uint64) uint64 {
	capacity := g.bucket.Capacity()
	if elapsedNanos >= nanosPerSecond {
		return capacity
	}
	product, err := safemath.Mul(elapsedNanos, capacity)
	if err != nil || product > math.MaxInt64 {
		return MaxLeakPerOverflow
	}
	return product / nanosPerSecond
}

// ReclaimLastAllowedUse returns all the gas allowed since the last call to
// ResetLastAllowedUse.
func (g *GasLimitBucketThrottle) ReclaimLastAllowedUse() {
	g.bucket.Leak(g.lastAllowedUnits)
}

func (g *GasLimitBucketThrottle) ResetLastAllowedUse() {
	g.lastAllowedUnits = 0
}

func (g *GasLimitBucketThrottle) LastAllowedUnits() uint64 {
	return g.lastAllowedUnits
}

func (g *GasLimitBucketThrottle) PercentUsed(elapsedNanos uint64) float64 {
	leaked := g.effectiveLeak(elapsedNanos)
	used := g.bucket.Used() - min(leaked, g.bucket.Used())
	return 100 * float64(used) / float64(g.bucket.Capacity())
}

func (g *GasLimitBucketThrottle) InstantaneousPercentUsed() float64 {
	return 100 * float64(g.bucket.Used()) / float64(g.bucket.Capacity())
}

// Mtps reports the gas rate in milli-gas per second.
func (g *GasLimitBucketThrottle) Mtps() uint64 {
	mtps, err := safemath.Mul(g.bucket.Capacity(), MtpsPerTps)
	if err != nil {
		return math.MaxUint64
	}
	return mtps
}

func (g *GasLimitBucketThrottle) Used() uint64 {
	return g.bucket.Used()
}

func (g *GasLimitBucketThrottle) Capacity() uint64 {
	return g.bucket.Capacity()
}

func (*GasLimitBucketThrottle) Name() string {
	return ""
}
