// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import (
	"fmt"
	"time"
)

const GasThrottleName = "Gas"

// GasLimitDeterministicThrottle drives a GasLimitBucketThrottle with consensus
// time.
type GasLimitDeterministicThrottle struct {
	delegate *GasLimitBucketThrottle

	// nil until the first decision
	lastDecisionTime *time.Time
}

// NewGasLimitDeterministicThrottle returns a throttle admitting [capacity] gas
// per second.
func NewGasLimitDeterministicThrottle(capacity uint64) (*GasLimitDeterministicThrottle, error) {
	delegate, err := NewGasLimitBucketThrottle(capacity)
	if err != nil {
		return nil, err
	}
	return &GasLimitDeterministicThrottle{
		delegate: delegate,
	}, nil
}

// Allow reports whether [gasLimit] fits in the throttle at [now]. The last
// decision time moves to [now] whether or not it fits.
func (g *GasLimitDeterministicThrottle) Allow(gasLimit uint64, now time.Time) (bool, error) {
	elapsedNanos, err := elapsedNanosSince(g.lastDecisionTime, now)
	if err != nil {
		return false, err
	}
	allowed := g.delegate.Allow(gasLimit, elapsedNanos)
	g.lastDecisionTime = canonicalTime(now)
	return allowed, nil
}

func (g *GasLimitDeterministicThrottle) LeakUntil(now time.Time) error {
	elapsedNanos, err := elapsedNanosSince(g.lastDecisionTime, now)
	if err != nil {
		return err
	}
	g.delegate.LeakFor(elapsedNanos)
	g.lastDecisionTime = canonicalTime(now)
	return nil
}

func (g *GasLimitDeterministicThrottle) ReclaimLastAllowedUse() {
	g.delegate.ReclaimLastAllowedUse()
}

func (g *GasLimitDeterministicThrottle) ResetLastAllowedUse() {
	g.delegate.ResetLastAllowedUse()
}

func (g *GasLimitDeterministicThrottle) PercentUsed(now time.Time) float64 {
	elapsedNanos, err := elapsedNanosSince(g.lastDecisionTime, now)
	if err != nil {
		return g.delegate.InstantaneousPercentUsed()
	}
	return g.delegate.PercentUsed(elapsedNanos)
}

func (g *GasLimitDeterministicThrottle) InstantaneousPercentUsed() float64 {
	return g.delegate.InstantaneousPercentUsed()
}

func (g *GasLimitDeterministicThrottle) UsageSnapshot() UsageSnapshot {
	return UsageSnapshot{
		Used:             g.delegate.Used(),
		LastDecisionTime: copyTime(g.lastDecisionTime),
	}
}

func (g *GasLimitDeterministicThrottle) ResetUsageTo(s UsageSnapshot) error {
	if err := g.delegate.bucket.ResetUsed(s.Used); err != nil {
		return fmt.Errorf("couldn't restore gas throttle: %w", err)
	}
	g.lastDecisionTime = nil
	if s.LastDecisionTime != nil {
		g.lastDecisionTime = canonicalTime(*s.LastDecisionTime)
	}
	return nil
}

func (g *GasLimitDeterministicThrottle) Equal(other *GasLimitDeterministicThrottle) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.Capacity() == other.Capacity()
}

func (g *GasLimitDeterministicThrottle) LastDecisionTime() (time.Time, bool) {
	if g.lastDecisionTime == nil {
		return time.Time{}, false
	}
	return *g.lastDecisionTime, true
}

func (g *GasLimitDeterministicThrottle) Delegate() *GasLimitBucketThrottle {
	return g.delegate
}

func (*GasLimitDeterministicThrottle) Name() string {
	return GasThrottleName
}

func (g *GasLimitDeterministicThrottle) Used() uint64 {
	return g.delegate.Used()
}

func (g *GasLimitDeterministicThrottle) Capacity() uint64 {
	return g.delegate.Capacity()
}

func (g *GasLimitDeterministicThrottle) Mtps() uint64 {
	return g.delegate.Mtps()
}
