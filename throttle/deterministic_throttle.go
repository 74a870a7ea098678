// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import (
	"fmt"
	"time"
)

// DeterministicThrottle drives a BucketThrottle with consensus time rather than
// the local clock. Every replica presenting the same sequence of decisions
// reaches the same results.
type DeterministicThrottle struct {
	name     string
	delegate *BucketThrottle

	// nil until the first decision
	lastDecisionTime *time.Time
}

func NewDeterministicThrottle(name string, delegate *BucketThrottle) *DeterministicThrottle {
	return &DeterministicThrottle{
		name:     name,
		delegate: delegate,
	}
}

func DeterministicWithTps(name string, tps uint64) (*DeterministicThrottle, error) {
	delegate, err := WithTps(tps)
	if err != nil {
		return nil, err
	}
	return NewDeterministicThrottle(name, delegate), nil
}

func DeterministicWithMtps(name string, mtps uint64) (*DeterministicThrottle, error) {
	delegate, err := WithMtps(mtps)
	if err != nil {
		return nil, err
	}
	return NewDeterministicThrottle(name, delegate), nil
}

func DeterministicWithTpsAndBurstPeriod(name string, tps uint64, burstPeriodSeconds uint64) (*DeterministicThrottle, error) {
	delegate, err := WithTpsAndBurstPeriod(tps, burstPeriodSeconds)
	if err != nil {
		return nil, err
	}
	return NewDeterministicThrottle(name, delegate), nil
}

func DeterministicWithMtpsAndBurstPeriod(name string, mtps uint64, burstPeriodSeconds uint64) (*DeterministicThrottle, error) {
	delegate, err := WithMtpsAndBurstPeriod(mtps, burstPeriodSeconds)
	if err != nil {
		return nil, err
	}
	return NewDeterministicThrottle(name, delegate), nil
}

// Allow reports whether [n] transactions fit in the throttle at [now]. The
// last decision time moves to [now] whether or not they fit.
//
// ErrTimelineRegression is returned, and nothing is modified, if [now] is
// before the previous decision.
func (d *DeterministicThrottle) Allow(n uint64, now time.Time) (bool, error) {
	elapsedNanos, err := elapsedNanosSince(d.lastDecisionTime, now)
	if err != nil {
		return false, err
	}
	allowed := d.delegate.Allow(n, elapsedNanos)
	d.lastDecisionTime = canonicalTime(now)
	return allowed, nil
}

// LeakUntil frees the capacity drained up to [now] without using any.
func (d *DeterministicThrottle) LeakUntil(now time.Time) error {
	elapsedNanos, err := elapsedNanosSince(d.lastDecisionTime, now)
	if err != nil {
		return err
	}
	d.delegate.LeakFor(elapsedNanos)
	d.lastDecisionTime = canonicalTime(now)
	return nil
}

func (d *DeterministicThrottle) ReclaimLastAllowedUse() {
	d.delegate.ReclaimLastAllowedUse()
}

func (d *DeterministicThrottle) ResetLastAllowedUse() {
	d.delegate.ResetLastAllowedUse()
}

// ResetUsage empties the bucket. The timeline is kept.
func (d *DeterministicThrottle) ResetUsage() {
	d.delegate.ResetLastAllowedUse()
	// Zero is always a valid usage.
	_ = d.delegate.bucket.ResetUsed(0)
}

// PercentUsed returns the percent of capacity that would be used at [now]. The
// throttle is not modified. Times before the last decision report the current
// usage.
func (d *DeterministicThrottle) PercentUsed(now time.Time) float64 {
	elapsedNanos, err := elapsedNanosSince(d.lastDecisionTime, now)
	if err != nil {
		return d.delegate.InstantaneousPercentUsed()
	}
	return d.delegate.PercentUsed(elapsedNanos)
}

func (d *DeterministicThrottle) InstantaneousPercentUsed() float64 {
	return d.delegate.InstantaneousPercentUsed()
}

func (d *DeterministicThrottle) UsageSnapshot() UsageSnapshot {
	return UsageSnapshot{
		Used:             d.delegate.Used(),
		LastDecisionTime: copyTime(d.lastDecisionTime),
	}
}

// ResetUsageTo restores the state captured by UsageSnapshot. If the snapshot's
// usage does not fit the throttle, an error is returned and nothing is
// modified.
func (d *DeterministicThrottle) ResetUsageTo(s UsageSnapshot) error {
	if err := d.delegate.bucket.ResetUsed(s.Used); err != nil {
		return fmt.Errorf("couldn't restore throttle %q: %w", d.name, err)
	}
	d.lastDecisionTime = nil
	if s.LastDecisionTime != nil {
		d.lastDecisionTime = canonicalTime(*s.LastDecisionTime)
	}
	return nil
}

// Equal reports whether [other] is configured identically. Usage and
// timeline are ignored.
func (d *DeterministicThrottle) Equal(other *DeterministicThrottle) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Capacity() == other.Capacity() && d.Mtps() == other.Mtps()
}

func (d *DeterministicThrottle) LastDecisionTime() (time.Time, bool) {
	if d.lastDecisionTime == nil {
		return time.Time{}, false
	}
	return *d.lastDecisionTime, true
}

func (d *DeterministicThrottle) Delegate() *BucketThrottle {
	return d.delegate
}

func (d *DeterministicThrottle) Name() string {
	return d.name
}

func (d *DeterministicThrottle) Used() uint64 {
	return d.delegate.Used()
}

func (d *DeterministicThrottle) Capacity() uint64 {
	return d.delegate.Capacity()
}

func (d *DeterministicThrottle) Mtps() uint64 {
	return d.delegate.Mtps()
}

func (d *DeterministicThrottle) String() string {
	return fmt.Sprintf("DeterministicThrottle{name=%q, mtps=%d, capacity=%d (used=%d)}",
		d.name,
		d.Mtps(),
		d.Capacity(),
		d.Used(),
	)
}

// elapsedNanosSince returns the nanoseconds between [last] and [now], or zero
// if there is no last decision. Durations too long to represent saturate.
func elapsedNanosSince(last *time.Time, now time.Time) (uint64, error) {
	if last == nil {
		return 0, nil
	}
	elapsed := now.Sub(*last)
	if elapsed < 0 {
		return 0, fmt.Errorf("%w: %s is %s before %s",
			ErrTimelineRegression,
			now.Format(time.RFC3339Nano),
			-elapsed,
			last.Format(time.RFC3339Nano),
		)
	}
	return uint64(elapsed), nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
