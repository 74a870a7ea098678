// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGasLimitDeterministicThrottle(t *testing.T) {
	require := require.New(t)

	_, err := NewGasLimitDeterministicThrottle(0)
	require.ErrorIs(err, ErrNonPositiveCapacity)

	g, err := NewGasLimitDeterministicThrottle(1_000_000)
	require.NoError(err)
	require.Equal(GasThrottleName, g.Name())

	allowed, err := g.Allow(1_000_000, consensusNow)
	require.NoError(err)
	require.True(allowed)

	allowed, err = g.Allow(1, consensusNow)
	require.NoError(err)
	require.False(allowed)

	allowed, err = g.Allow(250_000, consensusNow.Add(250*time.Millisecond))
	require.NoError(err)
	require.True(allowed)
	require.Equal(uint64(1_000_000), g.Used())

	_, err = g.Allow(1, consensusNow)
	require.ErrorIs(err, ErrTimelineRegression)

	require.NoError(g.LeakUntil(consensusNow.Add(time.Hour)))
	require.Zero(g.Used())
	require.Zero(g.PercentUsed(consensusNow.Add(2 * time.Hour)))
	require.Zero(g.InstantaneousPercentUsed())
}

func TestGasLimitDeterministicThrottleHugeGapDrains(t *testing.T) {
	require := require.New(t)

	g, err := NewGasLimitDeterministicThrottle(math.MaxUint64)
	require.NoError(err)

	allowed, err := g.Allow(math.MaxUint64, time.Unix(0, 0))
	require.NoError(err)
	require.True(allowed)

	// time.Time.Sub saturates rather than overflowing.
	allowed, err = g.Allow(math.MaxUint64, time.Unix(math.MaxInt64/2, 0))
	require.NoError(err)
	require.True(allowed)
}

func TestGasLimitDeterministicThrottleReclaim(t *testing.T) {
	require := require.New(t)

	g, err := NewGasLimitDeterministicThrottle(1_000)
	require.NoError(err)

	for _, gas := range []uint64{100, 200, 300} {
		allowed, err := g.Allow(gas, consensusNow)
		require.NoError(err)
		require.True(allowed)
	}
	require.Equal(uint64(600), g.Delegate().LastAllowedUnits())

	g.ReclaimLastAllowedUse()
	require.Zero(g.Used())

	g.ResetLastAllowedUse()
	require.Zero(g.Delegate().LastAllowedUnits())
}

func TestGasLimitDeterministicThrottleSnapshot(t *testing.T) {
	require := require.New(t)

	g, err := NewGasLimitDeterministicThrottle(1_000)
	require.NoError(err)

	allowed, err := g.Allow(400, consensusNow)
	require.NoError(err)
	require.True(allowed)

	snapshot := g.UsageSnapshot()
	require.Equal(uint64(400), snapshot.Used)
	require.Equal(consensusNow, *snapshot.LastDecisionTime)

	restored, err := NewGasLimitDeterministicThrottle(1_000)
	require.NoError(err)
	require.NoError(restored.ResetUsageTo(snapshot))
	require.True(snapshot.Equal(restored.UsageSnapshot()))
	last, ok := restored.LastDecisionTime()
	require.True(ok)
	require.Equal(consensusNow, last)

	err = restored.ResetUsageTo(UsageSnapshot{Used: 1_001})
	require.ErrorIs(err, ErrInvalidUsage)
	require.True(snapshot.Equal(restored.UsageSnapshot()))

	require.True(g.Equal(restored))
	other, err := NewGasLimitDeterministicThrottle(1_001)
	require.NoError(err)
	require.False(g.Equal(other))
}
