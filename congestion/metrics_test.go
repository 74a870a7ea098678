// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/consensusnode/admission/throttle"
	"github.com/consensusnode/admission/utils/logging"
)

func TestMetricsRegistersOnce(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	_, err := NewMetrics("admission", registry)
	require.NoError(err)

	_, err = NewMetrics("admission", registry)
	require.Error(err)
}

func TestMetricsReportMultiplierSource(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics("admission", registry)
	require.NoError(err)

	transfers, err := throttle.DeterministicWithTps("CryptoTransfer", 10)
	require.NoError(err)
	gas, err := throttle.NewGasLimitDeterministicThrottle(1_000)
	require.NoError(err)

	source := NewMultiplierSource(logging.NoLog{}, newTestMultipliers(t), 0, transfers, gas).WithMetrics(metrics)

	allowed, err := transfers.Allow(9, consensusNow)
	require.NoError(err)
	require.True(allowed)
	allowed, err = gas.Allow(100, consensusNow)
	require.NoError(err)
	require.True(allowed)

	require.Equal(uint64(8), source.UpdateMultiplier(consensusNow))

	require.Equal(float64(8), testutil.ToFloat64(metrics.multiplier))
	require.Equal(float64(90), testutil.ToFloat64(metrics.utilization.WithLabelValues("CryptoTransfer")))
	require.Equal(float64(10), testutil.ToFloat64(metrics.utilization.WithLabelValues(throttle.GasThrottleName)))
	require.Equal(float64(transfers.Used()), testutil.ToFloat64(metrics.used.WithLabelValues("CryptoTransfer")))
	require.Equal(float64(1_000), testutil.ToFloat64(metrics.capacity.WithLabelValues(throttle.GasThrottleName)))

	count, err := testutil.GatherAndCount(registry)
	require.NoError(err)
	require.Equal(7, count)
}
