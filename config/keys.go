// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	ConfigFileKey            = "config-file"
	ThrottleNameKey          = "throttle-name"
	TpsKey                   = "tps"
	MtpsKey                  = "mtps"
	BurstPeriodKey           = "burst-period"
	GasPerSecondKey          = "gas-per-second"
	CongestionMultipliersKey = "congestion-multipliers"
	EntityScaleFactorsKey    = "entity-scale-factors"
	MinCongestionPeriodKey   = "min-congestion-period"
	LogLevelKey              = "log-level"
	LogFormatKey             = "log-format"
	InputFileKey             = "input-file"
	SnapshotFileKey          = "snapshot-file"
	PrintMetricsKey          = "print-metrics"
)
