// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/consensusnode/admission/throttle"
	"github.com/consensusnode/admission/utils/logging"
	"github.com/consensusnode/admission/utils/wrappers"

	safemath "github.com/consensusnode/admission/utils/math"
)

var (
	errMissingThrottleName = errors.New("throttle name must be set")
	errMissingRate         = errors.New("either tps or mtps must be positive")
	errBurstPeriodTooShort = errors.New("burst period must be at least one millisecond")
	errMissingGasRate      = errors.New("gas per second must be positive")
	errNegativePeriod      = errors.New("min congestion period must not be negative")
)

// Config of a throttlesim run.
//
// Pricing specifications are kept as strings; malformed specifications
// degrade to neutral pricing when the tables are built.
type Config struct {
	ThrottleName string        `json:"throttleName"`
	Mtps         uint64        `json:"mtps"`
	BurstPeriod  time.Duration `json:"burstPeriod"`
	GasPerSecond uint64        `json:"gasPerSecond"`

	CongestionMultipliers string        `json:"congestionMultipliers"`
	EntityScaleFactors    string        `json:"entityScaleFactors"`
	MinCongestionPeriod   time.Duration `json:"minCongestionPeriod"`

	Logging logging.Config `json:"logging"`

	InputFile    string `json:"inputFile"`
	SnapshotFile string `json:"snapshotFile"`
	PrintMetrics bool   `json:"printMetrics"`
}

// GetConfig reads a Config out of [v] and verifies it.
func GetConfig(v *viper.Viper) (Config, error) {
	config := Config{
		ThrottleName:          v.GetString(ThrottleNameKey),
		Mtps:                  v.GetUint64(MtpsKey),
		BurstPeriod:           v.GetDuration(BurstPeriodKey),
		GasPerSecond:          v.GetUint64(GasPerSecondKey),
		CongestionMultipliers: v.GetString(CongestionMultipliersKey),
		EntityScaleFactors:    v.GetString(EntityScaleFactorsKey),
		MinCongestionPeriod:   v.GetDuration(MinCongestionPeriodKey),
		InputFile:             os.ExpandEnv(v.GetString(InputFileKey)),
		SnapshotFile:          os.ExpandEnv(v.GetString(SnapshotFileKey)),
		PrintMetrics:          v.GetBool(PrintMetricsKey),
	}
	if config.Mtps == 0 {
		tps := v.GetUint64(TpsKey)
		mtps, err := safemath.Mul(tps, throttle.MtpsPerTps)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %d tps: %w", throttle.ErrCapacityOverflow, tps, err)
		}
		config.Mtps = mtps
	}

	var err error
	config.Logging.LogLevel, err = logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return Config{}, fmt.Errorf("couldn't parse %s: %w", LogLevelKey, err)
	}
	config.Logging.LogFormat, err = logging.ToFormat(v.GetString(LogFormatKey))
	if err != nil {
		return Config{}, fmt.Errorf("couldn't parse %s: %w", LogFormatKey, err)
	}
	config.Logging.MsgPrefix = AppName

	return config, config.Verify()
}

// Verify returns every problem found in the config, or nil.
func (c Config) Verify() error {
	errs := wrappers.Errs{}
	if c.ThrottleName == "" {
		errs.Add(errMissingThrottleName)
	}
	if c.Mtps == 0 {
		errs.Add(errMissingRate)
	}
	if c.BurstPeriod < time.Millisecond {
		errs.Add(fmt.Errorf("%w: %s", errBurstPeriodTooShort, c.BurstPeriod))
	}
	if c.GasPerSecond == 0 {
		errs.Add(errMissingGasRate)
	}
	if c.MinCongestionPeriod < 0 {
		errs.Add(fmt.Errorf("%w: %s", errNegativePeriod, c.MinCongestionPeriod))
	}
	return errs.Joined()
}

// BurstPeriodMs is the burst period truncated to whole milliseconds.
func (c Config) BurstPeriodMs() uint64 {
	return uint64(c.BurstPeriod / time.Millisecond)
}

// TxnThrottle builds the transaction throttle described by the config.
func (c Config) TxnThrottle() (*throttle.DeterministicThrottle, error) {
	delegate, err := throttle.WithMtpsAndBurstPeriodMs(c.Mtps, c.BurstPeriodMs())
	if err != nil {
		return nil, err
	}
	return throttle.NewDeterministicThrottle(c.ThrottleName, delegate), nil
}

// GasThrottle builds the gas throttle described by the config.
func (c Config) GasThrottle() (*throttle.GasLimitDeterministicThrottle, error) {
	return throttle.NewGasLimitDeterministicThrottle(c.GasPerSecond)
}
