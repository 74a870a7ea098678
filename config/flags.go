// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/consensusnode/admission/throttle"
	"github.com/consensusnode/admission/utils/logging"
)

const (
	AppName   = "throttlesim"
	EnvPrefix = "THROTTLESIM"

	DefaultThrottleName          = "CryptoTransfer"
	DefaultTps                   = 10_000
	DefaultGasPerSecond          = 15_000_000
	DefaultCongestionMultipliers = "90,10x,95,25x,99,100x"
	DefaultEntityScaleFactors    = "DEFAULT(90,10:1,95,25:1,99,100:1)"
	DefaultMinCongestionPeriod   = time.Minute
)

// BuildFlagSet declares every flag understood by throttlesim.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)

	fs.String(ConfigFileKey, "", "Path to a JSON, YAML or TOML config file. Flags override values in the file")

	// Throttles
	fs.String(ThrottleNameKey, DefaultThrottleName, "Name of the transaction throttle")
	fs.Uint64(TpsKey, DefaultTps, "Transactions per second admitted by the transaction throttle")
	fs.Uint64(MtpsKey, 0, "Milli-transactions per second admitted by the transaction throttle. Overrides --"+TpsKey+" if non-zero")
	fs.Duration(BurstPeriodKey, time.Duration(throttle.DefaultBurstPeriodMs)*time.Millisecond, "Period of traffic the transaction throttle can absorb at once. Truncated to milliseconds")
	fs.Uint64(GasPerSecondKey, DefaultGasPerSecond, "Gas per second admitted by the gas throttle")

	// Pricing
	fs.String(CongestionMultipliersKey, DefaultCongestionMultipliers, "Fee multipliers by utilization percentage, e.g. 90,10x,95,25x")
	fs.String(EntityScaleFactorsKey, DefaultEntityScaleFactors, "Entity creation scale factors by entity type, e.g. DEFAULT(90,10:1),TOKEN(80,2:1)")
	fs.Duration(MinCongestionPeriodKey, DefaultMinCongestionPeriod, "How long utilization must stay above a trigger before its multiplier applies")

	// Logging
	fs.String(LogLevelKey, logging.Info.LowerString(), "The log level. Should be one of {debug, info, warn, error, off}")
	fs.String(LogFormatKey, "plain", "The structure of log format. Should be one of {plain, json}")

	// Input and output
	fs.String(InputFileKey, "", "File of decision records to replay. Reads stdin if empty")
	fs.String(SnapshotFileKey, "", "File holding throttle usage snapshots. Restored at startup and saved at exit if set")
	fs.Bool(PrintMetricsKey, false, "Write metrics in the prometheus text format at exit")
	return fs
}

// BuildViper parses [args] and binds the result, the environment and the
// optional config file into a viper instance.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if v.IsSet(ConfigFileKey) {
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}
