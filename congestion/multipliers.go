// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/consensusnode/admission/utils/logging"
)

const (
	NeutralMultiplier uint64 = 1

	multiplierSuffix = "x"
)

// CongestionMultipliers maps utilization to a fee multiplier, e.g.
// "90,10x,95,25x,99,100x".
type CongestionMultipliers struct {
	TriggeredValues[uint64]
}

func ParseCongestionMultipliers(spec string) (CongestionMultipliers, error) {
	tv, err := ParseTriggeredValues(spec, parseMultiplier, cmp.Compare[uint64])
	if err != nil {
		return CongestionMultipliers{}, err
	}
	return CongestionMultipliers{TriggeredValues: tv}, nil
}

// CongestionMultipliersFrom parses [spec], falling back to the neutral table if
// [spec] is malformed.
func CongestionMultipliersFrom(log logging.Logger, spec string) CongestionMultipliers {
	multipliers, err := ParseCongestionMultipliers(spec)
	if err != nil {
		log.Warn("falling back to neutral congestion multipliers",
			zap.String("spec", spec),
			zap.Error(err),
		)
		return CongestionMultipliers{}
	}
	return multipliers
}

func parseMultiplier(s string) (uint64, error) {
	multiplier, err := strconv.ParseUint(strings.TrimSuffix(s, multiplierSuffix), 10, 64)
	if err != nil {
		return 0, err
	}
	if multiplier == 0 {
		return 0, fmt.Errorf("multiplier %q must be positive", s)
	}
	return multiplier, nil
}

// Lookup returns the multiplier for [utilizationPercent].
func (c CongestionMultipliers) Lookup(utilizationPercent uint64) uint64 {
	return c.TriggeredValues.Lookup(utilizationPercent, NeutralMultiplier)
}

func (c CongestionMultipliers) String() string {
	return "CongestionMultipliers{" + c.format(func(m uint64) string {
		return strconv.FormatUint(m, 10) + multiplierSuffix
	}) + "}"
}
