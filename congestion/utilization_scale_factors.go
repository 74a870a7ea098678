// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"go.uber.org/zap"

	"github.com/consensusnode/admission/utils/logging"
)

// UtilizationScaleFactors maps utilization to a scale factor, e.g.
// "90,10:1,95,25:1,99,100:1".
type UtilizationScaleFactors struct {
	TriggeredValues[ScaleFactor]
}

func ParseUtilizationScaleFactors(spec string) (UtilizationScaleFactors, error) {
	tv, err := ParseTriggeredValues(spec, ParseScaleFactor, ScaleFactor.Compare)
	if err != nil {
		return UtilizationScaleFactors{}, err
	}
	return UtilizationScaleFactors{TriggeredValues: tv}, nil
}

// UtilizationScaleFactorsFrom parses [spec], falling back to the neutral table
// if [spec] is malformed.
func UtilizationScaleFactorsFrom(log logging.Logger, spec string) UtilizationScaleFactors {
	factors, err := ParseUtilizationScaleFactors(spec)
	if err != nil {
		log.Warn("falling back to neutral utilization scale factors",
			zap.String("spec", spec),
			zap.Error(err),
		)
		return UtilizationScaleFactors{}
	}
	return factors
}

func (u UtilizationScaleFactors) Lookup(utilizationPercent uint64) ScaleFactor {
	return u.TriggeredValues.Lookup(utilizationPercent, OneToOne)
}

func (u UtilizationScaleFactors) String() string {
	return "UtilizationScaleFactors{" + u.format(ScaleFactor.String) + "}"
}
