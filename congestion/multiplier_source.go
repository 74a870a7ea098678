// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/consensusnode/admission/throttle"
	"github.com/consensusnode/admission/utils/logging"
)

// MultiplierSource tracks how long the most utilized throttle has been at or
// above each congestion trigger. A trigger's multiplier only applies once
// utilization has stayed at or above it for minCongestionPeriod of consensus
// time.
//
// MultiplierSource is not safe for concurrent use.
type MultiplierSource struct {
	log                 logging.Logger
	multipliers         CongestionMultipliers
	minCongestionPeriod time.Duration
	throttles           []throttle.CongestibleThrottle
	metrics             *Metrics

	// congestionLevelStarts[i] is when utilization most recently reached
	// trigger i without dropping below it, or nil.
	congestionLevelStarts []*time.Time
	multiplier            uint64
}

func NewMultiplierSource(
	log logging.Logger,
	multipliers CongestionMultipliers,
	minCongestionPeriod time.Duration,
	throttles ...throttle.CongestibleThrottle,
) *MultiplierSource {
	return &MultiplierSource{
		log:                   log,
		multipliers:           multipliers,
		minCongestionPeriod:   minCongestionPeriod,
		throttles:             throttles,
		congestionLevelStarts: make([]*time.Time, multipliers.Len()),
		multiplier:            NeutralMultiplier,
	}
}

// WithMetrics reports every update to [metrics].
func (s *MultiplierSource) WithMetrics(metrics *Metrics) *MultiplierSource {
	s.metrics = metrics
	return s
}

// UpdateMultiplier recomputes the multiplier from the current throttle usage
// at consensus time [now].
func (s *MultiplierSource) UpdateMultiplier(now time.Time) uint64 {
	utilization := s.MaxUtilizationPercent()
	triggers := s.multipliers.Triggers()
	for i, trigger := range triggers {
		switch {
		case utilization < trigger:
			s.congestionLevelStarts[i] = nil
		case s.congestionLevelStarts[i] == nil:
			start := now.Round(0).UTC()
			s.congestionLevelStarts[i] = &start
		}
	}

	multiplier := NeutralMultiplier
	values := s.multipliers.Values()
	for i := len(triggers) - 1; i >= 0; i-- {
		start := s.congestionLevelStarts[i]
		if start != nil && now.Sub(*start) >= s.minCongestionPeriod {
			multiplier = values[i]
			break
		}
	}

	if multiplier != s.multiplier {
		s.log.Info("congestion multiplier changed",
			zap.Uint64("previous", s.multiplier),
			zap.Uint64("current", multiplier),
			zap.Uint64("utilizationPercent", utilization),
			zap.Time("consensusTime", now),
		)
	}
	s.multiplier = multiplier

	if s.metrics != nil {
		s.metrics.Observe(s.throttles...)
		s.metrics.SetMultiplier(multiplier)
	}
	return multiplier
}

// MaxUtilizationPercent returns the highest utilization of the tracked
// throttles.
func (s *MultiplierSource) MaxUtilizationPercent() uint64 {
	var utilization uint64
	for _, t := range s.throttles {
		utilization = max(utilization, throttle.UtilizationPercent(t))
	}
	return utilization
}

func (s *MultiplierSource) CurrentMultiplier() uint64 {
	return s.multiplier
}

// CongestionLevelStarts returns a copy of the start of each congestion level.
func (s *MultiplierSource) CongestionLevelStarts() []*time.Time {
	starts := make([]*time.Time, len(s.congestionLevelStarts))
	for i, start := range s.congestionLevelStarts {
		if start != nil {
			c := *start
			starts[i] = &c
		}
	}
	return starts
}

// ResetCongestionLevelStarts restores starts previously returned by
// CongestionLevelStarts. The multiplier is recomputed on the next update.
func (s *MultiplierSource) ResetCongestionLevelStarts(starts []*time.Time) error {
	if len(starts) != len(s.congestionLevelStarts) {
		return fmt.Errorf("%w: got %d starts for %d triggers",
			ErrMismatchedLevelStarts,
			len(starts),
			len(s.congestionLevelStarts),
		)
	}
	for i, start := range starts {
		s.congestionLevelStarts[i] = nil
		if start != nil {
			c := start.Round(0).UTC()
			s.congestionLevelStarts[i] = &c
		}
	}
	return nil
}

// Reset forgets all congestion history.
func (s *MultiplierSource) Reset() {
	for i := range s.congestionLevelStarts {
		s.congestionLevelStarts[i] = nil
	}
	s.multiplier = NeutralMultiplier
}
