// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/consensusnode/admission/config"
	"github.com/consensusnode/admission/congestion"
	"github.com/consensusnode/admission/throttle"
	"github.com/consensusnode/admission/utils/logging"
)

const metricsNamespace = "throttlesim"

// simulator replays a decision log through a transaction throttle and a gas
// throttle, pricing each decision with the resulting congestion multiplier.
type simulator struct {
	log                logging.Logger
	txns               *throttle.DeterministicThrottle
	gas                *throttle.GasLimitDeterministicThrottle
	multipliers        *congestion.MultiplierSource
	entityScaleFactors congestion.EntityScaleFactors
	out                io.Writer
}

func newSimulator(
	log logging.Logger,
	cfg config.Config,
	registerer prometheus.Registerer,
	out io.Writer,
) (*simulator, error) {
	txns, err := cfg.TxnThrottle()
	if err != nil {
		return nil, fmt.Errorf("couldn't create transaction throttle: %w", err)
	}
	gas, err := cfg.GasThrottle()
	if err != nil {
		return nil, fmt.Errorf("couldn't create gas throttle: %w", err)
	}
	metrics, err := congestion.NewMetrics(metricsNamespace, registerer)
	if err != nil {
		return nil, fmt.Errorf("couldn't register metrics: %w", err)
	}

	multipliers := congestion.CongestionMultipliersFrom(log, cfg.CongestionMultipliers)
	entityScaleFactors := congestion.EntityScaleFactorsFrom(log, cfg.EntityScaleFactors)
	log.Info("created throttles",
		zap.Stringer("txns", txns),
		zap.Uint64("gasPerSecond", gas.Capacity()),
		zap.Stringer("multipliers", multipliers),
		zap.Stringer("entityScaleFactors", entityScaleFactors),
		zap.Duration("minCongestionPeriod", cfg.MinCongestionPeriod),
	)

	return &simulator{
		log:                log,
		txns:               txns,
		gas:                gas,
		multipliers:        congestion.NewMultiplierSource(log, multipliers, cfg.MinCongestionPeriod, txns, gas).WithMetrics(metrics),
		entityScaleFactors: entityScaleFactors,
		out:                out,
	}, nil
}

func (s *simulator) state() state {
	return state{
		txn:                   s.txns.UsageSnapshot(),
		gas:                   s.gas.UsageSnapshot(),
		congestionLevelStarts: s.multipliers.CongestionLevelStarts(),
	}
}

// restore resets the throttles and congestion history to [st]. Congestion
// history recorded for a different set of triggers is discarded.
func (s *simulator) restore(st state) error {
	if err := s.txns.ResetUsageTo(st.txn); err != nil {
		return fmt.Errorf("couldn't restore %s: %w", s.txns.Name(), err)
	}
	if err := s.gas.ResetUsageTo(st.gas); err != nil {
		return fmt.Errorf("couldn't restore %s: %w", s.gas.Name(), err)
	}
	if err := s.multipliers.ResetCongestionLevelStarts(st.congestionLevelStarts); err != nil {
		s.log.Warn("discarding saved congestion history",
			zap.Error(err),
		)
	}
	s.log.Info("restored throttle usage",
		zap.Stringer("txns", st.txn),
		zap.Stringer("gas", st.gas),
	)
	return nil
}

// replay processes every record read from [r]. It stops early, without error,
// when [ctx] is cancelled.
func (s *simulator) replay(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		if ctx.Err() != nil {
			s.log.Info("stopping replay",
				zap.Int("line", lineNumber),
				zap.Error(ctx.Err()),
			)
			return nil
		}

		rec, ok, err := parseRecord(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if !ok {
			continue
		}
		if err := s.process(rec); err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}
	}
	return scanner.Err()
}

func (s *simulator) process(rec record) error {
	var (
		allowed bool
		err     error
	)
	switch rec.kind {
	case txnRecord:
		allowed, err = s.txns.Allow(rec.quantity, rec.consensusTime)
	case gasRecord:
		allowed, err = s.gas.Allow(rec.quantity, rec.consensusTime)
	case leakRecord:
		if err = s.txns.LeakUntil(rec.consensusTime); err == nil {
			err = s.gas.LeakUntil(rec.consensusTime)
		}
	}
	if err != nil {
		return err
	}

	multiplier := s.multipliers.UpdateMultiplier(rec.consensusTime)
	utilization := s.multipliers.MaxUtilizationPercent()

	line := fmt.Sprintf("%s %s", formatConsensusTime(rec.consensusTime), rec.kind)
	if rec.kind != leakRecord {
		outcome := "reject"
		if allowed {
			outcome = "accept"
		}
		line = fmt.Sprintf("%s %d %s", line, rec.quantity, outcome)
	}
	line = fmt.Sprintf("%s multiplier=%dx utilization=%d%%", line, multiplier, utilization)
	if rec.hasEntityType {
		scale := s.entityScaleFactors.Lookup(rec.entityType, utilization)
		line = fmt.Sprintf("%s %s=%s", line, rec.entityType, scale)
	}
	_, err = fmt.Fprintln(s.out, line)

	s.log.Debug("processed record",
		zap.Stringer("kind", rec.kind),
		zap.Uint64("quantity", rec.quantity),
		zap.Bool("allowed", allowed),
		zap.Uint64("multiplier", multiplier),
	)
	return err
}
