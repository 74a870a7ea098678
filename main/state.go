// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/consensusnode/admission/throttle"
)

const (
	txnSnapshotFieldNumber protowire.Number = 1
	gasSnapshotFieldNumber protowire.Number = 2
	levelStartFieldNumber  protowire.Number = 3

	levelStartTimeFieldNumber protowire.Number = 1
)

var (
	errMalformedState = errors.New("malformed state file")

	deterministicMarshal = proto.MarshalOptions{Deterministic: true}
)

// state is what throttlesim persists between runs. It is wire compatible with
//
//	message SimulatorState {
//	  ThrottleUsageSnapshot txn = 1;
//	  ThrottleUsageSnapshot gas = 2;
//	  repeated LevelStart congestion_level_starts = 3;
//	}
//
//	message LevelStart {
//	  google.protobuf.Timestamp start = 1;
//	}
type state struct {
	txn                   throttle.UsageSnapshot
	gas                   throttle.UsageSnapshot
	congestionLevelStarts []*time.Time
}

func (s state) Bytes() ([]byte, error) {
	txn, err := s.txn.Bytes()
	if err != nil {
		return nil, err
	}
	gas, err := s.gas.Bytes()
	if err != nil {
		return nil, err
	}

	var b []byte
	b = protowire.AppendTag(b, txnSnapshotFieldNumber, protowire.BytesType)
	b = protowire.AppendBytes(b, txn)
	b = protowire.AppendTag(b, gasSnapshotFieldNumber, protowire.BytesType)
	b = protowire.AppendBytes(b, gas)
	for _, start := range s.congestionLevelStarts {
		var levelStart []byte
		if start != nil {
			if err := throttle.CheckSnapshotTime(*start); err != nil {
				return nil, err
			}
			ts, err := deterministicMarshal.Marshal(timestamppb.New(*start))
			if err != nil {
				return nil, err
			}
			levelStart = protowire.AppendTag(levelStart, levelStartTimeFieldNumber, protowire.BytesType)
			levelStart = protowire.AppendBytes(levelStart, ts)
		}
		b = protowire.AppendTag(b, levelStartFieldNumber, protowire.BytesType)
		b = protowire.AppendBytes(b, levelStart)
	}
	return b, nil
}

func parseState(b []byte) (state, error) {
	var s state
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return state{}, fmt.Errorf("%w: %w", errMalformedState, protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return state{}, fmt.Errorf("%w: field %d: %w", errMalformedState, num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		raw, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return state{}, fmt.Errorf("%w: field %d: %w", errMalformedState, num, protowire.ParseError(n))
		}
		b = b[n:]

		var err error
		switch num {
		case txnSnapshotFieldNumber:
			s.txn, err = throttle.ParseUsageSnapshot(raw)
		case gasSnapshotFieldNumber:
			s.gas, err = throttle.ParseUsageSnapshot(raw)
		case levelStartFieldNumber:
			var start *time.Time
			start, err = parseLevelStart(raw)
			s.congestionLevelStarts = append(s.congestionLevelStarts, start)
		}
		if err != nil {
			return state{}, fmt.Errorf("%w: field %d: %w", errMalformedState, num, err)
		}
	}
	return s, nil
}

func parseLevelStart(b []byte) (*time.Time, error) {
	var start *time.Time
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		if num != levelStartTimeFieldNumber || typ != protowire.BytesType {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		raw, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		ts := &timestamppb.Timestamp{}
		if err := proto.Unmarshal(raw, ts); err != nil {
			return nil, err
		}
		if err := ts.CheckValid(); err != nil {
			return nil, err
		}
		t := ts.AsTime()
		start = &t
	}
	return start, nil
}
