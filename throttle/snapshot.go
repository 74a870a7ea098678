// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	usedFieldNumber             protowire.Number = 1
	lastDecisionTimeFieldNumber protowire.Number = 2
)

var deterministicMarshal = proto.MarshalOptions{Deterministic: true}

// UsageSnapshot is the mutable state of a deterministic throttle.
//
// A nil LastDecisionTime means the throttle has never made a decision.
type UsageSnapshot struct {
	Used             uint64
	LastDecisionTime *time.Time
}

// Bytes returns the canonical encoding of the snapshot. It is wire compatible
// with the protobuf message:
//
//	message ThrottleUsageSnapshot {
//	  uint64 used = 1;
//	  google.protobuf.Timestamp last_decision_time = 2;
//	}
func (s UsageSnapshot) Bytes() ([]byte, error) {
	var b []byte
	if s.Used != 0 {
		b = protowire.AppendTag(b, usedFieldNumber, protowire.VarintType)
		b = protowire.AppendVarint(b, s.Used)
	}
	if s.LastDecisionTime != nil {
		if err := CheckSnapshotTime(*s.LastDecisionTime); err != nil {
			return nil, err
		}
		ts, err := deterministicMarshal.Marshal(timestamppb.New(*s.LastDecisionTime))
		if err != nil {
			return nil, err
		}
		b = protowire.AppendTag(b, lastDecisionTimeFieldNumber, protowire.BytesType)
		b = protowire.AppendBytes(b, ts)
	}
	return b, nil
}

// ParseUsageSnapshot is the inverse of UsageSnapshot.Bytes. Unknown fields are
// skipped.
func ParseUsageSnapshot(b []byte) (UsageSnapshot, error) {
	var s UsageSnapshot
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return UsageSnapshot{}, fmt.Errorf("%w: %w", ErrMalformedSnapshot, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == usedFieldNumber && typ == protowire.VarintType:
			used, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return UsageSnapshot{}, fmt.Errorf("%w: used: %w", ErrMalformedSnapshot, protowire.ParseError(n))
			}
			s.Used = used
			b = b[n:]
		case num == lastDecisionTimeFieldNumber && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return UsageSnapshot{}, fmt.Errorf("%w: last decision time: %w", ErrMalformedSnapshot, protowire.ParseError(n))
			}
			ts := &timestamppb.Timestamp{}
			if err := proto.Unmarshal(raw, ts); err != nil {
				return UsageSnapshot{}, fmt.Errorf("%w: last decision time: %w", ErrMalformedSnapshot, err)
			}
			if err := ts.CheckValid(); err != nil {
				return UsageSnapshot{}, fmt.Errorf("%w: last decision time: %w", ErrMalformedSnapshot, err)
			}
			lastDecisionTime := ts.AsTime()
			s.LastDecisionTime = &lastDecisionTime
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return UsageSnapshot{}, fmt.Errorf("%w: field %d: %w", ErrMalformedSnapshot, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return s, nil
}

// CheckSnapshotTime returns ErrUnencodableTime if [t] can not be restored from
// a snapshot.
func CheckSnapshotTime(t time.Time) error {
	if err := timestamppb.New(t).CheckValid(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnencodableTime, err)
	}
	return nil
}

func (s UsageSnapshot) Equal(other UsageSnapshot) bool {
	if s.Used != other.Used {
		return false
	}
	if s.LastDecisionTime == nil || other.LastDecisionTime == nil {
		return s.LastDecisionTime == nil && other.LastDecisionTime == nil
	}
	return s.LastDecisionTime.Equal(*other.LastDecisionTime)
}

func (s UsageSnapshot) String() string {
	if s.LastDecisionTime == nil {
		return fmt.Sprintf("%d used (never used)", s.Used)
	}
	return fmt.Sprintf("%d used (last decision time %s)", s.Used, s.LastDecisionTime.Format(time.RFC3339Nano))
}

// canonicalTime strips the monotonic clock reading and location so that a
// restored time is indistinguishable from the captured one.
func canonicalTime(t time.Time) *time.Time {
	t = t.Round(0).UTC()
	return &t
}
