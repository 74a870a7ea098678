// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestUsageSnapshotBytes(t *testing.T) {
	epoch := time.Unix(0, 0)
	someTime := time.Unix(2, 3)

	tests := []struct {
		name     string
		snapshot UsageSnapshot
		expected []byte
	}{
		{
			name:     "never used",
			snapshot: UsageSnapshot{},
			expected: nil,
		},
		{
			name:     "used without a decision time",
			snapshot: UsageSnapshot{Used: 1},
			expected: []byte{0x08, 0x01},
		},
		{
			name:     "decision at the epoch",
			snapshot: UsageSnapshot{LastDecisionTime: &epoch},
			expected: []byte{0x12, 0x00},
		},
		{
			name: "used with a decision time",
			snapshot: UsageSnapshot{
				Used:             1,
				LastDecisionTime: &someTime,
			},
			expected: []byte{0x08, 0x01, 0x12, 0x04, 0x08, 0x02, 0x10, 0x03},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			b, err := test.snapshot.Bytes()
			require.NoError(err)
			require.Equal(test.expected, b)

			parsed, err := ParseUsageSnapshot(b)
			require.NoError(err)
			require.True(test.snapshot.Equal(parsed))
		})
	}
}

func TestParseUsageSnapshotSkipsUnknownFields(t *testing.T) {
	require := require.New(t)

	var b []byte
	b = protowire.AppendTag(b, 7, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future"))
	b = protowire.AppendTag(b, usedFieldNumber, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)

	parsed, err := ParseUsageSnapshot(b)
	require.NoError(err)
	require.Equal(uint64(42), parsed.Used)
	require.Nil(parsed.LastDecisionTime)
}

func TestParseUsageSnapshotMalformed(t *testing.T) {
	var invalidNanos []byte
	invalidNanos = protowire.AppendTag(invalidNanos, 2, protowire.VarintType)
	invalidNanos = protowire.AppendVarint(invalidNanos, uint64(time.Second))

	var invalidTimestamp []byte
	invalidTimestamp = protowire.AppendTag(invalidTimestamp, lastDecisionTimeFieldNumber, protowire.BytesType)
	invalidTimestamp = protowire.AppendBytes(invalidTimestamp, invalidNanos)

	tests := []struct {
		name  string
		bytes []byte
	}{
		{
			name:  "truncated tag",
			bytes: []byte{0x80},
		},
		{
			name:  "truncated used",
			bytes: []byte{0x08},
		},
		{
			name:  "truncated timestamp",
			bytes: []byte{0x12, 0x04, 0x08},
		},
		{
			name:  "timestamp out of range",
			bytes: invalidTimestamp,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseUsageSnapshot(test.bytes)
			require.ErrorIs(t, err, ErrMalformedSnapshot)
		})
	}
}

func TestUsageSnapshotString(t *testing.T) {
	require := require.New(t)

	require.Equal("5 used (never used)", UsageSnapshot{Used: 5}.String())

	at := time.Unix(1, 500).UTC()
	require.Equal(
		"5 used (last decision time 1970-01-01T00:00:01.0000005Z)",
		UsageSnapshot{Used: 5, LastDecisionTime: &at}.String(),
	)
}

func TestUsageSnapshotBytesRejectsUnencodableTime(t *testing.T) {
	require := require.New(t)

	latest := time.Date(9999, time.December, 31, 23, 59, 59, 999_999_999, time.UTC)
	b, err := UsageSnapshot{Used: 1, LastDecisionTime: &latest}.Bytes()
	require.NoError(err)
	parsed, err := ParseUsageSnapshot(b)
	require.NoError(err)
	require.Equal(latest, *parsed.LastDecisionTime)

	for _, unencodable := range []time.Time{
		latest.Add(time.Nanosecond),
		time.Unix(300_000_000_000, 0),
		time.Date(0, time.December, 31, 0, 0, 0, 0, time.UTC),
	} {
		_, err := UsageSnapshot{Used: 1, LastDecisionTime: &unencodable}.Bytes()
		require.ErrorIs(err, ErrUnencodableTime)
		require.ErrorIs(CheckSnapshotTime(unencodable), ErrUnencodableTime)
	}
}
