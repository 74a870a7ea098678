// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/consensusnode/admission/throttle"
)

func TestStateRoundTrip(t *testing.T) {
	require := require.New(t)

	epoch := time.Unix(0, 0).UTC()
	lastDecisionTime := time.Unix(1_234_567, 890).UTC()
	original := state{
		txn: throttle.UsageSnapshot{
			Used:             5 * throttle.CapacityUnitsPerTxn,
			LastDecisionTime: &lastDecisionTime,
		},
		gas:                   throttle.UsageSnapshot{},
		congestionLevelStarts: []*time.Time{&epoch, nil, &lastDecisionTime},
	}

	b, err := original.Bytes()
	require.NoError(err)

	parsed, err := parseState(b)
	require.NoError(err)
	require.True(original.txn.Equal(parsed.txn))
	require.True(original.gas.Equal(parsed.gas))
	require.Equal(original.congestionLevelStarts, parsed.congestionLevelStarts)
}

func TestStateBytesRejectsUnencodableLevelStart(t *testing.T) {
	far := time.Unix(300_000_000_000, 0).UTC()
	_, err := state{congestionLevelStarts: []*time.Time{nil, &far}}.Bytes()
	require.ErrorIs(t, err, throttle.ErrUnencodableTime)
}

func TestParseStateSkipsUnknownFields(t *testing.T) {
	require := require.New(t)

	original := state{
		txn: throttle.UsageSnapshot{Used: 7},
	}
	b, err := original.Bytes()
	require.NoError(err)
	b = protowire.AppendTag(b, 15, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	parsed, err := parseState(b)
	require.NoError(err)
	require.Equal(uint64(7), parsed.txn.Used)
	require.Empty(parsed.congestionLevelStarts)
}

func TestParseStateMalformed(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
	}{
		{
			name:  "truncated tag",
			bytes: []byte{0x80},
		},
		{
			name:  "truncated snapshot",
			bytes: []byte{0x0a, 0x05, 0x08},
		},
		{
			name:  "malformed snapshot",
			bytes: []byte{0x0a, 0x01, 0x08},
		},
		{
			name:  "malformed level start",
			bytes: []byte{0x1a, 0x02, 0x0a, 0x05},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseState(test.bytes)
			require.ErrorIs(t, err, errMalformedState)
		})
	}
}
