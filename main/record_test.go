// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/consensusnode/admission/congestion"
	"github.com/consensusnode/admission/throttle"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name           string
		line           string
		expectedOK     bool
		expectedRecord record
		expectedErr    error
	}{
		{
			name: "blank",
			line: "   ",
		},
		{
			name: "comment",
			line: "# 1.0 txn 1",
		},
		{
			name:       "txn",
			line:       "1234567.000000890 txn 3",
			expectedOK: true,
			expectedRecord: record{
				consensusTime: time.Unix(1_234_567, 890).UTC(),
				kind:          txnRecord,
				quantity:      3,
			},
		},
		{
			name:       "txn with entity type",
			line:       "1234567.5 txn 1 token",
			expectedOK: true,
			expectedRecord: record{
				consensusTime: time.Unix(1_234_567, 500_000_000).UTC(),
				kind:          txnRecord,
				quantity:      1,
				hasEntityType: true,
				entityType:    congestion.TokenEntity,
			},
		},
		{
			name:       "gas without fraction",
			line:       "42 gas 21000",
			expectedOK: true,
			expectedRecord: record{
				consensusTime: time.Unix(42, 0).UTC(),
				kind:          gasRecord,
				quantity:      21_000,
			},
		},
		{
			name:       "leak",
			line:       "42.000000001 leak",
			expectedOK: true,
			expectedRecord: record{
				consensusTime: time.Unix(42, 1).UTC(),
				kind:          leakRecord,
			},
		},
		{
			name:        "missing kind",
			line:        "42",
			expectedErr: errMalformedRecord,
		},
		{
			name:        "unknown kind",
			line:        "42 fee 1",
			expectedErr: errUnknownKind,
		},
		{
			name:        "missing quantity",
			line:        "42 gas",
			expectedErr: errMalformedRecord,
		},
		{
			name:        "negative quantity",
			line:        "42 txn -1",
			expectedErr: errMalformedRecord,
		},
		{
			name:        "leak with quantity",
			line:        "42 leak 1",
			expectedErr: errMalformedRecord,
		},
		{
			name:        "unknown entity type",
			line:        "42 txn 1 WIDGET",
			expectedErr: congestion.ErrUnknownEntityType,
		},
		{
			name:        "too many nanos",
			line:        "42.1234567890 txn 1",
			expectedErr: errMalformedRecord,
		},
		{
			name:        "signed nanos",
			line:        "42.-5 txn 1",
			expectedErr: errMalformedRecord,
		},
		{
			name:        "after year 9999",
			line:        "300000000000 txn 1",
			expectedErr: throttle.ErrUnencodableTime,
		},
		{
			name:        "bad seconds",
			line:        "now txn 1",
			expectedErr: errMalformedRecord,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			r, ok, err := parseRecord(test.line)
			require.ErrorIs(err, test.expectedErr)
			require.Equal(test.expectedOK, ok)
			require.Equal(test.expectedRecord, r)
		})
	}
}

func TestFormatConsensusTime(t *testing.T) {
	require := require.New(t)

	consensusTime, err := parseConsensusTime("1234567.00000089")
	require.NoError(err)
	require.Equal("1234567.000000890", formatConsensusTime(consensusTime))
}
