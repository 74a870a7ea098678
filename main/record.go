// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/consensusnode/admission/congestion"
	"github.com/consensusnode/admission/throttle"
)

const nanosDigits = 9

var (
	errMalformedRecord = errors.New("malformed record")
	errUnknownKind     = errors.New("unknown record kind")
)

type recordKind int

const (
	txnRecord recordKind = iota
	gasRecord
	leakRecord
)

func (k recordKind) String() string {
	switch k {
	case txnRecord:
		return "txn"
	case gasRecord:
		return "gas"
	case leakRecord:
		return "leak"
	default:
		return fmt.Sprintf("recordKind(%d)", int(k))
	}
}

// record is one line of a decision log:
//
//	<unix-seconds>.<nanos> txn <count> [entity type]
//	<unix-seconds>.<nanos> gas <gas limit>
//	<unix-seconds>.<nanos> leak
type record struct {
	consensusTime time.Time
	kind          recordKind
	quantity      uint64

	hasEntityType bool
	entityType    congestion.EntityType
}

// parseRecord parses [line]. ok is false for blank lines and comments.
func parseRecord(line string) (r record, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return record{}, false, nil
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return record{}, false, fmt.Errorf("%w: %q", errMalformedRecord, line)
	}
	r.consensusTime, err = parseConsensusTime(fields[0])
	if err != nil {
		return record{}, false, err
	}

	switch fields[1] {
	case "txn":
		r.kind = txnRecord
		if len(fields) != 3 && len(fields) != 4 {
			return record{}, false, fmt.Errorf("%w: txn takes a count and an optional entity type: %q", errMalformedRecord, line)
		}
		if len(fields) == 4 {
			r.entityType, err = congestion.ToEntityType(fields[3])
			if err != nil {
				return record{}, false, err
			}
			r.hasEntityType = true
		}
	case "gas":
		r.kind = gasRecord
		if len(fields) != 3 {
			return record{}, false, fmt.Errorf("%w: gas takes a gas limit: %q", errMalformedRecord, line)
		}
	case "leak":
		r.kind = leakRecord
		if len(fields) != 2 {
			return record{}, false, fmt.Errorf("%w: leak takes no arguments: %q", errMalformedRecord, line)
		}
		return r, true, nil
	default:
		return record{}, false, fmt.Errorf("%w: %q", errUnknownKind, fields[1])
	}

	r.quantity, err = strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return record{}, false, fmt.Errorf("%w: quantity %q: %w", errMalformedRecord, fields[2], err)
	}
	return r, true, nil
}

// parseConsensusTime parses "<unix-seconds>[.<fraction>]". The fraction has at
// most nine digits and is read as a decimal fraction of a second.
func parseConsensusTime(s string) (time.Time, error) {
	secondsStr, fractionStr, _ := strings.Cut(s, ".")
	seconds, err := strconv.ParseInt(secondsStr, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: consensus time %q: %w", errMalformedRecord, s, err)
	}

	var nanos int64
	if fractionStr != "" {
		if len(fractionStr) > nanosDigits || strings.HasPrefix(fractionStr, "-") || strings.HasPrefix(fractionStr, "+") {
			return time.Time{}, fmt.Errorf("%w: consensus time %q", errMalformedRecord, s)
		}
		fractionStr += strings.Repeat("0", nanosDigits-len(fractionStr))
		nanos, err = strconv.ParseInt(fractionStr, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: consensus time %q: %w", errMalformedRecord, s, err)
		}
	}
	consensusTime := time.Unix(seconds, nanos).UTC()
	if err := throttle.CheckSnapshotTime(consensusTime); err != nil {
		return time.Time{}, fmt.Errorf("%w: consensus time %q: %w", errMalformedRecord, s, err)
	}
	return consensusTime, nil
}

func formatConsensusTime(t time.Time) string {
	return fmt.Sprintf("%d.%09d", t.Unix(), t.Nanosecond())
}
