// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

import "errors"

var (
	ErrNonPositiveCapacity  = errors.New("capacity must be positive")
	ErrInsufficientCapacity = errors.New("insufficient free capacity")
	ErrInvalidUsage         = errors.New("usage outside of [0, capacity]")
	ErrCapacityOverflow     = errors.New("capacity overflows 64 bits")
	ErrCannotAllowTxn       = errors.New("throttle can never allow a transaction")
	ErrTimelineRegression   = errors.New("decision time precedes the last decision")
	ErrMalformedSnapshot    = errors.New("malformed usage snapshot")
	ErrUnencodableTime      = errors.New("time outside of [0001-01-01, 9999-12-31]")
)
