// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import "errors"

var (
	ErrEmptySpec             = errors.New("empty specification")
	ErrOddTokenCount         = errors.New("triggers and values are mismatched")
	ErrInvalidTrigger        = errors.New("invalid trigger")
	ErrTriggerOutOfRange     = errors.New("trigger outside of [0, 100]")
	ErrTriggersNotIncreasing = errors.New("triggers are not strictly increasing")
	ErrValuesNotIncreasing   = errors.New("values are not strictly increasing")
	ErrInvalidValue          = errors.New("invalid value")
	ErrInvalidScaleFactor    = errors.New("invalid scale factor")
	ErrUnknownEntityType     = errors.New("unknown entity type")
	ErrDuplicateEntityType   = errors.New("duplicate entity type")
	ErrMalformedEntitySpec   = errors.New("malformed entity scale factors")
	ErrMismatchedLevelStarts = errors.New("congestion level starts do not match triggers")
)
