// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import "errors"

// Errs holds the first error that was added, or every error when
// [Errs.Joined] is used to report them.
type Errs struct {
	Err  error
	errs []error
}

// Add records every non-nil error. Err keeps the first one.
func (errs *Errs) Add(errors ...error) {
	for _, err := range errors {
		if err == nil {
			continue
		}
		if errs.Err == nil {
			errs.Err = err
		}
		errs.errs = append(errs.errs, err)
	}
}

// Joined returns all added errors joined together, or nil if none were added.
func (errs *Errs) Joined() error {
	return errors.Join(errs.errs...)
}
