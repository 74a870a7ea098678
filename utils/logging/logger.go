// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import "go.uber.org/zap"

// Logger records structured events. Throttle decisions are never logged; only
// configuration problems and pricing changes are.
type Logger interface {
	Error(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)

	// Stop flushes buffered entries and closes the underlying writer.
	Stop()
}
