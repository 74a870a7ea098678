// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = (*log)(nil)

type log struct {
	logger *zap.Logger
	writer io.WriteCloser
}

func newLog(config Config, w io.WriteCloser) *log {
	core := zapcore.NewCore(
		config.LogFormat.Encoder(),
		zapcore.AddSync(w),
		zapcore.Level(config.LogLevel),
	)
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	if config.MsgPrefix != "" {
		logger = logger.Named(config.MsgPrefix)
	}
	return &log{
		logger: logger,
		writer: w,
	}
}

func (l *log) Error(msg string, fields ...zap.Field) {
	l.logger.Error(msg, fields...)
}

func (l *log) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *log) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *log) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

func (l *log) Stop() {
	_ = l.logger.Sync()
	_ = l.writer.Close()
}
