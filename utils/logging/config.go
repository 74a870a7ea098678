// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"
	"os"
)

type Config struct {
	LogLevel  Level
	LogFormat Format
	MsgPrefix string
}

func DefaultConfig() Config {
	return Config{
		LogLevel:  Info,
		LogFormat: Plain,
	}
}

// New returns a logger writing to stderr. Stopping it leaves stderr open.
func New(config Config) Logger {
	return NewWithWriter(config, stderr{})
}

// NewWithWriter returns a logger writing to [w]. Stopping it closes [w].
func NewWithWriter(config Config, w io.WriteCloser) Logger {
	return newLog(config, w)
}

type stderr struct{}

func (stderr) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}

func (stderr) Close() error {
	return nil
}
