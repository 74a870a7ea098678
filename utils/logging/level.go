// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level is the lowest severity a logger writes.
type Level zapcore.Level

const (
	Debug = Level(zapcore.DebugLevel)
	Info  = Level(zapcore.InfoLevel)
	Warn  = Level(zapcore.WarnLevel)
	Error = Level(zapcore.ErrorLevel)
	Off   = Level(zapcore.FatalLevel + 1)
)

var levelStrings = map[Level]string{
	Debug: "DEBUG",
	Info:  "INFO",
	Warn:  "WARN",
	Error: "ERROR",
	Off:   "OFF",
}

// ToLevel parses a level name, ignoring case.
func ToLevel(s string) (Level, error) {
	s = strings.ToUpper(s)
	for level, str := range levelStrings {
		if str == s {
			return level, nil
		}
	}
	return Off, fmt.Errorf("unknown log level: %q", s)
}

func (l Level) String() string {
	if s, ok := levelStrings[l]; ok {
		return s
	}
	return fmt.Sprintf("Level(%d)", int8(l))
}

func (l Level) LowerString() string {
	return strings.ToLower(l.String())
}
