// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"fmt"
	"strconv"
	"strings"
)

const maxTrigger = 100

// TriggeredValues is a step function from a utilization percentage to a value.
// Triggers and values are both strictly increasing.
//
// TriggeredValues is immutable and safe for concurrent use.
type TriggeredValues[V any] struct {
	triggers []uint64
	values   []V
}

// ParseTriggeredValues parses "trigger,value,trigger,value,...".
//
// Triggers are integer percentages in [0, 100]; any fractional part is
// truncated. Values are parsed with [parseValue] and ordered with [compare],
// which must return a negative number when a < b, zero when a == b and a
// positive number when a > b.
func ParseTriggeredValues[V any](
	spec string,
	parseValue func(string) (V, error),
	compare func(a, b V) int,
) (TriggeredValues[V], error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return TriggeredValues[V]{}, ErrEmptySpec
	}

	tokens := strings.Split(spec, ",")
	if len(tokens)%2 != 0 {
		return TriggeredValues[V]{}, fmt.Errorf("%w: %d tokens in %q", ErrOddTokenCount, len(tokens), spec)
	}

	numPairs := len(tokens) / 2
	tv := TriggeredValues[V]{
		triggers: make([]uint64, 0, numPairs),
		values:   make([]V, 0, numPairs),
	}
	for i := 0; i < len(tokens); i += 2 {
		trigger, err := parseTrigger(tokens[i])
		if err != nil {
			return TriggeredValues[V]{}, err
		}
		valueToken := strings.TrimSpace(tokens[i+1])
		value, err := parseValue(valueToken)
		if err != nil {
			return TriggeredValues[V]{}, fmt.Errorf("%w: %q: %w", ErrInvalidValue, valueToken, err)
		}

		if n := len(tv.triggers); n > 0 {
			if trigger <= tv.triggers[n-1] {
				return TriggeredValues[V]{}, fmt.Errorf("%w: %d follows %d", ErrTriggersNotIncreasing, trigger, tv.triggers[n-1])
			}
			if compare(value, tv.values[n-1]) <= 0 {
				return TriggeredValues[V]{}, fmt.Errorf("%w: %v follows %v", ErrValuesNotIncreasing, value, tv.values[n-1])
			}
		}
		tv.triggers = append(tv.triggers, trigger)
		tv.values = append(tv.values, value)
	}
	return tv, nil
}

func parseTrigger(token string) (uint64, error) {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "-") {
		return 0, fmt.Errorf("%w: %q", ErrTriggerOutOfRange, token)
	}
	if whole, fraction, found := strings.Cut(token, "."); found {
		if _, err := strconv.ParseUint(fraction, 10, 64); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTrigger, token)
		}
		token = whole
	}
	trigger, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTrigger, token)
	}
	if trigger > maxTrigger {
		return 0, fmt.Errorf("%w: %d", ErrTriggerOutOfRange, trigger)
	}
	return trigger, nil
}

// Lookup returns the value of the greatest trigger at or below
// [utilizationPercent], or [neutral] if there is no such trigger.
func (tv TriggeredValues[V]) Lookup(utilizationPercent uint64, neutral V) V {
	value := neutral
	for i, trigger := range tv.triggers {
		if trigger > utilizationPercent {
			break
		}
		value = tv.values[i]
	}
	return value
}

func (tv TriggeredValues[V]) Len() int {
	return len(tv.triggers)
}

// Triggers returns a copy of the triggers.
func (tv TriggeredValues[V]) Triggers() []uint64 {
	return append([]uint64(nil), tv.triggers...)
}

// Values returns a copy of the values.
func (tv TriggeredValues[V]) Values() []V {
	return append([]V(nil), tv.values...)
}

func (tv TriggeredValues[V]) format(formatValue func(V) string) string {
	var sb strings.Builder
	for i, trigger := range tv.triggers {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d%% -> %s", trigger, formatValue(tv.values[i]))
	}
	return sb.String()
}
