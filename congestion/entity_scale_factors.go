// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/consensusnode/admission/utils/logging"
)

// EntityScaleFactors selects UtilizationScaleFactors by entity type, falling
// back to the DEFAULT table. The specification has the form
//
//	DEFAULT(90,10:1,95,25:1),TOKEN(80,2:1)
type EntityScaleFactors struct {
	defaultFactors UtilizationScaleFactors
	typeFactors    map[EntityType]UtilizationScaleFactors
}

func ParseEntityScaleFactors(spec string) (EntityScaleFactors, error) {
	remaining := strings.TrimSpace(spec)
	if remaining == "" {
		return EntityScaleFactors{}, ErrEmptySpec
	}

	factors := EntityScaleFactors{
		typeFactors: make(map[EntityType]UtilizationScaleFactors),
	}
	for remaining != "" {
		open := strings.IndexByte(remaining, '(')
		if open < 0 {
			return EntityScaleFactors{}, fmt.Errorf("%w: missing '(' in %q", ErrMalformedEntitySpec, remaining)
		}
		closing := strings.IndexByte(remaining, ')')
		if closing < open {
			return EntityScaleFactors{}, fmt.Errorf("%w: missing ')' in %q", ErrMalformedEntitySpec, remaining)
		}

		entityType, err := ToEntityType(remaining[:open])
		if err != nil {
			return EntityScaleFactors{}, err
		}
		if _, ok := factors.typeFactors[entityType]; ok {
			return EntityScaleFactors{}, fmt.Errorf("%w: %s", ErrDuplicateEntityType, entityType)
		}
		table, err := ParseUtilizationScaleFactors(remaining[open+1 : closing])
		if err != nil {
			return EntityScaleFactors{}, fmt.Errorf("%s: %w", entityType, err)
		}
		factors.typeFactors[entityType] = table

		remaining = strings.TrimSpace(remaining[closing+1:])
		if remaining == "" {
			break
		}
		if !strings.HasPrefix(remaining, ",") {
			return EntityScaleFactors{}, fmt.Errorf("%w: expected ',' before %q", ErrMalformedEntitySpec, remaining)
		}
		remaining = strings.TrimSpace(remaining[1:])
		if remaining == "" {
			return EntityScaleFactors{}, fmt.Errorf("%w: trailing ','", ErrMalformedEntitySpec)
		}
	}

	factors.defaultFactors = factors.typeFactors[DefaultEntity]
	delete(factors.typeFactors, DefaultEntity)
	return factors, nil
}

// EntityScaleFactorsFrom parses [spec], falling back to neutral scale factors
// for every entity type if [spec] is malformed.
func EntityScaleFactorsFrom(log logging.Logger, spec string) EntityScaleFactors {
	factors, err := ParseEntityScaleFactors(spec)
	if err != nil {
		log.Warn("falling back to neutral entity scale factors",
			zap.String("spec", spec),
			zap.Error(err),
		)
		return EntityScaleFactors{}
	}
	return factors
}

// ScaleFactorsFor returns the table used for [entityType].
func (e EntityScaleFactors) ScaleFactorsFor(entityType EntityType) UtilizationScaleFactors {
	if factors, ok := e.typeFactors[entityType]; ok {
		return factors
	}
	return e.defaultFactors
}

func (e EntityScaleFactors) Lookup(entityType EntityType, utilizationPercent uint64) ScaleFactor {
	return e.ScaleFactorsFor(entityType).Lookup(utilizationPercent)
}

func (e EntityScaleFactors) String() string {
	entityTypes := maps.Keys(e.typeFactors)
	sort.Slice(entityTypes, func(i, j int) bool {
		return entityTypes[i] < entityTypes[j]
	})

	var sb strings.Builder
	sb.WriteString("EntityScaleFactors{DEFAULT: ")
	sb.WriteString(e.defaultFactors.String())
	for _, entityType := range entityTypes {
		fmt.Fprintf(&sb, ", %s: %s", entityType, e.typeFactors[entityType])
	}
	sb.WriteString("}")
	return sb.String()
}
