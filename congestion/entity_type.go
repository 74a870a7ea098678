// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package congestion

import (
	"fmt"
	"strings"
)

// EntityType identifies the kind of state an operation creates.
type EntityType int

const (
	DefaultEntity EntityType = iota
	AccountEntity
	ContractEntity
	FileEntity
	TokenEntity
	NFTEntity
	TopicEntity
	ScheduleEntity
	TokenAssociationEntity
	AirdropEntity
)

var entityTypeStrings = map[EntityType]string{
	DefaultEntity:          "DEFAULT",
	AccountEntity:          "ACCOUNT",
	ContractEntity:         "CONTRACT",
	FileEntity:             "FILE",
	TokenEntity:            "TOKEN",
	NFTEntity:              "NFT",
	TopicEntity:            "TOPIC",
	ScheduleEntity:         "SCHEDULE",
	TokenAssociationEntity: "TOKEN_ASSOCIATION",
	AirdropEntity:          "AIRDROP",
}

func ToEntityType(s string) (EntityType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for entityType, str := range entityTypeStrings {
		if str == s {
			return entityType, nil
		}
	}
	return DefaultEntity, fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
}

func (e EntityType) String() string {
	if s, ok := entityTypeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("EntityType(%d)", int(e))
}
