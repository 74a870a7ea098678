// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package throttle

//go:generate go run github.com/golang/mock/mockgen@v1.6.0 -package=${GOPACKAGE}mock -destination=${GOPACKAGE}mock/congestible_throttle.go -mock_names=CongestibleThrottle=CongestibleThrottle github.com/consensusnode/admission/throttle CongestibleThrottle
