/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package rpcerr classifies the RPC errors an MTProto Sender returns —
// (code, name, value) triples — into the taxonomy the Client orchestrator
// acts on: a migration to follow internally, an invalid login code, or an
// opaque failure to surface verbatim. It mirrors the way client/types in
// the teacher's own tree gives a structured type to each wire response
// instead of passing raw strings around.
package rpcerr

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind names the bucket an Error falls into once its Name has been split
// on a trailing "_N" suffix.
type Kind int

const (
	// Other is any RPC error not recognized as a migration or an invalid
	// login code; it is surfaced to the caller unchanged.
	Other Kind = iota
	// Migration covers PHONE_MIGRATE_N, NETWORK_MIGRATE_N, and
	// USER_MIGRATE_N: the Client handles these internally by switching
	// datacenters and retrying once.
	Migration
	// PhoneCodeInvalid covers any PHONE_CODE_* error raised during
	// sign-in.
	PhoneCodeInvalid
)

// Error is one RPC error as returned by the Sender: an error code, the raw
// (possibly suffixed) name, and the trailing integer split off that name,
// when present.
type Error struct {
	Code  int32
	Name  string
	Value *int32
}

func (e *Error) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("rpc error %d: %s_%d", e.Code, e.Name, *e.Value)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Name)
}

// Parse splits a raw error name like "PHONE_MIGRATE_2" into its base name
// ("PHONE_MIGRATE") and trailing integer value (2), matching §4.G's rule
// that a numeric name suffix is normalized off before classification.
// Names with no numeric suffix (e.g. "PHONE_CODE_INVALID") are kept as
// given, with a nil Value.
func Parse(code int32, rawName string) *Error {
	base, value := splitNumericSuffix(rawName)
	if value != nil {
		return &Error{Code: code, Name: base, Value: value}
	}
	return &Error{Code: code, Name: rawName}
}

func splitNumericSuffix(name string) (string, *int32) {
	idx := strings.LastIndexByte(name, '_')
	if idx < 0 || idx == len(name)-1 {
		return name, nil
	}
	tail := name[idx+1:]
	n, err := strconv.ParseInt(tail, 10, 32)
	if err != nil {
		return name, nil
	}
	v := int32(n)
	return name[:idx], &v
}

// Classify buckets an Error per §4.G.
func (e *Error) Classify() Kind {
	switch e.Name {
	case "PHONE_MIGRATE", "NETWORK_MIGRATE", "USER_MIGRATE":
		if e.Value != nil {
			return Migration
		}
	}
	if strings.HasPrefix(e.Name, "PHONE_CODE_") {
		return PhoneCodeInvalid
	}
	return Other
}

// MigrationTargetDC returns the destination DC id carried by a Migration
// error, and whether e actually classified as one.
func (e *Error) MigrationTargetDC() (int32, bool) {
	if e.Classify() != Migration || e.Value == nil {
		return 0, false
	}
	return *e.Value, true
}
