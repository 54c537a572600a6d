/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package tlgen emits Go source implementing the typed object model §4.D of
// the codec emitter calls for: one tagged-union boxed type per Type-category
// group, one request type per Function-category definition, and the
// serialize/deserialize pair each needs, built on the wire primitives in
// tlwire.
package tlgen

import "strings"

// exportedName converts a TL identifier (camelCase or namespace.camelCase,
// e.g. "inputPeerSelf" or "auth.sentCode") into an exported Go identifier
// ("InputPeerSelf", "AuthSentCode"), namespace segments folded in ahead of
// the base name so sibling namespaces never collide in the same package.
func exportedName(tlName string) string {
	parts := strings.Split(tlName, ".")
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(exportSegment(p))
	}
	return b.String()
}

// exportSegment upper-cases the first rune of one dotted segment, leaving
// the rest untouched so internal camelCase (e.g. "sendCode" -> "SendCode")
// is preserved.
func exportSegment(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// fieldName converts a TL parameter name (snake_case, e.g. "phone_code_hash")
// into an exported Go struct field name ("PhoneCodeHash").
func fieldName(tlName string) string {
	parts := strings.Split(tlName, "_")
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(exportSegment(p))
	}
	if b.Len() == 0 {
		return "Field"
	}
	return b.String()
}

// unexportedName lower-cases the first rune of s. The emitter in this
// package does not call it.
func unexportedName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
