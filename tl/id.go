/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tl

import (
	"hash/crc32"
	"strings"
)

// InferID computes the canonical 32-bit constructor identifier of a TL
// definition line from its normalized textual signature, per the rule
// Telegram's own tooling uses: rewrite ":bytes" to ":string", replace every
// character that is not an identifier character, a dot, a colon, or "="
// with a space, collapse runs of whitespace, then CRC32 the result.
//
// line should be the full, untrimmed definition text (the same text a
// caller would otherwise look for an explicit "#hexid" suffix in);
// InferID is only meaningful when that suffix is absent.
func InferID(line string) uint32 {
	return crc32.ChecksumIEEE([]byte(normalizeSignature(line)))
}

func normalizeSignature(line string) string {
	s := strings.ReplaceAll(line, ":bytes", ":string")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isIdentRune(r) || r == '.' || r == '=' || r == ':' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return collapseSpaces(b.String())
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func collapseSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
