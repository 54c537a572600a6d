/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package tlwire implements the byte-level encoding and decoding rules of
// the Type Language wire format (§4.D): fixed-width scalars, length-padded
// strings, boxed/bare vectors, and the boxed-value envelope of a leading
// little-endian constructor id. The codec emitter (tlgen) generates code
// that calls into this package; it is also used directly by the
// hand-stable tg object model.
package tlwire

import (
	"encoding/binary"
	"errors"
	"math"
)

// VectorConstructorID is the boxed constructor id written ahead of a
// non-bare vector's element count.
const VectorConstructorID uint32 = 0x1cb5c415

// Boxed constructor ids for the two Bool variants; bool is not a primitive
// on the wire, it is boxed like any other two-constructor enum.
const (
	BoolTrueID  uint32 = 0x997275b5
	BoolFalseID uint32 = 0xbc799737
)

var (
	// ErrShortWrite indicates an io.Writer (or in-memory sink) stopped
	// accepting bytes before a value was fully written.
	ErrShortWrite = errors.New("tlwire: short write")
)

// Writer accumulates a TL-encoded byte stream. The zero value is ready to
// use.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with buf as its preallocated backing array.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf[:0]}
}

// Bytes returns the accumulated buffer. The returned slice aliases the
// Writer's internal storage.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// PutRaw appends b verbatim, used for bare/already-serialized generic
// payloads (e.g. the query embedded in invokeWithLayer).
func (w *Writer) PutRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

// PutUint32 appends a little-endian uint32, the representation shared by
// constructor ids and the TL "int" type's unsigned reading.
func (w *Writer) PutUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// PutInt appends a TL "int": 4 bytes, little-endian, signed.
func (w *Writer) PutInt(v int32) {
	w.PutUint32(uint32(v))
}

// PutLong appends a TL "long": 8 bytes, little-endian, signed.
func (w *Writer) PutLong(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.buf = append(w.buf, b[:]...)
}

// PutDouble appends a TL "double": 8-byte IEEE754, little-endian.
func (w *Writer) PutDouble(v float64) {
	w.PutLong(int64(math.Float64bits(v)))
}

// PutInt128 appends a raw 16-byte value.
func (w *Writer) PutInt128(v [16]byte) {
	w.buf = append(w.buf, v[:]...)
}

// PutInt256 appends a raw 32-byte value.
func (w *Writer) PutInt256(v [32]byte) {
	w.buf = append(w.buf, v[:]...)
}

// PutBool writes the boxed Bool constructor matching v.
func (w *Writer) PutBool(v bool) {
	if v {
		w.PutUint32(BoolTrueID)
	} else {
		w.PutUint32(BoolFalseID)
	}
}

// PutBytes writes a TL "bytes"/"string" value: a length header (a single
// byte for lengths under 254, or 0xFE followed by a 3-byte little-endian
// length otherwise), the payload, then zero padding out to a 4-byte
// boundary measured from the start of the header.
func (w *Writer) PutBytes(v []byte) {
	start := len(w.buf)
	if len(v) < 254 {
		w.buf = append(w.buf, byte(len(v)))
	} else {
		w.buf = append(w.buf, 0xFE, byte(len(v)), byte(len(v)>>8), byte(len(v)>>16))
	}
	w.buf = append(w.buf, v...)
	for (len(w.buf)-start)%4 != 0 {
		w.buf = append(w.buf, 0)
	}
}

// PutString is an alias of PutBytes; TL does not distinguish the two on
// the wire.
func (w *Writer) PutString(v string) {
	w.PutBytes([]byte(v))
}

// BoxedVectorHeader writes the boxed vector constructor id followed by the
// element count. Callers then write count elements themselves.
func (w *Writer) BoxedVectorHeader(count int) {
	w.PutUint32(VectorConstructorID)
	w.PutUint32(uint32(count))
}

// BareVectorHeader writes only the element count, for a vector field whose
// context already pins the type as bare.
func (w *Writer) BareVectorHeader(count int) {
	w.PutUint32(uint32(count))
}
