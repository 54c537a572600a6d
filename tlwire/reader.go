/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tlwire

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/gravwell/tlproto/tl"
)

// ErrShortRead indicates the buffer ran out before a value could be fully
// decoded.
var ErrShortRead = errors.New("tlwire: short read")

// Reader consumes a TL-encoded byte stream. It never copies its backing
// buffer; callers who need an independent copy of a decoded []byte must
// copy it themselves (mirroring the Alt/non-Alt decode split the entry
// wire format this package is grounded on uses).
type Reader struct {
	buf []byte
	off int
}

// NewReader wraps buf for sequential decoding starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// RemainingBytes consumes and returns every unread byte verbatim, with no
// length header or padding, for callers that intentionally treat a tail of
// the stream as an opaque payload (e.g. an unparsed Updates body).
func (r *Reader) RemainingBytes() []byte {
	b := r.buf[r.off:]
	r.off = len(r.buf)
	return b
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrShortRead
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Uint32 reads a little-endian uint32, used for both "int" and constructor
// ids.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int reads a TL "int".
func (r *Reader) Int() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Long reads a TL "long".
func (r *Reader) Long() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// Double reads a TL "double".
func (r *Reader) Double() (float64, error) {
	v, err := r.Long()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(v)), nil
}

// Int128 reads a raw 16-byte value.
func (r *Reader) Int128() (v [16]byte, err error) {
	b, err := r.take(16)
	if err != nil {
		return v, err
	}
	copy(v[:], b)
	return v, nil
}

// Int256 reads a raw 32-byte value.
func (r *Reader) Int256() (v [32]byte, err error) {
	b, err := r.take(32)
	if err != nil {
		return v, err
	}
	copy(v[:], b)
	return v, nil
}

// Bool reads a boxed Bool constructor and returns its value. Any other
// constructor id is an UnexpectedConstructorError.
func (r *Reader) Bool() (bool, error) {
	id, err := r.Uint32()
	if err != nil {
		return false, err
	}
	switch id {
	case BoolTrueID:
		return true, nil
	case BoolFalseID:
		return false, nil
	default:
		return false, &tl.UnexpectedConstructorError{ID: id}
	}
}

// Bytes reads a TL "bytes"/"string" value: the length header, the payload,
// and the padding out to the next 4-byte boundary. The returned slice
// aliases the Reader's backing buffer.
func (r *Reader) Bytes() ([]byte, error) {
	start := r.off
	lb, err := r.take(1)
	if err != nil {
		return nil, err
	}
	var n int
	if lb[0] == 0xFE {
		lenBytes, err := r.take(3)
		if err != nil {
			return nil, err
		}
		n = int(lenBytes[0]) | int(lenBytes[1])<<8 | int(lenBytes[2])<<16
	} else {
		n = int(lb[0])
	}
	payload, err := r.take(n)
	if err != nil {
		return nil, err
	}
	for (r.off-start)%4 != 0 {
		if _, err := r.take(1); err != nil {
			return nil, err
		}
	}
	return payload, nil
}

// String reads a TL "bytes"/"string" value as a string.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VectorHeader reads a boxed vector's constructor id and element count,
// verifying the id matches VectorConstructorID.
func (r *Reader) VectorHeader() (count int, err error) {
	id, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	if id != VectorConstructorID {
		return 0, &tl.UnexpectedConstructorError{ID: id}
	}
	return r.BareVectorHeader()
}

// BareVectorHeader reads only a vector's element count, for a field whose
// context already pins the type as bare.
func (r *Reader) BareVectorHeader() (count int, err error) {
	n, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
