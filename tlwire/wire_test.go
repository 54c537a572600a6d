/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tlwire

import (
	"errors"
	"testing"

	"github.com/gravwell/tlproto/tl"
)

func TestScalarRoundTrip(t *testing.T) {
	w := NewWriter(nil)
	w.PutInt(-7)
	w.PutLong(1 << 40)
	w.PutDouble(3.5)
	w.PutBool(true)
	w.PutBool(false)

	r := NewReader(w.Bytes())
	if v, err := r.Int(); err != nil || v != -7 {
		t.Fatalf("Int: %v, %v", v, err)
	}
	if v, err := r.Long(); err != nil || v != 1<<40 {
		t.Fatalf("Long: %v, %v", v, err)
	}
	if v, err := r.Double(); err != nil || v != 3.5 {
		t.Fatalf("Double: %v, %v", v, err)
	}
	if v, err := r.Bool(); err != nil || v != true {
		t.Fatalf("Bool true: %v, %v", v, err)
	}
	if v, err := r.Bool(); err != nil || v != false {
		t.Fatalf("Bool false: %v, %v", v, err)
	}
}

func TestBytesPaddingIsFourAligned(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 253, 254, 300} {
		w := NewWriter(nil)
		payload := make([]byte, n)
		for i := range payload {
			payload[i] = byte(i)
		}
		w.PutBytes(payload)
		if w.Len()%4 != 0 {
			t.Fatalf("length %d: encoded size %d is not 4-aligned", n, w.Len())
		}
		r := NewReader(w.Bytes())
		got, err := r.Bytes()
		if err != nil {
			t.Fatalf("length %d: %v", n, err)
		}
		if len(got) != n {
			t.Fatalf("length %d: got %d bytes back", n, len(got))
		}
		if r.Remaining() != 0 {
			t.Fatalf("length %d: %d trailing bytes not consumed", n, r.Remaining())
		}
	}
}

func TestVectorHeaderRoundTrip(t *testing.T) {
	w := NewWriter(nil)
	w.BoxedVectorHeader(3)
	for i := int32(0); i < 3; i++ {
		w.PutInt(i)
	}

	r := NewReader(w.Bytes())
	n, err := r.VectorHeader()
	if err != nil || n != 3 {
		t.Fatalf("VectorHeader: %v, %v", n, err)
	}
	for i := int32(0); i < 3; i++ {
		v, err := r.Int()
		if err != nil || v != i {
			t.Fatalf("element %d: %v, %v", i, v, err)
		}
	}
}

func TestVectorHeaderConstructorIDIsWellKnown(t *testing.T) {
	w := NewWriter(nil)
	w.BoxedVectorHeader(0)
	id, err := NewReader(w.Bytes()).Uint32()
	if err != nil || id != 0x1cb5c415 {
		t.Fatalf("got %08x, %v, want 0x1cb5c415", id, err)
	}
}

func TestUnexpectedConstructor(t *testing.T) {
	w := NewWriter(nil)
	w.PutUint32(0xdeadbeef)
	_, err := NewReader(w.Bytes()).Bool()
	var uc *tl.UnexpectedConstructorError
	if !errors.As(err, &uc) || uc.ID != 0xdeadbeef {
		t.Fatalf("got %v, want UnexpectedConstructorError{0xdeadbeef}", err)
	}
}

func TestShortReadSurfaces(t *testing.T) {
	_, err := NewReader([]byte{1, 2}).Long()
	if !errors.Is(err, ErrShortRead) {
		t.Fatalf("got %v, want ErrShortRead", err)
	}
}
