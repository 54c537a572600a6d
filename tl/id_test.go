/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tl

import "testing"

func TestInferIDStable(t *testing.T) {
	line := "rpc_answer_dropped msg_id:long seq_no:int bytes:int = RpcDropAnswer"
	a := InferID(line)
	b := InferID(line)
	if a != b {
		t.Fatalf("InferID not stable: %08x != %08x", a, b)
	}
	def, err := ParseDefinition(line, CategoryTypes)
	if err != nil {
		t.Fatal(err)
	}
	if def.ID != a {
		t.Fatalf("parsed id %08x != directly inferred id %08x", def.ID, a)
	}
}

func TestNormalizeSignatureRewritesBytes(t *testing.T) {
	got := normalizeSignature("foo data:bytes = Foo")
	want := "foo data:string = Foo"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
