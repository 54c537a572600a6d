/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tl

import "testing"

func mustParse(t *testing.T, line string, cat Category) Definition {
	t.Helper()
	d, err := ParseDefinition(line, cat)
	if err != nil {
		t.Fatalf("parsing %q: %v", line, err)
	}
	return d
}

func TestSchemaGroupsByBoxedType(t *testing.T) {
	defs := []Definition{
		mustParse(t, "boolTrue#997275b5 = Bool", CategoryTypes),
		mustParse(t, "boolFalse#bc799737 = Bool", CategoryTypes),
		mustParse(t, "inputPeerSelf#7da07ec9 = InputPeer", CategoryTypes),
	}
	s := NewSchema(defs)
	variants := s.VariantsOf("Bool")
	if len(variants) != 2 {
		t.Fatalf("got %d Bool variants, want 2", len(variants))
	}
	if len(s.VariantsOf("InputPeer")) != 1 {
		t.Fatal("expected one InputPeer variant")
	}
}

func TestSchemaNamespaceGrouping(t *testing.T) {
	defs := []Definition{
		mustParse(t, "auth.sentCode#5e002502 phone_code_hash:string = auth.SentCode", CategoryTypes),
		mustParse(t, "contacts.resolvedPeer#f271f500 peer:Peer = contacts.ResolvedPeer", CategoryTypes),
	}
	s := NewSchema(defs)
	if len(s.InNamespace("auth")) != 1 {
		t.Fatal("expected one definition in auth namespace")
	}
	if len(s.InNamespace("contacts")) != 1 {
		t.Fatal("expected one definition in contacts namespace")
	}
}

func TestSchemaRecursionDetection(t *testing.T) {
	// A page references a vector of pages via PageBlock, forming a cycle.
	defs := []Definition{
		mustParse(t, "pageBlockList#e4e88011 items:Vector<PageBlock> = PageBlock", CategoryTypes),
		mustParse(t, "pageBlockAnchor#ce0d37b0 name:string = PageBlock", CategoryTypes),
	}
	s := NewSchema(defs)
	if !s.IsRecursive(defs[0]) {
		t.Fatal("expected pageBlockList to be recursive")
	}
	if s.IsRecursive(defs[1]) {
		t.Fatal("expected pageBlockAnchor to not be recursive")
	}
}

func TestSchemaByID(t *testing.T) {
	def := mustParse(t, "boolTrue#997275b5 = Bool", CategoryTypes)
	s := NewSchema([]Definition{def})
	got, ok := s.ByID(0x997275b5)
	if !ok || got.Name != "boolTrue" {
		t.Fatalf("ByID lookup failed: %+v, %v", got, ok)
	}
	if _, ok := s.ByID(0xdeadbeef); ok {
		t.Fatal("expected lookup of unknown id to fail")
	}
}
