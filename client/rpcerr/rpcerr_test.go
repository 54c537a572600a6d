/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package rpcerr

import "testing"

func TestParsePhoneMigrate(t *testing.T) {
	e := Parse(303, "PHONE_MIGRATE_4")
	if e.Name != "PHONE_MIGRATE" || e.Value == nil || *e.Value != 4 {
		t.Fatalf("got %+v", e)
	}
	if e.Classify() != Migration {
		t.Fatalf("got %v, want Migration", e.Classify())
	}
	dc, ok := e.MigrationTargetDC()
	if !ok || dc != 4 {
		t.Fatalf("got dc=%d ok=%v", dc, ok)
	}
}

func TestParseNetworkAndUserMigrate(t *testing.T) {
	for _, name := range []string{"NETWORK_MIGRATE_1", "USER_MIGRATE_5"} {
		e := Parse(303, name)
		if e.Classify() != Migration {
			t.Fatalf("%s: got %v, want Migration", name, e.Classify())
		}
	}
}

func TestParsePhoneCodeInvalid(t *testing.T) {
	e := Parse(400, "PHONE_CODE_INVALID")
	if e.Classify() != PhoneCodeInvalid {
		t.Fatalf("got %v, want PhoneCodeInvalid", e.Classify())
	}
	if e.Value != nil {
		t.Fatalf("expected no numeric value, got %v", *e.Value)
	}
	if _, ok := e.MigrationTargetDC(); ok {
		t.Fatal("expected MigrationTargetDC to fail for a non-migration error")
	}
}

func TestParseOther(t *testing.T) {
	e := Parse(400, "API_ID_INVALID")
	if e.Classify() != Other {
		t.Fatalf("got %v, want Other", e.Classify())
	}
}

func TestErrorStringIncludesCodeAndName(t *testing.T) {
	e := Parse(303, "PHONE_MIGRATE_2")
	if got := e.Error(); got != "rpc error 303: PHONE_MIGRATE_2" {
		t.Fatalf("got %q", got)
	}
}
