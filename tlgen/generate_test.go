/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tlgen

import (
	"strings"
	"testing"

	"github.com/gravwell/tlproto/tl"
)

func mustParse(t *testing.T, line string, cat tl.Category) tl.Definition {
	t.Helper()
	d, err := tl.ParseDefinition(line, cat)
	if err != nil {
		t.Fatalf("parsing %q: %v", line, err)
	}
	return d
}

func TestGenerateEmitsBoolUnionAndVariants(t *testing.T) {
	defs := []tl.Definition{
		mustParse(t, "boolTrue#997275b5 = Bool", tl.CategoryTypes),
		mustParse(t, "boolFalse#bc799737 = Bool", tl.CategoryTypes),
	}
	schema := tl.NewSchema(defs)
	out, err := Generate(schema, "tg")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"package tg",
		"type Bool interface",
		"type BoolTrue struct",
		"type BoolFalse struct",
		"func (*BoolTrue) ConstructorID() uint32 { return 0x997275b5 }",
		"func (*BoolFalse) ConstructorID() uint32 { return 0xbc799737 }",
		"func DecodeBool(r *tlwire.Reader) (Bool, error)",
		"case 0x997275b5:",
		"case 0xbc799737:",
		"return nil, &tl.UnexpectedConstructorError{ID: id}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n--- output ---\n%s", want, out)
		}
	}
}

func TestGenerateEmitsStructFieldsInOrder(t *testing.T) {
	def := mustParse(t, "auth.sentCode#5e002502 phone_code_hash:string phone_number:string = auth.SentCode", tl.CategoryTypes)
	schema := tl.NewSchema([]tl.Definition{def})
	out, err := Generate(schema, "tg")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	hashIdx := strings.Index(out, "PhoneCodeHash string")
	numberIdx := strings.Index(out, "PhoneNumber string")
	if hashIdx < 0 || numberIdx < 0 || hashIdx > numberIdx {
		t.Fatalf("expected PhoneCodeHash before PhoneNumber, got:\n%s", out)
	}
}

func TestGenerateEmitsVectorField(t *testing.T) {
	def := mustParse(t, "dialogs#15ba6c40 dialogs:Vector<Dialog> = messages.Dialogs", tl.CategoryTypes)
	schema := tl.NewSchema([]tl.Definition{def})
	out, err := Generate(schema, "tg")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "Dialogs []Dialog") {
		t.Fatalf("expected a []Dialog field, got:\n%s", out)
	}
	if !strings.Contains(out, "w.BoxedVectorHeader(len(v.Dialogs))") {
		t.Fatalf("expected a boxed vector header write, got:\n%s", out)
	}
	if !strings.Contains(out, "r.VectorHeader()") {
		t.Fatalf("expected a boxed vector header read, got:\n%s", out)
	}
}

func TestGenerateEmitsRequestWithReturnTypeComment(t *testing.T) {
	def := mustParse(t, "auth.signIn#8d52a951 phone_number:string phone_code_hash:string phone_code:string = auth.Authorization", tl.CategoryFunctions)
	schema := tl.NewSchema([]tl.Definition{def})
	out, err := Generate(schema, "tg")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "type AuthSignInRequest struct") {
		t.Fatalf("expected a request struct, got:\n%s", out)
	}
	if !strings.Contains(out, "returning auth.Authorization") {
		t.Fatalf("expected return-type doc comment, got:\n%s", out)
	}
}

func TestGenerateOmitsTLImportWhenNoUnions(t *testing.T) {
	def := mustParse(t, "updates.getState#edd4882a = updates.State", tl.CategoryFunctions)
	schema := tl.NewSchema([]tl.Definition{def})
	out, err := Generate(schema, "tg")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(out, "\"github.com/gravwell/tlproto/tl\"") {
		t.Fatalf("expected no tl import without a union type, got:\n%s", out)
	}
}

func TestGenerateEmitsFlagGatedField(t *testing.T) {
	def := mustParse(t, "auth.sentCode#5e002502 flags:# next_type:flags.1?string phone_code_hash:string = auth.SentCode", tl.CategoryTypes)
	schema := tl.NewSchema([]tl.Definition{def})
	out, err := Generate(schema, "tg")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{
		"func flagBit(mask uint32, n uint) bool",
		"func setFlagBit(mask *uint32, n uint, present bool)",
		"hasNextType bool",
		"setFlagBit(&mask, 1, v.hasNextType)",
		"if v.hasNextType {",
		"if flagBit(mask, 1) {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n--- output ---\n%s", want, out)
		}
	}
	if strings.Contains(out, "NextType") == false {
		t.Fatalf("expected a NextType field, got:\n%s", out)
	}
}

func TestExportedNameFoldsNamespace(t *testing.T) {
	cases := map[string]string{
		"inputPeerSelf":   "InputPeerSelf",
		"auth.sentCode":   "AuthSentCode",
		"messages.Dialogs": "MessagesDialogs",
	}
	for in, want := range cases {
		if got := exportedName(in); got != want {
			t.Errorf("exportedName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFieldNameConvertsSnakeCase(t *testing.T) {
	if got := fieldName("phone_code_hash"); got != "PhoneCodeHash" {
		t.Fatalf("fieldName = %q, want PhoneCodeHash", got)
	}
}
