/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tlgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gravwell/tlproto/tl"
)

// Generate renders Go source implementing pkgName's object model for every
// definition in schema: one tagged-union type per Type-category boxed
// group (§4.D), with its variants and their Encode/Decode pair, and one
// request type per Function-category definition.
//
// The emitted file imports tlwire, plus tl when it contains at least one
// union (for UnexpectedConstructorError); it is meant to be written
// alongside hand-authored code in the same package (see the tg package for
// the concrete, checked-in instance of this output for the API subset this
// client actually calls).
func Generate(schema *tl.Schema, pkgName string) (string, error) {
	boxedNames := boxedTypeNames(schema)
	hasUnions := len(boxedNames) > 0
	usesFlags := usesFlagFields(schema)

	var body strings.Builder
	if usesFlags {
		writeFlagHelpers(&body)
	}
	for _, boxedName := range boxedNames {
		var variants []tl.Definition
		for _, d := range schema.VariantsOf(boxedName) {
			if d.Category == tl.CategoryTypes {
				variants = append(variants, d)
			}
		}
		if len(variants) == 0 {
			continue
		}
		writeUnion(&body, boxedName, variants)
	}
	for _, d := range schema.Definitions {
		if d.Category != tl.CategoryFunctions {
			continue
		}
		writeRequest(&body, d)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by tlgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	if hasUnions {
		fmt.Fprintf(&b, "import (\n\t\"github.com/gravwell/tlproto/tl\"\n\t\"github.com/gravwell/tlproto/tlwire\"\n)\n\n")
	} else {
		fmt.Fprintf(&b, "import (\n\t\"github.com/gravwell/tlproto/tlwire\"\n)\n\n")
	}
	b.WriteString(body.String())

	return b.String(), nil
}

// usesFlagFields reports whether any definition in schema has a conditional
// (flag-gated) parameter, which determines whether the flagBit/setFlagBit
// helpers need to be emitted.
func usesFlagFields(schema *tl.Schema) bool {
	for _, d := range schema.Definitions {
		for _, p := range d.NamedParams() {
			if p.HasFlag {
				return true
			}
		}
	}
	return false
}

// writeFlagHelpers emits the bit-test/bit-set helpers every Flags-bearing
// constructor's Encode/Decode relies on, matching the helpers the
// hand-stable tg package defines for the same purpose (see tg.flagBit).
func writeFlagHelpers(b *strings.Builder) {
	fmt.Fprintf(b, "// flagBit reports whether bit n of mask is set.\n")
	fmt.Fprintf(b, "func flagBit(mask uint32, n uint) bool { return mask&(1<<n) != 0 }\n\n")
	fmt.Fprintf(b, "func setFlagBit(mask *uint32, n uint, present bool) {\n\tif present {\n\t\t*mask |= 1 << n\n\t}\n}\n\n")
}

// boxedTypeNames returns every boxed type name schema groups constructors
// under, sorted for deterministic output.
func boxedTypeNames(schema *tl.Schema) []string {
	seen := make(map[string]bool)
	var names []string
	for _, d := range schema.Definitions {
		if d.Category != tl.CategoryTypes {
			continue
		}
		key := d.Type.QualifiedName()
		if !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}

// writeUnion emits the interface marker, one struct+Encode/Decode per
// variant, and a dispatching decode function for one boxed type group.
func writeUnion(b *strings.Builder, boxedName string, variants []tl.Definition) {
	unionType := exportedName(boxedName)

	fmt.Fprintf(b, "// %s is the tagged union of every constructor whose boxed type is %q.\n", unionType, boxedName)
	fmt.Fprintf(b, "type %s interface {\n\tis%s()\n\tConstructorID() uint32\n\tEncode(w *tlwire.Writer)\n}\n\n", unionType, unionType)

	for _, d := range variants {
		writeVariant(b, unionType, d)
	}

	fmt.Fprintf(b, "// Decode%s reads a boxed %s value, dispatching on its constructor id.\n", unionType, unionType)
	fmt.Fprintf(b, "func Decode%s(r *tlwire.Reader) (%s, error) {\n", unionType, unionType)
	fmt.Fprintf(b, "\tid, err := r.Uint32()\n\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	fmt.Fprintf(b, "\tswitch id {\n")
	for _, d := range variants {
		variantType := exportedName(d.Name)
		fmt.Fprintf(b, "\tcase 0x%08x:\n\t\treturn decode%sBody(r)\n", d.ID, variantType)
	}
	fmt.Fprintf(b, "\tdefault:\n\t\treturn nil, &tl.UnexpectedConstructorError{ID: id}\n\t}\n}\n\n")
}

// writeVariant emits one constructor's struct, marker/Encode methods, and
// its body-only decode helper (body-only: the id has already been consumed
// by the caller, either the union dispatcher above or a request's response
// decode when the constructor is known ahead of time). A recursive
// constructor (one whose fields can transitively hold its own boxed type,
// per Schema.IsRecursive) needs no extra pointer indirection here: its
// union-typed fields are Go interface values, already indirect, unlike a
// value-type union would be.
func writeVariant(b *strings.Builder, unionType string, d tl.Definition) {
	variantType := exportedName(d.Name)
	params := d.NamedParams()

	fmt.Fprintf(b, "// %s is the %q constructor (id 0x%08x).\n", variantType, d.Name, d.ID)
	fmt.Fprintf(b, "type %s struct {\n", variantType)
	writeFieldDecls(b, params)
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "func (*%s) is%s() {}\n\n", variantType, unionType)
	fmt.Fprintf(b, "func (*%s) ConstructorID() uint32 { return 0x%08x }\n\n", variantType, d.ID)

	fmt.Fprintf(b, "func (v *%s) Encode(w *tlwire.Writer) {\n\tw.PutUint32(0x%08x)\n", variantType, d.ID)
	writeFieldEncodes(b, params)
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "func decode%sBody(r *tlwire.Reader) (*%s, error) {\n\tv := &%s{}\n", variantType, variantType, variantType)
	writeFieldDecodes(b, params)
	fmt.Fprintf(b, "\treturn v, nil\n}\n\n")
}

// writeFieldDecls emits one struct field per ParamNormal parameter, plus an
// unexported "has<Field> bool" presence flag for every parameter gated by a
// flag bit (§4.D's conditional fields), the same idiom the hand-stable tg
// package uses (see tg.User's hasUsername/hasPhone).
func writeFieldDecls(b *strings.Builder, params []tl.Parameter) {
	for _, p := range params {
		fmt.Fprintf(b, "\t%s %s\n", fieldName(p.Name), goType(p.Type))
	}
	for _, p := range params {
		if p.HasFlag {
			fmt.Fprintf(b, "\thas%s bool\n", fieldName(p.Name))
		}
	}
}

func writeFieldEncodes(b *strings.Builder, params []tl.Parameter) {
	flagsField := flagsFieldNameFromNamed(params)
	if flagsField != "" {
		fmt.Fprintf(b, "\tvar mask uint32\n")
		for _, p := range params {
			if p.HasFlag && p.FlagField == flagsField {
				fmt.Fprintf(b, "\tsetFlagBit(&mask, %d, v.has%s)\n", p.FlagBit, fieldName(p.Name))
			}
		}
		fmt.Fprintf(b, "\tw.PutUint32(mask)\n")
	}

	for _, p := range params {
		field := "v." + fieldName(p.Name)
		writer := func() {
			if p.Type.GenericArg != nil && (p.Type.Name == "Vector" || p.Type.Name == "vector") {
				fmt.Fprintf(b, "\tw.BoxedVectorHeader(len(%s))\n", field)
				fmt.Fprintf(b, "\tfor _, elem := range %s {\n", field)
				elemKind := classifyScalar(*p.Type.GenericArg)
				if elemKind == scalarNone {
					fmt.Fprintf(b, "\t\telem.Encode(w)\n")
				} else {
					fmt.Fprintf(b, "\t\t%s\n", writeExpr("w", "elem", elemKind))
				}
				fmt.Fprintf(b, "\t}\n")
				return
			}
			if p.Type.GenericRef {
				fmt.Fprintf(b, "\tw.PutRaw(%s)\n", field)
				return
			}
			kind := classifyScalar(p.Type.QualifiedName())
			fmt.Fprintf(b, "\t%s\n", writeExpr("w", field, kind))
		}
		if p.HasFlag {
			fmt.Fprintf(b, "\tif v.has%s {\n", fieldName(p.Name))
			writer()
			fmt.Fprintf(b, "\t}\n")
			continue
		}
		writer()
	}
}

func writeFieldDecodes(b *strings.Builder, params []tl.Parameter) {
	flagsField := flagsFieldNameFromNamed(params)
	if flagsField != "" {
		fmt.Fprintf(b, "\tmask, err := r.Uint32()\n\tif err != nil {\n\t\treturn nil, err\n\t}\n")
		for _, p := range params {
			if p.HasFlag && p.FlagField == flagsField {
				fmt.Fprintf(b, "\tv.has%s = flagBit(mask, %d)\n", fieldName(p.Name), p.FlagBit)
			}
		}
	}

	for _, p := range params {
		field := "v." + fieldName(p.Name)
		reader := func() {
			if p.Type.GenericArg != nil && (p.Type.Name == "Vector" || p.Type.Name == "vector") {
				fmt.Fprintf(b, "\t{\n\t\tn, err := r.VectorHeader()\n\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
				fmt.Fprintf(b, "\t\t%s = make(%s, n)\n", field, goType(p.Type))
				fmt.Fprintf(b, "\t\tfor i := 0; i < n; i++ {\n")
				elemKind := classifyScalar(*p.Type.GenericArg)
				if elemKind == scalarNone {
					fmt.Fprintf(b, "\t\t\telem, err := Decode%s(r)\n\t\t\tif err != nil {\n\t\t\t\treturn nil, err\n\t\t\t}\n", exportedName(*p.Type.GenericArg))
					fmt.Fprintf(b, "\t\t\t%s[i] = elem\n", field)
				} else {
					fmt.Fprintf(b, "\t\t\telem, err := %s\n\t\t\tif err != nil {\n\t\t\t\treturn nil, err\n\t\t\t}\n", readExpr("r", elemKind))
					fmt.Fprintf(b, "\t\t\t%s[i] = elem\n", field)
				}
				fmt.Fprintf(b, "\t\t}\n\t}\n")
				return
			}
			if p.Type.GenericRef {
				fmt.Fprintf(b, "\t_ = r // generic payload %s left to the caller to interpret\n", p.Name)
				return
			}
			kind := classifyScalar(p.Type.QualifiedName())
			if kind == scalarNone {
				fmt.Fprintf(b, "\t{\n\t\tdecoded, err := Decode%s(r)\n\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n\t\t%s = decoded\n\t}\n", goType(p.Type), field)
				return
			}
			fmt.Fprintf(b, "\t{\n\t\tdecoded, err := %s\n\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n\t\t%s = decoded\n\t}\n", readExpr("r", kind), field)
		}
		if p.HasFlag {
			fmt.Fprintf(b, "\tif flagBit(mask, %d) {\n", p.FlagBit)
			reader()
			fmt.Fprintf(b, "\t}\n")
			continue
		}
		reader()
	}
}

// flagsFieldNameFromNamed scans a NamedParams slice for any HasFlag
// parameter and returns the flag field name it references (every such
// parameter in one definition references the same, sole Flags parameter per
// §3's Parameter invariant), or "" if none are conditional.
func flagsFieldNameFromNamed(params []tl.Parameter) string {
	for _, p := range params {
		if p.HasFlag {
			return p.FlagField
		}
	}
	return ""
}

// writeRequest emits one Function-category definition's request struct, its
// Encode method, and a comment documenting its declared return type, since
// the return type is resolved by the caller (the Client orchestrator's
// invoke takes the matching union Decode function as an argument).
func writeRequest(b *strings.Builder, d tl.Definition) {
	reqType := exportedName(d.Name) + "Request"
	params := d.NamedParams()

	fmt.Fprintf(b, "// %s is the %q RPC (id 0x%08x), returning %s.\n", reqType, d.Name, d.ID, d.Type.String())
	fmt.Fprintf(b, "type %s struct {\n", reqType)
	writeFieldDecls(b, params)
	fmt.Fprintf(b, "}\n\n")

	fmt.Fprintf(b, "func (*%s) ConstructorID() uint32 { return 0x%08x }\n\n", reqType, d.ID)

	fmt.Fprintf(b, "func (v *%s) Encode(w *tlwire.Writer) {\n\tw.PutUint32(0x%08x)\n", reqType, d.ID)
	writeFieldEncodes(b, params)
	fmt.Fprintf(b, "}\n\n")
}
