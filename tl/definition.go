/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package tl implements a compiler for Telegram's Type Language (TL) schema
// text: it lexes and parses textual definitions into a typed model (see
// Definition), infers 32-bit constructor identifiers where the schema text
// omits them, and groups the result into a queryable Schema.
package tl

import "strings"

// Category distinguishes a TL definition that describes a wire type from
// one that describes an RPC method.
type Category uint8

const (
	// CategoryTypes marks a definition appearing before the "---functions---"
	// separator: it describes a boxed wire type.
	CategoryTypes Category = iota
	// CategoryFunctions marks a definition appearing after the separator:
	// it describes an RPC method and carries a return Type.
	CategoryFunctions
)

func (c Category) String() string {
	switch c {
	case CategoryTypes:
		return "types"
	case CategoryFunctions:
		return "functions"
	default:
		return "unknown"
	}
}

// Type is a reference to a TL type: a plain name, an optional namespace
// path, and the generic bookkeeping the schema compiler needs to resolve
// `!name` parameters and `vector<T>`-style single-argument generics.
type Type struct {
	// Namespace is the dotted path preceding Name, e.g. []string{"auth"}
	// for "auth.SentCode". Empty for unqualified names.
	Namespace []string

	// Name is the unqualified type name, e.g. "SentCode".
	Name string

	// GenericRef is true when this Type is actually a reference back to a
	// generic parameter introduced by a TypeDef earlier in the same
	// definition (a `!name` parameter, or a return type matching a TypeDef).
	GenericRef bool

	// GenericArg is the single generic argument name carried by `<...>`
	// syntax, e.g. "Int" in "Vector<Int>". Nil when absent.
	GenericArg *string
}

// Equal reports whether two Types describe the same reference.
func (t Type) Equal(o Type) bool {
	if t.Name != o.Name || t.GenericRef != o.GenericRef {
		return false
	}
	if len(t.Namespace) != len(o.Namespace) {
		return false
	}
	for i := range t.Namespace {
		if t.Namespace[i] != o.Namespace[i] {
			return false
		}
	}
	if (t.GenericArg == nil) != (o.GenericArg == nil) {
		return false
	}
	if t.GenericArg != nil && *t.GenericArg != *o.GenericArg {
		return false
	}
	return true
}

// QualifiedName returns the namespace-qualified name, e.g. "auth.SentCode".
func (t Type) QualifiedName() string {
	if len(t.Namespace) == 0 {
		return t.Name
	}
	return strings.Join(t.Namespace, ".") + "." + t.Name
}

func (t Type) String() string {
	s := t.QualifiedName()
	if t.GenericArg != nil {
		s += "<" + *t.GenericArg + ">"
	}
	return s
}

// ParamKind distinguishes the three parameter shapes the TL grammar allows.
type ParamKind uint8

const (
	// ParamNormal is a regular named field, optionally conditional on a
	// flag bit (see Parameter.HasFlag).
	ParamNormal ParamKind = iota
	// ParamFlags is the single `#` bitmask field a definition's conditional
	// parameters reference by name.
	ParamFlags
	// ParamTypeDef is a `{name:Type}` generic parameter declaration; it
	// contributes no wire bytes.
	ParamTypeDef
)

// Parameter is one named field of a Definition.
type Parameter struct {
	Kind ParamKind

	// Name is the parameter's identifier (the TypeDef's introduced generic
	// name, for ParamTypeDef).
	Name string

	// Type is the field's type. Populated for ParamNormal only.
	Type Type

	// HasFlag is true when this ParamNormal field is conditional on a bit
	// of an earlier ParamFlags field.
	HasFlag bool
	// FlagField names the ParamFlags parameter this field depends on.
	FlagField string
	// FlagBit is the bit index within FlagField that gates this field.
	FlagBit int
}

// Definition is one parsed TL schema entry: a named, identified, typed
// constructor or RPC method with its ordered parameter list.
type Definition struct {
	Name     string
	ID       uint32
	Params   []Parameter
	Type     Type
	Category Category
}

// namedParams returns only the ParamNormal fields, skipping the Flags
// bitmask and TypeDef declarations, for callers that only care about
// fields that carry a Type (e.g. Schema's recursion predicate).
func (d Definition) namedParams() []Parameter {
	out := make([]Parameter, 0, len(d.Params))
	for _, p := range d.Params {
		if p.Kind == ParamNormal {
			out = append(out, p)
		}
	}
	return out
}

// NamedParams is the exported form of namedParams, for callers outside the
// package (the codec emitter) that need a Definition's wire-carrying fields
// without the Flags bitmask or TypeDef declarations.
func (d Definition) NamedParams() []Parameter {
	return d.namedParams()
}
