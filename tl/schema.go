/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tl

import "strings"

// Schema groups a set of Definitions by the boxed type they construct and
// by their top-level namespace, and exposes the recursion predicate the
// codec emitter needs to decide when a constructor must be boxed behind an
// indirection to break a cycle.
type Schema struct {
	Definitions []Definition

	// boxed maps a boxed type's qualified name to every Definition whose
	// return Type is that boxed type.
	boxed map[string][]Definition
	// namespaces maps a top-level namespace (possibly "") to every
	// Definition declared under it.
	namespaces map[string][]Definition
	// recursive holds the qualified names of definitions flagged recursive
	// by the fixed-point computation in computeRecursion.
	recursive map[string]bool
}

// NewSchema groups defs by boxed type and namespace and computes the
// recursion predicate.
func NewSchema(defs []Definition) *Schema {
	s := &Schema{
		Definitions: defs,
		boxed:       make(map[string][]Definition),
		namespaces:  make(map[string][]Definition),
	}
	for _, d := range defs {
		key := d.Type.QualifiedName()
		s.boxed[key] = append(s.boxed[key], d)

		ns := ""
		if len(d.Namespace()) > 0 {
			ns = d.Namespace()[0]
		}
		s.namespaces[ns] = append(s.namespaces[ns], d)
	}
	s.recursive = computeRecursion(defs, s.boxed)
	return s
}

// Namespace returns the dotted namespace path of a definition's own name
// (not its return type), e.g. "contacts" for "contacts.resolveUsername".
func (d Definition) Namespace() []string {
	idx := strings.LastIndex(d.Name, ".")
	if idx < 0 {
		return nil
	}
	return strings.Split(d.Name[:idx], ".")
}

// qualifiedName is the definition's own namespace-qualified name.
func (d Definition) qualifiedName() string {
	return d.Name
}

// VariantsOf returns every Definition whose return type is the given
// boxed type name (qualified, e.g. "auth.SentCode" or "Bool").
func (s *Schema) VariantsOf(boxedType string) []Definition {
	return s.boxed[boxedType]
}

// InNamespace returns every Definition declared under the given top-level
// namespace ("" for unqualified names).
func (s *Schema) InNamespace(ns string) []Definition {
	return s.namespaces[ns]
}

// IsRecursive reports whether d's parameter closure can reach d's own
// boxed type or a definition that is itself recursive, meaning the codec
// emitter must box that field through an owning indirection to avoid an
// infinitely sized value.
func (s *Schema) IsRecursive(d Definition) bool {
	return s.recursive[d.qualifiedName()]
}

// ByID finds the Definition with the given constructor id, if any.
func (s *Schema) ByID(id uint32) (Definition, bool) {
	for _, d := range s.Definitions {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// elementTypeName returns the boxed type name a parameter's value is
// actually drawn from: for a plain type that's its own qualified name, but
// for a vector ("Vector<T>" / "vector<T>") it is the element type T, since
// a vector's recursion risk lives in its elements, not in "Vector" itself.
func elementTypeName(t Type) string {
	if t.GenericArg != nil && (t.Name == "Vector" || t.Name == "vector") {
		return *t.GenericArg
	}
	return t.QualifiedName()
}

// computeRecursion finds, by fixed point, every definition whose parameter
// types' boxed groups (transitively) contain either a definition of the
// original definition's own boxed type or a definition already flagged
// recursive.
func computeRecursion(defs []Definition, boxed map[string][]Definition) map[string]bool {
	recursive := make(map[string]bool)
	changed := true
	for changed {
		changed = false
		for _, d := range defs {
			name := d.qualifiedName()
			if recursive[name] {
				continue
			}
			if reaches(d.Type.QualifiedName(), d, boxed, recursive, make(map[string]bool)) {
				recursive[name] = true
				changed = true
			}
		}
	}
	return recursive
}

// reaches reports whether any parameter of d can, directly or through a
// chain of boxed alternatives, reach a definition whose return type is
// target (d's own boxed type) or a definition already marked in recursive.
func reaches(target string, d Definition, boxed map[string][]Definition, recursive map[string]bool, visiting map[string]bool) bool {
	for _, p := range d.namedParams() {
		group := boxed[elementTypeName(p.Type)]
		for _, alt := range group {
			if alt.Type.QualifiedName() == target {
				return true
			}
			key := alt.qualifiedName()
			if visiting[key] {
				continue
			}
			if recursive[key] {
				return true
			}
			visiting[key] = true
			if reaches(target, alt, boxed, recursive, visiting) {
				return true
			}
		}
	}
	return false
}
