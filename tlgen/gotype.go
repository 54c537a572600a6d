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

	"github.com/gravwell/tlproto/tl"
)

// scalarKind classifies the handful of TL primitive type names that map
// directly onto a tlwire reader/writer method pair, as opposed to a boxed
// reference to another generated union type.
type scalarKind int

const (
	scalarNone scalarKind = iota
	scalarInt
	scalarLong
	scalarDouble
	scalarInt128
	scalarInt256
	scalarBool
	scalarString
	scalarBytes
)

func classifyScalar(name string) scalarKind {
	switch name {
	case "int":
		return scalarInt
	case "long":
		return scalarLong
	case "double":
		return scalarDouble
	case "int128":
		return scalarInt128
	case "int256":
		return scalarInt256
	case "Bool", "bool":
		return scalarBool
	case "string":
		return scalarString
	case "bytes":
		return scalarBytes
	default:
		return scalarNone
	}
}

// goType returns the Go type a field's TL type should be represented as.
// A Vector<T> (or vector<T>) type becomes a Go slice of T's Go type.
func goType(t tl.Type) string {
	if t.GenericArg != nil && (t.Name == "Vector" || t.Name == "vector") {
		elem := scalarOrUnionGoType(*t.GenericArg)
		return "[]" + elem
	}
	if t.GenericRef {
		return "[]byte" // an opaque, already-boxed generic payload (§6 invokeWithLayer-style query)
	}
	return scalarOrUnionGoType(t.QualifiedName())
}

func scalarOrUnionGoType(qualifiedName string) string {
	switch classifyScalar(qualifiedName) {
	case scalarInt:
		return "int32"
	case scalarLong:
		return "int64"
	case scalarDouble:
		return "float64"
	case scalarInt128:
		return "[16]byte"
	case scalarInt256:
		return "[32]byte"
	case scalarBool:
		return "bool"
	case scalarString:
		return "string"
	case scalarBytes:
		return "[]byte"
	default:
		return exportedName(qualifiedName)
	}
}

// writeExpr emits the tlwire.Writer call that encodes a value of the given
// scalar kind, with valueExpr as the Go expression holding the field's
// value and wVar naming the in-scope *tlwire.Writer.
func writeExpr(wVar, valueExpr string, kind scalarKind) string {
	switch kind {
	case scalarInt:
		return fmt.Sprintf("%s.PutInt(%s)", wVar, valueExpr)
	case scalarLong:
		return fmt.Sprintf("%s.PutLong(%s)", wVar, valueExpr)
	case scalarDouble:
		return fmt.Sprintf("%s.PutDouble(%s)", wVar, valueExpr)
	case scalarInt128:
		return fmt.Sprintf("%s.PutInt128(%s)", wVar, valueExpr)
	case scalarInt256:
		return fmt.Sprintf("%s.PutInt256(%s)", wVar, valueExpr)
	case scalarBool:
		return fmt.Sprintf("%s.PutBool(%s)", wVar, valueExpr)
	case scalarString:
		return fmt.Sprintf("%s.PutString(%s)", wVar, valueExpr)
	case scalarBytes:
		return fmt.Sprintf("%s.PutBytes(%s)", wVar, valueExpr)
	default:
		return fmt.Sprintf("%s.Encode(%s)", valueExpr, wVar)
	}
}

// readExpr emits the tlwire.Reader call that decodes a value of the given
// scalar kind, with rVar naming the in-scope *tlwire.Reader.
func readExpr(rVar string, kind scalarKind) string {
	switch kind {
	case scalarInt:
		return fmt.Sprintf("%s.Int()", rVar)
	case scalarLong:
		return fmt.Sprintf("%s.Long()", rVar)
	case scalarDouble:
		return fmt.Sprintf("%s.Double()", rVar)
	case scalarInt128:
		return fmt.Sprintf("%s.Int128()", rVar)
	case scalarInt256:
		return fmt.Sprintf("%s.Int256()", rVar)
	case scalarBool:
		return fmt.Sprintf("%s.Bool()", rVar)
	case scalarString:
		return fmt.Sprintf("%s.String()", rVar)
	case scalarBytes:
		return fmt.Sprintf("%s.Bytes()", rVar)
	default:
		return ""
	}
}
