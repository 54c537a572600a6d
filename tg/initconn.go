/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tg

import "github.com/gravwell/tlproto/tlwire"

// InitConnectionQuery is "initConnection": the envelope the Client
// orchestrator wraps around the first request it sends after a Sender is
// (re)established, per §4.F. Query holds the already-encoded bytes of the
// real request being wrapped, since initConnection's `query:!X` parameter
// is a bare indirection over an already-boxed inner value.
type InitConnectionQuery struct {
	APIID          int32
	DeviceModel    string
	SystemVersion  string
	AppVersion     string
	SystemLangCode string
	LangPack       string
	LangCode       string
	Query          []byte
}

func (*InitConnectionQuery) ConstructorID() uint32 { return 0xc1cd5ea9 }

func (v *InitConnectionQuery) Encode(w *tlwire.Writer) {
	w.PutUint32(0xc1cd5ea9)
	w.PutUint32(0) // flags, no proxy/params support
	w.PutInt(v.APIID)
	w.PutString(v.DeviceModel)
	w.PutString(v.SystemVersion)
	w.PutString(v.AppVersion)
	w.PutString(v.SystemLangCode)
	w.PutString(v.LangPack)
	w.PutString(v.LangCode)
	w.PutRaw(v.Query)
}

// InvokeWithLayerQuery is "invokeWithLayer": the outermost envelope that
// pins the MTProto layer number the initConnection-wrapped request is
// interpreted under.
type InvokeWithLayerQuery struct {
	Layer int32
	Query *InitConnectionQuery
}

func (*InvokeWithLayerQuery) ConstructorID() uint32 { return 0xda9b0d0d }

func (v *InvokeWithLayerQuery) Encode(w *tlwire.Writer) {
	w.PutUint32(0xda9b0d0d)
	w.PutInt(v.Layer)
	v.Query.Encode(w)
}
