/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tg

import "github.com/gravwell/tlproto/tlwire"

// Request is satisfied by every RPC this client can issue: it knows its own
// constructor id and how to write itself to the wire. The Client
// orchestrator pairs a Request with the decode function for its declared
// return type (see client.invoke's type parameter).
type Request interface {
	ConstructorID() uint32
	Encode(w *tlwire.Writer)
}

// AuthSendCodeRequest is "auth.sendCode".
type AuthSendCodeRequest struct {
	PhoneNumber     string
	APIID           int32
	APIHash         string
	AllowFlashcall  bool
	CurrentNumber   bool
	AllowAppHash    bool
}

func (*AuthSendCodeRequest) ConstructorID() uint32 { return 0xa677244f }

func (v *AuthSendCodeRequest) Encode(w *tlwire.Writer) {
	w.PutUint32(0xa677244f)
	w.PutString(v.PhoneNumber)
	var mask uint32
	setFlagBit(&mask, 0, v.AllowFlashcall)
	setFlagBit(&mask, 1, v.CurrentNumber)
	setFlagBit(&mask, 7, v.AllowAppHash)
	w.PutUint32(mask)
	w.PutInt(v.APIID)
	w.PutString(v.APIHash)
}

// AuthSignInRequest is "auth.signIn".
type AuthSignInRequest struct {
	PhoneNumber   string
	PhoneCodeHash string
	PhoneCode     string
}

func (*AuthSignInRequest) ConstructorID() uint32 { return 0x8d52a951 }

func (v *AuthSignInRequest) Encode(w *tlwire.Writer) {
	w.PutUint32(0x8d52a951)
	w.PutString(v.PhoneNumber)
	w.PutString(v.PhoneCodeHash)
	w.PutString(v.PhoneCode)
}

// AuthImportBotAuthorizationRequest is "auth.importBotAuthorization".
type AuthImportBotAuthorizationRequest struct {
	APIID        int32
	APIHash      string
	BotAuthToken string
}

func (*AuthImportBotAuthorizationRequest) ConstructorID() uint32 { return 0x67a3ff2c }

func (v *AuthImportBotAuthorizationRequest) Encode(w *tlwire.Writer) {
	w.PutUint32(0x67a3ff2c)
	w.PutInt(0) // flags, always 0
	w.PutInt(v.APIID)
	w.PutString(v.APIHash)
	w.PutString(v.BotAuthToken)
}

// ContactsResolveUsernameRequest is "contacts.resolveUsername".
type ContactsResolveUsernameRequest struct {
	Username string
}

func (*ContactsResolveUsernameRequest) ConstructorID() uint32 { return 0xf93ccba3 }

func (v *ContactsResolveUsernameRequest) Encode(w *tlwire.Writer) {
	w.PutUint32(0xf93ccba3)
	w.PutString(v.Username)
}

// MessagesSendMessageRequest is "messages.sendMessage".
type MessagesSendMessageRequest struct {
	Peer     InputPeer
	Message  string
	RandomID int64
}

func (*MessagesSendMessageRequest) ConstructorID() uint32 { return 0x280d096f }

func (v *MessagesSendMessageRequest) Encode(w *tlwire.Writer) {
	w.PutUint32(0x280d096f)
	w.PutUint32(0) // flags, no reply/markup/entities support
	v.Peer.Encode(w)
	w.PutString(v.Message)
	w.PutLong(v.RandomID)
}

// MessagesGetDialogsRequest is "messages.getDialogs".
type MessagesGetDialogsRequest struct {
	OffsetDate int32
	OffsetID   int32
	OffsetPeer InputPeer
	Limit      int32
	Hash       int64
}

func (*MessagesGetDialogsRequest) ConstructorID() uint32 { return 0xa0ee3b73 }

func (v *MessagesGetDialogsRequest) Encode(w *tlwire.Writer) {
	w.PutUint32(0xa0ee3b73)
	w.PutUint32(0) // flags, exclude_pinned/folder_id unused
	w.PutInt(v.OffsetDate)
	w.PutInt(v.OffsetID)
	v.OffsetPeer.Encode(w)
	w.PutInt(v.Limit)
	w.PutLong(v.Hash)
}

// UpdatesGetStateRequest is "updates.getState".
type UpdatesGetStateRequest struct{}

func (*UpdatesGetStateRequest) ConstructorID() uint32 { return 0xedd4882a }

func (v *UpdatesGetStateRequest) Encode(w *tlwire.Writer) {
	w.PutUint32(0xedd4882a)
}
