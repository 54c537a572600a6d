/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tg

import (
	"testing"

	"github.com/gravwell/tlproto/tlwire"
)

func TestInputPeerVariantsRoundTrip(t *testing.T) {
	cases := []InputPeer{
		&InputPeerSelf{},
		&InputPeerUser{UserID: 42, AccessHash: 99},
		&InputPeerChat{ChatID: 7},
		&InputPeerChannel{ChannelID: 5, AccessHash: 11},
	}
	for _, c := range cases {
		w := tlwire.NewWriter(nil)
		c.Encode(w)
		got, err := DecodeInputPeer(tlwire.NewReader(w.Bytes()))
		if err != nil {
			t.Fatalf("decoding %T: %v", c, err)
		}
		if got.ConstructorID() != c.ConstructorID() {
			t.Fatalf("round-trip changed constructor: got %T, want %T", got, c)
		}
	}
}

func TestUserRoundTripWithOptionalFields(t *testing.T) {
	u := &User{ID: 1, AccessHash: 2, FirstName: "Ada", LastName: "L", Username: "ada", hasUsername: true}
	w := tlwire.NewWriter(nil)
	u.Encode(w)
	got, err := DecodeUser(tlwire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeUser: %v", err)
	}
	if got.Username != "ada" || got.Phone != "" {
		t.Fatalf("got %+v", got)
	}
}

func TestAuthAuthorizationUnionRoundTrip(t *testing.T) {
	w := tlwire.NewWriter(nil)
	a := &Authorization{User: &User{ID: 9}}
	a.Encode(w)
	got, err := DecodeAuthAuthorization(tlwire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeAuthAuthorization: %v", err)
	}
	full, ok := got.(*Authorization)
	if !ok || full.User.ID != 9 {
		t.Fatalf("got %+v", got)
	}

	w2 := tlwire.NewWriter(nil)
	s := &AuthorizationSignUpRequired{HasTermsOfService: true, TermsOfService: "tos"}
	s.Encode(w2)
	got2, err := DecodeAuthAuthorization(tlwire.NewReader(w2.Bytes()))
	if err != nil {
		t.Fatalf("DecodeAuthAuthorization: %v", err)
	}
	su, ok := got2.(*AuthorizationSignUpRequired)
	if !ok || su.TermsOfService != "tos" {
		t.Fatalf("got %+v", got2)
	}
}

func TestMessagesDialogsSliceRoundTrip(t *testing.T) {
	slice := &MessagesDialogsSlice{
		Count:    3,
		Dialogs:  []*Dialog{{Peer: &PeerUser{UserID: 1}, TopMessage: 10, UnreadCount: 0}},
		Messages: []*Message{{ID: 10, Peer: &PeerUser{UserID: 1}, Text: "hi"}},
		Chats:    []*Chat{},
		Users:    []*User{{ID: 1}},
	}
	w := tlwire.NewWriter(nil)
	w.PutUint32(slice.ConstructorID())
	w.PutInt(slice.Count)
	w.BoxedVectorHeader(len(slice.Dialogs))
	for _, d := range slice.Dialogs {
		d.Encode(w)
	}
	w.BoxedVectorHeader(len(slice.Messages))
	for _, m := range slice.Messages {
		m.Encode(w)
	}
	w.BoxedVectorHeader(len(slice.Chats))
	w.BoxedVectorHeader(len(slice.Users))
	for _, u := range slice.Users {
		u.Encode(w)
	}

	got, err := DecodeMessagesDialogs(tlwire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeMessagesDialogs: %v", err)
	}
	gotSlice, ok := got.(*MessagesDialogsSlice)
	if !ok || len(gotSlice.Dialogs) != 1 || gotSlice.Dialogs[0].TopMessage != 10 {
		t.Fatalf("got %+v", got)
	}
}

func TestMessagesDialogsPlainAndNotModifiedRoundTrip(t *testing.T) {
	plain := &MessagesDialogsPlain{
		Dialogs:  []*Dialog{{Peer: &PeerUser{UserID: 1}, TopMessage: 10}},
		Messages: []*Message{{ID: 10, Date: 99, Peer: &PeerUser{UserID: 1}, Text: "hi"}},
	}
	got, err := DecodeMessagesDialogs(tlwire.NewReader(encodeMessagesDialogs(plain)))
	if err != nil {
		t.Fatalf("DecodeMessagesDialogs: %v", err)
	}
	gotPlain, ok := got.(*MessagesDialogsPlain)
	if !ok || len(gotPlain.Dialogs) != 1 || gotPlain.Messages[0].Date != 99 {
		t.Fatalf("got %+v", got)
	}

	notModified := &MessagesDialogsNotModified{Count: 7}
	got2, err := DecodeMessagesDialogs(tlwire.NewReader(encodeMessagesDialogs(notModified)))
	if err != nil {
		t.Fatalf("DecodeMessagesDialogs: %v", err)
	}
	gotNM, ok := got2.(*MessagesDialogsNotModified)
	if !ok || gotNM.Count != 7 {
		t.Fatalf("got %+v", got2)
	}
}

func encodeMessagesDialogs(v MessagesDialogs) []byte {
	w := tlwire.NewWriter(nil)
	v.Encode(w)
	return w.Bytes()
}

func TestInputPeerEmptyRoundTrip(t *testing.T) {
	w := tlwire.NewWriter(nil)
	(&InputPeerEmpty{}).Encode(w)
	got, err := DecodeInputPeer(tlwire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeInputPeer: %v", err)
	}
	if _, ok := got.(*InputPeerEmpty); !ok {
		t.Fatalf("got %T, want *InputPeerEmpty", got)
	}
}

func TestDecodeUpdatesCapturesTail(t *testing.T) {
	w := tlwire.NewWriter(nil)
	w.PutUint32((&Updates{}).ConstructorID())
	w.PutRaw([]byte{1, 2, 3})
	got, err := DecodeUpdates(tlwire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatalf("DecodeUpdates: %v", err)
	}
	if len(got.Raw) != 3 {
		t.Fatalf("got %v", got.Raw)
	}
}
