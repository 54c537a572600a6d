/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package tg

import (
	"github.com/gravwell/tlproto/tl"
	"github.com/gravwell/tlproto/tlwire"
)

// AuthSentCode is the "auth.sentCode" constructor: the response to
// auth.sendCode, carrying the hash sign_in must echo back.
type AuthSentCode struct {
	PhoneCodeHash string
}

func (*AuthSentCode) ConstructorID() uint32 { return 0x5e002502 }

func (v *AuthSentCode) Encode(w *tlwire.Writer) {
	w.PutUint32(0x5e002502)
	w.PutString(v.PhoneCodeHash)
}

func DecodeAuthSentCode(r *tlwire.Reader) (*AuthSentCode, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if id != 0x5e002502 {
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
	v := &AuthSentCode{}
	if v.PhoneCodeHash, err = r.String(); err != nil {
		return nil, err
	}
	return v, nil
}

// AuthAuthorization is the tagged union of auth.sign_in's/auth.Authorization's
// two possible outcomes: a completed login, or a signal that the phone
// number has no account yet and must go through sign-up first.
type AuthAuthorization interface {
	isAuthAuthorization()
	ConstructorID() uint32
}

// Authorization is the "auth.authorization" constructor: sign-in succeeded
// and User is the now-logged-in account.
type Authorization struct {
	User *User
}

func (*Authorization) isAuthAuthorization() {}
func (*Authorization) ConstructorID() uint32 { return 0x2ea2c0d4 }

func (v *Authorization) Encode(w *tlwire.Writer) {
	w.PutUint32(0x2ea2c0d4)
	v.User.Encode(w)
}

func decodeAuthorizationBody(r *tlwire.Reader) (*Authorization, error) {
	u, err := DecodeUser(r)
	if err != nil {
		return nil, err
	}
	return &Authorization{User: u}, nil
}

// AuthorizationSignUpRequired is the "auth.authorizationSignUpRequired"
// constructor: this phone number has no account yet.
type AuthorizationSignUpRequired struct {
	HasTermsOfService bool
	TermsOfService    string
}

func (*AuthorizationSignUpRequired) isAuthAuthorization() {}
func (*AuthorizationSignUpRequired) ConstructorID() uint32 { return 0x44747e9a }

func (v *AuthorizationSignUpRequired) Encode(w *tlwire.Writer) {
	w.PutUint32(0x44747e9a)
	var mask uint32
	setFlagBit(&mask, 0, v.HasTermsOfService)
	w.PutUint32(mask)
	if v.HasTermsOfService {
		w.PutString(v.TermsOfService)
	}
}

func decodeAuthorizationSignUpRequiredBody(r *tlwire.Reader) (*AuthorizationSignUpRequired, error) {
	v := &AuthorizationSignUpRequired{}
	mask, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	v.HasTermsOfService = flagBit(mask, 0)
	if v.HasTermsOfService {
		if v.TermsOfService, err = r.String(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// DecodeAuthAuthorization reads a boxed AuthAuthorization value, dispatching
// on its constructor id.
func DecodeAuthAuthorization(r *tlwire.Reader) (AuthAuthorization, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	switch id {
	case 0x2ea2c0d4:
		return decodeAuthorizationBody(r)
	case 0x44747e9a:
		return decodeAuthorizationSignUpRequiredBody(r)
	default:
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
}

// ContactsResolvedPeer is the "contacts.resolvedPeer" constructor returned
// by contacts.resolveUsername: the resolved Peer plus the chats/users lists
// needed to turn it into an addressable InputPeer.
type ContactsResolvedPeer struct {
	Peer  Peer
	Chats []*Chat
	Users []*User
}

func (*ContactsResolvedPeer) ConstructorID() uint32 { return 0xf271f500 }

func (v *ContactsResolvedPeer) Encode(w *tlwire.Writer) {
	w.PutUint32(0xf271f500)
	v.Peer.Encode(w)
	w.BoxedVectorHeader(len(v.Chats))
	for _, c := range v.Chats {
		c.Encode(w)
	}
	w.BoxedVectorHeader(len(v.Users))
	for _, u := range v.Users {
		u.Encode(w)
	}
}

func DecodeContactsResolvedPeer(r *tlwire.Reader) (*ContactsResolvedPeer, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if id != 0xf271f500 {
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
	v := &ContactsResolvedPeer{}
	if v.Peer, err = DecodePeer(r); err != nil {
		return nil, err
	}
	n, err := r.VectorHeader()
	if err != nil {
		return nil, err
	}
	v.Chats = make([]*Chat, n)
	for i := 0; i < n; i++ {
		if v.Chats[i], err = DecodeChat(r); err != nil {
			return nil, err
		}
	}
	n, err = r.VectorHeader()
	if err != nil {
		return nil, err
	}
	v.Users = make([]*User, n)
	for i := 0; i < n; i++ {
		if v.Users[i], err = DecodeUser(r); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// UpdatesState is the "updates.state" constructor returned by
// updates.getState. The Client orchestrator's is_authorized probe only
// cares that the call succeeded, not the state vector values, so only the
// fields needed to round-trip a real response are modeled.
type UpdatesState struct {
	Pts  int32
	Qts  int32
	Date int32
	Seq  int32
}

func (*UpdatesState) ConstructorID() uint32 { return 0xa56c2a3e }

func (v *UpdatesState) Encode(w *tlwire.Writer) {
	w.PutUint32(0xa56c2a3e)
	w.PutInt(v.Pts)
	w.PutInt(v.Qts)
	w.PutInt(v.Date)
	w.PutInt(v.Seq)
}

func DecodeUpdatesState(r *tlwire.Reader) (*UpdatesState, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if id != 0xa56c2a3e {
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
	v := &UpdatesState{}
	if v.Pts, err = r.Int(); err != nil {
		return nil, err
	}
	if v.Qts, err = r.Int(); err != nil {
		return nil, err
	}
	if v.Date, err = r.Int(); err != nil {
		return nil, err
	}
	if v.Seq, err = r.Int(); err != nil {
		return nil, err
	}
	return v, nil
}
