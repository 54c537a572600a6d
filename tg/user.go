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

// flagBit reports whether bit n of mask is set.
func flagBit(mask uint32, n uint) bool { return mask&(1<<n) != 0 }

func setFlagBit(mask *uint32, n uint, present bool) {
	if present {
		*mask |= 1 << n
	}
}

// User is the "user" constructor of the User boxed type. The real schema
// also has a "userEmpty" constructor; this client never needs to construct
// or distinguish one, so User models only the populated form it receives
// back from auth.Authorization, contacts.ResolvedPeer, and
// messages.Dialogs responses.
type User struct {
	Self       bool
	Bot        bool
	ID         int64
	AccessHash int64
	FirstName  string
	LastName   string
	Username   string
	Phone      string

	hasUsername bool
	hasPhone    bool
}

func (*User) ConstructorID() uint32 { return 0x3ff6ecb0 }

func (v *User) Encode(w *tlwire.Writer) {
	w.PutUint32(0x3ff6ecb0)
	var mask uint32
	setFlagBit(&mask, 10, v.Self)
	setFlagBit(&mask, 14, v.Bot)
	setFlagBit(&mask, 0, v.hasUsername && v.Username != "")
	setFlagBit(&mask, 4, v.hasPhone && v.Phone != "")
	w.PutUint32(mask)
	w.PutLong(v.ID)
	w.PutLong(v.AccessHash)
	w.PutString(v.FirstName)
	w.PutString(v.LastName)
	if flagBit(mask, 0) {
		w.PutString(v.Username)
	}
	if flagBit(mask, 4) {
		w.PutString(v.Phone)
	}
}

// DecodeUser reads a boxed User value. "userEmpty" (id 0x5d99adee) decodes
// to a User with only ID populated, matching the minimal guarantee the
// real constructor makes.
func DecodeUser(r *tlwire.Reader) (*User, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	switch id {
	case 0x5d99adee: // userEmpty
		v := &User{}
		if v.ID, err = r.Long(); err != nil {
			return nil, err
		}
		return v, nil
	case 0x3ff6ecb0: // user
		return decodeUserBody(r)
	default:
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
}

func decodeUserBody(r *tlwire.Reader) (*User, error) {
	v := &User{}
	mask, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	v.Self = flagBit(mask, 10)
	v.Bot = flagBit(mask, 14)
	if v.ID, err = r.Long(); err != nil {
		return nil, err
	}
	if v.AccessHash, err = r.Long(); err != nil {
		return nil, err
	}
	if v.FirstName, err = r.String(); err != nil {
		return nil, err
	}
	if v.LastName, err = r.String(); err != nil {
		return nil, err
	}
	if flagBit(mask, 0) {
		if v.Username, err = r.String(); err != nil {
			return nil, err
		}
		v.hasUsername = true
	}
	if flagBit(mask, 4) {
		if v.Phone, err = r.String(); err != nil {
			return nil, err
		}
		v.hasPhone = true
	}
	return v, nil
}

// Chat is a minimal stand-in for the "chat"/"channel" constructors of the
// Chat boxed type, carrying only what contacts.ResolvedPeer's chats vector
// needs for this client to round-trip a response: identity and title.
type Chat struct {
	ID    int64
	Title string
}

func (*Chat) ConstructorID() uint32 { return 0x41cbf256 }

func (v *Chat) Encode(w *tlwire.Writer) {
	w.PutUint32(0x41cbf256)
	w.PutLong(v.ID)
	w.PutString(v.Title)
}

func DecodeChat(r *tlwire.Reader) (*Chat, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if id != 0x41cbf256 {
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
	v := &Chat{}
	if v.ID, err = r.Long(); err != nil {
		return nil, err
	}
	if v.Title, err = r.String(); err != nil {
		return nil, err
	}
	return v, nil
}
