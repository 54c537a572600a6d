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

// Dialog is the "dialog" constructor: one row of messages.getDialogs,
// carrying the fields DialogIter needs for its offset/dedup bookkeeping
// (Peer, TopMessage) plus the unread counter callers typically want.
type Dialog struct {
	Peer        Peer
	TopMessage  int32
	UnreadCount int32
}

func (*Dialog) ConstructorID() uint32 { return 0x2c171f72 }

func (v *Dialog) Encode(w *tlwire.Writer) {
	w.PutUint32(0x2c171f72)
	v.Peer.Encode(w)
	w.PutInt(v.TopMessage)
	w.PutInt(v.UnreadCount)
}

func DecodeDialog(r *tlwire.Reader) (*Dialog, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if id != 0x2c171f72 {
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
	v := &Dialog{}
	if v.Peer, err = DecodePeer(r); err != nil {
		return nil, err
	}
	if v.TopMessage, err = r.Int(); err != nil {
		return nil, err
	}
	if v.UnreadCount, err = r.Int(); err != nil {
		return nil, err
	}
	return v, nil
}

// MessagesDialogs is the tagged union of messages.getDialogs's three
// possible shapes: a complete list, one page of a paginated list, or a
// sentinel meaning "nothing changed since your last call".
type MessagesDialogs interface {
	isMessagesDialogs()
	ConstructorID() uint32
	Encode(w *tlwire.Writer)
}

// MessagesDialogsPlain is the "messages.dialogs" constructor: every dialog
// the account has, unpaginated.
type MessagesDialogsPlain struct {
	Dialogs  []*Dialog
	Messages []*Message
	Chats    []*Chat
	Users    []*User
}

func (*MessagesDialogsPlain) isMessagesDialogs()  {}
func (*MessagesDialogsPlain) ConstructorID() uint32 { return 0x15ba6c40 }

func (v *MessagesDialogsPlain) Encode(w *tlwire.Writer) {
	w.PutUint32(0x15ba6c40)
	w.BoxedVectorHeader(len(v.Dialogs))
	for _, d := range v.Dialogs {
		d.Encode(w)
	}
	w.BoxedVectorHeader(len(v.Messages))
	for _, m := range v.Messages {
		m.Encode(w)
	}
	w.BoxedVectorHeader(len(v.Chats))
	for _, c := range v.Chats {
		c.Encode(w)
	}
	w.BoxedVectorHeader(len(v.Users))
	for _, u := range v.Users {
		u.Encode(w)
	}
}

// MessagesDialogsSlice is the "messages.dialogsSlice" constructor: one
// page, with the total count of dialogs across all pages.
type MessagesDialogsSlice struct {
	Count    int32
	Dialogs  []*Dialog
	Messages []*Message
	Chats    []*Chat
	Users    []*User
}

func (*MessagesDialogsSlice) isMessagesDialogs()  {}
func (*MessagesDialogsSlice) ConstructorID() uint32 { return 0x71e094f3 }

func (v *MessagesDialogsSlice) Encode(w *tlwire.Writer) {
	w.PutUint32(0x71e094f3)
	w.PutInt(v.Count)
	w.BoxedVectorHeader(len(v.Dialogs))
	for _, d := range v.Dialogs {
		d.Encode(w)
	}
	w.BoxedVectorHeader(len(v.Messages))
	for _, m := range v.Messages {
		m.Encode(w)
	}
	w.BoxedVectorHeader(len(v.Chats))
	for _, c := range v.Chats {
		c.Encode(w)
	}
	w.BoxedVectorHeader(len(v.Users))
	for _, u := range v.Users {
		u.Encode(w)
	}
}

// MessagesDialogsNotModified is the "messages.dialogsNotModified"
// constructor.
type MessagesDialogsNotModified struct {
	Count int32
}

func (*MessagesDialogsNotModified) isMessagesDialogs()  {}
func (*MessagesDialogsNotModified) ConstructorID() uint32 { return 0xf0e3e596 }

func (v *MessagesDialogsNotModified) Encode(w *tlwire.Writer) {
	w.PutUint32(0xf0e3e596)
	w.PutInt(v.Count)
}

// DecodeMessagesDialogs reads a boxed MessagesDialogs value, dispatching on
// its constructor id.
func DecodeMessagesDialogs(r *tlwire.Reader) (MessagesDialogs, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	switch id {
	case 0x15ba6c40:
		v := &MessagesDialogsPlain{}
		if v.Dialogs, err = decodeDialogVector(r); err != nil {
			return nil, err
		}
		if v.Messages, err = decodeMessageVector(r); err != nil {
			return nil, err
		}
		if v.Chats, err = decodeChatVector(r); err != nil {
			return nil, err
		}
		if v.Users, err = decodeUserVector(r); err != nil {
			return nil, err
		}
		return v, nil
	case 0x71e094f3:
		v := &MessagesDialogsSlice{}
		if v.Count, err = r.Int(); err != nil {
			return nil, err
		}
		if v.Dialogs, err = decodeDialogVector(r); err != nil {
			return nil, err
		}
		if v.Messages, err = decodeMessageVector(r); err != nil {
			return nil, err
		}
		if v.Chats, err = decodeChatVector(r); err != nil {
			return nil, err
		}
		if v.Users, err = decodeUserVector(r); err != nil {
			return nil, err
		}
		return v, nil
	case 0xf0e3e596:
		v := &MessagesDialogsNotModified{}
		if v.Count, err = r.Int(); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
}

func decodeDialogVector(r *tlwire.Reader) ([]*Dialog, error) {
	n, err := r.VectorHeader()
	if err != nil {
		return nil, err
	}
	out := make([]*Dialog, n)
	for i := range out {
		if out[i], err = DecodeDialog(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeChatVector(r *tlwire.Reader) ([]*Chat, error) {
	n, err := r.VectorHeader()
	if err != nil {
		return nil, err
	}
	out := make([]*Chat, n)
	for i := range out {
		if out[i], err = DecodeChat(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeUserVector(r *tlwire.Reader) ([]*User, error) {
	n, err := r.VectorHeader()
	if err != nil {
		return nil, err
	}
	out := make([]*User, n)
	for i := range out {
		if out[i], err = DecodeUser(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Message is a minimal stand-in for the real Message boxed type: enough to
// round-trip messages.sendMessage's Updates payload and messages.Dialogs'
// embedded message list. Date is carried so DialogIter can advance
// messages.getDialogs' offset_date the way the real client does from a
// page's last dialog's top message.
type Message struct {
	ID   int32
	Date int32
	Peer Peer
	Text string
}

func (*Message) ConstructorID() uint32 { return 0x85d6cde6 }

func (v *Message) Encode(w *tlwire.Writer) {
	w.PutUint32(0x85d6cde6)
	w.PutInt(v.ID)
	w.PutInt(v.Date)
	v.Peer.Encode(w)
	w.PutString(v.Text)
}

func DecodeMessage(r *tlwire.Reader) (*Message, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if id != 0x85d6cde6 {
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
	v := &Message{}
	if v.ID, err = r.Int(); err != nil {
		return nil, err
	}
	if v.Date, err = r.Int(); err != nil {
		return nil, err
	}
	if v.Peer, err = DecodePeer(r); err != nil {
		return nil, err
	}
	if v.Text, err = r.String(); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeMessageVector(r *tlwire.Reader) ([]*Message, error) {
	n, err := r.VectorHeader()
	if err != nil {
		return nil, err
	}
	out := make([]*Message, n)
	for i := range out {
		if out[i], err = DecodeMessage(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Updates is a minimal stand-in for the Updates boxed type, enough to
// confirm messages.sendMessage's reply decodes without error; update
// dispatching itself is out of scope.
type Updates struct {
	Raw []byte
}

func (*Updates) ConstructorID() uint32 { return 0x74ae4240 }

func (v *Updates) Encode(w *tlwire.Writer) {
	w.PutUint32(0x74ae4240)
	w.PutRaw(v.Raw)
}

// DecodeUpdates consumes the constructor id and stores whatever remains of
// the reader's buffer verbatim, since this client does not interpret
// update payloads.
func DecodeUpdates(r *tlwire.Reader) (*Updates, error) {
	if _, err := r.Uint32(); err != nil {
		return nil, err
	}
	return &Updates{Raw: r.RemainingBytes()}, nil
}
