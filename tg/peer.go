/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package tg is the hand-stable object model tlgen would emit for the
// Telegram API subset this client actually calls: InputPeer/Peer, the
// auth.* login types, contacts.ResolvedPeer, messages.Dialogs and its
// Dialog rows, and the request types the Client orchestrator issues. It is
// written in the same shape tlgen/generate.go produces (ConstructorID,
// Encode, a per-union Decode dispatcher, body-only per-variant decoders) so
// that hand-maintained and generated code can sit side by side without a
// seam.
package tg

import (
	"github.com/gravwell/tlproto/tl"
	"github.com/gravwell/tlproto/tlwire"
)

// InputPeer is the tagged union of every constructor whose boxed type is
// "InputPeer".
type InputPeer interface {
	isInputPeer()
	ConstructorID() uint32
	Encode(w *tlwire.Writer)
}

// InputPeerSelf refers to the currently logged-in user.
type InputPeerSelf struct{}

func (*InputPeerSelf) isInputPeer()            {}
func (*InputPeerSelf) ConstructorID() uint32   { return 0x7da07ec9 }
func (v *InputPeerSelf) Encode(w *tlwire.Writer) {
	w.PutUint32(0x7da07ec9)
}

func decodeInputPeerSelfBody(r *tlwire.Reader) (*InputPeerSelf, error) {
	return &InputPeerSelf{}, nil
}

// InputPeerUser refers to a user by id plus the access hash that proves
// this client has previously seen that user.
type InputPeerUser struct {
	UserID     int64
	AccessHash int64
}

func (*InputPeerUser) isInputPeer()          {}
func (*InputPeerUser) ConstructorID() uint32 { return 0xdde8a54c }
func (v *InputPeerUser) Encode(w *tlwire.Writer) {
	w.PutUint32(0xdde8a54c)
	w.PutLong(v.UserID)
	w.PutLong(v.AccessHash)
}

func decodeInputPeerUserBody(r *tlwire.Reader) (*InputPeerUser, error) {
	v := &InputPeerUser{}
	var err error
	if v.UserID, err = r.Long(); err != nil {
		return nil, err
	}
	if v.AccessHash, err = r.Long(); err != nil {
		return nil, err
	}
	return v, nil
}

// InputPeerChat refers to a basic group by id.
type InputPeerChat struct {
	ChatID int64
}

func (*InputPeerChat) isInputPeer()          {}
func (*InputPeerChat) ConstructorID() uint32 { return 0x35a95cb9 }
func (v *InputPeerChat) Encode(w *tlwire.Writer) {
	w.PutUint32(0x35a95cb9)
	w.PutLong(v.ChatID)
}

func decodeInputPeerChatBody(r *tlwire.Reader) (*InputPeerChat, error) {
	v := &InputPeerChat{}
	var err error
	if v.ChatID, err = r.Long(); err != nil {
		return nil, err
	}
	return v, nil
}

// InputPeerChannel refers to a channel or supergroup by id plus access
// hash.
type InputPeerChannel struct {
	ChannelID  int64
	AccessHash int64
}

func (*InputPeerChannel) isInputPeer()          {}
func (*InputPeerChannel) ConstructorID() uint32 { return 0x27bcbbfc }
func (v *InputPeerChannel) Encode(w *tlwire.Writer) {
	w.PutUint32(0x27bcbbfc)
	w.PutLong(v.ChannelID)
	w.PutLong(v.AccessHash)
}

func decodeInputPeerChannelBody(r *tlwire.Reader) (*InputPeerChannel, error) {
	v := &InputPeerChannel{}
	var err error
	if v.ChannelID, err = r.Long(); err != nil {
		return nil, err
	}
	if v.AccessHash, err = r.Long(); err != nil {
		return nil, err
	}
	return v, nil
}

// InputPeerEmpty is the zero addressee, used as messages.getDialogs' initial
// offset_peer before any page has been fetched.
type InputPeerEmpty struct{}

func (*InputPeerEmpty) isInputPeer()          {}
func (*InputPeerEmpty) ConstructorID() uint32 { return 0x7f3b18ea }
func (v *InputPeerEmpty) Encode(w *tlwire.Writer) {
	w.PutUint32(0x7f3b18ea)
}

func decodeInputPeerEmptyBody(r *tlwire.Reader) (*InputPeerEmpty, error) {
	return &InputPeerEmpty{}, nil
}

// DecodeInputPeer reads a boxed InputPeer value, dispatching on its
// constructor id.
func DecodeInputPeer(r *tlwire.Reader) (InputPeer, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	switch id {
	case 0x7f3b18ea:
		return decodeInputPeerEmptyBody(r)
	case 0x7da07ec9:
		return decodeInputPeerSelfBody(r)
	case 0xdde8a54c:
		return decodeInputPeerUserBody(r)
	case 0x35a95cb9:
		return decodeInputPeerChatBody(r)
	case 0x27bcbbfc:
		return decodeInputPeerChannelBody(r)
	default:
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
}

// Peer is the tagged union of every constructor whose boxed type is "Peer":
// the bare identifier of a user, basic group, or channel, without the
// access hash InputPeer needs to address it in a request.
type Peer interface {
	isPeer()
	ConstructorID() uint32
	Encode(w *tlwire.Writer)
}

type PeerUser struct {
	UserID int64
}

func (*PeerUser) isPeer()          {}
func (*PeerUser) ConstructorID() uint32 { return 0x59511722 }
func (v *PeerUser) Encode(w *tlwire.Writer) {
	w.PutUint32(0x59511722)
	w.PutLong(v.UserID)
}

func decodePeerUserBody(r *tlwire.Reader) (*PeerUser, error) {
	v := &PeerUser{}
	var err error
	if v.UserID, err = r.Long(); err != nil {
		return nil, err
	}
	return v, nil
}

type PeerChat struct {
	ChatID int64
}

func (*PeerChat) isPeer()          {}
func (*PeerChat) ConstructorID() uint32 { return 0x36c6019a }
func (v *PeerChat) Encode(w *tlwire.Writer) {
	w.PutUint32(0x36c6019a)
	w.PutLong(v.ChatID)
}

func decodePeerChatBody(r *tlwire.Reader) (*PeerChat, error) {
	v := &PeerChat{}
	var err error
	if v.ChatID, err = r.Long(); err != nil {
		return nil, err
	}
	return v, nil
}

type PeerChannel struct {
	ChannelID int64
}

func (*PeerChannel) isPeer()          {}
func (*PeerChannel) ConstructorID() uint32 { return 0xa2a5371e }
func (v *PeerChannel) Encode(w *tlwire.Writer) {
	w.PutUint32(0xa2a5371e)
	w.PutLong(v.ChannelID)
}

func decodePeerChannelBody(r *tlwire.Reader) (*PeerChannel, error) {
	v := &PeerChannel{}
	var err error
	if v.ChannelID, err = r.Long(); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodePeer reads a boxed Peer value, dispatching on its constructor id.
func DecodePeer(r *tlwire.Reader) (Peer, error) {
	id, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	switch id {
	case 0x59511722:
		return decodePeerUserBody(r)
	case 0x36c6019a:
		return decodePeerChatBody(r)
	case 0xa2a5371e:
		return decodePeerChannelBody(r)
	default:
		return nil, &tl.UnexpectedConstructorError{ID: id}
	}
}
