/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import "github.com/gravwell/tlproto/tg"

// IntoInputPeer is the capability §9's IntoInput<InputPeer> describes: any
// value a caller can hand to SendMessage in place of an already-built
// tg.InputPeer. The Client resolves a username through contacts.resolveUsername;
// a User value it already holds is turned into an InputPeer directly,
// without a network round trip.
type IntoInputPeer interface {
	intoInputPeer(c *Client) (tg.InputPeer, error)
}

// InputPeerFromUser adapts an already-known tg.User into an InputPeer with
// no network round trip, the same shortcut the real client takes when it
// already has the user's access hash cached.
type InputPeerFromUser struct {
	User *tg.User
}

func (a InputPeerFromUser) intoInputPeer(*Client) (tg.InputPeer, error) {
	if a.User.Self {
		return &tg.InputPeerSelf{}, nil
	}
	return &tg.InputPeerUser{UserID: a.User.ID, AccessHash: a.User.AccessHash}, nil
}

// InputPeerFromUsername resolves a bare "@username"-style handle (the "@"
// prefix, if present, is stripped) via contacts.resolveUsername.
type InputPeerFromUsername struct {
	Username string
}

func (a InputPeerFromUsername) intoInputPeer(c *Client) (tg.InputPeer, error) {
	u, err := c.ResolveUsername(a.Username)
	if err != nil {
		return nil, err
	}
	return InputPeerFromUser{User: u}.intoInputPeer(c)
}
