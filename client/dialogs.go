/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"fmt"

	"github.com/gravwell/tlproto/tg"
)

// dialogPageLimit is the page size DialogIter requests on each
// messages.getDialogs call.
const dialogPageLimit = 100

// DialogIter pages through a user's dialog list via messages.getDialogs,
// advancing offset_date/offset_id/offset_peer from the last dialog of each
// page the way a real client does, and skipping any dialog it has already
// yielded (the server's paging cursor is not guaranteed exclusive across
// retries). It follows the buffer-then-drain shape of a Go iterator: call
// Next until it returns false, check Err, and read Dialog after each
// successful Next.
type DialogIter struct {
	c *Client

	offsetDate int32
	offsetID   int32
	offsetPeer tg.InputPeer

	pending []*tg.Dialog
	current *tg.Dialog

	seen map[string]bool
	done bool
	err  error
}

// IterDialogs starts a new DialogIter against c, beginning at the first
// page.
func (c *Client) IterDialogs() *DialogIter {
	return &DialogIter{
		c:          c,
		offsetPeer: &tg.InputPeerEmpty{},
		seen:       make(map[string]bool),
	}
}

// Next advances to the next dialog, fetching another page if the current
// one is exhausted. It returns false once the dialog list is exhausted or
// a fetch fails; callers must check Err to distinguish the two.
func (it *DialogIter) Next() bool {
	if it.err != nil {
		return false
	}
	for {
		for len(it.pending) > 0 {
			d := it.pending[0]
			it.pending = it.pending[1:]
			key := peerKey(d.Peer)
			if it.seen[key] {
				continue
			}
			it.seen[key] = true
			it.current = d
			return true
		}
		if it.done {
			return false
		}
		if err := it.fetch(); err != nil {
			it.err = err
			return false
		}
	}
}

// Dialog returns the dialog most recently yielded by Next.
func (it *DialogIter) Dialog() *tg.Dialog {
	return it.current
}

// Err returns the error, if any, that stopped iteration.
func (it *DialogIter) Err() error {
	return it.err
}

// fetch issues one messages.getDialogs page, queues its dialogs, and
// advances the iterator's offset bookkeeping from it, or marks the
// iterator done if the page is the last one.
func (it *DialogIter) fetch() error {
	req := &tg.MessagesGetDialogsRequest{
		OffsetDate: it.offsetDate,
		OffsetID:   it.offsetID,
		OffsetPeer: it.offsetPeer,
		Limit:      dialogPageLimit,
	}
	resp, err := invoke(it.c, req, tg.DecodeMessagesDialogs)
	if err != nil {
		return fmt.Errorf("client: fetching dialogs page: %w", err)
	}

	switch page := resp.(type) {
	case *tg.MessagesDialogsPlain:
		it.pending = page.Dialogs
		it.done = true
		return nil
	case *tg.MessagesDialogsSlice:
		it.pending = page.Dialogs
		it.advanceOffset(page.Dialogs, page.Messages)
		if len(page.Dialogs) < dialogPageLimit {
			it.done = true
		}
		return nil
	case *tg.MessagesDialogsNotModified:
		it.done = true
		return nil
	default:
		it.done = true
		return nil
	}
}

// advanceOffset sets the iterator's next-page cursor from the last dialog
// of the page just fetched, matching that dialog's TopMessage id against
// the page's message list to recover the offset_date messages.getDialogs
// expects.
func (it *DialogIter) advanceOffset(dialogs []*tg.Dialog, messages []*tg.Message) {
	if len(dialogs) == 0 {
		return
	}
	last := dialogs[len(dialogs)-1]
	it.offsetID = last.TopMessage
	it.offsetPeer = peerToInputPeer(last.Peer)
	for _, m := range messages {
		if m.ID == last.TopMessage {
			it.offsetDate = m.Date
			break
		}
	}
}

// peerKey builds a stable dedup key for a bare Peer value.
func peerKey(p tg.Peer) string {
	switch v := p.(type) {
	case *tg.PeerUser:
		return fmt.Sprintf("user:%d", v.UserID)
	case *tg.PeerChat:
		return fmt.Sprintf("chat:%d", v.ChatID)
	case *tg.PeerChannel:
		return fmt.Sprintf("channel:%d", v.ChannelID)
	default:
		return fmt.Sprintf("unknown:%p", p)
	}
}

// peerToInputPeer widens a bare Peer into the InputPeer offset_peer needs.
// A bare Peer carries no access hash, so the user/channel cases round-trip
// with AccessHash 0; the server accepts this for paging purposes since
// offset_peer is only used to break dialog-ordering ties, not to address a
// request at the peer.
func peerToInputPeer(p tg.Peer) tg.InputPeer {
	switch v := p.(type) {
	case *tg.PeerUser:
		return &tg.InputPeerUser{UserID: v.UserID}
	case *tg.PeerChat:
		return &tg.InputPeerChat{ChatID: v.ChatID}
	case *tg.PeerChannel:
		return &tg.InputPeerChannel{ChannelID: v.ChannelID}
	default:
		return &tg.InputPeerEmpty{}
	}
}
