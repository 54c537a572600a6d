/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"testing"

	"github.com/gravwell/tlproto/tg"
)

// buildDialogsPage constructs one messages.dialogsSlice page of count
// dialogs, starting at user id firstID, each dialog's TopMessage carried
// by a matching Message so DialogIter can recover offset_date from it.
func buildDialogsPage(firstID int64, count int, total int32) *tg.MessagesDialogsSlice {
	page := &tg.MessagesDialogsSlice{Count: total}
	for i := 0; i < count; i++ {
		id := firstID + int64(i)
		peer := &tg.PeerUser{UserID: id}
		page.Dialogs = append(page.Dialogs, &tg.Dialog{
			Peer:        peer,
			TopMessage:  int32(id),
			UnreadCount: 0,
		})
		page.Messages = append(page.Messages, &tg.Message{
			ID:   int32(id),
			Date: int32(1000 + id),
			Peer: peer,
			Text: "",
		})
	}
	return page
}

func TestDialogIterPagesThroughThreePages(t *testing.T) {
	const total = 237
	page1 := buildDialogsPage(1, 100, total)
	page2 := buildDialogsPage(101, 100, total)
	page3 := buildDialogsPage(201, 37, total)

	sender := &fakeSender{script: []scriptedCall{
		{body: encode(page1)},
		{body: encode(page2)},
		{body: encode(page3)},
	}}
	c := New(NewMemorySession(), 1, "hash", WithDialer(dialerFor(sender)))

	it := c.IterDialogs()
	seen := make(map[int64]bool)
	var count int
	for it.Next() {
		d := it.Dialog()
		u, ok := d.Peer.(*tg.PeerUser)
		if !ok {
			t.Fatalf("dialog %d: peer is %T, want *tg.PeerUser", count, d.Peer)
		}
		if seen[u.UserID] {
			t.Fatalf("dialog for user %d yielded twice", u.UserID)
		}
		seen[u.UserID] = true
		count++
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration failed: %v", err)
	}
	if count != total {
		t.Fatalf("yielded %d dialogs, want %d", count, total)
	}

	sender.mtx.Lock()
	calls := len(sender.calls)
	sender.mtx.Unlock()
	if calls != 3 {
		t.Fatalf("expected exactly 3 messages.getDialogs calls, got %d", calls)
	}
}

func TestDialogIterStopsOnDialogsNotModified(t *testing.T) {
	sender := &fakeSender{script: []scriptedCall{
		{body: encode(&tg.MessagesDialogsNotModified{Count: 5})},
	}}
	c := New(NewMemorySession(), 1, "hash", WithDialer(dialerFor(sender)))

	it := c.IterDialogs()
	if it.Next() {
		t.Fatalf("expected no dialogs, got one")
	}
	if err := it.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
