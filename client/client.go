/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package client implements the orchestrator of §4.F: it owns a Session
// and a single transport.Sender, drives the FreshDC -> InitConn ->
// Connected state machine, and exposes the login, username-resolution,
// message-send, and dialog-paging operations built on top of it.
package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/gravwell/tlproto/client/transport"
	"github.com/gravwell/tlproto/logging"
)

// LayerConstant is the MTProto layer number this client's compiled schema
// targets; it is pinned into every connection's initConnection call.
const LayerConstant int32 = 181

// AppVersion identifies this client to the server in initConnection.
const AppVersion = "tlproto/1"

// Dialer opens a transport.Sender to a datacenter address; Connect calls it
// so tests can substitute a fake transport without a real network.
type Dialer func(addr string) (transport.Sender, error)

func defaultDialer(addr string) (transport.Sender, error) {
	return transport.Dial(addr, true)
}

// Client is the single-owner orchestrator described in §5: it is not
// shared between goroutines, and every exported method blocks on its
// network round trips; a request that fails with a migration error is
// retried once, transparently, after the datacenter switch.
type Client struct {
	mtx sync.Mutex

	session Session
	dialer  Dialer
	log     *logging.Logger

	apiID   int32
	apiHash string

	sender      transport.Sender
	dcID        int32
	state       State
	initialized bool // has the first request on this Sender been init-connection-wrapped?

	lastPhone     string
	lastPhoneHash string
	hasLastPhone  bool

	randomIDMtx sync.Mutex
	lastRandID  int64
	randCounter int64
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger attaches a logger; absent this option, log lines are
// discarded.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithDialer overrides how a datacenter address is turned into a Sender,
// for tests.
func WithDialer(d Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// New constructs a Client bound to session, starting in FreshDC.
func New(session Session, apiID int32, apiHash string, opts ...Option) *Client {
	c := &Client{
		session: session,
		dialer:  defaultDialer,
		log:     logging.NewDiscard(),
		apiID:   apiID,
		apiHash: apiHash,
		state:   FreshDC,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State returns the client's current connection state.
func (c *Client) State() State {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.state
}

// Connect opens a Sender to the session's recorded datacenter (or
// DefaultDC if none is recorded yet), adopting a stored auth key if one
// exists, or generating and persisting a fresh one.
func (c *Client) Connect() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.connectLocked()
}

func (c *Client) connectLocked() error {
	dcID, addr, ok := c.session.GetUserDatacenter()
	if !ok {
		dcID = DefaultDC
		var hasAddr bool
		if addr, hasAddr = DatacenterAddress(dcID); !hasAddr {
			return fmt.Errorf("client: no address for default dc %d", dcID)
		}
	}
	return c.connectToLocked(dcID, addr, false)
}

// connectToLocked opens a Sender to dcID. With freshKey false it adopts a
// stored auth key for dcID when the session has one; with freshKey true it
// always generates and persists a new key.
func (c *Client) connectToLocked(dcID int32, addr string, freshKey bool) error {
	c.log.Infof("connecting to dc %d (%s)", dcID, addr)
	sender, err := c.dialer(addr)
	if err != nil {
		return fmt.Errorf("client: connecting to dc %d: %w", dcID, err)
	}

	if key, ok := c.session.GetAuthKeyData(dcID); ok && !freshKey {
		c.log.Debugf("adopting stored auth key for dc %d", dcID)
		sender.SetAuthKey(key)
	} else {
		c.log.Debugf("generating auth key for dc %d", dcID)
		key, gerr := sender.GenerateAuthKey()
		if gerr != nil {
			sender.Close()
			return fmt.Errorf("client: generating auth key for dc %d: %w", dcID, gerr)
		}
		if serr := c.session.SetAuthKeyData(dcID, key); serr != nil {
			sender.Close()
			return fmt.Errorf("client: persisting auth key for dc %d: %w", dcID, serr)
		}
	}

	if err := c.session.SetUserDatacenter(dcID, addr); err != nil {
		sender.Close()
		return fmt.Errorf("client: persisting user datacenter: %w", err)
	}

	c.sender = sender
	c.dcID = dcID
	c.state = InitConn
	c.initialized = false
	return nil
}

// Close tears down the current Sender, if any.
func (c *Client) Close() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.sender == nil {
		return nil
	}
	err := c.sender.Close()
	c.sender = nil
	c.state = FreshDC
	return err
}

// migrateLocked tears down the current Sender and rebuilds one against
// targetDC, generating and persisting a fresh auth key there. Per §4.F
// this is all-or-nothing: on any failure the original Sender and state are
// left untouched.
func (c *Client) migrateLocked(targetDC int32) error {
	addr, ok := DatacenterAddress(targetDC)
	if !ok {
		return fmt.Errorf("client: migration target dc %d has no address", targetDC)
	}
	c.log.Infof("migrating from dc %d to dc %d", c.dcID, targetDC)

	oldSender, oldDC, oldState, oldInitialized := c.sender, c.dcID, c.state, c.initialized
	c.state = Reconnecting

	if err := c.connectToLocked(targetDC, addr, true); err != nil {
		c.sender, c.dcID, c.state, c.initialized = oldSender, oldDC, oldState, oldInitialized
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	if oldSender != nil {
		oldSender.Close()
	}
	return nil
}

// nextRandomID returns a fresh random message id per §4.F/§9: the current
// Unix time in nanoseconds truncated to 64 bits. A monotonic counter widens
// the clock source on platforms (or within a single call burst) where two
// calls land on the same nanosecond, preserving uniqueness within a run;
// collisions across runs are the caller's concern and only cause the
// server to suppress a duplicate.
func (c *Client) nextRandomID() int64 {
	c.randomIDMtx.Lock()
	defer c.randomIDMtx.Unlock()
	id := time.Now().UnixNano()
	if id <= c.lastRandID {
		c.randCounter++
		id = c.lastRandID + c.randCounter
	} else {
		c.randCounter = 0
	}
	c.lastRandID = id
	return id
}
