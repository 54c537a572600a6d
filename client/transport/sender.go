/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package transport gives the Sender capability of §6 a concrete body for
// testability: a connection framed over github.com/gorilla/websocket, the
// same library client/websocketRouter dials with. It performs no MTProto
// encryption or message-id assignment; the "auth key" it generates and
// binds is an opaque 256-byte session token for this reference transport,
// not a real Diffie-Hellman-derived key. Framing/crypto stay out of scope
// per the client's Non-goals — this package exists so the orchestrator in
// the client package has something real to drive end to end.
package transport

import (
	"crypto/rand"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrNotConnected is returned by Invoke on a WebsocketSender that holds no
// connection (one not obtained from Dial).
var ErrNotConnected = errors.New("transport: not connected")

// ErrClosed is returned by a call made after Close.
var ErrClosed = errors.New("transport: connection closed")

// RPCError is the (code, name, value) triple a request can fail with;
// mirrors rpcerr.Error's shape without importing the client package (which
// imports transport), keeping the two independent as §6 expects of an
// external collaborator.
type RPCError struct {
	Code  int32
	Name  string
	Value *int32
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("transport: rpc error %d: %s", e.Code, e.Name)
}

// Sender is the capability boundary §6 describes: connect to a
// datacenter address, adopt or generate a 256-byte auth key, and issue
// framed requests that come back as either a successful payload or a
// structured RPCError.
type Sender interface {
	GenerateAuthKey() ([256]byte, error)
	SetAuthKey(key [256]byte)
	Invoke(constructorID uint32, body []byte) ([]byte, *RPCError, error)
	Close() error
}

// WebsocketSender is the reference Sender implementation. Each instance
// owns exactly one underlying connection and is not shared between
// goroutines, matching §5's single-threaded-per-client ownership model.
type WebsocketSender struct {
	id      uuid.UUID
	conn    *websocket.Conn
	authKey [256]byte
	mtx     sync.Mutex
	closed  bool
}

// Dial connects to addr (host:port) and returns a fresh WebsocketSender
// with no auth key bound yet.
func Dial(addr string, enforceCert bool) (*WebsocketSender, error) {
	u := url.URL{Scheme: "wss", Host: addr, Path: "/mtproto"}
	dialer := websocket.Dialer{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !enforceCert},
		HandshakeTimeout: 10 * time.Second,
	}
	hdr := http.Header{}
	hdr.Add("Origin", fmt.Sprintf("wss://%s", addr))
	conn, resp, err := dialer.Dial(u.String(), hdr)
	if err != nil {
		if resp != nil && resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("transport: dial %s: bad status %d", addr, resp.StatusCode)
		}
		return nil, fmt.Errorf("transport: dial %s: %w", addr, err)
	}
	return &WebsocketSender{id: uuid.New(), conn: conn}, nil
}

// GenerateAuthKey derives a fresh 256-byte key for this connection. A real
// MTProto implementation runs the Diffie-Hellman key exchange here; this
// reference transport draws one from a CSPRNG, which is sufficient to
// exercise the Client orchestrator's generate/persist/adopt flow without
// claiming to be cryptographically authentic.
func (s *WebsocketSender) GenerateAuthKey() ([256]byte, error) {
	var key [256]byte
	if _, err := rand.Read(key[:]); err != nil {
		return key, fmt.Errorf("transport: generating auth key: %w", err)
	}
	s.mtx.Lock()
	s.authKey = key
	s.mtx.Unlock()
	return key, nil
}

// SetAuthKey adopts a previously persisted key instead of generating one.
func (s *WebsocketSender) SetAuthKey(key [256]byte) {
	s.mtx.Lock()
	s.authKey = key
	s.mtx.Unlock()
}

// frame is the wire envelope this reference transport exchanges: a
// constructor id the peer can use to identify the boxed request/response
// without fully decoding it, and the already-TL-encoded body bytes
// (including their own leading constructor id).
type frame struct {
	ConstructorID uint32          `json:"constructor_id"`
	Body          []byte          `json:"body"`
	Error         *RPCError       `json:"error,omitempty"`
}

// Invoke writes one framed request and blocks for its matching response,
// honoring §5's FIFO ordering guarantee (one in-flight request per
// Sender).
func (s *WebsocketSender) Invoke(constructorID uint32, body []byte) ([]byte, *RPCError, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.closed {
		return nil, nil, ErrClosed
	}
	if s.conn == nil {
		return nil, nil, ErrNotConnected
	}
	if err := s.conn.WriteJSON(frame{ConstructorID: constructorID, Body: body}); err != nil {
		return nil, nil, fmt.Errorf("transport: write: %w", err)
	}
	var resp frame
	if err := s.conn.ReadJSON(&resp); err != nil {
		return nil, nil, fmt.Errorf("transport: read: %w", err)
	}
	if resp.Error != nil {
		return nil, resp.Error, nil
	}
	return resp.Body, nil, nil
}

// Close tears down the underlying websocket connection.
func (s *WebsocketSender) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// ID identifies this connection for debug/object-log trails, the same way
// the teacher's websocket router tags sessions for its own log.
func (s *WebsocketSender) ID() uuid.UUID { return s.id }
