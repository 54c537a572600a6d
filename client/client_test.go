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
	"sync"
	"testing"

	"github.com/gravwell/tlproto/client/transport"
	"github.com/gravwell/tlproto/tg"
	"github.com/gravwell/tlproto/tlwire"
)

// scriptedCall records one canned Invoke response, keyed by call order.
type scriptedCall struct {
	body   []byte
	rpcErr *transport.RPCError
	err    error
}

// fakeSender is a transport.Sender test double: it has no real connection
// and answers Invoke calls strictly in the order given by script, the same
// FIFO one-call-at-a-time shape the real Sender interface promises.
type fakeSender struct {
	mtx    sync.Mutex
	script []scriptedCall
	calls  []recordedCall
	closed bool
}

type recordedCall struct {
	outerID uint32
	innerID uint32
}

func (f *fakeSender) GenerateAuthKey() ([256]byte, error) {
	return [256]byte{1}, nil
}

func (f *fakeSender) SetAuthKey([256]byte) {}

func (f *fakeSender) Close() error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSender) Invoke(constructorID uint32, body []byte) ([]byte, *transport.RPCError, error) {
	f.mtx.Lock()
	idx := len(f.calls)
	inner, _ := unwrapConstructorID(body)
	f.calls = append(f.calls, recordedCall{outerID: constructorID, innerID: inner})
	f.mtx.Unlock()

	if idx >= len(f.script) {
		return nil, nil, fmt.Errorf("fakeSender: no scripted response for call %d", idx)
	}
	sc := f.script[idx]
	return sc.body, sc.rpcErr, sc.err
}

// unwrapConstructorID reports the constructor id of the real request
// carried in body, stripping the invokeWithLayer(initConnection(...))
// envelope frameLocked adds around a connection's first request.
func unwrapConstructorID(body []byte) (uint32, error) {
	r := tlwire.NewReader(body)
	id, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	if id != 0xda9b0d0d { // invokeWithLayer
		return id, nil
	}
	if _, err := r.Int(); err != nil { // layer
		return 0, err
	}
	icID, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	if icID != 0xc1cd5ea9 { // initConnection
		return 0, fmt.Errorf("unwrapConstructorID: unexpected initConnection id %#x", icID)
	}
	if _, err := r.Uint32(); err != nil { // flags
		return 0, err
	}
	if _, err := r.Int(); err != nil { // api_id
		return 0, err
	}
	for i := 0; i < 6; i++ { // device_model, system_version, app_version, system_lang_code, lang_pack, lang_code
		if _, err := r.String(); err != nil {
			return 0, err
		}
	}
	return r.Uint32()
}

func encode(req interface{ Encode(w *tlwire.Writer) }) []byte {
	w := tlwire.NewWriter(nil)
	req.Encode(w)
	return w.Bytes()
}

func dialerFor(s *fakeSender) Dialer {
	return func(addr string) (transport.Sender, error) { return s, nil }
}

func TestConnectWrapsOnlyFirstRequestOnASender(t *testing.T) {
	sender := &fakeSender{script: []scriptedCall{
		{body: encode(&tg.AuthSentCode{PhoneCodeHash: "hash-1"})},
		{body: encode(&tg.AuthSentCode{PhoneCodeHash: "hash-2"})},
	}}
	c := New(NewMemorySession(), 1, "hash", WithDialer(dialerFor(sender)))

	if _, err := c.RequestLoginCode("+15550001111"); err != nil {
		t.Fatalf("first RequestLoginCode: %v", err)
	}
	if _, err := c.RequestLoginCode("+15550001111"); err != nil {
		t.Fatalf("second RequestLoginCode: %v", err)
	}

	sender.mtx.Lock()
	defer sender.mtx.Unlock()
	if len(sender.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(sender.calls))
	}
	if sender.calls[0].outerID != 0xda9b0d0d {
		t.Errorf("first call outer id = %#x, want invokeWithLayer", sender.calls[0].outerID)
	}
	if sender.calls[0].innerID != (&tg.AuthSendCodeRequest{}).ConstructorID() {
		t.Errorf("first call inner id = %#x, want auth.sendCode", sender.calls[0].innerID)
	}
	if sender.calls[1].outerID != (&tg.AuthSendCodeRequest{}).ConstructorID() {
		t.Errorf("second call should go out bare, got outer id %#x", sender.calls[1].outerID)
	}
	if c.State() != Connected {
		t.Errorf("state = %v, want Connected", c.State())
	}
}

func TestInvokeMigratesOnceThenRetries(t *testing.T) {
	migrateValue := int32(3)
	sender := &fakeSender{script: []scriptedCall{
		{rpcErr: &transport.RPCError{Code: 303, Name: "PHONE_MIGRATE_3", Value: &migrateValue}},
		{body: encode(&tg.AuthSentCode{PhoneCodeHash: "hash-after-migrate"})},
	}}
	c := New(NewMemorySession(), 1, "hash", WithDialer(dialerFor(sender)))

	sent, err := c.RequestLoginCode("+15550001111")
	if err != nil {
		t.Fatalf("RequestLoginCode: %v", err)
	}
	if sent.PhoneCodeHash != "hash-after-migrate" {
		t.Errorf("PhoneCodeHash = %q, want hash-after-migrate", sent.PhoneCodeHash)
	}
	if c.dcID != 3 {
		t.Errorf("dcID = %d, want 3 after migration", c.dcID)
	}
}

func TestSignInWithoutRequestLoginCodeFails(t *testing.T) {
	c := New(NewMemorySession(), 1, "hash", WithDialer(dialerFor(&fakeSender{})))
	if _, err := c.SignIn("12345"); err != ErrNoCodeSent {
		t.Fatalf("SignIn err = %v, want ErrNoCodeSent", err)
	}
}

func TestSignInInvalidCode(t *testing.T) {
	sender := &fakeSender{script: []scriptedCall{
		{body: encode(&tg.AuthSentCode{PhoneCodeHash: "hash-1"})},
		{rpcErr: &transport.RPCError{Code: 400, Name: "PHONE_CODE_INVALID"}},
	}}
	c := New(NewMemorySession(), 1, "hash", WithDialer(dialerFor(sender)))

	if _, err := c.RequestLoginCode("+15550001111"); err != nil {
		t.Fatalf("RequestLoginCode: %v", err)
	}
	_, err := c.SignIn("00000")
	if err == nil {
		t.Fatal("expected an error")
	}
	var invalidErr *InvalidCodeError
	if !asInvalidCodeError(err, &invalidErr) {
		t.Fatalf("SignIn err = %v (%T), want *InvalidCodeError", err, err)
	}
}

func asInvalidCodeError(err error, target **InvalidCodeError) bool {
	if ic, ok := err.(*InvalidCodeError); ok {
		*target = ic
		return true
	}
	return false
}
