/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"github.com/gravwell/tlproto/client/rpcerr"
	"github.com/gravwell/tlproto/tg"
	"github.com/gravwell/tlproto/tlwire"
)

// IsAuthorized probes the current Sender with updates.getState: any
// successful response (no AUTH_KEY_UNREGISTERED-class error) means the
// bound auth key already belongs to a logged-in user.
func (c *Client) IsAuthorized() (bool, error) {
	_, err := invoke(c, &tg.UpdatesGetStateRequest{}, tg.DecodeUpdatesState)
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*rpcerr.Error); ok {
		return false, nil
	}
	return false, err
}

// RequestLoginCode asks the server to send a login code to phone, and
// remembers the (phone, phone_code_hash) pair SignIn needs to complete the
// flow. A later call overwrites whatever pair was remembered before.
func (c *Client) RequestLoginCode(phone string) (*tg.AuthSentCode, error) {
	req := &tg.AuthSendCodeRequest{
		PhoneNumber:    phone,
		APIID:          c.apiID,
		APIHash:        c.apiHash,
		AllowFlashcall: false,
		CurrentNumber:  false,
		AllowAppHash:   false,
	}
	sent, err := invoke(c, req, tg.DecodeAuthSentCode)
	if err != nil {
		return nil, err
	}

	c.mtx.Lock()
	c.lastPhone = phone
	c.lastPhoneHash = sent.PhoneCodeHash
	c.hasLastPhone = true
	c.mtx.Unlock()
	return sent, nil
}

// SignIn completes the login flow started by RequestLoginCode using the
// code the user received. The remembered (phone, phone_code_hash) pair is
// consumed exactly once, win or lose: a second SignIn call without an
// intervening RequestLoginCode fails with ErrNoCodeSent regardless of
// whether the first attempt succeeded.
func (c *Client) SignIn(code string) (*tg.User, error) {
	c.mtx.Lock()
	if !c.hasLastPhone {
		c.mtx.Unlock()
		return nil, ErrNoCodeSent
	}
	phone, hash := c.lastPhone, c.lastPhoneHash
	c.hasLastPhone = false
	c.lastPhone, c.lastPhoneHash = "", ""
	c.mtx.Unlock()

	req := &tg.AuthSignInRequest{
		PhoneNumber:   phone,
		PhoneCodeHash: hash,
		PhoneCode:     code,
	}
	auth, err := invoke(c, req, tg.DecodeAuthAuthorization)
	if err != nil {
		if rerr, ok := err.(*rpcerr.Error); ok && rerr.Classify() == rpcerr.PhoneCodeInvalid {
			return nil, &InvalidCodeError{Cause: rerr}
		}
		return nil, err
	}

	switch a := auth.(type) {
	case *tg.Authorization:
		return a.User, nil
	case *tg.AuthorizationSignUpRequired:
		return nil, &SignUpRequiredError{TermsOfService: a.TermsOfService, HasTerms: a.HasTermsOfService}
	default:
		return nil, &rpcerr.Error{Code: 0, Name: "UNKNOWN_AUTHORIZATION_VARIANT"}
	}
}

// SignInBot authenticates as a bot using a bot token from @BotFather,
// skipping the phone/code exchange entirely.
func (c *Client) SignInBot(botToken string) (*tg.User, error) {
	req := &tg.AuthImportBotAuthorizationRequest{
		APIID:        c.apiID,
		APIHash:      c.apiHash,
		BotAuthToken: botToken,
	}
	auth, err := invoke(c, req, tg.DecodeAuthAuthorization)
	if err != nil {
		return nil, err
	}
	switch a := auth.(type) {
	case *tg.Authorization:
		return a.User, nil
	default:
		return nil, &rpcerr.Error{Code: 0, Name: "UNEXPECTED_BOT_AUTHORIZATION_VARIANT"}
	}
}

// ResolveUsername looks up a bare "@username"-style handle (a leading "@"
// is stripped if present) via contacts.resolveUsername.
func (c *Client) ResolveUsername(username string) (*tg.User, error) {
	if len(username) > 0 && username[0] == '@' {
		username = username[1:]
	}
	req := &tg.ContactsResolveUsernameRequest{Username: username}
	peer, err := invoke(c, req, tg.DecodeContactsResolvedPeer)
	if err != nil {
		return nil, err
	}
	uid, ok := peer.Peer.(*tg.PeerUser)
	if !ok {
		return nil, &rpcerr.Error{Code: 0, Name: "USERNAME_NOT_OCCUPIED"}
	}
	for _, u := range peer.Users {
		if u.ID == uid.UserID {
			return u, nil
		}
	}
	return nil, &rpcerr.Error{Code: 0, Name: "USERNAME_NOT_OCCUPIED"}
}

// SendMessage sends text to whatever to resolves to (a known *tg.User or a
// "@username" handle), returning the raw Updates the server reports back.
func (c *Client) SendMessage(to IntoInputPeer, text string) (*tg.Updates, error) {
	peer, err := to.intoInputPeer(c)
	if err != nil {
		return nil, err
	}
	req := &tg.MessagesSendMessageRequest{
		Peer:     peer,
		Message:  text,
		RandomID: c.nextRandomID(),
	}
	return invoke(c, req, func(r *tlwire.Reader) (*tg.Updates, error) {
		return tg.DecodeUpdates(r)
	})
}
