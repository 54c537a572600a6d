/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"errors"
	"fmt"
)

// ErrNoCodeSent is returned by SignIn when no prior RequestLoginCode call
// has left a (phone, phone_code_hash) pair to consume.
var ErrNoCodeSent = errors.New("client: sign_in called without a prior request_login_code")

// ErrNotConnected reports that the Client has no established Sender. The
// request path does not return it: a request issued before Connect
// connects first.
var ErrNotConnected = errors.New("client: not connected")

// ErrMigrationFailed is returned when a DC migration's rebuild step fails;
// the original Sender and auth key are left untouched, per §4.F's
// all-or-nothing rule.
var ErrMigrationFailed = errors.New("client: datacenter migration failed, original connection retained")

// SignUpRequiredError is returned by SignIn when the phone number has no
// account yet; TermsOfService is the server-supplied ToS text, if any.
type SignUpRequiredError struct {
	TermsOfService string
	HasTerms       bool
}

func (e *SignUpRequiredError) Error() string {
	return "client: phone number requires sign-up"
}

// InvalidCodeError wraps an rpcerr.Error classified as PhoneCodeInvalid
// during SignIn.
type InvalidCodeError struct {
	Cause error
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("client: invalid login code: %v", e.Cause)
}

func (e *InvalidCodeError) Unwrap() error { return e.Cause }
