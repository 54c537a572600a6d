/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Command tl-login is a minimal example driver for package client: it logs
// in a phone-number account (prompting for the phone and the login code
// the server sends) or a bot account (via -bot-token), persisting the
// session to user.session so a later run skips the login flow entirely.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Bowery/prompt"
	"github.com/gravwell/tlproto/client"
	"github.com/gravwell/tlproto/logging"
)

var (
	botToken   = flag.String("bot-token", "", "log in as a bot using a @BotFather token instead of a phone number")
	sessionLoc = flag.String("session", "user.session", "path to the session file to load/save")
	verbose    = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: tl-login [flags] API_ID API_HASH")
		flag.PrintDefaults()
		os.Exit(1)
	}
	apiID, err := strconv.Atoi(flag.Arg(0))
	if err != nil {
		log.Fatalf("invalid API_ID %q: %v", flag.Arg(0), err)
	}
	apiHash := flag.Arg(1)

	if err := run(int32(apiID), apiHash); err != nil {
		log.Fatal(err)
	}
}

func run(apiID int32, apiHash string) error {
	session, err := client.OpenFileSession(*sessionLoc)
	if err != nil {
		return fmt.Errorf("opening session %q: %w", *sessionLoc, err)
	}

	lgr := logging.New(os.Stderr, "tl-login")
	if *verbose {
		lgr.SetLevel(logging.DEBUG)
	}

	c := client.New(session, apiID, apiHash, client.WithLogger(lgr))
	if err := c.Connect(); err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer c.Close()

	authorized, err := c.IsAuthorized()
	if err != nil {
		return fmt.Errorf("checking authorization: %w", err)
	}
	if authorized {
		fmt.Println("already logged in")
		return nil
	}

	if *botToken != "" {
		if _, err := c.SignInBot(*botToken); err != nil {
			return fmt.Errorf("bot sign-in: %w", err)
		}
		fmt.Println("logged in as bot")
		return nil
	}
	return loginInteractive(c)
}

// loginInteractive drives the phone/code exchange from a terminal, reading
// both the phone number and the login code with prompt.Basic (the code is
// echoed, not hidden).
func loginInteractive(c *client.Client) error {
	phone, err := prompt.Basic("Phone number (with country code): ", false)
	if err != nil {
		return fmt.Errorf("reading phone number: %w", err)
	}
	if _, err := c.RequestLoginCode(phone); err != nil {
		return fmt.Errorf("requesting login code: %w", err)
	}

	for attempt := 0; attempt < 3; attempt++ {
		code, err := prompt.Basic("Login code: ", false)
		if err != nil {
			return fmt.Errorf("reading login code: %w", err)
		}
		_, err = c.SignIn(code)
		if err == nil {
			fmt.Println("logged in")
			return nil
		}
		if _, ok := err.(*client.InvalidCodeError); ok {
			fmt.Fprintln(os.Stderr, "invalid code, try again")
			continue
		}
		return fmt.Errorf("signing in: %w", err)
	}
	return fmt.Errorf("too many invalid login code attempts")
}
