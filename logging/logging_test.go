/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "tl-test")
	l.SetLevel(WARN)

	l.Debugf("should not appear")
	l.Infof("should not appear either")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below WARN, got %q", buf.String())
	}

	l.Warnf("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected WARN line, got %q", buf.String())
	}
}

func TestLoggerFormatsRFC5424(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "tl-test")
	l.Errorf("connect failed: %s", "timeout")

	out := buf.String()
	if !strings.HasPrefix(out, "<") {
		t.Fatalf("expected an RFC5424 PRI header, got %q", out)
	}
	if !strings.Contains(out, "connect failed: timeout") {
		t.Fatalf("expected message content, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected a single trailing newline, got %q", out)
	}
}

func TestNewDiscardDropsEverything(t *testing.T) {
	l := NewDiscard()
	l.Errorf("this goes nowhere")
}
