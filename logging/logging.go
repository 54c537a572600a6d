/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package logging is a trimmed-down, RFC5424-formatted logger for the
// client orchestrator: one writer, no rotation or syslog relays, since
// those ingest-facing concerns have no home in an RPC client. DEBUG/INFO
// lines mark connects, migrations, and auth-key generation; ERROR marks
// RPC failures.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
)

// Level gates which calls actually reach the writer.
type Level int

const (
	OFF Level = iota
	DEBUG
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "OFF"
	}
}

func (l Level) priority() rfc5424.Priority {
	switch l {
	case DEBUG:
		return rfc5424.User | rfc5424.Debug
	case INFO:
		return rfc5424.User | rfc5424.Info
	case WARN:
		return rfc5424.User | rfc5424.Warning
	case ERROR:
		return rfc5424.User | rfc5424.Error
	default:
		return rfc5424.User | rfc5424.Debug
	}
}

// ErrNotOpen names the condition of a Logger built with the zero value
// instead of New. No method returns it: such a Logger drops every line.
var ErrNotOpen = errors.New("logging: logger is not open")

// Logger writes level-gated, RFC5424-formatted lines to a single writer.
type Logger struct {
	wtr      io.Writer
	mtx      sync.Mutex
	lvl      Level
	hostname string
	appname  string
}

// New returns a Logger at level INFO writing to wtr.
func New(wtr io.Writer, appname string) *Logger {
	hostname, _ := os.Hostname()
	return &Logger{wtr: wtr, lvl: INFO, hostname: hostname, appname: appname}
}

// NewDiscard returns a Logger that drops every line, for callers that
// don't want to configure one explicitly.
func NewDiscard() *Logger {
	return New(io.Discard, "tlproto")
}

// SetLevel changes the minimum level that reaches the writer.
func (l *Logger) SetLevel(lvl Level) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.lvl = lvl
}

func (l *Logger) Debugf(f string, args ...interface{}) { l.outputf(DEBUG, f, args...) }
func (l *Logger) Infof(f string, args ...interface{})  { l.outputf(INFO, f, args...) }
func (l *Logger) Warnf(f string, args ...interface{})  { l.outputf(WARN, f, args...) }
func (l *Logger) Errorf(f string, args ...interface{}) { l.outputf(ERROR, f, args...) }

func (l *Logger) outputf(lvl Level, f string, args ...interface{}) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.wtr == nil || l.lvl == OFF || lvl < l.lvl {
		return
	}
	msg := fmt.Sprintf(f, args...)
	b, err := genRFCMessage(time.Now(), lvl.priority(), l.hostname, l.appname, lvl.String(), msg)
	if err != nil {
		return
	}
	line := strings.TrimRight(string(b), "\n\t\r")
	io.WriteString(l.wtr, line)
	io.WriteString(l.wtr, "\n")
}

func genRFCMessage(ts time.Time, prio rfc5424.Priority, hostname, appname, msgid, msg string) ([]byte, error) {
	m := rfc5424.Message{
		Priority:  prio,
		Timestamp: ts,
		Hostname:  trimLength(255, hostname),
		AppName:   trimLength(48, appname),
		MessageID: trimLength(32, msgid),
		Message:   []byte(msg),
	}
	return m.MarshalBinary()
}

func trimLength(n int, s string) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
