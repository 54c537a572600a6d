/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/gravwell/gcfg"
)

// ErrNoAuthKey describes a datacenter with no stored auth key.
// GetAuthKeyData does not return it; it reports that case with ok == false.
var ErrNoAuthKey = errors.New("client: no auth key stored for that datacenter")

// ErrNoUserDatacenter describes a session with no recorded user
// datacenter. GetUserDatacenter does not return it; it reports that case
// with ok == false.
var ErrNoUserDatacenter = errors.New("client: no user datacenter recorded")

// Session is the persistence boundary §4.E describes: it remembers which
// datacenter the user account lives on and the 256-byte auth key bound to
// each datacenter this client has connected to. Every mutating call
// triggers Save.
type Session interface {
	GetUserDatacenter() (dcID int32, addr string, ok bool)
	SetUserDatacenter(dcID int32, addr string) error
	GetAuthKeyData(dcID int32) (key [256]byte, ok bool)
	SetAuthKeyData(dcID int32, key [256]byte) error
	Save() error
}

// MemorySession is an ephemeral Session: Save is a no-op and no state
// outlives the process.
type MemorySession struct {
	mtx     sync.Mutex
	dcID    int32
	addr    string
	hasUser bool
	keys    map[int32][256]byte
}

// NewMemorySession returns an empty in-memory Session.
func NewMemorySession() *MemorySession {
	return &MemorySession{keys: make(map[int32][256]byte)}
}

func (s *MemorySession) GetUserDatacenter() (int32, string, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.dcID, s.addr, s.hasUser
}

func (s *MemorySession) SetUserDatacenter(dcID int32, addr string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.dcID, s.addr, s.hasUser = dcID, addr, true
	return s.save()
}

func (s *MemorySession) GetAuthKeyData(dcID int32) ([256]byte, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	k, ok := s.keys[dcID]
	return k, ok
}

func (s *MemorySession) SetAuthKeyData(dcID int32, key [256]byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.keys[dcID] = key
	return s.save()
}

func (s *MemorySession) save() error { return nil }

// Save is a no-op for MemorySession; it exists to satisfy Session.
func (s *MemorySession) Save() error { return nil }

// fileSessionDC is the gcfg target for one "[DC "<id>"]" section.
type fileSessionDC struct {
	Address string
	AuthKey string // hex-encoded, 512 characters
}

// fileSessionUser is the gcfg target for the single "[User]" section.
type fileSessionUser struct {
	DCID    int32
	Address string
}

// fileSessionFormat is the full gcfg.ReadStringInto target for a session
// file, mirroring the nested "Section \"subsection\"" shape config/loader.go
// reads for per-entity blocks.
type fileSessionFormat struct {
	User fileSessionUser
	DC   map[string]*fileSessionDC
}

// FileSession is the human-readable, single-file Session implementation
// §4.E calls for, keyed by DC id. It is read with gcfg (the same library
// config/loader.go uses for on-disk config) and, since gcfg has no writer,
// hand-formatted as ini text on Save, the same shape it parses.
type FileSession struct {
	mtx  sync.Mutex
	path string

	hasUser bool
	dcID    int32
	addr    string
	keys    map[int32][256]byte
}

// OpenFileSession loads path if it exists, or returns an empty session that
// will create path on the first Save.
func OpenFileSession(path string) (*FileSession, error) {
	fs := &FileSession{path: path, keys: make(map[int32][256]byte)}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	} else if err != nil {
		return nil, err
	}
	var parsed fileSessionFormat
	if err := gcfg.ReadStringInto(&parsed, string(b)); err != nil {
		return nil, fmt.Errorf("client: parsing session file: %w", err)
	}
	if parsed.User.DCID != 0 {
		fs.hasUser = true
		fs.dcID = parsed.User.DCID
		fs.addr = parsed.User.Address
	}
	for idStr, dc := range parsed.DC {
		id, perr := parseDCID(idStr)
		if perr != nil || dc.AuthKey == "" {
			continue
		}
		keyBytes, derr := hex.DecodeString(dc.AuthKey)
		if derr != nil || len(keyBytes) != 256 {
			continue
		}
		var key [256]byte
		copy(key[:], keyBytes)
		fs.keys[id] = key
	}
	return fs, nil
}

func parseDCID(s string) (int32, error) {
	var id int32
	_, err := fmt.Sscanf(s, "%d", &id)
	return id, err
}

func (fs *FileSession) GetUserDatacenter() (int32, string, bool) {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()
	return fs.dcID, fs.addr, fs.hasUser
}

func (fs *FileSession) SetUserDatacenter(dcID int32, addr string) error {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()
	fs.dcID, fs.addr, fs.hasUser = dcID, addr, true
	return fs.save()
}

func (fs *FileSession) GetAuthKeyData(dcID int32) ([256]byte, bool) {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()
	k, ok := fs.keys[dcID]
	return k, ok
}

func (fs *FileSession) SetAuthKeyData(dcID int32, key [256]byte) error {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()
	fs.keys[dcID] = key
	return fs.save()
}

// Save writes the session to disk. Callers normally never need to call it
// directly: every mutating accessor above already triggers it.
func (fs *FileSession) Save() error {
	fs.mtx.Lock()
	defer fs.mtx.Unlock()
	return fs.save()
}

func (fs *FileSession) save() error {
	var buf bytes.Buffer
	if fs.hasUser {
		fmt.Fprintf(&buf, "[User]\nDCID=%d\nAddress=%s\n\n", fs.dcID, fs.addr)
	}
	ids := make([]int32, 0, len(fs.keys))
	for id := range fs.keys {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		key := fs.keys[id]
		fmt.Fprintf(&buf, "[DC %q]\nAuthKey=%s\n\n", fmt.Sprint(id), hex.EncodeToString(key[:]))
	}
	return os.WriteFile(fs.path, buf.Bytes(), 0600)
}
