/*************************************************************************
 * Copyright 2021 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package client

// DefaultDC is the datacenter a fresh Client connects to absent any prior
// session or config override.
const DefaultDC int32 = 2

// datacenters is the six-entry table §6 describes: index 0 is unused,
// entries 1..5 are production IPv4 addresses on port 443. This package
// offers no option to override an entry.
var datacenters = [6]string{
	0: "",
	1: "149.154.175.50:443",
	2: "149.154.167.51:443",
	3: "149.154.175.100:443",
	4: "149.154.167.91:443",
	5: "91.108.56.130:443",
}

// DatacenterAddress returns the table address for dcID, and whether dcID
// is a valid (1..5) index.
func DatacenterAddress(dcID int32) (string, bool) {
	if dcID < 1 || int(dcID) >= len(datacenters) {
		return "", false
	}
	return datacenters[dcID], true
}

// State names the position in the connection state machine of §4.F.
type State int

const (
	// FreshDC: no Sender yet, no auth key adopted or generated.
	FreshDC State = iota
	// InitConn: a Sender is open and an auth key is bound, but the first
	// request (wrapped in invokeWithLayer/initConnection) has not yet
	// been sent.
	InitConn
	// Connected: at least one request has completed successfully on the
	// current Sender.
	Connected
	// Reconnecting marks an in-progress migration to another datacenter.
	Reconnecting
)

func (s State) String() string {
	switch s {
	case FreshDC:
		return "FreshDC"
	case InitConn:
		return "InitConn"
	case Connected:
		return "Connected"
	case Reconnecting:
		return "Reconnecting"
	default:
		return "Unknown"
	}
}
