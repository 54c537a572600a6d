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
	"runtime"

	"github.com/shirou/gopsutil/host"

	"github.com/gravwell/tlproto/client/rpcerr"
	"github.com/gravwell/tlproto/tg"
	"github.com/gravwell/tlproto/tlwire"
)

// deviceModel is the "device_model" initConnection reports, per §4.F's
// "<os_type> <bitness>" rule.
func deviceModel() string {
	return fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH)
}

// systemVersion is the "system_version" initConnection reports: the OS's
// own version string, the same way ingest/log.PrintOSInfo probes it via
// gopsutil/host rather than reporting the Go toolchain version.
func systemVersion() string {
	if _, _, version, err := host.PlatformInformation(); err == nil && version != "" {
		return version
	}
	return runtime.GOOS
}

// langCode returns the locale tag initConnection advertises; this client
// does not localize, so it always reports English.
func langCode() string { return "en" }

// invoke sends req on c's current Sender and decodes the response with
// decode. Per §4.F, the first request issued on a freshly (re)established
// Sender is transparently wrapped in invokeWithLayer(initConnection(...));
// every later request on that same Sender goes out bare. A migration
// RPCError triggers exactly one rebuild-and-retry; any other failure of
// that retry propagates as-is.
func invoke[T any](c *Client, req tg.Request, decode func(*tlwire.Reader) (T, error)) (T, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	var zero T
	if c.sender == nil {
		if err := c.connectLocked(); err != nil {
			return zero, err
		}
	}

	body, cid := c.frameLocked(req)
	raw, rpcErr, err := c.sender.Invoke(cid, body)
	if err != nil {
		return zero, fmt.Errorf("client: invoke: %w", err)
	}
	if rpcErr != nil {
		parsed := rpcerr.Parse(rpcErr.Code, rpcErr.Name)
		if parsed.Classify() == rpcerr.Migration {
			targetDC, ok := parsed.MigrationTargetDC()
			if !ok {
				return zero, parsed
			}
			if merr := c.migrateLocked(targetDC); merr != nil {
				return zero, merr
			}
			body, cid = c.frameLocked(req)
			raw, rpcErr, err = c.sender.Invoke(cid, body)
			if err != nil {
				return zero, fmt.Errorf("client: invoke after migration: %w", err)
			}
			if rpcErr != nil {
				rerr := rpcerr.Parse(rpcErr.Code, rpcErr.Name)
				c.log.Errorf("rpc error on dc %d after migration: %v", c.dcID, rerr)
				return zero, rerr
			}
		} else {
			c.log.Errorf("rpc error on dc %d: %v", c.dcID, parsed)
			return zero, parsed
		}
	}

	c.state = Connected
	c.initialized = true
	return decode(tlwire.NewReader(raw))
}

// frameLocked encodes req for the wire, wrapping it in
// invokeWithLayer(initConnection(...)) the first time it is sent on the
// current Sender. Must be called with c.mtx held.
func (c *Client) frameLocked(req tg.Request) (body []byte, constructorID uint32) {
	if c.initialized {
		w := tlwire.NewWriter(nil)
		req.Encode(w)
		return w.Bytes(), req.ConstructorID()
	}

	inner := tlwire.NewWriter(nil)
	req.Encode(inner)

	wrapped := &tg.InvokeWithLayerQuery{
		Layer: LayerConstant,
		Query: &tg.InitConnectionQuery{
			APIID:          c.apiID,
			DeviceModel:    deviceModel(),
			SystemVersion:  systemVersion(),
			AppVersion:     AppVersion,
			SystemLangCode: langCode(),
			LangPack:       "",
			LangCode:       langCode(),
			Query:          inner.Bytes(),
		},
	}
	w := tlwire.NewWriter(nil)
	wrapped.Encode(w)
	return w.Bytes(), wrapped.ConstructorID()
}
