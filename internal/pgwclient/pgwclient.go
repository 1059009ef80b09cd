/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package pgwclient is a one-shot UDP round-tripper: encode an identity,
// send it, wait for a reply within a bounded timeout, and return the
// raw reply bytes. It retries nothing; a failure is the caller's to
// report and exit on.
package pgwclient

import (
	"fmt"
	"net"
	"time"

	"github.com/nabbar/pgw-gateway/internal/identity"
)

// Config describes the server to dial and how long to wait for a reply.
type Config struct {
	ServerIP   string
	ServerPort int
	Timeout    time.Duration
}

// Send encodes id, sends it to the configured server, and returns
// whatever reply bytes arrive before Timeout elapses.
func Send(cfg Config, id string) (string, error) {
	packed, err := identity.Encode(id)
	if err != nil {
		return "", fmt.Errorf("pgwclient: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.ServerIP, cfg.ServerPort)
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return "", fmt.Errorf("pgwclient: dial %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(packed[:]); err != nil {
		return "", fmt.Errorf("pgwclient: send: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(cfg.Timeout)); err != nil {
		return "", fmt.Errorf("pgwclient: set deadline: %w", err)
	}

	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	if err != nil {
		return "", fmt.Errorf("pgwclient: receive: %w", err)
	}

	return string(buf[:n]), nil
}
