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

// Package ingress is the datagram receive path: bind a UDP socket,
// decode each inbound packet against the packed-decimal identity codec,
// consult and mutate the session registry, and reply. The receive loop
// wakes up roughly once a second even with no traffic so that a pending
// shutdown is observed without an external signal.
package ingress

import (
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/pgw-gateway/internal/identity"
	"github.com/nabbar/pgw-gateway/internal/registry"
)

const (
	replyCreated  = "created"
	replyRejected = "rejected"

	pollInterval = time.Second
)

// Config describes where the ingress socket binds.
type Config struct {
	IP   string
	Port int
}

// Server is the UDP datagram ingress loop.
type Server struct {
	cfg Config
	reg *registry.Registry
	log *logrus.Entry

	conn    net.PacketConn
	running atomic.Bool
	gone    atomic.Bool
}

// New builds a Server bound to cfg, interacting with reg for every
// accepted or rejected identity.
func New(cfg Config, reg *registry.Registry, log *logrus.Entry) *Server {
	return &Server{cfg: cfg, reg: reg, log: log}
}

// Listen binds the socket and runs the receive loop until shutting_down
// is observed on reg or the socket is closed by Close. It returns once
// the loop has exited and the socket has been closed.
func (s *Server) Listen() error {
	addr := &net.UDPAddr{IP: net.ParseIP(s.cfg.IP), Port: s.cfg.Port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}
	s.conn = conn
	s.running.Store(true)
	defer func() {
		_ = conn.Close()
		s.running.Store(false)
		s.gone.Store(true)
	}()

	buf := make([]byte, 256)
	for {
		if s.reg.ShuttingDown() {
			return nil
		}

		_ = conn.SetReadDeadline(time.Now().Add(pollInterval))
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if s.reg.ShuttingDown() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.WithError(err).Warn("ingress receive error")
			continue
		}

		s.handlePacket(buf[:n], src)
	}
}

func (s *Server) handlePacket(pkt []byte, src net.Addr) {
	if len(pkt) != identity.PackedSize {
		s.log.WithField("size", len(pkt)).Warn("dropping packet of unexpected size")
		return
	}

	id, err := identity.Decode(pkt)
	if err != nil {
		s.log.WithError(err).Warn("dropping packet with undecodable identity")
		return
	}

	inserted, err := s.reg.Create(id, time.Now())
	if err != nil && err != registry.ErrDenied {
		s.log.WithError(err).WithField("identity", id).Error("registry create failed")
		return
	}

	reply := replyRejected
	if inserted {
		reply = replyCreated
	}
	if _, err := s.conn.WriteTo([]byte(reply), src); err != nil {
		s.log.WithError(err).WithField("identity", id).Warn("reply send failed")
	}
}

// Addr returns the bound local address once Listen has started, or nil
// before that.
func (s *Server) Addr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

// IsRunning reports whether the receive loop is currently active.
func (s *Server) IsRunning() bool {
	return s.running.Load()
}

// IsGone reports whether the receive loop has exited and released its socket.
func (s *Server) IsGone() bool {
	return s.gone.Load()
}

// Close releases the socket immediately, unblocking any in-progress read.
func (s *Server) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
