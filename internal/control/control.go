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

// Package control is the HTTP control surface: exactly two routes,
// /check_subscriber and /stop, served against the shared registry.
package control

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/pgw-gateway/internal/registry"
)

// Server is the plaintext HTTP control listener: check_subscriber and stop.
type Server struct {
	addr string
	reg  *registry.Registry
	log  *logrus.Entry

	httpSrv *http.Server

	mu       sync.Mutex
	stopOnce sync.Once
}

// New builds a Server bound to addr (host:port), reading and mutating reg.
func New(addr string, reg *registry.Registry, log *logrus.Entry) *Server {
	s := &Server{addr: addr, reg: reg, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/check_subscriber", s.handleCheckSubscriber)
	mux.HandleFunc("/stop", s.handleStop)

	s.httpSrv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// ListenAndServe runs the HTTP server until Shutdown is called. It
// returns nil when the server was stopped deliberately.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	err = s.httpSrv.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Addr returns the bound address once ListenAndServe has started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Shutdown stops the HTTP server gracefully. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		err = s.httpSrv.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleCheckSubscriber(w http.ResponseWriter, r *http.Request) {
	imsi := r.URL.Query().Get("imsi")
	if imsi == "" {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "missing required query parameter: imsi")
		return
	}

	w.WriteHeader(http.StatusOK)
	if s.reg.Contains(imsi) {
		fmt.Fprint(w, "active")
	} else {
		fmt.Fprint(w, "not active")
	}
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.reg.SetShuttingDown()
	s.log.Info("shutdown requested via /stop")

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Shutdown initiated")
}
