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

// Package supervisor composes the registry, audit sink, ingress, control
// surface and reaper into the gateway process lifecycle: bring every
// component up, block until the registry has fully drained, then tear
// everything down on every exit path.
package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/pgw-gateway/internal/audit"
	"github.com/nabbar/pgw-gateway/internal/config"
	"github.com/nabbar/pgw-gateway/internal/control"
	"github.com/nabbar/pgw-gateway/internal/ferrors"
	"github.com/nabbar/pgw-gateway/internal/ingress"
	"github.com/nabbar/pgw-gateway/internal/reaper"
	"github.com/nabbar/pgw-gateway/internal/registry"
)

// Supervisor wires the gateway's long-running workers together: the
// registry, audit sink, ingress loop, control surface and reaper.
type Supervisor struct {
	cfg config.Server
	log *logrus.Entry

	aud *audit.Writer
	reg *registry.Registry
	ing *ingress.Server
	ctl *control.Server
	rp  *reaper.Reaper
}

// New prepares a Supervisor from cfg and log. The audit sink is opened
// immediately since its failure to open is a fatal startup error; the
// other workers are not started until Run is called.
func New(cfg config.Server, log *logrus.Entry) (*Supervisor, error) {
	aud, err := audit.Open(cfg.CDRFile)
	if err != nil {
		return nil, err
	}

	reg := registry.New(cfg.Blacklist, aud)
	ing := ingress.New(ingress.Config{IP: cfg.UDPIP, Port: cfg.UDPPort}, reg, log.WithField("component", "ingress"))
	ctl := control.New(fmt.Sprintf(":%d", cfg.HTTPPort), reg, log.WithField("component", "control"))
	rp := reaper.New(reg, log.WithField("component", "reaper"), time.Duration(cfg.SessionTimeoutSec)*time.Second, cfg.GracefulShutdownRate)

	return &Supervisor{cfg: cfg, log: log, aud: aud, reg: reg, ing: ing, ctl: ctl, rp: rp}, nil
}

// Run starts ingress, the control surface and the reaper, then blocks
// until the registry has drained (shutting_down observed and every
// session removed), tears every worker down, and closes the audit sink.
//
// The wait predicate is drain completion, never the shutting-down flag
// alone, so that every delete audit record is guaranteed written before
// teardown.
func (s *Supervisor) Run(ctx context.Context) error {
	ingressErr := make(chan error, 1)
	go func() { ingressErr <- s.ing.Listen() }()

	controlErr := make(chan error, 1)
	go func() { controlErr <- s.ctl.ListenAndServe() }()

	go s.rp.Run()

	select {
	case err := <-ingressErr:
		s.teardown()
		return fmt.Errorf("ingress exited early: %w", err)
	case err := <-controlErr:
		s.teardown()
		return fmt.Errorf("control surface exited early: %w", err)
	case <-s.reg.DrainComplete():
	case <-ctx.Done():
		// Equivalent to /stop: still wait for the reaper to drain every
		// session so every delete audit record lands before teardown.
		s.reg.SetShuttingDown()
		<-s.reg.DrainComplete()
	}

	return s.teardown()
}

func (s *Supervisor) teardown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.ctl.Shutdown(shutdownCtx); err != nil {
		s.log.WithError(err).Warn("control surface shutdown error")
	}
	if err := s.ing.Close(); err != nil {
		s.log.WithError(err).Warn("ingress socket close error")
	}
	if err := s.aud.Close(); err != nil {
		return ferrors.Wrap(ferrors.CodeIO, "close audit sink", err)
	}
	return nil
}
