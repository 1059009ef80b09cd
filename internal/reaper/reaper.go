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

// Package reaper is the periodic worker that expires idle sessions and,
// once shutdown has been requested, drains the registry at a bounded
// rate. It is the only component permitted to delete sessions.
package reaper

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/pgw-gateway/internal/registry"
)

const tick = time.Second

// Reaper ties a ticking clock to the registry's expiry and drain
// operations.
type Reaper struct {
	reg        *registry.Registry
	log        *logrus.Entry
	timeout    time.Duration
	drainRate  int
	stopSignal chan struct{}
}

// New builds a Reaper that expires sessions idle longer than timeout,
// and during drain removes at most drainRate sessions per tick.
func New(reg *registry.Registry, log *logrus.Entry, timeout time.Duration, drainRate int) *Reaper {
	return &Reaper{
		reg:        reg,
		log:        log,
		timeout:    timeout,
		drainRate:  drainRate,
		stopSignal: make(chan struct{}),
	}
}

// Run executes the tick loop until the registry is drained after
// shutdown has been observed, or until Stop is called first. It returns
// once the loop has exited.
func (rp *Reaper) Run() {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-rp.stopSignal:
			return
		case now := <-ticker.C:
			if rp.reg.ShuttingDown() {
				if rp.drainTick() {
					rp.reg.MarkDrainComplete()
					return
				}
				continue
			}
			rp.expireTick(now)
		}
	}
}

// Stop asks Run to exit on its next iteration without waiting for the
// registry to drain. Intended for tests and abnormal teardown; normal
// shutdown relies on drain completing and Run returning on its own.
func (rp *Reaper) Stop() {
	close(rp.stopSignal)
}

func (rp *Reaper) expireTick(now time.Time) {
	expired := rp.reg.SnapshotExpired(now, rp.timeout)
	for _, id := range expired {
		if _, err := rp.reg.Remove(id); err != nil {
			rp.log.WithError(err).WithField("identity", id).Error("failed to reap expired session")
		}
	}
}

// drainTick removes up to the drain rate and reports whether the
// registry is now empty.
func (rp *Reaper) drainTick() bool {
	if _, err := rp.reg.TakeUpTo(rp.drainRate); err != nil {
		rp.log.WithError(err).Error("failed to remove sessions during drain")
	}
	return rp.reg.Size() == 0
}
