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

// Package registry holds the one piece of mutable shared state in the
// gateway: the map of active subscriber sessions, the immutable denial
// set, and the shutdown/drain flags. Every mutation that changes
// membership also appends the matching audit record before releasing
// the registry lock, which is what gives external observers of the
// audit log a consistent view of registry membership.
//
// Lock ordering: the registry mutex is always acquired before the audit
// writer's internal mutex, never the reverse.
package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/nabbar/pgw-gateway/internal/audit"
)

// ErrDenied is returned by Create when the identity is on the denial list.
var ErrDenied = errors.New("registry: identity is denied")

// Registry is the concurrency-safe session store backing the gateway.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	denied   map[string]struct{}
	audit    *audit.Writer

	shuttingDown bool
	drainDone    chan struct{}
	drainOnce    sync.Once
}

// New builds a Registry with the given immutable denial list and the
// audit sink every membership change is recorded to.
func New(denylist []string, w *audit.Writer) *Registry {
	denied := make(map[string]struct{}, len(denylist))
	for _, id := range denylist {
		denied[id] = struct{}{}
	}
	return &Registry{
		sessions: make(map[string]time.Time),
		denied:   denied,
		audit:    w,

		drainDone: make(chan struct{}),
	}
}

// IsDenied reports whether identity is on the static denial list.
func (r *Registry) IsDenied(identity string) bool {
	_, denied := r.denied[identity]
	return denied
}

// Contains reports whether identity currently has an active session.
func (r *Registry) Contains(identity string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[identity]
	return ok
}

// Create inserts a new session for identity if (and only if) it is not
// denied and not already present, appending exactly one create audit
// record while still holding the registry lock. It reports whether the
// insertion happened.
func (r *Registry) Create(identity string, now time.Time) (inserted bool, err error) {
	if r.IsDenied(identity) {
		return false, ErrDenied
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[identity]; exists {
		return false, nil
	}

	r.sessions[identity] = now
	if r.audit != nil {
		if err := r.audit.Record(time.Now(), identity, audit.Create); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Remove erases identity's session if present, appending exactly one
// delete audit record while still holding the registry lock. It reports
// whether a session existed to remove.
func (r *Registry) Remove(identity string) (existed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(identity)
}

func (r *Registry) removeLocked(identity string) (bool, error) {
	if _, ok := r.sessions[identity]; !ok {
		return false, nil
	}

	delete(r.sessions, identity)
	if r.audit != nil {
		if err := r.audit.Record(time.Now(), identity, audit.Delete); err != nil {
			return true, err
		}
	}
	return true, nil
}

// SnapshotExpired returns every identity whose session age exceeds
// timeout as of now. Read-only: it does not remove anything. Calling it
// followed by Remove per identity is safe because the reaper is the
// sole deleter during the normal (non-drain) phase.
func (r *Registry) SnapshotExpired(now time.Time, timeout time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []string
	for id, created := range r.sessions {
		if now.Sub(created) > timeout {
			expired = append(expired, id)
		}
	}
	return expired
}

// TakeUpTo removes up to n sessions (iteration order unspecified) and
// appends one delete audit record per removal, all within a single
// acquisition of the registry lock. It is used only during drain.
func (r *Registry) TakeUpTo(n int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 {
		return nil, nil
	}

	taken := make([]string, 0, n)
	for id := range r.sessions {
		if len(taken) >= n {
			break
		}
		taken = append(taken, id)
	}

	for _, id := range taken {
		if _, err := r.removeLocked(id); err != nil {
			return taken, err
		}
	}
	return taken, nil
}

// Size returns the current number of active sessions.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// SetShuttingDown sets the shutting_down flag. Idempotent: once true it
// never clears.
func (r *Registry) SetShuttingDown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shuttingDown = true
}

// ShuttingDown reports the current value of the shutting_down flag.
func (r *Registry) ShuttingDown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shuttingDown
}

// MarkDrainComplete signals that drain_complete is now true. Safe to
// call more than once; only the first call has effect.
func (r *Registry) MarkDrainComplete() {
	r.drainOnce.Do(func() { close(r.drainDone) })
}

// DrainComplete returns a channel that is closed once MarkDrainComplete
// has been called. The lifecycle supervisor blocks on this channel
// rather than on ShuttingDown alone, so that every delete audit record
// is guaranteed written before teardown.
func (r *Registry) DrainComplete() <-chan struct{} {
	return r.drainDone
}
