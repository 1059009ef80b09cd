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

// Package audit is the append-only CDR sink: one CSV line per session
// lifecycle transition, `timestamp,identity,event`, flushed promptly so
// a tail -f follower sees records as they happen.
package audit

import (
	"bufio"
	"os"
	"sync"
	"time"

	"github.com/nabbar/pgw-gateway/internal/ferrors"
)

// Event is a lifecycle transition recorded to the audit log.
type Event string

const (
	// Create is recorded the moment a session is accepted.
	Create Event = "create"
	// Delete is recorded the moment a session is removed, by timeout or drain.
	Delete Event = "delete"
)

const timeLayout = "2006-01-02 15:04:05"

// Writer is a single append-only sink. All writes serialize through one
// mutex so concurrent appends from ingress and the reaper never
// interleave partial lines.
type Writer struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

// Open opens path in append mode, creating it if absent. Failure to open
// is a fatal resource-acquisition error.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.CodeBind, "open audit log", err)
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// Record appends one line for identity transitioning via event, stamped
// with now formatted in now's own location (the registry passes
// time.Now(), i.e. local wall-clock time). Record must be called with any
// relevant registry lock already held by the caller: registry mutex
// first, audit mutex second, never the reverse.
func (w *Writer) Record(now time.Time, identity string, event Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.w.WriteString(now.Format(timeLayout) + "," + identity + "," + string(event) + "\n"); err != nil {
		return ferrors.Wrap(ferrors.CodeIO, "append audit record", err)
	}
	return w.w.Flush()
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.f.Close()
}
