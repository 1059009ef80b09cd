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

package audit_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/pgw-gateway/internal/audit"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "audit suite")
}

var _ = Describe("Writer", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "cdr.csv")
	})

	It("appends a correctly formatted line", func() {
		w, err := audit.Open(path)
		Expect(err).ToNot(HaveOccurred())
		defer w.Close()

		ts := time.Date(2026, 7, 31, 12, 0, 0, 0, time.Local)
		Expect(w.Record(ts, "123456789012345", audit.Create)).To(Succeed())

		b, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.TrimSpace(string(b))).To(Equal("2026-07-31 12:00:00,123456789012345,create"))
	})

	It("creates the file when absent", func() {
		Expect(path).ToNot(BeAnExistingFile())
		w, err := audit.Open(path)
		Expect(err).ToNot(HaveOccurred())
		defer w.Close()
		Expect(path).To(BeAnExistingFile())
	})

	It("appends rather than truncates across opens", func() {
		w1, err := audit.Open(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(w1.Record(time.Now(), "111111111111111", audit.Create)).To(Succeed())
		Expect(w1.Close()).To(Succeed())

		w2, err := audit.Open(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(w2.Record(time.Now(), "111111111111111", audit.Delete)).To(Succeed())
		Expect(w2.Close()).To(Succeed())

		b, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		lines := strings.Split(strings.TrimSpace(string(b)), "\n")
		Expect(lines).To(HaveLen(2))
	})

	It("serializes concurrent writers without interleaving partial lines", func() {
		w, err := audit.Open(path)
		Expect(err).ToNot(HaveOccurred())
		defer w.Close()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = w.Record(time.Now(), "123456789012345", audit.Create)
			}()
		}
		wg.Wait()

		b, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		lines := strings.Split(strings.TrimSpace(string(b)), "\n")
		Expect(lines).To(HaveLen(50))
		for _, l := range lines {
			Expect(l).To(HaveSuffix("123456789012345,create"))
		}
	})

	It("fails to open under a path whose directory does not exist", func() {
		_, err := audit.Open("/nonexistent-dir/cdr.csv")
		Expect(err).To(HaveOccurred())
	})
})
