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

package logx_test

import (
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/nabbar/pgw-gateway/internal/logx"
)

func TestLogx(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "logx suite")
}

var _ = Describe("ParseLevel", func() {
	It("parses every recognized severity name case-insensitively", func() {
		Expect(logx.ParseLevel("DEBUG")).To(Equal(logrus.DebugLevel))
		Expect(logx.ParseLevel("warn")).To(Equal(logrus.WarnLevel))
		Expect(logx.ParseLevel("Warning")).To(Equal(logrus.WarnLevel))
		Expect(logx.ParseLevel("error")).To(Equal(logrus.ErrorLevel))
		Expect(logx.ParseLevel("fatal")).To(Equal(logrus.FatalLevel))
		Expect(logx.ParseLevel("panic")).To(Equal(logrus.PanicLevel))
		Expect(logx.ParseLevel("Trace")).To(Equal(logrus.TraceLevel))
		Expect(logx.ParseLevel("INFO")).To(Equal(logrus.InfoLevel))
	})

	It("defaults to InfoLevel for unrecognized or empty input", func() {
		Expect(logx.ParseLevel("")).To(Equal(logrus.InfoLevel))
		Expect(logx.ParseLevel("not-a-level")).To(Equal(logrus.InfoLevel))
	})
})

var _ = Describe("New", func() {
	It("builds a working entry tagged with the component field", func() {
		e, err := logx.New(logx.Options{Level: logrus.InfoLevel, Component: "ingress"})
		Expect(err).ToNot(HaveOccurred())
		Expect(e.Data).To(HaveKeyWithValue("component", "ingress"))
	})

	It("opens and writes to the configured file path", func() {
		dir := GinkgoT().TempDir()
		p := filepath.Join(dir, "gateway.log")

		e, err := logx.New(logx.Options{Level: logrus.InfoLevel, Component: "test", FilePath: p})
		Expect(err).ToNot(HaveOccurred())

		e.Info("hello")

		Expect(p).To(BeAnExistingFile())
	})

	It("fails when the file path cannot be opened", func() {
		_, err := logx.New(logx.Options{Level: logrus.InfoLevel, FilePath: "/nonexistent-dir/x/y.log"})
		Expect(err).To(HaveOccurred())
	})
})
