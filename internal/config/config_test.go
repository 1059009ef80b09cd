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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/pgw-gateway/internal/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "config suite")
}

func writeFile(dir, name, content string) string {
	p := filepath.Join(dir, name)
	Expect(os.WriteFile(p, []byte(content), 0o644)).To(Succeed())
	return p
}

var _ = Describe("LoadServer", func() {
	It("loads a complete YAML server config", func() {
		dir := GinkgoT().TempDir()
		p := writeFile(dir, "server.yaml", `
udp_ip: 0.0.0.0
udp_port: 9000
session_timeout_sec: 30
cdr_file: /tmp/cdr.csv
http_port: 8080
graceful_shutdown_rate: 2
log_file: /tmp/gw.log
log_level: info
blacklist:
  - "999999999999999"
`)
		c, err := config.LoadServer(p)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.UDPIP).To(Equal("0.0.0.0"))
		Expect(c.UDPPort).To(Equal(9000))
		Expect(c.SessionTimeoutSec).To(Equal(30))
		Expect(c.GracefulShutdownRate).To(Equal(2))
		Expect(c.Blacklist).To(ConsistOf("999999999999999"))
		Expect(c.LogFormat).To(Equal("text"))
	})

	It("fails fatally when the file does not exist", func() {
		_, err := config.LoadServer("/nonexistent/server.yaml")
		Expect(err).To(HaveOccurred())
	})

	It("fails validation when a required field is missing", func() {
		dir := GinkgoT().TempDir()
		p := writeFile(dir, "server.yaml", `
udp_port: 9000
session_timeout_sec: 30
cdr_file: /tmp/cdr.csv
http_port: 8080
graceful_shutdown_rate: 2
`)
		_, err := config.LoadServer(p)
		Expect(err).To(HaveOccurred())
	})

	It("accepts JSON configuration files too", func() {
		dir := GinkgoT().TempDir()
		p := writeFile(dir, "server.json", `{
			"udp_ip": "127.0.0.1",
			"udp_port": 9000,
			"session_timeout_sec": 30,
			"cdr_file": "/tmp/cdr.csv",
			"http_port": 8080,
			"graceful_shutdown_rate": 2
		}`)
		c, err := config.LoadServer(p)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.UDPIP).To(Equal("127.0.0.1"))
	})
})

var _ = Describe("LoadClient", func() {
	It("loads a client config and defaults timeout_ms", func() {
		dir := GinkgoT().TempDir()
		p := writeFile(dir, "client.yaml", `
server_ip: 127.0.0.1
server_port: 9000
log_level: debug
`)
		c, err := config.LoadClient(p)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.ServerPort).To(Equal(9000))
		Expect(c.TimeoutMS).To(Equal(3000))
	})

	It("fails validation when server_ip is missing", func() {
		dir := GinkgoT().TempDir()
		p := writeFile(dir, "client.yaml", `
server_port: 9000
`)
		_, err := config.LoadClient(p)
		Expect(err).To(HaveOccurred())
	})
})
