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

// Package config loads the flat YAML/JSON/TOML configuration files for
// both gateway binaries via Viper, and validates the required fields.
// No hot-reload is wired: dynamic reconfiguration is not supported.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/nabbar/pgw-gateway/internal/ferrors"
)

// Server is the gateway server's configuration surface.
type Server struct {
	UDPIP                string   `mapstructure:"udp_ip"`
	UDPPort              int      `mapstructure:"udp_port"`
	SessionTimeoutSec    int      `mapstructure:"session_timeout_sec"`
	CDRFile              string   `mapstructure:"cdr_file"`
	HTTPPort             int      `mapstructure:"http_port"`
	GracefulShutdownRate int      `mapstructure:"graceful_shutdown_rate"`
	LogFile              string   `mapstructure:"log_file"`
	LogLevel             string   `mapstructure:"log_level"`
	LogFormat            string   `mapstructure:"log_format"`
	Blacklist            []string `mapstructure:"blacklist"`
}

// Client is the client binary's configuration surface.
type Client struct {
	ServerIP   string `mapstructure:"server_ip"`
	ServerPort int    `mapstructure:"server_port"`
	LogFile    string `mapstructure:"log_file"`
	LogLevel   string `mapstructure:"log_level"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
}

// LoadServer reads and validates a server configuration file.
func LoadServer(path string) (Server, error) {
	var c Server

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return c, ferrors.Wrap(ferrors.CodeConfig, "read server config", err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, ferrors.Wrap(ferrors.CodeConfig, "parse server config", err)
	}

	if c.LogFormat == "" {
		c.LogFormat = "text"
	}

	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Server) validate() error {
	switch {
	case c.UDPIP == "":
		return ferrors.New(ferrors.CodeConfig, "udp_ip is required")
	case c.UDPPort <= 0:
		return ferrors.New(ferrors.CodeConfig, "udp_port must be a positive integer")
	case c.SessionTimeoutSec <= 0:
		return ferrors.New(ferrors.CodeConfig, "session_timeout_sec must be a positive integer")
	case c.CDRFile == "":
		return ferrors.New(ferrors.CodeConfig, "cdr_file is required")
	case c.HTTPPort <= 0:
		return ferrors.New(ferrors.CodeConfig, "http_port must be a positive integer")
	case c.GracefulShutdownRate <= 0:
		return ferrors.New(ferrors.CodeConfig, "graceful_shutdown_rate must be a positive integer")
	}
	return nil
}

// LoadClient reads and validates a client configuration file.
func LoadClient(path string) (Client, error) {
	var c Client

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return c, ferrors.Wrap(ferrors.CodeConfig, "read client config", err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, ferrors.Wrap(ferrors.CodeConfig, "parse client config", err)
	}

	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 3000
	}

	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Client) validate() error {
	switch {
	case c.ServerIP == "":
		return ferrors.New(ferrors.CodeConfig, "server_ip is required")
	case c.ServerPort <= 0:
		return ferrors.New(ferrors.CodeConfig, fmt.Sprintf("server_port must be a positive integer, got %d", c.ServerPort))
	}
	return nil
}
