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

// Command pgw-client sends one subscriber identity registration to a
// pgw-server instance and prints the reply.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nabbar/pgw-gateway/internal/config"
	"github.com/nabbar/pgw-gateway/internal/logx"
	"github.com/nabbar/pgw-gateway/internal/pgwclient"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pgw-client <config-path> <identity> [debug]",
		Short:         "send one subscriber registration to the gateway",
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			debug := len(args) == 3 && args[2] == "debug"
			return run(args[0], args[1], debug)
		},
	}
	return cmd
}

func run(configPath, id string, debug bool) error {
	cfg, err := config.LoadClient(configPath)
	if err != nil {
		return err
	}

	level := logx.ParseLevel(cfg.LogLevel)
	if debug {
		level = logx.ParseLevel("debug")
	}
	log, err := logx.New(logx.Options{
		Level:     level,
		Component: "pgw-client",
		FilePath:  cfg.LogFile,
	})
	if err != nil {
		return err
	}

	log.WithField("identity", id).Debug("sending registration")

	reply, err := pgwclient.Send(pgwclient.Config{
		ServerIP:   cfg.ServerIP,
		ServerPort: cfg.ServerPort,
		Timeout:    time.Duration(cfg.TimeoutMS) * time.Millisecond,
	}, id)
	if err != nil {
		return err
	}

	fmt.Println(reply)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pgw-client:", err)
		os.Exit(1)
	}
}
