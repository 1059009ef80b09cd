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

// Command pgw-server runs the subscriber session manager gateway.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nabbar/pgw-gateway/internal/config"
	"github.com/nabbar/pgw-gateway/internal/logx"
	"github.com/nabbar/pgw-gateway/internal/supervisor"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pgw-server <config-path>",
		Short:         "run the subscriber session manager gateway",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	return cmd
}

func run(configPath string) error {
	cfg, err := config.LoadServer(configPath)
	if err != nil {
		return err
	}

	log, err := logx.New(logx.Options{
		Level:     logx.ParseLevel(cfg.LogLevel),
		Component: "pgw-server",
		FilePath:  cfg.LogFile,
		JSON:      cfg.LogFormat == "json",
	})
	if err != nil {
		return err
	}

	sup, err := supervisor.New(cfg, log)
	if err != nil {
		return err
	}

	log.WithField("udp_port", cfg.UDPPort).WithField("http_port", cfg.HTTPPort).Info("gateway starting")
	return sup.Run(context.Background())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pgw-server:", err)
		os.Exit(1)
	}
}
