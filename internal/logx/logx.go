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

// Package logx is the gateway's leveled, field-tagged logger: a thin
// sirupsen/logrus wrapper with a stdout sink always on and an optional
// append-mode file sink, and string->Level parsing for the log_level
// config option.
package logx

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level mirrors the severity names recognized by the configuration schema.
type Level = logrus.Level

// ParseLevel converts a config string into a logrus.Level, case-
// insensitive, defaulting to InfoLevel on anything unrecognized rather
// than failing startup over a cosmetic setting.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "panic":
		return logrus.PanicLevel
	case "fatal":
		return logrus.FatalLevel
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	case "trace":
		return logrus.TraceLevel
	case "info", "":
		return logrus.InfoLevel
	default:
		return logrus.InfoLevel
	}
}

// Options configures New.
type Options struct {
	// Level is the minimum severity that reaches any sink.
	Level Level
	// Component tags every entry with a component=<name> field.
	Component string
	// FilePath, if non-empty, is opened in append mode and written to
	// alongside stdout. Opening failure is returned to the caller, not
	// swallowed.
	FilePath string
	// JSON switches the formatter from text to JSON (log_format: json).
	JSON bool
}

// New builds a logger per Options and returns it as a *logrus.Entry
// tagged with the component field. Output always goes to stdout;
// when FilePath is set, output is duplicated to that file too (both
// sinks always active, side by side, rather than switching between them).
func New(o Options) (*logrus.Entry, error) {
	l := logrus.New()
	l.SetLevel(o.Level)

	if o.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			DisableQuote:    true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	out := io.Writer(os.Stdout)
	if o.FilePath != "" {
		f, err := os.OpenFile(o.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	l.SetOutput(out)

	return l.WithField("component", o.Component), nil
}
