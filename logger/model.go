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
 */

package logger

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

type logger struct {
	lr *logrus.Logger
}

// New returns a Logger writing colorized text lines to stderr at InfoLevel,
// the same destination and formatter the teacher's hookstderr hook wraps, minus
// the multi-hook plumbing this module has no second destination to justify.
func New() Logger {
	return NewWithWriter(colorable.NewColorableStderr())
}

// NewWithWriter returns a Logger writing to w instead of stderr; tests use this
// to capture output without colorable's terminal detection kicking in.
func NewWithWriter(w io.Writer) Logger {
	lr := logrus.New()
	lr.SetOutput(w)
	lr.SetLevel(logrus.InfoLevel)
	lr.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   w == io.Writer(os.Stderr),
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return &logger{lr: lr}
}

func (l *logger) entry(err error) *logrus.Entry {
	e := logrus.NewEntry(l.lr)
	if err != nil {
		e = e.WithError(err)
	}
	return e
}

func (l *logger) Debug(message string, err error)   { l.entry(err).Debug(message) }
func (l *logger) Info(message string, err error)    { l.entry(err).Info(message) }
func (l *logger) Warning(message string, err error) { l.entry(err).Warning(message) }
func (l *logger) Error(message string, err error)   { l.entry(err).Error(message) }
func (l *logger) Fatal(message string, err error)   { l.entry(err).Fatal(message) }
func (l *logger) Panic(message string, err error)   { l.entry(err).Panic(message) }

func (l *logger) SetLevel(lvl Level) {
	l.lr.SetLevel(lvl.Logrus())
}

func (l *logger) GetLevel() Level {
	return levelFromLogrus(l.lr.GetLevel())
}

// Clone returns a new Logger with its own *logrus.Logger sharing this one's
// output, formatter and level, so the clone's SetLevel doesn't affect the original.
func (l *logger) Clone() Logger {
	n := logrus.New()
	n.SetOutput(l.lr.Out)
	n.SetFormatter(l.lr.Formatter)
	n.SetLevel(l.lr.GetLevel())
	return &logger{lr: n}
}
