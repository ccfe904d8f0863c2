// Copyright (C) 2022-2023 Algorand, Inc.
// This file is part of avm-semantics
//
// avm-semantics is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// avm-semantics is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with avm-semantics.  If not, see <https://www.gnu.org/licenses/>.

/*
Package logging wraps logrus behind a small Logger interface.

To log to the base logger

	logging.Base().Info("definition compiled")

To log to a new logger

	logger := logging.NewLogger()
	logger.Info("definition compiled")
*/
package logging

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level refers to the log logging level
type Level uint32

const (
	// Panic Level level, highest level of severity. Logs and then calls panic with the
	// message passed to Debug, Info, ...
	Panic Level = iota
	// Fatal Level level. Logs and then calls `os.Exit(1)`.
	Fatal
	// Error Level level. Used for errors that should definitely be noted.
	Error
	// Warn Level level. Non-critical entries that deserve eyes.
	Warn
	// Info Level level. General operational entries about what's going on inside the
	// application.
	Info
	// Debug Level level. Usually only enabled when debugging. Very verbose logging.
	Debug
)

var (
	baseLogger Logger
	once       sync.Once
)

// Logger is the interface for loggers.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})

	// With returns a logger with the key-value pair attached to every entry.
	With(key string, value interface{}) Logger

	SetLevel(Level)
	GetLevel() Level
	SetOutput(io.Writer)
}

type logger struct {
	entry *logrus.Entry
}

func (l logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l logger) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }

func (l logger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l logger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l logger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l logger) Error(args ...interface{}) { l.entry.Error(args...) }
func (l logger) Fatal(args ...interface{}) { l.entry.Fatal(args...) }

func (l logger) With(key string, value interface{}) Logger {
	return logger{entry: l.entry.WithField(key, value)}
}

func (l logger) SetLevel(lvl Level) {
	l.entry.Logger.SetLevel(logrus.Level(lvl))
}

func (l logger) GetLevel() Level {
	return Level(l.entry.Logger.GetLevel())
}

func (l logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// NewLogger returns a fresh logger at Info level.
func NewLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return logger{entry: logrus.NewEntry(l)}
}

// Init initializes the process-wide base logger exactly once.
func Init() Logger {
	once.Do(func() {
		baseLogger = NewLogger()
	})
	return baseLogger
}

// Base returns the process-wide base logger.
func Base() Logger {
	return Init()
}
