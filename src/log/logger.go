// MIT License
//
// Copyright (c) 2025 dirac-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package logger provides the leveled logging surface used across the
// module, backed by zap. The level can be raised at runtime; the
// signature and hash packages log only coarse progress, never key
// material.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar *zap.SugaredLogger
)

func init() {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	sugar = zap.New(core).Sugar()
}

// SetLevel sets the global logging level. Messages below this level
// are dropped.
func SetLevel(lvl zapcore.Level) {
	level.SetLevel(lvl)
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, args ...any) { sugar.Debugf(format, args...) }

// Infof logs a formatted message at INFO level.
func Infof(format string, args ...any) { sugar.Infof(format, args...) }

// Warnf logs a formatted message at WARN level.
func Warnf(format string, args ...any) { sugar.Warnf(format, args...) }

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, args ...any) { sugar.Errorf(format, args...) }

// Sync flushes any buffered log entries.
func Sync() {
	_ = sugar.Sync()
}
