// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger holds the process-wide zap logger. Components take a named
// child with NewLogger. Until InitLogger runs every logger discards output,
// which keeps library code and tests quiet.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base = zap.NewNop()
	root = base.Sugar()
	atom = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// InitLogger installs a JSON logger writing to stderr.
func InitLogger() {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	base = zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		atom,
	))
	root = base.Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = base.Sync()
}

// NewLogger returns a logger named after a component.
func NewLogger(name string) *zap.SugaredLogger {
	return root.Named(name)
}

// SetDebug toggles debug-level output.
func SetDebug(enable bool) {
	if enable {
		atom.SetLevel(zap.DebugLevel)
		return
	}
	atom.SetLevel(zap.InfoLevel)
}
