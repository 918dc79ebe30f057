package main

import (
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// newLogger returns a logfmt logger writing to w. Only warnings and worse are kept unless debug is
// set.
func newLogger(w io.Writer, debug bool) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.NameKey = "name"
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	level := zap.WarnLevel
	if debug {
		level = zap.DebugLevel
	}
	core := zapcore.NewCore(zaplogfmt.NewEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core).Named("crackdict")
}
