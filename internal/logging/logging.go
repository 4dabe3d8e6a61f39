// Package logging builds the process logger. Construction happens in cmd
// and the logger is injected; nothing here is a package-level global.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console zap logger. Debug lowers the level to Debug.
// Extra writers are multiplexed with stderr when provided.
func New(debug bool, writers ...io.Writer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	if len(writers) == 0 {
		writers = []io.Writer{os.Stderr}
	}
	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(syncers...),
		level,
	)
	return zap.New(core)
}
