package log

import (
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// rotatingFile wraps lumberjack.Logger, giving dump artifacts the same
// rotation/retention policy as the rest of the toolchain's on-disk
// output without pulling the CLI layer into this package.
type rotatingFile struct {
	*lumberjack.Logger
}

func newRotatingFile(outputDir, name string) *rotatingFile {
	return &rotatingFile{
		Logger: &lumberjack.Logger{
			Filename:   filepath.Join(outputDir, name),
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
		},
	}
}
